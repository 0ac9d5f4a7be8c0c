package test

import (
	"path/filepath"
	"testing"

	"github.com/giftsplit/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TmpFile returns the path to a unique file to be used in tests
func TmpFile(t *testing.T) string {
	dir := t.TempDir()
	return filepath.Join(dir, uuid.New().String())
}

// SQLite connects to a migrated database in a temporary file. The
// connection is closed when the test finishes.
func SQLite(t *testing.T) *gorm.DB {
	db, err := models.Connect(models.SQLite(TmpFile(t)))
	require.Nil(t, err, "Database connection failed")

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}
