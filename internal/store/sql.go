package store

import (
	"context"
	"errors"
	"time"

	"github.com/giftsplit/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SQL stores gifts in a relational database through gorm.
type SQL struct {
	db *gorm.DB
}

func NewSQL(db *gorm.DB) *SQL {
	return &SQL{db: db}
}

func (s *SQL) Get(ctx context.Context, id uuid.UUID) (models.Gift, error) {
	var gift models.Gift
	err := s.db.WithContext(ctx).First(&gift, "id = ?", id).Error
	if err != nil {
		return models.Gift{}, translate(err)
	}

	return gift, nil
}

func (s *SQL) Put(ctx context.Context, gift models.Gift) error {
	gift.Version = 1
	return translate(s.db.WithContext(ctx).Create(&gift).Error)
}

// Update writes with UPDATE … WHERE version = ? and re-applies fn when
// another writer got there first.
func (s *SQL) Update(ctx context.Context, id uuid.UUID, fn UpdateFunc) (models.Gift, error) {
	return retry(ctx, func() (models.Gift, error) {
		var updated models.Gift

		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var gift models.Gift
			if err := tx.First(&gift, "id = ?", id).Error; err != nil {
				return err
			}

			version := gift.Version
			if err := fn(&gift); err != nil {
				return err
			}

			gift.ID = id
			gift.Version = version + 1
			gift.UpdatedAt = time.Now().UTC()

			// The primary key of the model adds the id condition
			result := tx.Model(&gift).
				Where("version = ?", version).
				Select("*").
				Omit("ID", "CreatedAt").
				Updates(&gift)
			if result.Error != nil {
				return result.Error
			}

			if result.RowsAffected == 0 {
				return ErrConflict
			}

			updated = gift
			return nil
		})
		if err != nil {
			return models.Gift{}, translate(err)
		}

		return updated, nil
	})
}

func (s *SQL) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

// translate maps database errors to the errors of this package.
// Errors from update functions are passed through unchanged.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrResourceNotFound):
		return ErrGiftNotFound
	case errors.Is(err, models.ErrGiftIDNotUnique):
		return ErrGiftExists
	default:
		return err
	}
}
