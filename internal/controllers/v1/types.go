package v1

import (
	"github.com/giftsplit/backend/internal/auth"
	"github.com/giftsplit/backend/internal/gifts"
	"github.com/giftsplit/backend/internal/httputil"
	ez_uuid "github.com/giftsplit/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// Controller holds what the handlers need to serve requests.
type Controller struct {
	Gifts    *gifts.Service
	Sessions *auth.Issuer // Verifies session tokens. Sessions are disabled when nil
}

// bindURIID returns the resource ID from the path of the request.
func bindURIID(c *gin.Context) (uuid.UUID, error) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		return uuid.Nil, httputil.ErrInvalidUUID
	}

	return uri.ID.UUID, nil
}
