package v1

import (
	"net/http"

	"github.com/giftsplit/backend/internal/auth"
	"github.com/giftsplit/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

type SessionResponse struct {
	Error *string       `json:"error" example:"you need to be signed in to access this resource"` // The error, if any occurred
	Data  *auth.Session `json:"data"`                                                             // The session of the signed-in user
}

func (co Controller) RegisterMeRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsMe)
	r.GET("", co.GetMe)
}

// OptionsMe returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Session
//	@Success		204
//	@Router			/v1/me [options]
func (co Controller) OptionsMe(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetMe returns the session of the signed-in user
//
//	@Summary		Current session
//	@Description	Returns the user the bearer token in the "Authorization" header was issued for
//	@Tags			Session
//	@Produce		json
//	@Success		200	{object}	SessionResponse
//	@Failure		401	{object}	SessionResponse
//	@Router			/v1/me [get]
func (co Controller) GetMe(c *gin.Context) {
	session, ok := auth.FromContext(c)
	if !ok {
		s := auth.ErrNoSession.Error()
		c.JSON(status(auth.ErrNoSession), SessionResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{
		Data: &session,
	})
}
