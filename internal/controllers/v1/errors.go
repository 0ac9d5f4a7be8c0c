package v1

import (
	"errors"
	"net/http"

	"github.com/giftsplit/backend/internal/auth"
	"github.com/giftsplit/backend/internal/contribution"
	"github.com/giftsplit/backend/internal/gifts"
	"github.com/giftsplit/backend/internal/httputil"
	"github.com/giftsplit/backend/internal/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
	Kind  string `json:"kind,omitempty" example:"ValidationError"`
}

// status returns the appropriate HTTP status for an error
func status(err error) int {
	var ruleErr *contribution.Error
	if errors.As(err, &ruleErr) {
		if ruleErr.Kind == contribution.KindGiftClosed {
			return http.StatusConflict
		}
		return http.StatusBadRequest
	}

	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, gifts.ErrPaymentNotCompleted) {
		return http.StatusPaymentRequired
	}

	if errors.Is(err, auth.ErrNoSession) {
		return http.StatusUnauthorized
	}

	return http.StatusBadRequest
}

// kind returns the rule kind of an error, if it has one.
func kind(err error) *string {
	var ruleErr *contribution.Error
	if errors.As(err, &ruleErr) {
		k := string(ruleErr.Kind)
		return &k
	}

	var validationErr *httputil.ValidationError
	if errors.As(err, &validationErr) {
		k := string(contribution.KindValidation)
		return &k
	}

	return nil
}

// apiError returns the status, message and kind to respond with. Server
// errors are logged and their details are not sent to the client.
func apiError(c *gin.Context, err error) (int, *string, *string) {
	code := status(err)
	if code == http.StatusInternalServerError {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		e := models.ErrGeneral.Error()
		return code, &e, nil
	}

	e := err.Error()
	return code, &e, kind(err)
}
