package v1

import (
	"errors"
	"io"
	"net/http"

	"github.com/giftsplit/backend/internal/contribution"
	"github.com/giftsplit/backend/internal/httputil"
	"github.com/giftsplit/backend/internal/payment"
	ez_uuid "github.com/giftsplit/backend/internal/uuid"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SignatureHeader carries the signature of webhook payloads.
const SignatureHeader = "Stripe-Signature"

func (co Controller) RegisterPaymentRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", co.OptionsPayments)
		r.POST("", co.CreatePayment)
	}
	{
		r.OPTIONS("/confirm", co.OptionsPayments)
		r.POST("/confirm", co.ConfirmPayment)
	}
	{
		r.OPTIONS("/webhook", co.OptionsPayments)
		r.POST("/webhook", co.PaymentWebhook)
	}
}

// OptionsPayments returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Payments
//	@Success		204
//	@Router			/v1/payments [options]
//	@Router			/v1/payments/confirm [options]
//	@Router			/v1/payments/webhook [options]
func (co Controller) OptionsPayments(c *gin.Context) {
	httputil.OptionsPost(c)
}

// CreatePayment starts a checkout for a contribution
//
//	@Summary		Start payment
//	@Description	Validates a contribution and creates a checkout session for it.
//	@Description	When no amount is sent, the amount of the selected share is used.
//	@Description	The contributor is charged the amount plus the processing fee.
//	@Tags			Payments
//	@Produce		json
//	@Success		201		{object}	PaymentResponse
//	@Failure		400		{object}	PaymentResponse
//	@Failure		404		{object}	PaymentResponse
//	@Failure		409		{object}	PaymentResponse
//	@Failure		500		{object}	PaymentResponse
//	@Param			payment	body		PaymentEditable	true	"Payment"
//	@Router			/v1/payments [post]
func (co Controller) CreatePayment(c *gin.Context) {
	var editable PaymentEditable

	err := httputil.BindData(c, &editable)
	if err == nil && editable.GiftID == ez_uuid.Nil {
		err = httputil.ErrInvalidUUID
	}
	if err != nil {
		code, e, k := apiError(c, err)
		c.JSON(code, PaymentResponse{
			Error: e,
			Kind:  k,
		})
		return
	}

	checkout, err := co.Gifts.RequestPayment(c.Request.Context(), editable.model())
	if err != nil {
		code, e, k := apiError(c, err)
		c.JSON(code, PaymentResponse{
			Error: e,
			Kind:  k,
		})
		return
	}

	c.JSON(http.StatusCreated, PaymentResponse{
		Data: &checkout,
	})
}

// ConfirmPayment credits a paid contribution to its gift
//
//	@Summary		Confirm payment
//	@Description	Asks the payment provider if the session has been paid and credits the contribution.
//	@Description	Confirming a session more than once returns the gift unchanged with "applied" set to false.
//	@Description	If the contribution no longer fits the gift, it is rejected and the rule is returned.
//	@Tags			Payments
//	@Produce		json
//	@Success		200		{object}	PaymentConfirmResponse
//	@Failure		400		{object}	PaymentConfirmResponse
//	@Failure		402		{object}	PaymentConfirmResponse
//	@Failure		404		{object}	PaymentConfirmResponse
//	@Failure		409		{object}	PaymentConfirmResponse
//	@Failure		500		{object}	PaymentConfirmResponse
//	@Param			payment	body		PaymentConfirmEditable	true	"Payment session"
//	@Router			/v1/payments/confirm [post]
func (co Controller) ConfirmPayment(c *gin.Context) {
	var editable PaymentConfirmEditable

	err := httputil.BindData(c, &editable)
	if err == nil && editable.GiftID == ez_uuid.Nil {
		err = httputil.ErrInvalidUUID
	}
	if err != nil {
		code, e, k := apiError(c, err)
		c.JSON(code, PaymentConfirmResponse{
			Error: e,
			Kind:  k,
		})
		return
	}

	gift, applied, err := co.Gifts.ConfirmPayment(c.Request.Context(), editable.GiftID.UUID, editable.SessionID)
	if err != nil {
		code, e, k := apiError(c, err)
		r := PaymentConfirmResponse{
			Error: e,
			Kind:  k,
		}

		// A rejected contribution still returns the current state of the gift
		var ruleErr *contribution.Error
		if errors.As(err, &ruleErr) && gift.ID != uuid.Nil {
			apiResource := newGift(c, co.Gifts, gift)
			r.Data = &apiResource
		}

		c.JSON(code, r)
		return
	}

	apiResource := newGift(c, co.Gifts, gift)
	c.JSON(http.StatusOK, PaymentConfirmResponse{
		Data:    &apiResource,
		Applied: applied,
	})
}

// PaymentWebhook confirms payments pushed by the payment provider
//
//	@Summary		Payment webhook
//	@Description	Receives events from the payment provider. Completed checkouts are credited to their gift.
//	@Description	Events that do not confirm a payment and contributions that no longer fit the gift are acknowledged without changes.
//	@Tags			Payments
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			Stripe-Signature	header	string	false	"Signature of the payload"
//	@Router			/v1/payments/webhook [post]
func (co Controller) PaymentWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidBody.Error(),
		})
		return
	}

	if len(payload) == 0 {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrRequestBodyEmpty.Error(),
		})
		return
	}

	_, applied, err := co.Gifts.HandleWebhook(c.Request.Context(), payload, c.GetHeader(SignatureHeader))

	var ruleErr *contribution.Error
	switch {
	case err == nil:
		log.Debug().Str("request-id", requestid.Get(c)).Bool("applied", applied).Msg("webhook handled")
	case errors.Is(err, payment.ErrIgnoredEvent):
		log.Debug().Str("request-id", requestid.Get(c)).Msg("webhook event ignored")
	case errors.As(err, &ruleErr):
		// The provider must not retry rejected contributions, they are handled by the service
		log.Info().Str("request-id", requestid.Get(c)).Str("kind", string(ruleErr.Kind)).Msg("webhook contribution rejected")
	default:
		code, e, k := apiError(c, err)
		r := httpError{Error: *e}
		if k != nil {
			r.Kind = *k
		}
		c.JSON(code, r)
		return
	}

	c.Status(http.StatusNoContent)
}
