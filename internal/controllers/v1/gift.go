package v1

import (
	"net/http"

	"github.com/giftsplit/backend/internal/auth"
	"github.com/giftsplit/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

func (co Controller) RegisterGiftRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", co.OptionsGifts)
		r.POST("", co.CreateGift)
	}
	{
		r.OPTIONS("/:id", co.OptionsGiftDetail)
		r.GET("/:id", co.GetGift)
	}
	{
		r.OPTIONS("/:id/suggestions", co.OptionsGiftSuggestions)
		r.GET("/:id/suggestions", co.GetGiftSuggestions)
	}
}

// OptionsGifts returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Gifts
//	@Success		204
//	@Router			/v1/gifts [options]
func (co Controller) OptionsGifts(c *gin.Context) {
	httputil.OptionsPost(c)
}

// OptionsGiftDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Gifts
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/gifts/{id} [options]
func (co Controller) OptionsGiftDetail(c *gin.Context) {
	id, err := bindURIID(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	_, err = co.Gifts.Get(c.Request.Context(), id)
	if err != nil {
		code, e, _ := apiError(c, err)
		c.JSON(code, httpError{
			Error: *e,
		})
		return
	}

	httputil.OptionsGet(c)
}

// OptionsGiftSuggestions returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Gifts
//	@Success		204
//	@Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/gifts/{id}/suggestions [options]
func (co Controller) OptionsGiftSuggestions(c *gin.Context) {
	httputil.OptionsGet(c)
}

// CreateGift creates a new gift
//
//	@Summary		Create gift
//	@Description	Creates a new gift. The gift accepts contributions for seven days.
//	@Description	When no organizer email is sent, the email of the signed-in user is used.
//	@Tags			Gifts
//	@Produce		json
//	@Success		201		{object}	GiftCreateResponse
//	@Failure		400		{object}	GiftCreateResponse
//	@Failure		500		{object}	GiftCreateResponse
//	@Param			gift	body		GiftEditable	true	"Gift"
//	@Router			/v1/gifts [post]
func (co Controller) CreateGift(c *gin.Context) {
	var editable GiftEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editable)
	if err != nil {
		code, e, k := apiError(c, err)
		c.JSON(code, GiftCreateResponse{
			Error: e,
			Kind:  k,
		})
		return
	}

	if editable.OrganizerEmail == "" {
		if session, ok := auth.FromContext(c); ok {
			editable.OrganizerEmail = session.Email
		}
	}

	gift, err := co.Gifts.Create(c.Request.Context(), editable.model())
	if err != nil {
		code, e, k := apiError(c, err)
		c.JSON(code, GiftCreateResponse{
			Error: e,
			Kind:  k,
		})
		return
	}

	apiResource := newGift(c, co.Gifts, gift)
	c.JSON(http.StatusCreated, GiftCreateResponse{
		Data:          &apiResource,
		ShareableLink: apiResource.Links.Share,
	})
}

// GetGift returns a specific gift
//
//	@Summary		Get gift
//	@Description	Returns a specific gift with its funding progress
//	@Tags			Gifts
//	@Produce		json
//	@Success		200	{object}	GiftResponse
//	@Failure		400	{object}	GiftResponse
//	@Failure		404	{object}	GiftResponse
//	@Failure		500	{object}	GiftResponse
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/gifts/{id} [get]
func (co Controller) GetGift(c *gin.Context) {
	id, err := bindURIID(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GiftResponse{
			Error: &s,
		})
		return
	}

	gift, err := co.Gifts.Get(c.Request.Context(), id)
	if err != nil {
		code, e, k := apiError(c, err)
		c.JSON(code, GiftResponse{
			Error: e,
			Kind:  k,
		})
		return
	}

	apiResource := newGift(c, co.Gifts, gift)
	c.JSON(http.StatusOK, GiftResponse{
		Data: &apiResource,
	})
}

// GetGiftSuggestions returns the suggested contribution amounts for a gift
//
//	@Summary		Get contribution suggestions
//	@Description	Returns quick-pick amounts for the remaining balance of a gift. Amounts above the remaining balance are capped.
//	@Tags			Gifts
//	@Produce		json
//	@Success		200	{object}	SuggestionsResponse
//	@Failure		400	{object}	SuggestionsResponse
//	@Failure		404	{object}	SuggestionsResponse
//	@Failure		500	{object}	SuggestionsResponse
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/gifts/{id}/suggestions [get]
func (co Controller) GetGiftSuggestions(c *gin.Context) {
	id, err := bindURIID(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SuggestionsResponse{
			Error: &s,
		})
		return
	}

	suggestions, err := co.Gifts.Suggestions(c.Request.Context(), id)
	if err != nil {
		code, e, _ := apiError(c, err)
		c.JSON(code, SuggestionsResponse{
			Error: e,
		})
		return
	}

	c.JSON(http.StatusOK, SuggestionsResponse{
		Data: suggestions,
	})
}
