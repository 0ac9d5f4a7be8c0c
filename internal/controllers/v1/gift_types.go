package v1

import (
	"fmt"
	"time"

	"github.com/giftsplit/backend/internal/contribution"
	"github.com/giftsplit/backend/internal/gifts"
	"github.com/giftsplit/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type GiftEditable struct {
	Description    string                 `json:"description" example:"Birthday present for Jane"`                             // What the money is collected for
	Amount         decimal.Decimal        `json:"amount" example:"150" minimum:"0.01" maximum:"10000" multipleOf:"0.01"`       // The funding target
	SplitType      contribution.SplitType `json:"splitType" example:"even" enums:"even,custom" default:"even"`                 // How the amount is split between the contributors
	NumberOfPeople int                    `json:"numberOfPeople" example:"3" minimum:"2" maximum:"20"`                         // Number of shares
	CustomSplits   []decimal.Decimal      `json:"customSplits,omitempty"`                                                      // Amount per share, only for custom splits
	OrganizerEmail string                 `json:"organizerEmail" example:"jane@example.com" binding:"omitempty,email,max=254"` // Defaults to the email of the signed-in user
}

// model returns the service input for the API representation of the editable fields
func (editable GiftEditable) model() gifts.CreateInput {
	splitType := editable.SplitType
	if splitType == "" {
		splitType = contribution.SplitEven
	}

	return gifts.CreateInput{
		Description:    editable.Description,
		Amount:         editable.Amount,
		SplitType:      splitType,
		NumberOfPeople: editable.NumberOfPeople,
		CustomSplits:   editable.CustomSplits,
		OrganizerEmail: editable.OrganizerEmail,
	}
}

type GiftLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/gifts/c1a96ae4-80e3-4827-8ed0-c7656f224fee"`                    // The gift itself
	Suggestions string `json:"suggestions" example:"https://example.com/api/v1/gifts/c1a96ae4-80e3-4827-8ed0-c7656f224fee/suggestions"` // Suggested contribution amounts
	Payments    string `json:"payments" example:"https://example.com/api/v1/payments"`                                                  // Start a payment for this gift here
	Share       string `json:"share" example:"https://giftsplit.example.com/gift/c1a96ae4-80e3-4827-8ed0-c7656f224fee"`                 // The link to share with contributors
}

type Gift struct {
	models.DefaultModel
	Description         string                 `json:"description" example:"Birthday present for Jane"`
	Amount              decimal.Decimal        `json:"amount" example:"150"`
	SplitType           contribution.SplitType `json:"splitType" example:"even"`
	NumberOfPeople      int                    `json:"numberOfPeople" example:"3"`
	CustomSplits        []decimal.Decimal      `json:"customSplits,omitempty"`
	Shares              []decimal.Decimal      `json:"shares"`                   // Amount of every share, rounded to cents
	PaidAmounts         []decimal.Decimal      `json:"paidAmounts"`              // Amount paid toward every share
	Status              models.GiftStatus      `json:"status" example:"pending"` // pending, funded, refunded or expired
	OrganizerEmail      string                 `json:"organizerEmail" example:"jane@example.com"`
	ExpiresAt           time.Time              `json:"expiresAt" example:"2024-05-08T12:00:00Z"`
	MinimumContribution decimal.Decimal        `json:"minimumContribution" example:"15"`
	ProcessingFee       decimal.Decimal        `json:"processingFee" example:"0.5"` // Charged on top of every contribution
	Progress            contribution.Progress  `json:"progress"`
	Contributions       []models.Contribution  `json:"contributions"`
	Links               GiftLinks              `json:"links"`
}

// newGift returns the API v1 representation of the resource
func newGift(c *gin.Context, service *gifts.Service, model models.Gift) Gift {
	url := c.GetString(string(models.DBContextURL))

	// The split has been validated on creation
	shares, _ := model.Split().Shares()

	return Gift{
		DefaultModel:        model.DefaultModel,
		Description:         model.Description,
		Amount:              model.Amount,
		SplitType:           model.SplitType,
		NumberOfPeople:      model.NumberOfPeople,
		CustomSplits:        model.CustomSplits,
		Shares:              shares,
		PaidAmounts:         model.PaidAmounts,
		Status:              model.Status,
		OrganizerEmail:      model.OrganizerEmail,
		ExpiresAt:           model.ExpiresAt,
		MinimumContribution: contribution.MinimumContribution(model.Amount),
		ProcessingFee:       contribution.ProcessingFee,
		Progress:            model.Progress(),
		Contributions:       model.Contributions,
		Links: GiftLinks{
			Self:        fmt.Sprintf("%s/v1/gifts/%s", url, model.ID),
			Suggestions: fmt.Sprintf("%s/v1/gifts/%s/suggestions", url, model.ID),
			Payments:    fmt.Sprintf("%s/v1/payments", url),
			Share:       service.ShareLink(model.ID),
		},
	}
}

type GiftResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Kind  *string `json:"kind,omitempty" example:"ValidationError"`                      // The rule that rejected the request, if any
	Data  *Gift   `json:"data"`                                                          // The resource
}

type GiftCreateResponse struct {
	Error         *string `json:"error" example:"Maximum 20 people"`                                                                         // The error, if any occurred
	Kind          *string `json:"kind,omitempty" example:"ValidationError"`                                                                  // The rule that rejected the request, if any
	Data          *Gift   `json:"data"`                                                                                                      // The created resource
	ShareableLink string  `json:"shareableLink,omitempty" example:"https://giftsplit.example.com/gift/c1a96ae4-80e3-4827-8ed0-c7656f224fee"` // The link to share with contributors
}

type SuggestionsResponse struct {
	Error *string                   `json:"error" example:"there is no gift matching your query"` // The error, if any occurred
	Data  []contribution.Suggestion `json:"data"`                                                 // Suggested amounts in the order 25%, 50%, 100%, custom
}
