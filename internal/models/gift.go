package models

import (
	"strings"
	"time"

	"github.com/giftsplit/backend/internal/contribution"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type GiftStatus string

const (
	GiftPending  GiftStatus = "pending"
	GiftFunded   GiftStatus = "funded"
	GiftRefunded GiftStatus = "refunded"
	GiftExpired  GiftStatus = "expired"
)

// AnonymousOrganizer is used when a gift is created without an organizer email.
const AnonymousOrganizer = "anonymous@example.com"

// Gift is a funding goal shared with contributors.
//
// The share and contribution lists are stored as JSON so that the whole
// gift is one document in every storage backend.
type Gift struct {
	DefaultModel
	Description    string
	Amount         decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // The funding target
	SplitType      contribution.SplitType
	NumberOfPeople int
	CustomSplits   []decimal.Decimal `gorm:"serializer:json;type:text"`
	PaidAmounts    []decimal.Decimal `gorm:"serializer:json;type:text"` // Amount paid per share slot
	Contributions  []Contribution    `gorm:"serializer:json;type:text"`
	Status         GiftStatus
	OrganizerEmail string
	ExpiresAt      time.Time

	// Incremented on every write, used for conditional updates
	Version int64
}

// Contribution is a payment toward a gift. Its ID is the payment session ID.
type Contribution struct {
	ID              string              `json:"id"`
	ContributorName string              `json:"contributorName"`
	Amount          decimal.Decimal     `json:"amount"`
	Fee             decimal.Decimal     `json:"fee"`
	Message         string              `json:"message,omitempty"`
	ShareIndex      *int                `json:"shareIndex,omitempty"`
	Status          contribution.Status `json:"status"`
	CreatedAt       time.Time           `json:"createdAt"`
	PaidAt          *time.Time          `json:"paidAt,omitempty"`
}

// NewGift validates the parameters and returns a new pending gift
// with zeroed share slots.
func NewGift(description string, split contribution.Split, organizerEmail string, now time.Time) (Gift, error) {
	if err := contribution.ValidateGift(description, split); err != nil {
		return Gift{}, err
	}

	organizerEmail = strings.TrimSpace(organizerEmail)
	if organizerEmail == "" {
		organizerEmail = AnonymousOrganizer
	}

	var custom []decimal.Decimal
	if split.Type == contribution.SplitCustom {
		custom = append(custom, split.Custom...)
	}

	paid := make([]decimal.Decimal, split.People)
	for i := range paid {
		paid[i] = decimal.Zero
	}

	now = now.UTC()
	return Gift{
		DefaultModel: DefaultModel{
			ID: uuid.New(),
			Timestamps: Timestamps{
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		Description:    strings.TrimSpace(description),
		Amount:         split.Total,
		SplitType:      split.Type,
		NumberOfPeople: split.People,
		CustomSplits:   custom,
		PaidAmounts:    paid,
		Contributions:  []Contribution{},
		Status:         GiftPending,
		OrganizerEmail: organizerEmail,
		ExpiresAt:      now.Add(contribution.GiftLifetime),
	}, nil
}

func (g Gift) Self() string {
	return "Gift"
}

func (g *Gift) BeforeSave(_ *gorm.DB) error {
	g.Description = strings.TrimSpace(g.Description)
	g.OrganizerEmail = strings.TrimSpace(g.OrganizerEmail)

	return nil
}

func (g *Gift) AfterSave(_ *gorm.DB) error {
	if !g.Amount.IsPositive() {
		return ErrGiftAmountNotPositive
	}

	return nil
}

func (g *Gift) AfterFind(tx *gorm.DB) error {
	_ = g.DefaultModel.AfterFind(tx)
	g.ExpiresAt = g.ExpiresAt.In(time.UTC)

	return nil
}

// Split returns the split configuration of the gift.
func (g Gift) Split() contribution.Split {
	return contribution.Split{
		Total:  g.Amount,
		Type:   g.SplitType,
		People: g.NumberOfPeople,
		Custom: g.CustomSplits,
	}
}

// Entries returns the contributions in the form the aggregator needs.
func (g Gift) Entries() []contribution.Entry {
	entries := make([]contribution.Entry, 0, len(g.Contributions))
	for _, c := range g.Contributions {
		entries = append(entries, contribution.Entry{
			Name:   c.ContributorName,
			Amount: c.Amount,
			Status: c.Status,
		})
	}
	return entries
}

// Progress aggregates the paid contributions.
func (g Gift) Progress() contribution.Progress {
	return contribution.Aggregate(g.Amount, g.Entries())
}

// Contributors returns the names of everyone who paid.
func (g Gift) Contributors() []string {
	var names []string
	for _, c := range g.Contributions {
		if c.Status == contribution.StatusPaid {
			names = append(names, c.ContributorName)
		}
	}
	return names
}

// StatusAt returns the status of the gift at a point in time. A pending
// gift is expired once its expiry time has passed.
func (g Gift) StatusAt(now time.Time) GiftStatus {
	if g.Status == GiftPending && !now.Before(g.ExpiresAt) {
		return GiftExpired
	}
	return g.Status
}

// ContributionIndex returns the index of the contribution with the session ID, or -1.
func (g Gift) ContributionIndex(sessionID string) int {
	return slices.IndexFunc(g.Contributions, func(c Contribution) bool {
		return c.ID == sessionID
	})
}

// Copy returns a deep copy of the gift.
func (g Gift) Copy() Gift {
	out := g
	out.CustomSplits = append([]decimal.Decimal(nil), g.CustomSplits...)
	out.PaidAmounts = append([]decimal.Decimal(nil), g.PaidAmounts...)
	out.Contributions = make([]Contribution, len(g.Contributions))
	for i, c := range g.Contributions {
		out.Contributions[i] = c
		if c.ShareIndex != nil {
			idx := *c.ShareIndex
			out.Contributions[i].ShareIndex = &idx
		}
		if c.PaidAt != nil {
			paidAt := *c.PaidAt
			out.Contributions[i].PaidAt = &paidAt
		}
	}
	return out
}
