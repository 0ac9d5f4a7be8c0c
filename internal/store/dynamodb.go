package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/giftsplit/backend/internal/contribution"
	"github.com/giftsplit/backend/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DynamoDBAPI is the part of the DynamoDB client the store uses.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// DynamoDB stores each gift as one item keyed by "id".
type DynamoDB struct {
	client    DynamoDBAPI
	tableName string
}

func NewDynamoDB(client DynamoDBAPI, tableName string) *DynamoDB {
	return &DynamoDB{
		client:    client,
		tableName: tableName,
	}
}

// NewDynamoDBClient loads the AWS configuration from the environment.
// A non-empty endpoint overrides the service endpoint, e.g. for DynamoDB Local.
func NewDynamoDBClient(ctx context.Context, region, endpoint string) (*dynamodb.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

type giftItem struct {
	ID             string             `dynamodbav:"id"`
	Description    string             `dynamodbav:"description"`
	Amount         string             `dynamodbav:"amount"`
	SplitType      string             `dynamodbav:"splitType"`
	NumberOfPeople int                `dynamodbav:"numberOfPeople"`
	CustomSplits   []string           `dynamodbav:"customSplits,omitempty"`
	PaidAmounts    []string           `dynamodbav:"paidAmounts"`
	Contributions  []contributionItem `dynamodbav:"contributions"`
	Status         string             `dynamodbav:"status"`
	OrganizerEmail string             `dynamodbav:"organizerEmail"`
	CreatedAt      time.Time          `dynamodbav:"createdAt"`
	UpdatedAt      time.Time          `dynamodbav:"updatedAt"`
	ExpiresAt      time.Time          `dynamodbav:"expiresAt"`
	Version        int64              `dynamodbav:"version"`
}

type contributionItem struct {
	ID              string     `dynamodbav:"id"`
	ContributorName string     `dynamodbav:"contributorName"`
	Amount          string     `dynamodbav:"amount"`
	Fee             string     `dynamodbav:"fee"`
	Message         string     `dynamodbav:"message,omitempty"`
	ShareIndex      *int       `dynamodbav:"shareIndex,omitempty"`
	Status          string     `dynamodbav:"status"`
	CreatedAt       time.Time  `dynamodbav:"createdAt"`
	PaidAt          *time.Time `dynamodbav:"paidAt,omitempty"`
}

func (d *DynamoDB) Get(ctx context.Context, id uuid.UUID) (models.Gift, error) {
	result, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(d.tableName),
		ConsistentRead: aws.Bool(true),
		Key: map[string]dynamodbtypes.AttributeValue{
			"id": &dynamodbtypes.AttributeValueMemberS{Value: id.String()},
		},
	})
	if err != nil {
		return models.Gift{}, fmt.Errorf("failed to get gift from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return models.Gift{}, ErrGiftNotFound
	}

	var item giftItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return models.Gift{}, fmt.Errorf("failed to unmarshal gift: %w", err)
	}

	return item.model()
}

func (d *DynamoDB) Put(ctx context.Context, gift models.Gift) error {
	gift.Version = 1

	err := d.put(ctx, gift, aws.String("attribute_not_exists(id)"), nil)
	if errors.Is(err, ErrConflict) {
		return ErrGiftExists
	}

	return err
}

// Update writes the item only if its version is unchanged since it was read.
func (d *DynamoDB) Update(ctx context.Context, id uuid.UUID, fn UpdateFunc) (models.Gift, error) {
	return retry(ctx, func() (models.Gift, error) {
		gift, err := d.Get(ctx, id)
		if err != nil {
			return models.Gift{}, err
		}

		version := gift.Version
		if err := fn(&gift); err != nil {
			return models.Gift{}, err
		}

		gift.ID = id
		gift.Version = version + 1
		gift.UpdatedAt = time.Now().UTC()

		err = d.put(ctx, gift, aws.String("version = :version"), map[string]dynamodbtypes.AttributeValue{
			":version": &dynamodbtypes.AttributeValueMemberN{Value: strconv.FormatInt(version, 10)},
		})
		if errors.Is(err, ErrConflict) {
			log.Debug().Str("gift", id.String()).Int64("version", version).Msg("DynamoDB version conflict")
		}
		if err != nil {
			return models.Gift{}, err
		}

		return gift, nil
	})
}

func (d *DynamoDB) put(ctx context.Context, gift models.Gift, condition *string, values map[string]dynamodbtypes.AttributeValue) error {
	item, err := attributevalue.MarshalMap(newGiftItem(gift))
	if err != nil {
		return fmt.Errorf("failed to marshal gift: %w", err)
	}

	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(d.tableName),
		Item:                      item,
		ConditionExpression:       condition,
		ExpressionAttributeValues: values,
	})

	var conditionFailed *dynamodbtypes.ConditionalCheckFailedException
	if errors.As(err, &conditionFailed) {
		return ErrConflict
	}

	if err != nil {
		return fmt.Errorf("failed to save gift to DynamoDB: %w", err)
	}

	return nil
}

func (d *DynamoDB) Ping(ctx context.Context) error {
	_, err := d.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(d.tableName),
	})
	if err != nil {
		return fmt.Errorf("failed to describe DynamoDB table %s: %w", d.tableName, err)
	}

	return nil
}

func newGiftItem(g models.Gift) giftItem {
	item := giftItem{
		ID:             g.ID.String(),
		Description:    g.Description,
		Amount:         g.Amount.String(),
		SplitType:      string(g.SplitType),
		NumberOfPeople: g.NumberOfPeople,
		CustomSplits:   decimalStrings(g.CustomSplits),
		PaidAmounts:    decimalStrings(g.PaidAmounts),
		Contributions:  make([]contributionItem, 0, len(g.Contributions)),
		Status:         string(g.Status),
		OrganizerEmail: g.OrganizerEmail,
		CreatedAt:      g.CreatedAt,
		UpdatedAt:      g.UpdatedAt,
		ExpiresAt:      g.ExpiresAt,
		Version:        g.Version,
	}

	for _, c := range g.Contributions {
		item.Contributions = append(item.Contributions, contributionItem{
			ID:              c.ID,
			ContributorName: c.ContributorName,
			Amount:          c.Amount.String(),
			Fee:             c.Fee.String(),
			Message:         c.Message,
			ShareIndex:      c.ShareIndex,
			Status:          string(c.Status),
			CreatedAt:       c.CreatedAt,
			PaidAt:          c.PaidAt,
		})
	}

	return item
}

func (item giftItem) model() (models.Gift, error) {
	id, err := uuid.Parse(item.ID)
	if err != nil {
		return models.Gift{}, fmt.Errorf("gift item has an invalid id %q: %w", item.ID, err)
	}

	amount, err := decimal.NewFromString(item.Amount)
	if err != nil {
		return models.Gift{}, fmt.Errorf("gift item %s has an invalid amount: %w", item.ID, err)
	}

	custom, err := parseDecimals(item.CustomSplits)
	if err != nil {
		return models.Gift{}, fmt.Errorf("gift item %s has invalid custom splits: %w", item.ID, err)
	}

	paid, err := parseDecimals(item.PaidAmounts)
	if err != nil {
		return models.Gift{}, fmt.Errorf("gift item %s has invalid paid amounts: %w", item.ID, err)
	}

	gift := models.Gift{
		DefaultModel: models.DefaultModel{
			ID: id,
			Timestamps: models.Timestamps{
				CreatedAt: item.CreatedAt.UTC(),
				UpdatedAt: item.UpdatedAt.UTC(),
			},
		},
		Description:    item.Description,
		Amount:         amount,
		SplitType:      contribution.SplitType(item.SplitType),
		NumberOfPeople: item.NumberOfPeople,
		CustomSplits:   custom,
		PaidAmounts:    paid,
		Contributions:  make([]models.Contribution, 0, len(item.Contributions)),
		Status:         models.GiftStatus(item.Status),
		OrganizerEmail: item.OrganizerEmail,
		ExpiresAt:      item.ExpiresAt.UTC(),
		Version:        item.Version,
	}

	for _, c := range item.Contributions {
		a, err := decimal.NewFromString(c.Amount)
		if err != nil {
			return models.Gift{}, fmt.Errorf("contribution %s has an invalid amount: %w", c.ID, err)
		}

		fee, err := decimal.NewFromString(c.Fee)
		if err != nil {
			return models.Gift{}, fmt.Errorf("contribution %s has an invalid fee: %w", c.ID, err)
		}

		gift.Contributions = append(gift.Contributions, models.Contribution{
			ID:              c.ID,
			ContributorName: c.ContributorName,
			Amount:          a,
			Fee:             fee,
			Message:         c.Message,
			ShareIndex:      c.ShareIndex,
			Status:          contribution.Status(c.Status),
			CreatedAt:       c.CreatedAt.UTC(),
			PaidAt:          c.PaidAt,
		})
	}

	return gift, nil
}

func decimalStrings(in []decimal.Decimal) []string {
	if in == nil {
		return nil
	}

	out := make([]string, len(in))
	for i, d := range in {
		out[i] = d.String()
	}
	return out
}

func parseDecimals(in []string) ([]decimal.Decimal, error) {
	if len(in) == 0 {
		return nil, nil
	}

	out := make([]decimal.Decimal, len(in))
	for i, s := range in {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}
