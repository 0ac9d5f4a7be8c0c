package store_test

import (
	"context"
	"errors"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamoDB keeps items in memory and evaluates the two condition
// expressions the store uses.
type fakeDynamoDB struct {
	mu    sync.Mutex
	items map[string]map[string]dynamodbtypes.AttributeValue

	// conflicts is the number of versioned writes that fail because
	// another writer bumped the version first
	conflicts int

	describeErr error
}

func newFakeDynamoDB() *fakeDynamoDB {
	return &fakeDynamoDB{
		items: make(map[string]map[string]dynamodbtypes.AttributeValue),
	}
}

func (f *fakeDynamoDB) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := in.Key["id"].(*dynamodbtypes.AttributeValueMemberS).Value
	item, ok := f.items[id]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}

	return &dynamodb.GetItemOutput{Item: item}, nil
}

func (f *fakeDynamoDB) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := in.Item["id"].(*dynamodbtypes.AttributeValueMemberS).Value
	existing, exists := f.items[id]

	failed := &dynamodbtypes.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}

	switch aws.ToString(in.ConditionExpression) {
	case "attribute_not_exists(id)":
		if exists {
			return nil, failed
		}
	case "version = :version":
		if f.conflicts > 0 {
			f.conflicts--
			existing["version"] = &dynamodbtypes.AttributeValueMemberN{Value: "100"}
		}

		want := in.ExpressionAttributeValues[":version"].(*dynamodbtypes.AttributeValueMemberN).Value
		if !exists || existing["version"].(*dynamodbtypes.AttributeValueMemberN).Value != want {
			return nil, failed
		}
	case "":
	default:
		return nil, errors.New("unsupported condition expression")
	}

	f.items[id] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamoDB) DescribeTable(_ context.Context, in *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if f.describeErr != nil {
		return nil, f.describeErr
	}

	return &dynamodb.DescribeTableOutput{
		Table: &dynamodbtypes.TableDescription{TableName: in.TableName},
	}, nil
}
