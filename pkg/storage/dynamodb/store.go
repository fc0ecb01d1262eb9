package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/shop-reorder-ledger/pkg/models"
	"github.com/chris/shop-reorder-ledger/pkg/storage"
)

// DynamoDBAPI is the subset of the DynamoDB client the store calls, narrowed
// so tests can substitute a mock.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Store implements the SnapshotStore interface using AWS DynamoDB.
type Store struct {
	Client        DynamoDBAPI
	ShopTableName string
}

// New creates a new Store.
func New(client DynamoDBAPI, shopTable string) *Store {
	return &Store{
		Client:        client,
		ShopTableName: shopTable,
	}
}

// Make sure we conform to the interface
var _ storage.SnapshotStore = (*Store)(nil)

// Load retrieves the current snapshot for a shop.
func (s *Store) Load(ctx context.Context, shopID string) (*models.ShopState, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.ShopTableName),
		Key: map[string]types.AttributeValue{
			"shop_id": &types.AttributeValueMemberS{Value: shopID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get shop state: %w", err)
	}
	if out.Item == nil {
		return nil, storage.ErrStateNotFound
	}

	var state models.ShopState
	if err := attributevalue.UnmarshalMap(out.Item, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shop state: %w", err)
	}
	return &state, nil
}

// Save persists a snapshot with a conditional write on the previous version.
// The condition prevents a stale writer from clobbering a newer snapshot.
func (s *Store) Save(ctx context.Context, state *models.ShopState) error {
	item, err := attributevalue.MarshalMap(state)
	if err != nil {
		return fmt.Errorf("failed to marshal shop state: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.ShopTableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(shop_id) OR version = :prev"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":prev": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", state.Version-1)},
		},
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrVersionConflict
		}
		return fmt.Errorf("failed to put shop state: %w", err)
	}

	return nil
}
