package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/shop-reorder-ledger/pkg/models"
	"github.com/chris/shop-reorder-ledger/pkg/storage"
	"github.com/chris/shop-reorder-ledger/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testState() *models.ShopState {
	return &models.ShopState{
		ShopID:           "shop-1",
		Inventory:        60,
		RetailPrice:      10,
		WholesalePrice:   5,
		ReorderThreshold: 50,
		ReorderQuantity:  500,
		Distributor:      "dist-1",
		Ratings:          map[string]int64{"dist-1": 2},
		Version:          3,
		UpdatedAt:        time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC),
	}
}

func TestLoad(t *testing.T) {
	state := testState()

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, ShopTableName: "shops"}

		stateAV, _ := attributevalue.MarshalMap(state)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: stateAV}, nil)

		result, err := store.Load(context.Background(), "shop-1")

		assert.NoError(t, err)
		assert.Equal(t, state, result)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, ShopTableName: "shops"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		_, err := store.Load(context.Background(), "shop-1")

		assert.ErrorIs(t, err, storage.ErrStateNotFound)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, ShopTableName: "shops"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(nil, errors.New("get item failed"))

		_, err := store.Load(context.Background(), "shop-1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get shop state")
		mockClient.AssertExpectations(t)
	})
}

func TestSave(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, ShopTableName: "shops"}

		mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.PutItemInput) bool {
			prev, ok := input.ExpressionAttributeValues[":prev"].(*types.AttributeValueMemberN)
			return ok && prev.Value == "2"
		})).Return(&dynamodb.PutItemOutput{}, nil)

		err := store.Save(context.Background(), testState())

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Version Conflict", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, ShopTableName: "shops"}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		err := store.Save(context.Background(), testState())

		assert.ErrorIs(t, err, storage.ErrVersionConflict)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, ShopTableName: "shops"}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, errors.New("put item failed"))

		err := store.Save(context.Background(), testState())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to put shop state")
		mockClient.AssertExpectations(t)
	})
}
