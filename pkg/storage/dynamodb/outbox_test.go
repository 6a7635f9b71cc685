package dynamodb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/openfund/ledger/pkg/models"
	"github.com/openfund/ledger/pkg/storage"
	"github.com/openfund/ledger/pkg/storage/dynamodb/mocks"
)

func TestListPendingEvents(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, OutboxTableName: "outbox_events"}

		events := []models.OutboxEvent{
			{Id: "ev-1", Status: models.OutboxPending},
			{Id: "ev-2", Status: models.OutboxPending},
		}
		items, _ := attributevalue.MarshalListOfMaps(events)
		mockClient.On("Query", mock.Anything, mock.AnythingOfType("*dynamodb.QueryInput")).Return(&dynamodb.QueryOutput{Items: items}, nil).Once()

		got, err := store.ListPendingEvents(context.Background(), 10)

		assert.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, "ev-1", got[0].Id)
		mockClient.AssertExpectations(t)
	})

	t.Run("Empty", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, OutboxTableName: "outbox_events"}

		mockClient.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{}, nil).Once()

		got, err := store.ListPendingEvents(context.Background(), 10)

		assert.NoError(t, err)
		assert.Empty(t, got)
		mockClient.AssertExpectations(t)
	})
}

func TestMarkEventDispatched(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, OutboxTableName: "outbox_events"}

		mockClient.On("UpdateItem", mock.Anything, mock.AnythingOfType("*dynamodb.UpdateItemInput")).Return(&dynamodb.UpdateItemOutput{}, nil).Once()

		err := store.MarkEventDispatched(context.Background(), "ev-1")

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Already Dispatched", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, OutboxTableName: "outbox_events"}

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{}).Once()

		err := store.MarkEventDispatched(context.Background(), "ev-1")

		assert.ErrorIs(t, err, storage.ErrStatusConflict)
		mockClient.AssertExpectations(t)
	})
}

func TestRecordEventFailure(t *testing.T) {
	const maxAttempts = 5

	t.Run("Below Threshold Stays Pending", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, OutboxTableName: "outbox_events"}

		updated := models.OutboxEvent{Id: "ev-1", Status: models.OutboxPending, Attempts: 2}
		updatedAV, _ := attributevalue.MarshalMap(updated)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(&dynamodb.UpdateItemOutput{Attributes: updatedAV}, nil).Once()

		status, err := store.RecordEventFailure(context.Background(), "ev-1", maxAttempts)

		assert.NoError(t, err)
		assert.Equal(t, models.OutboxPending, status)
		mockClient.AssertExpectations(t)
	})

	t.Run("Exhausted Attempts Parks As Failed", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, OutboxTableName: "outbox_events"}

		updated := models.OutboxEvent{Id: "ev-1", Status: models.OutboxPending, Attempts: maxAttempts}
		updatedAV, _ := attributevalue.MarshalMap(updated)
		// First the counter increments, then the PENDING -> FAILED transition.
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(&dynamodb.UpdateItemOutput{Attributes: updatedAV}, nil).Once()
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(&dynamodb.UpdateItemOutput{}, nil).Once()

		status, err := store.RecordEventFailure(context.Background(), "ev-1", maxAttempts)

		assert.NoError(t, err)
		assert.Equal(t, models.OutboxFailed, status)
		mockClient.AssertExpectations(t)
	})

	t.Run("Dispatched Concurrently Between Writes", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, OutboxTableName: "outbox_events"}

		updated := models.OutboxEvent{Id: "ev-1", Status: models.OutboxDispatched, Attempts: maxAttempts}
		updatedAV, _ := attributevalue.MarshalMap(updated)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(&dynamodb.UpdateItemOutput{Attributes: updatedAV}, nil).Once()
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{}).Once()

		status, err := store.RecordEventFailure(context.Background(), "ev-1", maxAttempts)

		assert.NoError(t, err)
		assert.Equal(t, models.OutboxDispatched, status)
		mockClient.AssertExpectations(t)
	})
}
