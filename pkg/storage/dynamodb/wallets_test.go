package dynamodb

import (
	"context"
	"errors"
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

func TestCreateWallet(t *testing.T) {
	newWallet := func() *models.Wallet {
		return &models.Wallet{OwnerId: "owner-1", PurseKind: models.PurseCampaign}
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, WalletsTableName: "wallets"}

		mockClient.On("PutItem", mock.Anything, mock.AnythingOfType("*dynamodb.PutItemInput")).Return(&dynamodb.PutItemOutput{}, nil).Once()

		created, err := store.CreateWallet(context.Background(), newWallet())

		assert.NoError(t, err)
		assert.NotEmpty(t, created.Id)
		assert.Equal(t, int64(0), created.Balance)
		assert.Equal(t, int64(1), created.Version)
		mockClient.AssertExpectations(t)
	})

	t.Run("Already Exists", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, WalletsTableName: "wallets"}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{}).Once()

		_, err := store.CreateWallet(context.Background(), newWallet())

		assert.ErrorIs(t, err, storage.ErrWalletExists)
		mockClient.AssertExpectations(t)
	})

	t.Run("Put Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, WalletsTableName: "wallets"}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, errors.New("dynamodb is down")).Once()

		_, err := store.CreateWallet(context.Background(), newWallet())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create wallet")
		mockClient.AssertExpectations(t)
	})
}

func TestGetWallet(t *testing.T) {
	wallet := &models.Wallet{Id: "w-1", OwnerId: "owner-1", PurseKind: models.PurseCampaign, Balance: 500, Version: 3}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, WalletsTableName: "wallets"}

		walletAV, _ := attributevalue.MarshalMap(wallet)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: walletAV}, nil).Once()

		got, err := store.GetWallet(context.Background(), "owner-1", models.PurseCampaign)

		assert.NoError(t, err)
		assert.Equal(t, int64(500), got.Balance)
		assert.Equal(t, models.PurseCampaign, got.PurseKind)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, WalletsTableName: "wallets"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil).Once()

		_, err := store.GetWallet(context.Background(), "owner-2", models.PurseOperating)

		assert.ErrorIs(t, err, storage.ErrWalletNotFound)
		mockClient.AssertExpectations(t)
	})
}
