package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/openfund/ledger/pkg/models"
	"github.com/openfund/ledger/pkg/storage"
	"github.com/openfund/ledger/pkg/storage/dynamodb/mocks"
)

func TestCredit(t *testing.T) {
	wallet := &models.Wallet{Id: "w-1", OwnerId: "owner-1", PurseKind: models.PurseCampaign, Balance: 100, Version: 2}
	params := storage.CreditParams{
		OwnerId: "owner-1",
		Purse:   models.PurseCampaign,
		Amount:  250,
		Kind:    models.TxReceived,
		Key:     models.ByReference{ReferenceId: "settlement-1"},
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, WalletsTableName: "wallets", TransactionsTableName: "wallet_transactions"}

		walletAV, _ := attributevalue.MarshalMap(wallet)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: walletAV}, nil).Once()
		// No existing transaction under this key.
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil).Once()
		mockClient.On("TransactWriteItems", mock.Anything, mock.AnythingOfType("*dynamodb.TransactWriteItemsInput")).Return(&dynamodb.TransactWriteItemsOutput{}, nil).Once()

		tx, err := store.Credit(context.Background(), params)

		assert.NoError(t, err)
		assert.Equal(t, int64(250), tx.Amount)
		assert.Equal(t, "w-1", tx.WalletId)
		assert.Equal(t, "ref#settlement-1", tx.IdemKey)
		assert.Equal(t, "settlement-1", tx.ReferenceId)
		mockClient.AssertExpectations(t)
	})

	t.Run("Replay Returns Existing Transaction", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, WalletsTableName: "wallets", TransactionsTableName: "wallet_transactions"}

		existing := &models.WalletTransaction{Id: "tx-1", WalletId: "w-1", IdemKey: "ref#settlement-1", Amount: 250, Kind: models.TxReceived}

		walletAV, _ := attributevalue.MarshalMap(wallet)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: walletAV}, nil).Once()
		existingAV, _ := attributevalue.MarshalMap(existing)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: existingAV}, nil).Once()

		tx, err := store.Credit(context.Background(), params)

		assert.NoError(t, err)
		assert.Equal(t, "tx-1", tx.Id)
		// TransactWriteItems must never run; the balance was already updated.
		mockClient.AssertNotCalled(t, "TransactWriteItems", mock.Anything, mock.Anything)
		mockClient.AssertExpectations(t)
	})

	t.Run("Lost Race Resolves To Winner", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, WalletsTableName: "wallets", TransactionsTableName: "wallet_transactions"}

		winner := &models.WalletTransaction{Id: "tx-winner", WalletId: "w-1", IdemKey: "ref#settlement-1", Amount: 250}

		walletAV, _ := attributevalue.MarshalMap(wallet)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: walletAV}, nil).Once()
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil).Once()

		cancelled := &types.TransactionCanceledException{
			CancellationReasons: []types.CancellationReason{
				{Code: aws.String("ConditionalCheckFailed")},
				{Code: aws.String("None")},
			},
		}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, cancelled).Once()

		winnerAV, _ := attributevalue.MarshalMap(winner)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: winnerAV}, nil).Once()

		tx, err := store.Credit(context.Background(), params)

		assert.NoError(t, err)
		assert.Equal(t, "tx-winner", tx.Id)
		mockClient.AssertExpectations(t)
	})

	t.Run("Wallet Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, WalletsTableName: "wallets"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil).Once()

		_, err := store.Credit(context.Background(), params)

		assert.ErrorIs(t, err, storage.ErrWalletNotFound)
		mockClient.AssertExpectations(t)
	})

	t.Run("Rejects Non-Positive Amount", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient}

		bad := params
		bad.Amount = 0
		_, err := store.Credit(context.Background(), bad)

		assert.Error(t, err)
		mockClient.AssertNotCalled(t, "GetItem", mock.Anything, mock.Anything)
	})

	t.Run("Transaction Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, WalletsTableName: "wallets", TransactionsTableName: "wallet_transactions"}

		walletAV, _ := attributevalue.MarshalMap(wallet)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: walletAV}, nil).Once()
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil).Once()
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, errors.New("transaction failed")).Once()

		_, err := store.Credit(context.Background(), params)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to execute credit transaction")
		mockClient.AssertExpectations(t)
	})
}

func TestCreditGatewayKey(t *testing.T) {
	wallet := &models.Wallet{Id: "w-1", OwnerId: "owner-1", PurseKind: models.PurseOperating, Balance: 0, Version: 1}

	mockClient := new(mocks.DynamoDBAPI)
	store := &Store{Client: mockClient, WalletsTableName: "wallets", TransactionsTableName: "wallet_transactions"}

	walletAV, _ := attributevalue.MarshalMap(wallet)
	mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: walletAV}, nil).Once()
	mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil).Once()
	mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(&dynamodb.TransactWriteItemsOutput{}, nil).Once()

	tx, err := store.Credit(context.Background(), storage.CreditParams{
		OwnerId: "owner-1",
		Purse:   models.PurseOperating,
		Amount:  40,
		Kind:    models.TxReceived,
		Key:     models.ByGateway{Gateway: "stripe", ExternalId: "pi_123"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "gw#stripe#pi_123", tx.IdemKey)
	assert.Equal(t, "stripe", tx.Gateway)
	assert.Equal(t, "pi_123", tx.GatewayTxId)
	mockClient.AssertExpectations(t)
}
