package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/openfund/ledger/pkg/models"
	"github.com/openfund/ledger/pkg/storage"
)

// CreateWallet creates a new wallet record in DynamoDB. Wallets start at a
// zero balance and are only ever created explicitly, before their first
// credit.
func (s *Store) CreateWallet(ctx context.Context, wallet *models.Wallet) (*models.Wallet, error) {
	wallet.Id = uuid.New().String()
	wallet.Balance = 0
	wallet.Version = 1
	wallet.CreatedAt = time.Now()

	walletAV, err := attributevalue.MarshalMap(wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal wallet: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.WalletsTableName),
		Item:                walletAV,
		ConditionExpression: aws.String("attribute_not_exists(owner_id)"), // Prevent overwriting existing wallets.
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, storage.ErrWalletExists
		}
		return nil, fmt.Errorf("failed to create wallet in DynamoDB: %w", err)
	}

	return wallet, nil
}

// GetWallet retrieves a wallet from DynamoDB by its owner and purse kind.
func (s *Store) GetWallet(ctx context.Context, ownerID string, purse models.PurseKind) (*models.Wallet, error) {
	key := map[string]types.AttributeValue{
		"owner_id":   &types.AttributeValueMemberS{Value: ownerID},
		"purse_kind": &types.AttributeValueMemberS{Value: string(purse)},
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.WalletsTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrWalletNotFound
	}

	var wallet models.Wallet
	if err := attributevalue.UnmarshalMap(result.Item, &wallet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet: %w", err)
	}

	return &wallet, nil
}
