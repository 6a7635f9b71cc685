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

// Debit atomically appends a debit transaction and decrements the wallet
// balance. The balance condition guarantees the wallet never goes negative;
// a failed condition surfaces as ErrInsufficientFunds.
func (s *Store) Debit(ctx context.Context, params storage.DebitParams) (*models.WalletTransaction, error) {
	if params.Amount <= 0 {
		return nil, fmt.Errorf("debit amount must be positive, got %d", params.Amount)
	}

	// 1. Get the wallet for the version check.
	wallet, err := s.GetWallet(ctx, params.OwnerId, params.Purse)
	if err != nil {
		return nil, err
	}

	// 2. Build the new transaction row. Debits carry no caller reference in
	// this subsystem; the row id doubles as the key so the row is still unique.
	tx := &models.WalletTransaction{
		Id:        uuid.New().String(),
		WalletId:  wallet.Id,
		Amount:    -params.Amount,
		Kind:      params.Kind,
		CreatedAt: time.Now(),
	}
	tx.IdemKey = "debit#" + tx.Id

	txAV, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction: %w", err)
	}
	amountAV, err := attributevalue.Marshal(params.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal amount: %w", err)
	}

	// 3. Construct the TransactWriteItems input.
	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Create the transaction row.
				Put: &types.Put{
					TableName:           aws.String(s.TransactionsTableName),
					Item:                txAV,
					ConditionExpression: aws.String("attribute_not_exists(idem_key)"),
				},
			},
			{
				// Operation 2: Decrement the wallet balance, refusing to go negative.
				Update: &types.Update{
					TableName: aws.String(s.WalletsTableName),
					Key: map[string]types.AttributeValue{
						"owner_id":   &types.AttributeValueMemberS{Value: params.OwnerId},
						"purse_kind": &types.AttributeValueMemberS{Value: string(params.Purse)},
					},
					UpdateExpression:    aws.String("SET balance = balance - :amount, version = version + :inc"),
					ConditionExpression: aws.String("balance >= :amount AND version = :version"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount":  amountAV,
						":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", wallet.Version)},
						":inc":     &types.AttributeValueMemberN{Value: "1"},
					},
				},
			},
		},
	}

	// 4. Execute the transaction.
	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) && len(tce.CancellationReasons) > 1 {
			if code := tce.CancellationReasons[1].Code; code != nil && *code == "ConditionalCheckFailed" {
				return nil, storage.ErrInsufficientFunds
			}
		}
		return nil, fmt.Errorf("failed to execute debit transaction: %w", err)
	}

	return tx, nil
}
