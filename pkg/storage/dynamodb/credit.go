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

// Credit atomically appends a credit transaction and increments the wallet
// balance. The transaction row is keyed on the idempotency key, so a replayed
// event finds the existing row and returns it unchanged: the upstream layers
// (outbox relay, gateway webhooks) are at-least-once, and this is the
// exactly-once boundary.
func (s *Store) Credit(ctx context.Context, params storage.CreditParams) (*models.WalletTransaction, error) {
	if params.Amount <= 0 {
		return nil, fmt.Errorf("credit amount must be positive, got %d", params.Amount)
	}

	// 1. Get the wallet. Wallets are never auto-provisioned here.
	wallet, err := s.GetWallet(ctx, params.OwnerId, params.Purse)
	if err != nil {
		return nil, err
	}

	// 2. Check for an existing transaction under the same idempotency key.
	idemKey := params.Key.String()
	existing, err := s.getTransactionByKey(ctx, wallet.Id, idemKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	// 3. Build the new transaction row.
	tx := newWalletTransaction(wallet.Id, params.Amount, params.Kind, params.Key)

	txAV, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction: %w", err)
	}
	amountAV, err := attributevalue.Marshal(params.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal amount: %w", err)
	}

	// 4. Construct the TransactWriteItems input: insert the row and increment
	// the balance, both or neither.
	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Create the transaction row, keyed on the idempotency key.
				Put: &types.Put{
					TableName:           aws.String(s.TransactionsTableName),
					Item:                txAV,
					ConditionExpression: aws.String("attribute_not_exists(idem_key)"),
				},
			},
			{
				// Operation 2: Increment the wallet balance.
				Update: &types.Update{
					TableName: aws.String(s.WalletsTableName),
					Key: map[string]types.AttributeValue{
						"owner_id":   &types.AttributeValueMemberS{Value: params.OwnerId},
						"purse_kind": &types.AttributeValueMemberS{Value: string(params.Purse)},
					},
					UpdateExpression:    aws.String("SET balance = balance + :amount, version = version + :inc"),
					ConditionExpression: aws.String("version = :version"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount":  amountAV,
						":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", wallet.Version)},
						":inc":     &types.AttributeValueMemberN{Value: "1"},
					},
				},
			},
		},
	}

	// 5. Execute the transaction.
	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) && len(tce.CancellationReasons) > 0 {
			// The Put condition failing means a concurrent credit with the same
			// key won the race; resolve to the row it wrote.
			if code := tce.CancellationReasons[0].Code; code != nil && *code == "ConditionalCheckFailed" {
				winner, getErr := s.getTransactionByKey(ctx, wallet.Id, idemKey)
				if getErr != nil {
					return nil, getErr
				}
				if winner != nil {
					return winner, nil
				}
			}
		}
		return nil, fmt.Errorf("failed to execute credit transaction: %w", err)
	}

	return tx, nil
}

// newWalletTransaction builds the append-only row for a ledger write.
func newWalletTransaction(walletID string, amount int64, kind models.TransactionKind, key models.IdempotencyKey) *models.WalletTransaction {
	tx := &models.WalletTransaction{
		Id:        uuid.New().String(),
		WalletId:  walletID,
		IdemKey:   key.String(),
		Amount:    amount,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
	switch k := key.(type) {
	case models.ByReference:
		tx.ReferenceId = k.ReferenceId
	case models.ByGateway:
		tx.Gateway = k.Gateway
		tx.GatewayTxId = k.ExternalId
	}
	return tx
}

// getTransactionByKey retrieves the transaction stored under an idempotency
// key, or nil if none exists.
func (s *Store) getTransactionByKey(ctx context.Context, walletID, idemKey string) (*models.WalletTransaction, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.TransactionsTableName),
		Key: map[string]types.AttributeValue{
			"wallet_id": &types.AttributeValueMemberS{Value: walletID},
			"idem_key":  &types.AttributeValueMemberS{Value: idemKey},
		},
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction by idempotency key: %w", err)
	}
	if result.Item == nil {
		return nil, nil
	}

	var tx models.WalletTransaction
	if err := attributevalue.UnmarshalMap(result.Item, &tx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
	}
	return &tx, nil
}
