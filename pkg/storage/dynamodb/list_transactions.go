package dynamodb

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/openfund/ledger/pkg/models"
)

const transactionsByTimeGSI = "wallet_id-created_at-index"

// pageCursor is the resumption point of a transaction listing, round-tripped
// through an opaque base64 token.
type pageCursor struct {
	WalletId  string `json:"wallet_id"`
	IdemKey   string `json:"idem_key"`
	CreatedAt string `json:"created_at"`
}

// ListTransactions retrieves a page of a wallet's transactions, newest first.
func (s *Store) ListTransactions(ctx context.Context, walletID string, limit int32, cursor string) ([]models.WalletTransaction, string, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(transactionsByTimeGSI),
		KeyConditionExpression: aws.String("wallet_id = :walletID"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":walletID": &types.AttributeValueMemberS{Value: walletID},
		},
		ScanIndexForward: aws.Bool(false), // Sort by created_at in descending order
		Limit:            &limit,
	}

	if cursor != "" {
		startKey, err := decodeCursor(cursor)
		if err != nil {
			return nil, "", fmt.Errorf("invalid pagination cursor: %w", err)
		}
		input.ExclusiveStartKey = startKey
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query for transactions: %w", err)
	}

	var transactions []models.WalletTransaction
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &transactions); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal transactions: %w", err)
	}

	next := ""
	if result.LastEvaluatedKey != nil {
		next, err = encodeCursor(result.LastEvaluatedKey)
		if err != nil {
			return nil, "", err
		}
	}

	return transactions, next, nil
}

func encodeCursor(lastKey map[string]types.AttributeValue) (string, error) {
	var c pageCursor
	if err := attributevalue.UnmarshalMap(lastKey, &c); err != nil {
		return "", fmt.Errorf("failed to unmarshal pagination key: %w", err)
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal pagination cursor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func decodeCursor(cursor string) (map[string]types.AttributeValue, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, err
	}
	var c pageCursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return map[string]types.AttributeValue{
		"wallet_id":  &types.AttributeValueMemberS{Value: c.WalletId},
		"idem_key":   &types.AttributeValueMemberS{Value: c.IdemKey},
		"created_at": &types.AttributeValueMemberS{Value: c.CreatedAt},
	}, nil
}
