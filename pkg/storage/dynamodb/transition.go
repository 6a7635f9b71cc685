package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/openfund/ledger/pkg/storage"
)

// transition is the reusable conditional status update: the expected prior
// status is part of the match condition, so an attempt that lost a race
// matches zero rows instead of clobbering a newer state. Callers treat the
// resulting ErrStatusConflict as benign or hard depending on their contract.
type transition struct {
	Table string
	Key   map[string]types.AttributeValue
	From  string
	To    string
	// Sets holds extra attributes written alongside the status change,
	// e.g. previous_status or updated_at.
	Sets map[string]types.AttributeValue
}

func (t transition) expression() (expr string, names map[string]string, vals map[string]types.AttributeValue) {
	expr = "SET #status = :to"
	names = map[string]string{"#status": "status"}
	vals = map[string]types.AttributeValue{
		":to":   &types.AttributeValueMemberS{Value: t.To},
		":from": &types.AttributeValueMemberS{Value: t.From},
	}
	i := 0
	for attr, av := range t.Sets {
		placeholder := fmt.Sprintf(":v%d", i)
		expr += fmt.Sprintf(", %s = %s", attr, placeholder)
		vals[placeholder] = av
		i++
	}
	return expr, names, vals
}

// item renders the transition as one operation of a TransactWriteItems call.
func (t transition) item() types.TransactWriteItem {
	expr, names, vals := t.expression()
	return types.TransactWriteItem{
		Update: &types.Update{
			TableName:                 aws.String(t.Table),
			Key:                       t.Key,
			UpdateExpression:          aws.String(expr),
			ConditionExpression:       aws.String("#status = :from"),
			ExpressionAttributeNames:  names,
			ExpressionAttributeValues: vals,
		},
	}
}

// run executes the transition as a standalone UpdateItem, mapping a failed
// condition to ErrStatusConflict.
func (s *Store) run(ctx context.Context, t transition) error {
	expr, names, vals := t.expression()
	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(t.Table),
		Key:                       t.Key,
		UpdateExpression:          aws.String(expr),
		ConditionExpression:       aws.String("#status = :from"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: vals,
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrStatusConflict
		}
		return fmt.Errorf("failed to transition status %s -> %s: %w", t.From, t.To, err)
	}
	return nil
}
