package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/openfund/ledger/pkg/models"
	"github.com/openfund/ledger/pkg/storage"
)

const outboxStatusGSI = "status-created_at-index"

// ListPendingEvents retrieves up to limit PENDING outbox events, oldest first.
func (s *Store) ListPendingEvents(ctx context.Context, limit int32) ([]models.OutboxEvent, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.OutboxTableName),
		IndexName:              aws.String(outboxStatusGSI),
		KeyConditionExpression: aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(models.OutboxPending)},
		},
		ScanIndexForward: aws.Bool(true), // Oldest first; delivery order follows creation order.
		Limit:            &limit,
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for pending outbox events: %w", err)
	}

	var events []models.OutboxEvent
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal outbox events: %w", err)
	}

	return events, nil
}

// MarkEventDispatched transitions an event PENDING -> DISPATCHED. A lost
// condition means another relay instance already delivered it; the caller
// treats the resulting ErrStatusConflict as benign.
func (s *Store) MarkEventDispatched(ctx context.Context, eventID string) error {
	return s.run(ctx, transition{
		Table: s.OutboxTableName,
		Key:   map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: eventID}},
		From:  string(models.OutboxPending),
		To:    string(models.OutboxDispatched),
	})
}

// RecordEventFailure increments the event's attempt counter and, once the
// exhaustion threshold is reached, parks it as FAILED so operators can see
// permanently stuck events instead of an indefinitely PENDING backlog.
func (s *Store) RecordEventFailure(ctx context.Context, eventID string, maxAttempts int) (models.OutboxStatus, error) {
	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.OutboxTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: eventID},
		},
		UpdateExpression: aws.String("ADD attempts :one"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueAllNew,
	}

	result, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to record outbox delivery failure: %w", err)
	}

	var event models.OutboxEvent
	if err := attributevalue.UnmarshalMap(result.Attributes, &event); err != nil {
		return "", fmt.Errorf("failed to unmarshal outbox event: %w", err)
	}

	if event.Attempts < maxAttempts {
		return event.Status, nil
	}

	err = s.run(ctx, transition{
		Table: s.OutboxTableName,
		Key:   map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: eventID}},
		From:  string(models.OutboxPending),
		To:    string(models.OutboxFailed),
	})
	if err != nil {
		// Another relay instance dispatched it between our two writes.
		if errors.Is(err, storage.ErrStatusConflict) {
			return event.Status, nil
		}
		return "", err
	}

	return models.OutboxFailed, nil
}
