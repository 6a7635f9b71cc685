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

const inflowIDGSI = "id-index"

// GetSpendingRequest retrieves a spending request from DynamoDB by its ID.
func (s *Store) GetSpendingRequest(ctx context.Context, requestID string) (*models.SpendingRequest, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.RequestsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: requestID},
		},
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get spending request from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, storage.ErrRequestNotFound
	}

	var req models.SpendingRequest
	if err := attributevalue.UnmarshalMap(result.Item, &req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal spending request: %w", err)
	}

	return &req, nil
}

// CreateSpendingRequest creates a new spending request in PENDING status.
func (s *Store) CreateSpendingRequest(ctx context.Context, req *models.SpendingRequest) (*models.SpendingRequest, error) {
	now := time.Now()
	req.Id = uuid.New().String()
	req.Status = models.RequestPending
	req.CreatedAt = now
	req.UpdatedAt = now

	reqAV, err := attributevalue.MarshalMap(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal spending request: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.RequestsTableName),
		Item:                reqAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to create spending request in DynamoDB: %w", err)
	}

	return req, nil
}

// ApproveSpendingRequest transitions a request PENDING -> APPROVED.
func (s *Store) ApproveSpendingRequest(ctx context.Context, requestID string) error {
	return s.requestTransition(ctx, requestID, models.RequestPending, models.RequestApproved)
}

// RejectSpendingRequest transitions a request PENDING -> REJECTED.
func (s *Store) RejectSpendingRequest(ctx context.Context, requestID string) error {
	return s.requestTransition(ctx, requestID, models.RequestPending, models.RequestRejected)
}

func (s *Store) requestTransition(ctx context.Context, requestID string, from, to models.RequestStatus) error {
	nowAV, err := attributevalue.Marshal(time.Now())
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp for request transition: %w", err)
	}
	return s.run(ctx, transition{
		Table: s.RequestsTableName,
		Key:   map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: requestID}},
		From:  string(from),
		To:    string(to),
		Sets:  map[string]types.AttributeValue{"updated_at": nowAV},
	})
}

// CreateInflowTransaction records an admin-initiated payout against an
// APPROVED spending request. The table is keyed on request_id, so the
// one-inflow-per-request invariant holds at the key level and a duplicate
// attempt fails its put condition.
func (s *Store) CreateInflowTransaction(ctx context.Context, inflow *models.InflowTransaction) (*models.InflowTransaction, error) {
	// 1. Validate against the referenced request, fetched fresh.
	req, err := s.GetSpendingRequest(ctx, inflow.RequestId)
	if err != nil {
		return nil, err
	}
	if req.Kind != inflow.RequestKind {
		// The caller referenced a request of the other kind; from its point of
		// view that request does not exist.
		return nil, storage.ErrRequestNotFound
	}
	if req.Status != models.RequestApproved {
		return nil, storage.ErrRequestNotApproved
	}
	if inflow.Amount != req.TotalCost {
		return nil, storage.ErrAmountMismatch
	}

	// 2. Complete the record with server-side details. The payee is the
	// request's author; the admin only initiates.
	inflow.Id = uuid.New().String()
	inflow.PayeeId = req.RequesterId
	inflow.Status = models.InflowPending
	inflow.IsReported = false
	inflow.ReportedAt = nil
	inflow.CreatedAt = time.Now()

	inflowAV, err := attributevalue.MarshalMap(inflow)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal inflow transaction: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.InflowsTableName),
		Item:                inflowAV,
		ConditionExpression: aws.String("attribute_not_exists(request_id)"),
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, storage.ErrDisbursementExists
		}
		return nil, fmt.Errorf("failed to create inflow transaction in DynamoDB: %w", err)
	}

	return inflow, nil
}

// GetInflowTransaction retrieves an inflow transaction by its ID.
func (s *Store) GetInflowTransaction(ctx context.Context, inflowID string) (*models.InflowTransaction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.InflowsTableName),
		IndexName:              aws.String(inflowIDGSI),
		KeyConditionExpression: aws.String("id = :id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: inflowID},
		},
		Limit: aws.Int32(1),
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for inflow transaction: %w", err)
	}
	if len(result.Items) == 0 {
		return nil, storage.ErrDisbursementNotFound
	}

	var inflow models.InflowTransaction
	if err := attributevalue.UnmarshalMap(result.Items[0], &inflow); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inflow transaction: %w", err)
	}

	return &inflow, nil
}

// ConfirmInflowTransaction applies the payee's one-time confirmation. The
// is_reported flag is the lock: it is part of the update's condition, so a
// second confirmation matches zero rows regardless of outcome. A COMPLETED
// outcome also moves the originating request APPROVED -> DISBURSED in the
// same atomic unit; FAILED leaves the request for an out-of-band retry.
func (s *Store) ConfirmInflowTransaction(ctx context.Context, inflowID string, outcome models.InflowStatus, payeeID string) (*models.InflowTransaction, error) {
	if outcome != models.InflowCompleted && outcome != models.InflowFailed {
		return nil, fmt.Errorf("invalid confirmation outcome %q", outcome)
	}

	inflow, err := s.GetInflowTransaction(ctx, inflowID)
	if err != nil {
		return nil, err
	}
	if inflow.PayeeId != payeeID {
		return nil, storage.ErrNotReceiver
	}
	if inflow.IsReported {
		return nil, storage.ErrAlreadyReported
	}

	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for confirmation: %w", err)
	}

	items := []types.TransactWriteItem{
		{
			// Operation 1: Report the outcome, locking the row.
			Update: &types.Update{
				TableName: aws.String(s.InflowsTableName),
				Key: map[string]types.AttributeValue{
					"request_id": &types.AttributeValueMemberS{Value: inflow.RequestId},
				},
				UpdateExpression:    aws.String("SET #status = :outcome, is_reported = :reported, reported_at = :now"),
				ConditionExpression: aws.String("is_reported = :unreported"),
				ExpressionAttributeNames: map[string]string{
					"#status": "status",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":outcome":    &types.AttributeValueMemberS{Value: string(outcome)},
					":reported":   &types.AttributeValueMemberBOOL{Value: true},
					":unreported": &types.AttributeValueMemberBOOL{Value: false},
					":now":        nowAV,
				},
			},
		},
	}

	if outcome == models.InflowCompleted {
		// Operation 2: Close out the originating request.
		nowReqAV, err := attributevalue.Marshal(now)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal timestamp for request update: %w", err)
		}
		items = append(items, transition{
			Table: s.RequestsTableName,
			Key:   map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: inflow.RequestId}},
			From:  string(models.RequestApproved),
			To:    string(models.RequestDisbursed),
			Sets:  map[string]types.AttributeValue{"updated_at": nowReqAV},
		}.item())
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) && len(tce.CancellationReasons) > 0 {
			if code := tce.CancellationReasons[0].Code; code != nil && *code == "ConditionalCheckFailed" {
				return nil, storage.ErrAlreadyReported
			}
		}
		return nil, fmt.Errorf("failed to execute confirmation transaction: %w", err)
	}

	inflow.Status = outcome
	inflow.IsReported = true
	inflow.ReportedAt = &now
	return inflow, nil
}
