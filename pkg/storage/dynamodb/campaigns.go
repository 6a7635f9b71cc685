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
	"github.com/openfund/ledger/pkg/models"
	"github.com/openfund/ledger/pkg/storage"
)

// GetCampaign retrieves a campaign from DynamoDB by its ID.
func (s *Store) GetCampaign(ctx context.Context, campaignID string) (*models.Campaign, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.CampaignsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: campaignID},
		},
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, storage.ErrCampaignNotFound
	}

	var campaign models.Campaign
	if err := attributevalue.UnmarshalMap(result.Item, &campaign); err != nil {
		return nil, fmt.Errorf("failed to unmarshal campaign: %w", err)
	}

	return &campaign, nil
}

// CreateCampaign creates a new campaign record in ACTIVE status.
func (s *Store) CreateCampaign(ctx context.Context, campaign *models.Campaign) (*models.Campaign, error) {
	campaign.Status = models.CampaignActive
	campaign.CreatedAt = time.Now()

	campaignAV, err := attributevalue.MarshalMap(campaign)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal campaign: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.CampaignsTableName),
		Item:                campaignAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to create campaign in DynamoDB: %w", err)
	}

	return campaign, nil
}

// BeginSettlement atomically moves the campaign ACTIVE -> PROCESSING and
// records the settlement outbox event. The status condition is the mutual
// exclusion between concurrent settlement attempts: the loser matches zero
// rows, the event is not written, and ErrStatusConflict is returned.
func (s *Store) BeginSettlement(ctx context.Context, campaignID string, event *models.OutboxEvent) error {
	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp for settlement: %w", err)
	}

	eventAV, err := attributevalue.MarshalMap(event)
	if err != nil {
		return fmt.Errorf("failed to marshal outbox event: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			// Operation 1: Conditionally transition the campaign status.
			transition{
				Table: s.CampaignsTableName,
				Key:   map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: campaignID}},
				From:  string(models.CampaignActive),
				To:    string(models.CampaignProcessing),
				Sets: map[string]types.AttributeValue{
					"previous_status":   &types.AttributeValueMemberS{Value: string(models.CampaignActive)},
					"changed_status_at": nowAV,
				},
			}.item(),
			{
				// Operation 2: Record the settlement event for the relay.
				Put: &types.Put{
					TableName:           aws.String(s.OutboxTableName),
					Item:                eventAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) && len(tce.CancellationReasons) > 0 {
			if code := tce.CancellationReasons[0].Code; code != nil && *code == "ConditionalCheckFailed" {
				return storage.ErrStatusConflict
			}
		}
		return fmt.Errorf("failed to execute settlement transaction: %w", err)
	}

	return nil
}
