package settlement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/openfund/ledger/pkg/events"
	"github.com/openfund/ledger/pkg/models"
	"github.com/openfund/ledger/pkg/storage"
)

// ReceiverResolver resolves a campaign owner's external identity to the
// internal principal id the wallet ledger knows. Lookups are remote and must
// fail closed: no resolution, no settlement.
type ReceiverResolver interface {
	ResolveReceiver(ctx context.Context, externalID string) (string, error)
}

// Coordinator reacts to surplus signals and performs the single guarded
// transition a settlement makes: ACTIVE -> PROCESSING plus one outbox event,
// exactly once per campaign.
type Coordinator struct {
	Campaigns storage.CampaignStore
	Resolver  ReceiverResolver
	Logger    *slog.Logger
}

// NewCoordinator creates a new Coordinator.
func NewCoordinator(campaigns storage.CampaignStore, resolver ReceiverResolver, logger *slog.Logger) *Coordinator {
	return &Coordinator{Campaigns: campaigns, Resolver: resolver, Logger: logger}
}

// HandleSurplusDetected processes one surplus signal. The signal is
// at-least-once and may be stale, so every guard is a silent no-op rather
// than an error; only infrastructure failures propagate, so the caller can
// let the queue redeliver the signal.
func (c *Coordinator) HandleSurplusDetected(ctx context.Context, signal events.SurplusDetected) error {
	// Re-fetch the campaign fresh; the amount on the signal is never trusted.
	campaign, err := c.Campaigns.GetCampaign(ctx, signal.CampaignId)
	if errors.Is(err, storage.ErrCampaignNotFound) {
		c.Logger.Info("surplus signal for unknown campaign, skipping", "campaign_id", signal.CampaignId)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to fetch campaign %s: %w", signal.CampaignId, err)
	}

	if campaign.Status != models.CampaignActive {
		c.Logger.Info("campaign no longer active, skipping settlement",
			"campaign_id", campaign.Id, "status", string(campaign.Status))
		return nil
	}
	if campaign.ReceivedAmount <= campaign.TargetAmount {
		c.Logger.Info("campaign has no surplus, skipping settlement",
			"campaign_id", campaign.Id,
			"received", campaign.ReceivedAmount, "target", campaign.TargetAmount)
		return nil
	}

	// Resolve the receiver before touching any state; a failed lookup aborts
	// the whole operation with nothing written.
	receiverID, err := c.Resolver.ResolveReceiver(ctx, campaign.OwnerExternalId)
	if err != nil {
		return fmt.Errorf("failed to resolve receiver for campaign %s: %w", campaign.Id, err)
	}

	surplus := campaign.ReceivedAmount - campaign.TargetAmount
	settlementID := uuid.New().String()

	payload, err := json.Marshal(events.SettlementCreated{
		SettlementId:  settlementID,
		CampaignId:    campaign.Id,
		ReceiverId:    receiverID,
		SurplusAmount: surplus,
		Timestamp:     time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal settlement event: %w", err)
	}

	event := &models.OutboxEvent{
		Id:          uuid.New().String(),
		AggregateId: campaign.Id,
		EventType:   events.TypeSettlementCreated,
		Payload:     payload,
		Status:      models.OutboxPending,
		CreatedAt:   time.Now(),
	}

	err = c.Campaigns.BeginSettlement(ctx, campaign.Id, event)
	if errors.Is(err, storage.ErrStatusConflict) {
		// Another instance won the race on this campaign; its event is the one
		// that counts.
		c.Logger.Info("campaign already being settled, skipping", "campaign_id", campaign.Id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to begin settlement for campaign %s: %w", campaign.Id, err)
	}

	c.Logger.Info("settlement created",
		"campaign_id", campaign.Id,
		"settlement_id", settlementID,
		"receiver_id", receiverID,
		"surplus", surplus)
	return nil
}
