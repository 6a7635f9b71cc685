package storage

import (
	"context"

	"github.com/openfund/ledger/pkg/models"
)

// CampaignStore defines the settlement-privileged interface over campaigns.
// BeginSettlement is the only write that moves a campaign out of ACTIVE, and
// it is guarded by the campaign's current status so concurrent settlement
// attempts cannot both succeed.
type CampaignStore interface {
	// GetCampaign retrieves a campaign by its ID. Fails with
	// ErrCampaignNotFound if absent.
	GetCampaign(ctx context.Context, campaignID string) (*models.Campaign, error)

	// CreateCampaign creates a new campaign record in ACTIVE status.
	CreateCampaign(ctx context.Context, campaign *models.Campaign) (*models.Campaign, error)

	// BeginSettlement atomically transitions the campaign ACTIVE -> PROCESSING
	// and records the settlement outbox event, both or neither. It fails with
	// ErrStatusConflict if the campaign is no longer ACTIVE.
	BeginSettlement(ctx context.Context, campaignID string, event *models.OutboxEvent) error
}
