package settlement_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/openfund/ledger/pkg/events"
	"github.com/openfund/ledger/pkg/models"
	"github.com/openfund/ledger/pkg/settlement"
	"github.com/openfund/ledger/pkg/storage"
	"github.com/openfund/ledger/pkg/storage/mocks"
)

type stubResolver struct {
	id  string
	err error
}

func (s stubResolver) ResolveReceiver(ctx context.Context, externalID string) (string, error) {
	return s.id, s.err
}

func activeCampaign() *models.Campaign {
	return &models.Campaign{
		Id:              "c-1",
		OwnerExternalId: "ext-9",
		TargetAmount:    1000,
		ReceivedAmount:  1600,
		Status:          models.CampaignActive,
	}
}

func TestHandleSurplusDetected(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	signal := events.SurplusDetected{CampaignId: "c-1", SurplusAmount: 999999} // advisory amount is ignored

	t.Run("Creates Settlement", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetCampaign", mock.Anything, "c-1").Return(activeCampaign(), nil)
		mockStorage.On("BeginSettlement", mock.Anything, "c-1", mock.MatchedBy(func(event *models.OutboxEvent) bool {
			if event.EventType != events.TypeSettlementCreated || event.Status != models.OutboxPending {
				return false
			}
			var payload events.SettlementCreated
			if err := json.Unmarshal(event.Payload, &payload); err != nil {
				return false
			}
			// The surplus is recomputed from the fresh record, never taken
			// from the signal.
			return payload.SurplusAmount == 600 && payload.ReceiverId == "principal-1"
		})).Return(nil)

		c := settlement.NewCoordinator(mockStorage, stubResolver{id: "principal-1"}, logger)

		err := c.HandleSurplusDetected(context.Background(), signal)

		assert.NoError(t, err)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Unknown Campaign Is A No-Op", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetCampaign", mock.Anything, "c-1").Return(nil, storage.ErrCampaignNotFound)

		c := settlement.NewCoordinator(mockStorage, stubResolver{id: "principal-1"}, logger)

		err := c.HandleSurplusDetected(context.Background(), signal)

		assert.NoError(t, err)
		mockStorage.AssertNotCalled(t, "BeginSettlement", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Stale Signal For Settled Campaign Is A No-Op", func(t *testing.T) {
		campaign := activeCampaign()
		campaign.Status = models.CampaignProcessing

		mockStorage := new(mocks.Storage)
		mockStorage.On("GetCampaign", mock.Anything, "c-1").Return(campaign, nil)

		c := settlement.NewCoordinator(mockStorage, stubResolver{id: "principal-1"}, logger)

		err := c.HandleSurplusDetected(context.Background(), signal)

		assert.NoError(t, err)
		mockStorage.AssertNotCalled(t, "BeginSettlement", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("No Surplus Is A No-Op", func(t *testing.T) {
		campaign := activeCampaign()
		campaign.ReceivedAmount = campaign.TargetAmount

		mockStorage := new(mocks.Storage)
		mockStorage.On("GetCampaign", mock.Anything, "c-1").Return(campaign, nil)

		c := settlement.NewCoordinator(mockStorage, stubResolver{id: "principal-1"}, logger)

		err := c.HandleSurplusDetected(context.Background(), signal)

		assert.NoError(t, err)
		mockStorage.AssertNotCalled(t, "BeginSettlement", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Resolver Failure Aborts With Nothing Written", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetCampaign", mock.Anything, "c-1").Return(activeCampaign(), nil)

		c := settlement.NewCoordinator(mockStorage, stubResolver{err: errors.New("identity service unavailable")}, logger)

		err := c.HandleSurplusDetected(context.Background(), signal)

		assert.Error(t, err)
		mockStorage.AssertNotCalled(t, "BeginSettlement", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Concurrent Settlement Is A No-Op", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetCampaign", mock.Anything, "c-1").Return(activeCampaign(), nil)
		mockStorage.On("BeginSettlement", mock.Anything, "c-1", mock.Anything).Return(storage.ErrStatusConflict)

		c := settlement.NewCoordinator(mockStorage, stubResolver{id: "principal-1"}, logger)

		err := c.HandleSurplusDetected(context.Background(), signal)

		assert.NoError(t, err)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Storage Failure Propagates", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetCampaign", mock.Anything, "c-1").Return(nil, errors.New("dynamodb is down"))

		c := settlement.NewCoordinator(mockStorage, stubResolver{id: "principal-1"}, logger)

		err := c.HandleSurplusDetected(context.Background(), signal)

		assert.Error(t, err)
	})
}
