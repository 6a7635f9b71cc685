package publisher

import (
	"context"

	"github.com/openfund/ledger/pkg/models"
)

// Publisher defines the interface for delivering an outbox event to its
// downstream consumer. Delivery is at-least-once; consumers absorb duplicates.
type Publisher interface {
	// Publish delivers one event downstream.
	Publish(ctx context.Context, event *models.OutboxEvent) error
}
