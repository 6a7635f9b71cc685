package storage

import (
	"context"

	"github.com/openfund/ledger/pkg/models"
)

// OutboxStore defines the relay-privileged interface over outbox events.
// Events are only ever created inside the atomic unit of the state change
// they report; this interface covers the delivery side. Events are never
// deleted.
type OutboxStore interface {
	// ListPendingEvents retrieves up to limit PENDING events, oldest first.
	ListPendingEvents(ctx context.Context, limit int32) ([]models.OutboxEvent, error)

	// MarkEventDispatched transitions an event PENDING -> DISPATCHED. It fails
	// with ErrStatusConflict if another relay instance already moved it.
	MarkEventDispatched(ctx context.Context, eventID string) error

	// RecordEventFailure increments the event's delivery attempt counter and
	// flips it to FAILED once maxAttempts is reached. It returns the event's
	// resulting status.
	RecordEventFailure(ctx context.Context, eventID string, maxAttempts int) (models.OutboxStatus, error)
}
