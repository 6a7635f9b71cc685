package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openfund/ledger/pkg/models"
	"github.com/openfund/ledger/pkg/publisher"
	"github.com/openfund/ledger/pkg/storage"
)

// Relay drains PENDING outbox events to their downstream queue. It runs
// periodically; a failed delivery stays PENDING and is retried on the next
// run until the attempt budget is spent, after which the event is parked as
// FAILED for operators. Events are never deleted.
type Relay struct {
	Outbox      storage.OutboxStore
	Publisher   publisher.Publisher
	BatchSize   int32
	MaxAttempts int
	Logger      *slog.Logger
}

// New creates a new Relay.
func New(outbox storage.OutboxStore, pub publisher.Publisher, batchSize int32, maxAttempts int, logger *slog.Logger) *Relay {
	return &Relay{
		Outbox:      outbox,
		Publisher:   pub,
		BatchSize:   batchSize,
		MaxAttempts: maxAttempts,
		Logger:      logger,
	}
}

// RelayPending processes one bounded batch of pending events. One event's
// failure never stops the batch.
func (r *Relay) RelayPending(ctx context.Context) error {
	pending, err := r.Outbox.ListPendingEvents(ctx, r.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to list pending outbox events: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	r.Logger.Info("relaying outbox events", "count", len(pending))

	for i := range pending {
		event := &pending[i]
		if err := r.Publisher.Publish(ctx, event); err != nil {
			status, recErr := r.Outbox.RecordEventFailure(ctx, event.Id, r.MaxAttempts)
			if recErr != nil {
				r.Logger.Error("failed to record outbox delivery failure",
					"event_id", event.Id, "error", recErr)
				continue
			}
			if status == models.OutboxFailed {
				r.Logger.Error("outbox event exhausted its delivery attempts",
					"event_id", event.Id, "event_type", event.EventType, "error", err)
			} else {
				r.Logger.Warn("outbox delivery failed, will retry",
					"event_id", event.Id, "event_type", event.EventType, "error", err)
			}
			continue
		}

		if err := r.Outbox.MarkEventDispatched(ctx, event.Id); err != nil {
			if errors.Is(err, storage.ErrStatusConflict) {
				// Another relay instance got there first. The extra publish is a
				// duplicate delivery, which the consumer absorbs.
				continue
			}
			r.Logger.Error("failed to mark outbox event dispatched",
				"event_id", event.Id, "error", err)
			continue
		}

		r.Logger.Info("outbox event dispatched", "event_id", event.Id, "event_type", event.EventType)
	}

	return nil
}
