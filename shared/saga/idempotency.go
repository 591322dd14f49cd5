package saga

import (
	"context"

	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/campusflow/enrollment-system/shared/logging"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// IdempotencyStore remembers which handler already processed which event
type IdempotencyStore interface {
	Seen(ctx context.Context, key string) (bool, error)
	Mark(ctx context.Context, key string) error
}

type deduplicated struct {
	store     IdempotencyStore
	handlerID string
	next      events.EventHandler
	logger    *zap.Logger
}

// Deduplicated skips redeliveries of an event the handler already completed.
// The key is recorded only after a successful Handle, so a failed attempt is retried.
// Handlers still guard on entity state: this only saves the repeated work.
func Deduplicated(store IdempotencyStore, handlerID string, next events.EventHandler, logger *zap.Logger) events.EventHandler {
	return &deduplicated{
		store:     store,
		handlerID: handlerID,
		next:      next,
		logger:    logger,
	}
}

func (d *deduplicated) Handle(ctx context.Context, event *events.Event) error {
	key := DedupeKey(d.handlerID, event)

	seen, err := d.store.Seen(ctx, key)
	if err != nil {
		// the state-conditioned writes keep a reprocess safe
		d.logger.Warn("idempotency lookup failed, processing anyway",
			logging.Handler(d.handlerID),
			logging.EventID(event.ID.String()),
			zap.Error(err),
		)
	} else if seen {
		d.logger.Info("skipping already processed event",
			logging.Handler(d.handlerID),
			logging.Topic(event.Topic.String()),
			logging.EventID(event.ID.String()),
		)
		return nil
	}

	if err := d.next.Handle(ctx, event); err != nil {
		return err
	}

	if err := d.store.Mark(ctx, key); err != nil {
		return errors.Wrap(err, "failed to record processed event")
	}

	return nil
}

// DedupeKey is the idempotency key of event for handlerID
func DedupeKey(handlerID string, event *events.Event) string {
	return "saga:processed:" + handlerID + ":" + event.ID.String()
}
