package config

import (
	"context"
	"fmt"

	"github.com/campusflow/enrollment-system/notification-service/application"
	"github.com/campusflow/enrollment-system/notification-service/domain"
	"github.com/campusflow/enrollment-system/notification-service/handlers"
	"github.com/campusflow/enrollment-system/notification-service/infrastructure"
	"github.com/campusflow/enrollment-system/shared/events"
	sharedinfra "github.com/campusflow/enrollment-system/shared/infrastructure"
	"github.com/campusflow/enrollment-system/shared/saga"
	"go.uber.org/zap"
)

type Dependencies struct {
	Notifier domain.Notifier

	// Use Cases
	SendConfirmation *application.SendConfirmation

	// HTTP Handlers
	NotificationHandlers *handlers.NotificationHandlers

	// Event Handlers
	NotificationEventHandlers *handlers.NotificationEventHandlers
	EventHandler              events.EventHandler

	// Infrastructure
	EventBus         sharedinfra.EventBus
	IdempotencyStore saga.IdempotencyStore
	closeIdempotency func() error
}

func BuildDependencies(ctx context.Context, config *Config, logger *zap.Logger) (*Dependencies, error) {
	var notifier domain.Notifier = infrastructure.NewLogNotifier(logger)
	if config.Notification.Driver == NotifierSMTP {
		notifier = infrastructure.NewSMTPNotifier(config.SMTP)
	}

	bus, err := sharedinfra.NewEventBus(ctx, config.Common, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}

	store, closeStore, err := sharedinfra.NewIdempotencyStore(ctx, config.Common)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("failed to create idempotency store: %w", err)
	}

	deps := NewDependencies(notifier, store, logger)
	deps.NotificationHandlers = handlers.NewNotificationHandlers(config.Notification.Driver)
	deps.EventBus = bus
	deps.closeIdempotency = closeStore

	return deps, nil
}

// NewDependencies wires the use case and handlers around a notifier
func NewDependencies(notifier domain.Notifier, store saga.IdempotencyStore, logger *zap.Logger) *Dependencies {
	deps := &Dependencies{
		Notifier:         notifier,
		IdempotencyStore: store,
	}

	deps.SendConfirmation = application.NewSendConfirmation(notifier, logger)
	deps.NotificationHandlers = handlers.NewNotificationHandlers(NotifierLog)
	deps.NotificationEventHandlers = handlers.NewNotificationEventHandlers(deps.SendConfirmation)

	router := saga.NewChoreographyEventRouter(handlers.HandlerID, logger)
	deps.NotificationEventHandlers.RegisterHandlers(router)
	deps.EventHandler = saga.Deduplicated(store, router.HandlerID(), router, logger)

	return deps
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error

	if d.EventBus != nil {
		if err := d.EventBus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event bus: %w", err))
		}
	}

	if d.closeIdempotency != nil {
		if err := d.closeIdempotency(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close idempotency store: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing dependencies: %v", errs)
	}

	return nil
}
