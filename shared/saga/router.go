package saga

import (
	"context"
	"sort"

	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/campusflow/enrollment-system/shared/logging"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ChoreographyEventRouter dispatches bus events to the handlers registered for their topic.
// A handler error is returned to the bus adapter so the message is redelivered.
type ChoreographyEventRouter struct {
	id       string
	handlers map[string][]events.EventHandler
	logger   *zap.Logger
}

// NewChoreographyEventRouter creates a new event router for choreography
func NewChoreographyEventRouter(id string, logger *zap.Logger) *ChoreographyEventRouter {
	return &ChoreographyEventRouter{
		id:       id,
		handlers: make(map[string][]events.EventHandler),
		logger:   logger,
	}
}

// RegisterHandler registers an event handler for a specific topic
func (r *ChoreographyEventRouter) RegisterHandler(topic string, handler events.EventHandler) {
	r.handlers[topic] = append(r.handlers[topic], handler)
}

// HandlerID identifies the router in logs and dedupe keys
func (r *ChoreographyEventRouter) HandlerID() string {
	return r.id
}

// Topics returns the registered topics, sorted
func (r *ChoreographyEventRouter) Topics() []string {
	topics := make([]string, 0, len(r.handlers))
	for topic := range r.handlers {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics
}

// Handle routes an event to all handlers registered for its topic
func (r *ChoreographyEventRouter) Handle(ctx context.Context, event *events.Event) error {
	handlers, exists := r.handlers[event.Topic.String()]
	if !exists {
		r.logger.Debug("no handlers registered for topic",
			logging.Topic(event.Topic.String()),
			logging.EventID(event.ID.String()),
		)
		return nil
	}

	for _, handler := range handlers {
		if err := handler.Handle(ctx, event); err != nil {
			return errors.Wrapf(err, "handler failed for %s", event.Topic)
		}
	}

	return nil
}
