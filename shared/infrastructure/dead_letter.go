package infrastructure

import (
	"context"
	"strconv"

	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/campusflow/enrollment-system/shared/models"
	"github.com/campusflow/enrollment-system/shared/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// NewDeadLetter wraps an event that exhausted its deliveries for the dead-letter topic.
// The payload and correlation id are kept so an operator can replay it.
func NewDeadLetter(event *events.Event, cause error, attempts int) *events.Event {
	dl := event.Clone()
	dl.ID = models.GenerateUUID()
	dl.Topic = events.DeadLetterEvent
	dl.EventType = events.DeadLetterEvent
	if dl.Metadata == nil {
		dl.Metadata = make(events.Metadata)
	}
	dl.Metadata.Set(events.MetadataOriginalTopic, event.Topic.String())
	dl.Metadata.Set("original_event_id", event.ID.String())
	dl.Metadata.Set(events.MetadataDeliveryAttempt, strconv.Itoa(attempts))
	if cause != nil {
		dl.Metadata.Set(events.MetadataDeadLetterReason, cause.Error())
	}
	return dl
}

func recordDeadLetter(ctx context.Context, event *events.Event) {
	telemetry.RecordCounter(ctx, "saga_dead_letters_total", "Events moved to the dead-letter topic", 1,
		attribute.String("topic", event.Topic.String()),
	)
}
