package infrastructure

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/campusflow/enrollment-system/shared/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func stepEvent(topic, enrollmentID string) *events.Event {
	return events.NewEvent("", topic, events.SagaStepData{
		EnrollmentID: enrollmentID,
		StudentID:    "42",
		CourseID:     "7",
	}).WithCorrelationID(models.ID("e-" + enrollmentID))
}

func TestMemoryEventBus_DeliversByTopicAsJSON(t *testing.T) {
	ctx := context.Background()
	bus := NewMemoryEventBus(3, zap.NewNop())

	var received []events.SagaStepData
	require.NoError(t, bus.Subscribe(ctx, events.PaymentSuccessEvent, events.EventHandlerFunc(func(ctx context.Context, event *events.Event) error {
		var data events.SagaStepData
		require.NoError(t, event.UnmarshalPayload(&data))
		assert.Equal(t, "1", event.Metadata[events.MetadataDeliveryAttempt])
		received = append(received, data)
		return nil
	})))

	var all int
	require.NoError(t, bus.Subscribe(ctx, "", events.EventHandlerFunc(func(ctx context.Context, event *events.Event) error {
		all++
		return nil
	})))

	require.NoError(t, bus.Publish(ctx, stepEvent(events.PaymentSuccessEvent, "a"), stepEvent(events.SeatReservedEvent, "a")))
	assert.Equal(t, 2, bus.Pending())

	require.NoError(t, bus.Drain(ctx))

	assert.Equal(t, 0, bus.Pending())
	require.Len(t, received, 1)
	assert.Equal(t, "a", received[0].EnrollmentID)
	assert.Equal(t, 2, all)
	assert.Len(t, bus.PublishedOn(events.SeatReservedEvent), 1)
}

func TestMemoryEventBus_DeliversEventsPublishedWhileDraining(t *testing.T) {
	ctx := context.Background()
	bus := NewMemoryEventBus(1, zap.NewNop())

	require.NoError(t, bus.Subscribe(ctx, events.PaymentSuccessEvent, events.EventHandlerFunc(func(ctx context.Context, event *events.Event) error {
		return bus.Publish(ctx, stepEvent(events.SeatReservedEvent, "a"))
	})))

	var reserved int
	require.NoError(t, bus.Subscribe(ctx, events.SeatReservedEvent, events.EventHandlerFunc(func(ctx context.Context, event *events.Event) error {
		reserved++
		return nil
	})))

	require.NoError(t, bus.Publish(ctx, stepEvent(events.PaymentSuccessEvent, "a")))
	require.NoError(t, bus.Drain(ctx))

	assert.Equal(t, 1, reserved)
}

func TestMemoryEventBus_RetriesThenDeadLetters(t *testing.T) {
	ctx := context.Background()
	bus := NewMemoryEventBus(3, zap.NewNop())

	var attempts int
	require.NoError(t, bus.Subscribe(ctx, events.PaymentSuccessEvent, events.EventHandlerFunc(func(ctx context.Context, event *events.Event) error {
		attempts++
		return errors.New("poison")
	})))

	original := stepEvent(events.PaymentSuccessEvent, "a")
	require.NoError(t, bus.Publish(ctx, original))
	require.NoError(t, bus.Drain(ctx))

	assert.Equal(t, 3, attempts)
	deadLetters := bus.DeadLetters()
	require.Len(t, deadLetters, 1)
	assert.Equal(t, events.Topic(events.DeadLetterEvent), deadLetters[0].Topic)
	assert.Equal(t, events.PaymentSuccessEvent, deadLetters[0].Metadata[events.MetadataOriginalTopic])
	assert.Equal(t, "poison", deadLetters[0].Metadata[events.MetadataDeadLetterReason])
	assert.Equal(t, original.CorrelationID, deadLetters[0].CorrelationID)
}

func TestMemoryEventBus_RecoversOnRedelivery(t *testing.T) {
	ctx := context.Background()
	bus := NewMemoryEventBus(3, zap.NewNop())

	var attempts int
	require.NoError(t, bus.Subscribe(ctx, events.PaymentSuccessEvent, events.EventHandlerFunc(func(ctx context.Context, event *events.Event) error {
		attempts++
		if attempts < 2 {
			return errors.New("transient")
		}
		assert.Equal(t, "2", event.Metadata[events.MetadataDeliveryAttempt])
		return nil
	})))

	require.NoError(t, bus.Publish(ctx, stepEvent(events.PaymentSuccessEvent, "a")))
	require.NoError(t, bus.Drain(ctx))

	assert.Equal(t, 2, attempts)
	assert.Empty(t, bus.DeadLetters())
}

func TestMemoryEventBus_Run(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := NewMemoryEventBus(1, zap.NewNop())
	var delivered atomic.Int32
	require.NoError(t, bus.Subscribe(ctx, "", events.EventHandlerFunc(func(ctx context.Context, event *events.Event) error {
		delivered.Add(1)
		return nil
	})))

	go bus.Run(ctx)

	require.NoError(t, bus.Publish(ctx, stepEvent(events.SeatReservedEvent, "a")))
	assert.Eventually(t, func() bool { return delivered.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestMemoryEventBus_SubscribeRequiresHandler(t *testing.T) {
	bus := NewMemoryEventBus(1, zap.NewNop())
	assert.Error(t, bus.Subscribe(context.Background(), "", nil))
}

func TestMemoryEventBus_AttemptsDoNotShareMetadata(t *testing.T) {
	ctx := context.Background()
	bus := NewMemoryEventBus(2, zap.NewNop())

	var seen []string
	require.NoError(t, bus.Subscribe(ctx, "", events.EventHandlerFunc(func(ctx context.Context, event *events.Event) error {
		_, tainted := event.Metadata.Get("scratch")
		seen = append(seen, event.Metadata[events.MetadataDeliveryAttempt])
		assert.False(t, tainted)
		event.Metadata.Set("scratch", "x")
		if len(seen) == 1 {
			return errors.New("transient")
		}
		return nil
	})))

	require.NoError(t, bus.Publish(ctx, stepEvent(events.SeatReservedEvent, "a")))
	require.NoError(t, bus.Drain(ctx))

	assert.Equal(t, []string{"1", "2"}, seen)
	assert.Empty(t, bus.DeadLetters())
}

func TestMemoryEventBus_DropsMalformedQueuedEvent(t *testing.T) {
	ctx := context.Background()
	bus := NewMemoryEventBus(1, zap.NewNop())

	var handled int
	require.NoError(t, bus.Subscribe(ctx, "", events.EventHandlerFunc(func(ctx context.Context, event *events.Event) error {
		handled++
		return nil
	})))

	bus.mu.Lock()
	bus.pending = append(bus.pending, []byte("not json"))
	bus.mu.Unlock()
	require.NoError(t, bus.Publish(ctx, stepEvent(events.SeatReservedEvent, "a")))

	require.NoError(t, bus.Drain(ctx))
	assert.Equal(t, 1, handled)
	assert.Zero(t, bus.Pending())
}
