package infrastructure

import (
	"context"
	"strconv"
	"sync"

	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/campusflow/enrollment-system/shared/logging"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	_ events.Publisher  = (*MemoryEventBus)(nil)
	_ events.Subscriber = (*MemoryEventBus)(nil)
)

type memorySubscription struct {
	topic   string
	handler events.EventHandler
}

// MemoryEventBus is an in-process bus with the delivery contract of the real
// ones: events travel as JSON, failed handlers are retried up to maxDeliveries
// and then dead-lettered. Delivery happens in Drain or in the Run loop.
type MemoryEventBus struct {
	mu            sync.Mutex
	subscriptions []memorySubscription
	pending       [][]byte
	published     []*events.Event
	deadLetters   []*events.Event
	maxDeliveries int
	notify        chan struct{}
	logger        *zap.Logger
}

// NewMemoryEventBus creates a new in-memory bus
func NewMemoryEventBus(maxDeliveries int, logger *zap.Logger) *MemoryEventBus {
	if maxDeliveries < 1 {
		maxDeliveries = 1
	}
	return &MemoryEventBus{
		maxDeliveries: maxDeliveries,
		notify:        make(chan struct{}, 1),
		logger:        logger,
	}
}

// Publish queues the events for delivery
func (b *MemoryEventBus) Publish(ctx context.Context, evts ...*events.Event) error {
	encoded := make([][]byte, 0, len(evts))
	for _, event := range evts {
		raw, err := event.ToJSON()
		if err != nil {
			return errors.Wrap(err, "failed to marshal event")
		}
		encoded = append(encoded, raw)
	}

	b.mu.Lock()
	b.pending = append(b.pending, encoded...)
	b.published = append(b.published, evts...)
	b.mu.Unlock()

	select {
	case b.notify <- struct{}{}:
	default:
	}

	return nil
}

// Subscribe registers a handler; an empty topic receives every event
func (b *MemoryEventBus) Subscribe(ctx context.Context, topic string, handler events.EventHandler) error {
	if handler == nil {
		return errors.New("handler is required")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscriptions = append(b.subscriptions, memorySubscription{topic: topic, handler: handler})
	return nil
}

// Drain delivers queued events, including the ones published while draining,
// until the queue is empty.
func (b *MemoryEventBus) Drain(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, ok := b.next()
		if !ok {
			return nil
		}

		if err := b.deliver(ctx, raw); err != nil {
			return err
		}
	}
}

// Run drains the queue whenever something is published, until ctx is done
func (b *MemoryEventBus) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-b.notify:
			if err := b.Drain(ctx); err != nil && ctx.Err() == nil {
				b.logger.Error("memory bus drain failed", zap.Error(err))
			}
		}
	}
}

func (b *MemoryEventBus) next() ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.pending) == 0 {
		return nil, false
	}
	raw := b.pending[0]
	b.pending = b.pending[1:]
	return raw, true
}

func (b *MemoryEventBus) deliver(ctx context.Context, raw []byte) error {
	b.mu.Lock()
	subs := make([]memorySubscription, len(b.subscriptions))
	copy(subs, b.subscriptions)
	b.mu.Unlock()

	decoded, err := events.FromJSON(raw)
	if err != nil {
		b.logger.Error("dropping malformed queued event", zap.Error(err))
		return nil
	}

	for _, sub := range subs {
		if sub.topic != "" && sub.topic != decoded.Topic.String() {
			continue
		}

		var lastErr error
		var lastEvent *events.Event
		for attempt := 1; attempt <= b.maxDeliveries; attempt++ {
			// each attempt gets its own copy, like a redelivered message
			event := decoded.Clone()
			event.Metadata.Set(events.MetadataDeliveryAttempt, strconv.Itoa(attempt))
			lastEvent = event

			if lastErr = sub.handler.Handle(ctx, event); lastErr == nil {
				break
			}

			b.logger.Warn("handler failed, redelivering",
				logging.Topic(event.Topic.String()),
				logging.EventID(event.ID.String()),
				zap.Int("attempt", attempt),
				zap.Error(lastErr),
			)
		}

		if lastErr != nil {
			b.deadLetter(ctx, lastEvent, lastErr)
		}
	}

	return nil
}

func (b *MemoryEventBus) deadLetter(ctx context.Context, event *events.Event, cause error) {
	dl := NewDeadLetter(event, cause, b.maxDeliveries)

	b.logger.Error("event dead-lettered",
		logging.Topic(event.Topic.String()),
		logging.EventID(event.ID.String()),
		zap.Error(cause),
	)
	recordDeadLetter(ctx, event)

	b.mu.Lock()
	b.deadLetters = append(b.deadLetters, dl)
	b.mu.Unlock()

	// dead letters are not queued again, nothing consumes them in-process
}

// Published returns every event handed to Publish, in order
func (b *MemoryEventBus) Published() []*events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]*events.Event, len(b.published))
	copy(out, b.published)
	return out
}

// PublishedOn returns the published events of one topic
func (b *MemoryEventBus) PublishedOn(topic string) []*events.Event {
	var out []*events.Event
	for _, event := range b.Published() {
		if event.Topic.String() == topic {
			out = append(out, event)
		}
	}
	return out
}

// DeadLetters returns the events that exhausted their deliveries
func (b *MemoryEventBus) DeadLetters() []*events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]*events.Event, len(b.deadLetters))
	copy(out, b.deadLetters)
	return out
}

// Pending returns the number of queued, undelivered events
func (b *MemoryEventBus) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// Close implements the bus lifecycle; there is nothing to release
func (b *MemoryEventBus) Close() error {
	return nil
}
