package infrastructure

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/campusflow/enrollment-system/shared/logging"
	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	_ events.Publisher  = (*KafkaEventBus)(nil)
	_ events.Subscriber = (*KafkaEventBus)(nil)
)

const maxKafkaBackoff = 30 * time.Second

type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaEventBus publishes each event to the topic of the same name, keyed by
// the enrollment id so one saga lands on one partition. Consumption commits an
// offset only after the handler succeeded or the event was dead-lettered, so a
// failing event is retried in place before the partition moves on.
type KafkaEventBus struct {
	writer        kafkaWriter
	maxDeliveries int
	retryBackoff  time.Duration
	logger        *zap.Logger

	mu      sync.Mutex
	readers []kafkaReader
	cancel  context.CancelFunc
	group   *errgroup.Group
	runCtx  context.Context

	newReader func(topics []string) kafkaReader
}

// NewKafkaEventBus creates a Kafka backed bus
func NewKafkaEventBus(brokers []string, groupID string, maxDeliveries int, logger *zap.Logger) (*KafkaEventBus, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	if groupID == "" {
		return nil, errors.New("kafka consumer group is required")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		WriteTimeout:           10 * time.Second,
	}

	bus := newKafkaEventBus(writer, maxDeliveries, logger)
	bus.newReader = func(topics []string) kafkaReader {
		return kafka.NewReader(kafka.ReaderConfig{
			Brokers:        brokers,
			GroupID:        groupID,
			GroupTopics:    topics,
			MinBytes:       1,
			MaxBytes:       10e6,
			CommitInterval: 0,
		})
	}

	return bus, nil
}

func newKafkaEventBus(writer kafkaWriter, maxDeliveries int, logger *zap.Logger) *KafkaEventBus {
	if maxDeliveries < 1 {
		maxDeliveries = 1
	}
	return &KafkaEventBus{
		writer:        writer,
		maxDeliveries: maxDeliveries,
		retryBackoff:  500 * time.Millisecond,
		logger:        logger,
	}
}

// Publish writes the events synchronously
func (b *KafkaEventBus) Publish(ctx context.Context, evts ...*events.Event) error {
	if len(evts) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(evts))
	for _, event := range evts {
		value, err := event.ToJSON()
		if err != nil {
			return errors.Wrap(err, "failed to marshal event")
		}

		msgs = append(msgs, kafka.Message{
			Topic: event.Topic.String(),
			Key:   []byte(event.PartitionKey()),
			Value: value,
			Headers: []kafka.Header{
				{Key: "event_id", Value: []byte(event.ID.String())},
				{Key: "topic", Value: []byte(event.Topic.String())},
			},
			Time: event.Timestamp,
		})
	}

	if err := b.writer.WriteMessages(ctx, msgs...); err != nil {
		return errors.Wrap(err, "failed to write messages to kafka")
	}

	return nil
}

// Subscribe starts a consumer-group reader. An empty eventType subscribes to every saga topic.
func (b *KafkaEventBus) Subscribe(ctx context.Context, eventType string, handler events.EventHandler) error {
	topics := events.SagaTopics
	if eventType != "" {
		topics = []string{eventType}
	}

	reader := b.newReader(topics)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.group == nil {
		runCtx, cancel := context.WithCancel(ctx)
		b.cancel = cancel
		b.group, b.runCtx = errgroup.WithContext(runCtx)
	}
	b.readers = append(b.readers, reader)

	runCtx := b.runCtx
	b.group.Go(func() error {
		b.consume(runCtx, reader, handler)
		b.logger.Info("kafka consumer stopped", zap.Strings("topics", topics))
		return nil
	})

	return nil
}

// consume returns only when ctx is done. Fetch, commit and dead-letter
// errors are logged and retried with backoff.
func (b *KafkaEventBus) consume(ctx context.Context, reader kafkaReader, handler events.EventHandler) {
	for {
		var msg kafka.Message
		err := b.untilDone(ctx, "fetch kafka message", func() error {
			var err error
			msg, err = reader.FetchMessage(ctx)
			return err
		})
		if err != nil {
			return
		}

		if err := b.process(ctx, msg, handler); err != nil {
			// only cancellation gets here; uncommitted, the group redelivers it
			return
		}

		if err := b.untilDone(ctx, "commit kafka message", func() error {
			return reader.CommitMessages(ctx, msg)
		}); err != nil {
			return
		}
	}
}

// untilDone retries op with a growing backoff until it succeeds or ctx is done
func (b *KafkaEventBus) untilDone(ctx context.Context, what string, op func() error) error {
	backoff := b.retryBackoff
	for {
		err := op()
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		b.logger.Error("kafka operation failed, retrying", zap.String("operation", what),
			zap.Duration("backoff", backoff), zap.Error(err))

		sleep(ctx, backoff)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if backoff *= 2; backoff > maxKafkaBackoff {
			backoff = maxKafkaBackoff
		}
	}
}

// process runs the handler with in-place retries and dead-letters the event
// when they run out. The dead letter is retried until it is written, so an
// error means ctx was cancelled and the message must not be committed.
func (b *KafkaEventBus) process(ctx context.Context, msg kafka.Message, handler events.EventHandler) error {
	event, err := events.FromJSON(msg.Value)
	if err != nil || event.ID == "" {
		b.logger.Error("dropping malformed kafka message",
			zap.String("kafka_topic", msg.Topic),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return nil
	}

	var lastErr error
	for attempt := 1; attempt <= b.maxDeliveries; attempt++ {
		attemptEvent := event.Clone()
		attemptEvent.Metadata.Set(events.MetadataDeliveryAttempt, strconv.Itoa(attempt))
		attemptEvent.Metadata.Set("kafka_offset", strconv.FormatInt(msg.Offset, 10))

		if lastErr = handler.Handle(ctx, attemptEvent); lastErr == nil {
			return nil
		}

		b.logger.Warn("handler failed, retrying",
			logging.Topic(event.Topic.String()),
			logging.EventID(event.ID.String()),
			zap.Int("attempt", attempt),
			zap.Error(lastErr),
		)

		if attempt < b.maxDeliveries {
			sleep(ctx, b.retryBackoff*time.Duration(attempt))
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
	}

	dl := NewDeadLetter(event, lastErr, b.maxDeliveries)
	if err := b.untilDone(ctx, "publish dead letter", func() error {
		return b.Publish(ctx, dl)
	}); err != nil {
		return errors.Wrap(err, "failed to publish dead letter")
	}
	recordDeadLetter(ctx, event)

	b.logger.Error("event dead-lettered",
		logging.Topic(event.Topic.String()),
		logging.EventID(event.ID.String()),
		zap.Error(lastErr),
	)

	return nil
}

// Close stops the consumers and flushes the writer
func (b *KafkaEventBus) Close() error {
	b.mu.Lock()
	cancel := b.cancel
	group := b.group
	readers := b.readers
	b.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	var errs []error
	for _, reader := range readers {
		if err := reader.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if group != nil {
		if err := group.Wait(); err != nil {
			errs = append(errs, err)
		}
	}

	if err := b.writer.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Errorf("errors closing kafka bus: %v", errs)
	}

	return nil
}
