package infrastructure

import (
	"context"
	"fmt"

	"github.com/campusflow/enrollment-system/shared/config"
	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/campusflow/enrollment-system/shared/saga"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// EventBus is what a participant needs from its transport
type EventBus interface {
	events.Publisher
	events.Subscriber
	Close() error
}

var (
	_ EventBus = (*KafkaEventBus)(nil)
	_ EventBus = (*snsSQSEventBus)(nil)
	_ EventBus = (*runningMemoryBus)(nil)
)

// NewEventBus builds the bus selected by cfg.Bus.Driver
func NewEventBus(ctx context.Context, cfg config.Common, logger *zap.Logger) (EventBus, error) {
	switch cfg.Bus.Driver {
	case config.BusSNS:
		publisher, err := NewSNSPublisherAdapter(ctx, cfg.AWS.Region, cfg.AWS.SNSTopicArn, logger)
		if err != nil {
			return nil, err
		}

		subscriber, err := NewSQSSubscriberAdapter(cfg.AWS.Region, cfg.AWS.SQSQueueURL, publisher, logger,
			WithName(cfg.ServiceName),
			WithWorkers(cfg.AWS.Workers),
			WithMaxReceives(cfg.Bus.MaxDeliveries),
		)
		if err != nil {
			return nil, err
		}

		return &snsSQSEventBus{SNSPublisherAdapter: publisher, SQSSubscriberAdapter: subscriber}, nil

	case config.BusKafka:
		return NewKafkaEventBus(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Bus.MaxDeliveries, logger)

	case config.BusMemory:
		return newRunningMemoryBus(NewMemoryEventBus(cfg.Bus.MaxDeliveries, logger)), nil
	}

	return nil, fmt.Errorf("unknown bus driver %q", cfg.Bus.Driver)
}

// snsSQSEventBus publishes to the shared SNS topic and consumes the service queue
type snsSQSEventBus struct {
	*SNSPublisherAdapter
	*SQSSubscriberAdapter
}

func (b *snsSQSEventBus) Close() error {
	subErr := b.SQSSubscriberAdapter.Close()
	if err := b.SNSPublisherAdapter.Close(); err != nil {
		return err
	}
	return subErr
}

// runningMemoryBus delivers in the background until closed
type runningMemoryBus struct {
	*MemoryEventBus
	cancel context.CancelFunc
	done   chan struct{}
}

func newRunningMemoryBus(bus *MemoryEventBus) *runningMemoryBus {
	ctx, cancel := context.WithCancel(context.Background())
	r := &runningMemoryBus{MemoryEventBus: bus, cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(r.done)
		bus.Run(ctx)
	}()
	return r
}

func (r *runningMemoryBus) Close() error {
	r.cancel()
	<-r.done
	return r.MemoryEventBus.Close()
}

// NewIdempotencyStore builds the store selected by cfg.Idempotency.Driver.
// The returned close func releases the Redis client, if any.
func NewIdempotencyStore(ctx context.Context, cfg config.Common) (saga.IdempotencyStore, func() error, error) {
	switch cfg.Idempotency.Driver {
	case config.DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, errors.Wrap(err, "failed to connect to redis")
		}
		return NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL), rdb.Close, nil

	case config.DriverMemory:
		return NewMemoryIdempotencyStore(), func() error { return nil }, nil
	}

	return nil, nil, fmt.Errorf("unknown idempotency driver %q", cfg.Idempotency.Driver)
}
