package infrastructure

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SQSSubscriberAdapter adapts SQSEventSubscriber to the events.Subscriber interface.
// The queue is subscribed to the shared SNS topic, so Subscribe takes every
// event and the handler (a saga router) picks what it needs.
type SQSSubscriberAdapter struct {
	sqsSubscriber *SQSEventSubscriber
	isRunning     bool
	region        string
	queueURL      string
	deadLetter    events.Publisher
	logger        *zap.Logger
	opts          []SQSSubscriberOption
}

// NewSQSSubscriberAdapter creates a new SQS subscriber adapter
func NewSQSSubscriberAdapter(region, queueURL string, deadLetter events.Publisher, logger *zap.Logger, opts ...SQSSubscriberOption) (*SQSSubscriberAdapter, error) {
	if queueURL == "" {
		return nil, errors.New("sqs queue url is required")
	}

	return &SQSSubscriberAdapter{
		region:     region,
		queueURL:   queueURL,
		deadLetter: deadLetter,
		logger:     logger,
		opts:       opts,
	}, nil
}

// Subscribe implements events.Subscriber interface
func (s *SQSSubscriberAdapter) Subscribe(ctx context.Context, eventType string, handler events.EventHandler) error {
	if s.isRunning {
		return errors.New("subscriber is already running")
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(s.region))
	if err != nil {
		return errors.Wrap(err, "failed to load AWS config")
	}

	if eventType != "" {
		handler = topicFilter(eventType, handler)
	}

	s.sqsSubscriber = NewSQSEventSubscriber(sqs.NewFromConfig(cfg), s.queueURL, handler, s.deadLetter, s.logger, s.opts...)

	if err := s.sqsSubscriber.Start(ctx); err != nil {
		return errors.Wrap(err, "failed to start SQS subscriber")
	}

	s.isRunning = true
	return nil
}

// Close stops the subscriber
func (s *SQSSubscriberAdapter) Close() error {
	if !s.isRunning || s.sqsSubscriber == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.sqsSubscriber.Stop(ctx); err != nil {
		return errors.Wrap(err, "failed to stop SQS subscriber")
	}

	s.isRunning = false
	return nil
}

// topicFilter drops events of other topics
func topicFilter(topic string, next events.EventHandler) events.EventHandler {
	return events.EventHandlerFunc(func(ctx context.Context, event *events.Event) error {
		if event.Topic.String() != topic {
			return nil
		}
		return next.Handle(ctx, event)
	})
}
