package infrastructure

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSQS struct {
	mu         sync.Mutex
	deleted    []string
	visibility []int32
	messages   []types.Message
}

func (f *fakeSQS) ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := &sqs.ReceiveMessageOutput{Messages: f.messages}
	f.messages = nil
	return out, nil
}

func (f *fakeSQS) DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, aws.ToString(params.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

func (f *fakeSQS) ChangeMessageVisibility(ctx context.Context, params *sqs.ChangeMessageVisibilityInput, optFns ...func(*sqs.Options)) (*sqs.ChangeMessageVisibilityOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visibility = append(f.visibility, params.VisibilityTimeout)
	return &sqs.ChangeMessageVisibilityOutput{}, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*events.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, evts ...*events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, evts...)
	return nil
}

func sqsMessageFor(t *testing.T, event *events.Event, receiveCount string) types.Message {
	body, err := event.ToJSON()
	require.NoError(t, err)
	return types.Message{
		MessageId:     aws.String("m-" + event.ID.String()),
		ReceiptHandle: aws.String("rh-" + event.ID.String()),
		Body:          aws.String(string(body)),
		Attributes:    map[string]string{approximateReceiveCount: receiveCount},
	}
}

func newTestSubscriber(client sqsAPI, dl events.Publisher) *SQSEventSubscriber {
	return NewSQSEventSubscriber(client, "http://localhost:4566/000000000000/payments-service.fifo", nil, dl, zap.NewNop(),
		WithMaxReceives(3))
}

func TestSQSEventSubscriber_Clean(t *testing.T) {
	ctx := context.Background()
	event := stepEvent(events.PaymentSuccessEvent, "a")

	t.Run("success deletes", func(t *testing.T) {
		client := &fakeSQS{}
		s := newTestSubscriber(client, &recordingPublisher{})
		msg := &sqsMessage{Message: sqsMessageFor(t, event, "1"), Event: event}

		require.NoError(t, s.clean(ctx, msg))
		assert.Equal(t, []string{"rh-" + event.ID.String()}, client.deleted)
	})

	t.Run("failure below max extends visibility", func(t *testing.T) {
		client := &fakeSQS{}
		dl := &recordingPublisher{}
		s := newTestSubscriber(client, dl)
		msg := &sqsMessage{Message: sqsMessageFor(t, event, "2"), Event: event, Err: errors.New("db down")}

		require.NoError(t, s.clean(ctx, msg))
		assert.Empty(t, client.deleted)
		assert.Equal(t, []int32{30}, client.visibility)
		assert.Empty(t, dl.events)
	})

	t.Run("failure at max dead-letters and deletes", func(t *testing.T) {
		client := &fakeSQS{}
		dl := &recordingPublisher{}
		s := newTestSubscriber(client, dl)
		event := event.Clone()
		event.Metadata.Set(SQSReceiptHandleKey, "secret")
		msg := &sqsMessage{Message: sqsMessageFor(t, event, "3"), Event: event, Err: errors.New("poison")}

		require.NoError(t, s.clean(ctx, msg))
		require.Len(t, dl.events, 1)
		assert.Equal(t, events.Topic(events.DeadLetterEvent), dl.events[0].Topic)
		assert.Equal(t, "3", dl.events[0].Metadata[events.MetadataDeliveryAttempt])
		assert.NotContains(t, dl.events[0].Metadata, SQSReceiptHandleKey)
		assert.Len(t, client.deleted, 1)
	})

	t.Run("dead-letter publish failure keeps the message", func(t *testing.T) {
		client := &fakeSQS{}
		s := newTestSubscriber(client, &recordingPublisher{err: errors.New("sns down")})
		msg := &sqsMessage{Message: sqsMessageFor(t, event, "5"), Event: event, Err: errors.New("poison")}

		require.Error(t, s.clean(ctx, msg))
		assert.Empty(t, client.deleted)
	})
}

func TestSQSEventSubscriber_ReadDecodesSNSNotification(t *testing.T) {
	event := stepEvent(events.SeatReservedEvent, "a")
	raw, err := event.ToJSON()
	require.NoError(t, err)
	wrapped, err := json.Marshal(snsNotification{Type: "Notification", Message: string(raw)})
	require.NoError(t, err)

	msg := sqsMessageFor(t, event, "1")
	msg.Body = aws.String(string(wrapped))
	malformed := types.Message{MessageId: aws.String("bad"), ReceiptHandle: aws.String("rh-bad"), Body: aws.String("{not json")}

	client := &fakeSQS{messages: []types.Message{msg, malformed}}
	s := newTestSubscriber(client, &recordingPublisher{})

	require.NoError(t, s.read(context.Background()))

	received := <-s.inboundMessages
	assert.Equal(t, event.ID, received.Event.ID)
	assert.Equal(t, "rh-"+event.ID.String(), received.Event.Metadata[SQSReceiptHandleKey])
	assert.Equal(t, "1", received.Event.Metadata[events.MetadataDeliveryAttempt])
	assert.Equal(t, []string{"rh-bad"}, client.deleted)
}

func TestSQSEventSubscriber_HandleWithoutHandler(t *testing.T) {
	s := newTestSubscriber(&fakeSQS{}, nil)
	event := stepEvent(events.SeatReservedEvent, "a")
	go s.handle(context.Background(), &sqsMessage{Message: sqsMessageFor(t, event, "1"), Event: event})

	out := <-s.outboundMessages
	assert.EqualError(t, out.Err, "no handler configured")
}

func TestTopicFilter(t *testing.T) {
	var calls int
	handler := topicFilter(events.SeatReservedEvent, events.EventHandlerFunc(func(ctx context.Context, event *events.Event) error {
		calls++
		return nil
	}))

	require.NoError(t, handler.Handle(context.Background(), stepEvent(events.PaymentSuccessEvent, "a")))
	require.NoError(t, handler.Handle(context.Background(), stepEvent(events.SeatReservedEvent, "a")))
	assert.Equal(t, 1, calls)
}
