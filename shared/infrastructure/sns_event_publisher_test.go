package infrastructure

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSNS struct {
	mu      sync.Mutex
	inputs  []*sns.PublishBatchInput
	failIDs map[string]bool
	err     error
}

func (f *fakeSNS) PublishBatch(ctx context.Context, params *sns.PublishBatchInput, optFns ...func(*sns.Options)) (*sns.PublishBatchOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}

	out := &sns.PublishBatchOutput{}
	for _, entry := range params.PublishBatchRequestEntries {
		if f.failIDs[aws.ToString(entry.Id)] {
			out.Failed = append(out.Failed, types.BatchResultErrorEntry{
				Id:      entry.Id,
				Code:    aws.String("InternalError"),
				Message: aws.String("try again"),
			})
		}
	}
	return out, nil
}

func TestSNSEventPublisher_FIFOAttributes(t *testing.T) {
	client := &fakeSNS{}
	publisher := NewSNSEventPublisher(client, "arn:aws:sns:us-east-1:000000000000:enrollment-events.fifo", zap.NewNop())

	event := stepEvent(events.PaymentSuccessEvent, "a").WithMetadata(events.MetadataProducer, "payments-service")
	event.Metadata.Set(SQSReceiptHandleKey, "should-not-leak")
	require.NoError(t, publisher.Publish(context.Background(), event))

	require.Len(t, client.inputs, 1)
	entry := client.inputs[0].PublishBatchRequestEntries[0]
	assert.Equal(t, event.PartitionKey(), aws.ToString(entry.MessageGroupId))
	assert.Equal(t, event.ID.String(), aws.ToString(entry.MessageDeduplicationId))
	assert.Equal(t, events.PaymentSuccessEvent, aws.ToString(entry.MessageAttributes["topic"].StringValue))
	assert.Equal(t, "payments-service", aws.ToString(entry.MessageAttributes[events.MetadataProducer].StringValue))
	assert.NotContains(t, entry.MessageAttributes, SQSReceiptHandleKey)

	decoded, err := events.FromJSON([]byte(aws.ToString(entry.Message)))
	require.NoError(t, err)
	assert.Equal(t, event.ID, decoded.ID)
}

func TestSNSEventPublisher_StandardTopicHasNoGroup(t *testing.T) {
	client := &fakeSNS{}
	publisher := NewSNSEventPublisher(client, "arn:aws:sns:us-east-1:000000000000:enrollment-events", zap.NewNop())

	require.NoError(t, publisher.Publish(context.Background(), stepEvent(events.SeatReservedEvent, "a")))
	entry := client.inputs[0].PublishBatchRequestEntries[0]
	assert.Nil(t, entry.MessageGroupId)
	assert.Nil(t, entry.MessageDeduplicationId)
}

func TestSNSEventPublisher_Batches(t *testing.T) {
	client := &fakeSNS{}
	publisher := NewSNSEventPublisher(client, "arn:aws:sns:us-east-1:000000000000:enrollment-events.fifo", zap.NewNop())

	evts := make([]*events.Event, 23)
	for i := range evts {
		evts[i] = stepEvent(events.PaymentSuccessEvent, fmt.Sprint(i))
	}
	require.NoError(t, publisher.Publish(context.Background(), evts...))

	require.Len(t, client.inputs, 3)
	assert.Len(t, client.inputs[0].PublishBatchRequestEntries, 10)
	assert.Len(t, client.inputs[2].PublishBatchRequestEntries, 3)
	// sequential on FIFO topics, so the first entry of batch two is the eleventh event
	assert.Equal(t, evts[10].ID.String(), aws.ToString(client.inputs[1].PublishBatchRequestEntries[0].Id))
}

func TestSNSEventPublisher_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("partial failure is reported", func(t *testing.T) {
		event := stepEvent(events.PaymentSuccessEvent, "a")
		client := &fakeSNS{failIDs: map[string]bool{event.ID.String(): true}}
		publisher := NewSNSEventPublisher(client, "arn:aws:sns:us-east-1:000000000000:enrollment-events", zap.NewNop())

		err := publisher.Publish(ctx, event, stepEvent(events.PaymentSuccessEvent, "b"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sns rejected 1 of 2 events")
	})

	t.Run("transport failure is wrapped", func(t *testing.T) {
		client := &fakeSNS{err: errors.New("connection refused")}
		publisher := NewSNSEventPublisher(client, "arn:aws:sns:us-east-1:000000000000:enrollment-events", zap.NewNop())

		err := publisher.Publish(ctx, stepEvent(events.PaymentSuccessEvent, "a"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to publish batch to SNS")
	})

	t.Run("no events is a no-op", func(t *testing.T) {
		client := &fakeSNS{}
		publisher := NewSNSEventPublisher(client, "arn", zap.NewNop())
		require.NoError(t, publisher.Publish(ctx))
		assert.Empty(t, client.inputs)
	})
}
