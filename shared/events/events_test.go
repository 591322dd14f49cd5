package events

import (
	"encoding/json"
	"testing"

	"github.com/campusflow/enrollment-system/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	aggregateID := models.ID("550e8400-e29b-41d4-a716-446655440000")
	event := NewEvent(aggregateID, PaymentSuccessEvent, SagaStepData{EnrollmentID: "e1", StudentID: "s1", CourseID: "c1"}).
		WithCorrelationID("e1")

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, Topic(PaymentSuccessEvent), event.Topic)
	assert.Equal(t, PaymentSuccessEvent, event.EventType)
	assert.Equal(t, "e1", event.PartitionKey())
	assert.NotNil(t, event.Metadata)
}

func TestEvent_PartitionKeyFallsBackToAggregate(t *testing.T) {
	event := NewEvent("agg-1", SeatReservedEvent, nil)
	assert.Equal(t, "agg-1", event.PartitionKey())
}

func TestEvent_JSONRoundTripKeepsPayloadDecodable(t *testing.T) {
	original := NewEvent("e1", EnrollmentInitiatedEvent, EnrollmentInitiatedData{
		EnrollmentID: "e1",
		StudentID:    "42",
		CourseID:     "7",
		StudentEmail: "ada@example.com",
		StudentName:  "Ada",
		CourseName:   "Distributed Systems",
	}).WithCorrelationID("e1").WithMetadata(MetadataProducer, "enrollment-service")

	raw, err := original.ToJSON()
	require.NoError(t, err)

	decoded, err := FromJSON(raw)
	require.NoError(t, err)

	assert.Equal(t, original.ID, decoded.ID)
	assert.Equal(t, original.Topic, decoded.Topic)
	assert.Equal(t, models.ID("e1"), decoded.CorrelationID)
	assert.Equal(t, "enrollment-service", decoded.Metadata["producer"])
	assert.IsType(t, json.RawMessage{}, decoded.Data)

	var data EnrollmentInitiatedData
	require.NoError(t, decoded.UnmarshalPayload(&data))
	assert.Equal(t, "ada@example.com", data.StudentEmail)
	assert.Equal(t, "Distributed Systems", data.CourseName)
}

func TestEvent_UnmarshalPayload(t *testing.T) {
	step := SagaStepData{EnrollmentID: "e1", StudentID: "s1", CourseID: "c1"}

	tests := []struct {
		name    string
		data    interface{}
		wantErr bool
	}{
		{"same type", step, false},
		{"pointer to same type", &step, false},
		{"generic map", map[string]interface{}{"enrollmentId": "e1", "studentId": "s1", "courseId": "c1"}, false},
		{"raw json", json.RawMessage(`{"enrollmentId":"e1","studentId":"s1","courseId":"c1"}`), false},
		{"nil payload", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := NewEvent("e1", PaymentSuccessEvent, tt.data)
			var out SagaStepData
			err := event.UnmarshalPayload(&out)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, step, out)
		})
	}
}

func TestEvent_UnmarshalPayloadRejectsNonPointer(t *testing.T) {
	event := NewEvent("e1", PaymentSuccessEvent, SagaStepData{})
	assert.ErrorIs(t, event.UnmarshalPayload(SagaStepData{}), ErrInvalidReceiver)
}

func TestDecodeStep(t *testing.T) {
	valid := NewEvent("e1", SeatReservedEvent, SagaStepData{EnrollmentID: "e1", StudentID: "s1", CourseID: "c1"})
	data, err := DecodeStep(valid)
	require.NoError(t, err)
	assert.Equal(t, "c1", data.CourseID)

	missing := NewEvent("e1", SeatReservedEvent, SagaStepData{EnrollmentID: "e1"})
	_, err = DecodeStep(missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "studentId, courseId")
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestDecodeCorrelated(t *testing.T) {
	partial := NewEvent("p1", SeatReservationFailedEvent, SagaStepData{EnrollmentID: "e1"})
	data, err := DecodeCorrelated(partial)
	require.NoError(t, err)
	assert.Equal(t, "e1", data.EnrollmentID)

	fromCorrelation := NewEvent("p1", SeatReservationFailedEvent, SagaStepData{}).WithCorrelationID("e2")
	data, err = DecodeCorrelated(fromCorrelation)
	require.NoError(t, err)
	assert.Equal(t, "e2", data.EnrollmentID)

	_, err = DecodeCorrelated(NewEvent("p1", SeatReservationFailedEvent, SagaStepData{StudentID: "s1"}))
	assert.ErrorIs(t, err, ErrInvalidPayload)

	garbled := NewEvent("p1", PaymentSuccessEvent, "not an object").WithCorrelationID("e3")
	data, err = DecodeCorrelated(garbled)
	require.NoError(t, err)
	assert.Equal(t, "e3", data.EnrollmentID)
	assert.Empty(t, data.CourseID)

	_, err = DecodeCorrelated(NewEvent("p1", PaymentSuccessEvent, "not an object"))
	assert.Error(t, err)
}
