package domain

import (
	"testing"

	"github.com/campusflow/enrollment-system/shared/apperrors"
	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/campusflow/enrollment-system/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var initiated = events.EnrollmentInitiatedData{
	EnrollmentID: "9a0c7c52-3f0e-4a57-9b43-0d5a3f4b7c11",
	StudentID:    "1",
	CourseID:     "101",
	StudentEmail: "ada@example.com",
	StudentName:  "Ada Lovelace",
	CourseName:   "Analytical Engines",
}

func newPayment(t *testing.T) *Payment {
	t.Helper()
	payment, err := RecordPayment(initiated, models.NewMoney(10000, "USD"))
	require.NoError(t, err)
	return payment
}

func TestRecordPayment(t *testing.T) {
	payment := newPayment(t)

	assert.Equal(t, PaymentStatusPending, payment.Status)
	assert.Equal(t, initiated.EnrollmentID, payment.EnrollmentID)
	assert.Equal(t, "Ada Lovelace", payment.StudentName)
	assert.Equal(t, "Analytical Engines", payment.CourseName)
	assert.Nil(t, payment.PaymentDate)
	assert.True(t, payment.IsNew())
	assert.Empty(t, payment.Events())
}

func TestRecordPayment_Invalid(t *testing.T) {
	_, err := RecordPayment(events.EnrollmentInitiatedData{StudentID: "1", CourseID: "2"}, models.NewMoney(10000, "USD"))
	assert.ErrorIs(t, err, events.ErrInvalidPayload)

	_, err = RecordPayment(initiated, models.NewMoney(0, "USD"))
	assert.EqualError(t, err, "amount must be positive")
}

func TestPayment_Complete(t *testing.T) {
	payment := newPayment(t)

	require.NoError(t, payment.Complete())

	assert.Equal(t, PaymentStatusPaid, payment.Status)
	require.NotNil(t, payment.PaymentDate)
	assert.False(t, payment.IsNew())
	require.Len(t, payment.Events(), 1)

	event := payment.Events()[0]
	assert.Equal(t, events.PaymentSuccessEvent, event.Topic.String())
	assert.Equal(t, initiated.EnrollmentID, event.CorrelationID.String())
	assert.Equal(t, events.SagaStepData{
		EnrollmentID: initiated.EnrollmentID,
		StudentID:    "1",
		CourseID:     "101",
	}, event.Data)
}

func TestPayment_CompleteTwice(t *testing.T) {
	payment := newPayment(t)
	require.NoError(t, payment.Complete())
	payment.ClearEvents()
	version := payment.Version

	err := payment.Complete()

	assert.True(t, apperrors.Is(err, apperrors.ErrAlreadyCompleted))
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidState))
	assert.Equal(t, version, payment.Version)
	assert.Empty(t, payment.Events())
}

func TestPayment_Fail(t *testing.T) {
	payment := newPayment(t)

	require.NoError(t, payment.Fail())
	assert.Equal(t, PaymentStatusFailed, payment.Status)
	require.Len(t, payment.Events(), 1)
	assert.Equal(t, events.PaymentFailedEvent, payment.Events()[0].Topic.String())

	assert.True(t, apperrors.Is(payment.Fail(), apperrors.ErrInvalidState))
	assert.True(t, apperrors.Is(payment.Complete(), apperrors.ErrInvalidState))
}

func TestPayment_Refund(t *testing.T) {
	tests := []struct {
		name        string
		status      PaymentStatus
		expectedOK  bool
		expectedErr error
		finalStatus PaymentStatus
	}{
		{"paid is refunded", PaymentStatusPaid, true, nil, PaymentStatusRefunded},
		{"refunded is a no-op", PaymentStatusRefunded, false, nil, PaymentStatusRefunded},
		{"pending is left alone", PaymentStatusPending, false, ErrNotRefundable, PaymentStatusPending},
		{"failed is left alone", PaymentStatusFailed, false, ErrNotRefundable, PaymentStatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment := newPayment(t)
			payment.Status = tt.status

			ok, err := payment.Refund()

			assert.Equal(t, tt.expectedOK, ok)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.finalStatus, payment.Status)
			assert.Empty(t, payment.Events())
		})
	}
}

func TestPayment_Outcome(t *testing.T) {
	payment := newPayment(t)
	assert.False(t, payment.Outcome())

	require.NoError(t, payment.Complete())
	payment.ClearEvents()

	assert.True(t, payment.Outcome())
	require.Len(t, payment.Events(), 1)
	assert.Equal(t, events.PaymentSuccessEvent, payment.Events()[0].Topic.String())
}
