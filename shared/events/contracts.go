package events

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Saga topics. Every payload carries enrollmentId as the correlation key.
const (
	EnrollmentInitiatedEvent   = "enrollment-initiated"
	PaymentSuccessEvent        = "payment-success"
	PaymentFailedEvent         = "payment-failed"
	SeatReservedEvent          = "seat-reserved"
	SeatReservationFailedEvent = "seat-reservation-failed"
	EnrollmentConfirmedEvent   = "enrollment-confirmed"

	// DeadLetterEvent receives events whose handler kept failing
	DeadLetterEvent = "dead-letter"
)

// SagaTopics lists the topics participants subscribe to, in flow order
var SagaTopics = []string{
	EnrollmentInitiatedEvent,
	PaymentSuccessEvent,
	PaymentFailedEvent,
	SeatReservedEvent,
	SeatReservationFailedEvent,
	EnrollmentConfirmedEvent,
}

// Metadata keys written by the bus adapters
const (
	MetadataDeliveryAttempt  = "delivery_attempt"
	MetadataDeadLetterReason = "dead_letter_reason"
	MetadataOriginalTopic    = "original_topic"
	MetadataProducer         = "producer"
)

// ConfirmedStatus is the only status the notification participant acts on
const ConfirmedStatus = "ACTIVE"

// EnrollmentInitiatedData is published by the coordinator when a saga starts or is retried
type EnrollmentInitiatedData struct {
	EnrollmentID string `json:"enrollmentId"`
	StudentID    string `json:"studentId"`
	CourseID     string `json:"courseId"`
	StudentEmail string `json:"studentEmail"`
	StudentName  string `json:"studentName"`
	CourseName   string `json:"courseName"`
}

// SagaStepData is the payload of payment-success, payment-failed, seat-reserved
// and seat-reservation-failed
type SagaStepData struct {
	EnrollmentID string `json:"enrollmentId"`
	StudentID    string `json:"studentId"`
	CourseID     string `json:"courseId"`
}

// EnrollmentConfirmedData is the terminal notification payload
type EnrollmentConfirmedData struct {
	EnrollmentID string    `json:"enrollmentId"`
	StudentID    string    `json:"studentId"`
	CourseID     string    `json:"courseId"`
	StudentEmail string    `json:"studentEmail"`
	StudentName  string    `json:"studentName"`
	CourseName   string    `json:"courseName"`
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
}

// Validate checks the correlation fields every saga step needs
func (d SagaStepData) Validate() error {
	return requireIDs(d.EnrollmentID, d.StudentID, d.CourseID)
}

func (d EnrollmentInitiatedData) Validate() error {
	return requireIDs(d.EnrollmentID, d.StudentID, d.CourseID)
}

func (d EnrollmentConfirmedData) Validate() error {
	return requireIDs(d.EnrollmentID, d.StudentID, d.CourseID)
}

// Step returns the correlation part of the initiation payload
func (d EnrollmentInitiatedData) Step() SagaStepData {
	return SagaStepData{EnrollmentID: d.EnrollmentID, StudentID: d.StudentID, CourseID: d.CourseID}
}

func requireIDs(enrollmentID, studentID, courseID string) error {
	var missing []string
	if enrollmentID == "" {
		missing = append(missing, "enrollmentId")
	}
	if studentID == "" {
		missing = append(missing, "studentId")
	}
	if courseID == "" {
		missing = append(missing, "courseId")
	}
	if len(missing) > 0 {
		return errors.Wrapf(ErrInvalidPayload, "missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// DecodeCorrelated unmarshals a saga step payload that only has to identify
// its enrollment. The correlation id stands in for a missing enrollmentId.
func DecodeCorrelated(event *Event) (SagaStepData, error) {
	var data SagaStepData
	decodeErr := event.UnmarshalPayload(&data)
	if decodeErr != nil {
		data = SagaStepData{}
	}
	if data.EnrollmentID == "" {
		data.EnrollmentID = event.CorrelationID.String()
	}
	if data.EnrollmentID != "" {
		return data, nil
	}
	if decodeErr != nil {
		return data, errors.Wrapf(decodeErr, "failed to decode %s payload", event.Topic)
	}
	return data, errors.Wrap(ErrInvalidPayload, "missing enrollmentId")
}

// DecodeStep unmarshals and validates a saga step payload
func DecodeStep(event *Event) (SagaStepData, error) {
	var data SagaStepData
	if err := event.UnmarshalPayload(&data); err != nil {
		return data, errors.Wrapf(err, "failed to decode %s payload", event.Topic)
	}
	return data, data.Validate()
}
