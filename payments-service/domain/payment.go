package domain

import (
	"context"
	"time"

	"github.com/campusflow/enrollment-system/shared/apperrors"
	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/campusflow/enrollment-system/shared/models"
	"github.com/pkg/errors"
)

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

const producer = "payments-service"

var (
	// ErrPaymentExists is returned when the enrollment already has a payment
	ErrPaymentExists = errors.New("enrollment already has a payment")
	// ErrNotRefundable is returned when compensation reaches a payment that was never paid
	ErrNotRefundable = errors.New("payment was never paid")
)

// Payment aggregate root. There is at most one payment per enrollment.
type Payment struct {
	ID           models.ID
	EnrollmentID string
	StudentID    string
	CourseID     string
	StudentName  string
	CourseName   string
	Amount       models.Money
	Status       PaymentStatus
	PaymentDate  *time.Time
	Timestamps   models.Timestamps
	Version      models.Version

	events []*events.Event
}

// RecordPayment creates the PENDING payment for an initiated enrollment
func RecordPayment(data events.EnrollmentInitiatedData, fee models.Money) (*Payment, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	if !fee.IsPositive() {
		return nil, errors.New("amount must be positive")
	}

	return &Payment{
		ID:           models.GenerateUUID(),
		EnrollmentID: data.EnrollmentID,
		StudentID:    data.StudentID,
		CourseID:     data.CourseID,
		StudentName:  data.StudentName,
		CourseName:   data.CourseName,
		Amount:       fee,
		Status:       PaymentStatusPending,
		Timestamps:   models.NewTimestamps(),
		Version:      models.NewVersion(),
	}, nil
}

// IsNew reports whether the payment has never been stored
func (p *Payment) IsNew() bool {
	return p.Version.Value == 1
}

// Complete marks a pending payment as paid and records payment-success
func (p *Payment) Complete() error {
	if p.Status == PaymentStatusPaid {
		return errors.Wrapf(apperrors.ErrAlreadyCompleted, "payment %s", p.ID)
	}
	if p.Status != PaymentStatusPending {
		return apperrors.InvalidState("payment can only be completed from PENDING, it is " + string(p.Status))
	}

	now := time.Now().UTC()
	p.Status = PaymentStatusPaid
	p.PaymentDate = &now
	p.touch()

	p.recordStep(events.PaymentSuccessEvent)
	return nil
}

// Fail declines a pending payment and records payment-failed
func (p *Payment) Fail() error {
	if p.Status != PaymentStatusPending {
		return apperrors.InvalidState("payment can only be declined from PENDING, it is " + string(p.Status))
	}

	p.Status = PaymentStatusFailed
	p.touch()

	p.recordStep(events.PaymentFailedEvent)
	return nil
}

// Refund compensates a paid payment. It reports false when the payment was
// already refunded, and ErrNotRefundable when it was never paid.
func (p *Payment) Refund() (bool, error) {
	switch p.Status {
	case PaymentStatusPaid:
		p.Status = PaymentStatusRefunded
		p.touch()
		return true, nil
	case PaymentStatusRefunded:
		return false, nil
	default:
		return false, errors.Wrapf(ErrNotRefundable, "payment %s is %s", p.ID, p.Status)
	}
}

// Outcome re-records the saga step a settled payment already announced.
// Pending and refunded payments have nothing to repeat.
func (p *Payment) Outcome() bool {
	switch p.Status {
	case PaymentStatusPaid:
		p.recordStep(events.PaymentSuccessEvent)
	case PaymentStatusFailed:
		p.recordStep(events.PaymentFailedEvent)
	default:
		return false
	}
	return true
}

func (p *Payment) touch() {
	p.Timestamps = p.Timestamps.Update()
	p.Version = p.Version.Update()
}

// Events returns domain events
func (p *Payment) Events() []*events.Event {
	return p.events
}

// ClearEvents clears domain events
func (p *Payment) ClearEvents() {
	p.events = make([]*events.Event, 0)
}

func (p *Payment) recordStep(topic string) {
	event := events.NewEvent(p.ID, topic, events.SagaStepData{
		EnrollmentID: p.EnrollmentID,
		StudentID:    p.StudentID,
		CourseID:     p.CourseID,
	})
	event.WithCorrelationID(models.ID(p.EnrollmentID)).WithMetadata(events.MetadataProducer, producer)
	p.events = append(p.events, event)
}

// PaymentRepository interface
type PaymentRepository interface {
	// Save inserts a new payment, returning ErrPaymentExists when the
	// enrollment already has one, or updates it with a version check
	Save(ctx context.Context, payment *Payment) error
	FindByID(ctx context.Context, id models.ID) (*Payment, error)
	FindByEnrollmentID(ctx context.Context, enrollmentID string) (*Payment, error)
	FindAll(ctx context.Context) ([]*Payment, error)
}
