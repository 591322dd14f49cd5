package application

import (
	"context"

	"github.com/campusflow/enrollment-system/payments-service/domain"
	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/campusflow/enrollment-system/shared/logging"
	"github.com/campusflow/enrollment-system/shared/models"
	"github.com/campusflow/enrollment-system/shared/telemetry"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// RecordPayment creates the PENDING payment when an enrollment saga starts
type RecordPayment struct {
	paymentRepository domain.PaymentRepository
	eventPublisher    events.Publisher
	fee               models.Money
	logger            *zap.Logger
}

// NewRecordPayment creates a new RecordPayment use case
func NewRecordPayment(
	paymentRepository domain.PaymentRepository,
	eventPublisher events.Publisher,
	fee models.Money,
	logger *zap.Logger,
) *RecordPayment {
	return &RecordPayment{
		paymentRepository: paymentRepository,
		eventPublisher:    eventPublisher,
		fee:               fee,
		logger:            logger,
	}
}

// Execute handles enrollment-initiated. Storage errors are returned so the
// message is redelivered.
func (uc *RecordPayment) Execute(ctx context.Context, event *events.Event) error {
	var data events.EnrollmentInitiatedData
	if err := event.UnmarshalPayload(&data); err != nil {
		return errors.Wrap(err, "failed to decode enrollment-initiated payload")
	}

	existing, err := uc.paymentRepository.FindByEnrollmentID(ctx, data.EnrollmentID)
	if err != nil {
		return errors.Wrap(err, "failed to find payment")
	}
	if existing != nil {
		return uc.repeatOutcome(ctx, existing)
	}

	payment, err := domain.RecordPayment(data, uc.fee)
	if err != nil {
		return err
	}

	if err := uc.paymentRepository.Save(ctx, payment); err != nil {
		if errors.Is(err, domain.ErrPaymentExists) {
			uc.logger.Info("payment recorded concurrently", logging.EnrollmentID(data.EnrollmentID))
			return nil
		}
		return errors.Wrap(err, "failed to save payment")
	}

	uc.logger.Info("payment pending", append(paymentFields(payment), zap.Stringer("amount", payment.Amount))...)
	telemetry.RecordCounter(ctx, "saga_payments_recorded_total", "Payments recorded for initiated enrollments", 1)

	return nil
}

// repeatOutcome answers a replayed or retried enrollment-initiated. A payment
// that was already settled announces its outcome again so a retried saga can
// move on, a pending one keeps waiting for a decision.
func (uc *RecordPayment) repeatOutcome(ctx context.Context, payment *domain.Payment) error {
	if !payment.Outcome() {
		uc.logger.Info("enrollment already has a payment", paymentFields(payment)...)
		return nil
	}

	if err := uc.eventPublisher.Publish(ctx, payment.Events()...); err != nil {
		return errors.Wrap(err, "failed to republish payment outcome")
	}
	payment.ClearEvents()

	uc.logger.Info("republished payment outcome", paymentFields(payment)...)
	return nil
}
