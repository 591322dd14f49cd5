package application

import (
	"context"

	"github.com/campusflow/enrollment-system/payments-service/domain"
	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/campusflow/enrollment-system/shared/logging"
	"github.com/campusflow/enrollment-system/shared/telemetry"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// RefundPayment compensates the payment of an enrollment whose seat could not be reserved
type RefundPayment struct {
	paymentRepository domain.PaymentRepository
	logger            *zap.Logger
}

// NewRefundPayment creates a new RefundPayment use case
func NewRefundPayment(paymentRepository domain.PaymentRepository, logger *zap.Logger) *RefundPayment {
	return &RefundPayment{
		paymentRepository: paymentRepository,
		logger:            logger,
	}
}

// Execute handles seat-reservation-failed
func (uc *RefundPayment) Execute(ctx context.Context, event *events.Event) error {
	step, err := events.DecodeCorrelated(event)
	if err != nil {
		return err
	}

	payment, err := uc.paymentRepository.FindByEnrollmentID(ctx, step.EnrollmentID)
	if err != nil {
		return errors.Wrap(err, "failed to find payment")
	}
	if payment == nil {
		uc.logger.Warn("no payment to refund", logging.EnrollmentID(step.EnrollmentID))
		return nil
	}

	refunded, err := payment.Refund()
	if err != nil {
		if errors.Is(err, domain.ErrNotRefundable) {
			uc.logger.Warn("refund requested for unpaid payment, leaving it unchanged", paymentFields(payment)...)
			return nil
		}
		return err
	}
	if !refunded {
		uc.logger.Info("payment already refunded", paymentFields(payment)...)
		return nil
	}

	if err := uc.paymentRepository.Save(ctx, payment); err != nil {
		return errors.Wrap(err, "failed to save refunded payment")
	}

	uc.logger.Info("payment refunded", paymentFields(payment)...)
	telemetry.RecordCounter(ctx, "saga_payments_refunded_total", "Payments refunded by compensation", 1)

	return nil
}
