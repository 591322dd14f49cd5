package application

import (
	"context"

	"github.com/campusflow/enrollment-system/payments-service/domain"
	"github.com/campusflow/enrollment-system/shared/apperrors"
	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/campusflow/enrollment-system/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// CompletePayment settles a pending payment and lets inventory reserve the seat
type CompletePayment struct {
	paymentRepository domain.PaymentRepository
	eventPublisher    events.Publisher
	logger            *zap.Logger
}

// NewCompletePayment creates a new CompletePayment use case
func NewCompletePayment(
	paymentRepository domain.PaymentRepository,
	eventPublisher events.Publisher,
	logger *zap.Logger,
) *CompletePayment {
	return &CompletePayment{
		paymentRepository: paymentRepository,
		eventPublisher:    eventPublisher,
		logger:            logger,
	}
}

// Execute marks the payment PAID and publishes payment-success
func (uc *CompletePayment) Execute(ctx context.Context, paymentID string) (*PaymentResponse, error) {
	return settle(ctx, uc.paymentRepository, uc.eventPublisher, uc.logger, paymentID, (*domain.Payment).Complete)
}

// DeclinePayment is the manual decline of a pending payment
type DeclinePayment struct {
	paymentRepository domain.PaymentRepository
	eventPublisher    events.Publisher
	logger            *zap.Logger
}

// NewDeclinePayment creates a new DeclinePayment use case
func NewDeclinePayment(
	paymentRepository domain.PaymentRepository,
	eventPublisher events.Publisher,
	logger *zap.Logger,
) *DeclinePayment {
	return &DeclinePayment{
		paymentRepository: paymentRepository,
		eventPublisher:    eventPublisher,
		logger:            logger,
	}
}

// Execute marks the payment FAILED and publishes payment-failed
func (uc *DeclinePayment) Execute(ctx context.Context, paymentID string) (*PaymentResponse, error) {
	return settle(ctx, uc.paymentRepository, uc.eventPublisher, uc.logger, paymentID, (*domain.Payment).Fail)
}

// settle applies a decision, stores it and publishes the saga step it recorded.
// If the publish fails the decision stays stored, a retry of the enrollment
// republishes it.
func settle(
	ctx context.Context,
	repo domain.PaymentRepository,
	publisher events.Publisher,
	logger *zap.Logger,
	paymentID string,
	decide func(*domain.Payment) error,
) (*PaymentResponse, error) {
	payment, err := findPayment(ctx, repo, paymentID)
	if err != nil {
		return nil, err
	}

	if err := decide(payment); err != nil {
		return nil, err
	}

	if err := repo.Save(ctx, payment); err != nil {
		return nil, errors.Wrap(err, "failed to save payment")
	}

	logger.Info("payment settled", paymentFields(payment)...)
	telemetry.RecordCounter(ctx, "saga_payments_settled_total", "Payments completed or declined", 1,
		attribute.String("status", string(payment.Status)),
	)

	if err := publisher.Publish(ctx, payment.Events()...); err != nil {
		logger.Error("failed to publish payment outcome", append(paymentFields(payment), zap.Error(err))...)
		return nil, apperrors.Unavailable(err, "payment stored but its outcome was not published")
	}
	payment.ClearEvents()

	return toResponse(payment), nil
}
