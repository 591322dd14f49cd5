package application

import (
	"context"

	"github.com/campusflow/enrollment-system/payments-service/domain"
	"github.com/campusflow/enrollment-system/shared/apperrors"
	"github.com/pkg/errors"
)

// GetPayment serves the payment read endpoints
type GetPayment struct {
	paymentRepository domain.PaymentRepository
}

// NewGetPayment creates a new GetPayment use case
func NewGetPayment(paymentRepository domain.PaymentRepository) *GetPayment {
	return &GetPayment{
		paymentRepository: paymentRepository,
	}
}

// Execute returns one payment
func (uc *GetPayment) Execute(ctx context.Context, paymentID string) (*PaymentResponse, error) {
	payment, err := findPayment(ctx, uc.paymentRepository, paymentID)
	if err != nil {
		return nil, err
	}
	return toResponse(payment), nil
}

// ByEnrollment returns the payment of an enrollment
func (uc *GetPayment) ByEnrollment(ctx context.Context, enrollmentID string) (*PaymentResponse, error) {
	payment, err := uc.paymentRepository.FindByEnrollmentID(ctx, enrollmentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find payment")
	}
	if payment == nil {
		return nil, apperrors.NotFound("payment for enrollment " + enrollmentID)
	}
	return toResponse(payment), nil
}

// List returns every payment
func (uc *GetPayment) List(ctx context.Context) ([]*PaymentResponse, error) {
	payments, err := uc.paymentRepository.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list payments")
	}

	response := make([]*PaymentResponse, len(payments))
	for i, payment := range payments {
		response[i] = toResponse(payment)
	}
	return response, nil
}
