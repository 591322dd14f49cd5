package application

import (
	"context"
	"time"

	"github.com/campusflow/enrollment-system/payments-service/domain"
	"github.com/campusflow/enrollment-system/shared/apperrors"
	"github.com/campusflow/enrollment-system/shared/logging"
	"github.com/campusflow/enrollment-system/shared/models"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// PaymentResponse represents a payment as returned by the API
type PaymentResponse struct {
	ID           string       `json:"id"`
	EnrollmentID string       `json:"enrollmentId"`
	StudentID    string       `json:"studentId"`
	CourseID     string       `json:"courseId"`
	StudentName  string       `json:"studentName"`
	CourseName   string       `json:"courseName"`
	Amount       models.Money `json:"amount"`
	Status       string       `json:"status"`
	PaymentDate  *time.Time   `json:"paymentDate,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

func toResponse(payment *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:           payment.ID.String(),
		EnrollmentID: payment.EnrollmentID,
		StudentID:    payment.StudentID,
		CourseID:     payment.CourseID,
		StudentName:  payment.StudentName,
		CourseName:   payment.CourseName,
		Amount:       payment.Amount,
		Status:       string(payment.Status),
		PaymentDate:  payment.PaymentDate,
		CreatedAt:    payment.Timestamps.CreatedAt,
		UpdatedAt:    payment.Timestamps.UpdatedAt,
	}
}

func findPayment(ctx context.Context, repo domain.PaymentRepository, paymentID string) (*domain.Payment, error) {
	id, err := models.NewID(paymentID)
	if err != nil {
		return nil, apperrors.Validation("invalid payment ID " + paymentID)
	}

	payment, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find payment")
	}
	if payment == nil {
		return nil, apperrors.NotFound("payment " + paymentID)
	}

	return payment, nil
}

func paymentFields(payment *domain.Payment) []zap.Field {
	return []zap.Field{
		zap.String("payment_id", payment.ID.String()),
		logging.EnrollmentID(payment.EnrollmentID),
		zap.String("status", string(payment.Status)),
	}
}
