package application

import (
	"context"

	"github.com/campusflow/enrollment-system/enrollment-service/domain"
	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/campusflow/enrollment-system/shared/logging"
	"github.com/campusflow/enrollment-system/shared/models"
	"github.com/campusflow/enrollment-system/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// CancelEnrollment rolls the enrollment back on payment-failed and seat-reservation-failed
type CancelEnrollment struct {
	enrollmentRepository domain.EnrollmentRepository
	logger               *zap.Logger
}

// NewCancelEnrollment creates a new CancelEnrollment use case
func NewCancelEnrollment(enrollmentRepository domain.EnrollmentRepository, logger *zap.Logger) *CancelEnrollment {
	return &CancelEnrollment{
		enrollmentRepository: enrollmentRepository,
		logger:               logger,
	}
}

// Execute handles a saga failure event
func (uc *CancelEnrollment) Execute(ctx context.Context, event *events.Event) error {
	step, err := events.DecodeCorrelated(event)
	if err != nil {
		return err
	}

	enrollment, err := uc.enrollmentRepository.FindByID(ctx, models.ID(step.EnrollmentID))
	if err != nil {
		return errors.Wrap(err, "failed to find enrollment")
	}
	if enrollment == nil {
		uc.logger.Warn("saga failure for unknown enrollment",
			logging.EnrollmentID(step.EnrollmentID),
			logging.Topic(event.Topic.String()),
		)
		return nil
	}

	if err := enrollment.CancelFromSaga(event.Topic.String(), event.ID.String()); err != nil {
		if errors.Is(err, domain.ErrTerminal) {
			uc.logger.Info("dropping saga failure for finished enrollment",
				append(enrollmentFields(enrollment), logging.Topic(event.Topic.String()))...)
			return nil
		}
		return err
	}

	if err := uc.enrollmentRepository.Save(ctx, enrollment); err != nil {
		return errors.Wrap(err, "failed to save cancelled enrollment")
	}

	uc.logger.Warn("enrollment cancelled by saga",
		append(enrollmentFields(enrollment), logging.Topic(event.Topic.String()))...)
	telemetry.RecordCounter(ctx, "saga_enrollments_cancelled_total", "Enrollments cancelled", 1,
		attribute.String("reason", string(enrollment.FailureReason)),
	)

	return nil
}
