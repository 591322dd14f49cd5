package application

import (
	"context"

	"github.com/campusflow/enrollment-system/enrollment-service/domain"
	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/campusflow/enrollment-system/shared/logging"
	"github.com/campusflow/enrollment-system/shared/models"
	"github.com/campusflow/enrollment-system/shared/telemetry"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// CompleteEnrollment confirms an enrollment once its seat is reserved and
// announces it to the notification participant
type CompleteEnrollment struct {
	enrollmentRepository domain.EnrollmentRepository
	directory            directory
	eventPublisher       events.Publisher
	logger               *zap.Logger
}

// NewCompleteEnrollment creates a new CompleteEnrollment use case
func NewCompleteEnrollment(
	enrollmentRepository domain.EnrollmentRepository,
	students domain.StudentDirectory,
	courses domain.CourseCatalog,
	eventPublisher events.Publisher,
	logger *zap.Logger,
) *CompleteEnrollment {
	return &CompleteEnrollment{
		enrollmentRepository: enrollmentRepository,
		directory:            newDirectory(students, courses, logger),
		eventPublisher:       eventPublisher,
		logger:               logger,
	}
}

// Execute handles seat-reserved
func (uc *CompleteEnrollment) Execute(ctx context.Context, event *events.Event) error {
	step, err := events.DecodeStep(event)
	if err != nil {
		return err
	}

	enrollment, err := uc.enrollmentRepository.FindByID(ctx, models.ID(step.EnrollmentID))
	if err != nil {
		return errors.Wrap(err, "failed to find enrollment")
	}
	if enrollment == nil {
		uc.logger.Warn("seat reserved for unknown enrollment", logging.EnrollmentID(step.EnrollmentID))
		return nil
	}

	// the seat-reserved payload carries ids only
	student, course := uc.directory.resolve(ctx, enrollment.StudentID, enrollment.CourseID, "")

	if err := enrollment.ConfirmFromSaga(event.ID.String(), student, course); err != nil {
		if errors.Is(err, domain.ErrTerminal) {
			uc.logger.Info("dropping seat-reserved for finished enrollment",
				append(enrollmentFields(enrollment), zap.String("status", string(enrollment.Status)))...)
			return nil
		}
		return err
	}

	if err := uc.enrollmentRepository.Save(ctx, enrollment); err != nil {
		return errors.Wrap(err, "failed to save confirmed enrollment")
	}

	uc.logger.Info("enrollment confirmed", enrollmentFields(enrollment)...)
	telemetry.RecordCounter(ctx, "saga_enrollments_confirmed_total", "Enrollments confirmed by the saga", 1)

	// the enrollment is already CONFIRMED, a redelivery would be dropped
	if err := uc.eventPublisher.Publish(ctx, enrollment.Events()...); err != nil {
		uc.logger.Error("failed to publish enrollment-confirmed, no notification will be sent",
			append(enrollmentFields(enrollment), zap.Error(err))...)
		return nil
	}
	enrollment.ClearEvents()

	return nil
}
