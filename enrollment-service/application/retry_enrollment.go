package application

import (
	"context"

	"github.com/campusflow/enrollment-system/enrollment-service/domain"
	"github.com/campusflow/enrollment-system/shared/apperrors"
	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/campusflow/enrollment-system/shared/models"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// RetryFallbackEmail is published when the directory has no email for the student
const RetryFallbackEmail = "unknown@example.com"

// RetryEnrollment re-publishes enrollment-initiated for a stuck PENDING enrollment
type RetryEnrollment struct {
	enrollmentRepository domain.EnrollmentRepository
	directory            directory
	eventPublisher       events.Publisher
	logger               *zap.Logger
}

// NewRetryEnrollment creates a new RetryEnrollment use case
func NewRetryEnrollment(
	enrollmentRepository domain.EnrollmentRepository,
	students domain.StudentDirectory,
	courses domain.CourseCatalog,
	eventPublisher events.Publisher,
	logger *zap.Logger,
) *RetryEnrollment {
	return &RetryEnrollment{
		enrollmentRepository: enrollmentRepository,
		directory:            newDirectory(students, courses, logger),
		eventPublisher:       eventPublisher,
		logger:               logger,
	}
}

// Execute executes the retry use case
func (uc *RetryEnrollment) Execute(ctx context.Context, enrollmentID string) (*EnrollmentResponse, error) {
	enrollment, err := findEnrollment(ctx, uc.enrollmentRepository, enrollmentID)
	if err != nil {
		return nil, err
	}

	if enrollment.Status != domain.EnrollmentStatusPending {
		return nil, apperrors.InvalidState("can only retry PENDING enrollments, got " + string(enrollment.Status))
	}

	student, course := uc.directory.resolve(ctx, enrollment.StudentID, enrollment.CourseID, RetryFallbackEmail)

	if err := enrollment.Retry(student, course); err != nil {
		return nil, err
	}

	if err := uc.enrollmentRepository.Save(ctx, enrollment); err != nil {
		return nil, errors.Wrap(err, "failed to save retried enrollment")
	}

	if err := uc.eventPublisher.Publish(ctx, enrollment.Events()...); err != nil {
		return nil, apperrors.Unavailable(err, "failed to publish enrollment-initiated")
	}
	enrollment.ClearEvents()

	uc.logger.Info("enrollment saga retried", enrollmentFields(enrollment)...)
	return toResponse(enrollment, student, course), nil
}

// findEnrollment parses the id and loads the enrollment, mapping absence to NotFound
func findEnrollment(ctx context.Context, repo domain.EnrollmentRepository, enrollmentID string) (*domain.Enrollment, error) {
	id, err := models.NewID(enrollmentID)
	if err != nil {
		return nil, apperrors.Validation("invalid enrollment ID")
	}

	enrollment, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find enrollment")
	}
	if enrollment == nil {
		return nil, apperrors.NotFound("enrollment " + enrollmentID)
	}

	return enrollment, nil
}
