package application

import (
	"context"

	"github.com/campusflow/enrollment-system/enrollment-service/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ConfirmEnrollment is the administrative override that force-sets CONFIRMED.
// It does not publish enrollment-confirmed.
type ConfirmEnrollment struct {
	enrollmentRepository domain.EnrollmentRepository
	directory            directory
	logger               *zap.Logger
}

// NewConfirmEnrollment creates a new ConfirmEnrollment use case
func NewConfirmEnrollment(
	enrollmentRepository domain.EnrollmentRepository,
	students domain.StudentDirectory,
	courses domain.CourseCatalog,
	logger *zap.Logger,
) *ConfirmEnrollment {
	return &ConfirmEnrollment{
		enrollmentRepository: enrollmentRepository,
		directory:            newDirectory(students, courses, logger),
		logger:               logger,
	}
}

// Execute executes the confirm use case
func (uc *ConfirmEnrollment) Execute(ctx context.Context, enrollmentID string) (*EnrollmentResponse, error) {
	enrollment, err := findEnrollment(ctx, uc.enrollmentRepository, enrollmentID)
	if err != nil {
		return nil, err
	}

	previous := enrollment.Status
	if err := enrollment.ForceConfirm(); err != nil {
		return nil, err
	}

	if err := uc.enrollmentRepository.Save(ctx, enrollment); err != nil {
		return nil, errors.Wrap(err, "failed to save confirmed enrollment")
	}

	uc.logger.Warn("enrollment confirmed manually",
		append(enrollmentFields(enrollment), zap.String("previous_status", string(previous)))...)

	return uc.directory.view(ctx, enrollment), nil
}
