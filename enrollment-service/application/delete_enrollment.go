package application

import (
	"context"

	"github.com/campusflow/enrollment-system/enrollment-service/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DeleteEnrollment removes a finished enrollment and its saga history
type DeleteEnrollment struct {
	enrollmentRepository domain.EnrollmentRepository
	logger               *zap.Logger
}

// NewDeleteEnrollment creates a new DeleteEnrollment use case
func NewDeleteEnrollment(enrollmentRepository domain.EnrollmentRepository, logger *zap.Logger) *DeleteEnrollment {
	return &DeleteEnrollment{
		enrollmentRepository: enrollmentRepository,
		logger:               logger,
	}
}

// Execute deletes the enrollment. PENDING enrollments are refused.
func (uc *DeleteEnrollment) Execute(ctx context.Context, enrollmentID string) error {
	enrollment, err := findEnrollment(ctx, uc.enrollmentRepository, enrollmentID)
	if err != nil {
		return err
	}

	if err := enrollment.CheckRemovable(); err != nil {
		return err
	}

	if err := uc.enrollmentRepository.Delete(ctx, enrollment); err != nil {
		return errors.Wrap(err, "failed to delete enrollment")
	}

	uc.logger.Info("enrollment deleted",
		append(enrollmentFields(enrollment), zap.String("status", string(enrollment.Status)))...)
	return nil
}
