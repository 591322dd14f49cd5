package application

import (
	"context"

	"github.com/campusflow/enrollment-system/enrollment-service/domain"
	"github.com/campusflow/enrollment-system/shared/saga"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// GetEnrollment serves the read side: single enrollments, lists and saga history
type GetEnrollment struct {
	enrollmentRepository domain.EnrollmentRepository
	directory            directory
}

// NewGetEnrollment creates a new GetEnrollment use case
func NewGetEnrollment(
	enrollmentRepository domain.EnrollmentRepository,
	students domain.StudentDirectory,
	courses domain.CourseCatalog,
	logger *zap.Logger,
) *GetEnrollment {
	return &GetEnrollment{
		enrollmentRepository: enrollmentRepository,
		directory:            newDirectory(students, courses, logger),
	}
}

// Execute returns one enriched enrollment
func (uc *GetEnrollment) Execute(ctx context.Context, enrollmentID string) (*EnrollmentResponse, error) {
	enrollment, err := findEnrollment(ctx, uc.enrollmentRepository, enrollmentID)
	if err != nil {
		return nil, err
	}
	return uc.directory.view(ctx, enrollment), nil
}

// List returns every enrollment
func (uc *GetEnrollment) List(ctx context.Context) ([]*EnrollmentResponse, error) {
	enrollments, err := uc.enrollmentRepository.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list enrollments")
	}
	return uc.directory.views(ctx, enrollments), nil
}

// ByStudent returns the enrollments of one student
func (uc *GetEnrollment) ByStudent(ctx context.Context, studentID string) ([]*EnrollmentResponse, error) {
	enrollments, err := uc.enrollmentRepository.FindByStudentID(ctx, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list enrollments")
	}
	return uc.directory.views(ctx, enrollments), nil
}

// ByCourse returns the enrollments of one course
func (uc *GetEnrollment) ByCourse(ctx context.Context, courseID string) ([]*EnrollmentResponse, error) {
	enrollments, err := uc.enrollmentRepository.FindByCourseID(ctx, courseID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list enrollments")
	}
	return uc.directory.views(ctx, enrollments), nil
}

// History returns the saga transitions of one enrollment
func (uc *GetEnrollment) History(ctx context.Context, enrollmentID string) ([]saga.Transition, error) {
	enrollment, err := findEnrollment(ctx, uc.enrollmentRepository, enrollmentID)
	if err != nil {
		return nil, err
	}

	history, err := uc.enrollmentRepository.History(ctx, enrollment.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load saga history")
	}
	return history, nil
}
