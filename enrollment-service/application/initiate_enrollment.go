package application

import (
	"context"
	"time"

	"github.com/campusflow/enrollment-system/enrollment-service/domain"
	"github.com/campusflow/enrollment-system/shared/apperrors"
	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/campusflow/enrollment-system/shared/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// InitiateEnrollmentCommand represents the command to enroll a student
type InitiateEnrollmentCommand struct {
	StudentID DirectoryID `json:"studentId" validate:"required"`
	CourseID  DirectoryID `json:"courseId" validate:"required"`
}

// InitiateEnrollment starts the enrollment saga. It never fails on saga
// grounds: every failure after validation yields a CANCELLED response.
type InitiateEnrollment struct {
	enrollmentRepository domain.EnrollmentRepository
	students             domain.StudentDirectory
	courses              domain.CourseCatalog
	eventPublisher       events.Publisher
	logger               *zap.Logger
}

// NewInitiateEnrollment creates a new InitiateEnrollment use case
func NewInitiateEnrollment(
	enrollmentRepository domain.EnrollmentRepository,
	students domain.StudentDirectory,
	courses domain.CourseCatalog,
	eventPublisher events.Publisher,
	logger *zap.Logger,
) *InitiateEnrollment {
	return &InitiateEnrollment{
		enrollmentRepository: enrollmentRepository,
		students:             students,
		courses:              courses,
		eventPublisher:       eventPublisher,
		logger:               logger,
	}
}

// Execute executes the initiate enrollment use case. The only error it
// returns is a validation error for a malformed command.
func (uc *InitiateEnrollment) Execute(ctx context.Context, cmd *InitiateEnrollmentCommand) (*EnrollmentResponse, error) {
	if err := validate.Struct(cmd); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	ctx, span := telemetry.StartSpan(ctx, "enrollment.initiate")
	defer span.End()

	studentID, courseID := string(cmd.StudentID), string(cmd.CourseID)
	student, course, reason := uc.lookup(ctx, studentID, courseID)
	if reason != "" {
		return uc.cancelled(ctx, nil, studentID, courseID, student, course, reason), nil
	}

	enrollment, err := domain.StartEnrollment(*student, *course)
	if err != nil {
		uc.logger.Error("failed to start enrollment", zap.Error(err))
		return uc.cancelled(ctx, nil, studentID, courseID, student, course, domain.FailureStorageFailure), nil
	}

	pending := enrollment.Events()
	if err := uc.enrollmentRepository.Save(ctx, enrollment); err != nil {
		uc.logger.Error("failed to save enrollment", append(enrollmentFields(enrollment), zap.Error(err))...)
		return uc.cancelled(ctx, nil, studentID, courseID, student, course, domain.FailureStorageFailure), nil
	}

	if err := uc.eventPublisher.Publish(ctx, pending...); err != nil {
		uc.logger.Error("failed to publish enrollment-initiated", append(enrollmentFields(enrollment), zap.Error(err))...)
		uc.abort(ctx, enrollment)
		return uc.cancelled(ctx, enrollment, studentID, courseID, student, course, domain.FailurePublishFailed), nil
	}
	enrollment.ClearEvents()

	uc.logger.Info("enrollment saga started", enrollmentFields(enrollment)...)
	telemetry.RecordCounter(ctx, "saga_enrollments_initiated_total", "Enrollment sagas started", 1)

	return toResponse(enrollment, *student, *course), nil
}

// lookup resolves both sides concurrently and classifies a failure
func (uc *InitiateEnrollment) lookup(ctx context.Context, studentID, courseID string) (*domain.Student, *domain.Course, domain.FailureReason) {
	var (
		student    *domain.Student
		course     *domain.Course
		studentErr error
		courseErr  error
		g          errgroup.Group
	)

	g.Go(func() error {
		student, studentErr = uc.students.GetStudent(ctx, studentID)
		return nil
	})
	g.Go(func() error {
		course, courseErr = uc.courses.GetCourse(ctx, courseID)
		return nil
	})
	g.Wait()

	switch {
	case studentErr != nil || courseErr != nil:
		uc.logger.Warn("directory unavailable during initiation",
			zap.String("student_id", studentID),
			zap.String("course_id", courseID),
			zap.NamedError("student_error", studentErr),
			zap.NamedError("course_error", courseErr),
		)
		return student, course, domain.FailureDirectoryUnavailable
	case student == nil:
		uc.logger.Warn("student not found", zap.String("student_id", studentID))
		return nil, course, domain.FailureStudentNotFound
	case course == nil:
		uc.logger.Warn("course not found", zap.String("course_id", courseID))
		return student, nil, domain.FailureCourseNotFound
	}

	return student, course, ""
}

// abort moves a persisted enrollment whose saga never started out of PENDING
func (uc *InitiateEnrollment) abort(ctx context.Context, enrollment *domain.Enrollment) {
	if err := enrollment.Abort(domain.FailurePublishFailed); err != nil {
		uc.logger.Error("failed to abort enrollment", append(enrollmentFields(enrollment), zap.Error(err))...)
		return
	}

	if err := uc.enrollmentRepository.Save(ctx, enrollment); err != nil {
		// TODO: sweep PENDING enrollments without a payment once an outbox relay exists
		uc.logger.Error("failed to save aborted enrollment, it stays PENDING until retried",
			append(enrollmentFields(enrollment), zap.Error(err))...)
	}
}

func (uc *InitiateEnrollment) cancelled(
	ctx context.Context,
	enrollment *domain.Enrollment,
	studentID, courseID string,
	student *domain.Student,
	course *domain.Course,
	reason domain.FailureReason,
) *EnrollmentResponse {
	telemetry.RecordCounter(ctx, "saga_enrollments_cancelled_total", "Enrollments cancelled", 1,
		attribute.String("reason", string(reason)),
	)

	response := &EnrollmentResponse{
		StudentID:      studentID,
		StudentName:    domain.UnknownName,
		CourseID:       courseID,
		CourseTitle:    domain.UnknownName,
		EnrollmentDate: time.Now().UTC(),
		Status:         string(domain.EnrollmentStatusCancelled),
		FailureReason:  string(reason),
	}
	if enrollment != nil {
		response.ID = enrollment.ID.String()
		response.EnrollmentDate = enrollment.EnrollmentDate
		response.SagaState = enrollment.SagaState.String()
	}
	if student != nil && student.Name != "" {
		response.StudentName = student.Name
	}
	if course != nil && course.Title != "" {
		response.CourseTitle = course.Title
	}
	return response
}
