package application

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/campusflow/enrollment-system/enrollment-service/domain"
	"github.com/campusflow/enrollment-system/shared/logging"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New()

// DirectoryID accepts ids sent either as JSON strings or numbers
type DirectoryID string

func (id *DirectoryID) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(data, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = DirectoryID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = DirectoryID(n.String())
	return nil
}

// EnrollmentResponse is the enriched enrollment view
type EnrollmentResponse struct {
	ID             string    `json:"id,omitempty"`
	StudentID      string    `json:"studentId"`
	StudentName    string    `json:"studentName"`
	CourseID       string    `json:"courseId"`
	CourseTitle    string    `json:"courseTitle"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
	Status         string    `json:"status"`
	SagaState      string    `json:"sagaState,omitempty"`
	FailureReason  string    `json:"failureReason,omitempty"`
}

// directory resolves students and courses for read views and saga payloads.
// Lookups that fail or find nothing fall back to placeholder values.
type directory struct {
	students domain.StudentDirectory
	courses  domain.CourseCatalog
	logger   *zap.Logger
}

func newDirectory(students domain.StudentDirectory, courses domain.CourseCatalog, logger *zap.Logger) directory {
	return directory{students: students, courses: courses, logger: logger}
}

// resolve returns the student and course, with UnknownName for missing names
// and fallbackEmail for a missing email
func (d directory) resolve(ctx context.Context, studentID, courseID, fallbackEmail string) (domain.Student, domain.Course) {
	student := domain.Student{ID: studentID}
	if s, err := d.students.GetStudent(ctx, studentID); err != nil {
		d.logger.Warn("student lookup failed", zap.String("student_id", studentID), zap.Error(err))
	} else if s != nil {
		student = *s
	}

	course := domain.Course{ID: courseID}
	if c, err := d.courses.GetCourse(ctx, courseID); err != nil {
		d.logger.Warn("course lookup failed", zap.String("course_id", courseID), zap.Error(err))
	} else if c != nil {
		course = *c
	}

	if student.Name == "" {
		student.Name = domain.UnknownName
	}
	if student.Email == "" {
		student.Email = fallbackEmail
	}
	if course.Title == "" {
		course.Title = domain.UnknownName
	}
	return student, course
}

func (d directory) view(ctx context.Context, enrollment *domain.Enrollment) *EnrollmentResponse {
	student, course := d.resolve(ctx, enrollment.StudentID, enrollment.CourseID, "")
	return toResponse(enrollment, student, course)
}

func (d directory) views(ctx context.Context, enrollments []*domain.Enrollment) []*EnrollmentResponse {
	responses := make([]*EnrollmentResponse, len(enrollments))
	for i, enrollment := range enrollments {
		responses[i] = d.view(ctx, enrollment)
	}
	return responses
}

func toResponse(enrollment *domain.Enrollment, student domain.Student, course domain.Course) *EnrollmentResponse {
	return &EnrollmentResponse{
		ID:             enrollment.ID.String(),
		StudentID:      enrollment.StudentID,
		StudentName:    student.Name,
		CourseID:       enrollment.CourseID,
		CourseTitle:    course.Title,
		EnrollmentDate: enrollment.EnrollmentDate,
		Status:         string(enrollment.Status),
		SagaState:      enrollment.SagaState.String(),
		FailureReason:  string(enrollment.FailureReason),
	}
}

func enrollmentFields(enrollment *domain.Enrollment) []zap.Field {
	return []zap.Field{
		logging.EnrollmentID(enrollment.ID.String()),
		zap.String("student_id", enrollment.StudentID),
		zap.String("course_id", enrollment.CourseID),
	}
}
