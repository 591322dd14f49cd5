package domain

import (
	"context"
	"time"

	"github.com/campusflow/enrollment-system/shared/apperrors"
	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/campusflow/enrollment-system/shared/models"
	"github.com/campusflow/enrollment-system/shared/saga"
	"github.com/pkg/errors"
)

// EnrollmentStatus is the status shown to students
type EnrollmentStatus string

const (
	EnrollmentStatusPending   EnrollmentStatus = "PENDING"
	EnrollmentStatusConfirmed EnrollmentStatus = "CONFIRMED"
	EnrollmentStatusCancelled EnrollmentStatus = "CANCELLED"
	EnrollmentStatusActive    EnrollmentStatus = "ACTIVE"
	EnrollmentStatusCompleted EnrollmentStatus = "COMPLETED"
	EnrollmentStatusDropped   EnrollmentStatus = "DROPPED"
)

// FailureReason explains a CANCELLED initiation
type FailureReason string

const (
	FailureStudentNotFound       FailureReason = "STUDENT_NOT_FOUND"
	FailureCourseNotFound        FailureReason = "COURSE_NOT_FOUND"
	FailureDirectoryUnavailable  FailureReason = "DIRECTORY_UNAVAILABLE"
	FailureStorageFailure        FailureReason = "STORAGE_FAILURE"
	FailurePublishFailed         FailureReason = "PUBLISH_FAILED"
	FailurePaymentFailed         FailureReason = "PAYMENT_FAILED"
	FailureSeatReservationFailed FailureReason = "SEAT_RESERVATION_FAILED"
)

// ErrTerminal is returned when a saga event reaches an enrollment that already finished
var ErrTerminal = errors.New("enrollment saga already finished")

// Enrollment aggregate root. Status is what the student sees, SagaState is
// the progress of the saga that drives it.
type Enrollment struct {
	ID             models.ID
	StudentID      string
	CourseID       string
	EnrollmentDate time.Time
	Status         EnrollmentStatus
	SagaState      saga.State
	FailureReason  FailureReason
	Timestamps     models.Timestamps
	Version        models.Version

	events      []*events.Event
	transitions []saga.Transition
}

// StartEnrollment creates a PENDING enrollment and records the
// enrollment-initiated event that starts its saga
func StartEnrollment(student Student, course Course) (*Enrollment, error) {
	if student.ID == "" || course.ID == "" {
		return nil, apperrors.Validation("student and course are required")
	}

	now := time.Now().UTC()
	enrollment := &Enrollment{
		ID:             models.GenerateUUID(),
		StudentID:      student.ID,
		CourseID:       course.ID,
		EnrollmentDate: now,
		Status:         EnrollmentStatusPending,
		Timestamps:     models.NewTimestamps(),
		Version:        models.NewVersion(),
	}

	if err := enrollment.moveSaga(saga.StateStarted, saga.TriggerInitiate, "", ""); err != nil {
		return nil, err
	}

	enrollment.recordInitiated(student, course)
	return enrollment, nil
}

// IsNew reports whether the enrollment was never persisted
func (e *Enrollment) IsNew() bool {
	return e.Version.Value == 1
}

// Retry re-emits enrollment-initiated for a PENDING enrollment
func (e *Enrollment) Retry(student Student, course Course) error {
	if e.Status != EnrollmentStatusPending {
		return apperrors.InvalidState("can only retry PENDING enrollments, got " + string(e.Status))
	}

	if err := e.moveSaga(saga.StateStarted, saga.TriggerRetry, "", ""); err != nil {
		return apperrors.InvalidState(err.Error())
	}

	e.touch()
	e.recordInitiated(student, course)
	return nil
}

// ConfirmFromSaga completes the saga after seat-reserved and records the
// enrollment-confirmed notification. ErrTerminal means the event is late.
func (e *Enrollment) ConfirmFromSaga(eventID string, student Student, course Course) error {
	if e.SagaState.IsTerminal() || e.Status != EnrollmentStatusPending {
		return ErrTerminal
	}

	if err := e.moveSaga(saga.StateCompleted, events.SeatReservedEvent, eventID, ""); err != nil {
		return err
	}

	e.Status = EnrollmentStatusConfirmed
	e.touch()

	e.recordEvent(events.NewEvent(e.ID, events.EnrollmentConfirmedEvent, events.EnrollmentConfirmedData{
		EnrollmentID: e.ID.String(),
		StudentID:    e.StudentID,
		CourseID:     e.CourseID,
		StudentEmail: student.Email,
		StudentName:  student.Name,
		CourseName:   course.Title,
		Status:       events.ConfirmedStatus,
		Timestamp:    time.Now().UTC(),
	}))

	return nil
}

// CancelFromSaga rolls a PENDING enrollment back after a failure event.
// ErrTerminal means the event is late or replayed.
func (e *Enrollment) CancelFromSaga(topic, eventID string) error {
	if e.SagaState.IsTerminal() || e.Status != EnrollmentStatusPending {
		return ErrTerminal
	}

	next, reason := saga.StateFailed, FailurePaymentFailed
	if topic == events.SeatReservationFailedEvent {
		next, reason = saga.StateCompensated, FailureSeatReservationFailed
	}

	if err := e.moveSaga(next, topic, eventID, string(reason)); err != nil {
		return err
	}

	e.Status = EnrollmentStatusCancelled
	e.FailureReason = reason
	e.touch()
	return nil
}

// Abort cancels an enrollment whose saga could not be started.
// Pending events are dropped since they were never delivered.
func (e *Enrollment) Abort(reason FailureReason) error {
	if err := e.moveSaga(saga.StateAborted, saga.TriggerInitiate, "", string(reason)); err != nil {
		return err
	}

	e.Status = EnrollmentStatusCancelled
	e.FailureReason = reason
	e.ClearEvents()
	e.touch()
	return nil
}

// ForceConfirm is the administrative override: the enrollment becomes
// CONFIRMED whatever the saga did
func (e *Enrollment) ForceConfirm() error {
	if err := e.moveSaga(saga.StateOverridden, saga.TriggerConfirm, "", "manual override from "+string(e.Status)); err != nil {
		return err
	}

	e.Status = EnrollmentStatusConfirmed
	e.touch()
	return nil
}

// CheckRemovable rejects deleting an enrollment whose saga is still running
func (e *Enrollment) CheckRemovable() error {
	if e.Status == EnrollmentStatusPending {
		return apperrors.InvalidState("cannot delete a PENDING enrollment while its saga runs")
	}
	return nil
}

func (e *Enrollment) moveSaga(to saga.State, trigger, eventID, reason string) error {
	transition, err := saga.NewTransition(e.ID.String(), e.SagaState, to, trigger, eventID, reason)
	if err != nil {
		return err
	}

	e.SagaState = to
	e.transitions = append(e.transitions, transition)
	return nil
}

func (e *Enrollment) touch() {
	e.Timestamps = e.Timestamps.Update()
	e.Version = e.Version.Update()
}

func (e *Enrollment) recordInitiated(student Student, course Course) {
	e.recordEvent(events.NewEvent(e.ID, events.EnrollmentInitiatedEvent, events.EnrollmentInitiatedData{
		EnrollmentID: e.ID.String(),
		StudentID:    e.StudentID,
		CourseID:     e.CourseID,
		StudentEmail: student.Email,
		StudentName:  student.Name,
		CourseName:   course.Title,
	}))
}

// Events returns domain events
func (e *Enrollment) Events() []*events.Event {
	return e.events
}

// ClearEvents clears domain events
func (e *Enrollment) ClearEvents() {
	e.events = make([]*events.Event, 0)
}

// Transitions returns the saga transitions not yet persisted
func (e *Enrollment) Transitions() []saga.Transition {
	return e.transitions
}

// ClearTransitions is called by repositories after persisting
func (e *Enrollment) ClearTransitions() {
	e.transitions = nil
}

func (e *Enrollment) recordEvent(event *events.Event) {
	event.WithCorrelationID(e.ID).WithMetadata(events.MetadataProducer, "enrollment-service")
	e.events = append(e.events, event)
}

// EnrollmentRepository persists enrollments together with their saga transitions
type EnrollmentRepository interface {
	Save(ctx context.Context, enrollment *Enrollment) error
	FindByID(ctx context.Context, id models.ID) (*Enrollment, error)
	FindAll(ctx context.Context) ([]*Enrollment, error)
	FindByStudentID(ctx context.Context, studentID string) ([]*Enrollment, error)
	FindByCourseID(ctx context.Context, courseID string) ([]*Enrollment, error)
	History(ctx context.Context, id models.ID) ([]saga.Transition, error)
	// Delete removes the enrollment and its saga history. It fails with
	// ErrConcurrentModification when the stored version moved on.
	Delete(ctx context.Context, enrollment *Enrollment) error
}
