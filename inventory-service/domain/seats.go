package domain

import (
	"context"
	"time"

	"github.com/campusflow/enrollment-system/shared/apperrors"
	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/campusflow/enrollment-system/shared/models"
)

const producer = "inventory-service"

// ReservationStatus is the stored outcome of a seat request
type ReservationStatus string

const (
	ReservationReserved ReservationStatus = "RESERVED"
	ReservationRejected ReservationStatus = "REJECTED"
)

// RejectionReason explains a REJECTED reservation
type RejectionReason string

const (
	RejectionCourseFull          RejectionReason = "COURSE_FULL"
	RejectionCourseNotRegistered RejectionReason = "COURSE_NOT_REGISTERED"
	RejectionError               RejectionReason = "ERROR"
)

// CourseSeats is the seat counter of one course. 0 <= EnrolledCount <= Capacity.
type CourseSeats struct {
	CourseID      string
	Capacity      int
	EnrolledCount int
	UpdatedAt     time.Time
}

// Available is the number of free seats
func (c CourseSeats) Available() int {
	return c.Capacity - c.EnrolledCount
}

// ValidateCapacity checks a requested capacity before it reaches storage
func ValidateCapacity(courseID string, capacity int) error {
	if courseID == "" {
		return apperrors.Validation("course id is required")
	}
	if capacity < 0 {
		return apperrors.Validation("capacity cannot be negative")
	}
	return nil
}

// SeatRequest asks for one seat on behalf of an enrollment
type SeatRequest struct {
	EnrollmentID string
	StudentID    string
	CourseID     string
}

// Reservation is the per-enrollment record of a seat request
type Reservation struct {
	EnrollmentID string
	StudentID    string
	CourseID     string
	Status       ReservationStatus
	Reason       RejectionReason
	CreatedAt    time.Time

	// Replayed is set when the outcome was already stored by an earlier delivery
	Replayed bool
}

// Reserved reports whether the enrollment holds a seat
func (r Reservation) Reserved() bool {
	return r.Status == ReservationReserved
}

// Rejected builds the outcome for a request that could not be processed at all
func Rejected(request SeatRequest, reason RejectionReason) Reservation {
	return Reservation{
		EnrollmentID: request.EnrollmentID,
		StudentID:    request.StudentID,
		CourseID:     request.CourseID,
		Status:       ReservationRejected,
		Reason:       reason,
		CreatedAt:    time.Now().UTC(),
	}
}

// Event is the saga step announcing the outcome
func (r Reservation) Event() *events.Event {
	topic := events.SeatReservationFailedEvent
	if r.Reserved() {
		topic = events.SeatReservedEvent
	}

	event := events.NewEvent(models.ID(r.CourseID), topic, events.SagaStepData{
		EnrollmentID: r.EnrollmentID,
		StudentID:    r.StudentID,
		CourseID:     r.CourseID,
	})
	event.WithCorrelationID(models.ID(r.EnrollmentID)).WithMetadata(events.MetadataProducer, producer)
	if r.Reason != "" {
		event.WithMetadata("rejection_reason", string(r.Reason))
	}
	return event
}

// SeatRepository owns the seat counters and the reservation records
type SeatRepository interface {
	// Reserve records the reservation and takes a seat in one atomic unit.
	// A request for an enrollment that already has a reservation returns the
	// stored outcome without touching the counter.
	Reserve(ctx context.Context, request SeatRequest) (Reservation, error)
	// SetCapacity registers a course or resizes it. It fails with
	// InvalidState when the capacity is below the seats already taken.
	SetCapacity(ctx context.Context, courseID string, capacity int) (*CourseSeats, error)
	FindSeats(ctx context.Context, courseID string) (*CourseSeats, error)
	FindReservation(ctx context.Context, enrollmentID string) (*Reservation, error)
}
