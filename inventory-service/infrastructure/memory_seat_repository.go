package infrastructure

import (
	"context"
	"sync"
	"time"

	"github.com/campusflow/enrollment-system/inventory-service/domain"
	"github.com/campusflow/enrollment-system/shared/apperrors"
)

var _ domain.SeatRepository = (*MemorySeatRepository)(nil)

// MemorySeatRepository keeps the counters in process. One mutex makes the
// claim and the bounded increment a single step.
type MemorySeatRepository struct {
	mu           sync.Mutex
	courses      map[string]domain.CourseSeats
	reservations map[string]domain.Reservation
}

func NewMemorySeatRepository() *MemorySeatRepository {
	return &MemorySeatRepository{
		courses:      make(map[string]domain.CourseSeats),
		reservations: make(map[string]domain.Reservation),
	}
}

func (r *MemorySeatRepository) Reserve(ctx context.Context, request domain.SeatRequest) (domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stored, ok := r.reservations[request.EnrollmentID]; ok {
		stored.Replayed = true
		return stored, nil
	}

	now := time.Now().UTC()
	reservation := domain.Reservation{
		EnrollmentID: request.EnrollmentID,
		StudentID:    request.StudentID,
		CourseID:     request.CourseID,
		Status:       domain.ReservationReserved,
		CreatedAt:    now,
	}

	seats, registered := r.courses[request.CourseID]
	switch {
	case !registered:
		reservation.Status = domain.ReservationRejected
		reservation.Reason = domain.RejectionCourseNotRegistered
	case seats.EnrolledCount >= seats.Capacity:
		reservation.Status = domain.ReservationRejected
		reservation.Reason = domain.RejectionCourseFull
	default:
		seats.EnrolledCount++
		seats.UpdatedAt = now
		r.courses[request.CourseID] = seats
	}

	r.reservations[request.EnrollmentID] = reservation
	return reservation, nil
}

func (r *MemorySeatRepository) SetCapacity(ctx context.Context, courseID string, capacity int) (*domain.CourseSeats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seats := r.courses[courseID]
	if seats.EnrolledCount > capacity {
		return nil, apperrors.InvalidState("capacity is below the seats already taken for course " + courseID)
	}

	seats.CourseID = courseID
	seats.Capacity = capacity
	seats.UpdatedAt = time.Now().UTC()
	r.courses[courseID] = seats
	return &seats, nil
}

func (r *MemorySeatRepository) FindSeats(ctx context.Context, courseID string) (*domain.CourseSeats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seats, ok := r.courses[courseID]
	if !ok {
		return nil, nil
	}
	return &seats, nil
}

func (r *MemorySeatRepository) FindReservation(ctx context.Context, enrollmentID string) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reservation, ok := r.reservations[enrollmentID]
	if !ok {
		return nil, nil
	}
	return &reservation, nil
}
