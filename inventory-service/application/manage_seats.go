package application

import (
	"context"
	"time"

	"github.com/campusflow/enrollment-system/inventory-service/domain"
	"github.com/campusflow/enrollment-system/shared/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var validate = validator.New()

// SetCapacityCommand registers or resizes a course
type SetCapacityCommand struct {
	Capacity *int `json:"capacity" validate:"required,min=0"`
}

// SeatsResponse is the seat counter of a course
type SeatsResponse struct {
	CourseID      string    `json:"courseId"`
	Capacity      int       `json:"capacity"`
	EnrolledCount int       `json:"enrolledCount"`
	Available     int       `json:"available"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ReservationResponse is the stored outcome for one enrollment
type ReservationResponse struct {
	EnrollmentID string    `json:"enrollmentId"`
	StudentID    string    `json:"studentId"`
	CourseID     string    `json:"courseId"`
	Status       string    `json:"status"`
	Reason       string    `json:"reason,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ManageSeats serves the course capacity endpoints
type ManageSeats struct {
	seatRepository domain.SeatRepository
	logger         *zap.Logger
}

// NewManageSeats creates a new ManageSeats use case
func NewManageSeats(seatRepository domain.SeatRepository, logger *zap.Logger) *ManageSeats {
	return &ManageSeats{
		seatRepository: seatRepository,
		logger:         logger,
	}
}

// SetCapacity registers the course or changes its capacity
func (uc *ManageSeats) SetCapacity(ctx context.Context, courseID string, cmd *SetCapacityCommand) (*SeatsResponse, error) {
	if err := validate.Struct(cmd); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if err := domain.ValidateCapacity(courseID, *cmd.Capacity); err != nil {
		return nil, err
	}

	seats, err := uc.seatRepository.SetCapacity(ctx, courseID, *cmd.Capacity)
	if err != nil {
		return nil, errors.Wrap(err, "failed to set capacity")
	}

	uc.logger.Info("course capacity set",
		zap.String("course_id", courseID),
		zap.Int("capacity", seats.Capacity),
		zap.Int("enrolled_count", seats.EnrolledCount),
	)

	return toSeatsResponse(seats), nil
}

// Seats returns the counter of a course
func (uc *ManageSeats) Seats(ctx context.Context, courseID string) (*SeatsResponse, error) {
	seats, err := uc.seatRepository.FindSeats(ctx, courseID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find seats")
	}
	if seats == nil {
		return nil, apperrors.NotFound("course " + courseID)
	}
	return toSeatsResponse(seats), nil
}

// Reservation returns the reservation of an enrollment
func (uc *ManageSeats) Reservation(ctx context.Context, enrollmentID string) (*ReservationResponse, error) {
	reservation, err := uc.seatRepository.FindReservation(ctx, enrollmentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find reservation")
	}
	if reservation == nil {
		return nil, apperrors.NotFound("reservation for enrollment " + enrollmentID)
	}

	return &ReservationResponse{
		EnrollmentID: reservation.EnrollmentID,
		StudentID:    reservation.StudentID,
		CourseID:     reservation.CourseID,
		Status:       string(reservation.Status),
		Reason:       string(reservation.Reason),
		CreatedAt:    reservation.CreatedAt,
	}, nil
}

func toSeatsResponse(seats *domain.CourseSeats) *SeatsResponse {
	return &SeatsResponse{
		CourseID:      seats.CourseID,
		Capacity:      seats.Capacity,
		EnrolledCount: seats.EnrolledCount,
		Available:     seats.Available(),
		UpdatedAt:     seats.UpdatedAt,
	}
}
