package application

import (
	"context"

	"github.com/campusflow/enrollment-system/inventory-service/domain"
	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/campusflow/enrollment-system/shared/logging"
	"github.com/campusflow/enrollment-system/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ReserveSeat takes a seat for a paid enrollment and reports the outcome
type ReserveSeat struct {
	seatRepository domain.SeatRepository
	eventPublisher events.Publisher
	logger         *zap.Logger
}

// NewReserveSeat creates a new ReserveSeat use case
func NewReserveSeat(seatRepository domain.SeatRepository, eventPublisher events.Publisher, logger *zap.Logger) *ReserveSeat {
	return &ReserveSeat{
		seatRepository: seatRepository,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// Execute handles payment-success. Every outcome is published, including
// failures of the reservation itself, which are reported as
// seat-reservation-failed so the payment gets refunded.
func (uc *ReserveSeat) Execute(ctx context.Context, event *events.Event) error {
	step, err := events.DecodeStep(event)
	if err != nil {
		return uc.rejectUndecodable(ctx, event, err)
	}

	request := domain.SeatRequest{
		EnrollmentID: step.EnrollmentID,
		StudentID:    step.StudentID,
		CourseID:     step.CourseID,
	}

	reservation, err := uc.seatRepository.Reserve(ctx, request)
	if err != nil {
		uc.logger.Error("seat reservation failed",
			logging.EnrollmentID(request.EnrollmentID),
			zap.String("course_id", request.CourseID),
			zap.Error(err),
		)
		reservation = domain.Rejected(request, domain.RejectionError)
	}

	fields := []zap.Field{
		logging.EnrollmentID(reservation.EnrollmentID),
		zap.String("course_id", reservation.CourseID),
		zap.String("status", string(reservation.Status)),
		zap.String("reason", string(reservation.Reason)),
		zap.Bool("replayed", reservation.Replayed),
	}

	if err := uc.eventPublisher.Publish(ctx, reservation.Event()); err != nil {
		return errors.Wrap(err, "failed to publish reservation outcome")
	}

	if reservation.Replayed {
		uc.logger.Info("republished stored reservation outcome", fields...)
		return nil
	}

	if reservation.Reserved() {
		uc.logger.Info("seat reserved", fields...)
		telemetry.RecordCounter(ctx, "saga_seats_reserved_total", "Seats reserved", 1)
	} else {
		uc.logger.Warn("seat rejected", fields...)
		telemetry.RecordCounter(ctx, "saga_seats_rejected_total", "Seat requests rejected", 1,
			attribute.String("reason", string(reservation.Reason)),
		)
	}

	return nil
}

// rejectUndecodable answers a payment-success whose payload is incomplete with
// seat-reservation-failed, so the payment gets refunded. Without an enrollment
// id nobody could correlate the answer and the event is left to dead-letter.
func (uc *ReserveSeat) rejectUndecodable(ctx context.Context, event *events.Event, cause error) error {
	step, err := events.DecodeCorrelated(event)
	if err != nil {
		return cause
	}

	reservation := domain.Rejected(domain.SeatRequest{
		EnrollmentID: step.EnrollmentID,
		StudentID:    step.StudentID,
		CourseID:     step.CourseID,
	}, domain.RejectionError)

	uc.logger.Warn("rejecting undecodable payment-success",
		logging.EnrollmentID(step.EnrollmentID),
		logging.EventID(event.ID.String()),
		zap.Error(cause),
	)

	if err := uc.eventPublisher.Publish(ctx, reservation.Event()); err != nil {
		return errors.Wrap(err, "failed to publish reservation outcome")
	}

	telemetry.RecordCounter(ctx, "saga_seats_rejected_total", "Seat requests rejected", 1,
		attribute.String("reason", string(reservation.Reason)),
	)
	return nil
}
