package handlers

import (
	"context"

	"github.com/campusflow/enrollment-system/enrollment-service/application"
	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/campusflow/enrollment-system/shared/saga"
	"github.com/campusflow/enrollment-system/shared/telemetry"
)

// HandlerID identifies the coordinator's consumer in dedupe keys and logs
const HandlerID = "enrollment-service-event-handler"

// EnrollmentEventHandlers reacts to the saga outcomes reported by the other participants
type EnrollmentEventHandlers struct {
	completeEnrollment *application.CompleteEnrollment
	cancelEnrollment   *application.CancelEnrollment
}

// NewEnrollmentEventHandlers creates new enrollment event handlers
func NewEnrollmentEventHandlers(
	completeEnrollment *application.CompleteEnrollment,
	cancelEnrollment *application.CancelEnrollment,
) *EnrollmentEventHandlers {
	return &EnrollmentEventHandlers{
		completeEnrollment: completeEnrollment,
		cancelEnrollment:   cancelEnrollment,
	}
}

// RegisterHandlers subscribes the coordinator to its topics
func (h *EnrollmentEventHandlers) RegisterHandlers(router *saga.ChoreographyEventRouter) {
	router.RegisterHandler(events.SeatReservedEvent, events.EventHandlerFunc(h.HandleSeatReserved))
	router.RegisterHandler(events.PaymentFailedEvent, events.EventHandlerFunc(h.HandleSagaFailure))
	router.RegisterHandler(events.SeatReservationFailedEvent, events.EventHandlerFunc(h.HandleSagaFailure))
}

// HandleSeatReserved handles seat-reserved events
func (h *EnrollmentEventHandlers) HandleSeatReserved(ctx context.Context, event *events.Event) error {
	err := h.completeEnrollment.Execute(ctx, event)
	telemetry.RecordSagaStep(ctx, HandlerID, event.Topic.String(), outcome(err))
	return err
}

// HandleSagaFailure handles payment-failed and seat-reservation-failed events
func (h *EnrollmentEventHandlers) HandleSagaFailure(ctx context.Context, event *events.Event) error {
	err := h.cancelEnrollment.Execute(ctx, event)
	telemetry.RecordSagaStep(ctx, HandlerID, event.Topic.String(), outcome(err))
	return err
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
