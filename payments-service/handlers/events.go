package handlers

import (
	"context"

	"github.com/campusflow/enrollment-system/payments-service/application"
	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/campusflow/enrollment-system/shared/saga"
	"github.com/campusflow/enrollment-system/shared/telemetry"
)

// HandlerID identifies the payment participant's consumer in dedupe keys and logs
const HandlerID = "payment-service-event-handler"

// PaymentEventHandlers handles the saga events the payment participant reacts to
type PaymentEventHandlers struct {
	recordPayment *application.RecordPayment
	refundPayment *application.RefundPayment
}

// NewPaymentEventHandlers creates new payment event handlers
func NewPaymentEventHandlers(
	recordPayment *application.RecordPayment,
	refundPayment *application.RefundPayment,
) *PaymentEventHandlers {
	return &PaymentEventHandlers{
		recordPayment: recordPayment,
		refundPayment: refundPayment,
	}
}

// RegisterHandlers subscribes the payment participant to its topics
func (h *PaymentEventHandlers) RegisterHandlers(router *saga.ChoreographyEventRouter) {
	router.RegisterHandler(events.EnrollmentInitiatedEvent, events.EventHandlerFunc(h.HandleEnrollmentInitiated))
	router.RegisterHandler(events.SeatReservationFailedEvent, events.EventHandlerFunc(h.HandleSeatReservationFailed))
}

// HandleEnrollmentInitiated records the pending payment
func (h *PaymentEventHandlers) HandleEnrollmentInitiated(ctx context.Context, event *events.Event) error {
	err := h.recordPayment.Execute(ctx, event)
	telemetry.RecordSagaStep(ctx, HandlerID, event.Topic.String(), outcome(err))
	return err
}

// HandleSeatReservationFailed refunds the payment
func (h *PaymentEventHandlers) HandleSeatReservationFailed(ctx context.Context, event *events.Event) error {
	err := h.refundPayment.Execute(ctx, event)
	telemetry.RecordSagaStep(ctx, HandlerID, event.Topic.String(), outcome(err))
	return err
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
