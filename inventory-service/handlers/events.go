package handlers

import (
	"context"

	"github.com/campusflow/enrollment-system/inventory-service/application"
	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/campusflow/enrollment-system/shared/saga"
	"github.com/campusflow/enrollment-system/shared/telemetry"
)

// HandlerID identifies the inventory participant's consumer in dedupe keys and logs
const HandlerID = "inventory-service-event-handler"

// InventoryEventHandlers reserves seats for paid enrollments
type InventoryEventHandlers struct {
	reserveSeat *application.ReserveSeat
}

// NewInventoryEventHandlers creates new inventory event handlers
func NewInventoryEventHandlers(reserveSeat *application.ReserveSeat) *InventoryEventHandlers {
	return &InventoryEventHandlers{reserveSeat: reserveSeat}
}

// RegisterHandlers subscribes the inventory participant to payment-success
func (h *InventoryEventHandlers) RegisterHandlers(router *saga.ChoreographyEventRouter) {
	router.RegisterHandler(events.PaymentSuccessEvent, events.EventHandlerFunc(h.HandlePaymentSuccess))
}

// HandlePaymentSuccess handles payment-success events
func (h *InventoryEventHandlers) HandlePaymentSuccess(ctx context.Context, event *events.Event) error {
	err := h.reserveSeat.Execute(ctx, event)

	result := "ok"
	if err != nil {
		result = "error"
	}
	telemetry.RecordSagaStep(ctx, HandlerID, event.Topic.String(), result)

	return err
}
