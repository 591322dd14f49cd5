package handlers

import (
	"context"

	"github.com/campusflow/enrollment-system/notification-service/application"
	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/campusflow/enrollment-system/shared/saga"
	"github.com/campusflow/enrollment-system/shared/telemetry"
)

// HandlerID identifies the notification consumer in dedupe keys and logs
const HandlerID = "notification-service-event-handler"

// NotificationEventHandlers is the terminal consumer of the enrollment saga
type NotificationEventHandlers struct {
	sendConfirmation *application.SendConfirmation
}

// NewNotificationEventHandlers creates new notification event handlers
func NewNotificationEventHandlers(sendConfirmation *application.SendConfirmation) *NotificationEventHandlers {
	return &NotificationEventHandlers{sendConfirmation: sendConfirmation}
}

// RegisterHandlers subscribes to enrollment-confirmed
func (h *NotificationEventHandlers) RegisterHandlers(router *saga.ChoreographyEventRouter) {
	router.RegisterHandler(events.EnrollmentConfirmedEvent, events.EventHandlerFunc(h.HandleEnrollmentConfirmed))
}

// HandleEnrollmentConfirmed handles enrollment-confirmed events
func (h *NotificationEventHandlers) HandleEnrollmentConfirmed(ctx context.Context, event *events.Event) error {
	err := h.sendConfirmation.Execute(ctx, event)

	result := "ok"
	if err != nil {
		result = "error"
	}
	telemetry.RecordSagaStep(ctx, HandlerID, event.Topic.String(), result)

	return err
}
