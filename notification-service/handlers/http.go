package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NotificationHandlers exposes the notification service's health endpoint
type NotificationHandlers struct {
	driver string
}

// NewNotificationHandlers creates new notification handlers
func NewNotificationHandlers(driver string) *NotificationHandlers {
	return &NotificationHandlers{driver: driver}
}

// Health reports liveness and the active notifier
func (h *NotificationHandlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":   "healthy",
		"service":  "notification-service",
		"notifier": h.driver,
	})
}

// RegisterRoutes registers notification routes
func (h *NotificationHandlers) RegisterRoutes(r chi.Router) {
	r.Get("/notifications/health", h.Health)
}
