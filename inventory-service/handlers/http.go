package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/campusflow/enrollment-system/inventory-service/application"
	"github.com/campusflow/enrollment-system/shared/apperrors"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// InventoryHandlers contains seat HTTP handlers
type InventoryHandlers struct {
	manageSeats *application.ManageSeats
	logger      *zap.Logger
}

// NewInventoryHandlers creates new inventory handlers
func NewInventoryHandlers(manageSeats *application.ManageSeats, logger *zap.Logger) *InventoryHandlers {
	return &InventoryHandlers{
		manageSeats: manageSeats,
		logger:      logger,
	}
}

// SetCapacity registers or resizes a course
func (h *InventoryHandlers) SetCapacity(w http.ResponseWriter, r *http.Request) {
	var cmd application.SetCapacityCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.manageSeats.SetCapacity(r.Context(), chi.URLParam(r, "courseId"), &cmd)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// GetSeats returns the seat counter of a course
func (h *InventoryHandlers) GetSeats(w http.ResponseWriter, r *http.Request) {
	response, err := h.manageSeats.Seats(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// GetReservation returns the reservation outcome of an enrollment
func (h *InventoryHandlers) GetReservation(w http.ResponseWriter, r *http.Request) {
	response, err := h.manageSeats.Reservation(r.Context(), chi.URLParam(r, "enrollmentId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// Health reports liveness
func (h *InventoryHandlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "inventory-service"})
}

// RegisterRoutes registers seat routes
func (h *InventoryHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/courses", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Put("/{courseId}/seats", h.SetCapacity)
		r.Get("/{courseId}/seats", h.GetSeats)
	})
	r.Get("/reservations/{enrollmentId}", h.GetReservation)
}

func (h *InventoryHandlers) writeError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
