package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/campusflow/enrollment-system/enrollment-service/application"
	"github.com/campusflow/enrollment-system/shared/apperrors"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EnrollmentHandlers contains enrollment HTTP handlers
type EnrollmentHandlers struct {
	initiateEnrollment *application.InitiateEnrollment
	retryEnrollment    *application.RetryEnrollment
	confirmEnrollment  *application.ConfirmEnrollment
	deleteEnrollment   *application.DeleteEnrollment
	getEnrollment      *application.GetEnrollment
	logger             *zap.Logger
}

// NewEnrollmentHandlers creates new enrollment handlers
func NewEnrollmentHandlers(
	initiateEnrollment *application.InitiateEnrollment,
	retryEnrollment *application.RetryEnrollment,
	confirmEnrollment *application.ConfirmEnrollment,
	deleteEnrollment *application.DeleteEnrollment,
	getEnrollment *application.GetEnrollment,
	logger *zap.Logger,
) *EnrollmentHandlers {
	return &EnrollmentHandlers{
		initiateEnrollment: initiateEnrollment,
		retryEnrollment:    retryEnrollment,
		confirmEnrollment:  confirmEnrollment,
		deleteEnrollment:   deleteEnrollment,
		getEnrollment:      getEnrollment,
		logger:             logger,
	}
}

// CreateEnrollment starts an enrollment saga. A CANCELLED outcome is a
// normal response: 201 means PENDING, 200 means CANCELLED.
func (h *EnrollmentHandlers) CreateEnrollment(w http.ResponseWriter, r *http.Request) {
	var cmd application.InitiateEnrollmentCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.initiateEnrollment.Execute(r.Context(), &cmd)
	if err != nil {
		h.writeError(w, err)
		return
	}

	status := http.StatusCreated
	if response.Status != "PENDING" {
		status = http.StatusOK
	}
	writeJSON(w, status, response)
}

// ListEnrollments returns every enrollment
func (h *EnrollmentHandlers) ListEnrollments(w http.ResponseWriter, r *http.Request) {
	response, err := h.getEnrollment.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// GetEnrollment returns one enrollment
func (h *EnrollmentHandlers) GetEnrollment(w http.ResponseWriter, r *http.Request) {
	response, err := h.getEnrollment.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// ListByStudent returns the enrollments of one student
func (h *EnrollmentHandlers) ListByStudent(w http.ResponseWriter, r *http.Request) {
	response, err := h.getEnrollment.ByStudent(r.Context(), chi.URLParam(r, "studentId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// ListByCourse returns the enrollments of one course
func (h *EnrollmentHandlers) ListByCourse(w http.ResponseWriter, r *http.Request) {
	response, err := h.getEnrollment.ByCourse(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// DeleteEnrollment removes a CONFIRMED or CANCELLED enrollment
func (h *EnrollmentHandlers) DeleteEnrollment(w http.ResponseWriter, r *http.Request) {
	if err := h.deleteEnrollment.Execute(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ConfirmEnrollment is the manual override
func (h *EnrollmentHandlers) ConfirmEnrollment(w http.ResponseWriter, r *http.Request) {
	response, err := h.confirmEnrollment.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// RetryEnrollment re-publishes enrollment-initiated
func (h *EnrollmentHandlers) RetryEnrollment(w http.ResponseWriter, r *http.Request) {
	response, err := h.retryEnrollment.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// History returns the saga transitions of one enrollment
func (h *EnrollmentHandlers) History(w http.ResponseWriter, r *http.Request) {
	response, err := h.getEnrollment.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// Health reports liveness
func (h *EnrollmentHandlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "enrollment-service"})
}

// RegisterRoutes registers enrollment routes
func (h *EnrollmentHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/enrollments", func(r chi.Router) {
		r.Post("/", h.CreateEnrollment)
		r.Get("/", h.ListEnrollments)
		r.Get("/health", h.Health)
		r.Get("/student/{studentId}", h.ListByStudent)
		r.Get("/course/{courseId}", h.ListByCourse)
		r.Get("/{id}", h.GetEnrollment)
		r.Delete("/{id}", h.DeleteEnrollment)
		r.Get("/{id}/history", h.History)
		r.Post("/{id}/confirm", h.ConfirmEnrollment)
		r.Post("/{id}/retry", h.RetryEnrollment)
	})
}

func (h *EnrollmentHandlers) writeError(w http.ResponseWriter, err error) {
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
