package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/campusflow/enrollment-system/payments-service/application"
	"github.com/campusflow/enrollment-system/shared/apperrors"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PaymentHandlers contains payment HTTP handlers
type PaymentHandlers struct {
	completePayment *application.CompletePayment
	declinePayment  *application.DeclinePayment
	getPayment      *application.GetPayment
	logger          *zap.Logger
}

// NewPaymentHandlers creates new payment handlers
func NewPaymentHandlers(
	completePayment *application.CompletePayment,
	declinePayment *application.DeclinePayment,
	getPayment *application.GetPayment,
	logger *zap.Logger,
) *PaymentHandlers {
	return &PaymentHandlers{
		completePayment: completePayment,
		declinePayment:  declinePayment,
		getPayment:      getPayment,
		logger:          logger,
	}
}

// ListPayments returns every payment
func (h *PaymentHandlers) ListPayments(w http.ResponseWriter, r *http.Request) {
	response, err := h.getPayment.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// GetPayment handles get payment requests
func (h *PaymentHandlers) GetPayment(w http.ResponseWriter, r *http.Request) {
	response, err := h.getPayment.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// GetByEnrollment returns the payment of an enrollment
func (h *PaymentHandlers) GetByEnrollment(w http.ResponseWriter, r *http.Request) {
	response, err := h.getPayment.ByEnrollment(r.Context(), chi.URLParam(r, "enrollmentId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// CompletePayment marks a payment as paid
func (h *PaymentHandlers) CompletePayment(w http.ResponseWriter, r *http.Request) {
	response, err := h.completePayment.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// FailPayment declines a pending payment
func (h *PaymentHandlers) FailPayment(w http.ResponseWriter, r *http.Request) {
	response, err := h.declinePayment.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// Health reports liveness
func (h *PaymentHandlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "payments-service"})
}

// RegisterRoutes registers payment routes
func (h *PaymentHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/payments", func(r chi.Router) {
		r.Get("/", h.ListPayments)
		r.Get("/health", h.Health)
		r.Get("/enrollment/{enrollmentId}", h.GetByEnrollment)
		r.Get("/{id}", h.GetPayment)
		r.Post("/{id}/complete", h.CompletePayment)
		r.Post("/{id}/fail", h.FailPayment)
	})
}

func (h *PaymentHandlers) writeError(w http.ResponseWriter, err error) {
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
