package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campusflow/enrollment-system/payments-service/application"
	"github.com/campusflow/enrollment-system/payments-service/domain"
	"github.com/campusflow/enrollment-system/payments-service/infrastructure"
	"github.com/campusflow/enrollment-system/shared/events"
	sharedmocks "github.com/campusflow/enrollment-system/shared/mocks"
	"github.com/campusflow/enrollment-system/shared/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const enrollmentID = "0d9c8b7a-6f5e-4d3c-8b2a-1f0e9d8c7b6a"

func newTestRouter(t *testing.T) (chi.Router, *domain.Payment, *sharedmocks.MockPublisher) {
	logger := zap.NewNop()
	repo := infrastructure.NewMemoryPaymentRepository()
	publisher := sharedmocks.NewMockPublisher(t)

	payment, err := domain.RecordPayment(events.EnrollmentInitiatedData{
		EnrollmentID: enrollmentID,
		StudentID:    "1",
		CourseID:     "101",
		StudentName:  "Ada",
		CourseName:   "Algebra",
	}, models.NewMoney(10000, "USD"))
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), payment))

	h := NewPaymentHandlers(
		application.NewCompletePayment(repo, publisher, logger),
		application.NewDeclinePayment(repo, publisher, logger),
		application.NewGetPayment(repo),
		logger,
	)

	r := chi.NewRouter()
	r.Route("/api/v1", h.RegisterRoutes)
	return r, payment, publisher
}

func serve(r chi.Router, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestPaymentHandlers_Complete(t *testing.T) {
	r, payment, publisher := newTestRouter(t)
	publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()

	rec := serve(r, http.MethodPost, "/api/v1/payments/"+payment.ID.String()+"/complete")
	require.Equal(t, http.StatusOK, rec.Code)

	var body application.PaymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "PAID", body.Status)
	assert.Equal(t, enrollmentID, body.EnrollmentID)

	rec = serve(r, http.MethodPost, "/api/v1/payments/"+payment.ID.String()+"/complete")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(r, http.MethodPost, "/api/v1/payments/"+payment.ID.String()+"/fail")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPaymentHandlers_Fail(t *testing.T) {
	r, payment, publisher := newTestRouter(t)
	publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
		return evt.Topic.String() == events.PaymentFailedEvent
	})).Return(nil).Once()

	rec := serve(r, http.MethodPost, "/api/v1/payments/"+payment.ID.String()+"/fail")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"FAILED"`)
}

func TestPaymentHandlers_Read(t *testing.T) {
	r, payment, _ := newTestRouter(t)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{"by id", "/api/v1/payments/" + payment.ID.String(), http.StatusOK},
		{"by enrollment", "/api/v1/payments/enrollment/" + enrollmentID, http.StatusOK},
		{"list", "/api/v1/payments", http.StatusOK},
		{"health", "/api/v1/payments/health", http.StatusOK},
		{"unknown id", "/api/v1/payments/" + models.GenerateUUID().String(), http.StatusNotFound},
		{"malformed id", "/api/v1/payments/abc", http.StatusBadRequest},
		{"unknown enrollment", "/api/v1/payments/enrollment/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(r, http.MethodGet, tt.path)
			assert.Equal(t, tt.expectedStatus, rec.Code, rec.Body.String())
		})
	}
}
