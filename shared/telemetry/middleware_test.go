package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestGetStatusClass(t *testing.T) {
	tests := map[int]string{
		101: "1xx",
		201: "2xx",
		304: "3xx",
		409: "4xx",
		503: "5xx",
		0:   "unknown",
	}

	for code, want := range tests {
		assert.Equal(t, want, getStatusClass(code), "status %d", code)
	}
}

func TestMiddleware(t *testing.T) {
	tel := NewTelemetry(EnrollmentServiceConfig)

	var seen *Telemetry
	r := chi.NewRouter()
	r.Use(Middleware(tel))
	r.Get("/enrollments/{id}", func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/enrollments/abc", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Same(t, tel, seen)
}

func TestConfigWithOTLPEndpoint(t *testing.T) {
	cfg := PaymentsServiceConfig.WithOTLPEndpoint("collector:4318").WithVersion("")
	assert.True(t, cfg.ExportOTLP)
	assert.Equal(t, "1.0.0", cfg.ServiceVersion)

	cfg = cfg.WithOTLPEndpoint("")
	assert.False(t, cfg.ExportOTLP)
}
