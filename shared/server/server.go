// Package server runs a saga participant: its HTTP API and its event consumer.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/campusflow/enrollment-system/shared/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	requestTimeout  = 60 * time.Second
	shutdownTimeout = 30 * time.Second
)

// Participant is one service of the saga
type Participant struct {
	Name   string
	Port   string
	Routes func(chi.Router)

	// Subscriber and Handler are optional; a participant without them only serves HTTP
	Subscriber events.Subscriber
	Handler    events.EventHandler

	Telemetry *telemetry.Telemetry
	Logger    *zap.Logger
}

// NewRouter mounts the participant routes under /api/v1 next to /health and /metrics
func NewRouter(p Participant) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(requestTimeout))

	if p.Telemetry != nil {
		r.Use(telemetry.Middleware(p.Telemetry))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Handle("/metrics", promhttp.Handler())

	if p.Routes != nil {
		r.Route("/api/v1", p.Routes)
	}

	return r
}

// Run serves HTTP and consumes events until ctx is cancelled or either side fails
func Run(ctx context.Context, p Participant) error {
	server := &http.Server{
		Addr:    ":" + p.Port,
		Handler: NewRouter(p),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p.Logger.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "http server failed")
		}
		return nil
	})

	if p.Subscriber != nil && p.Handler != nil {
		g.Go(func() error {
			if err := p.Subscriber.Subscribe(ctx, "", p.Handler); err != nil && ctx.Err() == nil {
				return errors.Wrap(err, "event subscriber failed")
			}
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		p.Logger.Info("shutting down", zap.String("service", p.Name))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
