package config

import (
	"context"
	"fmt"

	"github.com/campusflow/enrollment-system/payments-service/application"
	"github.com/campusflow/enrollment-system/payments-service/domain"
	"github.com/campusflow/enrollment-system/payments-service/handlers"
	"github.com/campusflow/enrollment-system/payments-service/infrastructure"
	sharedconfig "github.com/campusflow/enrollment-system/shared/config"
	"github.com/campusflow/enrollment-system/shared/events"
	sharedinfra "github.com/campusflow/enrollment-system/shared/infrastructure"
	"github.com/campusflow/enrollment-system/shared/models"
	"github.com/campusflow/enrollment-system/shared/saga"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Repositories
	PaymentRepository domain.PaymentRepository

	// Use Cases
	RecordPayment   *application.RecordPayment
	CompletePayment *application.CompletePayment
	DeclinePayment  *application.DeclinePayment
	RefundPayment   *application.RefundPayment
	GetPayment      *application.GetPayment

	// HTTP Handlers
	PaymentHandlers *handlers.PaymentHandlers

	// Event Handlers
	PaymentEventHandlers *handlers.PaymentEventHandlers
	EventHandler         events.EventHandler

	// Infrastructure
	EventBus         sharedinfra.EventBus
	IdempotencyStore saga.IdempotencyStore
	closeIdempotency func() error
}

func BuildDependencies(ctx context.Context, config *Config, logger *zap.Logger) (*Dependencies, error) {
	var (
		repo domain.PaymentRepository
		db   *sqlx.DB
	)

	switch config.Storage {
	case sharedconfig.DriverPostgres:
		conn, err := OpenDatabase(config)
		if err != nil {
			return nil, err
		}
		db = conn
		repo = infrastructure.NewPostgresPaymentRepository(db)
	default:
		repo = infrastructure.NewMemoryPaymentRepository()
	}

	bus, err := sharedinfra.NewEventBus(ctx, config.Common, logger)
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}

	store, closeStore, err := sharedinfra.NewIdempotencyStore(ctx, config.Common)
	if err != nil {
		bus.Close()
		closeDB(db)
		return nil, fmt.Errorf("failed to create idempotency store: %w", err)
	}

	deps := NewDependencies(repo, bus, store, config.Payments.Fee(), logger)
	deps.DB = db
	deps.EventBus = bus
	deps.closeIdempotency = closeStore

	return deps, nil
}

// NewDependencies wires use cases and handlers over already built infrastructure
func NewDependencies(
	repo domain.PaymentRepository,
	publisher events.Publisher,
	store saga.IdempotencyStore,
	fee models.Money,
	logger *zap.Logger,
) *Dependencies {
	deps := &Dependencies{
		PaymentRepository: repo,
		IdempotencyStore:  store,
	}

	// Initialize use cases
	deps.RecordPayment = application.NewRecordPayment(repo, publisher, fee, logger)
	deps.CompletePayment = application.NewCompletePayment(repo, publisher, logger)
	deps.DeclinePayment = application.NewDeclinePayment(repo, publisher, logger)
	deps.RefundPayment = application.NewRefundPayment(repo, logger)
	deps.GetPayment = application.NewGetPayment(repo)

	// Initialize handlers
	deps.PaymentHandlers = handlers.NewPaymentHandlers(deps.CompletePayment, deps.DeclinePayment, deps.GetPayment, logger)
	deps.PaymentEventHandlers = handlers.NewPaymentEventHandlers(deps.RecordPayment, deps.RefundPayment)

	router := saga.NewChoreographyEventRouter(handlers.HandlerID, logger)
	deps.PaymentEventHandlers.RegisterHandlers(router)
	deps.EventHandler = saga.Deduplicated(store, router.HandlerID(), router, logger)

	return deps
}

// OpenDatabase connects to postgres with the configured pool size
func OpenDatabase(config *Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", config.Database.ConnectionURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	db.SetMaxOpenConns(config.Database.MaxOpenConns)
	return db, nil
}

func closeDB(db *sqlx.DB) {
	if db != nil {
		db.Close()
	}
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error

	if d.EventBus != nil {
		if err := d.EventBus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event bus: %w", err))
		}
	}

	if d.closeIdempotency != nil {
		if err := d.closeIdempotency(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close idempotency store: %w", err))
		}
	}

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing dependencies: %v", errs)
	}

	return nil
}
