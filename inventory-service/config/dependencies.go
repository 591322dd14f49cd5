package config

import (
	"context"
	"fmt"

	"github.com/campusflow/enrollment-system/inventory-service/application"
	"github.com/campusflow/enrollment-system/inventory-service/domain"
	"github.com/campusflow/enrollment-system/inventory-service/handlers"
	"github.com/campusflow/enrollment-system/inventory-service/infrastructure"
	sharedconfig "github.com/campusflow/enrollment-system/shared/config"
	"github.com/campusflow/enrollment-system/shared/events"
	sharedinfra "github.com/campusflow/enrollment-system/shared/infrastructure"
	"github.com/campusflow/enrollment-system/shared/saga"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Repositories
	SeatRepository domain.SeatRepository

	// Use Cases
	ReserveSeat *application.ReserveSeat
	ManageSeats *application.ManageSeats

	// HTTP Handlers
	InventoryHandlers *handlers.InventoryHandlers

	// Event Handlers
	InventoryEventHandlers *handlers.InventoryEventHandlers
	EventHandler           events.EventHandler

	// Infrastructure
	EventBus         sharedinfra.EventBus
	IdempotencyStore saga.IdempotencyStore
	closeIdempotency func() error
}

func BuildDependencies(ctx context.Context, config *Config, logger *zap.Logger) (*Dependencies, error) {
	var (
		repo domain.SeatRepository
		db   *sqlx.DB
	)

	switch config.Storage {
	case sharedconfig.DriverPostgres:
		conn, err := OpenDatabase(config)
		if err != nil {
			return nil, err
		}
		db = conn
		repo = infrastructure.NewPostgresSeatRepository(db)
	default:
		repo = infrastructure.NewMemorySeatRepository()
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

	deps := NewDependencies(repo, bus, store, logger)
	deps.DB = db
	deps.EventBus = bus
	deps.closeIdempotency = closeStore

	return deps, nil
}

// NewDependencies wires use cases and handlers over already built infrastructure
func NewDependencies(
	repo domain.SeatRepository,
	publisher events.Publisher,
	store saga.IdempotencyStore,
	logger *zap.Logger,
) *Dependencies {
	deps := &Dependencies{
		SeatRepository:   repo,
		IdempotencyStore: store,
	}

	// Initialize use cases
	deps.ReserveSeat = application.NewReserveSeat(repo, publisher, logger)
	deps.ManageSeats = application.NewManageSeats(repo, logger)

	// Initialize handlers
	deps.InventoryHandlers = handlers.NewInventoryHandlers(deps.ManageSeats, logger)
	deps.InventoryEventHandlers = handlers.NewInventoryEventHandlers(deps.ReserveSeat)

	router := saga.NewChoreographyEventRouter(handlers.HandlerID, logger)
	deps.InventoryEventHandlers.RegisterHandlers(router)
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
