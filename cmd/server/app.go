package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/config"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/domain/planner"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/events"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/platform/postgres"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/service"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/store"
)

// planAuditHandler writes an audit log entry for every plan lifecycle
// event. It keeps a durable trail of when plans were generated and
// previewed without coupling the plan service to the logging policy.
type planAuditHandler struct {
	logger *slog.Logger
}

// HandleEvent implements events.EventHandler.
func (h *planAuditHandler) HandleEvent(ctx context.Context, event *events.PlanEvent) error {
	var payload map[string]interface{}
	if err := event.UnmarshalPayload(&payload); err != nil {
		h.logger.Error("failed to unmarshal event payload",
			slog.String("event_id", event.ID.String()),
			slog.String("event_type", event.Type),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	attrs := []any{
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type),
	}
	for key, value := range payload {
		attrs = append(attrs, slog.Any(key, value))
	}

	h.logger.Info("plan lifecycle event", attrs...)
	return nil
}

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	taskStore   store.TaskStore
	personStore store.PersonStore
	planStore   store.PlanStore

	// Service interfaces
	plannerService   planner.Service
	householdService service.HouseholdService
	planService      service.PlanService

	// Event system
	eventEmitter events.EventEmitter
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger,
// and database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize stores
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	app.personStore = postgres.NewPostgresPersonStore(db, logger)
	app.planStore = postgres.NewPostgresPlanStore(db, logger)

	// Initialize the planner core with the configured policy knobs
	app.plannerService = planner.NewServiceWithParams(
		planner.NewParams(plannerParamsConfig(cfg.Planner)),
		logger,
	)

	// Initialize event emitter and register the audit handler
	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(&planAuditHandler{
		logger: logger.With(slog.String("component", "plan_audit")),
	})
	app.eventEmitter = emitter

	// Create required adapters
	taskRepoAdapter := service.NewTaskRepositoryAdapter(app.taskStore, app.db)
	personRepoAdapter := service.NewPersonRepositoryAdapter(app.personStore, app.db)
	planRepoAdapter := service.NewPlanRepositoryAdapter(app.planStore, app.db)

	// Initialize household service
	var err error
	app.householdService, err = service.NewHouseholdService(
		taskRepoAdapter,
		personRepoAdapter,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create household service: %w", err)
	}

	// Initialize plan service
	app.planService, err = service.NewPlanService(
		planRepoAdapter,
		taskRepoAdapter,
		personRepoAdapter,
		app.plannerService,
		app.eventEmitter,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create plan service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// plannerParamsConfig maps the loaded planner configuration onto the
// planner's override struct. Zero values keep the reference defaults.
func plannerParamsConfig(cfg config.PlannerConfig) planner.ParamsConfig {
	return planner.ParamsConfig{
		Lambda:              cfg.Lambda,
		EveningCapMinutes:   cfg.EveningCapMinutes,
		EveningCapTasks:     cfg.EveningCapTasks,
		WeeknightCapMinutes: cfg.WeeknightCapMinutes,
		MaxOccurrences:      cfg.MaxOccurrences,
		RunBudget:           runBudget(cfg.RunBudgetMillis),
		SwapThreshold:       cfg.SwapThreshold,
		MaxSwaps:            cfg.MaxSwaps,
	}
}

// runBudget converts the configured millisecond budget into a duration.
// A non-positive value keeps the planner default.
func runBudget(millis int) time.Duration {
	if millis <= 0 {
		return 0
	}
	return time.Duration(millis) * time.Millisecond
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection",
				slog.String("error", err.Error()))
		}
	}

	app.logger.Info("Application shutdown completed")
}
