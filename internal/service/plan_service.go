package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/domain"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/domain/planner"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/events"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/platform/logger"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/store"
)

// PlanServiceError is a custom error type for plan service errors.
type PlanServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for PlanServiceError.
func (e *PlanServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("plan service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("plan service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *PlanServiceError) Unwrap() error {
	return e.Err
}

// NewPlanServiceError creates a new PlanServiceError.
func NewPlanServiceError(operation, message string, err error) *PlanServiceError {
	return &PlanServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// PlanRepository defines the repository interface for the service layer
type PlanRepository interface {
	// Create saves a generated plan with its occurrences and report
	Create(ctx context.Context, plan *domain.Plan) error

	// GetByID retrieves a plan by its unique ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Plan, error)

	// GetByWeekAndKey retrieves the plan stored for a week start and
	// idempotency key
	GetByWeekAndKey(ctx context.Context, weekStart domain.Date, idempotencyKey string) (*domain.Plan, error)

	// WithTx returns a new repository instance that uses the provided transaction
	// This is used for transactional operations
	WithTx(tx *sql.Tx) PlanRepository

	// DB returns the underlying database connection
	DB() *sql.DB
}

// PlanService provides plan generation and rebalancing operations on top
// of the planner core, loading inputs from and persisting outcomes to the
// stores.
type PlanService interface {
	// GeneratePlan expands, schedules, and scores the week starting at
	// weekStart, then persists the resulting plan. Calling it again with
	// the same week start and idempotency key returns the stored plan
	// without re-running the scheduler.
	GeneratePlan(ctx context.Context, weekStart domain.Date, idempotencyKey string) (*domain.Plan, error)

	// RebalancePlan computes a swap preview for a stored plan. Nothing is
	// persisted; the preview is advisory and the stored plan is unchanged.
	RebalancePlan(ctx context.Context, planID uuid.UUID) (*domain.RebalancePreview, error)

	// GetPlan retrieves a stored plan by its ID
	GetPlan(ctx context.Context, planID uuid.UUID) (*domain.Plan, error)
}

// planServiceImpl implements the PlanService interface
type planServiceImpl struct {
	planRepo     PlanRepository
	taskRepo     TaskRepository
	personRepo   PersonRepository
	planner      planner.Service
	eventEmitter events.EventEmitter
	logger       *slog.Logger
}

// NewPlanService creates a new PlanService.
// It returns an error if any of the required dependencies are nil.
func NewPlanService(
	planRepo PlanRepository,
	taskRepo TaskRepository,
	personRepo PersonRepository,
	plannerService planner.Service,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
) (PlanService, error) {
	// Validate dependencies
	if planRepo == nil {
		return nil, domain.NewValidationError("planRepo", "cannot be nil", domain.ErrValidation)
	}
	if taskRepo == nil {
		return nil, domain.NewValidationError("taskRepo", "cannot be nil", domain.ErrValidation)
	}
	if personRepo == nil {
		return nil, domain.NewValidationError("personRepo", "cannot be nil", domain.ErrValidation)
	}
	if plannerService == nil {
		return nil, domain.NewValidationError("plannerService", "cannot be nil", domain.ErrValidation)
	}
	if eventEmitter == nil {
		return nil, domain.NewValidationError("eventEmitter", "cannot be nil", domain.ErrValidation)
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &planServiceImpl{
		planRepo:     planRepo,
		taskRepo:     taskRepo,
		personRepo:   personRepo,
		planner:      plannerService,
		eventEmitter: eventEmitter,
		logger:       logger.With(slog.String("component", "plan_service")),
	}, nil
}

// GeneratePlan implements PlanService.GeneratePlan
func (s *planServiceImpl) GeneratePlan(
	ctx context.Context,
	weekStart domain.Date,
	idempotencyKey string,
) (*domain.Plan, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("generating plan",
		slog.String("week_start", weekStart.String()))

	// Idempotent replay: an identical request returns the stored plan.
	existing, err := s.planRepo.GetByWeekAndKey(ctx, weekStart, idempotencyKey)
	if err == nil {
		log.Info("returning stored plan for repeated generation request",
			slog.String("week_start", weekStart.String()),
			slog.String("plan_id", existing.ID.String()))
		return existing, nil
	}
	if !store.IsNotFoundError(err) {
		log.Error("failed to check for existing plan",
			slog.String("error", err.Error()),
			slog.String("week_start", weekStart.String()))
		return nil, NewPlanServiceError("generate_plan", "failed to check for existing plan", err)
	}

	tasks, people, err := s.loadInputs(ctx, log)
	if err != nil {
		return nil, err
	}

	result, err := s.planner.GeneratePlan(tasks, people, weekStart, idempotencyKey)
	if err != nil {
		log.Error("planner run failed",
			slog.String("error", err.Error()),
			slog.String("week_start", weekStart.String()))
		return nil, NewPlanServiceError("generate_plan", "planner run failed", err)
	}

	plan, err := domain.NewPlan(weekStart, idempotencyKey, result.Truncated, result.Occurrences, result.Report)
	if err != nil {
		return nil, NewPlanServiceError("generate_plan", "failed to build plan", err)
	}

	// Persist the plan row and its occurrences atomically.
	err = store.RunInTransaction(
		ctx,
		s.planRepo.DB(),
		func(ctx context.Context, tx *sql.Tx) error {
			txPlanRepo := s.planRepo.WithTx(tx)
			return txPlanRepo.Create(ctx, plan)
		},
	)
	if err != nil {
		// A concurrent request with the same key may have won the race.
		// The stored plan is the canonical result either way.
		if errors.Is(err, store.ErrPlanExists) {
			stored, lookupErr := s.planRepo.GetByWeekAndKey(ctx, weekStart, idempotencyKey)
			if lookupErr == nil {
				log.Info("concurrent generation won the race, returning stored plan",
					slog.String("week_start", weekStart.String()),
					slog.String("plan_id", stored.ID.String()))
				return stored, nil
			}
			err = lookupErr
		}
		log.Error("failed to persist plan",
			slog.String("error", err.Error()),
			slog.String("week_start", weekStart.String()))
		return nil, NewPlanServiceError("generate_plan", "failed to persist plan", err)
	}

	log.Info("plan generated and stored",
		slog.String("plan_id", plan.ID.String()),
		slog.String("week_start", weekStart.String()),
		slog.Int("occurrences", len(plan.Occurrences)),
		slog.Int("fairness_score", plan.Report.Score),
		slog.Bool("truncated", plan.Truncated))

	s.emitEvent(ctx, log, events.TypePlanGenerated, planGeneratedPayload{
		PlanID:        plan.ID.String(),
		WeekStart:     weekStart.String(),
		Occurrences:   len(plan.Occurrences),
		FairnessScore: plan.Report.Score,
		Truncated:     plan.Truncated,
	})

	return plan, nil
}

// RebalancePlan implements PlanService.RebalancePlan
func (s *planServiceImpl) RebalancePlan(
	ctx context.Context,
	planID uuid.UUID,
) (*domain.RebalancePreview, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("computing rebalance preview", slog.String("plan_id", planID.String()))

	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewPlanServiceError("rebalance_plan", "plan not found", store.ErrPlanNotFound)
		}
		log.Error("failed to retrieve plan",
			slog.String("error", err.Error()),
			slog.String("plan_id", planID.String()))
		return nil, NewPlanServiceError("rebalance_plan", "failed to retrieve plan", err)
	}

	people, err := s.personRepo.List(ctx)
	if err != nil {
		log.Error("failed to list people",
			slog.String("error", err.Error()))
		return nil, NewPlanServiceError("rebalance_plan", "failed to list people", err)
	}

	occurrences := plan.Occurrences
	if occurrences == nil {
		occurrences = []domain.Occurrence{}
	}

	preview, err := s.planner.RebalancePlan(nil, people, occurrences, plan.IdempotencyKey)
	if err != nil {
		return nil, NewPlanServiceError("rebalance_plan", "swap search failed", err)
	}

	log.Info("rebalance preview computed",
		slog.String("plan_id", planID.String()),
		slog.Int("current_score", preview.CurrentScore),
		slog.Int("projected_score", preview.ProjectedScore),
		slog.Int("swaps", len(preview.Swaps)))

	s.emitEvent(ctx, log, events.TypeRebalancePreviewed, rebalancePreviewedPayload{
		PlanID:         planID.String(),
		CurrentScore:   preview.CurrentScore,
		ProjectedScore: preview.ProjectedScore,
		Swaps:          len(preview.Swaps),
	})

	return preview, nil
}

// GetPlan implements PlanService.GetPlan
func (s *planServiceImpl) GetPlan(ctx context.Context, planID uuid.UUID) (*domain.Plan, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving plan", slog.String("plan_id", planID.String()))

	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewPlanServiceError("get_plan", "plan not found", store.ErrPlanNotFound)
		}
		log.Error("failed to retrieve plan",
			slog.String("error", err.Error()),
			slog.String("plan_id", planID.String()))
		return nil, NewPlanServiceError("get_plan", "failed to retrieve plan", err)
	}

	return plan, nil
}

// planGeneratedPayload is the JSON payload of a plan.generated event.
type planGeneratedPayload struct {
	PlanID        string `json:"plan_id"`
	WeekStart     string `json:"week_start"`
	Occurrences   int    `json:"occurrences"`
	FairnessScore int    `json:"fairness_score"`
	Truncated     bool   `json:"truncated"`
}

// rebalancePreviewedPayload is the JSON payload of a
// plan.rebalance_previewed event.
type rebalancePreviewedPayload struct {
	PlanID         string `json:"plan_id"`
	CurrentScore   int    `json:"current_score"`
	ProjectedScore int    `json:"projected_score"`
	Swaps          int    `json:"swaps"`
}

// emitEvent publishes a lifecycle notification. Event delivery is best
// effort: a failing handler must not fail the request that triggered it.
func (s *planServiceImpl) emitEvent(
	ctx context.Context,
	log *slog.Logger,
	eventType string,
	payload interface{},
) {
	event, err := events.NewPlanEvent(eventType, payload)
	if err != nil {
		log.Warn("failed to build lifecycle event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
		return
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		log.Warn("lifecycle event handler failed",
			slog.String("event_type", eventType),
			slog.String("event_id", event.ID.String()),
			slog.String("error", err.Error()))
	}
}

// loadInputs fetches the task definitions and household members that feed
// a planner run, enforcing that both sets are non-empty.
func (s *planServiceImpl) loadInputs(
	ctx context.Context,
	log *slog.Logger,
) ([]domain.TaskDefinition, []domain.Person, error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, nil, NewPlanServiceError("generate_plan", "failed to list tasks", err)
	}
	if len(tasks) == 0 {
		return nil, nil, NewPlanServiceError("generate_plan", "no task definitions stored", ErrNoTasks)
	}

	people, err := s.personRepo.List(ctx)
	if err != nil {
		log.Error("failed to list people", slog.String("error", err.Error()))
		return nil, nil, NewPlanServiceError("generate_plan", "failed to list people", err)
	}
	if len(people) == 0 {
		return nil, nil, NewPlanServiceError("generate_plan", "no household members stored", ErrNoPeople)
	}

	return tasks, people, nil
}
