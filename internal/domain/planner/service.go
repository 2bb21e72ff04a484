package planner

import (
	"errors"
	"log/slog"
	"time"

	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/domain"
)

// Common errors
var (
	ErrZeroWeekStart  = errors.New("week start date cannot be zero")
	ErrNilAssignments = errors.New("current assignments cannot be nil")
)

// PlanResult is the outcome of one full planning run: every occurrence
// in a terminal state, the fairness report, and whether the run was
// truncated by the wall-clock budget.
type PlanResult struct {
	Occurrences []domain.Occurrence
	Report      domain.FairnessReport
	Truncated   bool
}

// Service defines the planner's entry points. Both operations are pure
// computations over their inputs: nothing is persisted, and concurrent
// calls are fully independent.
type Service interface {
	// GeneratePlan expands the tasks into the week starting at
	// weekStart, assigns every occurrence or routes it to the backlog,
	// and scores the result. The idempotency key seeds only the
	// pair-group rotation.
	GeneratePlan(
		tasks []domain.TaskDefinition,
		people []domain.Person,
		weekStart domain.Date,
		idempotencyKey string,
	) (*PlanResult, error)

	// RebalancePlan proposes fairness-improving swaps over an existing
	// assignment list without re-running the scheduler. The input list
	// is never mutated.
	RebalancePlan(
		tasks []domain.TaskDefinition,
		people []domain.Person,
		current []domain.Occurrence,
		idempotencyKey string,
	) (*domain.RebalancePreview, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
	logger *slog.Logger
	now    func() time.Time
}

// NewDefaultService creates a planner service with the reference policy
// values.
func NewDefaultService(logger *slog.Logger) Service {
	return NewServiceWithParams(NewDefaultParams(), logger)
}

// NewServiceWithParams creates a planner service with custom policy
// values.
func NewServiceWithParams(params *Params, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &defaultService{
		params: params,
		logger: logger,
		now:    time.Now,
	}
}

// GeneratePlan implements the Service interface.
func (s *defaultService) GeneratePlan(
	tasks []domain.TaskDefinition,
	people []domain.Person,
	weekStart domain.Date,
	idempotencyKey string,
) (*PlanResult, error) {
	if weekStart.IsZero() {
		return nil, ErrZeroWeekStart
	}

	occurrences := ExpandWeek(tasks, weekStart, s.params)
	ctx := newContext(people, occurrences, weekStart, idempotencyKey, s.params)

	result := scheduleWeek(occurrences, ctx, s.params, s.logger, s.now)
	report := scoreFairness(result.occurrences, people, s.params)

	s.logger.Debug("plan generated",
		slog.String("week_start", weekStart.String()),
		slog.Int("occurrences", len(result.occurrences)),
		slog.Int("fairness_score", report.Score),
		slog.Float64("weeknight_points", ctx.weeknightLoad()),
		slog.Bool("truncated", result.truncated))

	return &PlanResult{
		Occurrences: result.occurrences,
		Report:      report,
		Truncated:   result.truncated,
	}, nil
}

// RebalancePlan implements the Service interface.
func (s *defaultService) RebalancePlan(
	tasks []domain.TaskDefinition,
	people []domain.Person,
	current []domain.Occurrence,
	idempotencyKey string,
) (*domain.RebalancePreview, error) {
	if current == nil {
		return nil, ErrNilAssignments
	}

	// Task definitions and the idempotency key are accepted for
	// interface symmetry with GeneratePlan; the swap search only needs
	// the assignment list and the people.
	_ = tasks
	_ = idempotencyKey

	preview := rebalanceWeek(current, people, s.params)

	s.logger.Debug("rebalance preview computed",
		slog.Int("current_score", preview.CurrentScore),
		slog.Int("projected_score", preview.ProjectedScore),
		slog.Int("swaps", len(preview.Swaps)))

	return &preview, nil
}
