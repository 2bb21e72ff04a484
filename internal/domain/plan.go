package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Plan-specific validation errors
var (
	// ErrPlanIDEmpty is returned when a plan ID is empty or nil.
	ErrPlanIDEmpty = errors.New("plan ID cannot be empty")

	// ErrPlanWeekStartZero is returned when a plan has no week start date.
	ErrPlanWeekStartZero = errors.New("plan week start cannot be zero")
)

// Plan is the persisted envelope around one generated week: the expanded
// and scheduled occurrences plus the fairness report. The planner core
// only produces the contents; building and storing the envelope is the
// service layer's job.
type Plan struct {
	ID        uuid.UUID `json:"id"`
	WeekStart Date      `json:"week_start"`

	// IdempotencyKey seeds the deterministic pair-group rotation.
	// Identical inputs with an identical key produce a byte-identical
	// plan.
	IdempotencyKey string `json:"idempotency_key"`

	// Truncated marks a plan whose scheduling run exceeded its wall-clock
	// budget and returned partial results. A truncated plan is still
	// structurally complete: every occurrence is assigned or backlogged.
	Truncated bool `json:"truncated"`

	Occurrences []Occurrence   `json:"occurrences"`
	Report      FairnessReport `json:"report"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPlan creates a new Plan envelope with a generated ID and timestamps.
// Returns an error if validation fails.
func NewPlan(
	weekStart Date,
	idempotencyKey string,
	truncated bool,
	occurrences []Occurrence,
	report FairnessReport,
) (*Plan, error) {
	plan := &Plan{
		ID:             uuid.New(),
		WeekStart:      weekStart,
		IdempotencyKey: idempotencyKey,
		Truncated:      truncated,
		Occurrences:    occurrences,
		Report:         report,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}

	return plan, nil
}

// Validate checks if the Plan has valid data.
// Returns an error if any field fails validation.
func (p *Plan) Validate() error {
	if p.ID == uuid.Nil {
		return ErrPlanIDEmpty
	}

	if p.WeekStart.IsZero() {
		return ErrPlanWeekStartZero
	}

	for i := range p.Occurrences {
		if err := p.Occurrences[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}
