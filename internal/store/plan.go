package store

import (
	"context"
	"database/sql"

	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/domain"

	"github.com/google/uuid"
)

// PlanStore defines the interface for generated plan persistence. Plans
// are write-once: a stored plan is never updated, only superseded by a
// new plan for the same week under a different idempotency key.
type PlanStore interface {
	// Create saves a generated plan, including its occurrences and
	// fairness report.
	// Returns ErrPlanExists if a plan with the same week start and
	// idempotency key is already stored; callers should fetch and return
	// the stored plan instead.
	//
	// IMPORTANT: run this within a transaction via store.RunInTransaction
	// so the plan row and its occurrence rows commit atomically.
	Create(ctx context.Context, plan *domain.Plan) error

	// GetByID retrieves a plan with all its occurrences by its unique ID.
	// Returns ErrPlanNotFound if the plan does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Plan, error)

	// GetByWeekAndKey retrieves the plan stored for a week start and
	// idempotency key, for idempotent generation.
	// Returns ErrPlanNotFound if no such plan exists.
	GetByWeekAndKey(ctx context.Context, weekStart domain.Date, idempotencyKey string) (*domain.Plan, error)

	// WithTx returns a new PlanStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller,
	// typically through store.RunInTransaction.
	WithTx(tx *sql.Tx) PlanStore
}
