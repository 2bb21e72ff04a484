package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/domain"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/store"
)

// NewPlanRepositoryAdapter creates a new adapter that allows a store.PlanStore
// to be used where a PlanRepository is expected.
func NewPlanRepositoryAdapter(planStore store.PlanStore, db *sql.DB) PlanRepository {
	return &planRepositoryAdapter{
		planStore: planStore,
		db:        db,
	}
}

// planRepositoryAdapter adapts a store.PlanStore to the PlanRepository interface
type planRepositoryAdapter struct {
	planStore store.PlanStore
	db        *sql.DB
}

// Create implements PlanRepository.Create
func (a *planRepositoryAdapter) Create(ctx context.Context, plan *domain.Plan) error {
	return a.planStore.Create(ctx, plan)
}

// GetByID implements PlanRepository.GetByID
func (a *planRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Plan, error) {
	return a.planStore.GetByID(ctx, id)
}

// GetByWeekAndKey implements PlanRepository.GetByWeekAndKey
func (a *planRepositoryAdapter) GetByWeekAndKey(
	ctx context.Context,
	weekStart domain.Date,
	idempotencyKey string,
) (*domain.Plan, error) {
	return a.planStore.GetByWeekAndKey(ctx, weekStart, idempotencyKey)
}

// WithTx implements PlanRepository.WithTx
func (a *planRepositoryAdapter) WithTx(tx *sql.Tx) PlanRepository {
	return &planRepositoryAdapter{
		planStore: a.planStore.WithTx(tx),
		db:        a.db,
	}
}

// DB implements PlanRepository.DB
func (a *planRepositoryAdapter) DB() *sql.DB {
	return a.db
}
