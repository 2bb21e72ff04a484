package store

import (
	"context"
	"database/sql"

	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/domain"

	"github.com/google/uuid"
)

// TaskStore defines the interface for task definition persistence.
type TaskStore interface {
	// Create saves a new task definition to the store.
	// The task must be valid according to domain validation rules;
	// returns a validation error wrapped in ErrInvalidEntity otherwise.
	Create(ctx context.Context, task *domain.TaskDefinition) error

	// GetByID retrieves a task definition by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TaskDefinition, error)

	// List retrieves all task definitions ordered by creation time.
	List(ctx context.Context) ([]domain.TaskDefinition, error)

	// Update modifies an existing task definition. The UpdatedAt
	// timestamp is set by the implementation.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.TaskDefinition) error

	// Delete removes a task definition from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	// Occurrences of already-generated plans are snapshots and survive
	// the deletion of their definition.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller,
	// typically through store.RunInTransaction.
	WithTx(tx *sql.Tx) TaskStore
}
