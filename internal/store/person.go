package store

import (
	"context"
	"database/sql"

	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/domain"

	"github.com/google/uuid"
)

// PersonStore defines the interface for household member persistence.
type PersonStore interface {
	// Create saves a new person to the store.
	// The person must be valid according to domain validation rules;
	// returns a validation error wrapped in ErrInvalidEntity otherwise.
	Create(ctx context.Context, person *domain.Person) error

	// GetByID retrieves a person by their unique ID.
	// Returns ErrPersonNotFound if the person does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Person, error)

	// List retrieves all household members ordered by creation time.
	List(ctx context.Context) ([]domain.Person, error)

	// Update modifies an existing person. The UpdatedAt timestamp is set
	// by the implementation.
	// Returns ErrPersonNotFound if the person does not exist.
	Update(ctx context.Context, person *domain.Person) error

	// Delete removes a person from the store by their ID.
	// Returns ErrPersonNotFound if the person does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new PersonStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller,
	// typically through store.RunInTransaction.
	WithTx(tx *sql.Tx) PersonStore
}
