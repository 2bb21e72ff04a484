package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/store"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newPgError builds a *pgconn.PgError with the given code for testing.
func newPgError(code, constraint string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		SchemaName:     "public",
		TableName:      "plans",
		ColumnName:     "idempotency_key",
		ConstraintName: constraint,
	}
}

// mockResult implements sql.Result for testing.
type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) {
	return 0, nil
}

func (m mockResult) RowsAffected() (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.rowsAffected, nil
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		err           error
		expectedError error
	}{
		{
			name:          "nil error",
			err:           nil,
			expectedError: nil,
		},
		{
			name:          "sql.ErrNoRows maps to not found",
			err:           sql.ErrNoRows,
			expectedError: store.ErrNotFound,
		},
		{
			name:          "unique violation maps to duplicate",
			err:           newPgError(uniqueViolationCode, "plans_week_start_idempotency_key_key"),
			expectedError: store.ErrDuplicate,
		},
		{
			name:          "foreign key violation maps to invalid entity",
			err:           newPgError(foreignKeyViolationCode, "plan_occurrences_plan_id_fkey"),
			expectedError: store.ErrInvalidEntity,
		},
		{
			name:          "check violation maps to invalid entity",
			err:           newPgError(checkViolationCode, "tasks_difficulty_check"),
			expectedError: store.ErrInvalidEntity,
		},
		{
			name:          "not null violation maps to invalid entity",
			err:           newPgError(notNullViolationCode, ""),
			expectedError: store.ErrInvalidEntity,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mapped := MapError(tt.err)
			if tt.expectedError == nil {
				assert.NoError(t, mapped)
				return
			}
			assert.True(t, errors.Is(mapped, tt.expectedError),
				"expected %v to map to %v", tt.err, tt.expectedError)
		})
	}

	t.Run("unmapped errors pass through", func(t *testing.T) {
		t.Parallel()

		original := errors.New("connection reset")
		assert.Equal(t, original, MapError(original))
	})
}

func TestViolationPredicates(t *testing.T) {
	t.Parallel()

	unique := newPgError(uniqueViolationCode, "plans_week_start_idempotency_key_key")
	foreign := newPgError(foreignKeyViolationCode, "plan_occurrences_plan_id_fkey")
	check := newPgError(checkViolationCode, "tasks_difficulty_check")
	notNull := newPgError(notNullViolationCode, "")
	plain := errors.New("some error")

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(foreign))
	assert.False(t, IsUniqueViolation(plain))

	assert.True(t, IsForeignKeyViolation(foreign))
	assert.False(t, IsForeignKeyViolation(unique))

	assert.True(t, IsCheckConstraintViolation(check))
	assert.False(t, IsCheckConstraintViolation(notNull))

	assert.True(t, IsNotNullViolation(notNull))
	assert.False(t, IsNotNullViolation(check))

	// Wrapped violations are still detected.
	wrapped := fmt.Errorf("insert failed: %w", unique)
	assert.True(t, IsUniqueViolation(wrapped))
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNotFoundError(sql.ErrNoRows))
	assert.True(t, IsNotFoundError(store.ErrNotFound))
	assert.True(t, IsNotFoundError(store.ErrPlanNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("lookup: %w", store.ErrTaskNotFound)))
	assert.False(t, IsNotFoundError(errors.New("some error")))
	assert.False(t, IsNotFoundError(nil))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	t.Run("rows affected", func(t *testing.T) {
		t.Parallel()

		err := CheckRowsAffected(mockResult{rowsAffected: 1}, "task")
		assert.NoError(t, err)
	})

	t.Run("no rows with entity name", func(t *testing.T) {
		t.Parallel()

		err := CheckRowsAffected(mockResult{rowsAffected: 0}, "task")
		require.Error(t, err)
		assert.True(t, errors.Is(err, store.ErrNotFound))
		assert.Contains(t, err.Error(), "task not found")
	})

	t.Run("no rows without entity name", func(t *testing.T) {
		t.Parallel()

		err := CheckRowsAffected(mockResult{rowsAffected: 0}, "")
		assert.Equal(t, store.ErrNotFound, err)
	})

	t.Run("rows affected error", func(t *testing.T) {
		t.Parallel()

		err := CheckRowsAffected(mockResult{err: errors.New("driver failure")}, "task")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get rows affected")
	})

	t.Run("nil result", func(t *testing.T) {
		t.Parallel()

		err := CheckRowsAffected(nil, "task")
		assert.Error(t, err)
	})
}

func TestMapUniqueViolation(t *testing.T) {
	t.Parallel()

	unique := newPgError(uniqueViolationCode, "plans_week_start_idempotency_key_key")

	t.Run("specific error wins", func(t *testing.T) {
		t.Parallel()

		err := MapUniqueViolation(unique, "plan", "", store.ErrPlanExists)
		assert.True(t, errors.Is(err, store.ErrPlanExists))
	})

	t.Run("entity name message", func(t *testing.T) {
		t.Parallel()

		err := MapUniqueViolation(unique, "plan", "", nil)
		assert.True(t, errors.Is(err, store.ErrDuplicate))
		assert.Contains(t, err.Error(), "plan already exists")
	})

	t.Run("constraint name message", func(t *testing.T) {
		t.Parallel()

		err := MapUniqueViolation(unique, "", "plans_week_start_idempotency_key_key", nil)
		assert.True(t, errors.Is(err, store.ErrDuplicate))
		assert.Contains(t, err.Error(), "plans_week_start_idempotency_key_key")
	})

	t.Run("non-violation passes through", func(t *testing.T) {
		t.Parallel()

		original := errors.New("some error")
		assert.Equal(t, original, MapUniqueViolation(original, "plan", "", store.ErrPlanExists))
	})
}
