package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/domain"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/platform/logger"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/store"

	"github.com/google/uuid"
)

// PostgresPersonStore implements the store.PersonStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPersonStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPersonStore creates a new PostgreSQL implementation of the PersonStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresPersonStore(db store.DBTX, logger *slog.Logger) *PostgresPersonStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPersonStore{
		db:     db,
		logger: logger.With(slog.String("component", "person_store")),
	}
}

// Ensure PostgresPersonStore implements store.PersonStore interface
var _ store.PersonStore = (*PostgresPersonStore)(nil)

// Create implements store.PersonStore.Create
// It saves a new person to the database, handling domain validation.
func (s *PostgresPersonStore) Create(ctx context.Context, person *domain.Person) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := person.Validate(); err != nil {
		log.Warn("person validation failed during create",
			slog.String("error", err.Error()),
			slog.String("person_id", person.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	disliked, noGo, unavailability, err := marshalPersonPrefs(person)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO people (id, display_name, weekly_budget_minutes, weeknight_cap_minutes, disliked_tags, no_go_tags, unavailability, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		person.ID,
		person.DisplayName,
		person.WeeklyBudgetMinutes,
		person.WeeknightCapMinutes,
		disliked,
		noGo,
		unavailability,
		person.CreatedAt,
		person.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create person",
			slog.String("error", err.Error()),
			slog.String("person_id", person.ID.String()))
		return MapError(err)
	}

	log.Info("person created successfully",
		slog.String("person_id", person.ID.String()),
		slog.String("display_name", person.DisplayName))
	return nil
}

// GetByID implements store.PersonStore.GetByID
// Returns store.ErrPersonNotFound if the person does not exist.
func (s *PostgresPersonStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Person, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, display_name, weekly_budget_minutes, weeknight_cap_minutes, disliked_tags, no_go_tags, unavailability, created_at, updated_at
		FROM people
		WHERE id = $1
	`

	person, err := scanPerson(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("person not found", slog.String("person_id", id.String()))
			return nil, store.ErrPersonNotFound
		}
		log.Error("failed to get person by ID",
			slog.String("error", err.Error()),
			slog.String("person_id", id.String()))
		return nil, err
	}

	return person, nil
}

// List implements store.PersonStore.List
// It retrieves all household members ordered by creation time.
func (s *PostgresPersonStore) List(ctx context.Context) ([]domain.Person, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, display_name, weekly_budget_minutes, weeknight_cap_minutes, disliked_tags, no_go_tags, unavailability, created_at, updated_at
		FROM people
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query people", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	people := []domain.Person{}
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			log.Error("failed to scan person row", slog.String("error", err.Error()))
			return nil, err
		}
		people = append(people, *person)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return people, nil
}

// Update implements store.PersonStore.Update
// Returns store.ErrPersonNotFound if the person does not exist.
func (s *PostgresPersonStore) Update(ctx context.Context, person *domain.Person) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := person.Validate(); err != nil {
		log.Warn("person validation failed during update",
			slog.String("error", err.Error()),
			slog.String("person_id", person.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	disliked, noGo, unavailability, err := marshalPersonPrefs(person)
	if err != nil {
		return err
	}

	person.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE people
		SET display_name = $1, weekly_budget_minutes = $2, weeknight_cap_minutes = $3, disliked_tags = $4, no_go_tags = $5, unavailability = $6, updated_at = $7
		WHERE id = $8
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		person.DisplayName,
		person.WeeklyBudgetMinutes,
		person.WeeknightCapMinutes,
		disliked,
		noGo,
		unavailability,
		person.UpdatedAt,
		person.ID,
	)

	if err != nil {
		log.Error("failed to update person",
			slog.String("error", err.Error()),
			slog.String("person_id", person.ID.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("person_id", person.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("person not found for update", slog.String("person_id", person.ID.String()))
		return store.ErrPersonNotFound
	}

	log.Info("person updated successfully", slog.String("person_id", person.ID.String()))
	return nil
}

// Delete implements store.PersonStore.Delete
// Returns store.ErrPersonNotFound if the person does not exist.
func (s *PostgresPersonStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM people WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete person",
			slog.String("error", err.Error()),
			slog.String("person_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("person_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("person not found for delete", slog.String("person_id", id.String()))
		return store.ErrPersonNotFound
	}

	log.Info("person deleted successfully", slog.String("person_id", id.String()))
	return nil
}

// WithTx implements store.PersonStore.WithTx
// It returns a new store instance bound to the given transaction.
func (s *PostgresPersonStore) WithTx(tx *sql.Tx) store.PersonStore {
	return &PostgresPersonStore{
		db:     tx,
		logger: s.logger,
	}
}

// marshalPersonPrefs encodes the jsonb preference columns.
func marshalPersonPrefs(person *domain.Person) (disliked, noGo, unavailability []byte, err error) {
	disliked, err = json.Marshal(person.DislikedTags)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal disliked tags: %w", err)
	}
	noGo, err = json.Marshal(person.NoGoTags)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal no-go tags: %w", err)
	}
	unavailability, err = json.Marshal(person.Unavailability)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal unavailability: %w", err)
	}
	return disliked, noGo, unavailability, nil
}

// scanPerson reads one person row into a domain.Person, decoding the
// jsonb preference columns.
func scanPerson(row rowScanner) (*domain.Person, error) {
	var person domain.Person
	var disliked, noGo, unavailability []byte

	err := row.Scan(
		&person.ID,
		&person.DisplayName,
		&person.WeeklyBudgetMinutes,
		&person.WeeknightCapMinutes,
		&disliked,
		&noGo,
		&unavailability,
		&person.CreatedAt,
		&person.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(disliked) > 0 {
		if err := json.Unmarshal(disliked, &person.DislikedTags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal disliked tags: %w", err)
		}
	}
	if len(noGo) > 0 {
		if err := json.Unmarshal(noGo, &person.NoGoTags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal no-go tags: %w", err)
		}
	}
	if len(unavailability) > 0 {
		if err := json.Unmarshal(unavailability, &person.Unavailability); err != nil {
			return nil, fmt.Errorf("failed to unmarshal unavailability: %w", err)
		}
	}

	return &person, nil
}
