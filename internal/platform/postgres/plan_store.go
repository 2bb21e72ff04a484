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

// PostgresPlanStore implements the store.PlanStore interface
// using a PostgreSQL database as the storage backend. A plan spans two
// tables: the plan envelope row and one row per occurrence.
type PostgresPlanStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPlanStore creates a new PostgreSQL implementation of the PlanStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresPlanStore(db store.DBTX, logger *slog.Logger) *PostgresPlanStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPlanStore{
		db:     db,
		logger: logger.With(slog.String("component", "plan_store")),
	}
}

// Ensure PostgresPlanStore implements store.PlanStore interface
var _ store.PlanStore = (*PostgresPlanStore)(nil)

// Create implements store.PlanStore.Create
// It saves the plan envelope and all occurrence rows. Run this within a
// transaction so the inserts commit atomically.
// Returns store.ErrPlanExists if a plan with the same week start and
// idempotency key is already stored.
func (s *PostgresPlanStore) Create(ctx context.Context, plan *domain.Plan) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := plan.Validate(); err != nil {
		log.Warn("plan validation failed during create",
			slog.String("error", err.Error()),
			slog.String("plan_id", plan.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	report, err := json.Marshal(plan.Report)
	if err != nil {
		return fmt.Errorf("failed to marshal fairness report: %w", err)
	}

	query := `
		INSERT INTO plans (id, week_start, idempotency_key, truncated, report, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		plan.ID,
		plan.WeekStart.Time(),
		plan.IdempotencyKey,
		plan.Truncated,
		report,
		plan.CreatedAt,
		plan.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("plan already exists for week and key",
				slog.String("week_start", plan.WeekStart.String()),
				slog.String("idempotency_key", plan.IdempotencyKey))
			return fmt.Errorf("%w: week %s", store.ErrPlanExists, plan.WeekStart)
		}
		log.Error("failed to create plan",
			slog.String("error", err.Error()),
			slog.String("plan_id", plan.ID.String()))
		return MapError(err)
	}

	for i := range plan.Occurrences {
		if err := s.insertOccurrence(ctx, plan.ID, &plan.Occurrences[i]); err != nil {
			log.Error("failed to insert plan occurrence",
				slog.String("error", err.Error()),
				slog.String("plan_id", plan.ID.String()),
				slog.String("occurrence_id", plan.Occurrences[i].ID))
			return err
		}
	}

	log.Info("plan created successfully",
		slog.String("plan_id", plan.ID.String()),
		slog.String("week_start", plan.WeekStart.String()),
		slog.Int("occurrences", len(plan.Occurrences)))
	return nil
}

// insertOccurrence writes one occurrence row belonging to a plan.
func (s *PostgresPlanStore) insertOccurrence(ctx context.Context, planID uuid.UUID, occ *domain.Occurrence) error {
	tags, err := json.Marshal(occ.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal occurrence tags: %w", err)
	}
	rationale, err := json.Marshal(occ.Rationale)
	if err != nil {
		return fmt.Errorf("failed to marshal occurrence rationale: %w", err)
	}

	var assignee uuid.NullUUID
	if occ.AssigneeID != uuid.Nil {
		assignee = uuid.NullUUID{UUID: occ.AssigneeID, Valid: true}
	}

	query := `
		INSERT INTO plan_occurrences (plan_id, id, task_id, task_name, category, date, start_minute, end_minute, duration_minutes, difficulty, tags, pair_group, status, assignee_id, rationale)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		planID,
		occ.ID,
		occ.TaskID,
		occ.TaskName,
		occ.Category,
		occ.Date.Time(),
		occ.StartMinute,
		occ.EndMinute,
		occ.DurationMinutes,
		occ.Difficulty,
		tags,
		occ.PairGroup,
		occ.Status,
		assignee,
		rationale,
	)
	if err != nil {
		return MapError(err)
	}
	return nil
}

// GetByID implements store.PlanStore.GetByID
// Returns store.ErrPlanNotFound if the plan does not exist.
func (s *PostgresPlanStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Plan, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, week_start, idempotency_key, truncated, report, created_at, updated_at
		FROM plans
		WHERE id = $1
	`

	plan, err := s.scanPlan(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("plan not found", slog.String("plan_id", id.String()))
			return nil, store.ErrPlanNotFound
		}
		log.Error("failed to get plan by ID",
			slog.String("error", err.Error()),
			slog.String("plan_id", id.String()))
		return nil, err
	}

	if plan.Occurrences, err = s.loadOccurrences(ctx, plan.ID); err != nil {
		log.Error("failed to load plan occurrences",
			slog.String("error", err.Error()),
			slog.String("plan_id", id.String()))
		return nil, err
	}

	return plan, nil
}

// GetByWeekAndKey implements store.PlanStore.GetByWeekAndKey
// Returns store.ErrPlanNotFound if no plan exists for the week and key.
func (s *PostgresPlanStore) GetByWeekAndKey(
	ctx context.Context,
	weekStart domain.Date,
	idempotencyKey string,
) (*domain.Plan, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id
		FROM plans
		WHERE week_start = $1 AND idempotency_key = $2
	`

	var id uuid.UUID
	err := s.db.QueryRowContext(ctx, query, weekStart.Time(), idempotencyKey).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no plan stored for week and key",
				slog.String("week_start", weekStart.String()),
				slog.String("idempotency_key", idempotencyKey))
			return nil, store.ErrPlanNotFound
		}
		log.Error("failed to look up plan by week and key",
			slog.String("error", err.Error()),
			slog.String("week_start", weekStart.String()))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// WithTx implements store.PlanStore.WithTx
// It returns a new store instance bound to the given transaction.
func (s *PostgresPlanStore) WithTx(tx *sql.Tx) store.PlanStore {
	return &PostgresPlanStore{
		db:     tx,
		logger: s.logger,
	}
}

// scanPlan reads one plan envelope row, decoding the jsonb report column.
func (s *PostgresPlanStore) scanPlan(row rowScanner) (*domain.Plan, error) {
	var plan domain.Plan
	var weekStart time.Time
	var report []byte

	err := row.Scan(
		&plan.ID,
		&weekStart,
		&plan.IdempotencyKey,
		&plan.Truncated,
		&report,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	plan.WeekStart = domain.DateOf(weekStart.UTC())

	if len(report) > 0 {
		if err := json.Unmarshal(report, &plan.Report); err != nil {
			return nil, fmt.Errorf("failed to unmarshal fairness report: %w", err)
		}
	}

	return &plan, nil
}

// loadOccurrences fetches a plan's occurrence rows in expansion order
// (date, start time, task ID).
func (s *PostgresPlanStore) loadOccurrences(ctx context.Context, planID uuid.UUID) ([]domain.Occurrence, error) {
	query := `
		SELECT id, task_id, task_name, category, date, start_minute, end_minute, duration_minutes, difficulty, tags, pair_group, status, assignee_id, rationale
		FROM plan_occurrences
		WHERE plan_id = $1
		ORDER BY date ASC, start_minute ASC, task_id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	occurrences := []domain.Occurrence{}
	for rows.Next() {
		var occ domain.Occurrence
		var date time.Time
		var tags, rationale []byte
		var assignee uuid.NullUUID

		err := rows.Scan(
			&occ.ID,
			&occ.TaskID,
			&occ.TaskName,
			&occ.Category,
			&date,
			&occ.StartMinute,
			&occ.EndMinute,
			&occ.DurationMinutes,
			&occ.Difficulty,
			&tags,
			&occ.PairGroup,
			&occ.Status,
			&assignee,
			&rationale,
		)
		if err != nil {
			return nil, err
		}

		occ.Date = domain.DateOf(date.UTC())
		if assignee.Valid {
			occ.AssigneeID = assignee.UUID
		}
		if len(tags) > 0 {
			if err := json.Unmarshal(tags, &occ.Tags); err != nil {
				return nil, fmt.Errorf("failed to unmarshal occurrence tags: %w", err)
			}
		}
		if len(rationale) > 0 {
			if err := json.Unmarshal(rationale, &occ.Rationale); err != nil {
				return nil, fmt.Errorf("failed to unmarshal occurrence rationale: %w", err)
			}
		}

		occurrences = append(occurrences, occ)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return occurrences, nil
}
