package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/domain"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/domain/planner"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/events"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/store"
)

// newMockDB returns an sqlmock-backed database for exercising the
// transactional service paths without a real PostgreSQL instance.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// expectTx registers the begin/commit pair for one successful transaction.
func expectTx(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectCommit()
}

// expectTxRollback registers the begin/rollback pair for one failed transaction.
func expectTxRollback(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectRollback()
}

// Mock implementations for testing

type mockTaskRepository struct {
	// Method call tracking
	createCalled bool
	listCalled   bool
	updateCalled bool
	deleteCalled bool

	// Return values
	createError  error
	getByIDTask  *domain.TaskDefinition
	getByIDError error
	listTasks    []domain.TaskDefinition
	listError    error
	updateError  error
	deleteError  error
	dbReturn     *sql.DB
}

func (m *mockTaskRepository) Create(ctx context.Context, task *domain.TaskDefinition) error {
	m.createCalled = true
	return m.createError
}

func (m *mockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaskDefinition, error) {
	if m.getByIDError != nil {
		return nil, m.getByIDError
	}
	return m.getByIDTask, nil
}

func (m *mockTaskRepository) List(ctx context.Context) ([]domain.TaskDefinition, error) {
	m.listCalled = true
	if m.listError != nil {
		return nil, m.listError
	}
	return m.listTasks, nil
}

func (m *mockTaskRepository) Update(ctx context.Context, task *domain.TaskDefinition) error {
	m.updateCalled = true
	return m.updateError
}

func (m *mockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.deleteCalled = true
	return m.deleteError
}

func (m *mockTaskRepository) WithTx(tx *sql.Tx) TaskRepository {
	// Return the same mock so call tracking survives the transaction.
	return m
}

func (m *mockTaskRepository) DB() *sql.DB {
	return m.dbReturn
}

type mockPersonRepository struct {
	// Method call tracking
	createCalled bool
	listCalled   bool
	updateCalled bool
	deleteCalled bool

	// Return values
	createError    error
	getByIDPerson  *domain.Person
	getByIDError   error
	listPeople     []domain.Person
	listError      error
	updateError    error
	deleteError    error
	dbReturn       *sql.DB
}

func (m *mockPersonRepository) Create(ctx context.Context, person *domain.Person) error {
	m.createCalled = true
	return m.createError
}

func (m *mockPersonRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Person, error) {
	if m.getByIDError != nil {
		return nil, m.getByIDError
	}
	return m.getByIDPerson, nil
}

func (m *mockPersonRepository) List(ctx context.Context) ([]domain.Person, error) {
	m.listCalled = true
	if m.listError != nil {
		return nil, m.listError
	}
	return m.listPeople, nil
}

func (m *mockPersonRepository) Update(ctx context.Context, person *domain.Person) error {
	m.updateCalled = true
	return m.updateError
}

func (m *mockPersonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.deleteCalled = true
	return m.deleteError
}

func (m *mockPersonRepository) WithTx(tx *sql.Tx) PersonRepository {
	return m
}

func (m *mockPersonRepository) DB() *sql.DB {
	return m.dbReturn
}

// weekKeyResult is one queued response for GetByWeekAndKey, letting a test
// script the idempotency check and the post-race lookup separately.
type weekKeyResult struct {
	plan *domain.Plan
	err  error
}

type mockPlanRepository struct {
	// Method call tracking
	createCalled    bool
	weekKeyCalls    int

	// Return values
	createError    error
	createdPlan    *domain.Plan
	getByIDPlan    *domain.Plan
	getByIDError   error
	weekKeyResults []weekKeyResult
	dbReturn       *sql.DB
}

func (m *mockPlanRepository) Create(ctx context.Context, plan *domain.Plan) error {
	m.createCalled = true
	m.createdPlan = plan
	return m.createError
}

func (m *mockPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Plan, error) {
	if m.getByIDError != nil {
		return nil, m.getByIDError
	}
	return m.getByIDPlan, nil
}

func (m *mockPlanRepository) GetByWeekAndKey(
	ctx context.Context,
	weekStart domain.Date,
	idempotencyKey string,
) (*domain.Plan, error) {
	i := m.weekKeyCalls
	m.weekKeyCalls++
	if len(m.weekKeyResults) == 0 {
		return nil, store.ErrPlanNotFound
	}
	if i >= len(m.weekKeyResults) {
		i = len(m.weekKeyResults) - 1
	}
	r := m.weekKeyResults[i]
	return r.plan, r.err
}

func (m *mockPlanRepository) WithTx(tx *sql.Tx) PlanRepository {
	return m
}

func (m *mockPlanRepository) DB() *sql.DB {
	return m.dbReturn
}

type mockPlannerService struct {
	// Method call tracking
	generateCalled  bool
	rebalanceCalled bool

	// Return values
	generateResult   *planner.PlanResult
	generateError    error
	rebalancePreview *domain.RebalancePreview
	rebalanceError   error
}

func (m *mockPlannerService) GeneratePlan(
	tasks []domain.TaskDefinition,
	people []domain.Person,
	weekStart domain.Date,
	idempotencyKey string,
) (*planner.PlanResult, error) {
	m.generateCalled = true
	if m.generateError != nil {
		return nil, m.generateError
	}
	return m.generateResult, nil
}

func (m *mockPlannerService) RebalancePlan(
	tasks []domain.TaskDefinition,
	people []domain.Person,
	current []domain.Occurrence,
	idempotencyKey string,
) (*domain.RebalancePreview, error) {
	m.rebalanceCalled = true
	if m.rebalanceError != nil {
		return nil, m.rebalanceError
	}
	return m.rebalancePreview, nil
}

// Test fixtures

func serviceTestTask(name string) domain.TaskDefinition {
	now := time.Now().UTC()
	return domain.TaskDefinition{
		ID:              uuid.New(),
		Name:            name,
		Category:        domain.CategoryKitchen,
		DurationMinutes: 20,
		Difficulty:      1,
		Frequency:       domain.FrequencyDaily,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func serviceTestPerson(name string, budget int) domain.Person {
	now := time.Now().UTC()
	return domain.Person{
		ID:                  uuid.New(),
		DisplayName:         name,
		WeeklyBudgetMinutes: budget,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

func serviceTestPlan(t *testing.T) *domain.Plan {
	t.Helper()

	occ := domain.Occurrence{
		ID:              uuid.New().String() + ":2025-06-02",
		TaskID:          uuid.New(),
		TaskName:        "Dishes",
		Category:        domain.CategoryKitchen,
		Date:            domain.NewDate(2025, time.June, 2),
		StartMinute:     7 * 60,
		EndMinute:       7*60 + 20,
		DurationMinutes: 20,
		Difficulty:      1,
		Status:          domain.OccurrenceStatusAssigned,
		AssigneeID:      uuid.New(),
	}

	plan, err := domain.NewPlan(
		domain.NewDate(2025, time.June, 2),
		"key-1",
		false,
		[]domain.Occurrence{occ},
		domain.FairnessReport{Score: 90, Band: domain.FairnessBandGood},
	)
	require.NoError(t, err)
	return plan
}

// mockEventEmitter records emitted lifecycle events.
type mockEventEmitter struct {
	emitted []*events.PlanEvent
	emitErr error
}

func (m *mockEventEmitter) EmitEvent(ctx context.Context, event *events.PlanEvent) error {
	m.emitted = append(m.emitted, event)
	return m.emitErr
}
