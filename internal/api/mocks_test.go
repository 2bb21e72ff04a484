package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/domain"
)

// Mock implementations for testing

type mockHouseholdService struct {
	createTaskErr error
	getTaskTask   *domain.TaskDefinition
	getTaskErr    error
	listTasks     []domain.TaskDefinition
	listTasksErr  error
	updateTaskErr error
	deleteTaskErr error

	createPersonErr error
	getPersonPerson *domain.Person
	getPersonErr    error
	listPeople      []domain.Person
	listPeopleErr   error
	updatePersonErr error
	deletePersonErr error
}

func (m *mockHouseholdService) CreateTask(ctx context.Context, task *domain.TaskDefinition) error {
	return m.createTaskErr
}

func (m *mockHouseholdService) GetTask(ctx context.Context, taskID uuid.UUID) (*domain.TaskDefinition, error) {
	if m.getTaskErr != nil {
		return nil, m.getTaskErr
	}
	return m.getTaskTask, nil
}

func (m *mockHouseholdService) ListTasks(ctx context.Context) ([]domain.TaskDefinition, error) {
	if m.listTasksErr != nil {
		return nil, m.listTasksErr
	}
	return m.listTasks, nil
}

func (m *mockHouseholdService) UpdateTask(ctx context.Context, task *domain.TaskDefinition) error {
	return m.updateTaskErr
}

func (m *mockHouseholdService) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	return m.deleteTaskErr
}

func (m *mockHouseholdService) CreatePerson(ctx context.Context, person *domain.Person) error {
	return m.createPersonErr
}

func (m *mockHouseholdService) GetPerson(ctx context.Context, personID uuid.UUID) (*domain.Person, error) {
	if m.getPersonErr != nil {
		return nil, m.getPersonErr
	}
	return m.getPersonPerson, nil
}

func (m *mockHouseholdService) ListPeople(ctx context.Context) ([]domain.Person, error) {
	if m.listPeopleErr != nil {
		return nil, m.listPeopleErr
	}
	return m.listPeople, nil
}

func (m *mockHouseholdService) UpdatePerson(ctx context.Context, person *domain.Person) error {
	return m.updatePersonErr
}

func (m *mockHouseholdService) DeletePerson(ctx context.Context, personID uuid.UUID) error {
	return m.deletePersonErr
}

type mockPlanService struct {
	generatePlan *domain.Plan
	generateErr  error
	getPlan      *domain.Plan
	getPlanErr   error
	preview      *domain.RebalancePreview
	previewErr   error

	generateCalledWith struct {
		weekStart      domain.Date
		idempotencyKey string
	}
}

func (m *mockPlanService) GeneratePlan(
	ctx context.Context,
	weekStart domain.Date,
	idempotencyKey string,
) (*domain.Plan, error) {
	m.generateCalledWith.weekStart = weekStart
	m.generateCalledWith.idempotencyKey = idempotencyKey
	if m.generateErr != nil {
		return nil, m.generateErr
	}
	return m.generatePlan, nil
}

func (m *mockPlanService) RebalancePlan(
	ctx context.Context,
	planID uuid.UUID,
) (*domain.RebalancePreview, error) {
	if m.previewErr != nil {
		return nil, m.previewErr
	}
	return m.preview, nil
}

func (m *mockPlanService) GetPlan(ctx context.Context, planID uuid.UUID) (*domain.Plan, error) {
	if m.getPlanErr != nil {
		return nil, m.getPlanErr
	}
	return m.getPlan, nil
}
