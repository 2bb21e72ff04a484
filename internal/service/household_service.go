package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/domain"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/platform/logger"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/store"
)

// HouseholdServiceError is a custom error type for household service errors.
type HouseholdServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for HouseholdServiceError.
func (e *HouseholdServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("household service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("household service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *HouseholdServiceError) Unwrap() error {
	return e.Err
}

// NewHouseholdServiceError creates a new HouseholdServiceError.
func NewHouseholdServiceError(operation, message string, err error) *HouseholdServiceError {
	return &HouseholdServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// TaskRepository defines the repository interface for the service layer
type TaskRepository interface {
	// Create saves a new task definition to the store
	Create(ctx context.Context, task *domain.TaskDefinition) error

	// GetByID retrieves a task definition by its unique ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TaskDefinition, error)

	// List retrieves all task definitions
	List(ctx context.Context) ([]domain.TaskDefinition, error)

	// Update modifies an existing task definition
	Update(ctx context.Context, task *domain.TaskDefinition) error

	// Delete removes a task definition by its ID
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new repository instance that uses the provided transaction
	// This is used for transactional operations
	WithTx(tx *sql.Tx) TaskRepository

	// DB returns the underlying database connection
	DB() *sql.DB
}

// PersonRepository defines the repository interface for the service layer
type PersonRepository interface {
	// Create saves a new household member to the store
	Create(ctx context.Context, person *domain.Person) error

	// GetByID retrieves a household member by their unique ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Person, error)

	// List retrieves all household members
	List(ctx context.Context) ([]domain.Person, error)

	// Update modifies an existing household member
	Update(ctx context.Context, person *domain.Person) error

	// Delete removes a household member by their ID
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new repository instance that uses the provided transaction
	WithTx(tx *sql.Tx) PersonRepository

	// DB returns the underlying database connection
	DB() *sql.DB
}

// HouseholdService manages the household roster: the task definitions
// that feed plan generation and the people the planner assigns them to.
type HouseholdService interface {
	// CreateTask saves a new task definition
	CreateTask(ctx context.Context, task *domain.TaskDefinition) error

	// GetTask retrieves a task definition by its ID
	GetTask(ctx context.Context, taskID uuid.UUID) (*domain.TaskDefinition, error)

	// ListTasks retrieves all task definitions
	ListTasks(ctx context.Context) ([]domain.TaskDefinition, error)

	// UpdateTask modifies an existing task definition. Occurrences of
	// already-generated plans are snapshots and are not touched.
	UpdateTask(ctx context.Context, task *domain.TaskDefinition) error

	// DeleteTask removes a task definition by its ID
	DeleteTask(ctx context.Context, taskID uuid.UUID) error

	// CreatePerson saves a new household member
	CreatePerson(ctx context.Context, person *domain.Person) error

	// GetPerson retrieves a household member by their ID
	GetPerson(ctx context.Context, personID uuid.UUID) (*domain.Person, error)

	// ListPeople retrieves all household members
	ListPeople(ctx context.Context) ([]domain.Person, error)

	// UpdatePerson modifies an existing household member
	UpdatePerson(ctx context.Context, person *domain.Person) error

	// DeletePerson removes a household member by their ID
	DeletePerson(ctx context.Context, personID uuid.UUID) error
}

// householdServiceImpl implements the HouseholdService interface
type householdServiceImpl struct {
	taskRepo   TaskRepository
	personRepo PersonRepository
	logger     *slog.Logger
}

// NewHouseholdService creates a new HouseholdService.
// It returns an error if any of the required dependencies are nil.
func NewHouseholdService(
	taskRepo TaskRepository,
	personRepo PersonRepository,
	logger *slog.Logger,
) (HouseholdService, error) {
	// Validate dependencies
	if taskRepo == nil {
		return nil, domain.NewValidationError("taskRepo", "cannot be nil", domain.ErrValidation)
	}
	if personRepo == nil {
		return nil, domain.NewValidationError("personRepo", "cannot be nil", domain.ErrValidation)
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &householdServiceImpl{
		taskRepo:   taskRepo,
		personRepo: personRepo,
		logger:     logger.With(slog.String("component", "household_service")),
	}, nil
}

// CreateTask implements HouseholdService.CreateTask
func (s *householdServiceImpl) CreateTask(ctx context.Context, task *domain.TaskDefinition) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.taskRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return s.taskRepo.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_name", task.Name))
		return NewHouseholdServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("task_name", task.Name))
	return nil
}

// GetTask implements HouseholdService.GetTask
func (s *householdServiceImpl) GetTask(ctx context.Context, taskID uuid.UUID) (*domain.TaskDefinition, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewHouseholdServiceError("get_task", "task not found", store.ErrTaskNotFound)
		}
		log.Error("failed to retrieve task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, NewHouseholdServiceError("get_task", "failed to retrieve task", err)
	}

	return task, nil
}

// ListTasks implements HouseholdService.ListTasks
func (s *householdServiceImpl) ListTasks(ctx context.Context) ([]domain.TaskDefinition, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, NewHouseholdServiceError("list_tasks", "failed to list tasks", err)
	}

	return tasks, nil
}

// UpdateTask implements HouseholdService.UpdateTask
func (s *householdServiceImpl) UpdateTask(ctx context.Context, task *domain.TaskDefinition) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.taskRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return s.taskRepo.WithTx(tx).Update(ctx, task)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return NewHouseholdServiceError("update_task", "task not found", store.ErrTaskNotFound)
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return NewHouseholdServiceError("update_task", "failed to update task", err)
	}

	log.Info("task updated", slog.String("task_id", task.ID.String()))
	return nil
}

// DeleteTask implements HouseholdService.DeleteTask
func (s *householdServiceImpl) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.taskRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return s.taskRepo.WithTx(tx).Delete(ctx, taskID)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return NewHouseholdServiceError("delete_task", "task not found", store.ErrTaskNotFound)
		}
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return NewHouseholdServiceError("delete_task", "failed to delete task", err)
	}

	log.Info("task deleted", slog.String("task_id", taskID.String()))
	return nil
}

// CreatePerson implements HouseholdService.CreatePerson
func (s *householdServiceImpl) CreatePerson(ctx context.Context, person *domain.Person) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.personRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return s.personRepo.WithTx(tx).Create(ctx, person)
	})
	if err != nil {
		log.Error("failed to create person",
			slog.String("error", err.Error()),
			slog.String("display_name", person.DisplayName))
		return NewHouseholdServiceError("create_person", "failed to save person", err)
	}

	log.Info("person created",
		slog.String("person_id", person.ID.String()),
		slog.String("display_name", person.DisplayName))
	return nil
}

// GetPerson implements HouseholdService.GetPerson
func (s *householdServiceImpl) GetPerson(ctx context.Context, personID uuid.UUID) (*domain.Person, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	person, err := s.personRepo.GetByID(ctx, personID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewHouseholdServiceError("get_person", "person not found", store.ErrPersonNotFound)
		}
		log.Error("failed to retrieve person",
			slog.String("error", err.Error()),
			slog.String("person_id", personID.String()))
		return nil, NewHouseholdServiceError("get_person", "failed to retrieve person", err)
	}

	return person, nil
}

// ListPeople implements HouseholdService.ListPeople
func (s *householdServiceImpl) ListPeople(ctx context.Context) ([]domain.Person, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	people, err := s.personRepo.List(ctx)
	if err != nil {
		log.Error("failed to list people", slog.String("error", err.Error()))
		return nil, NewHouseholdServiceError("list_people", "failed to list people", err)
	}

	return people, nil
}

// UpdatePerson implements HouseholdService.UpdatePerson
func (s *householdServiceImpl) UpdatePerson(ctx context.Context, person *domain.Person) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.personRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return s.personRepo.WithTx(tx).Update(ctx, person)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return NewHouseholdServiceError("update_person", "person not found", store.ErrPersonNotFound)
		}
		log.Error("failed to update person",
			slog.String("error", err.Error()),
			slog.String("person_id", person.ID.String()))
		return NewHouseholdServiceError("update_person", "failed to update person", err)
	}

	log.Info("person updated", slog.String("person_id", person.ID.String()))
	return nil
}

// DeletePerson implements HouseholdService.DeletePerson
func (s *householdServiceImpl) DeletePerson(ctx context.Context, personID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.personRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return s.personRepo.WithTx(tx).Delete(ctx, personID)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return NewHouseholdServiceError("delete_person", "person not found", store.ErrPersonNotFound)
		}
		log.Error("failed to delete person",
			slog.String("error", err.Error()),
			slog.String("person_id", personID.String()))
		return NewHouseholdServiceError("delete_person", "failed to delete person", err)
	}

	log.Info("person deleted", slog.String("person_id", personID.String()))
	return nil
}
