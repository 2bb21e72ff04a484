package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Frequency describes how often a recurring task repeats.
type Frequency string

// Recognized recurrence frequencies. The occurrence expander silently
// skips any other value; Validate rejects it at the CRUD boundary.
const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Category groups tasks for slot-policy purposes. The expander picks a
// default time window per category, so the set is closed rather than
// free-form text.
type Category string

// Recognized task categories.
const (
	CategoryKitchen   Category = "kitchen"
	CategoryCleaning  Category = "cleaning"
	CategoryLaundry   Category = "laundry"
	CategoryErrands   Category = "errands"
	CategoryAdmin     Category = "admin"
	CategoryChildcare Category = "childcare"
	CategoryPets      Category = "pets"
	CategoryOutdoor   Category = "outdoor"
	CategoryOther     Category = "other"
)

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskNameEmpty is returned when a task's name is empty.
	ErrTaskNameEmpty = errors.New("task name cannot be empty")

	// ErrTaskDurationInvalid is returned when a task's duration is not positive.
	ErrTaskDurationInvalid = errors.New("task duration must be positive")

	// ErrTaskDifficultyInvalid is returned when a task's difficulty tier
	// is outside the 1-3 range.
	ErrTaskDifficultyInvalid = errors.New("task difficulty must be between 1 and 3")
)

// TaskDefinition describes one recurring household chore. It is an
// immutable input to the planner: the expander turns it into dated
// occurrences but never modifies the definition itself.
type TaskDefinition struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Category        Category  `json:"category"`
	DurationMinutes int       `json:"duration_minutes"`
	Difficulty      int       `json:"difficulty"`
	Frequency       Frequency `json:"frequency"`
	Tags            []string  `json:"tags,omitempty"`

	// PairGroup names a set of tasks (e.g. daycare drop-off/pick-up)
	// that must not double-book the same person on the same day and
	// should alternate across the week. Empty means unpaired.
	PairGroup string `json:"pair_group,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTaskDefinition creates a new TaskDefinition with a generated ID and
// creation/update timestamps. Returns an error if validation fails.
func NewTaskDefinition(
	name string,
	category Category,
	durationMinutes int,
	difficulty int,
	frequency Frequency,
) (*TaskDefinition, error) {
	task := &TaskDefinition{
		ID:              uuid.New(),
		Name:            name,
		Category:        category,
		DurationMinutes: durationMinutes,
		Difficulty:      difficulty,
		Frequency:       frequency,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the TaskDefinition has valid data.
// Returns an error if any field fails validation.
func (t *TaskDefinition) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.Name == "" {
		return ErrTaskNameEmpty
	}

	if t.DurationMinutes <= 0 {
		return ErrTaskDurationInvalid
	}

	if t.Difficulty < 1 || t.Difficulty > 3 {
		return ErrTaskDifficultyInvalid
	}

	if !IsValidFrequency(t.Frequency) {
		return ErrInvalidFrequency
	}

	return nil
}

// IsValidFrequency checks if the given frequency is a recognized value.
func IsValidFrequency(f Frequency) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	default:
		return false
	}
}
