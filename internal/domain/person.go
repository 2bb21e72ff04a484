package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Person-specific validation errors
var (
	// ErrPersonIDEmpty is returned when a person ID is empty or nil.
	ErrPersonIDEmpty = errors.New("person ID cannot be empty")

	// ErrPersonNameEmpty is returned when a person's display name is empty.
	ErrPersonNameEmpty = errors.New("person display name cannot be empty")

	// ErrPersonBudgetInvalid is returned when a person's weekly time
	// budget is not positive.
	ErrPersonBudgetInvalid = errors.New("person weekly budget must be positive")

	// ErrUnavailabilityInvalid is returned when an unavailability window
	// has a non-positive length or minutes outside a day.
	ErrUnavailabilityInvalid = errors.New("unavailability window is invalid")
)

// UnavailabilityWindow marks a recurring block of local time on one day
// of the week during which a person cannot be assigned any task. Start
// and End are minutes after local midnight; End is exclusive.
type UnavailabilityWindow struct {
	Weekday     time.Weekday `json:"weekday"`
	StartMinute int          `json:"start_minute"`
	EndMinute   int          `json:"end_minute"`
}

// Validate checks if the window has a positive length within one day.
func (w UnavailabilityWindow) Validate() error {
	if w.StartMinute < 0 || w.EndMinute > 24*60 || w.StartMinute >= w.EndMinute {
		return ErrUnavailabilityInvalid
	}
	return nil
}

// Person represents one household member eligible for chore assignment.
// It is an immutable input for a single scheduling run.
type Person struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`

	// WeeklyBudgetMinutes is the member's declared weekly time budget.
	// Target shares are derived from it: budget / sum of all budgets.
	WeeklyBudgetMinutes int `json:"weekly_budget_minutes"`

	// WeeknightCapMinutes limits accumulated evening minutes on a single
	// weeknight before a soft penalty applies. Zero means the policy
	// default applies.
	WeeknightCapMinutes int `json:"weeknight_cap_minutes,omitempty"`

	// DislikedTags are soft avoidances: assignments still happen but are
	// penalized. NoGoTags are hard: a task whose tags or name intersect
	// them can never be assigned to this person.
	DislikedTags []string `json:"disliked_tags,omitempty"`
	NoGoTags     []string `json:"no_go_tags,omitempty"`

	Unavailability []UnavailabilityWindow `json:"unavailability,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPerson creates a new Person with a generated ID and timestamps.
// Returns an error if validation fails.
func NewPerson(displayName string, weeklyBudgetMinutes int) (*Person, error) {
	person := &Person{
		ID:                  uuid.New(),
		DisplayName:         displayName,
		WeeklyBudgetMinutes: weeklyBudgetMinutes,
		CreatedAt:           time.Now().UTC(),
		UpdatedAt:           time.Now().UTC(),
	}

	if err := person.Validate(); err != nil {
		return nil, err
	}

	return person, nil
}

// Validate checks if the Person has valid data.
// Returns an error if any field fails validation.
func (p *Person) Validate() error {
	if p.ID == uuid.Nil {
		return ErrPersonIDEmpty
	}

	if p.DisplayName == "" {
		return ErrPersonNameEmpty
	}

	if p.WeeklyBudgetMinutes <= 0 {
		return ErrPersonBudgetInvalid
	}

	for _, w := range p.Unavailability {
		if err := w.Validate(); err != nil {
			return err
		}
	}

	return nil
}
