package api

import (
	"time"

	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/domain"
)

// Common request/response structures

// TaskRequest defines the payload for creating or updating a task definition.
type TaskRequest struct {
	Name            string   `json:"name"             validate:"required"`
	Category        string   `json:"category"         validate:"required,oneof=kitchen cleaning laundry errands admin childcare pets outdoor other"`
	DurationMinutes int      `json:"duration_minutes" validate:"required,gt=0"`
	Difficulty      int      `json:"difficulty"       validate:"required,min=1,max=3"`
	Frequency       string   `json:"frequency"        validate:"required,oneof=daily weekly monthly"`
	Tags            []string `json:"tags,omitempty"`
	PairGroup       string   `json:"pair_group,omitempty"`
}

// TaskResponse represents the response data for a task definition.
type TaskResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	DurationMinutes int       `json:"duration_minutes"`
	Difficulty      int       `json:"difficulty"`
	Frequency       string    `json:"frequency"`
	Tags            []string  `json:"tags,omitempty"`
	PairGroup       string    `json:"pair_group,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UnavailabilityWindowPayload carries one recurring unavailability block
// in requests and responses. Weekday follows time.Weekday numbering with
// Sunday as 0.
type UnavailabilityWindowPayload struct {
	Weekday     int `json:"weekday"      validate:"min=0,max=6"`
	StartMinute int `json:"start_minute" validate:"min=0,max=1439"`
	EndMinute   int `json:"end_minute"   validate:"min=1,max=1440"`
}

// PersonRequest defines the payload for creating or updating a household member.
type PersonRequest struct {
	DisplayName         string                        `json:"display_name"          validate:"required"`
	WeeklyBudgetMinutes int                           `json:"weekly_budget_minutes" validate:"required,gt=0"`
	WeeknightCapMinutes int                           `json:"weeknight_cap_minutes,omitempty" validate:"gte=0"`
	DislikedTags        []string                      `json:"disliked_tags,omitempty"`
	NoGoTags            []string                      `json:"no_go_tags,omitempty"`
	Unavailability      []UnavailabilityWindowPayload `json:"unavailability,omitempty" validate:"dive"`
}

// PersonResponse represents the response data for a household member.
type PersonResponse struct {
	ID                  string                        `json:"id"`
	DisplayName         string                        `json:"display_name"`
	WeeklyBudgetMinutes int                           `json:"weekly_budget_minutes"`
	WeeknightCapMinutes int                           `json:"weeknight_cap_minutes,omitempty"`
	DislikedTags        []string                      `json:"disliked_tags,omitempty"`
	NoGoTags            []string                      `json:"no_go_tags,omitempty"`
	Unavailability      []UnavailabilityWindowPayload `json:"unavailability,omitempty"`
	CreatedAt           time.Time                     `json:"created_at"`
	UpdatedAt           time.Time                     `json:"updated_at"`
}

// GeneratePlanRequest defines the payload for the plan generation endpoint.
type GeneratePlanRequest struct {
	// WeekStart is the ISO date of the Monday the plan covers.
	WeekStart string `json:"week_start" validate:"required"`

	// IdempotencyKey makes generation repeatable: the same key for the
	// same week returns the stored plan instead of scheduling again.
	IdempotencyKey string `json:"idempotency_key" validate:"required"`
}

// OccurrenceResponse represents one dated chore instance within a plan.
type OccurrenceResponse struct {
	ID              string   `json:"id"`
	TaskID          string   `json:"task_id"`
	TaskName        string   `json:"task_name"`
	Category        string   `json:"category"`
	Date            string   `json:"date"`
	StartMinute     int      `json:"start_minute"`
	EndMinute       int      `json:"end_minute"`
	DurationMinutes int      `json:"duration_minutes"`
	Difficulty      int      `json:"difficulty"`
	Tags            []string `json:"tags,omitempty"`
	PairGroup       string   `json:"pair_group,omitempty"`
	Status          string   `json:"status"`
	AssigneeID      string   `json:"assignee_id,omitempty"`
	Rationale       []string `json:"rationale,omitempty"`
}

// PlanResponse represents the response data for a generated plan.
type PlanResponse struct {
	ID             string                `json:"id"`
	WeekStart      string                `json:"week_start"`
	IdempotencyKey string                `json:"idempotency_key"`
	Truncated      bool                  `json:"truncated"`
	Occurrences    []OccurrenceResponse  `json:"occurrences"`
	Report         domain.FairnessReport `json:"report"`
	CreatedAt      time.Time             `json:"created_at"`
}
