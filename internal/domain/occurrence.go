package domain

import (
	"errors"

	"github.com/google/uuid"
)

// OccurrenceStatus represents the assignment state of an occurrence.
type OccurrenceStatus string

// Possible occurrence status values. An occurrence starts unassigned and
// ends in exactly one terminal state: assigned or backlog.
const (
	OccurrenceStatusUnassigned OccurrenceStatus = "unassigned"
	OccurrenceStatusAssigned   OccurrenceStatus = "assigned"
	OccurrenceStatusBacklog    OccurrenceStatus = "backlog"
)

// AssignmentReason is one element of the rationale attached to an
// assignment. The set is closed so callers can render or translate
// reasons without parsing strings.
type AssignmentReason string

// Recognized assignment reasons.
const (
	// ReasonFairShare: the proportional fairness term favored this person.
	ReasonFairShare AssignmentReason = "fair_share"

	// ReasonMoreRemaining: the person had clearly more budget headroom
	// than the household average.
	ReasonMoreRemaining AssignmentReason = "more_remaining"

	// ReasonDaytimeFlex: the occurrence falls in business hours and the
	// person could absorb a daytime slot.
	ReasonDaytimeFlex AssignmentReason = "daytime_flex"

	// ReasonPairRotation: the occurrence's weekday matches the person's
	// rotation pattern for its pair group.
	ReasonPairRotation AssignmentReason = "pair_rotation"

	// ReasonOnlyCandidate: every other person was hard-rejected.
	ReasonOnlyCandidate AssignmentReason = "only_candidate"
)

// Occurrence-specific validation errors
var (
	// ErrOccurrenceIDEmpty is returned when an occurrence ID is empty.
	ErrOccurrenceIDEmpty = errors.New("occurrence ID cannot be empty")

	// ErrOccurrenceDateZero is returned when an occurrence has no date.
	ErrOccurrenceDateZero = errors.New("occurrence date cannot be zero")

	// ErrOccurrenceWindowInvalid is returned when an occurrence's time
	// window is empty or outside a single day.
	ErrOccurrenceWindowInvalid = errors.New("occurrence time window is invalid")

	// ErrOccurrenceAssigneeEmpty is returned when an assigned occurrence
	// has no assignee.
	ErrOccurrenceAssigneeEmpty = errors.New("assigned occurrence must have an assignee")
)

// Occurrence is one concrete, dated, time-boxed instance of a
// TaskDefinition inside the planning week. Occurrences are created by
// the expander and mutated only by the scheduler (assignment) or the
// rebalancer (reassignment); never concurrently.
type Occurrence struct {
	// ID is derived from the task ID and the date, which makes it stable
	// across runs with identical inputs.
	ID string `json:"id"`

	TaskID   uuid.UUID `json:"task_id"`
	TaskName string    `json:"task_name"`
	Category Category  `json:"category"`

	Date        Date `json:"date"`
	StartMinute int  `json:"start_minute"`
	EndMinute   int  `json:"end_minute"`

	DurationMinutes int      `json:"duration_minutes"`
	Difficulty      int      `json:"difficulty"`
	Tags            []string `json:"tags,omitempty"`
	PairGroup       string   `json:"pair_group,omitempty"`

	Status     OccurrenceStatus   `json:"status"`
	AssigneeID uuid.UUID          `json:"assignee_id,omitempty"`
	Rationale  []AssignmentReason `json:"rationale,omitempty"`
}

// Validate checks if the Occurrence has valid data.
// Returns an error if any field fails validation.
func (o *Occurrence) Validate() error {
	if o.ID == "" {
		return ErrOccurrenceIDEmpty
	}

	if o.Date.IsZero() {
		return ErrOccurrenceDateZero
	}

	if o.StartMinute < 0 || o.EndMinute > 24*60 || o.StartMinute >= o.EndMinute {
		return ErrOccurrenceWindowInvalid
	}

	if !isValidOccurrenceStatus(o.Status) {
		return ErrInvalidStatus
	}

	if o.Status == OccurrenceStatusAssigned && o.AssigneeID == uuid.Nil {
		return ErrOccurrenceAssigneeEmpty
	}

	return nil
}

// Assign marks the occurrence as assigned to the given person with the
// given rationale.
func (o *Occurrence) Assign(personID uuid.UUID, rationale []AssignmentReason) {
	o.Status = OccurrenceStatusAssigned
	o.AssigneeID = personID
	o.Rationale = rationale
}

// MoveToBacklog marks the occurrence as unassignable. Backlog is an
// expected outcome for over-constrained weeks, not an error.
func (o *Occurrence) MoveToBacklog() {
	o.Status = OccurrenceStatusBacklog
	o.AssigneeID = uuid.Nil
	o.Rationale = nil
}

// isValidOccurrenceStatus checks if the given status is valid.
func isValidOccurrenceStatus(status OccurrenceStatus) bool {
	switch status {
	case OccurrenceStatusUnassigned, OccurrenceStatusAssigned, OccurrenceStatusBacklog:
		return true
	default:
		return false
	}
}
