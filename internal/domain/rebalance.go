package domain

import "github.com/google/uuid"

// SwapProposal moves one occurrence from one person to another as part
// of a rebalance preview.
type SwapProposal struct {
	OccurrenceID string    `json:"occurrence_id"`
	TaskName     string    `json:"task_name"`
	Date         Date      `json:"date"`
	FromPersonID uuid.UUID `json:"from_person_id"`
	ToPersonID   uuid.UUID `json:"to_person_id"`
}

// PersonMinutes is the per-person minute projection attached to a
// rebalance preview.
type PersonMinutes struct {
	PersonID         uuid.UUID `json:"person_id"`
	DisplayName      string    `json:"display_name"`
	CurrentMinutes   int       `json:"current_minutes"`
	ProjectedMinutes int       `json:"projected_minutes"`
	TargetMinutes    int       `json:"target_minutes"`
}

// RebalancePreview proposes a minimal set of swaps that would improve an
// existing plan's fairness. It is a proposal, never a commitment: the
// input assignment list is left untouched and the caller decides whether
// to apply the swaps.
type RebalancePreview struct {
	CurrentScore   int `json:"current_score"`
	ProjectedScore int `json:"projected_score"`

	// Swaps is ordered; an empty list means no improving swap cleared
	// the minimum-improvement threshold.
	Swaps []SwapProposal `json:"swaps"`

	PerPerson []PersonMinutes `json:"per_person"`
}
