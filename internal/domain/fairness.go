package domain

import "github.com/google/uuid"

// FairnessBand is the qualitative color band derived from a fairness
// score.
type FairnessBand string

// Fairness bands.
const (
	FairnessBandGood FairnessBand = "good" // score >= 80
	FairnessBandOkay FairnessBand = "okay" // 60-79
	FairnessBandPoor FairnessBand = "poor" // < 60
)

// ContributorCounts explains why a fairness score is not 100. The
// counters are informational: they are computed independently of the
// score arithmetic and never feed back into it.
type ContributorCounts struct {
	EveningsOverCap     int `json:"evenings_over_cap"`
	StackingViolations  int `json:"stacking_violations"`
	DislikedAssignments int `json:"disliked_assignments"`
}

// PersonFairness is the per-person breakdown of a fairness report.
type PersonFairness struct {
	PersonID    uuid.UUID `json:"person_id"`
	DisplayName string    `json:"display_name"`

	ActualMinutes int `json:"actual_minutes"`
	TargetMinutes int `json:"target_minutes"`

	ActualPoints float64 `json:"actual_points"`
	TargetPoints float64 `json:"target_points"`

	ActualShare float64 `json:"actual_share"`
	TargetShare float64 `json:"target_share"`
	ShareDelta  float64 `json:"share_delta"`

	Contributors ContributorCounts `json:"contributors"`
}

// FairnessReport scores how close a week's assignments came to each
// person's target share. It is derived data, recomputed fresh for every
// run and never persisted by the planner itself.
type FairnessReport struct {
	// Score is the aggregate fairness score, bounded to [20, 98] for
	// households with two or more people and fixed at 85 otherwise.
	Score int          `json:"score"`
	Band  FairnessBand `json:"band"`

	// PerPerson is empty for households with fewer than two eligible
	// people, where fairness is undefined.
	PerPerson []PersonFairness `json:"per_person,omitempty"`
}

// BandForScore maps a fairness score to its color band.
func BandForScore(score int) FairnessBand {
	switch {
	case score >= 80:
		return FairnessBandGood
	case score >= 60:
		return FairnessBandOkay
	default:
		return FairnessBandPoor
	}
}
