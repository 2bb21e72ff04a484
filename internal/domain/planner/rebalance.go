package planner

import (
	"math"

	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/domain"
)

// swapCandidate is one hypothetical exchange of two occurrences between
// two people.
type swapCandidate struct {
	occA, occB  int // indexes into the working copy
	improvement float64
}

// rebalanceWeek searches an existing assignment list for pairwise swaps
// that reduce the aggregate deviation from proportionality. It never
// re-runs the scheduler and never mutates its input; the returned
// preview is a proposal for the caller to accept or discard.
//
// Unlike the plain share optimization it is derived from, the search
// re-runs the hard-reject checks on every candidate swap: an exchange
// that would hand someone a task inside their unavailability window or
// on their no-go list is skipped, not proposed.
func rebalanceWeek(
	occurrences []domain.Occurrence,
	people []domain.Person,
	params *Params,
) domain.RebalancePreview {
	eligible := newEligibleSet(people)

	working := make([]domain.Occurrence, len(occurrences))
	copy(working, occurrences)

	currentTotals := accumulateLoad(working, eligible, params)
	currentDeviation := shareDeviation(currentTotals, eligible)
	currentScore := scoreFromDeviation(currentDeviation)

	preview := domain.RebalancePreview{
		CurrentScore:   currentScore,
		ProjectedScore: currentScore,
		Swaps:          []domain.SwapProposal{},
	}

	if len(eligible.order) < 2 {
		preview.CurrentScore = neutralScore
		preview.ProjectedScore = neutralScore
		return preview
	}

	totals := currentTotals
	deviation := currentDeviation

	for round := 0; round < params.MaxSwaps; round++ {
		best, found := bestSwap(working, eligible, totals, params)
		if !found {
			break
		}

		a := &working[best.occA]
		b := &working[best.occB]

		preview.Swaps = append(preview.Swaps,
			domain.SwapProposal{
				OccurrenceID: a.ID,
				TaskName:     a.TaskName,
				Date:         a.Date,
				FromPersonID: a.AssigneeID,
				ToPersonID:   b.AssigneeID,
			},
			domain.SwapProposal{
				OccurrenceID: b.ID,
				TaskName:     b.TaskName,
				Date:         b.Date,
				FromPersonID: b.AssigneeID,
				ToPersonID:   a.AssigneeID,
			},
		)

		a.AssigneeID, b.AssigneeID = b.AssigneeID, a.AssigneeID

		totals = accumulateLoad(working, eligible, params)
		deviation = shareDeviation(totals, eligible)
	}

	preview.ProjectedScore = scoreFromDeviation(deviation)

	for _, id := range eligible.order {
		p := eligible.people[id]
		preview.PerPerson = append(preview.PerPerson, domain.PersonMinutes{
			PersonID:         p.ID,
			DisplayName:      p.DisplayName,
			CurrentMinutes:   currentTotals.minutes[id],
			ProjectedMinutes: totals.minutes[id],
			TargetMinutes: int(math.Round(
				float64(currentTotals.totalMinutes) * eligible.targetShare[id])),
		})
	}

	return preview
}

// bestSwap finds the single exchange with the largest deviation
// reduction strictly above the minimum threshold. Iteration order is fully
// deterministic: people in sorted ID order, occurrences in list order,
// and only strictly better candidates replace the incumbent.
func bestSwap(
	working []domain.Occurrence,
	eligible eligibleSet,
	totals loadTotals,
	params *Params,
) (swapCandidate, bool) {
	byPerson := make(map[string][]int, len(eligible.order))
	for i := range working {
		if working[i].Status != domain.OccurrenceStatusAssigned {
			continue
		}
		id := working[i].AssigneeID.String()
		if _, ok := eligible.people[id]; ok {
			byPerson[id] = append(byPerson[id], i)
		}
	}

	var best swapCandidate
	found := false

	for ai, idA := range eligible.order {
		for _, idB := range eligible.order[ai+1:] {
			for _, ia := range byPerson[idA] {
				for _, ib := range byPerson[idB] {
					improvement, ok := swapImprovement(working, ia, ib, idA, idB, eligible, totals, params)
					if !ok || improvement <= params.SwapThreshold {
						continue
					}
					if !found || improvement > best.improvement {
						best = swapCandidate{occA: ia, occB: ib, improvement: improvement}
						found = true
					}
				}
			}
		}
	}

	return best, found
}

// swapImprovement computes the deviation reduction of exchanging two
// occurrences, after confirming neither receiving person is
// hard-rejected for the task they would take on.
func swapImprovement(
	working []domain.Occurrence,
	ia, ib int,
	idA, idB string,
	eligible eligibleSet,
	totals loadTotals,
	params *Params,
) (float64, bool) {
	occA := &working[ia]
	occB := &working[ib]

	// Re-validate hard constraints for the receiving side of each half.
	if overlapsUnavailability(eligible.people[idB], occA) || hitsNoGo(eligible.people[idB], occA) {
		return 0, false
	}
	if overlapsUnavailability(eligible.people[idA], occB) || hitsNoGo(eligible.people[idA], occB) {
		return 0, false
	}

	unitsA := params.units(occA.DurationMinutes, occA.Difficulty)
	unitsB := params.units(occB.DurationMinutes, occB.Difficulty)
	if unitsA == unitsB {
		return 0, false
	}

	// Only the two traded people's deviation terms change; the total
	// load does not.
	total := totals.totalPoints
	if total == 0 {
		return 0, false
	}

	before := math.Abs(totals.points[idA]/total-eligible.targetShare[idA]) +
		math.Abs(totals.points[idB]/total-eligible.targetShare[idB])

	afterA := totals.points[idA] - unitsA + unitsB
	afterB := totals.points[idB] - unitsB + unitsA
	after := math.Abs(afterA/total-eligible.targetShare[idA]) +
		math.Abs(afterB/total-eligible.targetShare[idB])

	return before - after, true
}
