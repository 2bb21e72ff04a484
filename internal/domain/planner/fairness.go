package planner

import (
	"math"
	"sort"

	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/domain"
)

// neutralScore is the fixed fairness score for households where
// fairness is undefined (fewer than two eligible people).
const neutralScore = 85

// Score arithmetic bounds.
const (
	scoreBase = 95
	scoreMin  = 20
	scoreMax  = 98
)

// loadTotals is the per-person accumulation over an assignment list,
// used by both the fairness scorer and the rebalancer.
type loadTotals struct {
	points       map[string]float64
	minutes      map[string]int
	totalPoints  float64
	totalMinutes int
}

// eligibleSet is the sorted eligible people of a run with their derived
// target shares.
type eligibleSet struct {
	order       []string
	people      map[string]*domain.Person
	targetShare map[string]float64
	totalBudget int
}

// scoreFairness computes the fairness report for a final assignment
// list. For households with fewer than two eligible people it returns
// the fixed neutral score with no breakdown; fairness is undefined for
// a single-person household.
func scoreFairness(
	occurrences []domain.Occurrence,
	people []domain.Person,
	params *Params,
) domain.FairnessReport {
	eligible := newEligibleSet(people)
	if len(eligible.order) < 2 {
		return domain.FairnessReport{
			Score: neutralScore,
			Band:  domain.BandForScore(neutralScore),
		}
	}

	totals := accumulateLoad(occurrences, eligible, params)
	deviation := shareDeviation(totals, eligible)
	score := scoreFromDeviation(deviation)

	report := domain.FairnessReport{
		Score: score,
		Band:  domain.BandForScore(score),
	}

	contributors := countContributors(occurrences, eligible, params)

	for _, id := range eligible.order {
		p := eligible.people[id]
		target := eligible.targetShare[id]

		actualShare := 0.0
		if totals.totalPoints > 0 {
			actualShare = totals.points[id] / totals.totalPoints
		} else {
			// An empty plan is trivially proportional.
			actualShare = target
		}

		report.PerPerson = append(report.PerPerson, domain.PersonFairness{
			PersonID:      p.ID,
			DisplayName:   p.DisplayName,
			ActualMinutes: totals.minutes[id],
			TargetMinutes: int(math.Round(float64(totals.totalMinutes) * target)),
			ActualPoints:  totals.points[id],
			TargetPoints:  totals.totalPoints * target,
			ActualShare:   actualShare,
			TargetShare:   target,
			ShareDelta:    actualShare - target,
			Contributors:  contributors[id],
		})
	}

	return report
}

// newEligibleSet filters out malformed person records and derives target
// shares from the remaining budgets. The ordering is sorted by ID so
// every consumer iterates deterministically.
func newEligibleSet(people []domain.Person) eligibleSet {
	set := eligibleSet{
		people:      make(map[string]*domain.Person),
		targetShare: make(map[string]float64),
	}

	for i := range people {
		p := &people[i]
		if err := p.Validate(); err != nil {
			continue
		}
		id := p.ID.String()
		set.people[id] = p
		set.order = append(set.order, id)
		set.totalBudget += p.WeeklyBudgetMinutes
	}
	sort.Strings(set.order)

	for _, id := range set.order {
		if set.totalBudget > 0 {
			set.targetShare[id] = float64(set.people[id].WeeklyBudgetMinutes) / float64(set.totalBudget)
		}
	}

	return set
}

// accumulateLoad sums assigned minutes and workload points per person.
// Backlog and unassigned occurrences carry no load.
func accumulateLoad(occurrences []domain.Occurrence, eligible eligibleSet, params *Params) loadTotals {
	totals := loadTotals{
		points:  make(map[string]float64),
		minutes: make(map[string]int),
	}

	for i := range occurrences {
		occ := &occurrences[i]
		if occ.Status != domain.OccurrenceStatusAssigned {
			continue
		}
		id := occ.AssigneeID.String()
		if _, ok := eligible.people[id]; !ok {
			continue
		}

		units := params.units(occ.DurationMinutes, occ.Difficulty)
		totals.points[id] += units
		totals.minutes[id] += occ.DurationMinutes
		totals.totalPoints += units
		totals.totalMinutes += occ.DurationMinutes
	}

	return totals
}

// shareDeviation is the aggregate distance from proportionality:
// the sum over all people of |actual share - target share|.
func shareDeviation(totals loadTotals, eligible eligibleSet) float64 {
	if totals.totalPoints == 0 {
		return 0
	}

	var deviation float64
	for _, id := range eligible.order {
		deviation += math.Abs(totals.points[id]/totals.totalPoints - eligible.targetShare[id])
	}
	return deviation
}

// scoreFromDeviation converts an aggregate deviation into the bounded
// 0-100 style score: clamp(round(95 - deviation*100), 20, 98).
func scoreFromDeviation(deviation float64) int {
	score := int(math.Round(scoreBase - deviation*100))
	if score < scoreMin {
		return scoreMin
	}
	if score > scoreMax {
		return scoreMax
	}
	return score
}

// countContributors attributes each assigned occurrence to the comfort
// buckets that explain a low score: evenings over the personal cap,
// evening stacking, and disliked assignments. The counters are
// informational only and never feed back into the score; an occurrence
// adds at most one to any single bucket.
func countContributors(
	occurrences []domain.Occurrence,
	eligible eligibleSet,
	params *Params,
) map[string]domain.ContributorCounts {
	counts := make(map[string]domain.ContributorCounts, len(eligible.order))

	type eveningState struct {
		minutes int
		tasks   int
	}
	type personDate struct {
		id   string
		date domain.Date
	}
	evenings := make(map[personDate]eveningState)

	for i := range occurrences {
		occ := &occurrences[i]
		if occ.Status != domain.OccurrenceStatusAssigned {
			continue
		}
		id := occ.AssigneeID.String()
		p, ok := eligible.people[id]
		if !ok {
			continue
		}

		c := counts[id]

		if occ.StartMinute >= params.EveningStartMinute {
			key := personDate{id: id, date: occ.Date}
			state := evenings[key]
			state.minutes += occ.DurationMinutes
			state.tasks++
			evenings[key] = state

			if state.minutes > weeknightCap(p, params) {
				c.EveningsOverCap++
			}
			if state.tasks >= 3 || state.minutes >= 60 {
				c.StackingViolations++
			}
		}

		if tagsIntersect(occ.Tags, "", p.DislikedTags) {
			c.DislikedAssignments++
		}

		counts[id] = c
	}

	return counts
}
