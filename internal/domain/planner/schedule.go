package planner

import (
	"log/slog"
	"sort"
	"time"

	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/domain"
)

// scoreEpsilon is the tolerance under which two candidate scores count
// as tied and the deterministic tie-break order applies.
const scoreEpsilon = 1e-9

// scheduleResult is the outcome of one greedy scheduling pass.
type scheduleResult struct {
	occurrences []domain.Occurrence
	truncated   bool
}

// scheduleWeek assigns every occurrence to a person or to the backlog.
//
// Occurrences are placed hardest-first (difficulty desc, duration desc,
// ID asc): harder and longer tasks are committed while load information
// is least skewed, which lowers the chance they strand without a good
// candidate late in the run. Ties between candidates break on remaining
// budget headroom, then fewer tasks already held that date, then lowest
// person ID; never on map order or randomness.
//
// The run is bounded by params.RunBudget of wall clock. On overrun the
// remaining occurrences move to the backlog and the result is flagged
// truncated; the overrun is logged, never raised.
func scheduleWeek(
	occurrences []domain.Occurrence,
	ctx *Context,
	params *Params,
	log *slog.Logger,
	now func() time.Time,
) scheduleResult {
	scheduled := make([]domain.Occurrence, len(occurrences))
	copy(scheduled, occurrences)

	order := make([]*domain.Occurrence, len(scheduled))
	for i := range scheduled {
		order[i] = &scheduled[i]
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a.Difficulty != b.Difficulty {
			return a.Difficulty > b.Difficulty
		}
		if a.DurationMinutes != b.DurationMinutes {
			return a.DurationMinutes > b.DurationMinutes
		}
		return a.ID < b.ID
	})

	deadline := now().Add(params.RunBudget)
	truncated := false

	for i, occ := range order {
		if now().After(deadline) {
			truncated = true
			for _, rest := range order[i:] {
				rest.MoveToBacklog()
			}
			log.Warn("scheduling run exceeded wall-clock budget, returning partial plan",
				slog.Duration("budget", params.RunBudget),
				slog.Int("scheduled", i),
				slog.Int("backlogged", len(order)-i))
			break
		}

		best, finite := pickCandidate(occ, ctx, params)
		if finite == 0 {
			occ.MoveToBacklog()
			continue
		}

		reasons := best.reasons
		if finite == 1 {
			reasons = append(reasons, domain.ReasonOnlyCandidate)
		}

		occ.Assign(personID(best.personID), reasons)
		ctx.apply(occ, best.personID, params)
	}

	return scheduleResult{occurrences: scheduled, truncated: truncated}
}

// pickCandidate scores every eligible person for the occurrence and
// returns the best candidate plus the number of non-rejected candidates.
// A zero count means every person was hard-rejected and the occurrence
// belongs in the backlog.
func pickCandidate(occ *domain.Occurrence, ctx *Context, params *Params) (candidate, int) {
	var best candidate
	finite := 0

	for _, id := range ctx.order {
		cand := evaluateCandidate(ctx.people[id], occ, ctx, params)
		if cand.hardReject {
			continue
		}

		finite++
		if finite == 1 || betterCandidate(cand, best, occ, ctx) {
			best = cand
		}
	}

	return best, finite
}

// betterCandidate reports whether a beats b under the score and the
// deterministic tie-break chain.
func betterCandidate(a, b candidate, occ *domain.Occurrence, ctx *Context) bool {
	if a.score < b.score-scoreEpsilon {
		return true
	}
	if a.score > b.score+scoreEpsilon {
		return false
	}

	// Tied on score: prefer more remaining budget headroom.
	ha, hb := ctx.remainingBudget(a.personID), ctx.remainingBudget(b.personID)
	if ha != hb {
		return ha > hb
	}

	// Then fewer tasks already held on that date.
	ta, tb := ctx.dayTasks[a.personID][occ.Date], ctx.dayTasks[b.personID][occ.Date]
	if ta != tb {
		return ta < tb
	}

	// Then lowest person ID.
	return a.personID < b.personID
}
