package planner

import (
	"strings"

	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/domain"
)

// candidate is the outcome of scoring one person for one occurrence.
// A hard-rejected candidate can never be assigned regardless of score.
type candidate struct {
	personID   string
	score      float64
	reasons    []domain.AssignmentReason
	hardReject bool
}

// evaluateCandidate scores a (person, occurrence, context) triple. It is
// a pure function: it never mutates the context.
//
// The score is the proportional fairness penalty plus soft comfort
// penalties minus soft bonuses. Lower is better. Hard constraints do not
// contribute to the score; they disqualify the candidate outright.
func evaluateCandidate(
	p *domain.Person,
	occ *domain.Occurrence,
	ctx *Context,
	params *Params,
) candidate {
	id := p.ID.String()

	if overlapsUnavailability(p, occ) || hitsNoGo(p, occ) || overloadsEvening(p, occ, ctx, params) {
		return candidate{personID: id, hardReject: true}
	}

	var reasons []domain.AssignmentReason

	score := fairnessTerm(id, occ, ctx, params)
	if shareAfter(id, occ, ctx, params) <= ctx.targetShare[id] {
		reasons = append(reasons, domain.ReasonFairShare)
	}

	score += softPenalties(p, occ, ctx, params)

	bonus, bonusReasons := softBonuses(id, occ, ctx, params)
	score -= bonus
	reasons = append(reasons, bonusReasons...)

	if occ.PairGroup != "" && ctx.pairParity[occ.PairGroup][id] == ctx.dayParity(occ.Date) {
		reasons = append(reasons, domain.ReasonPairRotation)
	}

	return candidate{personID: id, score: score, reasons: reasons}
}

// overlapsUnavailability reports whether the occurrence's time window
// intersects any of the person's unavailability windows on that weekday.
func overlapsUnavailability(p *domain.Person, occ *domain.Occurrence) bool {
	weekday := occ.Date.Weekday()
	for _, w := range p.Unavailability {
		if w.Weekday != weekday {
			continue
		}
		if occ.StartMinute < w.EndMinute && w.StartMinute < occ.EndMinute {
			return true
		}
	}
	return false
}

// hitsNoGo reports whether the occurrence's tags or task name intersect
// the person's no-go list. Matching is case-insensitive.
func hitsNoGo(p *domain.Person, occ *domain.Occurrence) bool {
	return tagsIntersect(occ.Tags, occ.TaskName, p.NoGoTags)
}

// overloadsEvening reports whether the assignment would push the person
// over both the evening-minutes cap and the evening-task-count cap at
// once. Exceeding only one of the two stays a soft matter.
func overloadsEvening(p *domain.Person, occ *domain.Occurrence, ctx *Context, params *Params) bool {
	if occ.StartMinute < params.EveningStartMinute {
		return false
	}

	id := p.ID.String()
	minutesAfter := ctx.eveningMinutes[id][occ.Date] + occ.DurationMinutes
	tasksAfter := ctx.eveningTasks[id][occ.Date] + 1

	return minutesAfter > params.EveningCapMinutes && tasksAfter > params.EveningCapTasks
}

// shareAfter computes the person's hypothetical share of total load if
// this occurrence were assigned to them.
func shareAfter(personID string, occ *domain.Occurrence, ctx *Context, params *Params) float64 {
	units := params.units(occ.DurationMinutes, occ.Difficulty)
	return (ctx.load[personID] + units) / (ctx.totalLoad + units)
}

// fairnessTerm is the proportional fairness penalty: how far the
// assignment would move the person from their target share, scaled by
// Lambda.
func fairnessTerm(personID string, occ *domain.Occurrence, ctx *Context, params *Params) float64 {
	delta := shareAfter(personID, occ, ctx, params) - ctx.targetShare[personID]
	if delta < 0 {
		delta = -delta
	}
	return params.Lambda * delta
}

// softPenalties sums the comfort penalties for the assignment.
func softPenalties(p *domain.Person, occ *domain.Occurrence, ctx *Context, params *Params) float64 {
	id := p.ID.String()
	var penalty float64

	evening := occ.StartMinute >= params.EveningStartMinute

	// Weeknight cap: accumulated evening minutes past the personal cap.
	if evening && isWeeknight(occ.Date) {
		if ctx.eveningMinutes[id][occ.Date]+occ.DurationMinutes > weeknightCap(p, params) {
			penalty += params.WeeknightCapPenalty
		}
	}

	// 3rd or later task in one evening window.
	if evening && ctx.eveningTasks[id][occ.Date] >= 2 {
		penalty += params.EveningStackPenalty
	}

	// 4th or later task in one calendar day.
	if ctx.dayTasks[id][occ.Date] >= 3 {
		penalty += params.DayStackPenalty
	}

	if tagsIntersect(occ.Tags, "", p.DislikedTags) {
		penalty += params.DislikedPenalty
	}

	if occ.PairGroup != "" {
		// Same pair group twice on one day is effectively prohibitive.
		if ctx.pairDayAssignee[occ.PairGroup][occ.Date] == id {
			penalty += params.PairSameDayPenalty
		}
		if ctx.pairParity[occ.PairGroup][id] != ctx.dayParity(occ.Date) {
			penalty += params.PairPatternPenalty
		}
	}

	return penalty
}

// softBonuses sums the bonuses for the assignment and reports the
// rationale reasons they justify.
func softBonuses(
	personID string,
	occ *domain.Occurrence,
	ctx *Context,
	params *Params,
) (float64, []domain.AssignmentReason) {
	var bonus float64
	var reasons []domain.AssignmentReason

	if ctx.remainingBudget(personID) > ctx.peerAverageHeadroom(personID)+params.HeadroomThreshold {
		bonus += params.HeadroomBonus
		reasons = append(reasons, domain.ReasonMoreRemaining)
	}

	// Daytime slots are cheap: one bonus for any pre-evening start,
	// stacked with another inside business hours.
	if occ.StartMinute < params.EveningStartMinute {
		bonus += params.DaytimeBonus
		if occ.StartMinute >= params.BusinessStartMinute && occ.StartMinute < params.BusinessEndMinute {
			bonus += params.BusinessHourBonus
		}
		reasons = append(reasons, domain.ReasonDaytimeFlex)
	}

	return bonus, reasons
}

// tagsIntersect reports whether any of the occurrence tags, or the
// optional extra name, appear in the person's list. Comparison is
// case-insensitive.
func tagsIntersect(tags []string, name string, list []string) bool {
	if len(list) == 0 {
		return false
	}

	for _, entry := range list {
		if name != "" && strings.EqualFold(entry, name) {
			return true
		}
		for _, tag := range tags {
			if strings.EqualFold(entry, tag) {
				return true
			}
		}
	}
	return false
}
