package planner

import (
	"hash/fnv"
	"sort"
	"time"

	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/domain"

	"github.com/google/uuid"
)

// Context is the running state of a single scheduling run: accumulated
// load, per-date evening and day counters, and pair-group rotation
// state. A Context is owned exclusively by one run and discarded
// afterwards; it is never shared, never package-level.
//
// Invariant: the sum of per-person load always equals totalLoad.
type Context struct {
	weekStart domain.Date

	// people eligible for assignment, keyed by ID string, plus a stable
	// sorted ordering used everywhere a deterministic iteration is
	// required.
	people map[string]*domain.Person
	order  []string

	load            map[string]float64
	eveningMinutes  map[string]map[domain.Date]int
	eveningTasks    map[string]map[domain.Date]int
	dayTasks        map[string]map[domain.Date]int
	weeknightPoints map[string]float64

	// pairDayAssignee tracks which person already holds a pair group on
	// a given date; pairParity holds each person's allowed weekday
	// parity per pair group, fixed up front from the idempotency key.
	pairDayAssignee map[string]map[domain.Date]string
	pairParity      map[string]map[string]int

	totalLoad   float64
	targetShare map[string]float64
	totalBudget int
}

// newContext builds the private state for one scheduling run. Malformed
// person records are skipped; pair rotation patterns are derived from
// the idempotency key so identical keys yield identical rotations.
func newContext(
	people []domain.Person,
	occurrences []domain.Occurrence,
	weekStart domain.Date,
	idempotencyKey string,
	params *Params,
) *Context {
	ctx := &Context{
		weekStart:       weekStart,
		people:          make(map[string]*domain.Person),
		load:            make(map[string]float64),
		eveningMinutes:  make(map[string]map[domain.Date]int),
		eveningTasks:    make(map[string]map[domain.Date]int),
		dayTasks:        make(map[string]map[domain.Date]int),
		weeknightPoints: make(map[string]float64),
		pairDayAssignee: make(map[string]map[domain.Date]string),
		pairParity:      make(map[string]map[string]int),
		targetShare:     make(map[string]float64),
	}

	for i := range people {
		p := &people[i]
		if err := p.Validate(); err != nil {
			continue
		}
		id := p.ID.String()
		ctx.people[id] = p
		ctx.order = append(ctx.order, id)
		ctx.totalBudget += p.WeeklyBudgetMinutes
	}
	sort.Strings(ctx.order)

	for _, id := range ctx.order {
		if ctx.totalBudget > 0 {
			ctx.targetShare[id] = float64(ctx.people[id].WeeklyBudgetMinutes) / float64(ctx.totalBudget)
		}
		ctx.load[id] = 0
		ctx.eveningMinutes[id] = make(map[domain.Date]int)
		ctx.eveningTasks[id] = make(map[domain.Date]int)
		ctx.dayTasks[id] = make(map[domain.Date]int)
	}

	for i := range occurrences {
		group := occurrences[i].PairGroup
		if group == "" || ctx.pairParity[group] != nil {
			continue
		}
		ctx.pairParity[group] = rotationPattern(group, idempotencyKey, ctx.order)
	}

	return ctx
}

// rotationPattern assigns each person an allowed weekday parity for a
// pair group. The offset comes from hashing the idempotency key with the
// group name, which makes the rotation arbitrary but reproducible: who
// starts the drop-off/pick-up alternation changes with the key, never
// between two runs with the same key.
func rotationPattern(group, idempotencyKey string, order []string) map[string]int {
	h := fnv.New32a()
	h.Write([]byte(idempotencyKey))
	h.Write([]byte{'|'})
	h.Write([]byte(group))
	offset := int(h.Sum32() % 2)

	pattern := make(map[string]int, len(order))
	for rank, id := range order {
		pattern[id] = (rank + offset) % 2
	}
	return pattern
}

// dayParity returns the alternation parity of a date relative to the
// week start.
func (c *Context) dayParity(date domain.Date) int {
	days := int(date.Time().Sub(c.weekStart.Time()).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days % 2
}

// eligible reports whether the run has any eligible people at all.
func (c *Context) eligible() bool {
	return len(c.order) > 0
}

// apply commits an assignment to the running state: load, evening and
// day counters, weeknight points and the pair-group day tracker.
func (c *Context) apply(occ *domain.Occurrence, personID string, params *Params) {
	units := params.units(occ.DurationMinutes, occ.Difficulty)

	c.load[personID] += units
	c.totalLoad += units

	c.dayTasks[personID][occ.Date]++

	if occ.StartMinute >= params.EveningStartMinute {
		c.eveningMinutes[personID][occ.Date] += occ.DurationMinutes
		c.eveningTasks[personID][occ.Date]++
		if isWeeknight(occ.Date) {
			c.weeknightPoints[personID] += units
		}
	}

	if occ.PairGroup != "" {
		if c.pairDayAssignee[occ.PairGroup] == nil {
			c.pairDayAssignee[occ.PairGroup] = make(map[domain.Date]string)
		}
		c.pairDayAssignee[occ.PairGroup][occ.Date] = personID
	}
}

// weeknightLoad is the total difficulty-weighted load committed to
// weeknight evenings so far, across all people. It summarizes how much
// of the week's burden landed in the most contested slots.
func (c *Context) weeknightLoad() float64 {
	var total float64
	for _, points := range c.weeknightPoints {
		total += points
	}
	return total
}

// remainingBudget is the person's declared weekly budget minus the
// points already carried. Budgets are minutes and load is points; the
// mix is deliberate policy, matching how headroom is compared against
// the peer average.
func (c *Context) remainingBudget(personID string) float64 {
	return float64(c.people[personID].WeeklyBudgetMinutes) - c.load[personID]
}

// peerAverageHeadroom is the mean remaining budget of everyone except
// the given person. With a single person it returns that person's own
// headroom so the comparison never divides by zero.
func (c *Context) peerAverageHeadroom(personID string) float64 {
	if len(c.order) < 2 {
		return c.remainingBudget(personID)
	}

	var sum float64
	for _, id := range c.order {
		if id == personID {
			continue
		}
		sum += c.remainingBudget(id)
	}
	return sum / float64(len(c.order)-1)
}

// weeknightCap returns the person's weeknight cap in minutes, falling
// back to the policy default.
func weeknightCap(p *domain.Person, params *Params) int {
	if p.WeeknightCapMinutes > 0 {
		return p.WeeknightCapMinutes
	}
	return params.WeeknightCapMinutes
}

// isWeeknight reports whether the date is Monday through Friday.
func isWeeknight(date domain.Date) bool {
	wd := date.Weekday()
	return wd != time.Sunday && wd != time.Saturday
}

// personID parses an ID string back to a uuid for the assignment record.
func personID(id string) uuid.UUID {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
