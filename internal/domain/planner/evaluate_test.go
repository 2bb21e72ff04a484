package planner

import (
	"math"
	"testing"
	"time"

	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/domain"
)

func eveningOccurrence(date domain.Date, duration int) domain.Occurrence {
	return domain.Occurrence{
		ID:              "occ:" + date.String(),
		TaskID:          testUUID(1),
		TaskName:        "Tidy up",
		Category:        domain.CategoryOther,
		Date:            date,
		StartMinute:     18*60 + 30,
		EndMinute:       18*60 + 30 + duration,
		DurationMinutes: duration,
		Difficulty:      1,
		Status:          domain.OccurrenceStatusUnassigned,
	}
}

func TestHardRejectUnavailability(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	person := testPerson(1, "Alex", 300)
	person.Unavailability = []domain.UnavailabilityWindow{
		{Weekday: time.Monday, StartMinute: 18 * 60, EndMinute: 20 * 60},
	}

	occ := eveningOccurrence(monday, 30)
	ctx := newContext([]domain.Person{person}, nil, monday, "k", params)

	cand := evaluateCandidate(&person, &occ, ctx, params)
	if !cand.hardReject {
		t.Error("expected hard reject for an occurrence inside an unavailability window")
	}

	// The same window on another weekday does not block.
	tuesday := monday.AddDays(1)
	occ = eveningOccurrence(tuesday, 30)
	cand = evaluateCandidate(&person, &occ, ctx, params)
	if cand.hardReject {
		t.Error("unexpected hard reject outside the unavailability weekday")
	}

	// Windows that merely touch the occurrence boundary do not overlap.
	person.Unavailability = []domain.UnavailabilityWindow{
		{Weekday: time.Monday, StartMinute: 17 * 60, EndMinute: 18*60 + 30},
	}
	occ = eveningOccurrence(monday, 30)
	cand = evaluateCandidate(&person, &occ, ctx, params)
	if cand.hardReject {
		t.Error("unexpected hard reject for a window ending exactly at the occurrence start")
	}
}

func TestHardRejectNoGo(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	person := testPerson(1, "Alex", 300)
	person.NoGoTags = []string{"Ironing", "tidy up"}

	occ := eveningOccurrence(monday, 30)
	occ.Tags = []string{"ironing"}
	ctx := newContext([]domain.Person{person}, nil, monday, "k", params)

	cand := evaluateCandidate(&person, &occ, ctx, params)
	if !cand.hardReject {
		t.Error("expected hard reject when a tag matches the no-go list case-insensitively")
	}

	// Task name matches count too.
	occ.Tags = nil
	cand = evaluateCandidate(&person, &occ, ctx, params)
	if !cand.hardReject {
		t.Error("expected hard reject when the task name matches the no-go list")
	}
}

func TestHardRejectEveningOverloadNeedsBothCaps(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	person := testPerson(1, "Alex", 300)
	ctx := newContext([]domain.Person{person}, nil, monday, "k", params)
	id := person.ID.String()

	// One long evening task so far: minutes over the cap, count under it.
	ctx.eveningMinutes[id][monday] = 35
	ctx.eveningTasks[id][monday] = 1

	occ := eveningOccurrence(monday, 10)
	cand := evaluateCandidate(&person, &occ, ctx, params)
	if cand.hardReject {
		t.Error("exceeding only the minutes cap must stay a soft matter")
	}

	// Two short tasks so far: adding a third crosses the count cap, and
	// the minutes cap is crossed too, so both caps fail at once.
	ctx.eveningMinutes[id][monday] = 35
	ctx.eveningTasks[id][monday] = 2

	cand = evaluateCandidate(&person, &occ, ctx, params)
	if !cand.hardReject {
		t.Error("expected hard reject when both evening caps are exceeded simultaneously")
	}
}

func TestSoftPenalties(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	person := testPerson(1, "Alex", 300)
	other := testPerson(2, "Bo", 300)
	people := []domain.Person{person, other}

	occ := eveningOccurrence(monday, 25)

	testCases := []struct {
		name    string
		prepare func(ctx *Context, id string)
		occ     func() domain.Occurrence
		want    float64
	}{
		{
			name:    "weeknight cap exceeded",
			prepare: func(ctx *Context, id string) { ctx.eveningMinutes[id][monday] = 10 },
			occ:     func() domain.Occurrence { return occ }, // 10+25 > 30
			want:    params.WeeknightCapPenalty,
		},
		{
			name: "third evening task",
			prepare: func(ctx *Context, id string) {
				ctx.eveningTasks[id][monday] = 2
				ctx.dayTasks[id][monday] = 2
			},
			occ:  func() domain.Occurrence { o := eveningOccurrence(monday, 5); return o },
			want: params.EveningStackPenalty,
		},
		{
			name:    "fourth task of the day",
			prepare: func(ctx *Context, id string) { ctx.dayTasks[id][monday] = 3 },
			occ:     func() domain.Occurrence { o := eveningOccurrence(monday, 5); return o },
			want:    params.DayStackPenalty,
		},
		{
			name:    "disliked tag",
			prepare: func(ctx *Context, id string) {},
			occ: func() domain.Occurrence {
				o := eveningOccurrence(monday, 5)
				o.Tags = []string{"bathroom"}
				return o
			},
			want: params.DislikedPenalty,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := person
			p.DislikedTags = []string{"bathroom"}

			ctx := newContext(people, nil, monday, "k", params)
			tc.prepare(ctx, p.ID.String())

			o := tc.occ()
			got := softPenalties(&p, &o, ctx, params)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("expected penalty %v, got %v", tc.want, got)
			}
		})
	}
}

func TestSoftBonusesDaytimeStacking(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	person := testPerson(1, "Alex", 300)
	ctx := newContext([]domain.Person{person}, nil, monday, "k", params)
	id := person.ID.String()

	occ := eveningOccurrence(monday, 30)

	// Evening start earns nothing.
	bonus, _ := softBonuses(id, &occ, ctx, params)
	if bonus != 0 {
		t.Errorf("expected no bonus for an evening slot, got %v", bonus)
	}

	// 17:30 is pre-evening but outside business hours: one bonus.
	occ.StartMinute = 17*60 + 30
	bonus, reasons := softBonuses(id, &occ, ctx, params)
	if bonus != params.DaytimeBonus {
		t.Errorf("expected daytime bonus %v, got %v", params.DaytimeBonus, bonus)
	}
	if len(reasons) != 1 || reasons[0] != domain.ReasonDaytimeFlex {
		t.Errorf("expected daytime_flex rationale, got %v", reasons)
	}

	// 10:00 stacks the business-hours bonus on top.
	occ.StartMinute = 10 * 60
	bonus, _ = softBonuses(id, &occ, ctx, params)
	if bonus != params.DaytimeBonus+params.BusinessHourBonus {
		t.Errorf("expected stacked bonus %v, got %v", params.DaytimeBonus+params.BusinessHourBonus, bonus)
	}
}

func TestFairnessTerm(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	a := testPerson(1, "Alex", 300)
	b := testPerson(2, "Bo", 100)
	ctx := newContext([]domain.Person{a, b}, nil, monday, "k", params)

	occ := eveningOccurrence(monday, 40) // 40 units at difficulty 1

	// First assignment: shareAfter is 1.0 for whoever takes it.
	gotA := fairnessTerm(a.ID.String(), &occ, ctx, params)
	wantA := params.Lambda * math.Abs(1.0-0.75)
	if math.Abs(gotA-wantA) > 1e-9 {
		t.Errorf("expected fairness term %v for the larger budget, got %v", wantA, gotA)
	}

	gotB := fairnessTerm(b.ID.String(), &occ, ctx, params)
	wantB := params.Lambda * math.Abs(1.0-0.25)
	if math.Abs(gotB-wantB) > 1e-9 {
		t.Errorf("expected fairness term %v for the smaller budget, got %v", wantB, gotB)
	}

	if gotA >= gotB {
		t.Error("the person with the larger target share must score lower for the first task")
	}
}
