package planner

import (
	"testing"

	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/domain"
)

func TestContextWeeknightLoad(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	a := testPerson(1, "Alex", 300)
	b := testPerson(2, "Bo", 300)
	ctx := newContext([]domain.Person{a, b}, nil, monday, "k", params)

	// Only the Monday evening assignment counts: Saturday is not a
	// weeknight and the Tuesday slot is before the evening boundary.
	weeknight := assignedOccurrence(1, a.ID, monday, params.EveningStartMinute, 30, 2)
	weekend := assignedOccurrence(2, b.ID, monday.AddDays(5), params.EveningStartMinute, 30, 1)
	daytime := assignedOccurrence(3, b.ID, monday.AddDays(1), 10*60, 30, 1)

	ctx.apply(&weeknight, a.ID.String(), params)
	ctx.apply(&weekend, b.ID.String(), params)
	ctx.apply(&daytime, b.ID.String(), params)

	want := params.units(30, 2)
	if got := ctx.weeknightLoad(); got != want {
		t.Errorf("expected weeknight load %v, got %v", want, got)
	}
}
