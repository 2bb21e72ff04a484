package planner

import (
	"testing"
	"time"
)

func TestNewDefaultParams(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	if params.Lambda != 14 {
		t.Errorf("expected default lambda 14, got %v", params.Lambda)
	}
	if params.RunBudget != 300*time.Millisecond {
		t.Errorf("expected default run budget 300ms, got %v", params.RunBudget)
	}
	if params.MaxOccurrences != 500 {
		t.Errorf("expected default occurrence cap 500, got %d", params.MaxOccurrences)
	}
	if params.SwapThreshold != 0.03 || params.MaxSwaps != 3 {
		t.Errorf("unexpected rebalancer defaults: threshold %v, max swaps %d",
			params.SwapThreshold, params.MaxSwaps)
	}
}

func TestNewParamsOverrides(t *testing.T) {
	t.Parallel()

	params := NewParams(ParamsConfig{
		Lambda:         20,
		MaxOccurrences: 100,
		RunBudget:      time.Second,
	})

	if params.Lambda != 20 {
		t.Errorf("expected overridden lambda 20, got %v", params.Lambda)
	}
	if params.MaxOccurrences != 100 {
		t.Errorf("expected overridden cap 100, got %d", params.MaxOccurrences)
	}
	if params.RunBudget != time.Second {
		t.Errorf("expected overridden budget 1s, got %v", params.RunBudget)
	}

	// Untouched knobs keep their defaults.
	if params.WeeknightCapPenalty != 5 {
		t.Errorf("expected default weeknight penalty 5, got %v", params.WeeknightCapPenalty)
	}
	if params.EveningCapMinutes != 40 || params.EveningCapTasks != 2 {
		t.Errorf("unexpected evening caps: %d minutes, %d tasks",
			params.EveningCapMinutes, params.EveningCapTasks)
	}
}

func TestUnits(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name       string
		minutes    int
		difficulty int
		want       float64
	}{
		{name: "easy task is minutes at par", minutes: 30, difficulty: 1, want: 30},
		{name: "medium task weighs 1.2x", minutes: 30, difficulty: 2, want: 36},
		{name: "hard task weighs 1.5x", minutes: 30, difficulty: 3, want: 45},
		{name: "unknown difficulty falls back to par", minutes: 30, difficulty: 9, want: 30},
		{name: "zero difficulty falls back to par", minutes: 30, difficulty: 0, want: 30},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := params.units(tc.minutes, tc.difficulty); got != tc.want {
				t.Errorf("units(%d, %d) = %v, want %v", tc.minutes, tc.difficulty, got, tc.want)
			}
		})
	}
}
