package planner

import "time"

// Params defines all configurable policy knobs for the planner. The
// values are policy, not physics: households may tune how strongly the
// scheduler chases proportional equality versus honoring comfort
// preferences.
type Params struct {
	// Lambda controls the weight of the proportional fairness term
	// relative to the soft comfort penalties.
	Lambda float64

	// DifficultyWeights converts task minutes into workload points:
	// points = minutes * weight[difficulty].
	DifficultyWeights map[int]float64

	// Hard evening overload: a candidate is rejected outright only when
	// the assignment would push the person over BOTH caps at once.
	EveningCapMinutes int
	EveningCapTasks   int

	// WeeknightCapMinutes is the default per-person weeknight cap,
	// applied when a person declares none.
	WeeknightCapMinutes int

	// Soft penalty weights.
	WeeknightCapPenalty float64 // exceeding the personal weeknight cap
	EveningStackPenalty float64 // 3rd+ task in one evening window
	DayStackPenalty     float64 // 4th+ task in one calendar day
	DislikedPenalty     float64 // occurrence tag in the person's dislikes
	PairSameDayPenalty  float64 // pair group already held that date
	PairPatternPenalty  float64 // weekday outside the rotation pattern

	// Soft bonus weights (subtracted from the score).
	HeadroomBonus     float64
	HeadroomThreshold float64 // points above peer average to earn the bonus
	BusinessHourBonus float64 // 09:00-17:00 start
	DaytimeBonus      float64 // any pre-18:00 start

	// Day boundaries, minutes after local midnight.
	BusinessStartMinute int
	BusinessEndMinute   int
	EveningStartMinute  int

	// MaxOccurrences caps expansion output to bound worst-case runtime.
	MaxOccurrences int

	// RunBudget bounds the wall clock of one scheduling run. Exceeding
	// it truncates the run; it never aborts it.
	RunBudget time.Duration

	// Rebalancer knobs: minimum deviation improvement for a swap to be
	// worth proposing, and the maximum number of greedy swap rounds.
	SwapThreshold float64
	MaxSwaps      int
}

// ParamsConfig allows overriding the default knobs when creating a new
// Params instance. Zero values mean "keep the default".
type ParamsConfig struct {
	Lambda float64

	EveningCapMinutes   int
	EveningCapTasks     int
	WeeknightCapMinutes int

	WeeknightCapPenalty float64
	EveningStackPenalty float64
	DayStackPenalty     float64
	DislikedPenalty     float64
	PairSameDayPenalty  float64
	PairPatternPenalty  float64

	HeadroomBonus     float64
	HeadroomThreshold float64
	BusinessHourBonus float64
	DaytimeBonus      float64

	MaxOccurrences int
	RunBudget      time.Duration

	SwapThreshold float64
	MaxSwaps      int
}

// NewDefaultParams creates a new Params instance with the reference
// policy values.
func NewDefaultParams() *Params {
	return &Params{
		Lambda: 14,

		DifficultyWeights: map[int]float64{
			1: 1.0,
			2: 1.2,
			3: 1.5,
		},

		EveningCapMinutes:   40,
		EveningCapTasks:     2,
		WeeknightCapMinutes: 30,

		WeeknightCapPenalty: 5,
		EveningStackPenalty: 4,
		DayStackPenalty:     2,
		DislikedPenalty:     1,
		PairSameDayPenalty:  8,
		PairPatternPenalty:  8,

		HeadroomBonus:     1,
		HeadroomThreshold: 20,
		BusinessHourBonus: 1,
		DaytimeBonus:      1,

		BusinessStartMinute: 9 * 60,
		BusinessEndMinute:   17 * 60,
		EveningStartMinute:  18 * 60,

		MaxOccurrences: 500,
		RunBudget:      300 * time.Millisecond,

		SwapThreshold: 0.03,
		MaxSwaps:      3,
	}
}

// NewParams creates a new Params instance with custom configuration.
// Unset (zero) fields keep their defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.Lambda > 0 {
		params.Lambda = config.Lambda
	}

	if config.EveningCapMinutes > 0 {
		params.EveningCapMinutes = config.EveningCapMinutes
	}
	if config.EveningCapTasks > 0 {
		params.EveningCapTasks = config.EveningCapTasks
	}
	if config.WeeknightCapMinutes > 0 {
		params.WeeknightCapMinutes = config.WeeknightCapMinutes
	}

	if config.WeeknightCapPenalty > 0 {
		params.WeeknightCapPenalty = config.WeeknightCapPenalty
	}
	if config.EveningStackPenalty > 0 {
		params.EveningStackPenalty = config.EveningStackPenalty
	}
	if config.DayStackPenalty > 0 {
		params.DayStackPenalty = config.DayStackPenalty
	}
	if config.DislikedPenalty > 0 {
		params.DislikedPenalty = config.DislikedPenalty
	}
	if config.PairSameDayPenalty > 0 {
		params.PairSameDayPenalty = config.PairSameDayPenalty
	}
	if config.PairPatternPenalty > 0 {
		params.PairPatternPenalty = config.PairPatternPenalty
	}

	if config.HeadroomBonus > 0 {
		params.HeadroomBonus = config.HeadroomBonus
	}
	if config.HeadroomThreshold > 0 {
		params.HeadroomThreshold = config.HeadroomThreshold
	}
	if config.BusinessHourBonus > 0 {
		params.BusinessHourBonus = config.BusinessHourBonus
	}
	if config.DaytimeBonus > 0 {
		params.DaytimeBonus = config.DaytimeBonus
	}

	if config.MaxOccurrences > 0 {
		params.MaxOccurrences = config.MaxOccurrences
	}
	if config.RunBudget > 0 {
		params.RunBudget = config.RunBudget
	}

	if config.SwapThreshold > 0 {
		params.SwapThreshold = config.SwapThreshold
	}
	if config.MaxSwaps > 0 {
		params.MaxSwaps = config.MaxSwaps
	}

	return params
}

// difficultyWeight returns the workload weight for a difficulty tier,
// falling back to 1.0 for tiers outside the configured map.
func (p *Params) difficultyWeight(difficulty int) float64 {
	if w, ok := p.DifficultyWeights[difficulty]; ok {
		return w
	}
	return 1.0
}

// units converts a duration and difficulty into workload points, the
// common currency used to compare tasks of different difficulty.
func (p *Params) units(durationMinutes, difficulty int) float64 {
	return float64(durationMinutes) * p.difficultyWeight(difficulty)
}
