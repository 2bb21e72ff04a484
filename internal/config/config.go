package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Planner  PlannerConfig  `mapstructure:"planner"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// PlannerConfig tunes the scheduling policy. Every field is optional;
// zero values fall back to the reference policy defaults.
type PlannerConfig struct {
	// Lambda weights the proportional fairness term against the soft
	// comfort penalties.
	Lambda float64 `mapstructure:"lambda" validate:"gte=0"`

	// EveningCapMinutes and EveningCapTasks set the hard evening
	// overload caps; a candidate is rejected only when both would be
	// exceeded at once.
	EveningCapMinutes int `mapstructure:"evening_cap_minutes" validate:"gte=0"`
	EveningCapTasks   int `mapstructure:"evening_cap_tasks" validate:"gte=0"`

	// WeeknightCapMinutes is the default per-person weeknight cap for
	// people who declare none.
	WeeknightCapMinutes int `mapstructure:"weeknight_cap_minutes" validate:"gte=0"`

	// MaxOccurrences caps expansion output per week.
	MaxOccurrences int `mapstructure:"max_occurrences" validate:"gte=0"`

	// RunBudgetMillis bounds the wall clock of one scheduling run.
	RunBudgetMillis int `mapstructure:"run_budget_millis" validate:"gte=0"`

	// SwapThreshold and MaxSwaps tune the rebalancer.
	SwapThreshold float64 `mapstructure:"swap_threshold" validate:"gte=0"`
	MaxSwaps      int     `mapstructure:"max_swaps" validate:"gte=0"`
}
