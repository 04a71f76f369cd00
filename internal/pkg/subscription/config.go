package subscription

import "github.com/go-playground/validator/v10"

const (
	DefaultTrialDurationDays = 14
	DefaultGracePeriodDays   = 3
)

// Config holds the externally overridable lifecycle constants.
type Config struct {
	TrialDurationDays int    `env:"TRIAL_DURATION_DAYS" envDefault:"14" validate:"gte=1"`
	GracePeriodDays   int    `env:"GRACE_PERIOD_DAYS" envDefault:"3" validate:"gte=0"`
	TrialTier         string `env:"TRIAL_PLAN_TIER" envDefault:"starter" validate:"required"`
}

// DefaultConfig returns the built-in lifecycle constants.
func DefaultConfig() Config {
	return Config{
		TrialDurationDays: DefaultTrialDurationDays,
		GracePeriodDays:   DefaultGracePeriodDays,
		TrialTier:         string(DefaultTier),
	}
}

// TrialPlanTier resolves the configured trial-equivalent tier. The admin-only free
// tier is never accepted here because it would grant unlimited trials.
func (c Config) TrialPlanTier() Tier {
	t := NormalizeTier(c.TrialTier)
	if t == TierFree {
		return DefaultTier
	}
	return t
}

// Validate checks the parsed values.
func (c Config) Validate() error {
	return validator.New().Struct(c)
}
