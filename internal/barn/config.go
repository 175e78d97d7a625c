package barn

import "github.com/dairytech/barnsim/internal/algo"

// Config is the tuning surface the host (layout editor, CLI, benchmark
// harness) provides (§6): cow count, evasive-steering probability, grid
// dimensions, the activity-duration factor, and an RNG seed for
// deterministic replay.
type Config struct {
	NumberOfCows     int     `json:"numberOfCows"`
	EvadeProbability float64 `json:"evadeProbability"` // in [0,1]
	GridColumns      int     `json:"gridColumns"`
	GridRows         int     `json:"gridRows"`
	ActivityFactor   float64 `json:"activityFactor"`
	Seed             int64   `json:"seed"`

	// MaxSpawnAttempts and Planner bound the two previously-unbounded
	// retry loops in the source (§4.D, §4.F, §7); zero values fall back
	// to core's defaults.
	MaxSpawnAttempts int                 `json:"maxSpawnAttempts"`
	Planner          algo.PlannerOptions `json:"planner"`
}

// DefaultConfig returns the tuning values used unless the host overrides
// them, mirroring the original source's defaults where one is given
// (ACTIVITY_FACTOR = 60, evade_probability = 75%).
func DefaultConfig() Config {
	return Config{
		NumberOfCows:     20,
		EvadeProbability: 0.75,
		GridColumns:      20,
		GridRows:         20,
		ActivityFactor:   60,
		Seed:             42,
		MaxSpawnAttempts: 10000,
		Planner:          algo.DefaultPlannerOptions(),
	}
}
