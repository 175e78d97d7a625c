package core

import "errors"

// Sentinel error kinds (§7). Callers test with errors.Is; some are
// scene-fatal (returned up through the barn coordinator) and some are
// per-cow recoverable (carried on the Cow and logged, never panicking).
var (
	// ErrEmptyLayout means a layout places no areas at all; layout
	// validation returns it before compiling. Scene-fatal. The activity
	// selector does not return it: a layout with no choosable area
	// reachable from the current activity yields ErrNoEligibleActivity.
	ErrEmptyLayout = errors.New("core: empty layout")

	// ErrInvalidLayout means a placed area hangs off the grid, or carries
	// an orientation its type disallows. Scene-fatal.
	ErrInvalidLayout = errors.New("core: invalid layout")

	// ErrNoEligibleActivity means the Markov chain's rejection sampler
	// exhausted every choosable type reachable from the current state
	// without finding one present on the map. Per-cow recoverable: the
	// cow falls back to Idling.
	ErrNoEligibleActivity = errors.New("core: no eligible activity")

	// ErrPathNotFound means the RRT planner exceeded its iteration cap
	// without connecting start to goal. Per-cow recoverable.
	ErrPathNotFound = errors.New("core: path not found")

	// ErrSpawnInfeasible means cow spawning exhausted its retry budget
	// before placing every requested cow. Scene-fatal for the cows that
	// could not be placed; the barn coordinator reports how many
	// succeeded.
	ErrSpawnInfeasible = errors.New("core: spawn infeasible")
)
