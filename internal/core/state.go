package core

// CowState is the cow agent's state-machine tag (§4.F).
type CowState int

const (
	Starting CowState = iota
	Translating
	InActivity
	Idling
)

func (s CowState) String() string {
	switch s {
	case Starting:
		return "Starting"
	case Translating:
		return "Translating"
	case InActivity:
		return "InActivity"
	case Idling:
		return "Idling"
	default:
		return "Unknown"
	}
}

// NumActivities is the number of choosable activity types (§4.E):
// Cubicle, Milker, Feeder, Concentrate, Drinker.
const NumActivities = 5

// ActivityDurationTicks are the per-activity dwell durations in ticks
// before multiplication by the tunable ActivityFactor (§4.E). Index order
// matches AreaType's choosable prefix: Cubicle, Milker, Feeder,
// Concentrate, Drinker.
var ActivityDurationTicks = [NumActivities]float64{70, 8, 36.5, 9.74, 4.5}

// DefaultActivityFactor is F in ACTIVITY_DURATION * F (§4.E); with the
// base durations above it yields {4200, 480, 2190, 584, 270} ticks.
const DefaultActivityFactor = 60.0

// TransitionMatrix is the 5x5 Markov chain over activity indices (§4.E).
// Row i is the PMF of the next activity given current activity i.
var TransitionMatrix = [NumActivities][NumActivities]float64{
	{0.10, 0.30, 0.19, 0.05, 0.36},
	{0.27, 0.01, 0.43, 0.20, 0.09},
	{0.75, 0.01, 0.03, 0.05, 0.16},
	{0.50, 0.01, 0.35, 0.03, 0.11},
	{0.30, 0.20, 0.30, 0.15, 0.05},
}

// Cow agent kinematic/geometry constants (§4.F).
const (
	CowHeight         = 14.0
	CowWidth          = 2.0
	CowRoundedRadius  = 7.0
	CowWheelbase      = 10.0
	CowMaxSpeed       = 30.0
	CowMaxSteering    = 1.0 // radians
	CowArrivalRadius  = 48.0
	CowSteerGainKV    = 0.5
	CowSpawnInflate   = 42.0
	DefaultMaxSpawnAttempts = 10000
	DefaultMaxRRTIterations = 10000
)
