// Package cow implements the per-cow state machine and kinematic
// controller (component F): a cow alternates between picking a new
// activity, translating toward it along a planned path, and dwelling at
// it, with a recoverable Idling state when planning fails.
package cow

import (
	"math"
	"math/rand"

	"github.com/edaniels/golog"

	"github.com/dairytech/barnsim/internal/algo"
	"github.com/dairytech/barnsim/internal/core"
	"github.com/dairytech/barnsim/internal/physics"
)

// Cow owns the state §3 specifies: a body handle, its state-tag,
// current/previous activity, its goal, the path it's following and where
// along it, scalar speed/steering, and a dwell countdown, plus the last
// recoverable error and the tick it went Idling. It never mutates shared
// layout data.
type Cow struct {
	Body physics.BodyID

	State             core.CowState
	CurrentActivity   int
	PreviousActivity  int
	Goal              core.Vec2
	Path              core.Path
	WaypointIndex     int
	Speed             float64
	SteeringAngle     float64
	Dwell             int
	IdledSinceTick    int
	LastErr           error
}

// New creates a cow at Starting with its initial activity drawn uniformly
// from {0..3} (§4.F), not over all five — cubicle, milker, feeder and
// concentrate, never drinker, matching the original source's
// rand() % 4.
func New(body physics.BodyID, rng *rand.Rand) *Cow {
	return &Cow{
		Body:            body,
		State:           core.Starting,
		CurrentActivity: rng.Intn(4),
	}
}

// Context bundles the per-tick inputs a cow's Step needs that it does not
// own: the physics world, the read-only compiled map, the layout used for
// activity lookups, the shared RNG and logger, and the tunable activity
// duration factor.
type Context struct {
	World          physics.World
	Obstacles      []core.AABB
	WorldBounds    core.AABB
	Layout         algo.Layout
	RNG            *rand.Rand
	Logger         golog.Logger
	ActivityFactor float64
	PlannerOptions algo.PlannerOptions
	Tick           int
}

// Step advances the cow by exactly one tick according to the state table
// in §4.F. It never panics on a recoverable error (PathNotFound,
// NoEligibleActivity): those transition the cow to Idling and are
// recorded on LastErr for the caller to log or inspect.
func (c *Cow) Step(ctx Context) {
	switch c.State {
	case core.Starting:
		c.enterStarting(ctx)
	case core.Translating:
		c.stepTranslating(ctx)
	case core.InActivity:
		c.stepInActivity(ctx)
	case core.Idling:
		// External re-entry only; a coordinator may call Reawaken to
		// push the cow back to Starting on the next tick.
	}
}

// Reawaken moves an Idling cow back to Starting, to be retried with a
// fresh random seed/new goal on the next tick (§7 recovery policy).
func (c *Cow) Reawaken() {
	if c.State == core.Idling {
		c.State = core.Starting
		c.LastErr = nil
	}
}

// enterStarting performs Starting's entry action: read the current pose,
// pick the next goal via the activity selector, and plan a path to it. On
// success it transitions straight to Translating, since the table lists
// no step action for Starting ("always -> Translating").
func (c *Cow) enterStarting(ctx Context) {
	pos, _ := ctx.World.GetPose(c.Body)

	nextType, goal, err := algo.Pick(c.CurrentActivity, ctx.Layout, ctx.RNG, ctx.Logger)
	if err != nil {
		c.idle(ctx, err)
		return
	}

	path, err := algo.FindPath(pos, goal, ctx.Obstacles, ctx.WorldBounds, ctx.PlannerOptions, ctx.RNG, ctx.Logger)
	if err != nil {
		c.idle(ctx, err)
		return
	}

	c.PreviousActivity = c.CurrentActivity
	c.CurrentActivity = nextType.ActivityIndex()
	c.Goal = goal
	c.Path = path
	c.WaypointIndex = 0
	c.State = core.Translating
}

// idle records a per-cow recoverable failure and transitions to Idling
// (§7: PathNotFound and NoEligibleActivity are per-cow and recoverable).
func (c *Cow) idle(ctx Context, err error) {
	c.LastErr = err
	c.IdledSinceTick = ctx.Tick
	c.State = core.Idling
	if ctx.Logger != nil {
		ctx.Logger.Debugf("cow: idling on body %v: %v", c.Body, err)
	}
}

// stepTranslating runs the kinematic controller for one tick (§4.F):
// proportional speed toward the current waypoint, heading error clamped
// into a steering angle, written out as linear/angular velocity. Crossing
// the arrival radius of the final waypoint transitions to InActivity.
func (c *Cow) stepTranslating(ctx Context) {
	if len(c.Path) == 0 || c.WaypointIndex >= len(c.Path) {
		c.finishTranslating(ctx)
		return
	}

	pos, heading := ctx.World.GetPose(c.Body)
	target := c.Path[c.WaypointIndex]

	d := core.Distance(target, pos)
	phi := math.Atan2(target.Y-pos.Y, target.X-pos.X)
	e := core.UnwindAngle(phi - heading)

	c.Speed = core.Clamp(core.CowSteerGainKV*d, 0, core.CowMaxSpeed)
	c.SteeringAngle = core.Clamp(e, -core.CowMaxSteering, core.CowMaxSteering)

	vx := c.Speed * math.Cos(heading)
	vy := c.Speed * math.Sin(heading)
	omega := (c.Speed / core.CowWheelbase) * math.Tan(c.SteeringAngle)

	ctx.World.SetLinearVelocity(c.Body, core.V2(vx, vy))
	ctx.World.SetAngularVelocity(c.Body, omega)

	if d < core.CowArrivalRadius {
		if c.WaypointIndex+1 < len(c.Path) {
			c.WaypointIndex++
		} else {
			c.finishTranslating(ctx)
		}
	}
}

// finishTranslating stops the cow and transitions to InActivity, setting
// the dwell countdown from the activity duration table (§4.F, §4.E).
func (c *Cow) finishTranslating(ctx Context) {
	c.Speed = 0
	c.WaypointIndex = 0
	ctx.World.SetLinearVelocity(c.Body, core.V2(0, 0))
	ctx.World.SetAngularVelocity(c.Body, 0)

	factor := ctx.ActivityFactor
	if factor <= 0 {
		factor = core.DefaultActivityFactor
	}
	c.Dwell = int(core.ActivityDurationTicks[c.CurrentActivity] * factor)
	c.State = core.InActivity
}

// stepInActivity decrements the dwell countdown; reaching zero transitions
// back to Starting (§4.F).
func (c *Cow) stepInActivity(ctx Context) {
	if c.Dwell > 0 {
		c.Dwell--
	}
	if c.Dwell == 0 {
		c.State = core.Starting
	}
}
