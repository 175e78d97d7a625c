// Package barn implements the barn coordinator: it builds the scene
// from a placed-area layout, spawns cows, and drives every cow's step
// each tick.
package barn

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/edaniels/golog"

	"github.com/dairytech/barnsim/internal/algo"
	"github.com/dairytech/barnsim/internal/core"
	"github.com/dairytech/barnsim/internal/cow"
	"github.com/dairytech/barnsim/internal/mapmaker"
	"github.com/dairytech/barnsim/internal/physics"
)

// Barn owns the world, the placed-area list, the compiled obstacle/grid
// state, the world bounds, and the cow vector (§3 "Barn scene").
type Barn struct {
	mu sync.Mutex

	config Config
	logger golog.Logger
	world  physics.World
	rng    *rand.Rand

	areas    []core.PlacedArea
	compiled mapmaker.Compiled
	layout   sceneLayout

	cows []*cow.Cow
	tick int

	metrics Metrics

	ctx    context.Context
	cancel context.CancelFunc
}

// New builds a Barn and runs an initial ResetScene over the given layout.
// world defaults to a fresh physics.Kinematic if nil.
func New(config Config, areas []core.PlacedArea, world physics.World, logger golog.Logger) (*Barn, error) {
	if world == nil {
		world = physics.NewKinematic()
	}
	if logger == nil {
		logger = golog.NewLogger("barn")
	}
	if config.Planner.StepSize <= 0 || config.Planner.GoalRadius <= 0 {
		config.Planner = algo.DefaultPlannerOptions()
	}
	b := &Barn{
		config: config,
		logger: logger,
		world:  world,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
	if err := b.ResetScene(areas); err != nil {
		return nil, err
	}
	return b, nil
}

// ResetScene recompiles the map from areas and respawns every cow (§4.G,
// §9). The previous obstacle set, grid and cow vector are discarded
// wholesale, matching §5's "replaced wholesale on reset" guarantee.
func (b *Barn) ResetScene(areas []core.PlacedArea) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := mapmaker.Validate(areas, b.config.GridColumns, b.config.GridRows); err != nil {
		return fmt.Errorf("barn: reset scene: %w", err)
	}

	b.areas = areas
	b.compiled = mapmaker.Compile(areas, b.config.GridColumns, b.config.GridRows)
	b.layout = newSceneLayout(areas)
	b.buildPerimeterAndObstacleBodies()

	return b.spawnCowsLocked()
}

// ResetCows keeps the compiled map/obstacles/grid and only re-runs cow
// spawning (§9 REDESIGN FLAG: the source aliased this to the same
// handler as Reset Scene; this implementation keeps them distinct).
func (b *Barn) ResetCows() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.spawnCowsLocked()
}

// buildPerimeterAndObstacleBodies creates a static chain enclosing the
// world rectangle and a static body per placed area (§4.G).
func (b *Barn) buildPerimeterAndObstacleBodies() {
	wb := b.compiled.WorldBounds
	loop := []core.Vec2{
		core.V2(wb.Lower.X, wb.Lower.Y),
		core.V2(wb.Upper.X, wb.Lower.Y),
		core.V2(wb.Upper.X, wb.Upper.Y),
		core.V2(wb.Lower.X, wb.Upper.Y),
	}
	perimeter := b.world.CreateStaticBody(core.V2(0, 0))
	b.world.AttachChainShape(perimeter, loop)

	for _, a := range b.areas {
		fp := a.Footprint()
		center := a.Center()
		half := core.V2((fp.Upper.X-fp.Lower.X)/2, (fp.Upper.Y-fp.Lower.Y)/2)
		id := b.world.CreateStaticBody(center)
		b.world.AttachBoxShape(id, half, 0)
	}
}

// spawnCowsLocked destroys any existing cow bodies and spawns
// config.NumberOfCows fresh ones at collision-free positions (§4.F spawn
// policy). It returns core.ErrSpawnInfeasible, with as many cows already
// spawned as it reports in metrics, if the retry budget runs out.
func (b *Barn) spawnCowsLocked() error {
	for _, c := range b.cows {
		b.world.DestroyBody(c.Body)
	}
	b.cows = nil

	maxAttempts := b.config.MaxSpawnAttempts
	if maxAttempts <= 0 {
		maxAttempts = core.DefaultMaxSpawnAttempts
	}

	b.metrics.CowsRequested = b.config.NumberOfCows
	b.metrics.CowsSpawned = 0

	for i := 0; i < b.config.NumberOfCows; i++ {
		pos, err := cow.SpawnPosition(b.compiled.Obstacles, b.compiled.WorldBounds, maxAttempts, b.rng)
		if err != nil {
			b.logger.Warnw("barn: spawn infeasible", "spawned", b.metrics.CowsSpawned, "requested", b.config.NumberOfCows)
			return fmt.Errorf("barn: spawning cow %d: %w", i, err)
		}
		id := b.world.CreateDynamicBody(pos, 1)
		b.world.AttachBoxShape(id, core.V2(core.CowHeight/2, core.CowWidth/2), core.CowRoundedRadius)
		b.cows = append(b.cows, cow.New(id, b.rng))
		b.metrics.CowsSpawned++
	}
	return nil
}

// Cows returns a read-only snapshot of the current cow vector's state,
// safe to call concurrently with Run.
func (b *Barn) Cows() []core.CowState {
	b.mu.Lock()
	defer b.mu.Unlock()
	states := make([]core.CowState, len(b.cows))
	for i, c := range b.cows {
		states[i] = c.State
	}
	return states
}

// Run drives the scene for exactly ticks steps, or until ctx is
// cancelled (§5: single-threaded cooperative, one tick advances all cows
// sequentially in ascending index order).
func (b *Barn) Run(ctx context.Context, ticks int) (*Metrics, error) {
	b.mu.Lock()
	b.ctx, b.cancel = context.WithCancel(ctx)
	b.metrics.StartTime = time.Now()
	b.mu.Unlock()
	defer b.cancel()

runloop:
	for i := 0; i < ticks; i++ {
		select {
		case <-b.ctx.Done():
			break runloop
		default:
		}
		b.step()
	}

	b.mu.Lock()
	b.metrics.EndTime = time.Now()
	m := b.metrics
	b.mu.Unlock()
	return &m, nil
}

// step advances every cow exactly once, in ascending index order (§5).
func (b *Barn) step() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if kin, ok := b.world.(*physics.Kinematic); ok {
		kin.Step(1)
	}

	ctx := cow.Context{
		World:          b.world,
		Obstacles:      b.compiled.Obstacles,
		WorldBounds:    b.compiled.WorldBounds,
		Layout:         b.layout,
		RNG:            b.rng,
		Logger:         b.logger,
		ActivityFactor: b.activityFactor(),
		PlannerOptions: b.config.Planner,
		Tick:           b.tick,
	}

	for _, c := range b.cows {
		before := c.State
		if before == core.Idling {
			// Per-cow recoverable failures retry on the next tick (§7).
			c.Reawaken()
			b.metrics.ReawakenedFromIdle++
			// Reawaken leaves the cow in Starting for this same tick's
			// Step call, so count the transition as starting from there
			// rather than from Idling — otherwise a reawakened cow that
			// plans successfully this tick is never counted as a planned
			// path.
			before = c.State
		}
		b.maybeEvade(c)
		c.Step(ctx)
		b.countTransition(before, c)
	}

	b.tick++
	b.metrics.Ticks = b.tick
}

// maybeEvade implements the evadeProbability tuning knob (§6): a
// Translating cow that is currently too close to another cow has a
// config.EvadeProbability chance per tick of abandoning its current path
// and immediately re-entering Starting to plan a fresh one, rather than
// pushing straight through (the physics separation pass in
// physics.Kinematic handles the purely positional overlap; this adds the
// agent-level behavioral reaction the tuning surface names but the
// source's filtered headers leave unspecified beyond the slider itself).
func (b *Barn) maybeEvade(c *cow.Cow) {
	if c.State != core.Translating || b.config.EvadeProbability <= 0 {
		return
	}
	if !b.tooCloseToAnotherCow(c) {
		return
	}
	if b.rng.Float64() >= b.config.EvadeProbability {
		return
	}
	c.State = core.Starting
	b.metrics.EvasionsTriggered++
}

func (b *Barn) tooCloseToAnotherCow(c *cow.Cow) bool {
	pos, _ := b.world.GetPose(c.Body)
	const evadeRadius = core.CowRoundedRadius * 3
	for _, other := range b.cows {
		if other == c {
			continue
		}
		op, _ := b.world.GetPose(other.Body)
		if core.Distance(pos, op) < evadeRadius {
			return true
		}
	}
	return false
}

// countTransition updates metrics from a single cow's state transition
// this tick, distinguishing the two per-cow recoverable error kinds by
// inspecting LastErr once the cow has landed in Idling (§7).
func (b *Barn) countTransition(before core.CowState, c *cow.Cow) {
	after := c.State
	if before == core.Starting && after == core.Translating {
		b.metrics.PathsPlanned++
	}
	if before != core.InActivity && after == core.InActivity {
		b.metrics.ActivitiesStarted++
	}
	if after == core.Idling && before != core.Idling {
		switch {
		case errors.Is(c.LastErr, core.ErrPathNotFound):
			b.metrics.PathNotFoundCount++
		case errors.Is(c.LastErr, core.ErrNoEligibleActivity):
			b.metrics.NoEligibleCount++
		}
	}
}

// activityFactor returns the configured dwell multiplier, defaulting to
// core.DefaultActivityFactor when unset.
func (b *Barn) activityFactor() float64 {
	if b.config.ActivityFactor > 0 {
		return b.config.ActivityFactor
	}
	return core.DefaultActivityFactor
}
