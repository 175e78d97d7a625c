package cow

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/dairytech/barnsim/internal/algo"
	"github.com/dairytech/barnsim/internal/core"
	"github.com/dairytech/barnsim/internal/physics"
)

type fakeLayout map[core.AreaType][]core.PlacedArea

func (f fakeLayout) AreasOfType(t core.AreaType) []core.PlacedArea { return f[t] }

func fullLayout() fakeLayout {
	f := fakeLayout{}
	for _, t := range []core.AreaType{core.Cubicle, core.Milker, core.Feeder, core.Concentrate, core.Drinker} {
		f[t] = []core.PlacedArea{{Type: t, Orientation: core.Square, GX: 3, GY: 3}}
	}
	return f
}

func newContext(world physics.World, layout algo.Layout, rng *rand.Rand) Context {
	return Context{
		World:          world,
		Obstacles:      nil,
		WorldBounds:    core.NewAABB(core.V2(0, 0), core.V2(200, 200)),
		Layout:         layout,
		RNG:            rng,
		Logger:         nil,
		ActivityFactor: core.DefaultActivityFactor,
		PlannerOptions: algo.DefaultPlannerOptions(),
	}
}

func TestNewCowInitialActivityInRangeZeroToThree(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		c := New(1, rng)
		if c.State != core.Starting {
			t.Fatalf("new cow state = %v, want Starting", c.State)
		}
		if c.CurrentActivity < 0 || c.CurrentActivity > 3 {
			t.Errorf("initial activity = %d, want in [0,3]", c.CurrentActivity)
		}
	}
}

func TestEnterStartingTransitionsToTranslating(t *testing.T) {
	world := physics.NewKinematic()
	id := world.CreateDynamicBody(core.V2(10, 10), 1)
	rng := rand.New(rand.NewSource(5))
	c := New(id, rng)

	ctx := newContext(world, fullLayout(), rng)
	c.Step(ctx)

	if c.State != core.Translating {
		t.Fatalf("state after Starting = %v, want Translating, lastErr=%v", c.State, c.LastErr)
	}
	if len(c.Path) == 0 || c.Path[0] != (core.V2(10, 10)) {
		t.Errorf("path should start at the cow's current pose")
	}
}

func TestEnterStartingIdlesOnNoEligibleActivity(t *testing.T) {
	world := physics.NewKinematic()
	id := world.CreateDynamicBody(core.V2(0, 0), 1)
	rng := rand.New(rand.NewSource(6))
	c := New(id, rng)

	ctx := newContext(world, fakeLayout{}, rng) // empty layout
	c.Step(ctx)

	if c.State != core.Idling {
		t.Fatalf("state = %v, want Idling", c.State)
	}
	if !errors.Is(c.LastErr, core.ErrNoEligibleActivity) {
		t.Errorf("LastErr = %v, want ErrNoEligibleActivity", c.LastErr)
	}
}

func TestReawakenReturnsToStarting(t *testing.T) {
	c := &Cow{State: core.Idling, LastErr: core.ErrPathNotFound}
	c.Reawaken()
	if c.State != core.Starting || c.LastErr != nil {
		t.Errorf("Reawaken: state=%v lastErr=%v, want Starting/nil", c.State, c.LastErr)
	}
}

func TestTranslatingArrivesAtFinalWaypointEntersInActivity(t *testing.T) {
	world := physics.NewKinematic()
	id := world.CreateDynamicBody(core.V2(0, 0), 1)
	rng := rand.New(rand.NewSource(1))

	c := &Cow{
		Body:          id,
		State:         core.Translating,
		Path:          core.Path{core.V2(0, 0)}, // already at the only waypoint
		WaypointIndex: 0,
	}
	ctx := newContext(world, fullLayout(), rng)
	c.Step(ctx)

	if c.State != core.InActivity {
		t.Fatalf("state after arriving at final waypoint = %v, want InActivity", c.State)
	}
	if c.Dwell <= 0 {
		t.Errorf("Dwell = %d, want > 0", c.Dwell)
	}
}

func TestControllerClampsSpeedAndSteering(t *testing.T) {
	world := physics.NewKinematic()
	id := world.CreateDynamicBody(core.V2(0, 0), 1)
	rng := rand.New(rand.NewSource(1))

	c := &Cow{
		Body:          id,
		State:         core.Translating,
		Path:          core.Path{core.V2(10000, 0)}, // far away: speed should clamp
		WaypointIndex: 0,
	}
	ctx := newContext(world, fullLayout(), rng)
	c.Step(ctx)

	if c.Speed != core.CowMaxSpeed {
		t.Errorf("Speed = %v, want clamped to %v", c.Speed, core.CowMaxSpeed)
	}
	if math.Abs(c.SteeringAngle) > core.CowMaxSteering+1e-9 {
		t.Errorf("SteeringAngle = %v, exceeds max %v", c.SteeringAngle, core.CowMaxSteering)
	}
}

func TestDwellCountdownReachesStarting(t *testing.T) {
	c := &Cow{State: core.InActivity, Dwell: 1}
	ctx := Context{}
	c.Step(ctx)
	if c.Dwell != 0 {
		t.Fatalf("Dwell = %d, want 0", c.Dwell)
	}
	if c.State != core.Starting {
		t.Errorf("state after dwell reaches 0 = %v, want Starting", c.State)
	}
}

func TestSpawnPositionRejectsInflatedObstacle(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	obstacles := []core.AABB{core.NewAABB(core.V2(0, 0), core.V2(100, 100))}
	bounds := core.NewAABB(core.V2(0, 0), core.V2(200, 200))

	pos, err := SpawnPosition(obstacles, bounds, 10000, rng)
	if err != nil {
		t.Fatalf("SpawnPosition returned error: %v", err)
	}
	if blockedBySpawnInflatedObstacle(pos, obstacles) {
		t.Errorf("spawned position %v is inside an inflated obstacle", pos)
	}
}

func TestSpawnPositionInfeasible(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	// Obstacle inflated by spawnInflate covers the whole world.
	obstacles := []core.AABB{core.NewAABB(core.V2(-100, -100), core.V2(100, 100))}
	bounds := core.NewAABB(core.V2(-50, -50), core.V2(50, 50))

	_, err := SpawnPosition(obstacles, bounds, 50, rng)
	if !errors.Is(err, core.ErrSpawnInfeasible) {
		t.Errorf("SpawnPosition = %v, want ErrSpawnInfeasible", err)
	}
}
