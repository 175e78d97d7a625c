// Package algo implements the planning and sampling algorithms barnsim's
// cows rely on: the RRT path planner (component D) and the Markov-chain
// activity selector (component E).
package algo

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/edaniels/golog"

	"github.com/dairytech/barnsim/internal/core"
)

// PlannerOptions bundles the RRT planner's tunable knobs (§4.D). Zero
// values are not valid; use DefaultPlannerOptions and override fields.
type PlannerOptions struct {
	StepSize      float64
	GoalRadius    float64
	MaxIterations int
	// GoalBias is the probability of sampling the goal directly instead
	// of a uniform random point, a recommended (but optional) design
	// knob beyond what the original planner did (§9). 0 disables it.
	GoalBias float64
}

// DefaultPlannerOptions returns the knob values used unless the caller
// overrides them.
func DefaultPlannerOptions() PlannerOptions {
	return PlannerOptions{
		StepSize:      24,
		GoalRadius:    48,
		MaxIterations: core.DefaultMaxRRTIterations,
		GoalBias:      0,
	}
}

// rrtNode is an arena entry; ParentIdx of -1 marks the root. Using integer
// indices into a single slice (rather than heap-allocated pointer nodes)
// keeps the whole tree owned by one FindPath call and released together
// when it returns, per §4.D's memory note.
type rrtNode struct {
	Position  core.Vec2
	ParentIdx int
}

// FindPath runs the RRT planner from start to goal, rejecting any edge
// that crosses an obstacle, until it reaches goal within opts.GoalRadius
// or exhausts opts.MaxIterations (§4.D). The source's original algorithm
// ran an unbounded loop; this cap is the mandated fix — exceeding it
// returns core.ErrPathNotFound rather than spinning forever.
func FindPath(
	start, goal core.Vec2,
	obstacles []core.AABB,
	worldBounds core.AABB,
	opts PlannerOptions,
	rng *rand.Rand,
	logger golog.Logger,
) (core.Path, error) {
	if opts.StepSize <= 0 || opts.GoalRadius <= 0 {
		return nil, fmt.Errorf("algo: invalid planner options %+v", opts)
	}

	nodes := []rrtNode{{Position: start, ParentIdx: -1}}

	for iter := 0; iter < opts.MaxIterations; iter++ {
		sample := sampleWorld(worldBounds, goal, opts.GoalBias, rng)

		nearestIdx := nearestNode(nodes, sample)
		newPos, ok := extend(nodes[nearestIdx].Position, sample, opts.StepSize)
		if !ok {
			continue
		}
		if segmentHitsAnyObstacle(nodes[nearestIdx].Position, newPos, obstacles) {
			continue
		}

		nodes = append(nodes, rrtNode{Position: newPos, ParentIdx: nearestIdx})

		if core.Distance(newPos, goal) < opts.GoalRadius {
			return buildPath(nodes, len(nodes)-1), nil
		}
	}

	if logger != nil {
		logger.Debugf("algo: path not found from %v to %v after %d iterations", start, goal, opts.MaxIterations)
	}
	return nil, core.ErrPathNotFound
}

// sampleWorld draws a uniform random point in bounds, or returns goal
// directly with probability goalBias (§9 goal-biasing knob).
func sampleWorld(bounds core.AABB, goal core.Vec2, goalBias float64, rng *rand.Rand) core.Vec2 {
	if goalBias > 0 && rng.Float64() < goalBias {
		return goal
	}
	x := bounds.Lower.X + rng.Float64()*(bounds.Upper.X-bounds.Lower.X)
	y := bounds.Lower.Y + rng.Float64()*(bounds.Upper.Y-bounds.Lower.Y)
	return core.V2(x, y)
}

// nearestNode returns the index of the node minimizing squared distance
// to point, first-found on ties (§4.D step 2).
func nearestNode(nodes []rrtNode, point core.Vec2) int {
	best := 0
	bestDist := math.Inf(1)
	for i, n := range nodes {
		d := core.DistanceSquared(n.Position, point)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// extend steps stepSize from 'from' toward 'toward'. It returns ok=false
// only if the direction vector is degenerate (from == toward), matching
// the source's "treat zero-length as a no-op" numerics rule (§4.D).
func extend(from, toward core.Vec2, stepSize float64) (core.Vec2, bool) {
	dir := core.Sub(toward, from)
	if core.Length(dir) <= 0 {
		return core.Vec2{}, false
	}
	unit := core.Normalize(dir)
	return core.Add(from, core.Scale(unit, stepSize)), true
}

// buildPath walks parent indices from leafIdx back to the root and
// reverses, producing a path with path[0] == start (§4.D step 6).
func buildPath(nodes []rrtNode, leafIdx int) core.Path {
	var rev core.Path
	for i := leafIdx; i != -1; i = nodes[i].ParentIdx {
		rev = append(rev, nodes[i].Position)
	}
	path := make(core.Path, len(rev))
	for i, p := range rev {
		path[len(rev)-1-i] = p
	}
	return path
}

// segmentHitsAnyObstacle reports whether the segment from->to intersects
// any obstacle in obstacles.
func segmentHitsAnyObstacle(from, to core.Vec2, obstacles []core.AABB) bool {
	for _, ob := range obstacles {
		if segmentIntersectsAABB(from, to, ob) {
			return true
		}
	}
	return false
}

// segmentIntersectsAABB is the corrected slab-method test from §4.D: the
// source omitted the axis-parallel special case and the
// "tmax >= 0 && tmin <= 1" clamp, which let it report a hit for an
// obstacle lying entirely behind the segment's start, or miss a ray
// parallel to an axis. Both are fixed here.
func segmentIntersectsAABB(from, to core.Vec2, box core.AABB) bool {
	d := core.Sub(to, from)

	tmin, tmax := math.Inf(-1), math.Inf(1)

	for axis := 0; axis < 2; axis++ {
		var fromK, dK, lowerK, upperK float64
		if axis == 0 {
			fromK, dK, lowerK, upperK = from.X, d.X, box.Lower.X, box.Upper.X
		} else {
			fromK, dK, lowerK, upperK = from.Y, d.Y, box.Lower.Y, box.Upper.Y
		}

		if dK == 0 {
			if fromK < lowerK || fromK > upperK {
				return false
			}
			continue
		}

		t1 := (lowerK - fromK) / dK
		t2 := (upperK - fromK) / dK
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	return tmin <= tmax && tmax >= 0 && tmin <= 1
}
