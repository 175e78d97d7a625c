package algo

import (
	"math/rand"

	"github.com/edaniels/golog"

	"github.com/dairytech/barnsim/internal/core"
)

// Layout is the minimal read-only view of the barn's placed areas the
// activity selector needs: picking a random instance of a given type
// (§4.E step 3). internal/barn's scene satisfies this.
type Layout interface {
	AreasOfType(t core.AreaType) []core.PlacedArea
}

// Pick runs one draw of the activity selector (§4.E):
//  1. draw k ~ Categorical(TM[current]),
//  2. re-draw (rejection sampling) while k has no placed area on the map,
//  3. uniformly pick one PlacedArea of type k,
//  4. return its world-space center as the goal.
//
// current is an activity index in [0, core.NumActivities). It returns
// core.ErrNoEligibleActivity if no choosable type anywhere on the layout
// intersects the support of TM[current].
func Pick(current int, layout Layout, rng *rand.Rand, logger golog.Logger) (nextType core.AreaType, goal core.Vec2, err error) {
	row := normalizedRow(current)

	eligible := eligibleActivities(row, layout)
	if !anyEligible(eligible) {
		if logger != nil {
			logger.Debugf("algo: no eligible activity reachable from %d", current)
		}
		return 0, core.Vec2{}, core.ErrNoEligibleActivity
	}

	for {
		k := drawCategorical(row, rng)
		if !eligible[k] {
			continue
		}
		t := core.AreaType(k)
		areas := layout.AreasOfType(t)
		chosen := areas[rng.Intn(len(areas))]
		return t, chosen.Center(), nil
	}
}

// normalizedRow returns TM[current] defensively renormalized to sum to 1,
// guarding against the source's rows summing only "approximately" to 1
// (§4.E).
func normalizedRow(current int) [core.NumActivities]float64 {
	row := core.TransitionMatrix[current]
	sum := 0.0
	for _, p := range row {
		sum += p
	}
	if sum <= 0 {
		return row
	}
	var out [core.NumActivities]float64
	for i, p := range row {
		out[i] = p / sum
	}
	return out
}

// eligibleActivities marks which activity indices are both in TM's
// support for this row and actually present on the map.
func eligibleActivities(row [core.NumActivities]float64, layout Layout) [core.NumActivities]bool {
	var eligible [core.NumActivities]bool
	for k := 0; k < core.NumActivities; k++ {
		if row[k] <= 0 {
			continue
		}
		if len(layout.AreasOfType(core.AreaType(k))) > 0 {
			eligible[k] = true
		}
	}
	return eligible
}

// anyEligible reports whether at least one activity index is eligible;
// a fixed-size array's len() is always its compile-time length, so this
// (not len(eligible)) is the right way to ask "is the set empty".
func anyEligible(eligible [core.NumActivities]bool) bool {
	for _, ok := range eligible {
		if ok {
			return true
		}
	}
	return false
}

// drawCategorical draws an index 0..len(row)-1 from a discrete
// distribution given by row, using a single uniform draw against the
// cumulative distribution, matching the teacher's own weighted-sampling
// idiom (internal/algo/mcts.go's "r := rng.Float64() * totalWeight"
// cumulative walk) rather than reaching for a distribution package.
func drawCategorical(row [core.NumActivities]float64, rng *rand.Rand) int {
	r := rng.Float64()
	cumulative := 0.0
	for i, p := range row {
		cumulative += p
		if r < cumulative {
			return i
		}
	}
	return len(row) - 1
}
