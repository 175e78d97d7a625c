// Package mapmaker compiles a list of placed functional areas into the
// obstacle set and occupancy grid the rest of barnsim plans and collides
// against (component B).
package mapmaker

import (
	"sort"

	"github.com/dairytech/barnsim/internal/core"
)

// Compiled holds the derived, read-only map state produced by Compile.
type Compiled struct {
	Obstacles   []core.AABB
	Grid        *core.OccupancyGrid
	WorldBounds core.AABB
}

// Compile rebuilds the obstacle set, occupancy grid and world bounds from
// scratch given a layout of placed areas on a columns x rows grid (§4.B).
// It is pure: the same areas always compile to the same result.
func Compile(areas []core.PlacedArea, columns, rows int) Compiled {
	grid := core.NewOccupancyGrid(columns, rows)
	footprints := make([]core.AABB, 0, len(areas))
	for _, a := range areas {
		footprints = append(footprints, a.Footprint())
		for _, cell := range a.Cells() {
			grid.Mark(cell[0], cell[1])
		}
	}
	return Compiled{
		Obstacles:   mergeAll(footprints),
		Grid:        grid,
		WorldBounds: core.WorldBounds(columns, rows),
	}
}

// Clear drops derived state, returning a Compiled with no obstacles, an
// empty grid of the same size and the same world bounds. Used on scene
// reset immediately before recompiling from a fresh layout (§4.B).
func Clear(columns, rows int) Compiled {
	return Compiled{
		Obstacles:   nil,
		Grid:        core.NewOccupancyGrid(columns, rows),
		WorldBounds: core.WorldBounds(columns, rows),
	}
}

// mergeable reports whether a and b share a full edge and so can be
// absorbed into a single AABB (§4.B). Two boxes that merely overlap, or
// share only a corner, are not mergeable.
func mergeable(a, b core.AABB) bool {
	if a.Upper.X == b.Lower.X || b.Upper.X == a.Lower.X {
		return a.Lower.Y == b.Lower.Y && a.Upper.Y == b.Upper.Y
	}
	if a.Upper.Y == b.Lower.Y || b.Upper.Y == a.Lower.Y {
		return a.Lower.X == b.Lower.X && a.Upper.X == b.Upper.X
	}
	return false
}

// merge returns the componentwise union of a and b (min of lowers, max of
// uppers).
func merge(a, b core.AABB) core.AABB {
	return core.NewAABB(
		core.V2(minF(a.Lower.X, b.Lower.X), minF(a.Lower.Y, b.Lower.Y)),
		core.V2(maxF(a.Upper.X, b.Upper.X), maxF(a.Upper.Y, b.Upper.Y)),
	)
}

// mergeAll runs the merge algorithm from §4.B: sort lexicographically by
// (lower.x, lower.y), then repeatedly pop the first box, absorb every
// mergeable neighbor into it (restarting the scan after each absorption),
// and emit the result once a full scan finds nothing left to merge.
func mergeAll(boxes []core.AABB) []core.AABB {
	pending := make([]core.AABB, len(boxes))
	copy(pending, boxes)
	sort.Slice(pending, func(i, j int) bool {
		if pending[i].Lower.X != pending[j].Lower.X {
			return pending[i].Lower.X < pending[j].Lower.X
		}
		return pending[i].Lower.Y < pending[j].Lower.Y
	})

	var merged []core.AABB
	for len(pending) > 0 {
		current := pending[0]
		pending = pending[1:]

		for {
			absorbedAt := -1
			for i, candidate := range pending {
				if mergeable(current, candidate) {
					current = merge(current, candidate)
					absorbedAt = i
					break
				}
			}
			if absorbedAt < 0 {
				break
			}
			pending = append(pending[:absorbedAt], pending[absorbedAt+1:]...)
		}
		merged = append(merged, current)
	}
	return merged
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
