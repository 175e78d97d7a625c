// Package core defines the domain models shared by every barnsim component:
// the grid/world coordinate system, placed functional areas, the compiled
// obstacle and occupancy representations, and the planned path type.
package core

import (
	"math"

	"github.com/golang/geo/r3"
)

// Vec2 is a point or vector in world units. It reuses
// github.com/golang/geo/r3.Vector (the same vector type the rest of the
// retrieved corpus uses for robot poses, e.g. referenceframe.Pose) with Z
// always held at 0 — the barn is a flat world, but the type is shared
// rather than reinvented. r3.Vector's fields are float64, so this core
// intentionally runs double precision throughout rather than the single
// precision the original source used; nothing in the contract (path
// endpoints, clearance, controller clamping) depends on the narrower type.
type Vec2 = r3.Vector

// V2 constructs a Vec2 on the ground plane.
func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y, Z: 0} }

// Add returns a+b.
func Add(a, b Vec2) Vec2 { return V2(a.X+b.X, a.Y+b.Y) }

// Sub returns a-b.
func Sub(a, b Vec2) Vec2 { return V2(a.X-b.X, a.Y-b.Y) }

// Scale returns v scaled by s.
func Scale(v Vec2, s float64) Vec2 { return V2(v.X*s, v.Y*s) }

// Dot returns the 2D dot product of a and b.
func Dot(a, b Vec2) float64 { return a.X*b.X + a.Y*b.Y }

// Length returns the Euclidean length of v.
func Length(v Vec2) float64 { return math.Sqrt(Dot(v, v)) }

// DistanceSquared returns the squared Euclidean distance between a and b,
// preferred over Distance wherever only comparison is needed (§4.A).
func DistanceSquared(a, b Vec2) float64 {
	d := Sub(a, b)
	return Dot(d, d)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec2) float64 {
	return math.Sqrt(DistanceSquared(a, b))
}

// Normalize returns v scaled to unit length, or the zero vector if v is
// (numerically) zero-length — the RRT planner treats that as a no-op step
// rather than dividing by zero (§4.D Numerics).
func Normalize(v Vec2) Vec2 {
	l := Length(v)
	if l <= 0 {
		return V2(0, 0)
	}
	return Scale(v, 1/l)
}

// AABB is an axis-aligned bounding box with Lower <= Upper componentwise.
type AABB struct {
	Lower, Upper Vec2
}

// NewAABB builds an AABB from two corners, normalizing so Lower <= Upper
// componentwise regardless of argument order (§3: "lower ≤ upper
// componentwise").
func NewAABB(a, b Vec2) AABB {
	return AABB{
		Lower: V2(math.Min(a.X, b.X), math.Min(a.Y, b.Y)),
		Upper: V2(math.Max(a.X, b.X), math.Max(a.Y, b.Y)),
	}
}

// Overlaps reports whether two AABBs overlap on both axes using strict
// interval interiors, so boxes sharing only an edge do not count as
// overlapping (§4.A). Callers that want edge-adjacency use Mergeable
// (internal/mapmaker) instead.
func Overlaps(a, b AABB) bool {
	return a.Lower.X < b.Upper.X && b.Lower.X < a.Upper.X &&
		a.Lower.Y < b.Upper.Y && b.Lower.Y < a.Upper.Y
}

// Inflate returns a copy of b expanded by d on every side.
func Inflate(b AABB, d float64) AABB {
	return AABB{
		Lower: V2(b.Lower.X-d, b.Lower.Y-d),
		Upper: V2(b.Upper.X+d, b.Upper.Y+d),
	}
}

// ContainsPoint reports whether p lies within b, inclusive of the boundary.
func ContainsPoint(b AABB, p Vec2) bool {
	return b.Lower.X <= p.X && p.X <= b.Upper.X && b.Lower.Y <= p.Y && p.Y <= b.Upper.Y
}

// UnwindAngle normalizes theta into (-pi, pi] (§4.A).
func UnwindAngle(theta float64) float64 {
	for theta > math.Pi {
		theta -= 2 * math.Pi
	}
	for theta <= -math.Pi {
		theta += 2 * math.Pi
	}
	return theta
}

// Clamp restricts x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// CellSize is the world-unit edge length of one editor grid cell (§3).
const CellSize = 24.0

// GridToWorld converts a lower-left grid cell coordinate to the world-unit
// position of that cell's lower-left corner.
func GridToWorld(gx, gy int) Vec2 {
	return V2(float64(gx)*CellSize, float64(gy)*CellSize)
}

// WorldBounds returns the world-unit rectangle spanned by a columns x rows
// grid: corners (0,0) and (24*columns, 24*rows), per §6.
func WorldBounds(columns, rows int) AABB {
	return NewAABB(V2(0, 0), V2(float64(columns)*CellSize, float64(rows)*CellSize))
}
