package core

// AreaType classifies a functional area (§3). The first five are eligible
// activity destinations (§4.E); DockingStation and Obstacle are collidable
// but never chosen as a goal.
type AreaType int

const (
	Cubicle AreaType = iota
	Milker
	Feeder
	Concentrate
	Drinker
	DockingStation
	Obstacle
)

func (t AreaType) String() string {
	switch t {
	case Cubicle:
		return "Cubicle"
	case Milker:
		return "Milker"
	case Feeder:
		return "Feeder"
	case Concentrate:
		return "Concentrate"
	case Drinker:
		return "Drinker"
	case DockingStation:
		return "DockingStation"
	case Obstacle:
		return "Obstacle"
	default:
		return "Unknown"
	}
}

// Choosable reports whether a cow may pick this type as a goal activity.
// Only the first five AreaTypes (indices 0..4) qualify (§3, §4.E).
func (t AreaType) Choosable() bool {
	return t >= Cubicle && t <= Drinker
}

// ActivityIndex returns the 0..4 activity index for a choosable type, or
// -1 if the type is not choosable.
func (t AreaType) ActivityIndex() int {
	if !t.Choosable() {
		return -1
	}
	return int(t)
}

// Orientation classifies a placed area's footprint shape (§3).
type Orientation int

const (
	Square Orientation = iota
	Vertical
	Horizontal
)

func (o Orientation) String() string {
	switch o {
	case Square:
		return "Square"
	case Vertical:
		return "Vertical"
	case Horizontal:
		return "Horizontal"
	default:
		return "Unknown"
	}
}

// halfExtent returns the half-width/half-height of a footprint in world
// units for the given orientation (§3, §6 "cell and world constants").
func halfExtent(o Orientation) (hx, hy float64) {
	switch o {
	case Square:
		return 12, 12
	case Vertical:
		return 12, 24
	case Horizontal:
		return 24, 12
	default:
		return 12, 12
	}
}

// PlacedArea is an immutable functional area placed on the editor grid
// (§3). Empty cells (no PlacedArea) contribute nothing to the map.
type PlacedArea struct {
	Type        AreaType
	Orientation Orientation
	GX, GY      int // lower-left grid cell
}

// Center returns the footprint's center in world units (§3).
func (a PlacedArea) Center() Vec2 {
	switch a.Orientation {
	case Vertical:
		return V2(CellSize*float64(a.GX)+12, CellSize*float64(a.GY)+24)
	case Horizontal:
		return V2(CellSize*float64(a.GX)+24, CellSize*float64(a.GY)+12)
	default: // Square
		return V2(CellSize*float64(a.GX)+12, CellSize*float64(a.GY)+12)
	}
}

// Footprint returns the world-space AABB this area contributes to the map.
func (a PlacedArea) Footprint() AABB {
	hx, hy := halfExtent(a.Orientation)
	c := a.Center()
	return NewAABB(V2(c.X-hx, c.Y-hy), V2(c.X+hx, c.Y+hy))
}

// Cells returns the grid cells this area's footprint covers, following the
// per-orientation rules in §3 (used to build the OccupancyGrid).
func (a PlacedArea) Cells() [][2]int {
	switch a.Orientation {
	case Vertical:
		return [][2]int{{a.GX, a.GY}, {a.GX, a.GY + 1}}
	case Horizontal:
		return [][2]int{{a.GX, a.GY}, {a.GX + 1, a.GY}}
	default: // Square
		return [][2]int{{a.GX, a.GY}}
	}
}

// ValidOrientation reports whether o is an allowed orientation for t.
// Feeder, Drinker, DockingStation and Obstacle must be Square (§7
// InvalidLayout); Cubicle, Milker and Concentrate may take any
// orientation.
func (t AreaType) ValidOrientation(o Orientation) bool {
	switch t {
	case Feeder, Drinker, DockingStation, Obstacle:
		return o == Square
	default:
		return true
	}
}

// OccupancyGrid is a boolean matrix of size (Columns, Rows); Cell[x][y] is
// true iff some placed area covers that cell (§3). It is derived and
// read-only after construction.
type OccupancyGrid struct {
	Columns, Rows int
	cells         [][]bool // cells[x][y]
}

// NewOccupancyGrid allocates an empty (all-false) grid.
func NewOccupancyGrid(columns, rows int) *OccupancyGrid {
	g := &OccupancyGrid{Columns: columns, Rows: rows, cells: make([][]bool, columns)}
	for x := range g.cells {
		g.cells[x] = make([]bool, rows)
	}
	return g
}

// Mark flags a cell as occupied. Out-of-bounds cells are ignored; layout
// validation (InvalidLayout) is the caller's responsibility, not the
// grid's.
func (g *OccupancyGrid) Mark(gx, gy int) {
	if gx < 0 || gy < 0 || gx >= g.Columns || gy >= g.Rows {
		return
	}
	g.cells[gx][gy] = true
}

// Occupied reports whether (gx, gy) is covered by any placed area.
func (g *OccupancyGrid) Occupied(gx, gy int) bool {
	if gx < 0 || gy < 0 || gx >= g.Columns || gy >= g.Rows {
		return true // out of bounds counts as non-traversable
	}
	return g.cells[gx][gy]
}

// Path is an ordered, non-empty sequence of waypoints produced by the RRT
// planner (§3). path[0] is the planner's start and the last element
// satisfies ‖last - goal‖ < goalRadius.
type Path []Vec2
