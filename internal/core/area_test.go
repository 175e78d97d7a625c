package core

import "testing"

func TestChoosable(t *testing.T) {
	tests := []struct {
		typ  AreaType
		want bool
	}{
		{Cubicle, true},
		{Milker, true},
		{Feeder, true},
		{Concentrate, true},
		{Drinker, true},
		{DockingStation, false},
		{Obstacle, false},
	}
	for _, tt := range tests {
		if got := tt.typ.Choosable(); got != tt.want {
			t.Errorf("%v.Choosable() = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

func TestActivityIndex(t *testing.T) {
	if got := Drinker.ActivityIndex(); got != 4 {
		t.Errorf("Drinker.ActivityIndex() = %v, want 4", got)
	}
	if got := Obstacle.ActivityIndex(); got != -1 {
		t.Errorf("Obstacle.ActivityIndex() = %v, want -1", got)
	}
}

func TestValidOrientation(t *testing.T) {
	if !Feeder.ValidOrientation(Square) {
		t.Errorf("Feeder should allow Square")
	}
	if Feeder.ValidOrientation(Vertical) {
		t.Errorf("Feeder should not allow Vertical")
	}
	if !Cubicle.ValidOrientation(Vertical) {
		t.Errorf("Cubicle should allow Vertical")
	}
}

func TestPlacedAreaFootprintSquare(t *testing.T) {
	a := PlacedArea{Type: Cubicle, Orientation: Square, GX: 0, GY: 0}
	got := a.Footprint()
	want := NewAABB(V2(0, 0), V2(24, 24))
	if got != want {
		t.Errorf("Square footprint = %+v, want %+v", got, want)
	}
	if c := a.Center(); c.X != 12 || c.Y != 12 {
		t.Errorf("Square center = %v, want (12,12)", c)
	}
}

func TestPlacedAreaFootprintVertical(t *testing.T) {
	a := PlacedArea{Type: Cubicle, Orientation: Vertical, GX: 1, GY: 0}
	got := a.Footprint()
	want := NewAABB(V2(24, 0), V2(48, 48))
	if got != want {
		t.Errorf("Vertical footprint = %+v, want %+v", got, want)
	}
	cells := a.Cells()
	if len(cells) != 2 || cells[0] != [2]int{1, 0} || cells[1] != [2]int{1, 1} {
		t.Errorf("Vertical cells = %v, want [[1 0] [1 1]]", cells)
	}
}

func TestPlacedAreaFootprintHorizontal(t *testing.T) {
	a := PlacedArea{Type: Feeder, Orientation: Square, GX: 0, GY: 0}
	cells := a.Cells()
	if len(cells) != 1 || cells[0] != [2]int{0, 0} {
		t.Errorf("Square cells = %v, want [[0 0]]", cells)
	}

	h := PlacedArea{Type: Cubicle, Orientation: Horizontal, GX: 0, GY: 1}
	got := h.Footprint()
	want := NewAABB(V2(0, 24), V2(48, 48))
	if got != want {
		t.Errorf("Horizontal footprint = %+v, want %+v", got, want)
	}
	hc := h.Cells()
	if len(hc) != 2 || hc[0] != [2]int{0, 1} || hc[1] != [2]int{1, 1} {
		t.Errorf("Horizontal cells = %v, want [[0 1] [1 1]]", hc)
	}
}

func TestOccupancyGridMarkAndOccupied(t *testing.T) {
	g := NewOccupancyGrid(3, 3)
	if g.Occupied(1, 1) {
		t.Errorf("fresh grid should be unoccupied")
	}
	g.Mark(1, 1)
	if !g.Occupied(1, 1) {
		t.Errorf("marked cell should be occupied")
	}
	if !g.Occupied(5, 5) {
		t.Errorf("out-of-bounds cell should count as occupied (non-traversable)")
	}
}
