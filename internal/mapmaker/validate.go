package mapmaker

import (
	"fmt"

	"github.com/dairytech/barnsim/internal/core"
)

// Validate checks a layout against the grid-bounds and orientation rules
// in §7 before it is compiled. It wraps core.ErrInvalidLayout with
// details identifying the offending area, and core.ErrEmptyLayout if the
// layout places nothing at all.
func Validate(areas []core.PlacedArea, columns, rows int) error {
	if len(areas) == 0 {
		return core.ErrEmptyLayout
	}
	for i, a := range areas {
		if !a.Type.ValidOrientation(a.Orientation) {
			return fmt.Errorf("area %d: type %v cannot take orientation %v: %w",
				i, a.Type, a.Orientation, core.ErrInvalidLayout)
		}
		for _, cell := range a.Cells() {
			if cell[0] < 0 || cell[1] < 0 || cell[0] >= columns || cell[1] >= rows {
				return fmt.Errorf("area %d: cell (%d,%d) outside %dx%d grid: %w",
					i, cell[0], cell[1], columns, rows, core.ErrInvalidLayout)
			}
		}
	}
	return nil
}
