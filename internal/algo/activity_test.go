package algo

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/dairytech/barnsim/internal/core"
)

// fakeLayout implements Layout with a fixed set of areas per type, for
// tests that need to control exactly what's "on the map".
type fakeLayout map[core.AreaType][]core.PlacedArea

func (f fakeLayout) AreasOfType(t core.AreaType) []core.PlacedArea { return f[t] }

func oneAreaLayout(types ...core.AreaType) fakeLayout {
	f := fakeLayout{}
	for _, t := range types {
		f[t] = []core.PlacedArea{{Type: t, Orientation: core.Square, GX: 0, GY: 0}}
	}
	return f
}

func TestPickReturnsEligibleType(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	layout := oneAreaLayout(core.Cubicle, core.Milker, core.Feeder, core.Concentrate, core.Drinker)

	for trial := 0; trial < 50; trial++ {
		typ, _, err := Pick(0, layout, rng, nil)
		if err != nil {
			t.Fatalf("Pick returned error: %v", err)
		}
		if !typ.Choosable() {
			t.Errorf("Pick returned non-choosable type %v", typ)
		}
	}
}

func TestPickOnlyReturnsAvailableTypes(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	// Only Cubicle (index 0) is actually on the map; TM row 0 has support
	// on every other index too, so the rejection sampler must keep
	// re-drawing until it lands on Cubicle.
	layout := oneAreaLayout(core.Cubicle)

	for trial := 0; trial < 50; trial++ {
		typ, goal, err := Pick(0, layout, rng, nil)
		if err != nil {
			t.Fatalf("Pick returned error: %v", err)
		}
		if typ != core.Cubicle {
			t.Errorf("Pick = %v, want Cubicle (the only area present)", typ)
		}
		want := layout[core.Cubicle][0].Center()
		if goal != want {
			t.Errorf("Pick goal = %v, want %v", goal, want)
		}
	}
}

func TestPickNoEligibleActivity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	// Nothing on the map at all: TM[0]'s support can never be satisfied.
	layout := fakeLayout{}
	_, _, err := Pick(0, layout, rng, nil)
	if !errors.Is(err, core.ErrNoEligibleActivity) {
		t.Errorf("Pick with empty layout = %v, want ErrNoEligibleActivity", err)
	}
}

func TestNormalizedRowSumsToOne(t *testing.T) {
	for i := 0; i < core.NumActivities; i++ {
		row := normalizedRow(i)
		sum := 0.0
		for _, p := range row {
			sum += p
		}
		if sum < 0.999 || sum > 1.001 {
			t.Errorf("normalizedRow(%d) sums to %v, want ~1", i, sum)
		}
	}
}

func TestDrawCategoricalRespectsZeroWeight(t *testing.T) {
	row := [core.NumActivities]float64{0, 1, 0, 0, 0}
	rng := rand.New(rand.NewSource(4))
	for trial := 0; trial < 20; trial++ {
		if got := drawCategorical(row, rng); got != 1 {
			t.Errorf("drawCategorical with all weight on index 1 = %d", got)
		}
	}
}
