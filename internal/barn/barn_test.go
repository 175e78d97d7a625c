package barn

import (
	"context"
	"errors"
	"testing"

	"github.com/edaniels/golog"

	"github.com/dairytech/barnsim/internal/core"
)

func sampleLayout() []core.PlacedArea {
	return []core.PlacedArea{
		{Type: core.Cubicle, Orientation: core.Square, GX: 1, GY: 1},
		{Type: core.Milker, Orientation: core.Square, GX: 5, GY: 1},
		{Type: core.Feeder, Orientation: core.Square, GX: 1, GY: 5},
		{Type: core.Concentrate, Orientation: core.Square, GX: 5, GY: 5},
		{Type: core.Drinker, Orientation: core.Square, GX: 9, GY: 9},
	}
}

func testConfig() Config {
	c := DefaultConfig()
	c.NumberOfCows = 5
	c.GridColumns = 12
	c.GridRows = 12
	c.Seed = 7
	return c
}

func TestNewBuildsSceneAndSpawnsCows(t *testing.T) {
	b, err := New(testConfig(), sampleLayout(), nil, golog.NewTestLogger(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	states := b.Cows()
	if len(states) != 5 {
		t.Fatalf("len(Cows()) = %d, want 5", len(states))
	}
	for _, s := range states {
		if s != core.Starting {
			t.Errorf("freshly spawned cow state = %v, want Starting", s)
		}
	}
}

func TestNewRejectsEmptyLayout(t *testing.T) {
	_, err := New(testConfig(), nil, nil, golog.NewTestLogger(t))
	if !errors.Is(err, core.ErrEmptyLayout) {
		t.Fatalf("New(nil layout) = %v, want ErrEmptyLayout", err)
	}
}

func TestRunAdvancesTicksAndSpawnsCows(t *testing.T) {
	b, err := New(testConfig(), sampleLayout(), nil, golog.NewTestLogger(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	metrics, err := b.Run(context.Background(), 50)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if b.tick != 50 {
		t.Errorf("ticks run = %d, want 50", b.tick)
	}
	if metrics.CowsSpawned != 5 {
		t.Errorf("CowsSpawned = %d, want 5", metrics.CowsSpawned)
	}
}

func TestResetCowsKeepsCompiledMap(t *testing.T) {
	b, err := New(testConfig(), sampleLayout(), nil, golog.NewTestLogger(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	before := b.compiled.WorldBounds
	if err := b.ResetCows(); err != nil {
		t.Fatalf("ResetCows returned error: %v", err)
	}
	if b.compiled.WorldBounds != before {
		t.Errorf("ResetCows should not change world bounds")
	}
	if len(b.Cows()) != 5 {
		t.Errorf("ResetCows should respawn the configured cow count")
	}
}

func TestResetSceneRejectsInvalidLayout(t *testing.T) {
	b, err := New(testConfig(), sampleLayout(), nil, golog.NewTestLogger(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	bad := []core.PlacedArea{{Type: core.Feeder, Orientation: core.Vertical, GX: 0, GY: 0}}
	if err := b.ResetScene(bad); !errors.Is(err, core.ErrInvalidLayout) {
		t.Errorf("ResetScene(bad orientation) = %v, want ErrInvalidLayout", err)
	}
}
