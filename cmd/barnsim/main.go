// Command barnsim runs a single barn scene for a fixed number of ticks
// and prints a summary of what happened.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/edaniels/golog"

	"github.com/dairytech/barnsim/internal/barn"
	"github.com/dairytech/barnsim/internal/core"
)

// layoutFile is the on-disk shape of a scene layout (§6 "Persisted
// state"): an ordered list of (type, orientation, gx, gy) records plus
// grid dimensions and tuning parameters.
type layoutFile struct {
	Config barn.Config  `json:"config"`
	Areas  []areaRecord `json:"areas"`
}

type areaRecord struct {
	Type        string `json:"type"`
	Orientation string `json:"orientation"`
	GX          int    `json:"gx"`
	GY          int    `json:"gy"`
}

func main() {
	layoutPath := flag.String("layout", "", "path to a layout JSON file (required)")
	ticks := flag.Int("ticks", 3600, "number of ticks to run")
	seed := flag.Int64("seed", 0, "override the layout's RNG seed (0 = use layout's own seed)")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if *layoutPath == "" {
		fmt.Fprintln(os.Stderr, "barnsim: -layout is required")
		os.Exit(2)
	}

	lf, err := readLayoutFile(*layoutPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "barnsim: %v\n", err)
		os.Exit(1)
	}

	config := lf.Config
	if *seed != 0 {
		config.Seed = *seed
	}

	logger := golog.NewLogger("barnsim")
	if *verbose {
		logger = golog.NewDebugLogger("barnsim")
	}

	areas, err := decodeAreas(lf.Areas)
	if err != nil {
		fmt.Fprintf(os.Stderr, "barnsim: %v\n", err)
		os.Exit(1)
	}

	b, err := barn.New(config, areas, nil, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "barnsim: building scene: %v\n", err)
		os.Exit(1)
	}

	metrics, err := b.Run(context.Background(), *ticks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "barnsim: run: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Ran %d ticks with %d/%d cows spawned\n", metrics.Ticks, metrics.CowsSpawned, metrics.CowsRequested)
	fmt.Printf("Paths planned: %d, activities started: %d\n", metrics.PathsPlanned, metrics.ActivitiesStarted)
	fmt.Printf("PathNotFound: %d, NoEligibleActivity: %d, reawakened from idle: %d\n",
		metrics.PathNotFoundCount, metrics.NoEligibleCount, metrics.ReawakenedFromIdle)
	fmt.Printf("Evasions triggered: %d\n", metrics.EvasionsTriggered)
}

func readLayoutFile(path string) (layoutFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return layoutFile{}, fmt.Errorf("reading layout file: %w", err)
	}
	var lf layoutFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return layoutFile{}, fmt.Errorf("parsing layout file: %w", err)
	}
	return lf, nil
}

func decodeAreas(records []areaRecord) ([]core.PlacedArea, error) {
	areas := make([]core.PlacedArea, 0, len(records))
	for i, r := range records {
		t, err := parseAreaType(r.Type)
		if err != nil {
			return nil, fmt.Errorf("area %d: %w", i, err)
		}
		o, err := parseOrientation(r.Orientation)
		if err != nil {
			return nil, fmt.Errorf("area %d: %w", i, err)
		}
		areas = append(areas, core.PlacedArea{Type: t, Orientation: o, GX: r.GX, GY: r.GY})
	}
	return areas, nil
}

func parseAreaType(s string) (core.AreaType, error) {
	switch s {
	case "Cubicle":
		return core.Cubicle, nil
	case "Milker":
		return core.Milker, nil
	case "Feeder":
		return core.Feeder, nil
	case "Concentrate":
		return core.Concentrate, nil
	case "Drinker":
		return core.Drinker, nil
	case "DockingStation":
		return core.DockingStation, nil
	case "Obstacle":
		return core.Obstacle, nil
	default:
		return 0, fmt.Errorf("unknown area type %q", s)
	}
}

func parseOrientation(s string) (core.Orientation, error) {
	switch s {
	case "Square", "":
		return core.Square, nil
	case "Vertical":
		return core.Vertical, nil
	case "Horizontal":
		return core.Horizontal, nil
	default:
		return 0, fmt.Errorf("unknown orientation %q", s)
	}
}
