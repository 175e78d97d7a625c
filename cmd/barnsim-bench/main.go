// Command barnsim-bench runs many seeded barn scenes from a directory of
// layout JSON files and writes a CSV of outcomes, the way run_benchmarks
// compares solvers across a testdata directory.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/edaniels/golog"

	"github.com/dairytech/barnsim/internal/barn"
	"github.com/dairytech/barnsim/internal/core"
)

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
	inputDir := flag.String("input", "testdata", "directory containing layout JSON files")
	outputFile := flag.String("output", "bench_results.csv", "output CSV file")
	ticks := flag.Int("ticks", 3600, "ticks to run per layout")
	seeds := flag.Int("seeds", 3, "number of RNG seeds to run per layout")
	verbose := flag.Bool("verbose", false, "verbose output")
	flag.Parse()

	pattern := filepath.Join(*inputDir, "*.json")
	files, err := filepath.Glob(pattern)
	if err != nil {
		fmt.Fprintf(os.Stderr, "barnsim-bench: finding layout files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "barnsim-bench: no layout files found in %s\n", *inputDir)
		fmt.Fprintf(os.Stderr, "Run barnsim-gen first to populate %s\n", *inputDir)
		os.Exit(1)
	}

	out, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "barnsim-bench: creating %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	defer writer.Flush()

	header := []string{"layout", "seed", "ticks", "cows_requested", "cows_spawned",
		"paths_planned", "activities_started", "path_not_found", "no_eligible_activity",
		"evasions", "runtime_ms"}
	if err := writer.Write(header); err != nil {
		fmt.Fprintf(os.Stderr, "barnsim-bench: writing header: %v\n", err)
		os.Exit(1)
	}

	logger := golog.NewDevelopmentLogger("barnsim-bench")

	for _, file := range files {
		lf, err := readLayoutFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "barnsim-bench: %v\n", err)
			continue
		}
		areas, err := decodeAreas(lf.Areas)
		if err != nil {
			fmt.Fprintf(os.Stderr, "barnsim-bench: %s: %v\n", file, err)
			continue
		}

		for s := 0; s < *seeds; s++ {
			config := lf.Config
			config.Seed = lf.Config.Seed + int64(s)

			start := time.Now()
			b, err := barn.New(config, areas, nil, logger)
			if err != nil {
				if *verbose {
					fmt.Fprintf(os.Stderr, "barnsim-bench: %s seed %d: %v\n", file, config.Seed, err)
				}
				continue
			}
			metrics, err := b.Run(context.Background(), *ticks)
			elapsed := time.Since(start)
			if err != nil {
				fmt.Fprintf(os.Stderr, "barnsim-bench: %s seed %d: run: %v\n", file, config.Seed, err)
				continue
			}

			row := []string{
				filepath.Base(file),
				strconv.FormatInt(config.Seed, 10),
				strconv.Itoa(metrics.Ticks),
				strconv.Itoa(metrics.CowsRequested),
				strconv.Itoa(metrics.CowsSpawned),
				strconv.Itoa(metrics.PathsPlanned),
				strconv.Itoa(metrics.ActivitiesStarted),
				strconv.Itoa(metrics.PathNotFoundCount),
				strconv.Itoa(metrics.NoEligibleCount),
				strconv.Itoa(metrics.EvasionsTriggered),
				strconv.FormatFloat(float64(elapsed.Milliseconds()), 'f', 2, 64),
			}
			if err := writer.Write(row); err != nil {
				fmt.Fprintf(os.Stderr, "barnsim-bench: writing row: %v\n", err)
			}
			if *verbose {
				fmt.Printf("%s seed=%d: %d/%d cows, %d paths planned\n",
					filepath.Base(file), config.Seed, metrics.CowsSpawned, metrics.CowsRequested, metrics.PathsPlanned)
			}
		}
	}
}

func readLayoutFile(path string) (layoutFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return layoutFile{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var lf layoutFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return layoutFile{}, fmt.Errorf("parsing %s: %w", path, err)
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
