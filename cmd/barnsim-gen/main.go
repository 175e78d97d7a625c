// Command barnsim-gen generates a random barn layout as JSON, in the
// shape cmd/barnsim reads.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
)

// layoutFile mirrors cmd/barnsim's on-disk layout shape.
type layoutFile struct {
	Config configParams `json:"config"`
	Areas  []areaRecord `json:"areas"`
}

type configParams struct {
	NumberOfCows     int     `json:"numberOfCows"`
	EvadeProbability float64 `json:"evadeProbability"`
	GridColumns      int     `json:"gridColumns"`
	GridRows         int     `json:"gridRows"`
	ActivityFactor   float64 `json:"activityFactor"`
	Seed             int64   `json:"seed"`
	MaxSpawnAttempts int     `json:"maxSpawnAttempts"`
}

type areaRecord struct {
	Type        string `json:"type"`
	Orientation string `json:"orientation"`
	GX          int    `json:"gx"`
	GY          int    `json:"gy"`
}

var choosableTypes = []string{"Cubicle", "Milker", "Feeder", "Concentrate", "Drinker"}

// squareOnlyTypes must take Square orientation (§7 InvalidLayout rule).
var squareOnlyTypes = map[string]bool{"Feeder": true, "Drinker": true, "DockingStation": true, "Obstacle": true}

func main() {
	seed := flag.Int64("seed", 42, "random seed for deterministic generation")
	columns := flag.Int("columns", 20, "grid columns")
	rows := flag.Int("rows", 20, "grid rows")
	areaCount := flag.Int("areas", 15, "number of functional areas to place")
	numberOfCows := flag.Int("cows", 20, "number of cows")
	evadeProbability := flag.Float64("evade", 0.75, "evasive-steering probability (0-1)")
	activityFactor := flag.Float64("activity-factor", 60, "activity dwell-duration multiplier")
	output := flag.String("output", "layout.json", "output file path")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	lf := layoutFile{
		Config: configParams{
			NumberOfCows:     *numberOfCows,
			EvadeProbability: *evadeProbability,
			GridColumns:      *columns,
			GridRows:         *rows,
			ActivityFactor:   *activityFactor,
			Seed:             *seed,
			MaxSpawnAttempts: 10000,
		},
		Areas: generateAreas(rng, *columns, *rows, *areaCount),
	}

	data, err := json.MarshalIndent(lf, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "barnsim-gen: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*output, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "barnsim-gen: writing %s: %v\n", *output, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d areas to %s\n", len(lf.Areas), *output)
}

// generateAreas places areaCount non-overlapping-by-cell areas on the
// grid, picking a type uniformly and an orientation valid for that type.
func generateAreas(rng *rand.Rand, columns, rows, areaCount int) []areaRecord {
	occupied := make(map[[2]int]bool)
	var areas []areaRecord

	for len(areas) < areaCount {
		typ := choosableTypes[rng.Intn(len(choosableTypes))]
		orientation := randomOrientation(rng, typ)
		gx, gy := rng.Intn(columns), rng.Intn(rows)

		cells := orientedCells(gx, gy, orientation)
		if !fitsGrid(cells, columns, rows) || anyOccupied(cells, occupied) {
			continue
		}
		for _, c := range cells {
			occupied[c] = true
		}
		areas = append(areas, areaRecord{Type: typ, Orientation: orientation, GX: gx, GY: gy})
	}
	return areas
}

func randomOrientation(rng *rand.Rand, typ string) string {
	if squareOnlyTypes[typ] {
		return "Square"
	}
	switch rng.Intn(3) {
	case 0:
		return "Square"
	case 1:
		return "Vertical"
	default:
		return "Horizontal"
	}
}

func orientedCells(gx, gy int, orientation string) [][2]int {
	switch orientation {
	case "Vertical":
		return [][2]int{{gx, gy}, {gx, gy + 1}}
	case "Horizontal":
		return [][2]int{{gx, gy}, {gx + 1, gy}}
	default:
		return [][2]int{{gx, gy}}
	}
}

func fitsGrid(cells [][2]int, columns, rows int) bool {
	for _, c := range cells {
		if c[0] < 0 || c[1] < 0 || c[0] >= columns || c[1] >= rows {
			return false
		}
	}
	return true
}

func anyOccupied(cells [][2]int, occupied map[[2]int]bool) bool {
	for _, c := range cells {
		if occupied[c] {
			return true
		}
	}
	return false
}
