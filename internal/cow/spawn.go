package cow

import (
	"math/rand"

	"github.com/dairytech/barnsim/internal/core"
)

// SpawnPosition draws a uniform random point in [0,W) x [0,H) and rejects
// it while it falls inside any obstacle inflated by core.CowSpawnInflate
// (§4.F spawn policy). The source retried without bound; maxAttempts
// caps it, returning core.ErrSpawnInfeasible once exhausted rather than
// spinning forever (§7).
func SpawnPosition(obstacles []core.AABB, worldBounds core.AABB, maxAttempts int, rng *rand.Rand) (core.Vec2, error) {
	w := worldBounds.Upper.X - worldBounds.Lower.X
	h := worldBounds.Upper.Y - worldBounds.Lower.Y

	for attempt := 0; attempt < maxAttempts; attempt++ {
		p := core.V2(worldBounds.Lower.X+rng.Float64()*w, worldBounds.Lower.Y+rng.Float64()*h)
		if !blockedBySpawnInflatedObstacle(p, obstacles) {
			return p, nil
		}
	}
	return core.Vec2{}, core.ErrSpawnInfeasible
}

func blockedBySpawnInflatedObstacle(p core.Vec2, obstacles []core.AABB) bool {
	for _, ob := range obstacles {
		if core.ContainsPoint(core.Inflate(ob, core.CowSpawnInflate), p) {
			return true
		}
	}
	return false
}
