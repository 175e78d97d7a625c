package physics

import (
	"sort"
	"sync"

	"github.com/dairytech/barnsim/internal/core"
)

// body is Kinematic's internal per-body state: a pose, the velocities the
// cow controller last wrote, and the shape used for the separation pass.
type body struct {
	static bool
	pos    core.Vec2
	angle  float64
	linVel core.Vec2
	angVel float64

	// halfExtents is set by AttachBoxShape; radius approximates the
	// shape for the O(n^2) separation pass below (roundedRadius is used
	// directly when set, otherwise the box's longer half-extent).
	halfExtents core.Vec2
	radius      float64
}

// Kinematic is a minimal stand-in World: straight Euler integration of
// position and heading from whatever linear/angular velocity the caller
// last set, plus a simple pairwise circle-separation pass standing in for
// cow-cow collisions (§4.G, §5). It has no mass-dependent dynamics, no
// contacts and no joints — density is accepted and ignored, matching the
// fact that the original source's per-shape density jitter is a
// physics-engine-internal detail out of this core's scope.
type Kinematic struct {
	mu      sync.Mutex
	bodies  map[BodyID]*body
	nextID  BodyID
	gravity core.Vec2
}

// NewKinematic returns an empty Kinematic world.
func NewKinematic() *Kinematic {
	return &Kinematic{bodies: make(map[BodyID]*body)}
}

func (k *Kinematic) CreateStaticBody(pose core.Vec2) BodyID {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.nextID++
	k.bodies[k.nextID] = &body{static: true, pos: pose}
	return k.nextID
}

func (k *Kinematic) CreateDynamicBody(pose core.Vec2, density float64) BodyID {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.nextID++
	k.bodies[k.nextID] = &body{pos: pose}
	return k.nextID
}

func (k *Kinematic) AttachBoxShape(id BodyID, halfExtents core.Vec2, roundedRadius float64) {
	k.mu.Lock()
	defer k.mu.Unlock()
	b, ok := k.bodies[id]
	if !ok {
		return
	}
	b.halfExtents = halfExtents
	if roundedRadius > 0 {
		b.radius = roundedRadius
	} else {
		b.radius = maxF(halfExtents.X, halfExtents.Y)
	}
}

// AttachChainShape records a static boundary loop. Kinematic's separation
// pass only acts between dynamic bodies, so this is a no-op beyond
// validating the body exists — chain shapes in this stand-in exist to
// satisfy the World contract for barn perimeter walls, not to be
// collided against by the simplified pass.
func (k *Kinematic) AttachChainShape(id BodyID, loopedPoints []core.Vec2) {
	k.mu.Lock()
	defer k.mu.Unlock()
	_, ok := k.bodies[id]
	_ = ok
}

func (k *Kinematic) GetPose(id BodyID) (core.Vec2, float64) {
	k.mu.Lock()
	defer k.mu.Unlock()
	b, ok := k.bodies[id]
	if !ok {
		return core.Vec2{}, 0
	}
	return b.pos, b.angle
}

func (k *Kinematic) SetLinearVelocity(id BodyID, v core.Vec2) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if b, ok := k.bodies[id]; ok {
		b.linVel = v
	}
}

func (k *Kinematic) SetAngularVelocity(id BodyID, omega float64) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if b, ok := k.bodies[id]; ok {
		b.angVel = omega
	}
}

func (k *Kinematic) DestroyBody(id BodyID) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.bodies, id)
}

func (k *Kinematic) SetGravity(g core.Vec2) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.gravity = g
}

// Step advances every dynamic body by dt using Euler integration of its
// last-set velocities, then runs one pairwise separation pass so
// overlapping dynamic bodies push apart (§5's "collisions between cows").
// Gravity is applied to linear velocity only if non-zero — the barn world
// is flat and leaves it at the zero vector.
func (k *Kinematic) Step(dt float64) {
	k.mu.Lock()
	defer k.mu.Unlock()

	for _, b := range k.bodies {
		if b.static {
			continue
		}
		b.linVel = core.Add(b.linVel, core.Scale(k.gravity, dt))
		b.pos = core.Add(b.pos, core.Scale(b.linVel, dt))
		b.angle = core.UnwindAngle(b.angle + b.angVel*dt)
	}

	k.separate()
}

// separate pushes apart any pair of dynamic bodies whose separation
// circles overlap, splitting the correction evenly between them. O(n^2)
// and intentionally simple: it is not a contact solver. ids is sorted
// before the pass so pairwise push order is a function of BodyID alone,
// not Go's randomized map iteration order — without this, three or more
// mutually-overlapping cows would settle into different final positions
// across runs with the same seed (§5 deterministic replay).
func (k *Kinematic) separate() {
	ids := make([]BodyID, 0, len(k.bodies))
	for id, b := range k.bodies {
		if !b.static {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := k.bodies[ids[i]], k.bodies[ids[j]]
			minDist := a.radius + b.radius
			if minDist <= 0 {
				continue
			}
			delta := core.Sub(b.pos, a.pos)
			dist := core.Length(delta)
			if dist >= minDist || dist == 0 {
				continue
			}
			push := core.Scale(core.Normalize(delta), (minDist-dist)/2)
			a.pos = core.Sub(a.pos, push)
			b.pos = core.Add(b.pos, push)
		}
	}
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
