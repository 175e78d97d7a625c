// Package physics defines the black-box rigid-body interface the barn
// coordinator and cow controller drive (§6), plus a minimal in-memory
// implementation (Kinematic) sufficient to run and test the simulation
// without a real physics engine wired in by the host. Kinematic is not a
// rigid-body solver: it has no contacts, restitution or joints.
package physics

import "github.com/dairytech/barnsim/internal/core"

// BodyID identifies a body created by a World. Zero is never a valid ID.
type BodyID int

// World is the physics engine surface consumed by the rest of barnsim
// (§6). Any implementation — a real rigid-body engine wired in by a
// host, or Kinematic below — can sit behind this interface.
type World interface {
	CreateStaticBody(pose core.Vec2) BodyID
	CreateDynamicBody(pose core.Vec2, density float64) BodyID
	AttachBoxShape(id BodyID, halfExtents core.Vec2, roundedRadius float64)
	AttachChainShape(id BodyID, loopedPoints []core.Vec2)
	GetPose(id BodyID) (core.Vec2, float64)
	SetLinearVelocity(id BodyID, v core.Vec2)
	SetAngularVelocity(id BodyID, omega float64)
	DestroyBody(id BodyID)
	SetGravity(g core.Vec2)
}
