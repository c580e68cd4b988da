package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/icexin/voxelcore/internal/geom"
)

// Handle identifies a rigid body for its whole life. Handles are never
// reused.
type Handle uuid.UUID

func (h Handle) String() string {
	return uuid.UUID(h).String()
}

// RigidBody is a moving box. Collider is relative to Position.
type RigidBody struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Force    mgl32.Vec3
	InvMass  float32
	Flying   bool
	OnGround bool
	Collider geom.AAQuader
}

// WorldCollider is the collider placed at the body's position.
func (b *RigidBody) WorldCollider() geom.AAQuader {
	return b.Collider.Translated(b.Position)
}

// BodySpec describes a body to spawn.
type BodySpec struct {
	Position mgl32.Vec3
	Collider geom.AAQuader
	InvMass  float32
	Flying   bool
}
