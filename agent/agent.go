// Package agent defines the capability surface movement code needs from the
// entity it drives. The world that owns the entity implements these
// interfaces; movement code never touches the world directly.
package agent

import (
	"github.com/df-mc/dragonfly/server/world"
	"github.com/go-gl/mathgl/mgl32"
)

// Agent bridges a live entity for the movement engine. Implementations are
// expected to be cheap to poll every tick.
type Agent interface {
	// Valid reports whether the entity still exists in its world. Once Valid
	// returns false, movement code retires itself and no further effectful
	// calls are made.
	Valid() bool
	// Position returns the current position of the entity.
	Position() mgl32.Vec3
	// Rotation returns the current pitch and yaw of the entity in degrees.
	Rotation() (pitch, yaw float32)
	// SetRotation sets the pitch and yaw of the entity in degrees.
	SetRotation(pitch, yaw float32)
	// OnGround reports whether the entity is in contact with a supporting
	// surface.
	OnGround() bool
	// DefaultSpeed returns the default travel speed of the entity. The second
	// return value is false if the entity exposes no movement capability, in
	// which case callers fall back to a fixed constant.
	DefaultSpeed() (float32, bool)
	// SetSpeed overrides the current movement speed of the entity.
	SetSpeed(speed float32)
	// ResetSpeed restores the movement speed of the entity to its default.
	ResetSpeed()
	// Impulse applies an instantaneous velocity impulse to the entity.
	Impulse(vel mgl32.Vec3)
	// Teleport moves the entity to the given position instantly.
	Teleport(pos mgl32.Vec3)
	// CastRay casts a short ray from the entity along dir and returns the
	// first block it hits, or false if nothing within the ray's reach
	// qualifies under the given options.
	CastRay(dir mgl32.Vec3, opts RayOptions) (BlockHit, bool)
	// Tip surfaces transient diagnostic text to whoever is watching the
	// entity. Implementations may discard it.
	Tip(text string)
}

// RayOptions controls which blocks a CastRay call may report.
type RayOptions struct {
	// MaxDistance is the reach of the ray in blocks.
	MaxDistance float32
	// IncludePassable makes the ray report blocks that entities can walk
	// through, such as grass tufts.
	IncludePassable bool
	// IncludeLiquid makes the ray report liquid blocks.
	IncludeLiquid bool
}

// BlockHit describes a block a ray landed on.
type BlockHit interface {
	// Block returns the block that was hit.
	Block() world.Block
	// Above returns the hit one block directly above this one.
	Above() BlockHit
	// Air reports whether the block at this hit is air.
	Air() bool
}
