package sim

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/patrol-mc/patrol/agent"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultMovementSpeed is the default travel speed sim agents report.
	DefaultMovementSpeed = 0.1

	gravity       = 0.08
	blockFriction = 0.6
	airFriction   = 0.91
	// rayHeight lifts the obstacle probe's origin off the ground so a ray
	// along the floor does not report the block the agent stands on.
	rayHeight = 0.5
)

// Agent is an entity in a sim World implementing the movement capability
// surface. Call Step once per tick to integrate its kinematics.
type Agent struct {
	log *logrus.Logger
	w   *World

	mu           sync.Mutex
	pos, vel     mgl32.Vec3
	pitch, yaw   float32
	onGround     bool
	speed        float32
	defaultSpeed float32
	valid        bool
}

// NewAgent spawns an agent at the given position, grounded and valid.
func NewAgent(log *logrus.Logger, w *World, pos mgl32.Vec3) *Agent {
	return &Agent{
		log:          log,
		w:            w,
		pos:          pos,
		onGround:     true,
		speed:        DefaultMovementSpeed,
		defaultSpeed: DefaultMovementSpeed,
		valid:        true,
	}
}

// Step integrates one tick of kinematics: gravity, velocity, horizontal
// block collision, landing and friction.
func (a *Agent) Step() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.valid {
		return
	}

	if !a.onGround {
		a.vel[1] -= gravity
	}
	next := a.pos.Add(a.vel)

	// Solid block at the target's feet stops horizontal motion.
	feet := cube.PosFromVec3(mgl32.Vec3{next.X(), next.Y() + 0.01, next.Z()})
	if _, air := a.w.Block(feet).(block.Air); !air && feet.Y() >= 0 {
		next[0], next[2] = a.pos.X(), a.pos.Z()
		a.vel[0], a.vel[2] = 0, 0
	}

	surface := a.w.Surface(int(math32.Floor(next.X())), int(math32.Floor(next.Z())))
	if next.Y() <= surface && a.vel.Y() <= 0 {
		next[1] = surface
		a.vel[1] = 0
		a.onGround = true
	} else {
		a.onGround = next.Y() <= surface
	}
	a.pos = next

	var friction float32 = airFriction
	if a.onGround {
		friction = blockFriction
	}
	a.vel[0] *= friction
	a.vel[2] *= friction
}

// Remove invalidates the agent, as if it were unloaded from the world.
func (a *Agent) Remove() {
	a.mu.Lock()
	a.valid = false
	a.mu.Unlock()
}

func (a *Agent) Valid() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.valid
}

func (a *Agent) Position() mgl32.Vec3 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pos
}

func (a *Agent) Rotation() (pitch, yaw float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pitch, a.yaw
}

func (a *Agent) SetRotation(pitch, yaw float32) {
	a.mu.Lock()
	a.pitch, a.yaw = pitch, yaw
	a.mu.Unlock()
}

func (a *Agent) OnGround() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.onGround
}

func (a *Agent) DefaultSpeed() (float32, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.defaultSpeed, true
}

func (a *Agent) SetSpeed(speed float32) {
	a.mu.Lock()
	a.speed = speed
	a.mu.Unlock()
}

func (a *Agent) ResetSpeed() {
	a.mu.Lock()
	a.speed = a.defaultSpeed
	a.mu.Unlock()
}

func (a *Agent) Impulse(vel mgl32.Vec3) {
	a.mu.Lock()
	a.vel = a.vel.Add(vel)
	a.mu.Unlock()
}

func (a *Agent) Teleport(pos mgl32.Vec3) {
	a.mu.Lock()
	a.pos = pos
	a.vel = mgl32.Vec3{}
	a.mu.Unlock()
}

// CastRay walks the voxel grid from the agent's mid-body along dir and
// returns the first block that is not air, skipping liquids unless included.
func (a *Agent) CastRay(dir mgl32.Vec3, opts agent.RayOptions) (agent.BlockHit, bool) {
	a.mu.Lock()
	origin := a.pos.Add(mgl32.Vec3{0, rayHeight})
	a.mu.Unlock()

	if dir.LenSqr() <= 0 || opts.MaxDistance <= 0 {
		return nil, false
	}
	end := origin.Add(dir.Normalize().Mul(opts.MaxDistance))
	for pos := range blocksBetween(origin, end) {
		b := a.w.Block(pos)
		if _, air := b.(block.Air); air {
			continue
		}
		if liquid(b) && !opts.IncludeLiquid {
			continue
		}
		return blockHit{w: a.w, pos: pos}, true
	}
	return nil, false
}

// Tip surfaces transient status text through the agent's logger.
func (a *Agent) Tip(text string) {
	if a.log != nil {
		a.log.Debug(text)
	}
}

// blockHit is a ray hit inside a sim World.
type blockHit struct {
	w   *World
	pos cube.Pos
}

func (h blockHit) Block() world.Block { return h.w.Block(h.pos) }

func (h blockHit) Above() agent.BlockHit {
	return blockHit{w: h.w, pos: h.pos.Add(cube.Pos{0, 1})}
}

func (h blockHit) Air() bool {
	_, ok := h.w.Block(h.pos).(block.Air)
	return ok
}
