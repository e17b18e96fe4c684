package movement

import (
	"fmt"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/patrol-mc/patrol/agent"
	"github.com/patrol-mc/patrol/game"
	"github.com/patrol-mc/patrol/tick"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
)

// leg executes a single directional movement command. Two loops drive it: a
// periodic movement loop applying impulses and tracking distance, and a
// faster self-rescheduling rotation loop keeping the agent facing its
// direction of travel. Both observe the queue's stop flag and the agent's
// validity at the top of every run, which is the only cancellation mechanism.
//
// A leg whose target distance can never be satisfied, such as one blocked by
// a wall with no valid step-up, polls until stopped externally. There is no
// timeout.
type leg struct {
	id       xid.ID
	q        *Queue
	dir      game.Direction
	vec      mgl32.Vec3
	distance float32
	opts     Options

	impulse  mgl32.Vec3
	traveled float32
	last     mgl32.Vec3
	climbing bool
	resolved atomic.Bool
}

func newLeg(q *Queue, dir game.Direction, distance float32, opts Options) *leg {
	vec, _ := dir.Vec()
	return &leg{id: xid.New(), q: q, dir: dir, vec: vec, distance: distance, opts: opts}
}

// run prepares the leg and registers both loops with the scheduler.
func (l *leg) run() {
	a := l.q.a

	speed, ok := a.DefaultSpeed()
	if !ok {
		speed = FallbackSpeed
	}
	l.impulse = l.vec.Mul(speed)
	l.last = game.BlockCenter(a.Position())

	// Only this leg's explicit impulses may drive the agent forward.
	a.SetSpeed(0)
	pitch, _ := a.Rotation()
	a.SetRotation(pitch, game.Yaw(l.vec))

	l.q.track(l.q.sched.RunEvery(l.moveTick, moveInterval))
	l.scheduleRotate()
}

// moveTick is one step of the movement loop. The first matching rule wins.
func (l *leg) moveTick() {
	if l.q.aborted() {
		l.resolve()
		return
	}
	a := l.q.a

	hit, obstacle := a.CastRay(l.vec, agent.RayOptions{MaxDistance: ObstacleReach})
	switch {
	case l.opts.CanJump && obstacle && hit.Above().Air() && a.OnGround() && !l.climbing:
		a.Impulse(mgl32.Vec3{0, ClimbImpulse})
		l.climbing = true

	case l.climbing && !a.OnGround():
		a.Impulse(l.impulse.Mul(climbSustainScale))

	case l.climbing:
		l.climbing = false

	case a.OnGround():
		pos := game.BlockCenter(a.Position())
		l.traveled += game.HzDist(l.last, pos)
		l.last = pos
		if l.traveled < l.distance {
			a.Impulse(l.impulse)
			return
		}
		a.ResetSpeed()
		a.Teleport(game.BlockCenter(a.Position()))
		l.resolve()

	default:
		// Airborne without climbing: wait for the next tick.
	}
}

// scheduleRotate registers the rotation loop for the next tick.
func (l *leg) scheduleRotate() {
	var h tick.Handle
	h = l.q.sched.RunNextTick(func() {
		l.q.untrack(h)
		l.rotateTick()
	})
	l.q.track(h)
}

// rotateTick realigns the agent's yaw with the direction of travel and
// reschedules itself until the leg has covered its distance. Termination is
// natural: once the distance is reached it simply does not reschedule.
func (l *leg) rotateTick() {
	if l.q.aborted() {
		l.resolve()
		return
	}
	if l.traveled >= l.distance {
		return
	}
	a := l.q.a
	pitch, _ := a.Rotation()
	yaw := game.Yaw(l.impulse)
	a.SetRotation(pitch, yaw)
	a.Tip(fmt.Sprintf("facing %s (%.1f)", l.dir, yaw))
	l.scheduleRotate()
}

// resolve retires the leg exactly once, clearing every tracked handle before
// handing control back to the queue.
func (l *leg) resolve() {
	if !l.resolved.CompareAndSwap(false, true) {
		return
	}
	l.q.clearHandles()
	l.q.log.WithFields(logrus.Fields{
		"leg":      l.id.String(),
		"traveled": l.traveled,
	}).Debug("movement: leg resolved")
	l.q.legDone()
}
