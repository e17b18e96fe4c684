package movement

import (
	"testing"

	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/patrol-mc/patrol/agent"
	"github.com/patrol-mc/patrol/game"
	"github.com/patrol-mc/patrol/tick"
	"github.com/stretchr/testify/require"
)

// fakeAgent is a hand-rolled agent whose world is an infinite flat plane.
// Horizontal impulses displace it instantly; hooks allow tests to script
// obstacle probes and impulse physics. Tests drive everything through a
// tick.Manual, so no locking is needed.
type fakeAgent struct {
	valid        bool
	pos          mgl32.Vec3
	pitch, yaw   float32
	onGround     bool
	speed        float32
	defaultSpeed float32
	hasDefault   bool

	impulses  []mgl32.Vec3
	teleports int
	tips      []string

	castRay func() (agent.BlockHit, bool)
	impulse func(v mgl32.Vec3)
}

func newFakeAgent() *fakeAgent {
	return &fakeAgent{valid: true, onGround: true, defaultSpeed: 1, hasDefault: true}
}

func (f *fakeAgent) Valid() bool                     { return f.valid }
func (f *fakeAgent) Position() mgl32.Vec3            { return f.pos }
func (f *fakeAgent) Rotation() (float32, float32)    { return f.pitch, f.yaw }
func (f *fakeAgent) SetRotation(pitch, yaw float32)  { f.pitch, f.yaw = pitch, yaw }
func (f *fakeAgent) OnGround() bool                  { return f.onGround }
func (f *fakeAgent) DefaultSpeed() (float32, bool)   { return f.defaultSpeed, f.hasDefault }
func (f *fakeAgent) SetSpeed(speed float32)          { f.speed = speed }
func (f *fakeAgent) ResetSpeed()                     { f.speed = f.defaultSpeed }
func (f *fakeAgent) Teleport(pos mgl32.Vec3)         { f.pos = pos; f.teleports++ }
func (f *fakeAgent) Tip(text string)                 { f.tips = append(f.tips, text) }

func (f *fakeAgent) Impulse(v mgl32.Vec3) {
	f.impulses = append(f.impulses, v)
	if f.impulse != nil {
		f.impulse(v)
		return
	}
	f.pos = f.pos.Add(v)
}

func (f *fakeAgent) CastRay(dir mgl32.Vec3, opts agent.RayOptions) (agent.BlockHit, bool) {
	if f.castRay != nil {
		return f.castRay()
	}
	return nil, false
}

// fakeHit is a scripted ray hit.
type fakeHit struct {
	air      bool
	aboveAir bool
}

func (h fakeHit) Block() world.Block {
	if h.air {
		return block.Air{}
	}
	return block.Stone{}
}
func (h fakeHit) Above() agent.BlockHit { return fakeHit{air: h.aboveAir} }
func (h fakeHit) Air() bool             { return h.air }

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestLegsRunInOrder(t *testing.T) {
	sched := tick.NewManual()
	fa := newFakeAgent()

	var starts []game.Direction
	completes := 0
	q := New(nil, fa, sched, Options{CanJump: false}).
		OnStart(func(dir game.Direction, distance float32, _ Options) {
			starts = append(starts, dir)
		}).
		OnComplete(func() { completes++ })

	done := q.Move(game.DirectionNorth, 5).Move(game.DirectionEast, 5).Start()
	sched.Advance(120)

	require.Equal(t, []game.Direction{game.DirectionNorth, game.DirectionEast}, starts)
	require.Equal(t, 1, completes)
	require.True(t, isClosed(done))

	for _, v := range fa.impulses {
		require.Zero(t, v.Y(), "no climb impulses expected on open ground")
	}
	// Final snap-to-grid of each leg.
	require.Equal(t, 2, fa.teleports)
	require.Equal(t, mgl32.Vec3{5.5, 0, -4.5}, fa.pos)

	require.Zero(t, q.handles.Len())
	require.Zero(t, sched.Pending())
}

func TestSecondLegWaitsForFirst(t *testing.T) {
	sched := tick.NewManual()
	fa := newFakeAgent()

	var starts []game.Direction
	q := New(nil, fa, sched, DefaultOptions()).
		OnStart(func(dir game.Direction, _ float32, _ Options) { starts = append(starts, dir) })
	q.Move(game.DirectionNorth, 5).Move(game.DirectionEast, 5).Start()

	// Well into leg one, leg two must not have begun.
	sched.Advance(8)
	require.Equal(t, []game.Direction{game.DirectionNorth}, starts)
	require.NotNil(t, q.current)

	sched.Advance(120)
	require.Equal(t, []game.Direction{game.DirectionNorth, game.DirectionEast}, starts)
}

func TestStopBeforeAnyLegBegins(t *testing.T) {
	sched := tick.NewManual()
	fa := newFakeAgent()

	starts, stops := 0, 0
	q := New(nil, fa, sched, DefaultOptions()).
		OnStart(func(game.Direction, float32, Options) { starts++ }).
		OnStop(func() { stops++ })
	q.Move(game.DirectionNorth, 3).Move(game.DirectionEast, 3).Move(game.DirectionSouth, 3)

	done := q.Start()
	stopDone := q.Stop()
	require.True(t, isClosed(done))
	require.True(t, isClosed(stopDone))

	sched.Advance(50)
	require.Zero(t, starts)
	require.Equal(t, 1, stops)
	require.Empty(t, fa.impulses)
	require.Zero(t, q.handles.Len())
	require.Zero(t, sched.Pending())
}

func TestStopNoOpsRemainingLegs(t *testing.T) {
	sched := tick.NewManual()
	fa := newFakeAgent()

	starts := 0
	q := New(nil, fa, sched, DefaultOptions()).
		OnStart(func(game.Direction, float32, Options) { starts++ })
	q.Move(game.DirectionNorth, 50).Move(game.DirectionEast, 5).Move(game.DirectionSouth, 5)

	done := q.Start()
	sched.Advance(10)
	require.Equal(t, 1, starts)

	q.Stop()
	require.True(t, isClosed(done))
	require.Equal(t, 1, starts)

	applied := len(fa.impulses)
	sched.Advance(50)
	require.Equal(t, applied, len(fa.impulses), "no impulses after stop")
	require.Zero(t, q.handles.Len())
	require.Zero(t, sched.Pending())
}

func TestRepeatedStopFiresHandlerEachCall(t *testing.T) {
	sched := tick.NewManual()
	fa := newFakeAgent()

	stops := 0
	q := New(nil, fa, sched, DefaultOptions()).OnStop(func() { stops++ })
	q.Move(game.DirectionNorth, 2).Start()
	sched.Advance(5)

	q.Stop()
	q.Stop()
	q.Stop()
	require.Equal(t, 3, stops)
	require.Zero(t, q.handles.Len())
}

func TestAgentInvalidatedMidLeg(t *testing.T) {
	sched := tick.NewManual()
	fa := newFakeAgent()

	starts, completes := 0, 0
	q := New(nil, fa, sched, DefaultOptions()).
		OnStart(func(game.Direction, float32, Options) { starts++ }).
		OnComplete(func() { completes++ })
	done := q.Move(game.DirectionNorth, 50).Move(game.DirectionEast, 5).Start()

	sched.Advance(10)
	require.Equal(t, 1, starts)

	fa.valid = false
	sched.Advance(10)

	// The in-flight leg retired and the queued leg never started, but the
	// chain still drained.
	require.Equal(t, 1, starts)
	require.Equal(t, 1, completes)
	require.True(t, isClosed(done))
	require.Zero(t, q.handles.Len())
	require.Zero(t, sched.Pending())
}

func TestAgentInvalidBeforeStart(t *testing.T) {
	sched := tick.NewManual()
	fa := newFakeAgent()
	fa.valid = false

	starts, completes := 0, 0
	q := New(nil, fa, sched, DefaultOptions()).
		OnStart(func(game.Direction, float32, Options) { starts++ }).
		OnComplete(func() { completes++ })
	done := q.Move(game.DirectionNorth, 5).Move(game.DirectionEast, 5).Start()

	sched.Advance(5)
	require.Zero(t, starts)
	require.Equal(t, 1, completes)
	require.True(t, isClosed(done))
}

func TestLegOptionsOverrideDefaults(t *testing.T) {
	sched := tick.NewManual()
	fa := newFakeAgent()

	var got []Options
	q := New(nil, fa, sched, Options{CanJump: false}).
		OnStart(func(_ game.Direction, _ float32, opts Options) { got = append(got, opts) })
	q.Move(game.DirectionNorth, 1).
		Move(game.DirectionEast, 1, Options{CanJump: true}).
		Start()
	sched.Advance(60)

	require.Equal(t, []Options{{CanJump: false}, {CanJump: true}}, got)
}
