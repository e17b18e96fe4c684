// Package movement implements queued, tick-driven locomotion of a single
// agent: a strictly ordered chain of directional legs, each executed as a
// polling state machine against the agent's world capabilities.
package movement

import (
	"io"
	"sync"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/patrol-mc/patrol/agent"
	"github.com/patrol-mc/patrol/game"
	"github.com/patrol-mc/patrol/tick"
	"github.com/sirupsen/logrus"
)

// StartFunc is invoked right before a leg begins its effects.
type StartFunc func(dir game.Direction, distance float32, opts Options)

// Queue owns the ordered chain of pending legs for one agent. At most one leg
// is in flight at any time; legs run strictly in the order they were queued.
type Queue struct {
	log   *logrus.Logger
	a     agent.Agent
	sched tick.Scheduler

	mu       sync.Mutex
	defaults Options
	legs     []*leg
	current  *leg
	handles  *orderedmap.OrderedMap[tick.Handle, struct{}]
	stopped  bool
	started  bool
	finished bool
	done     chan struct{}

	onStart    StartFunc
	onStop     func()
	onComplete func()
}

// New creates a queue bound to the given agent, driven by the given
// scheduler. The defaults are applied to every leg queued without explicit
// options. A nil logger discards all output.
func New(log *logrus.Logger, a agent.Agent, sched tick.Scheduler, defaults Options) *Queue {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Queue{
		log:      log,
		a:        a,
		sched:    sched,
		defaults: defaults,
		handles:  orderedmap.NewOrderedMap[tick.Handle, struct{}](),
		done:     make(chan struct{}),
	}
}

// OnStart sets the handler invoked when a leg begins. Only one handler is
// kept; registering again replaces the previous one. Returns the queue for
// chaining.
func (q *Queue) OnStart(fn StartFunc) *Queue {
	q.mu.Lock()
	q.onStart = fn
	q.mu.Unlock()
	return q
}

// OnStop sets the handler invoked by every Stop call. Returns the queue for
// chaining.
func (q *Queue) OnStop(fn func()) *Queue {
	q.mu.Lock()
	q.onStop = fn
	q.mu.Unlock()
	return q
}

// OnComplete sets the handler invoked once when the queue drains. Returns the
// queue for chaining.
func (q *Queue) OnComplete(fn func()) *Queue {
	q.mu.Lock()
	q.onComplete = fn
	q.mu.Unlock()
	return q
}

// Move appends a leg travelling distance blocks in the given direction. An
// optional Options value overrides the queue defaults for this leg only.
// Returns the queue for chaining.
func (q *Queue) Move(dir game.Direction, distance float32, opts ...Options) *Queue {
	q.mu.Lock()
	o := q.defaults
	if len(opts) > 0 {
		o = opts[0]
	}
	l := newLeg(q, dir, distance, o)
	q.legs = append(q.legs, l)
	q.mu.Unlock()

	if _, ok := dir.Vec(); !ok {
		q.log.Warnf("movement: unknown direction %q queued", dir)
	}
	return q
}

// Start begins draining the queue on the next tick and returns a channel that
// is closed once every queued leg has run or no-opped, in order. The complete
// handler fires at the same moment. Calling Start again returns the same
// channel. The first leg begins no earlier than the next tick, so a Stop call
// issued right after Start prevents every leg from starting.
func (q *Queue) Start() <-chan struct{} {
	q.mu.Lock()
	if q.started {
		q.mu.Unlock()
		return q.done
	}
	q.started = true
	q.mu.Unlock()

	var h tick.Handle
	h = q.sched.RunNextTick(func() {
		q.untrack(h)
		q.advance()
	})
	q.track(h)
	return q.done
}

// Stop marks the queue as stopped, cancels every tracked scheduler handle,
// fires the stop handler and resolves the in-flight leg, causing every
// not-yet-started leg to no-op. It returns the same channel as Start so
// callers can await the drain. Stop is safe to call repeatedly; the stop
// handler fires on every call.
func (q *Queue) Stop() <-chan struct{} {
	q.mu.Lock()
	q.stopped = true
	cur := q.current
	started := q.started
	onStop := q.onStop
	q.mu.Unlock()

	q.clearHandles()
	if onStop != nil {
		onStop()
	}
	if cur != nil {
		cur.resolve()
	} else if started {
		// The drain's kickoff callback may just have been cancelled with the
		// handles above; no-op the remaining legs here so the completion
		// channel still resolves.
		q.advance()
	}
	return q.done
}

// Done returns the completion channel without starting the queue.
func (q *Queue) Done() <-chan struct{} {
	return q.done
}

// advance pops legs off the queue until one actually runs. Legs reached after
// the queue was stopped, or after the agent went away, resolve silently
// without starting their effects.
func (q *Queue) advance() {
	for {
		q.mu.Lock()
		if q.finished {
			q.mu.Unlock()
			return
		}
		if len(q.legs) == 0 {
			q.finished = true
			onComplete := q.onComplete
			q.mu.Unlock()

			close(q.done)
			q.log.Debug("movement: queue drained")
			if onComplete != nil {
				onComplete()
			}
			return
		}
		l := q.legs[0]
		q.legs = q.legs[1:]
		skip := q.stopped
		onStart := q.onStart
		if !skip {
			q.current = l
		}
		q.mu.Unlock()

		if skip || !q.a.Valid() {
			q.mu.Lock()
			q.current = nil
			q.mu.Unlock()
			q.clearHandles()
			continue
		}

		q.log.WithFields(logrus.Fields{
			"leg":       l.id.String(),
			"direction": l.dir,
			"distance":  l.distance,
		}).Debug("movement: leg started")
		if onStart != nil {
			onStart(l.dir, l.distance, l.opts)
		}
		// The start handler may itself have stopped the queue; do not bring
		// the leg's loops up in that case.
		if q.aborted() {
			q.mu.Lock()
			q.current = nil
			q.mu.Unlock()
			q.clearHandles()
			continue
		}
		l.run()
		return
	}
}

// legDone is called by the in-flight leg once it has resolved.
func (q *Queue) legDone() {
	q.mu.Lock()
	q.current = nil
	q.mu.Unlock()
	q.advance()
}

// aborted reports whether in-flight loops must retire on their next check.
func (q *Queue) aborted() bool {
	q.mu.Lock()
	stopped := q.stopped
	q.mu.Unlock()
	return stopped || !q.a.Valid()
}

func (q *Queue) track(h tick.Handle) {
	q.mu.Lock()
	q.handles.Set(h, struct{}{})
	q.mu.Unlock()
}

func (q *Queue) untrack(h tick.Handle) {
	q.mu.Lock()
	q.handles.Delete(h)
	q.mu.Unlock()
}

// clearHandles cancels and forgets every tracked scheduler handle. It runs on
// every exit path of a leg so callbacks never leak past their leg's lifetime.
func (q *Queue) clearHandles() {
	q.mu.Lock()
	hs := make([]tick.Handle, 0, q.handles.Len())
	for el := q.handles.Front(); el != nil; el = el.Next() {
		hs = append(hs, el.Key)
	}
	q.handles = orderedmap.NewOrderedMap[tick.Handle, struct{}]()
	q.mu.Unlock()

	for _, h := range hs {
		q.sched.Cancel(h)
	}
}
