package tick

import (
	"slices"
	"sync"
)

type task struct {
	fn       func()
	interval int64
	next     int64
}

// taskSet is the bookkeeping shared by Loop and Manual. Due callbacks are
// collected under the lock and invoked outside of it, so callbacks may freely
// register or cancel further tasks. A task cancelled while the current tick
// is already executing may still run once more; callers that need hard
// cutoffs check their own stop flag.
type taskSet struct {
	mu     sync.Mutex
	tasks  map[Handle]*task
	nextID Handle
	now    int64
}

func newTaskSet() *taskSet {
	return &taskSet{tasks: make(map[Handle]*task)}
}

func (s *taskSet) RunNextTick(fn func()) Handle {
	return s.add(fn, 1, 0)
}

func (s *taskSet) RunEvery(fn func(), interval int64) Handle {
	if interval < 1 {
		interval = 1
	}
	return s.add(fn, interval, interval)
}

func (s *taskSet) add(fn func(), delay, interval int64) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	h := s.nextID
	s.tasks[h] = &task{fn: fn, interval: interval, next: s.now + delay}
	return h
}

func (s *taskSet) Cancel(h Handle) {
	s.mu.Lock()
	delete(s.tasks, h)
	s.mu.Unlock()
}

// step advances the clock by one tick and runs every due callback, one-shot
// tasks in registration order before being discarded, periodic tasks being
// pushed forward by their interval.
func (s *taskSet) step() {
	s.mu.Lock()
	s.now++

	var due []Handle
	for h, t := range s.tasks {
		if t.next <= s.now {
			due = append(due, h)
		}
	}
	slices.Sort(due)

	fns := make([]func(), 0, len(due))
	for _, h := range due {
		t := s.tasks[h]
		fns = append(fns, t.fn)
		if t.interval == 0 {
			delete(s.tasks, h)
		} else {
			t.next = s.now + t.interval
		}
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (s *taskSet) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}
