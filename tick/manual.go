package tick

// Manual is a Scheduler whose clock only moves when Advance is called. It is
// intended for tests and deterministic replays.
type Manual struct {
	*taskSet
}

// NewManual returns a manual scheduler positioned before its first tick.
func NewManual() *Manual {
	return &Manual{taskSet: newTaskSet()}
}

// Advance moves the clock forward by n ticks, running due callbacks on each.
func (m *Manual) Advance(n int) {
	for range n {
		m.step()
	}
}

// Now returns the current tick.
func (m *Manual) Now() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns the number of callbacks still registered.
func (m *Manual) Pending() int {
	return m.pending()
}
