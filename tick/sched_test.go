package tick

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunNextTickRunsOnceNextTick(t *testing.T) {
	m := NewManual()
	runs := 0
	m.RunNextTick(func() { runs++ })

	require.Zero(t, runs)
	m.Advance(1)
	require.Equal(t, 1, runs)
	m.Advance(5)
	require.Equal(t, 1, runs)
	require.Zero(t, m.Pending())
}

func TestRunEveryCadence(t *testing.T) {
	m := NewManual()
	runs := 0
	m.RunEvery(func() { runs++ }, 3)

	m.Advance(2)
	require.Zero(t, runs)
	m.Advance(1)
	require.Equal(t, 1, runs)
	m.Advance(9)
	require.Equal(t, 4, runs)
}

func TestCancelStopsTask(t *testing.T) {
	m := NewManual()
	runs := 0
	h := m.RunEvery(func() { runs++ }, 1)

	m.Advance(2)
	require.Equal(t, 2, runs)

	m.Cancel(h)
	m.Advance(5)
	require.Equal(t, 2, runs)
	require.Zero(t, m.Pending())

	// Cancelling again, or cancelling an unknown handle, is a no-op.
	m.Cancel(h)
	m.Cancel(Handle(999))
}

func TestRegistrationFromCallbackDefersOneTick(t *testing.T) {
	m := NewManual()
	var order []string
	m.RunNextTick(func() {
		order = append(order, "outer")
		m.RunNextTick(func() { order = append(order, "inner") })
	})

	m.Advance(1)
	require.Equal(t, []string{"outer"}, order)
	m.Advance(1)
	require.Equal(t, []string{"outer", "inner"}, order)
}

func TestCallbacksRunInRegistrationOrder(t *testing.T) {
	m := NewManual()
	var order []int
	for i := range 5 {
		i := i
		m.RunNextTick(func() { order = append(order, i) })
	}
	m.Advance(1)
	require.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestIntervalBelowOneClamped(t *testing.T) {
	m := NewManual()
	runs := 0
	m.RunEvery(func() { runs++ }, 0)
	m.Advance(3)
	require.Equal(t, 3, runs)
}
