// Package tick provides the scheduling primitives that drive agent movement.
// All movement code is written against the Scheduler interface so that tests
// and embedders can substitute their own clock for the default ticker loop.
package tick

// Handle identifies a scheduled callback and may be passed to Cancel to stop
// it from running again.
type Handle int64

// Scheduler schedules callbacks against a world-tick clock.
type Scheduler interface {
	// RunNextTick schedules the callback to run once on the next tick. A
	// callback registered from within another callback does not run until the
	// tick after the current one.
	RunNextTick(fn func()) Handle
	// RunEvery schedules the callback to run every interval ticks, the first
	// run occurring interval ticks from now. An interval below 1 is treated
	// as 1.
	RunEvery(fn func(), interval int64) Handle
	// Cancel stops the callback identified by the handle from running again.
	// Cancelling an unknown or already completed handle is a no-op.
	Cancel(h Handle)
}
