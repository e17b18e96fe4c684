package movement

// Options adjust how a single leg travels. Legs without explicit options
// inherit the options their queue was created with.
type Options struct {
	// CanJump allows the leg to step up one-block obstacles with a climb
	// impulse. Defaults to true.
	CanJump bool
}

// DefaultOptions returns the options applied when neither the queue nor the
// leg overrides them.
func DefaultOptions() Options {
	return Options{CanJump: true}
}
