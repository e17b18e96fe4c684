package movement

const (
	// FallbackSpeed is the travel speed used when the agent exposes no
	// movement capability of its own.
	FallbackSpeed = 0.1
	// ClimbImpulse is the fixed upward impulse applied to start a one-block
	// step-up over an obstacle.
	ClimbImpulse = 0.5
	// ObstacleReach is how far ahead of the agent the obstacle probe looks,
	// in blocks.
	ObstacleReach = 1.0

	// climbSustainScale is the fraction of the horizontal impulse applied
	// while airborne mid-climb to carry the agent over the obstacle.
	climbSustainScale = 0.5
	// moveInterval is the tick period of the movement loop. The rotation
	// loop reschedules itself every tick instead, as orientation correction
	// wants tighter cadence than impulse application.
	moveInterval = 3
)
