package patrol

import (
	"github.com/patrol-mc/patrol/agent"
	"github.com/patrol-mc/patrol/game"
	"github.com/patrol-mc/patrol/movement"
	"github.com/patrol-mc/patrol/tick"
	"github.com/sirupsen/logrus"
)

// Spawn is a notification that an entity appeared in the world.
type Spawn struct {
	// Agent drives the spawned entity.
	Agent agent.Agent
	// Kind is the entity kind identifier.
	Kind string
	// Beneath is the identifier of the block below the spawn position.
	Beneath string
}

// Watcher starts patrol routes for matching spawns.
type Watcher struct {
	log   *logrus.Logger
	sched tick.Scheduler
	cfg   Config
}

// NewWatcher returns a watcher applying the given configuration.
func NewWatcher(log *logrus.Logger, sched tick.Scheduler, cfg Config) *Watcher {
	return &Watcher{log: log, sched: sched, cfg: cfg}
}

// HandleSpawn checks the spawn against the configured match condition. For a
// match it builds a movement queue walking the configured route, starts it
// and returns it; callers await the route through the queue's Done channel.
// Non-matching spawns return false.
func (w *Watcher) HandleSpawn(s Spawn) (*movement.Queue, bool) {
	if s.Kind != w.cfg.Match.Kind || s.Beneath != w.cfg.Match.Beneath {
		return nil, false
	}

	q := movement.New(w.log, s.Agent, w.sched, movement.DefaultOptions())
	for _, leg := range w.cfg.Route {
		if leg.CanJump != nil {
			q.Move(game.Direction(leg.Direction), leg.Distance, movement.Options{CanJump: *leg.CanJump})
		} else {
			q.Move(game.Direction(leg.Direction), leg.Distance)
		}
	}

	if w.log != nil {
		q.OnStart(func(dir game.Direction, distance float32, _ movement.Options) {
			w.log.Infof("patrol: walking %v block(s) %v", distance, dir)
		}).OnComplete(func() {
			w.log.Infof("patrol: route for %q complete", s.Kind)
		})
	}

	q.Start()
	return q, true
}
