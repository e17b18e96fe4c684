package tick

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// DefaultTPS is the tick rate used when none is specified, matching the
// standard 20 ticks per second of a Bedrock world.
const DefaultTPS = 20

// Loop is a Scheduler driven by a real time.Ticker. All callbacks run on a
// single goroutine, so callbacks never race with one another.
type Loop struct {
	*taskSet

	log    *logrus.Logger
	ticker *time.Ticker
	done   chan struct{}
}

// NewLoop starts a scheduler loop ticking tps times per second. A tps of 0
// or below falls back to DefaultTPS. The loop runs until Close is called.
func NewLoop(log *logrus.Logger, tps int) *Loop {
	if tps <= 0 {
		tps = DefaultTPS
	}
	l := &Loop{
		taskSet: newTaskSet(),
		log:     log,
		ticker:  time.NewTicker(time.Second / time.Duration(tps)),
		done:    make(chan struct{}),
	}
	go l.run()
	return l
}

// run ticks the task set until the loop is closed.
func (l *Loop) run() {
	defer sentry.Recover()

	for {
		select {
		case <-l.done:
			return
		case <-l.ticker.C:
			l.step()
		}
	}
}

// Close stops the loop. Callbacks still registered are never run again.
func (l *Loop) Close() {
	l.ticker.Stop()
	close(l.done)
	if l.log != nil {
		l.log.Debugf("tick loop closed with %v pending task(s)", l.pending())
	}
}
