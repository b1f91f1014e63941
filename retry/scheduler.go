package retry

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Scheduler is the single environmental capability a task needs: run a
// callback once, after at least d has elapsed. Implementations must not
// run the callback synchronously from AfterFunc.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// clockScheduler drives callbacks from a clockwork clock. With a real
// clock this is time.AfterFunc; with a fake clock, callbacks fire as the
// test advances time.
type clockScheduler struct {
	clock clockwork.Clock
}

// NewClockScheduler returns a Scheduler backed by the given clock.
func NewClockScheduler(clock clockwork.Clock) Scheduler {
	return &clockScheduler{clock: clock}
}

func (s *clockScheduler) AfterFunc(d time.Duration, fn func()) {
	s.clock.AfterFunc(d, fn)
}

// defaultScheduler returns the production scheduler.
func defaultScheduler() Scheduler {
	return NewClockScheduler(clockwork.NewRealClock())
}
