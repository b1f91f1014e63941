package retry

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/vinayprograms/retrykit/events"
	"github.com/vinayprograms/retrykit/logging"
	"github.com/vinayprograms/retrykit/results"
)

// Option configures a Task at construction.
type Option func(*Task)

// WithMaxAttempts sets the attempt budget. Must be at least 1.
func WithMaxAttempts(n int) Option {
	return func(t *Task) {
		t.maxAttempts = n
	}
}

// WithDelay sets the inter-attempt delay. Zero is allowed and is clamped
// to a small baseline at scheduling time; negative delays are rejected.
func WithDelay(d time.Duration) Option {
	return func(t *Task) {
		t.delay = d
	}
}

// WithScheduler sets the scheduler that drives checkpoints.
func WithScheduler(s Scheduler) Option {
	return func(t *Task) {
		t.sched = s
	}
}

// WithClock is shorthand for WithScheduler(NewClockScheduler(clock)).
// Pass a clockwork fake clock to drive a task from test-controlled time.
func WithClock(clock clockwork.Clock) Option {
	return func(t *Task) {
		t.sched = NewClockScheduler(clock)
	}
}

// WithLogger attaches a logger for attempt and termination events.
func WithLogger(log *logging.Logger) Option {
	return func(t *Task) {
		t.log = log
	}
}

// WithEmitter attaches an emitter that receives lifecycle events.
func WithEmitter(e events.Emitter) Option {
	return func(t *Task) {
		t.emitter = e
	}
}

// WithRecorder attaches a recorder that receives the terminal outcome.
func WithRecorder(r results.Recorder) Option {
	return func(t *Task) {
		t.recorder = r
	}
}
