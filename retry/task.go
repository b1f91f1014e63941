package retry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	rkerr "github.com/vinayprograms/retrykit/errors"
	"github.com/vinayprograms/retrykit/events"
	"github.com/vinayprograms/retrykit/logging"
	"github.com/vinayprograms/retrykit/results"
)

// Task is a single bounded-retry operation. It schedules an attempt,
// waits for the operation body to report success, and decides at each
// checkpoint whether to retry, succeed, fail, or stop because canceled.
//
// A task is identified by a random token assigned at construction; two
// tasks with identical configuration are distinct entities.
type Task struct {
	id          string
	maxAttempts int
	delay       time.Duration
	sched       Scheduler
	log         *logging.Logger
	emitter     events.Emitter
	recorder    results.Recorder

	mu        sync.Mutex
	status    Status
	attempts  int
	succeeded bool
	canceled  bool
	onAttempt AttemptFunc
	onSuccess TerminalFunc
	onFail    TerminalFunc
	onCancel  TerminalFunc
	observer  Observer
	termErr   error
	startedAt time.Time
	done      chan struct{}
}

// New creates a task with the given options. The returned task is idle;
// callbacks may be registered until Start is called.
func New(opts ...Option) (*Task, error) {
	t := &Task{
		id:          uuid.NewString(),
		maxAttempts: DefaultMaxAttempts,
		delay:       DefaultDelay,
		status:      StatusIdle,
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.maxAttempts < 1 {
		return nil, rkerr.InvalidConfig("max attempts must be at least 1", rkerr.WithTaskID(t.id))
	}
	if t.delay < 0 {
		return nil, rkerr.InvalidConfig("delay must be non-negative", rkerr.WithTaskID(t.id))
	}
	if t.sched == nil {
		t.sched = defaultScheduler()
	}

	return t, nil
}

// ID returns the task's identity token.
func (t *Task) ID() string {
	return t.id
}

// MaxAttempts returns the configured attempt budget.
func (t *Task) MaxAttempts() int {
	return t.maxAttempts
}

// Delay returns the configured inter-attempt delay.
func (t *Task) Delay() time.Duration {
	return t.delay
}

// Status returns the current lifecycle state.
func (t *Task) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Attempts returns the number of attempts performed so far.
func (t *Task) Attempts() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.attempts
}

// Canceled returns true once Cancel has been called.
func (t *Task) Canceled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.canceled
}

// Err returns the terminal error: an EXHAUSTED error after failure, a
// CANCELED error after cancellation, nil otherwise (including success).
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.termErr
}

// Done returns a channel closed after the terminal callback has been
// delivered. Useful for waiting on a standalone task.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// OnAttempt registers the operation body, called once per attempt with
// the zero-based attempt index. Last registration wins. Must be called
// before Start; later calls panic.
func (t *Task) OnAttempt(fn AttemptFunc) *Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.requireIdle("OnAttempt")
	t.onAttempt = fn
	return t
}

// OnSuccess registers the success handler. Last registration wins.
// Must be called before Start; later calls panic.
func (t *Task) OnSuccess(fn TerminalFunc) *Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.requireIdle("OnSuccess")
	t.onSuccess = fn
	return t
}

// OnFail registers the exhaustion handler. Last registration wins.
// Must be called before Start; later calls panic.
func (t *Task) OnFail(fn TerminalFunc) *Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.requireIdle("OnFail")
	t.onFail = fn
	return t
}

// OnCancel registers the cancellation handler. Last registration wins.
// Must be called before Start; later calls panic.
func (t *Task) OnCancel(fn TerminalFunc) *Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.requireIdle("OnCancel")
	t.onCancel = fn
	return t
}

// requireIdle guards callback registration. Caller holds t.mu.
func (t *Task) requireIdle(method string) {
	if t.status != StatusIdle {
		panic("retry: " + method + " called after Start")
	}
}

// setObserver registers the termination observer, replacing any previous
// one. Returns ErrTaskTerminated if the task has already terminated,
// since its notification has already been delivered.
func (t *Task) setObserver(obs Observer) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status.IsTerminal() {
		return ErrTaskTerminated
	}
	t.observer = obs
	return nil
}

// Start transitions the task from idle to attempting and schedules the
// first checkpoint. Starting a non-idle task returns ErrAlreadyStarted.
func (t *Task) Start() error {
	t.mu.Lock()
	if t.status != StatusIdle {
		t.mu.Unlock()
		return ErrAlreadyStarted
	}
	t.status = StatusAttempting
	t.startedAt = time.Now()
	d := t.scheduleDelay()
	t.mu.Unlock()

	if t.log != nil {
		t.log.WithTask(t.id).Debug("task started", map[string]interface{}{
			"max_attempts": t.maxAttempts,
			"delay":        t.delay.String(),
		})
	}
	t.sched.AfterFunc(d, t.checkpoint)
	return nil
}

// Cancel requests cancellation. It may be called at any time, from any
// goroutine. It never interrupts an attempt already in flight; the next
// checkpoint observes the flag and terminates the task. Cancellation
// takes priority over success at the checkpoint.
func (t *Task) Cancel() {
	t.mu.Lock()
	t.canceled = true
	t.mu.Unlock()
}

// Succeed marks the operation as successful. The operation body calls
// this, synchronously inside the attempt or later from another
// goroutine; the next checkpoint observes the flag and terminates the
// task unless it has been canceled.
func (t *Task) Succeed() {
	t.mu.Lock()
	t.succeeded = true
	t.mu.Unlock()
}

// scheduleDelay returns the effective scheduling delay. Caller holds t.mu.
func (t *Task) scheduleDelay() time.Duration {
	if t.delay < baselineDelay {
		return baselineDelay
	}
	return t.delay
}

// checkpoint evaluates the task state and either terminates the task or
// performs the next attempt. Checkpoints are strictly sequential: each
// one schedules at most one successor, so callback delivery for a single
// task is never concurrent with itself.
func (t *Task) checkpoint() {
	t.mu.Lock()

	switch {
	case t.canceled:
		// Cancellation wins over everything, including a success flag
		// set before the cancel was observed.
		t.status = StatusCanceled
		t.termErr = rkerr.Canceled(t.id, rkerr.WithAttempt(t.attempts))
		obs, cb, attempts := t.observer, t.onCancel, t.attempts
		t.mu.Unlock()

		if cb != nil {
			cb(t)
		}
		if obs != nil {
			obs.OnTaskTerminated(t)
		}
		t.finish(results.StatusCanceled, attempts)

	case t.succeeded:
		// Success is checked before exhaustion: an operation that
		// succeeds on its final attempt has spent its whole budget by
		// the time this checkpoint runs, and must still succeed.
		t.status = StatusSucceeded
		obs, cb, attempts := t.observer, t.onSuccess, t.attempts
		t.mu.Unlock()

		// The observer is notified before the success callback so that
		// a group tracking this task never races with success-dependent
		// logic. The fail and cancel paths notify after the callback.
		if obs != nil {
			obs.OnTaskTerminated(t)
		}
		if cb != nil {
			cb(t)
		}
		t.finish(results.StatusSucceeded, attempts)

	case t.attempts == t.maxAttempts:
		t.status = StatusFailed
		t.termErr = rkerr.Exhausted(t.id, t.attempts)
		obs, cb, attempts := t.observer, t.onFail, t.attempts
		t.mu.Unlock()

		if cb != nil {
			cb(t)
		}
		if obs != nil {
			obs.OnTaskTerminated(t)
		}
		t.finish(results.StatusFailed, attempts)

	default:
		n := t.attempts
		fn := t.onAttempt
		t.mu.Unlock()

		t.emit(events.TypeAttempt, n)
		if t.log != nil {
			t.log.AttemptStart(t.id, n, t.maxAttempts)
		}
		if fn != nil {
			fn(t, n)
		}

		t.mu.Lock()
		t.attempts = n + 1
		d := t.scheduleDelay()
		t.mu.Unlock()
		t.sched.AfterFunc(d, t.checkpoint)
	}
}

// finish emits the terminal event, records the outcome and closes the
// done channel. Runs once, on the checkpoint goroutine, after the
// terminal callback and observer notification have been delivered.
func (t *Task) finish(status results.Status, attempts int) {
	switch status {
	case results.StatusSucceeded:
		t.emit(events.TypeSucceeded, attempts)
		if t.log != nil {
			t.log.TaskSucceeded(t.id, attempts, time.Since(t.startedAt))
		}
	case results.StatusFailed:
		t.emit(events.TypeFailed, attempts)
		if t.log != nil {
			t.log.TaskFailed(t.id, attempts, time.Since(t.startedAt))
		}
	case results.StatusCanceled:
		t.emit(events.TypeCanceled, attempts)
		if t.log != nil {
			t.log.TaskCanceled(t.id, attempts)
		}
	}

	if t.recorder != nil {
		outcome := results.Outcome{
			TaskID:     t.id,
			Status:     status,
			Attempts:   attempts,
			StartedAt:  t.startedAt,
			FinishedAt: time.Now(),
		}
		if err := t.Err(); err != nil {
			outcome.Error = err.Error()
		}
		if err := t.recorder.Record(context.Background(), outcome); err != nil && t.log != nil {
			t.log.WithTask(t.id).Warn("outcome not recorded", map[string]interface{}{"error": err.Error()})
		}
	}

	close(t.done)
}

// emit publishes a lifecycle event if an emitter is attached.
func (t *Task) emit(typ events.Type, attempt int) {
	if t.emitter == nil {
		return
	}
	ev := events.Event{
		TaskID:      t.id,
		Type:        typ,
		Attempt:     attempt,
		MaxAttempts: t.maxAttempts,
		Timestamp:   time.Now().UTC(),
	}
	if err := t.emitter.Emit(ev); err != nil && t.log != nil {
		t.log.WithTask(t.id).Warn("event not emitted", map[string]interface{}{"error": err.Error()})
	}
}
