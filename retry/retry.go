package retry

import (
	"errors"
	"time"
)

// Common errors.
var (
	// ErrAlreadyStarted indicates Start was called on a non-idle task.
	ErrAlreadyStarted = errors.New("task already started")

	// ErrTaskTerminated indicates the task has already reached a terminal state.
	ErrTaskTerminated = errors.New("task already terminated")
)

// Defaults for task configuration.
const (
	// DefaultMaxAttempts is the attempt budget when none is configured:
	// try once, no retry.
	DefaultMaxAttempts = 1

	// DefaultDelay is the inter-attempt delay when none is configured.
	DefaultDelay = time.Second

	// baselineDelay is the minimum scheduling delay. A zero configured
	// delay is clamped to this so the checkpoint loop always yields.
	baselineDelay = time.Millisecond
)

// Status represents the lifecycle state of a task.
type Status string

const (
	// StatusIdle indicates the task was created but not started.
	StatusIdle Status = "idle"

	// StatusAttempting indicates the task is scheduled or running attempts.
	StatusAttempting Status = "attempting"

	// StatusSucceeded indicates the operation reported success.
	StatusSucceeded Status = "succeeded"

	// StatusFailed indicates the attempt budget was exhausted.
	StatusFailed Status = "failed"

	// StatusCanceled indicates the task was canceled.
	StatusCanceled Status = "canceled"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if the status is a terminal state.
func (s Status) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusFailed || s == StatusCanceled
}

// AttemptFunc is invoked once per attempt with the zero-based attempt index.
// This is where the caller performs the actual unit of work; it reports
// success by calling Succeed on the task, synchronously or later.
type AttemptFunc func(t *Task, attempt int)

// TerminalFunc is invoked once when the task reaches a terminal state.
type TerminalFunc func(t *Task)

// Observer is notified when a task reaches a terminal state. It is a
// non-owning handle: a task never extends the lifetime of its observer.
// A Group registers itself as the observer of every task added to it.
type Observer interface {
	// OnTaskTerminated is called exactly once per task, on the task's
	// scheduler goroutine, when the task terminates for any reason.
	OnTaskTerminated(t *Task)
}
