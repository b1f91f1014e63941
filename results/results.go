package results

import (
	"context"
	"errors"
	"time"
)

// Common errors.
var (
	ErrNotFound      = errors.New("outcome not found")
	ErrClosed        = errors.New("recorder closed")
	ErrInvalidTaskID = errors.New("invalid task ID")
	ErrInvalidStatus = errors.New("invalid outcome status")
)

// Status represents the terminal state of a task. Only terminal states
// are recorded; an in-flight task has no outcome.
type Status string

const (
	// StatusSucceeded indicates the operation reported success.
	StatusSucceeded Status = "succeeded"

	// StatusFailed indicates the attempt budget was exhausted.
	StatusFailed Status = "failed"

	// StatusCanceled indicates the task was canceled.
	StatusCanceled Status = "canceled"
)

// Valid returns true if the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusCanceled:
		return true
	default:
		return false
	}
}

// Outcome records how a task terminated.
type Outcome struct {
	// TaskID uniquely identifies the task.
	TaskID string

	// Status is the terminal state the task reached.
	Status Status

	// Attempts is the number of attempts performed.
	Attempts int

	// Error is the terminal error message, empty on success.
	Error string

	// StartedAt is when the task was started.
	StartedAt time.Time

	// FinishedAt is when the task terminated.
	FinishedAt time.Time

	// Metadata contains additional key-value data about the outcome.
	Metadata map[string]string
}

// Duration returns how long the task ran from start to termination.
func (o *Outcome) Duration() time.Duration {
	return o.FinishedAt.Sub(o.StartedAt)
}

// Clone returns a deep copy of the outcome.
func (o *Outcome) Clone() *Outcome {
	if o == nil {
		return nil
	}

	clone := &Outcome{
		TaskID:     o.TaskID,
		Status:     o.Status,
		Attempts:   o.Attempts,
		Error:      o.Error,
		StartedAt:  o.StartedAt,
		FinishedAt: o.FinishedAt,
	}

	if o.Metadata != nil {
		clone.Metadata = make(map[string]string, len(o.Metadata))
		for k, v := range o.Metadata {
			clone.Metadata[k] = v
		}
	}

	return clone
}

// Filter specifies criteria for listing outcomes.
type Filter struct {
	// Status filters by terminal status. Empty means all statuses.
	Status Status

	// TaskIDPrefix filters by task ID prefix.
	TaskIDPrefix string

	// FinishedAfter filters outcomes finished after this time.
	FinishedAfter time.Time

	// FinishedBefore filters outcomes finished before this time.
	FinishedBefore time.Time

	// Limit caps the number of outcomes returned. 0 means no limit.
	Limit int
}

// Matches returns true if the outcome matches the filter criteria.
func (f Filter) Matches(o *Outcome) bool {
	if o == nil {
		return false
	}

	if f.Status != "" && o.Status != f.Status {
		return false
	}

	if f.TaskIDPrefix != "" && !hasPrefix(o.TaskID, f.TaskIDPrefix) {
		return false
	}

	if !f.FinishedAfter.IsZero() && !o.FinishedAt.After(f.FinishedAfter) {
		return false
	}
	if !f.FinishedBefore.IsZero() && !o.FinishedAt.Before(f.FinishedBefore) {
		return false
	}

	return true
}

// hasPrefix checks if s starts with prefix.
func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

// Recorder provides outcome storage and retrieval.
type Recorder interface {
	// Record stores a terminal outcome. Recording the same task ID again
	// replaces the previous outcome.
	Record(ctx context.Context, outcome Outcome) error

	// Get retrieves an outcome by task ID.
	// Returns ErrNotFound if no outcome exists.
	Get(ctx context.Context, taskID string) (*Outcome, error)

	// List returns outcomes matching the filter criteria.
	List(filter Filter) ([]*Outcome, error)

	// Delete removes an outcome by task ID.
	// Returns ErrNotFound if no outcome exists.
	Delete(ctx context.Context, taskID string) error

	// Close shuts down the recorder and releases resources.
	Close() error
}

// ValidateOutcome checks if an outcome can be recorded.
func ValidateOutcome(o Outcome) error {
	if o.TaskID == "" {
		return ErrInvalidTaskID
	}
	if !o.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}
