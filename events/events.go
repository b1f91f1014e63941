package events

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Common errors.
var (
	ErrClosed         = errors.New("emitter closed")
	ErrInvalidEvent   = errors.New("invalid event")
	ErrInvalidSubject = errors.New("invalid subject")
)

// SubjectPrefix is the subject prefix for task lifecycle events.
const SubjectPrefix = "retry.task."

// Type identifies a lifecycle event.
type Type string

const (
	// TypeAttempt is emitted when an attempt begins.
	TypeAttempt Type = "attempt"

	// TypeSucceeded is emitted when the task terminates successfully.
	TypeSucceeded Type = "succeeded"

	// TypeFailed is emitted when the attempt budget is exhausted.
	TypeFailed Type = "failed"

	// TypeCanceled is emitted when the task terminates by cancellation.
	TypeCanceled Type = "canceled"
)

// Valid returns true if the type is a known value.
func (t Type) Valid() bool {
	switch t {
	case TypeAttempt, TypeSucceeded, TypeFailed, TypeCanceled:
		return true
	default:
		return false
	}
}

// Terminal returns true if the event type reports a terminal state.
func (t Type) Terminal() bool {
	return t == TypeSucceeded || t == TypeFailed || t == TypeCanceled
}

// Event is a single task lifecycle event.
type Event struct {
	// TaskID identifies the task that produced the event.
	TaskID string `json:"task_id"`

	// Type is the lifecycle event type.
	Type Type `json:"type"`

	// Attempt is the zero-based attempt index for attempt events, or the
	// total attempts performed for terminal events.
	Attempt int `json:"attempt"`

	// MaxAttempts is the task's configured attempt budget.
	MaxAttempts int `json:"max_attempts"`

	// Timestamp is when the event was produced.
	Timestamp time.Time `json:"timestamp"`
}

// Marshal serializes an event to JSON.
func (e *Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// Unmarshal deserializes an event from JSON.
func Unmarshal(data []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Subject returns the subject for this event, e.g.
// "retry.task.<task-id>.succeeded".
func (e *Event) Subject() string {
	return SubjectPrefix + e.TaskID + "." + string(e.Type)
}

// Validate checks that the event can be emitted.
func (e *Event) Validate() error {
	if e.TaskID == "" || strings.ContainsAny(e.TaskID, " \t.*>") {
		return ErrInvalidEvent
	}
	if !e.Type.Valid() {
		return ErrInvalidEvent
	}
	return nil
}

// Emitter publishes task lifecycle events.
type Emitter interface {
	// Emit publishes a single event. Emit never blocks on slow consumers.
	Emit(e Event) error

	// Close shuts down the emitter and releases resources.
	Close() error
}

// Subscription represents an active event subscription.
type Subscription interface {
	// Events returns the channel for incoming events.
	// The channel is closed when the subscription ends.
	Events() <-chan Event

	// Cancel cancels the subscription.
	Cancel() error
}
