// Package events provides the task lifecycle event stream.
//
// A task configured with an emitter publishes one event per attempt and
// one terminal event (succeeded, failed, or canceled). Events carry the
// task ID, attempt counter and budget, and serialize to JSON.
//
// Subjects follow a NATS-style scheme:
//
//	retry.task.<task-id>.attempt
//	retry.task.<task-id>.succeeded
//
// # Implementations
//
// MemoryEmitter fans events out to in-process subscribers over buffered
// channels; a subscriber that falls behind misses events rather than
// blocking the retry loop. NATSEmitter publishes the same events to a
// NATS server for cross-process consumers.
//
// # Usage
//
//	emitter := events.NewMemoryEmitter(0)
//	sub, _ := emitter.Subscribe()
//
//	task, _ := retry.New(
//	    retry.WithMaxAttempts(3),
//	    retry.WithEmitter(emitter),
//	)
//
//	for ev := range sub.Events() {
//	    fmt.Println(ev.Subject())
//	}
package events
