package events

import (
	"testing"
	"time"
)

func attemptEvent(taskID string, attempt int) Event {
	return Event{
		TaskID:      taskID,
		Type:        TypeAttempt,
		Attempt:     attempt,
		MaxAttempts: 5,
		Timestamp:   time.Now(),
	}
}

func TestMemoryEmitterDelivery(t *testing.T) {
	em := NewMemoryEmitter(0)
	defer em.Close()

	sub, err := em.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := em.Emit(attemptEvent("task-1", i)); err != nil {
			t.Fatalf("Emit failed: %v", err)
		}
	}

	for i := 0; i < 3; i++ {
		select {
		case e := <-sub.Events():
			if e.Attempt != i {
				t.Errorf("Expected attempt %d, got %d", i, e.Attempt)
			}
		case <-time.After(time.Second):
			t.Fatalf("Timed out waiting for event %d", i)
		}
	}
}

func TestMemoryEmitterMultipleSubscribers(t *testing.T) {
	em := NewMemoryEmitter(4)
	defer em.Close()

	subA, _ := em.Subscribe()
	subB, _ := em.Subscribe()

	if err := em.Emit(attemptEvent("task-1", 0)); err != nil {
		t.Fatalf("Emit failed: %v", err)
	}

	for name, sub := range map[string]Subscription{"A": subA, "B": subB} {
		select {
		case e := <-sub.Events():
			if e.TaskID != "task-1" {
				t.Errorf("Subscriber %s: expected task-1, got %s", name, e.TaskID)
			}
		case <-time.After(time.Second):
			t.Fatalf("Subscriber %s: timed out", name)
		}
	}
}

func TestMemoryEmitterDropsOnFullBuffer(t *testing.T) {
	em := NewMemoryEmitter(1)
	defer em.Close()

	sub, _ := em.Subscribe()

	// The second emit finds the buffer full and is dropped rather than
	// blocking.
	if err := em.Emit(attemptEvent("task-1", 0)); err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	if err := em.Emit(attemptEvent("task-1", 1)); err != nil {
		t.Fatalf("Emit failed: %v", err)
	}

	e := <-sub.Events()
	if e.Attempt != 0 {
		t.Errorf("Expected first event retained, got attempt %d", e.Attempt)
	}
	select {
	case e := <-sub.Events():
		t.Errorf("Expected second event dropped, got attempt %d", e.Attempt)
	default:
	}
}

func TestMemoryEmitterRejectsInvalidEvent(t *testing.T) {
	em := NewMemoryEmitter(0)
	defer em.Close()

	if err := em.Emit(Event{Type: TypeAttempt}); err != ErrInvalidEvent {
		t.Errorf("Expected ErrInvalidEvent, got %v", err)
	}
}

func TestMemoryEmitterClose(t *testing.T) {
	em := NewMemoryEmitter(0)
	sub, _ := em.Subscribe()

	if err := em.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Subscriber channels are closed.
	if _, ok := <-sub.Events(); ok {
		t.Error("Expected subscriber channel closed")
	}

	if err := em.Emit(attemptEvent("task-1", 0)); err != ErrClosed {
		t.Errorf("Expected ErrClosed from Emit, got %v", err)
	}
	if _, err := em.Subscribe(); err != ErrClosed {
		t.Errorf("Expected ErrClosed from Subscribe, got %v", err)
	}

	// Close is idempotent.
	if err := em.Close(); err != nil {
		t.Errorf("Expected nil from repeated Close, got %v", err)
	}
}

func TestMemorySubCancel(t *testing.T) {
	em := NewMemoryEmitter(0)
	defer em.Close()

	sub, _ := em.Subscribe()
	keep, _ := em.Subscribe()

	if err := sub.Cancel(); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if _, ok := <-sub.Events(); ok {
		t.Error("Expected canceled subscription channel closed")
	}

	// Remaining subscribers are unaffected.
	if err := em.Emit(attemptEvent("task-1", 0)); err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	select {
	case <-keep.Events():
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for event on remaining subscription")
	}

	// Cancel is idempotent.
	if err := sub.Cancel(); err != nil {
		t.Errorf("Expected nil from repeated Cancel, got %v", err)
	}
}
