package events

import (
	"testing"
	"time"
)

func TestTypeValid(t *testing.T) {
	valid := []Type{TypeAttempt, TypeSucceeded, TypeFailed, TypeCanceled}
	for _, typ := range valid {
		if !typ.Valid() {
			t.Errorf("Expected %q to be valid", typ)
		}
	}

	for _, typ := range []Type{"", "exploded", "Attempt"} {
		if typ.Valid() {
			t.Errorf("Expected %q to be invalid", typ)
		}
	}
}

func TestTypeTerminal(t *testing.T) {
	if TypeAttempt.Terminal() {
		t.Error("Expected attempt to be non-terminal")
	}
	for _, typ := range []Type{TypeSucceeded, TypeFailed, TypeCanceled} {
		if !typ.Terminal() {
			t.Errorf("Expected %q to be terminal", typ)
		}
	}
}

func TestEventSubject(t *testing.T) {
	e := &Event{TaskID: "abc-123", Type: TypeSucceeded}
	want := "retry.task.abc-123.succeeded"
	if got := e.Subject(); got != want {
		t.Errorf("Expected subject %q, got %q", want, got)
	}
}

func TestEventValidate(t *testing.T) {
	tests := []struct {
		name    string
		event   Event
		wantErr bool
	}{
		{"valid", Event{TaskID: "task-1", Type: TypeAttempt}, false},
		{"empty task id", Event{Type: TypeAttempt}, true},
		{"task id with space", Event{TaskID: "a b", Type: TypeAttempt}, true},
		{"task id with dot", Event{TaskID: "a.b", Type: TypeAttempt}, true},
		{"task id with wildcard", Event{TaskID: "a*", Type: TypeAttempt}, true},
		{"unknown type", Event{TaskID: "task-1", Type: "boom"}, true},
		{"missing type", Event{TaskID: "task-1"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.wantErr && err == nil {
				t.Error("Expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected valid event, got %v", err)
			}
		})
	}
}

func TestEventMarshalRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	e := &Event{
		TaskID:      "task-7",
		Type:        TypeFailed,
		Attempt:     3,
		MaxAttempts: 3,
		Timestamp:   now,
	}

	data, err := e.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	decoded, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.TaskID != e.TaskID || decoded.Type != e.Type {
		t.Errorf("Expected %s/%s, got %s/%s", e.TaskID, e.Type, decoded.TaskID, decoded.Type)
	}
	if decoded.Attempt != 3 || decoded.MaxAttempts != 3 {
		t.Errorf("Expected attempt 3/3, got %d/%d", decoded.Attempt, decoded.MaxAttempts)
	}
	if !decoded.Timestamp.Equal(now) {
		t.Errorf("Expected timestamp %v, got %v", now, decoded.Timestamp)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	if _, err := Unmarshal([]byte("{not json")); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}
