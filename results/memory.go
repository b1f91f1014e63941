package results

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
)

// MemoryRecorder implements Recorder using in-memory storage.
// Useful for testing and single-process scenarios.
type MemoryRecorder struct {
	mu       sync.RWMutex
	outcomes map[string]*Outcome
	closed   atomic.Bool
}

// NewMemoryRecorder creates a new in-memory recorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{
		outcomes: make(map[string]*Outcome),
	}
}

// Record stores a terminal outcome, replacing any previous outcome for
// the same task ID.
func (r *MemoryRecorder) Record(ctx context.Context, outcome Outcome) error {
	if r.closed.Load() {
		return ErrClosed
	}
	if err := ValidateOutcome(outcome); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[outcome.TaskID] = outcome.Clone()
	return nil
}

// Get retrieves an outcome by task ID.
func (r *MemoryRecorder) Get(ctx context.Context, taskID string) (*Outcome, error) {
	if r.closed.Load() {
		return nil, ErrClosed
	}
	if taskID == "" {
		return nil, ErrInvalidTaskID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	outcome, ok := r.outcomes[taskID]
	if !ok {
		return nil, ErrNotFound
	}
	return outcome.Clone(), nil
}

// List returns outcomes matching the filter, most recently finished first.
func (r *MemoryRecorder) List(filter Filter) ([]*Outcome, error) {
	if r.closed.Load() {
		return nil, ErrClosed
	}

	r.mu.RLock()
	var matched []*Outcome
	for _, outcome := range r.outcomes {
		if filter.Matches(outcome) {
			matched = append(matched, outcome.Clone())
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].FinishedAt.After(matched[j].FinishedAt)
	})

	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

// Delete removes an outcome by task ID.
func (r *MemoryRecorder) Delete(ctx context.Context, taskID string) error {
	if r.closed.Load() {
		return ErrClosed
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.outcomes[taskID]; !ok {
		return ErrNotFound
	}
	delete(r.outcomes, taskID)
	return nil
}

// Close shuts down the recorder.
func (r *MemoryRecorder) Close() error {
	r.closed.Swap(true)
	return nil
}
