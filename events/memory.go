package events

import (
	"sync"
	"sync/atomic"
)

// DefaultBufferSize is the per-subscriber channel buffer.
const DefaultBufferSize = 64

// MemoryEmitter delivers events to in-process subscribers. Useful for
// tests and single-process observability. Delivery is best-effort: a
// subscriber whose buffer is full misses the event rather than blocking
// the retry loop.
type MemoryEmitter struct {
	bufferSize int

	mu     sync.RWMutex
	subs   []*memorySub
	closed atomic.Bool
}

type memorySub struct {
	ch      chan Event
	closed  atomic.Bool
	emitter *MemoryEmitter
}

// NewMemoryEmitter creates an in-memory emitter. A bufferSize of zero or
// less selects DefaultBufferSize.
func NewMemoryEmitter(bufferSize int) *MemoryEmitter {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &MemoryEmitter{bufferSize: bufferSize}
}

// Emit delivers the event to every active subscriber.
func (m *MemoryEmitter) Emit(e Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if m.closed.Load() {
		return ErrClosed
	}

	// Delivery happens under the read lock so a concurrent Cancel or
	// Close cannot close a channel mid-send. Sends never block.
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subs {
		if !sub.closed.Load() {
			select {
			case sub.ch <- e:
			default:
				// Buffer full, drop event
			}
		}
	}
	return nil
}

// Subscribe registers a subscriber that receives all subsequent events.
func (m *MemoryEmitter) Subscribe() (Subscription, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}

	sub := &memorySub{
		ch:      make(chan Event, m.bufferSize),
		emitter: m,
	}

	m.mu.Lock()
	m.subs = append(m.subs, sub)
	m.mu.Unlock()

	return sub, nil
}

// Close shuts down the emitter and closes all subscriber channels.
func (m *MemoryEmitter) Close() error {
	if m.closed.Swap(true) {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sub := range m.subs {
		if !sub.closed.Swap(true) {
			close(sub.ch)
		}
	}
	m.subs = nil
	return nil
}

// Events returns the subscriber's channel.
func (s *memorySub) Events() <-chan Event {
	return s.ch
}

// Cancel removes the subscriber and closes its channel.
func (s *memorySub) Cancel() error {
	m := s.emitter
	m.mu.Lock()
	defer m.mu.Unlock()

	if s.closed.Swap(true) {
		return nil
	}
	for i, sub := range m.subs {
		if sub == s {
			m.subs = append(m.subs[:i], m.subs[i+1:]...)
			break
		}
	}
	close(s.ch)
	return nil
}
