package retry

import (
	"sync"

	"github.com/vinayprograms/retrykit/logging"
)

// Group tracks a set of in-flight tasks and fires a single completion
// callback every time the set drains from non-empty to empty. Membership
// is by task identity; a task usefully belongs to one group at a time.
type Group struct {
	mu           sync.Mutex
	tasks        map[string]*Task
	onCompletion func()
	log          *logging.Logger
}

// GroupOption configures a Group.
type GroupOption func(*Group)

// WithGroupLogger attaches a logger for membership and drain events.
func WithGroupLogger(log *logging.Logger) GroupOption {
	return func(g *Group) {
		g.log = log
	}
}

// NewGroup creates an empty group.
func NewGroup(opts ...GroupOption) *Group {
	g := &Group{
		tasks: make(map[string]*Task),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Add inserts the task into the tracked set and registers the group as
// the task's termination observer, replacing any previous observer.
// Adding an already-terminal task returns ErrTaskTerminated: its
// notification has already fired and the group could never drain.
func (g *Group) Add(t *Task) error {
	// Membership first, observer second: a running task can terminate
	// between the two steps, and its notification must find the member
	// in the set. The reverse order would leave a stale member behind.
	g.mu.Lock()
	g.tasks[t.ID()] = t
	n := len(g.tasks)
	g.mu.Unlock()

	if err := t.setObserver(g); err != nil {
		g.mu.Lock()
		delete(g.tasks, t.ID())
		g.mu.Unlock()
		return err
	}

	if g.log != nil {
		g.log.GroupTaskAdded(t.ID(), n)
	}
	return nil
}

// OnCompletion registers the completion handler, replacing any previous
// one. It fires on the terminating task's scheduler goroutine.
func (g *Group) OnCompletion(fn func()) *Group {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onCompletion = fn
	return g
}

// Len returns the number of currently tracked tasks.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.tasks)
}

// CancelAll marks every tracked task canceled and clears the tracked set
// synchronously. The completion callback does not fire: bulk cancellation
// is a reset, not a drain. Each task still delivers its own OnCancel at
// its next checkpoint.
func (g *Group) CancelAll() {
	g.mu.Lock()
	n := len(g.tasks)
	for _, t := range g.tasks {
		t.Cancel()
	}
	g.tasks = make(map[string]*Task)
	g.mu.Unlock()

	if g.log != nil {
		g.log.GroupCancelAll(n)
	}
}

// OnTaskTerminated removes the task from the tracked set. If the set
// becomes empty as a direct result, the completion callback fires exactly
// once for this drain cycle. Tasks cleared by CancelAll are no longer
// members when their cancellation notification arrives, so it is ignored.
func (g *Group) OnTaskTerminated(t *Task) {
	g.mu.Lock()
	if _, ok := g.tasks[t.ID()]; !ok {
		g.mu.Unlock()
		return
	}
	delete(g.tasks, t.ID())
	var fire func()
	if len(g.tasks) == 0 {
		fire = g.onCompletion
	}
	g.mu.Unlock()

	if fire != nil {
		if g.log != nil {
			g.log.GroupDrained()
		}
		fire()
	}
}
