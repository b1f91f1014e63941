package retry

import (
	"testing"
	"time"
)

func startTask(t *testing.T, task *Task) {
	t.Helper()
	if err := task.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
}

func TestGroupCompletionAfterAllTasks(t *testing.T) {
	group := NewGroup()

	var completions int
	var remainingAtCompletion int
	group.OnCompletion(func() {
		completions++
		remainingAtCompletion = group.Len()
	})

	scheds := make([]*fakeScheduler, 3)
	for i := range scheds {
		scheds[i] = &fakeScheduler{}
		task := newTask(t, scheds[i], WithMaxAttempts(3))
		task.OnAttempt(func(task *Task, _ int) { task.Succeed() })
		if err := group.Add(task); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		startTask(t, task)
	}

	// Drive the tasks to termination one at a time.
	for i, sched := range scheds {
		sched.run()
		if i < len(scheds)-1 && completions != 0 {
			t.Fatalf("Completion fired with %d tasks still pending", len(scheds)-1-i)
		}
	}

	if completions != 1 {
		t.Errorf("Expected exactly one completion, got %d", completions)
	}
	if remainingAtCompletion != 0 {
		t.Errorf("Expected empty group at completion, got %d", remainingAtCompletion)
	}
}

func TestGroupCompletionOrderIndependent(t *testing.T) {
	orders := [][]int{{0, 1, 2}, {2, 1, 0}, {1, 2, 0}}

	for _, order := range orders {
		group := NewGroup()

		var completions int
		group.OnCompletion(func() { completions++ })

		scheds := make([]*fakeScheduler, 3)
		for i := range scheds {
			scheds[i] = &fakeScheduler{}
			task := newTask(t, scheds[i], WithMaxAttempts(1))
			task.OnAttempt(func(task *Task, _ int) { task.Succeed() })
			if err := group.Add(task); err != nil {
				t.Fatalf("Add failed: %v", err)
			}
			startTask(t, task)
		}

		for _, i := range order {
			scheds[i].run()
		}

		if completions != 1 {
			t.Errorf("Order %v: expected one completion, got %d", order, completions)
		}
	}
}

func TestGroupMixedOutcomes(t *testing.T) {
	// Success, failure and cancellation all count as termination.
	group := NewGroup()

	var completions int
	group.OnCompletion(func() { completions++ })

	succeeding := &fakeScheduler{}
	taskA := newTask(t, succeeding, WithMaxAttempts(2))
	taskA.OnAttempt(func(task *Task, _ int) { task.Succeed() })

	failing := &fakeScheduler{}
	taskB := newTask(t, failing, WithMaxAttempts(2))

	canceled := &fakeScheduler{}
	taskC := newTask(t, canceled, WithMaxAttempts(2))

	for _, task := range []*Task{taskA, taskB, taskC} {
		if err := group.Add(task); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		startTask(t, task)
	}
	taskC.Cancel()

	succeeding.run()
	failing.run()
	if completions != 0 {
		t.Fatal("Completion fired before the last task terminated")
	}
	canceled.run()

	if completions != 1 {
		t.Errorf("Expected one completion, got %d", completions)
	}
}

func TestGroupCancelAll(t *testing.T) {
	group := NewGroup()

	var completions int
	group.OnCompletion(func() { completions++ })

	scheds := []*fakeScheduler{{}, {}}
	tasks := make([]*Task, 2)
	for i := range tasks {
		tasks[i] = newTask(t, scheds[i], WithMaxAttempts(5))
		if err := group.Add(tasks[i]); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		startTask(t, tasks[i])
	}

	group.CancelAll()

	// The set is cleared synchronously, before any cancellation
	// notification is delivered.
	if got := group.Len(); got != 0 {
		t.Errorf("Expected empty group after CancelAll, got %d", got)
	}
	if completions != 0 {
		t.Errorf("Expected no completion from CancelAll, got %d", completions)
	}

	for i, task := range tasks {
		if !task.Canceled() {
			t.Errorf("Task %d: expected canceled flag set", i)
		}
	}

	// Each task still delivers its own cancellation at its next
	// checkpoint; the group ignores the late notifications.
	for _, sched := range scheds {
		sched.run()
	}
	for i, task := range tasks {
		if task.Status() != StatusCanceled {
			t.Errorf("Task %d: expected status canceled, got %s", i, task.Status())
		}
	}
	if completions != 0 {
		t.Errorf("Expected no completion from late notifications, got %d", completions)
	}
}

func TestGroupDistinctMembers(t *testing.T) {
	group := NewGroup()

	// Identical configuration, distinct identity: both are members.
	for i := 0; i < 2; i++ {
		task, err := New(WithMaxAttempts(2), WithDelay(time.Second))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		if err := group.Add(task); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	if got := group.Len(); got != 2 {
		t.Errorf("Expected 2 tracked tasks, got %d", got)
	}
}

func TestGroupAddTerminalTask(t *testing.T) {
	sched := &fakeScheduler{}
	task := newTask(t, sched)
	startTask(t, task)
	sched.run()

	group := NewGroup()
	if err := group.Add(task); err != ErrTaskTerminated {
		t.Errorf("Expected ErrTaskTerminated, got %v", err)
	}
	if got := group.Len(); got != 0 {
		t.Errorf("Expected empty group, got %d", got)
	}
}

func TestGroupAddRunningTask(t *testing.T) {
	// A task may be added after Start; termination after the add drains
	// the group normally.
	sched := &fakeScheduler{}
	task := newTask(t, sched, WithMaxAttempts(2))
	task.OnAttempt(func(task *Task, _ int) { task.Succeed() })
	startTask(t, task)

	group := NewGroup()
	var completions int
	group.OnCompletion(func() { completions++ })

	if err := group.Add(task); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if got := group.Len(); got != 1 {
		t.Fatalf("Expected 1 tracked task, got %d", got)
	}

	sched.run()

	if completions != 1 {
		t.Errorf("Expected one completion, got %d", completions)
	}
	if got := group.Len(); got != 0 {
		t.Errorf("Expected empty group after drain, got %d", got)
	}
}

func TestGroupDrainCycles(t *testing.T) {
	// The completion callback fires once per non-empty-to-empty drain.
	group := NewGroup()

	var completions int
	group.OnCompletion(func() { completions++ })

	for cycle := 1; cycle <= 2; cycle++ {
		sched := &fakeScheduler{}
		task := newTask(t, sched, WithMaxAttempts(1))
		task.OnAttempt(func(task *Task, _ int) { task.Succeed() })
		if err := group.Add(task); err != nil {
			t.Fatalf("Cycle %d: Add failed: %v", cycle, err)
		}
		startTask(t, task)
		sched.run()

		if completions != cycle {
			t.Errorf("Cycle %d: expected %d completions, got %d", cycle, cycle, completions)
		}
	}
}

func TestGroupEmptyNeverCompletes(t *testing.T) {
	group := NewGroup()

	var completions int
	group.OnCompletion(func() { completions++ })

	if completions != 0 {
		t.Errorf("Expected no completion for a never-populated group, got %d", completions)
	}
}

func TestGroupOnCompletionLastWins(t *testing.T) {
	group := NewGroup()

	var first, second int
	group.OnCompletion(func() { first++ })
	group.OnCompletion(func() { second++ })

	sched := &fakeScheduler{}
	task := newTask(t, sched, WithMaxAttempts(1))
	task.OnAttempt(func(task *Task, _ int) { task.Succeed() })
	if err := group.Add(task); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	startTask(t, task)
	sched.run()

	if first != 0 {
		t.Errorf("Expected replaced handler not to fire, got %d", first)
	}
	if second != 1 {
		t.Errorf("Expected last handler to fire once, got %d", second)
	}
}

// orderObserver records notification order relative to terminal callbacks.
type orderObserver struct {
	events *[]string
}

func (o *orderObserver) OnTaskTerminated(*Task) {
	*o.events = append(*o.events, "terminated")
}

func TestObserverOrdering(t *testing.T) {
	tests := []struct {
		name string
		prep func(*Task)
		want []string
	}{
		{
			// Success notifies the observer before the callback.
			name: "success",
			prep: func(task *Task) { task.Succeed() },
			want: []string{"terminated", "success"},
		},
		{
			// Failure fires the callback first.
			name: "fail",
			prep: func(*Task) {},
			want: []string{"fail", "terminated"},
		},
		{
			// Cancellation fires the callback first.
			name: "cancel",
			prep: func(task *Task) { task.Cancel() },
			want: []string{"cancel", "terminated"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sched := &fakeScheduler{}
			task := newTask(t, sched, WithMaxAttempts(1))

			var events []string
			task.OnSuccess(func(*Task) { events = append(events, "success") })
			task.OnFail(func(*Task) { events = append(events, "fail") })
			task.OnCancel(func(*Task) { events = append(events, "cancel") })

			if err := task.setObserver(&orderObserver{events: &events}); err != nil {
				t.Fatalf("setObserver failed: %v", err)
			}

			startTask(t, task)
			tt.prep(task)
			sched.run()

			if len(events) != len(tt.want) {
				t.Fatalf("Expected events %v, got %v", tt.want, events)
			}
			for i := range tt.want {
				if events[i] != tt.want[i] {
					t.Fatalf("Expected events %v, got %v", tt.want, events)
				}
			}
		})
	}
}
