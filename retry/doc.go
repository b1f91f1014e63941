// Package retry runs an operation repeatedly, with a delay between
// attempts, until it succeeds, is canceled, or exhausts its attempt
// budget — and tracks the joint completion of a dynamic group of such
// tasks.
//
// # Lifecycle
//
// A Task moves through the following states:
//
//	Idle ──Start──▶ Attempting ──▶ Succeeded
//	                    │
//	                    ├────────▶ Failed    (budget exhausted)
//	                    └────────▶ Canceled  (Cancel observed)
//
// At each checkpoint the task evaluates, in priority order: canceled,
// succeeded, budget exhausted, otherwise attempt again. Success before
// exhaustion means succeeding on the final attempt still succeeds. The operation
// body reports success by calling Succeed; there is no distinction
// between an attempt that errored and one that declined to succeed.
// Exactly one of OnSuccess, OnFail, OnCancel fires per task, exactly
// once.
//
// # Usage
//
// A standalone task:
//
//	task, err := retry.New(
//	    retry.WithMaxAttempts(5),
//	    retry.WithDelay(200*time.Millisecond),
//	)
//	if err != nil {
//	    return err
//	}
//
//	task.OnAttempt(func(t *retry.Task, attempt int) {
//	    if err := ping(addr); err == nil {
//	        t.Succeed()
//	    }
//	}).OnSuccess(func(t *retry.Task) {
//	    log.Println("reachable after", t.Attempts(), "attempts")
//	}).OnFail(func(t *retry.Task) {
//	    log.Println("gave up:", t.Err())
//	})
//
//	if err := task.Start(); err != nil {
//	    return err
//	}
//	<-task.Done()
//
// Tracking several tasks together:
//
//	group := retry.NewGroup()
//	group.OnCompletion(func() { log.Println("all tasks settled") })
//	group.Add(taskA)
//	group.Add(taskB)
//	taskA.Start()
//	taskB.Start()
//
// # Cancellation
//
// Cancellation is cooperative. Cancel never aborts an attempt already
// executing; it changes the outcome of the next checkpoint, and it wins
// over a success reported in the same window. Group.CancelAll cancels
// every tracked task and clears the set synchronously without firing the
// completion callback.
//
// # Scheduling and delivery
//
// Attempts are driven by a Scheduler ("run this callback once, after at
// least d"). The default scheduler uses a real clock; tests inject a
// deterministic one. All callbacks for one task are delivered on the
// scheduler goroutine, strictly sequentially. A group's completion
// callback runs on the goroutine of the task that drained it.
//
// # Ordering
//
// On success the group observer is notified before OnSuccess fires; on
// failure and cancellation it is notified after OnFail/OnCancel. Code
// that depends on notification order can rely on this.
package retry
