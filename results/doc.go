// Package results records how tasks terminated.
//
// A task configured with a recorder stores one Outcome when it reaches a
// terminal state: the status (succeeded, failed, canceled), the number of
// attempts performed, the terminal error if any, and the start/finish
// timestamps. Outcomes are queryable by task ID or by filter.
//
// # Usage
//
//	recorder := results.NewMemoryRecorder()
//
//	task, _ := retry.New(
//	    retry.WithMaxAttempts(5),
//	    retry.WithRecorder(recorder),
//	)
//
//	// after the task terminates:
//	outcome, _ := recorder.Get(ctx, task.ID())
//	fmt.Println(outcome.Status, outcome.Attempts, outcome.Duration())
//
// Listing failed tasks from the last hour:
//
//	failed, _ := recorder.List(results.Filter{
//	    Status:        results.StatusFailed,
//	    FinishedAfter: time.Now().Add(-time.Hour),
//	})
//
// # Thread Safety
//
// All Recorder implementations are safe for concurrent use.
package results
