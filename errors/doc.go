// Package errors provides the structured error taxonomy for retrykit.
// It defines the codes and categories used to report terminal task
// outcomes and caller precondition violations consistently.
//
// # Error Categories
//
// Errors are classified into four categories:
//
//   - Terminal: A terminal task outcome (budget exhausted, canceled)
//   - Usage: Caller precondition violations (invalid config, double start)
//   - Transport: Emitter or broker connection failures
//   - Internal: Unexpected errors indicating bugs
//
// # Error Codes
//
// Each error carries a code identifying the failure:
//
//   - EXHAUSTED: Attempt budget exhausted
//   - CANCELED: Task was canceled
//   - ALREADY_STARTED: Start called on a non-idle task
//   - INVALID_CONFIG: Invalid task configuration
//   - And more...
//
// # Usage
//
// Terminal outcomes are produced by the retry package and inspected by
// the caller:
//
//	if err := task.Err(); errors.IsExhausted(err) {
//	    attempts := errors.AsRetryError(err).(*errors.Error).Attempt()
//	    // escalate
//	}
//
// Wrap an existing error with context:
//
//	wrapped := errors.Wrap(err, "loading retry profile")
//
// # JSON Serialization
//
// All errors support JSON serialization for logging and event payloads:
//
//	data, err := json.Marshal(retryErr)
package errors
