package errors

// ErrorCategory classifies errors by their nature.
type ErrorCategory string

// Error categories define how errors should be handled.
const (
	// CategoryTerminal indicates a terminal task outcome: the attempt
	// budget was exhausted or the task was canceled. Terminal outcomes
	// are delivered via callback, never raised mid-attempt.
	CategoryTerminal ErrorCategory = "terminal"

	// CategoryUsage indicates a precondition violation by the caller.
	// Examples: starting a started task, invalid configuration.
	CategoryUsage ErrorCategory = "usage"

	// CategoryTransport indicates an emitter or connection failure.
	CategoryTransport ErrorCategory = "transport"

	// CategoryInternal indicates unexpected errors or bugs.
	CategoryInternal ErrorCategory = "internal"
)

// String returns the string representation of the category.
func (c ErrorCategory) String() string {
	return string(c)
}

// IsRetryable returns true if errors in this category may succeed on a
// fresh task. Usage errors never do; transport failures may.
func (c ErrorCategory) IsRetryable() bool {
	switch c {
	case CategoryTerminal, CategoryTransport:
		return true
	default:
		return false
	}
}

// ErrorCode identifies specific error types within categories.
type ErrorCode string

// Error codes for common failure scenarios.
const (
	// Terminal outcomes
	ErrCodeExhausted ErrorCode = "EXHAUSTED" // Attempt budget exhausted
	ErrCodeCanceled  ErrorCode = "CANCELED"  // Task was canceled

	// Usage errors
	ErrCodeAlreadyStarted ErrorCode = "ALREADY_STARTED" // Start on a non-idle task
	ErrCodeNotStarted     ErrorCode = "NOT_STARTED"     // Operation requires a started task
	ErrCodeTerminated     ErrorCode = "TERMINATED"      // Operation on a terminal task
	ErrCodeInvalidConfig  ErrorCode = "INVALID_CONFIG"  // Invalid task configuration
	ErrCodeInvalidProfile ErrorCode = "INVALID_PROFILE" // Malformed or unknown retry profile

	// Transport errors
	ErrCodeEmitterClosed ErrorCode = "EMITTER_CLOSED" // Emit on a closed emitter
	ErrCodeConnection    ErrorCode = "CONNECTION"     // Broker connection failure

	// Internal errors
	ErrCodeInternal ErrorCode = "INTERNAL" // Unexpected internal error
	ErrCodePanic    ErrorCode = "PANIC"    // Recovered from panic
)

// String returns the string representation of the error code.
func (c ErrorCode) String() string {
	return string(c)
}

// DefaultCategory returns the default category for an error code.
func (c ErrorCode) DefaultCategory() ErrorCategory {
	switch c {
	case ErrCodeExhausted, ErrCodeCanceled:
		return CategoryTerminal
	case ErrCodeAlreadyStarted, ErrCodeNotStarted, ErrCodeTerminated,
		ErrCodeInvalidConfig, ErrCodeInvalidProfile:
		return CategoryUsage
	case ErrCodeEmitterClosed, ErrCodeConnection:
		return CategoryTransport
	default:
		return CategoryInternal
	}
}

// DefaultRetryable returns whether this error code is typically retryable.
func (c ErrorCode) DefaultRetryable() bool {
	return c.DefaultCategory().IsRetryable()
}

// codeDescriptions provides human-readable descriptions for error codes.
var codeDescriptions = map[ErrorCode]string{
	ErrCodeExhausted:      "attempt budget exhausted",
	ErrCodeCanceled:       "task canceled",
	ErrCodeAlreadyStarted: "task already started",
	ErrCodeNotStarted:     "task not started",
	ErrCodeTerminated:     "task already terminated",
	ErrCodeInvalidConfig:  "invalid configuration",
	ErrCodeInvalidProfile: "invalid retry profile",
	ErrCodeEmitterClosed:  "emitter closed",
	ErrCodeConnection:     "connection failure",
	ErrCodeInternal:       "internal error",
	ErrCodePanic:          "recovered from panic",
}

// Description returns a human-readable description for the error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}
