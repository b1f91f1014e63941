package errors

import (
	"context"
	"errors"
	"fmt"
)

// Wrap wraps an error with additional context while preserving the error
// chain. If err is nil, Wrap returns nil. If err is already a RetryError,
// its classification is preserved. Otherwise a new Internal error wraps
// the original.
func Wrap(err error, message string, opts ...Option) *Error {
	if err == nil {
		return nil
	}

	var retryErr *Error
	if errors.As(err, &retryErr) {
		wrapped := &Error{
			code:      retryErr.code,
			category:  retryErr.category,
			message:   message,
			cause:     err,
			metadata:  retryErr.Metadata(),
			retryable: retryErr.retryable,
			taskID:    retryErr.taskID,
			attempt:   retryErr.attempt,
		}
		for _, opt := range opts {
			opt(wrapped)
		}
		return wrapped
	}

	if errors.Is(err, context.Canceled) {
		return New(ErrCodeCanceled, message, append(opts, WithCause(err))...)
	}

	return New(ErrCodeInternal, message, append(opts, WithCause(err))...)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific error code.
func WrapWithCode(err error, code ErrorCode, message string, opts ...Option) *Error {
	if err == nil {
		return nil
	}
	opts = append(opts, WithCause(err))
	return New(code, message, opts...)
}

// AsRetryError attempts to extract a RetryError from an error chain.
// Returns nil if none is found.
func AsRetryError(err error) RetryError {
	var retryErr *Error
	if errors.As(err, &retryErr) {
		return retryErr
	}
	return nil
}

// Is checks if any error in the chain has the given error code.
func Is(err error, code ErrorCode) bool {
	var retryErr *Error
	if errors.As(err, &retryErr) {
		return retryErr.code == code
	}
	return false
}

// IsCategory checks if any error in the chain has the given category.
func IsCategory(err error, category ErrorCategory) bool {
	var retryErr *Error
	if errors.As(err, &retryErr) {
		return retryErr.category == category
	}
	return false
}

// IsRetryable checks if the error is retryable.
func IsRetryable(err error) bool {
	var retryErr *Error
	if errors.As(err, &retryErr) {
		return retryErr.Retryable()
	}
	// Default to not retryable for unclassified errors
	return false
}

// IsExhausted checks if the error is an attempt-budget exhaustion.
func IsExhausted(err error) bool {
	return Is(err, ErrCodeExhausted)
}

// IsCanceled checks if the error is a cancellation.
func IsCanceled(err error) bool {
	return Is(err, ErrCodeCanceled)
}

// IsUsage checks if the error is a caller precondition violation.
func IsUsage(err error) bool {
	return IsCategory(err, CategoryUsage)
}

// Code extracts the error code from an error, if available.
// Returns empty string if err is not a RetryError.
func Code(err error) ErrorCode {
	var retryErr *Error
	if errors.As(err, &retryErr) {
		return retryErr.code
	}
	return ""
}

// Category extracts the error category from an error, if available.
// Returns empty string if err is not a RetryError.
func Category(err error) ErrorCategory {
	var retryErr *Error
	if errors.As(err, &retryErr) {
		return retryErr.category
	}
	return ""
}

// Cause returns the root cause of the error chain.
func Cause(err error) error {
	for {
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		inner := unwrapper.Unwrap()
		if inner == nil {
			return err
		}
		err = inner
	}
}

// RecoverPanic converts a recovered panic value into an Error.
func RecoverPanic(recovered interface{}) *Error {
	if recovered == nil {
		return nil
	}
	var message string
	switch v := recovered.(type) {
	case error:
		message = v.Error()
	case string:
		message = v
	default:
		message = fmt.Sprintf("%v", v)
	}
	return New(ErrCodePanic, message, WithMetadata("panic_value", fmt.Sprintf("%T", recovered)))
}
