package apperrors

import (
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// Every failure category shares the same non-zero status; the diagnostic line
// on the error stream is what tells them apart.
const (
	ExitSuccess      = 0 // Indicates successful execution.
	ExitErrorGeneric = 1 // Indicates any fatal error.
)

// Category names a failure class. It is used as the prefix of the single
// diagnostic line printed for a fatal error.
type Category string

// Failure categories.
const (
	CategoryUsage    Category = "usage error"
	CategoryCount    Category = "invalid count"
	CategoryResource Category = "allocation error"
	CategorySpawn    Category = "spawn error"
	CategoryJoin     Category = "join error"
	CategoryUnknown  Category = "error"
)

// UsageError represents a malformed command line: a missing, extra or
// non-numeric worker count, or an unknown flag.
type UsageError struct {
	// Message explains what was wrong with the command line.
	Message string
}

// Error returns the error message for a UsageError.
func (e UsageError) Error() string { return e.Message }

// NewUsageError creates a new UsageError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new UsageError instance containing the formatted message.
func NewUsageError(format string, a ...any) error {
	return UsageError{Message: fmt.Sprintf(format, a...)}
}

// CountError reports a worker count that parsed as an integer but is negative.
type CountError struct {
	// Count is the rejected value.
	Count int
}

// Error returns a formatted message describing the rejected count.
func (e CountError) Error() string {
	return fmt.Sprintf("%d must be a non-negative integer", e.Count)
}

// ResourceError reports that the descriptor storage for the requested number
// of workers could not be allocated.
type ResourceError struct {
	// Requested is the number of worker slots that were asked for.
	Requested int
	// Limit is the largest number of slots the coordinator will allocate.
	Limit int
}

// Error returns a formatted message describing the allocation failure.
func (e ResourceError) Error() string {
	return fmt.Sprintf("could not allocate %d worker descriptors (limit: %d)", e.Requested, e.Limit)
}

// SpawnError reports that the concurrent unit for a worker could not be
// started. It preserves the underlying cause.
type SpawnError struct {
	// Ordinal is the 1-based ordinal of the worker whose spawn failed.
	Ordinal int
	// Cause is the error reported by the spawner.
	Cause error
}

// Error returns a formatted message naming the failed spawn attempt.
func (e SpawnError) Error() string {
	return fmt.Sprintf("could not create worker %d: %v", e.Ordinal, e.Cause)
}

// Unwrap returns the original wrapped error.
func (e SpawnError) Unwrap() error { return e.Cause }

// JoinError reports that waiting for a worker failed, either because the
// worker terminated abnormally or because the wait itself failed.
type JoinError struct {
	// Ordinal is the 1-based ordinal of the worker that could not be joined.
	Ordinal int
	// Cause is the error reported by the unit handle.
	Cause error
}

// Error returns a formatted message naming the worker that could not join.
func (e JoinError) Error() string {
	return fmt.Sprintf("worker %d could not join: %v", e.Ordinal, e.Cause)
}

// Unwrap returns the original wrapped error.
func (e JoinError) Unwrap() error { return e.Cause }

// CategoryOf returns the failure category of err by inspecting its chain.
// Errors that belong to no known category map to CategoryUnknown.
func CategoryOf(err error) Category {
	var (
		usageErr    UsageError
		countErr    CountError
		resourceErr ResourceError
		spawnErr    SpawnError
		joinErr     JoinError
	)
	switch {
	case errors.As(err, &usageErr):
		return CategoryUsage
	case errors.As(err, &countErr):
		return CategoryCount
	case errors.As(err, &resourceErr):
		return CategoryResource
	case errors.As(err, &spawnErr):
		return CategorySpawn
	case errors.As(err, &joinErr):
		return CategoryJoin
	}
	return CategoryUnknown
}

// ExitCode maps an error to the process exit status: nil is success, any
// other error is fatal.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitErrorGeneric
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}
