// Package apperrors defines the structured error types of rangeprint, one per
// failure category (usage, count, allocation, spawn, join), together with the
// process exit codes they map to.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Error types that carry a cause implement Unwrap() to support errors.Is() and
// errors.As().
package apperrors
