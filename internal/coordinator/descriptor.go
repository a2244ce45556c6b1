package coordinator

import (
	apperrors "github.com/agbru/rangeprint/internal/errors"
)

// RangeWidth is the number of integers printed by each worker.
const RangeWidth = 10

// Descriptor identifies one worker. It is a plain value: each worker gets
// its own copy, and the coordinator never writes to the slice after it has
// been built.
type Descriptor struct {
	// Ordinal is the 1-based index of the worker.
	Ordinal int
}

// Range returns the half-open interval of integers this worker prints.
func (d Descriptor) Range() Range {
	upper := d.Ordinal * RangeWidth
	return Range{Lower: upper - RangeWidth, Upper: upper}
}

// Range is the half-open interval [Lower, Upper).
type Range struct {
	Lower int
	Upper int
}

// Len returns the number of integers in the range.
func (r Range) Len() int { return r.Upper - r.Lower }

// NewDescriptors builds the descriptors for count workers, ordinals 1..count.
// A positive limit bounds count; exceeding it is reported as an allocation
// failure and nothing is allocated.
func NewDescriptors(count, limit int) ([]Descriptor, error) {
	if count < 0 {
		return nil, apperrors.CountError{Count: count}
	}
	if limit > 0 && count > limit {
		return nil, apperrors.ResourceError{Requested: count, Limit: limit}
	}
	descriptors := make([]Descriptor, count)
	for i := range descriptors {
		descriptors[i] = Descriptor{Ordinal: i + 1}
	}
	return descriptors, nil
}
