package coordinator

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -destination=mock_spawner_test.go -package=coordinator . Spawner,Handle

// ErrUnitLimit is returned by GoroutineSpawner when starting another unit
// would exceed its limit.
var ErrUnitLimit = errors.New("concurrent unit limit reached")

// ErrUnitPanicked is wrapped by the join error of a unit that panicked.
var ErrUnitPanicked = errors.New("unit panicked")

// UnitFunc is the body of a concurrent unit.
type UnitFunc func(ctx context.Context) error

// Spawner starts concurrent units.
type Spawner interface {
	// Spawn starts fn as a new unit for the given ordinal and returns a
	// handle to wait for it.
	Spawn(ctx context.Context, ordinal int, fn UnitFunc) (Handle, error)
}

// Handle is the opaque identifier of a running unit.
type Handle interface {
	// Join blocks until the unit terminates. It returns the unit's error,
	// which is non-nil when the unit terminated abnormally.
	Join() error
}

// GoroutineSpawner runs each unit on its own goroutine, tracked by an
// errgroup.Group.
type GoroutineSpawner struct {
	group errgroup.Group
}

// NewGoroutineSpawner returns a spawner allowing at most limit live units.
// A limit of zero or less means no limit.
func NewGoroutineSpawner(limit int) *GoroutineSpawner {
	s := &GoroutineSpawner{}
	if limit > 0 {
		s.group.SetLimit(limit)
	}
	return s
}

// Spawn starts fn on a new goroutine. It fails with ErrUnitLimit when the
// limit is reached; it never blocks waiting for a slot.
func (s *GoroutineSpawner) Spawn(ctx context.Context, ordinal int, fn UnitFunc) (Handle, error) {
	h := &goroutineHandle{done: make(chan struct{})}
	started := s.group.TryGo(func() error {
		defer close(h.done)
		h.err = runUnit(ctx, ordinal, fn)
		return h.err
	})
	if !started {
		return nil, ErrUnitLimit
	}
	return h, nil
}

// Wait blocks until every unit started by s has terminated and returns the
// first unit error.
func (s *GoroutineSpawner) Wait() error {
	return s.group.Wait()
}

type goroutineHandle struct {
	done chan struct{}
	err  error
}

func (h *goroutineHandle) Join() error {
	<-h.done
	return h.err
}

// runUnit runs fn and turns a panic into an error so that it surfaces at
// join time instead of crashing the process.
func runUnit(ctx context.Context, ordinal int, fn UnitFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: unit %d: %v", ErrUnitPanicked, ordinal, r)
		}
	}()
	return fn(ctx)
}
