package coordinator

import "time"

// Observer receives lifecycle events from the coordinator and the shared
// lock. It decouples the coordinator from the metrics backend.
//
// Implementations must be safe for concurrent use: LockWaited is called from
// the worker goroutines.
type Observer interface {
	// WorkerSpawned is called after the unit for ordinal has started.
	WorkerSpawned(ordinal int)
	// SpawnFailed is called when the unit for ordinal could not be started.
	SpawnFailed(ordinal int)
	// WorkerJoined is called after the join of ordinal; err is the join
	// failure, if any.
	WorkerJoined(ordinal int, err error)
	// LockWaited reports how long a worker blocked before acquiring the lock.
	LockWaited(wait time.Duration)
}

// NullObserver is a no-op implementation of Observer.
type NullObserver struct{}

func (NullObserver) WorkerSpawned(int)        {}
func (NullObserver) SpawnFailed(int)          {}
func (NullObserver) WorkerJoined(int, error)  {}
func (NullObserver) LockWaited(time.Duration) {}
