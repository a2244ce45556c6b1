package coordinator

import (
	"io"
	"sync"
	"time"
)

// Console is the shared lock together with the writer it guards. The
// coordinator creates one per run and passes it by pointer to every worker.
type Console struct {
	mu       sync.Mutex
	out      io.Writer
	observer Observer
}

// NewConsole returns a Console guarding out. A nil observer is replaced by
// NullObserver.
func NewConsole(out io.Writer, observer Observer) *Console {
	if observer == nil {
		observer = NullObserver{}
	}
	return &Console{out: out, observer: observer}
}

// Locked runs fn while holding the lock and hands it the guarded writer.
// The lock is released when fn returns or panics.
func (c *Console) Locked(fn func(w io.Writer) error) error {
	start := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observer.LockWaited(time.Since(start))
	return fn(c.out)
}
