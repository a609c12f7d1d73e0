// Package spin provides the short-hold mutual-exclusion primitive used to
// serialize allocator operations. Critical sections are a handful of pointer
// writes, so a polling lock with a yield backoff beats parking a goroutine.
package spin

import (
	"runtime"
	"sync/atomic"
)

// spinBudget is how many failed acquire attempts are made before yielding
// the processor to let the holder run.
const spinBudget = 64

// Lock is a non-reentrant spin lock. The zero value is unlocked.
type Lock struct {
	state atomic.Uint32
}

// Acquire busy-waits until the lock is taken. Not reentrant: a second
// Acquire from the holder deadlocks.
func (l *Lock) Acquire() {
	for spins := 0; !l.TryAcquire(); spins++ {
		if spins >= spinBudget {
			runtime.Gosched()
			spins = 0
		}
	}
}

// TryAcquire takes the lock if it is free and reports whether it did.
func (l *Lock) TryAcquire() bool {
	return l.state.CompareAndSwap(0, 1)
}

// Release unlocks. Calling Release on an unheld lock is a bug in the caller.
func (l *Lock) Release() {
	l.state.Store(0)
}
