// Package signal provides reference-counted semaphores with optional
// signal chaining: a Signal couples a semaphore of its own to another
// semaphore, and submitting the signal releases both.
//
// The package is an ordinary client of the slab allocator. Semaphores and
// signals live in slab memory, so every field is scalar and chains are
// held as raw slab addresses; objects are returned to their caches when
// the last reference is dropped.
package signal

import (
	"log/slog"
	"runtime"
	"sync/atomic"
	"unsafe"

	"github.com/chelmuth/slabkit/slab"
)

var (
	semCache = mustCache[Sem]("sm")
	sigCache = mustCache[Signal]("si")
)

func mustCache[T any](name string) *slab.TypedCache[T] {
	tc, err := slab.NewTyped[T](slab.Config{Name: name})
	if err != nil {
		panic(err)
	}
	return tc
}

// Sem is a counting semaphore with a reference count. Create it with
// NewSem; it is freed back to its cache when the last reference is
// dropped.
type Sem struct {
	count atomic.Uint64
	refs  atomic.Int64
}

// NewSem returns a semaphore with count zero and one reference, owned by
// the caller.
func NewSem() *Sem {
	s := semCache.New()
	s.refs.Store(1)
	return s
}

// AddRef takes an additional reference.
func (s *Sem) AddRef() {
	s.refs.Add(1)
}

// Unref drops one reference and reports whether it was the last. The
// final drop returns the semaphore to its cache; s must not be used
// afterwards.
func (s *Sem) Unref() bool {
	if s.refs.Add(-1) > 0 {
		return false
	}
	semCache.Free(s)
	return true
}

// Up releases the semaphore once.
func (s *Sem) Up() {
	s.count.Add(1)
}

// TryDown acquires the semaphore if its count is positive and reports
// whether it did.
func (s *Sem) TryDown() bool {
	for {
		c := s.count.Load()
		if c == 0 {
			return false
		}
		if s.count.CompareAndSwap(c, c-1) {
			return true
		}
	}
}

// Down acquires the semaphore, spinning with a yield until a release
// arrives.
func (s *Sem) Down() {
	for spins := 0; !s.TryDown(); spins++ {
		if spins >= 64 {
			runtime.Gosched()
			spins = 0
		}
	}
}

// Pending returns the current count. Diagnostic only.
func (s *Sem) Pending() uint64 {
	return s.count.Load()
}

// Signal is a semaphore that optionally chains to another semaphore.
// Submitting the signal releases its own semaphore first and then, when
// chained, the chained one, so a waiter on the chained semaphore finds
// the signal already released.
type Signal struct {
	Sem

	chain uintptr // slab address of the chained Sem, 0 for a plain semaphore
	value uint64
}

// NewSignal returns a signal carrying value. When chained is non-nil the
// signal holds a reference on it until its last Unref.
func NewSignal(chained *Sem, value uint64) *Signal {
	sig := sigCache.New()
	sig.refs.Store(1)
	sig.value = value
	if chained != nil {
		chained.AddRef()
		sig.chain = uintptr(unsafe.Pointer(chained))
	}
	slog.Debug("signal: created", "value", value, "chained", chained != nil)
	return sig
}

// Value returns the payload the signal was created with.
func (sig *Signal) Value() uint64 {
	return sig.value
}

// Chained returns the chained semaphore, or nil for a plain semaphore.
func (sig *Signal) Chained() *Sem {
	if sig.chain == 0 {
		return nil
	}
	return (*Sem)(unsafe.Pointer(sig.chain))
}

// Submit releases the signal's own semaphore and propagates the release
// to the chained semaphore if there is one.
func (sig *Signal) Submit() {
	sig.Up()

	if chained := sig.Chained(); chained != nil {
		chained.Up()
	}
}

// Unref drops one reference and reports whether it was the last. On the
// last drop the chained semaphore's reference is dropped as well, after
// any pending propagation, and the signal is returned to its own cache.
// Shadows the promoted Sem.Unref, which would free into the wrong cache.
func (sig *Signal) Unref() bool {
	if sig.refs.Add(-1) > 0 {
		return false
	}
	if chained := sig.Chained(); chained != nil {
		chained.Unref()
	}
	sigCache.Free(sig)
	return true
}

// AddRef takes an additional reference on the signal.
func (sig *Signal) AddRef() {
	sig.refs.Add(1)
}
