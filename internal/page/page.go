// Package page supplies page-unit backing memory for slab caches.
//
// A provider hands out blocks of exactly arch.PageUnit bytes, aligned to
// arch.PageUnit, and never takes them back. The allocator masks interior
// pointers down to the page base to find the owning slab, so the alignment
// guarantee is load-bearing, not cosmetic: every implementation here either
// gets it from the kernel or manufactures it, and the tests assert it.
package page

import (
	"errors"
	"sync/atomic"
)

// Provider is the backing-memory contract. Page returns the address of one
// page unit. Implementations are safe for concurrent use.
type Provider interface {
	Page() (uintptr, error)
}

// ErrExhausted indicates the provider cannot supply further pages.
var ErrExhausted = errors.New("page: backing memory exhausted")

// Counting wraps a Provider and counts the pages it serves.
type Counting struct {
	P Provider

	served atomic.Int64
}

// Page obtains a page from the wrapped provider.
func (c *Counting) Page() (uintptr, error) {
	addr, err := c.P.Page()
	if err != nil {
		return 0, err
	}
	c.served.Add(1)
	return addr, nil
}

// Served returns how many pages have been handed out.
func (c *Counting) Served() int64 {
	return c.served.Load()
}

// Limited wraps a Provider and fails with ErrExhausted once the budget is
// spent. Used to exercise exhaustion paths.
type Limited struct {
	P Provider

	remaining atomic.Int64
}

// NewLimited returns a provider that serves at most budget pages.
func NewLimited(p Provider, budget int64) *Limited {
	l := &Limited{P: p}
	l.remaining.Store(budget)
	return l
}

// Page obtains a page from the wrapped provider, or ErrExhausted once the
// budget is spent.
func (l *Limited) Page() (uintptr, error) {
	if l.remaining.Add(-1) < 0 {
		return 0, ErrExhausted
	}
	return l.P.Page()
}
