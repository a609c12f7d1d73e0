package slab

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/chelmuth/slabkit/internal/arch"
	"github.com/chelmuth/slabkit/internal/page"
	"github.com/chelmuth/slabkit/internal/spin"
)

// Provider supplies page-unit backing memory. Page returns the address of
// one zeroed block of arch.PageUnit bytes, aligned to arch.PageUnit. Pages
// are never given back.
type Provider interface {
	Page() (uintptr, error)
}

// systemProvider backs every cache that does not bring its own provider.
var systemProvider Provider = new(page.System)

// Config describes one object class.
type Config struct {
	// Name labels the cache in diagnostics.
	Name string

	// Size is the usable object size in bytes. It is rounded up to the
	// machine word size.
	Size int

	// Align is the required buffer alignment, a power of two. Zero means
	// word alignment.
	Align int

	// Provider overrides the backing-memory source. Nil selects the
	// process-wide system provider.
	Provider Provider

	// Registry overrides where the cache registers itself for global
	// diagnostics. Nil selects DefaultRegistry.
	Registry *Registry
}

// Cache is a slab cache for one object size/alignment class. Create it
// with NewCache; the zero value is not usable.
type Cache struct {
	name     string
	size     int // object size, word-rounded
	stride   int // object size + link word, rounded to the class alignment
	capacity int // buffers per slab

	provider Provider

	lock spin.Lock
	head *slab // list head; empty slabs collect here
	curr *slab // cursor: serves the next allocation, nil forces growth
}

// NewCache builds the cache for one object class and registers it. The
// buffer layout is fixed here once and validated, so the hot paths can do
// pure pointer arithmetic on trusted constants.
func NewCache(cfg Config) (*Cache, error) {
	if cfg.Size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadSize, cfg.Size)
	}
	align := cfg.Align
	if align == 0 {
		align = arch.WordSize
	}
	if !arch.PowerOfTwo(align) {
		return nil, fmt.Errorf("%w: %d", ErrBadAlign, align)
	}

	size := arch.AlignUp(cfg.Size, arch.WordSize)
	stride := arch.AlignUp(size+arch.WordSize, align)
	capacity := (arch.PageUnit - headerSize) / stride
	if capacity == 0 {
		return nil, fmt.Errorf("%w: stride %d, page %d", ErrClassTooLarge, stride, arch.PageUnit)
	}

	c := &Cache{
		name:     cfg.Name,
		size:     size,
		stride:   stride,
		capacity: capacity,
		provider: cfg.Provider,
	}
	if c.provider == nil {
		c.provider = systemProvider
	}

	reg := cfg.Registry
	if reg == nil {
		reg = DefaultRegistry
	}
	reg.add(c)

	slog.Debug("slab: cache created",
		"name", c.name, "size", c.size, "stride", c.stride, "capacity", c.capacity)
	return c, nil
}

// Name returns the diagnostic label.
func (c *Cache) Name() string { return c.name }

// ObjectSize returns the usable object size after word rounding.
func (c *Cache) ObjectSize() int { return c.size }

// BufferSize returns the full per-buffer stride, including the free-list
// link word and alignment padding.
func (c *Cache) BufferSize() int { return c.stride }

// SlabCapacity returns how many buffers one slab holds.
func (c *Cache) SlabCapacity() int { return c.capacity }

// Alloc returns one object of the cache's class. It never fails: when no
// usable slab remains the cache grows by one page, and exhaustion of the
// page provider panics with an error wrapping ErrPageExhausted.
//
// The returned memory is not zeroed unless it comes from a freshly grown
// slab. Its lifetime is the caller's until Free.
func (c *Cache) Alloc() unsafe.Pointer {
	c.lock.Acquire()
	defer c.lock.Release()

	if c.curr == nil {
		c.grow()
	}

	// The cursor is never full, and everything past it toward the tail
	// is; popping can therefore never fail and a filled-up cursor hands
	// over to its head-side neighbor without scanning.
	p := c.curr.pop(uintptr(c.size))
	if c.curr.full() {
		c.curr = c.curr.prev
	}
	return p
}

// Free returns an object to its owning slab and requeues the slab if its
// occupancy state changed. The owning slab is recovered from the pointer
// itself; p must have come from this cache's Alloc and not been freed
// since, anything else is undefined behavior.
func (c *Cache) Free(p unsafe.Pointer) {
	s := owner(p)

	c.lock.Acquire()
	defer c.lock.Release()

	wasFull := s.full()
	s.push(p, uintptr(c.size))

	switch {
	case wasFull:
		c.requeuePartial(s)
	case s.empty():
		c.requeueEmpty(s)
	}
}

// grow obtains one page unit, formats a slab over it and prepends it to
// the list as the new cursor. Runs with the cache lock held; this is the
// only place backing memory is requested.
func (c *Cache) grow() {
	base, err := c.provider.Page()
	if err != nil {
		panic(fmt.Errorf("slab: cache %q: %w: %v", c.name, ErrPageExhausted, err))
	}

	s := formatSlab(base, c.size, c.stride, c.capacity)
	if c.head != nil {
		c.head.prev = s
	}
	s.next = c.head
	c.head = s
	c.curr = s
}
