// Package slab implements a fixed-size object allocator in the style of a
// kernel slab cache: one cache per object size/alignment class, each cache
// managing page-sized slabs that pack objects densely and serve allocation
// and release in O(1).
//
// # Overview
//
// A Cache owns an ordered, doubly-linked list of slabs. Each slab is one
// page unit of backing memory whose free buffers are threaded as an
// intrusive LIFO list: a freed buffer stores the address of the next free
// buffer in a link word that trails its own storage. The slab header lives
// at the base of the page, so any buffer pointer can be masked down to the
// page base to recover its owning slab without lookup structures.
//
// # Allocation strategy
//
// The cache keeps a cursor designating the slab that serves the next
// allocation. Two ordering rules hold after every operation:
//
//   - the cursor slab is never full
//   - every slab past the cursor, toward the list tail, is full
//
// When the cursor slab fills up, the cursor steps one slab toward the head,
// which by construction has known residual space. When no usable slab
// remains the cache grows by exactly one page. Releases bias the allocator
// toward packing: a slab that leaves the full state immediately becomes the
// new cursor, and a slab that becomes completely empty is promoted to the
// list head, keeping reclamation candidates segregated as a prefix.
//
// # Usage Example
//
//	c, err := slab.NewCache(slab.Config{Name: "pcb", Size: 192})
//	if err != nil {
//	    return err
//	}
//
//	p := c.Alloc()
//	// ... use the 192 bytes at p ...
//	c.Free(p)
//
// For Go-typed clients the generic wrapper avoids raw pointers:
//
//	tc, err := slab.NewTyped[Capability](slab.Config{Name: "cap"})
//	cap := tc.New()
//	tc.Free(cap)
//
// # Backing memory
//
// Pages come from a Provider, one page unit at a time, page-unit aligned,
// and are never returned. Exhaustion of the provider during growth is
// treated as fatal and panics; a kernel-style allocator has no fallback.
//
// # Thread Safety
//
// Each cache serializes Alloc/Free with its own short-hold spin lock; no
// cross-cache locking exists. Diagnostics (Stats, WriteStats) traverse the
// slab list without the lock and are intended for quiescent or advisory
// use only.
//
// # Hazards
//
// The allocator hands out raw memory that the garbage collector cannot
// see. Objects stored in slab memory must not contain Go pointers; the
// typed wrapper enforces this at construction. Freeing a pointer the cache
// does not own, or freeing twice, is undefined behavior and deliberately
// not detected.
package slab
