// Package arch holds the memory-layout constants and pointer math shared by
// the allocator packages. Everything here is a constant-folding formula; the
// tests pin the results so a platform with surprising sizes fails loudly
// instead of corrupting slab layouts.
package arch

import "unsafe"

const (
	// PageUnit is the granularity of backing memory. Every slab occupies
	// exactly one page unit and is aligned to it, which is what makes
	// PageBase able to recover a slab from any interior pointer.
	PageUnit = 4096

	// PageMask masks the offset bits within a page unit.
	PageMask = PageUnit - 1

	// WordSize is the native machine word. Object sizes are rounded up to
	// it, and the free-list link field occupies exactly one word.
	WordSize = int(unsafe.Sizeof(uintptr(0)))
)

// AlignUp returns n rounded up to the next multiple of align.
// align must be a power of two.
//
// Example:
//
//	AlignUp(24, 8)  = 24
//	AlignUp(25, 8)  = 32
//	AlignUp(1, 16)  = 16
func AlignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

// AlignedTo reports whether addr is aligned to align (a power of two).
func AlignedTo(addr uintptr, align int) bool {
	return addr&uintptr(align-1) == 0
}

// PageBase masks addr down to the base of the page unit containing it.
func PageBase(addr uintptr) uintptr {
	return addr &^ uintptr(PageMask)
}

// PowerOfTwo reports whether n is a positive power of two.
func PowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
