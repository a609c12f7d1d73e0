package slab

import (
	"unsafe"

	"github.com/chelmuth/slabkit/internal/arch"
)

// slab is the per-page header, placed at the base of the page it manages.
// The buffers live in the same page, packed from the top downward, so the
// header address doubles as the page base and owner(p) can recover it from
// any buffer pointer by masking.
//
// All state the free list needs is scalar; the only Go pointers are the
// list links, which point at other slab headers in equally GC-invisible
// pages.
type slab struct {
	freeHead uintptr // link-field address of the first free buffer, 0 when full
	avail    uintptr // buffers currently free
	capacity uintptr // buffers this page holds

	prev *slab // neighbor toward the list head
	next *slab // neighbor toward the list tail
}

// headerSize is the page space consumed by the slab header itself.
const headerSize = int(unsafe.Sizeof(slab{}))

// formatSlab lays a fresh slab over one page unit at base. Every buffer is
// threaded onto the free list by writing the previous head into its link
// word, which sits objectSize bytes past the buffer's usable storage. The
// list ends up LIFO with the lowest buffer in the page on top.
func formatSlab(base uintptr, objectSize, stride, capacity int) *slab {
	s := (*slab)(unsafe.Pointer(base))
	s.freeHead = 0
	s.avail = uintptr(capacity)
	s.capacity = uintptr(capacity)
	s.prev = nil
	s.next = nil

	link := base + arch.PageUnit - uintptr(stride) + uintptr(objectSize)
	for i := 0; i < capacity; i++ {
		*(*uintptr)(unsafe.Pointer(link)) = s.freeHead
		s.freeHead = link
		link -= uintptr(stride)
	}
	return s
}

// owner recovers the slab that a buffer pointer belongs to.
func owner(p unsafe.Pointer) *slab {
	return (*slab)(unsafe.Pointer(arch.PageBase(uintptr(p))))
}

func (s *slab) full() bool  { return s.avail == 0 }
func (s *slab) empty() bool { return s.avail == s.capacity }

// used returns the count of live buffers in this slab.
func (s *slab) used() int { return int(s.capacity - s.avail) }

// pop removes the top free buffer and returns its storage address.
// The caller guarantees the slab is not full. When the last buffer is
// popped the link word it carried is zero, leaving freeHead null.
func (s *slab) pop(objectSize uintptr) unsafe.Pointer {
	s.avail--

	link := s.freeHead
	s.freeHead = *(*uintptr)(unsafe.Pointer(link))
	return unsafe.Pointer(link - objectSize)
}

// push threads the buffer at p back onto the free list. Only the trailing
// link word of the buffer is written; the object bytes are left as the
// caller abandoned them.
func (s *slab) push(p unsafe.Pointer, objectSize uintptr) {
	s.avail++

	link := uintptr(p) + objectSize
	*(*uintptr)(unsafe.Pointer(link)) = s.freeHead
	s.freeHead = link
}
