//go:build !unix && !windows

package page

import (
	"sync"

	"github.com/chelmuth/slabkit/internal/arch"
)

// chunkPages is how many page units a single arena chunk carries.
const chunkPages = 16

// System carves page units out of heap-allocated arena chunks when no
// platform mapping primitive is available. Chunks are over-allocated by one
// page unit so the first page can be aligned manually, and they are retained
// for the life of the provider: the Go collector must never reclaim memory
// the allocator still threads free lists through. The zero value is ready
// to use.
type System struct {
	mu     sync.Mutex
	next   uintptr // next aligned page in the current chunk
	end    uintptr // end of the current chunk
	chunks [][]byte
}

// Page returns one page unit from the current chunk, growing the arena when
// the chunk is spent.
func (s *System) Page() (uintptr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.next+arch.PageUnit > s.end {
		chunk := make([]byte, (chunkPages+1)*arch.PageUnit)
		s.chunks = append(s.chunks, chunk)
		base := baseOf(chunk)
		s.next = uintptr(arch.AlignUp(int(base), arch.PageUnit))
		s.end = base + uintptr(len(chunk))
	}

	addr := s.next
	s.next += arch.PageUnit
	return addr, nil
}
