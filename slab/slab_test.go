package slab

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chelmuth/slabkit/internal/arch"
	"github.com/chelmuth/slabkit/internal/page"
)

// newTestCache builds an unregistered cache over a counting system
// provider, so tests can observe growth without polluting DefaultRegistry.
func newTestCache(t *testing.T, size, align int) (*Cache, *page.Counting) {
	t.Helper()
	prov := &page.Counting{P: new(page.System)}
	c, err := NewCache(Config{
		Name:     t.Name(),
		Size:     size,
		Align:    align,
		Provider: prov,
		Registry: NewRegistry(),
	})
	require.NoError(t, err)
	return c, prov
}

func TestLayoutFormula(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		align int
	}{
		{"24 byte objects", 24, 8},
		{"word sized", arch.WordSize, 0},
		{"odd size rounds up", 17, 8},
		{"cache line aligned", 48, 64},
		{"single byte", 1, 0},
		{"near page sized", 1024, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCache(t, tt.size, tt.align)

			align := tt.align
			if align == 0 {
				align = arch.WordSize
			}
			wantSize := arch.AlignUp(tt.size, arch.WordSize)
			wantStride := arch.AlignUp(wantSize+arch.WordSize, align)

			assert.Equal(t, wantSize, c.ObjectSize())
			assert.Equal(t, wantStride, c.BufferSize())
			assert.Equal(t, (arch.PageUnit-headerSize)/wantStride, c.SlabCapacity())
			assert.Positive(t, c.SlabCapacity())
		})
	}
}

func TestFormatSlab(t *testing.T) {
	c, _ := newTestCache(t, 24, 8)
	base, err := c.provider.Page()
	require.NoError(t, err)

	s := formatSlab(base, c.size, c.stride, c.capacity)

	require.Equal(t, base, uintptr(unsafe.Pointer(s)), "header must sit at the page base")
	assert.Equal(t, uintptr(c.capacity), s.avail)
	assert.Equal(t, uintptr(c.capacity), s.capacity)
	assert.True(t, s.empty())
	assert.False(t, s.full())
	assert.Nil(t, s.prev)
	assert.Nil(t, s.next)

	// The free list must thread every buffer exactly once, all of them
	// inside the page and clear of the header.
	seen := make(map[uintptr]bool)
	for link := s.freeHead; link != 0; link = *(*uintptr)(unsafe.Pointer(link)) {
		start := link - uintptr(c.size)
		require.False(t, seen[start], "buffer %#x threaded twice", start)
		seen[start] = true

		require.GreaterOrEqual(t, start, base+uintptr(headerSize))
		require.LessOrEqual(t, start+uintptr(c.stride), base+arch.PageUnit)
	}
	assert.Len(t, seen, c.capacity)
}

func TestSlabPopPushLIFO(t *testing.T) {
	c, _ := newTestCache(t, 24, 8)
	base, err := c.provider.Page()
	require.NoError(t, err)
	s := formatSlab(base, c.size, c.stride, c.capacity)

	p := s.pop(uintptr(c.size))
	assert.Equal(t, c.capacity-1, int(s.avail))

	q := s.pop(uintptr(c.size))
	assert.NotEqual(t, p, q)

	// Push then pop returns the same buffer.
	s.push(p, uintptr(c.size))
	assert.Equal(t, p, s.pop(uintptr(c.size)))
}

func TestSlabDrainToFull(t *testing.T) {
	c, _ := newTestCache(t, 24, 8)
	base, err := c.provider.Page()
	require.NoError(t, err)
	s := formatSlab(base, c.size, c.stride, c.capacity)

	seen := make(map[unsafe.Pointer]bool)
	for i := 0; i < c.capacity; i++ {
		p := s.pop(uintptr(c.size))
		require.False(t, seen[p], "buffer %p handed out twice", p)
		seen[p] = true
	}

	assert.True(t, s.full())
	assert.Zero(t, s.freeHead, "drained slab must carry a null free list")
}

func TestOwnerRecovery(t *testing.T) {
	c, _ := newTestCache(t, 24, 8)
	base, err := c.provider.Page()
	require.NoError(t, err)
	s := formatSlab(base, c.size, c.stride, c.capacity)

	for i := 0; i < c.capacity; i++ {
		p := s.pop(uintptr(c.size))
		require.Same(t, s, owner(p))
		// Every interior byte of the object maps back too.
		require.Same(t, s, owner(unsafe.Add(p, c.size-1)))
	}
}
