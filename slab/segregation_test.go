package slab

import (
	"math/rand"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two slabs worth of objects; draining the first slab completely must
// promote it ahead of the still partially occupied second slab.
func TestEmptySlabPromotedAheadOfPartial(t *testing.T) {
	c, _ := newTestCache(t, 24, 8)
	n := c.SlabCapacity()

	firstBatch := make([]unsafe.Pointer, n)
	for i := 0; i < n; i++ {
		firstBatch[i] = c.Alloc()
	}
	secondBatch := make([]unsafe.Pointer, n)
	for i := 0; i < n; i++ {
		secondBatch[i] = c.Alloc()
	}

	first := owner(firstBatch[0])
	second := owner(secondBatch[0])
	require.NotSame(t, first, second)

	// Make the second slab partial, then drain the first completely.
	c.Free(secondBatch[0])
	for _, p := range firstBatch {
		c.Free(p)
	}

	require.True(t, first.empty())
	require.False(t, second.empty())
	assert.Same(t, first, c.head, "empty slab must lead the list")
	assert.Same(t, second, first.next)
	validateCache(t, c)
}

// An empty slab that already borders the empty prefix stays where it is;
// promotion happens only on the partial-to-empty edge.
func TestEmptyPrefixStable(t *testing.T) {
	c, _ := newTestCache(t, 24, 8)
	n := c.SlabCapacity()

	// Three slabs, all full.
	batches := make([][]unsafe.Pointer, 3)
	for b := range batches {
		batches[b] = make([]unsafe.Pointer, n)
		for i := 0; i < n; i++ {
			batches[b][i] = c.Alloc()
		}
	}

	// Drain them one slab at a time; every drained slab must be found in
	// the head prefix of empties, never behind a non-empty slab.
	drained := make(map[*slab]bool)
	for b, batch := range batches {
		for _, p := range batch {
			c.Free(p)
		}
		drained[owner(batch[0])] = true

		prefix := make(map[*slab]bool)
		s := c.head
		for s != nil && s.empty() {
			prefix[s] = true
			s = s.next
		}
		require.Lenf(t, prefix, len(drained), "round %d: empty prefix size", b)
		for want := range drained {
			require.Truef(t, prefix[want], "round %d: drained slab not in prefix", b)
		}
		validateCache(t, c)
	}
}

func TestEmptyPrefixUnderRandomChurn(t *testing.T) {
	c, _ := newTestCache(t, 32, 8)
	rng := rand.New(rand.NewSource(7))

	var live []unsafe.Pointer
	for i := 0; i < 8000; i++ {
		// Saw-tooth load: grow to several slabs, collapse, repeat.
		phase := (i / 1000) % 2
		allocBias := 80
		if phase == 1 {
			allocBias = 15
		}

		if rng.Intn(100) < allocBias || len(live) == 0 {
			live = append(live, c.Alloc())
		} else {
			j := rng.Intn(len(live))
			c.Free(live[j])
			live[j] = live[len(live)-1]
			live = live[:len(live)-1]
		}

		// A snapshot scan from the front finds empties only as a prefix.
		inPrefix := true
		for s := c.head; s != nil; s = s.next {
			if s.empty() {
				require.True(t, inPrefix, "step %d: stray empty slab", i)
			} else {
				inPrefix = false
			}
		}
	}
}
