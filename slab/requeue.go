package slab

// The slab list is ordered head → tail as
//
//	[empty ...][partial ...][cursor][full ...]
//
// and the two requeue transitions below are the only structural edits ever
// made outside grow. Each one is a constant number of link writes and each
// restores the ordering rules stated on Cache: the cursor slab is never
// full, every slab past the cursor is full, and empty slabs form a prefix
// at the head.

// requeuePartial handles a slab that just left the full state. Being
// nearly full it is the best packing target, so it unconditionally becomes
// the new cursor. If full slabs separate it from the cursor it is spliced
// out of the full region and placed directly behind the cursor; its old
// neighbors are patched by direct relinking, so the full region stays
// contiguous. When no cursor exists the slab becomes the new head.
func (c *Cache) requeuePartial(s *slab) {
	if s.prev != nil && s.prev.full() {
		unlink(s)

		if c.curr != nil {
			s.prev = c.curr
			s.next = c.curr.next
			c.curr.next = s
			if s.next != nil {
				s.next.prev = s
			}
		} else {
			s.prev = nil
			s.next = c.head
			c.head.prev = s
			c.head = s
		}
	}

	c.curr = s
}

// requeueEmpty handles a slab that just became completely empty. It is
// promoted to the very front of the list, ahead of every other slab, so
// reclamation candidates stay segregated as a head prefix that can be
// found in O(1). No move is needed when the head-side neighbor is itself
// empty: the slab already borders the empty prefix. A promoted cursor
// hands the cursor to its former head-side neighbor, which is known to be
// usable.
func (c *Cache) requeueEmpty(s *slab) {
	if s.prev == nil || s.prev.empty() {
		return
	}

	if s == c.curr {
		c.curr = s.prev
	}

	unlink(s)

	s.prev = nil
	s.next = c.head
	c.head.prev = s
	c.head = s
}

// unlink removes s from the list by patching its neighbors together.
// Only ever called on a slab with a head-side neighbor, so the list head
// needs no fixup.
func unlink(s *slab) {
	s.prev.next = s.next
	if s.next != nil {
		s.next.prev = s.prev
	}
}
