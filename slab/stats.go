package slab

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/chelmuth/slabkit/internal/arch"
)

// Stats is a point-in-time occupancy summary for one cache.
type Stats struct {
	Name       string // diagnostic label
	Objects    int    // live (allocated, unreleased) objects
	BufferSize int    // per-buffer stride in bytes
	Slabs      int    // slabs owned by the cache
	Bytes      int    // approximate backing memory, Slabs * page unit
}

// statsPrinter formats the report numbers with digit grouping.
var statsPrinter = message.NewPrinter(language.English)

// Stats traverses the slab list and sums occupancy. Purely observational:
// it takes no lock and tolerates a cache that is being mutated only in the
// sense that it reports some interleaving, so treat the numbers as
// advisory under load.
func (c *Cache) Stats() Stats {
	st := Stats{Name: c.name, BufferSize: c.stride}
	for s := c.head; s != nil; s = s.next {
		st.Slabs++
		st.Objects += s.used()
	}
	st.Bytes = st.Slabs * arch.PageUnit
	return st
}

// WriteStats writes a one-line human-readable occupancy report.
func (c *Cache) WriteStats(w io.Writer) error {
	st := c.Stats()
	_, err := statsPrinter.Fprintf(w, "%8s: %6d objs of %4d B in %4d slabs (%d KiB)\n",
		st.Name, st.Objects, st.BufferSize, st.Slabs, st.Bytes/1024)
	return err
}
