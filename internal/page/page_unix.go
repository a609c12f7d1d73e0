//go:build unix

package page

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/chelmuth/slabkit/internal/arch"
)

// System obtains page units from the operating system with anonymous mmap.
// Mappings are at least OS-page aligned, which satisfies the page-unit
// alignment contract on every supported platform; Page verifies rather
// than assumes. The zero value is ready to use.
type System struct{}

// Page maps one page unit of zeroed memory.
func (System) Page() (uintptr, error) {
	mem, err := unix.Mmap(-1, 0, arch.PageUnit,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return 0, fmt.Errorf("page: mmap: %w", err)
	}
	addr := baseOf(mem)
	if !arch.AlignedTo(addr, arch.PageUnit) {
		// Would break pointer-to-slab recovery; treat as a provider failure.
		return 0, fmt.Errorf("page: mmap returned misaligned block %#x", addr)
	}
	return addr, nil
}
