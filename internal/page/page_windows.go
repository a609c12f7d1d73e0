//go:build windows

package page

import (
	"fmt"

	"golang.org/x/sys/windows"

	"github.com/chelmuth/slabkit/internal/arch"
)

// System obtains page units from the operating system via VirtualAlloc.
// Reservations are 64KiB aligned, well above the page-unit requirement.
// The zero value is ready to use.
type System struct{}

// Page commits one page unit of zeroed memory.
func (System) Page() (uintptr, error) {
	addr, err := windows.VirtualAlloc(0, arch.PageUnit,
		windows.MEM_RESERVE|windows.MEM_COMMIT,
		windows.PAGE_READWRITE)
	if err != nil {
		return 0, fmt.Errorf("page: VirtualAlloc: %w", err)
	}
	if !arch.AlignedTo(addr, arch.PageUnit) {
		return 0, fmt.Errorf("page: VirtualAlloc returned misaligned block %#x", addr)
	}
	return addr, nil
}
