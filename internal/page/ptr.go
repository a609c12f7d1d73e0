package page

import "unsafe"

// baseOf returns the address of the first byte of mem.
func baseOf(mem []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(mem)))
}
