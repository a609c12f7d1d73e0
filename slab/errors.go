package slab

import "errors"

var (
	// ErrBadSize indicates a non-positive object size.
	ErrBadSize = errors.New("slab: object size must be positive")

	// ErrBadAlign indicates an alignment that is not a power of two.
	ErrBadAlign = errors.New("slab: alignment must be a power of two")

	// ErrClassTooLarge indicates an object class whose buffer stride does
	// not fit a single page unit alongside the slab header.
	ErrClassTooLarge = errors.New("slab: object class does not fit in one page")

	// ErrPointerful indicates a typed cache instantiated with a type that
	// contains Go pointers, which the collector could not trace through
	// slab memory.
	ErrPointerful = errors.New("slab: type contains Go pointers")

	// ErrPageExhausted indicates the page provider failed during growth.
	// It is carried by the panic raised from Alloc; growth failure is
	// fatal by design.
	ErrPageExhausted = errors.New("slab: page provider exhausted")
)
