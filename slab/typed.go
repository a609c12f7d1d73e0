package slab

import (
	"fmt"
	"reflect"
	"unsafe"
)

// TypedCache is a generic façade over a Cache for one Go type. It keeps
// the unsafe pointer handling on this side of the API: clients see *T in
// and *T out.
//
// Because objects live in memory the garbage collector does not scan, T
// must not contain Go pointers in any form (pointers, slices, maps,
// strings, channels, funcs, interfaces). NewTyped rejects such types.
type TypedCache[T any] struct {
	c *Cache
}

// NewTyped builds a cache sized and aligned for T. cfg.Size and cfg.Align
// are derived from T and must be left zero; the remaining fields are used
// as in NewCache.
func NewTyped[T any](cfg Config) (*TypedCache[T], error) {
	var zero T
	t := reflect.TypeOf(&zero).Elem()
	if err := noPointers(t); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPointerful, t, err)
	}
	if cfg.Size != 0 || cfg.Align != 0 {
		return nil, fmt.Errorf("%w: size and alignment are derived from %s", ErrBadSize, t)
	}
	cfg.Size = int(unsafe.Sizeof(zero))
	cfg.Align = int(unsafe.Alignof(zero))

	c, err := NewCache(cfg)
	if err != nil {
		return nil, err
	}
	return &TypedCache[T]{c: c}, nil
}

// New allocates a zeroed T.
func (tc *TypedCache[T]) New() *T {
	p := (*T)(tc.c.Alloc())
	var zero T
	*p = zero
	return p
}

// Free returns v to the cache. Same contract as Cache.Free.
func (tc *TypedCache[T]) Free(v *T) {
	tc.c.Free(unsafe.Pointer(v))
}

// Cache exposes the underlying cache, e.g. for diagnostics.
func (tc *TypedCache[T]) Cache() *Cache { return tc.c }

// noPointers walks t and rejects any kind the collector would need to
// trace.
func noPointers(t reflect.Type) error {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return nil
	case reflect.Array:
		return noPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if err := noPointers(f.Type); err != nil {
				return fmt.Errorf("field %s: %w", f.Name, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("kind %s is pointerful", t.Kind())
	}
}
