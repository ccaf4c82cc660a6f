package book

import "unsafe"

// uintptrOf exposes a pointer's address for the single purpose of bounds-
// checking it against a pool's backing slab in Owns. No arithmetic is
// performed on the result beyond ordering comparisons against other
// addresses taken the same way, so this does not run afoul of unsafe.Pointer
// rule (1) (conversion to uintptr and back).
func uintptrOf(o *Order) uintptr {
	return uintptr(unsafe.Pointer(o))
}
