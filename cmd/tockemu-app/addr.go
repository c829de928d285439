package main

import "unsafe"

// uintptrOf returns the raw address of b's backing array, the "slice_ptr"
// an on-target app would pass to allow() directly as a pointer.
func uintptrOf(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}
