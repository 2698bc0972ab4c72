package main

/*
#include <stdlib.h>
*/
import "C"

import "unsafe"

// cAllocator hands results to the host in C heap memory so the host can
// hold them past the call and release them with htm_free_string.
type cAllocator struct{}

func (cAllocator) Alloc(size int) unsafe.Pointer {
	return C.malloc(C.size_t(size))
}

func (cAllocator) Free(p unsafe.Pointer) {
	C.free(p)
}
