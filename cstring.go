package html2md

import (
	"fmt"
	"strings"
	"unicode/utf8"
	"unsafe"
)

// Allocator provides the memory handed across the C boundary. Memory from
// Alloc must stay valid and unmoved until Free is called with the same pointer.
type Allocator interface {
	// Alloc returns size bytes, or nil when allocation fails.
	Alloc(size int) unsafe.Pointer
	// Free releases memory returned by Alloc.
	Free(p unsafe.Pointer)
}

// BorrowCString returns a zero-copy view of the NUL-terminated string at p.
// The view aliases caller memory and must not outlive the current call.
func BorrowCString(p unsafe.Pointer) (string, error) {
	if p == nil {
		return "", ErrInvalidArgument
	}
	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	s := unsafe.String((*byte)(p), n)
	if !utf8.ValidString(s) {
		return "", ErrInvalidEncoding
	}
	return s, nil
}

// newOwnedString copies s into memory from alloc and appends a NUL
// terminator. The caller owns the result and releases it through alloc.
func newOwnedString(alloc Allocator, s string) (unsafe.Pointer, error) {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return nil, fmt.Errorf("%w: embedded NUL at byte %d", ErrEncoding, i)
	}
	p := alloc.Alloc(len(s) + 1)
	if p == nil {
		return nil, fmt.Errorf("%w: allocating %d bytes", ErrEncoding, len(s)+1)
	}
	buf := unsafe.Slice((*byte)(p), len(s)+1)
	copy(buf, s)
	buf[len(s)] = 0
	return p, nil
}
