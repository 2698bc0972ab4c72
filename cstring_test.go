package html2md

import (
	"errors"
	"sync"
	"testing"
	"unsafe"
)

// ---------------------------------------------------------------------------
// Test Helpers
// ---------------------------------------------------------------------------

// trackingAllocator hands out Go heap memory and records every call.
type trackingAllocator struct {
	mu     sync.Mutex
	live   map[unsafe.Pointer][]byte
	allocs int
	frees  int
	fail   bool
}

func newTrackingAllocator() *trackingAllocator {
	return &trackingAllocator{live: make(map[unsafe.Pointer][]byte)}
}

func (a *trackingAllocator) Alloc(size int) unsafe.Pointer {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.fail || size <= 0 {
		return nil
	}
	buf := make([]byte, size)
	p := unsafe.Pointer(&buf[0])
	a.live[p] = buf
	a.allocs++
	return p
}

func (a *trackingAllocator) Free(p unsafe.Pointer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.live, p)
	a.frees++
}

func (a *trackingAllocator) liveCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}

// cstr returns a NUL-terminated copy of s in Go memory.
func cstr(s string) unsafe.Pointer {
	buf := append([]byte(s), 0)
	return unsafe.Pointer(&buf[0])
}

// gostr copies the NUL-terminated string at p.
func gostr(t *testing.T, p unsafe.Pointer) string {
	t.Helper()
	if p == nil {
		t.Fatal("unexpected nil result")
	}
	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(p), n))
}

// ---------------------------------------------------------------------------
// BorrowCString
// ---------------------------------------------------------------------------

func TestBorrowCString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   unsafe.Pointer
		want    string
		wantErr error
	}{
		{
			name:    "nil pointer",
			input:   nil,
			wantErr: ErrInvalidArgument,
		},
		{
			name:  "empty string",
			input: cstr(""),
			want:  "",
		},
		{
			name:  "ascii",
			input: cstr("<p>hi</p>"),
			want:  "<p>hi</p>",
		},
		{
			name:  "multibyte",
			input: cstr("héllo 世界 🎉"),
			want:  "héllo 世界 🎉",
		},
		{
			name:  "stops at first NUL",
			input: cstr("ab\x00cd"),
			want:  "ab",
		},
		{
			name:    "invalid utf8",
			input:   cstr("ab\xffcd"),
			wantErr: ErrInvalidEncoding,
		},
		{
			name:    "truncated multibyte sequence",
			input:   cstr("\xe4\xb8"),
			wantErr: ErrInvalidEncoding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := BorrowCString(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("BorrowCString() error = %v, want %v", err, tt.wantErr)
				}
				if got != "" {
					t.Errorf("BorrowCString() returned partial result %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("BorrowCString() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("BorrowCString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBorrowCString_ZeroCopy(t *testing.T) {
	t.Parallel()

	buf := []byte("shared\x00")
	got, err := BorrowCString(unsafe.Pointer(&buf[0]))
	if err != nil {
		t.Fatalf("BorrowCString() unexpected error: %v", err)
	}
	if unsafe.StringData(got) != &buf[0] {
		t.Error("BorrowCString() should alias caller memory")
	}
}

// ---------------------------------------------------------------------------
// newOwnedString
// ---------------------------------------------------------------------------

func TestNewOwnedString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "empty", input: ""},
		{name: "markdown", input: "# Title\n\nbody"},
		{name: "multibyte", input: "ünïcødé ✓"},
		{name: "embedded NUL", input: "a\x00b", wantErr: ErrEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			alloc := newTrackingAllocator()
			p, err := newOwnedString(alloc, tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("newOwnedString() error = %v, want %v", err, tt.wantErr)
				}
				if p != nil || alloc.allocs != 0 {
					t.Errorf("no memory should be allocated on failure (allocs=%d)", alloc.allocs)
				}
				return
			}
			if err != nil {
				t.Fatalf("newOwnedString() unexpected error: %v", err)
			}
			if got := gostr(t, p); got != tt.input {
				t.Errorf("owned string = %q, want %q", got, tt.input)
			}
			if len(alloc.live[p]) != len(tt.input)+1 {
				t.Errorf("allocated %d bytes, want %d", len(alloc.live[p]), len(tt.input)+1)
			}
		})
	}
}

func TestNewOwnedString_AllocationFailure(t *testing.T) {
	t.Parallel()

	alloc := newTrackingAllocator()
	alloc.fail = true

	p, err := newOwnedString(alloc, "x")
	if !errors.Is(err, ErrEncoding) {
		t.Errorf("error = %v, want ErrEncoding", err)
	}
	if p != nil {
		t.Error("expected nil pointer on allocation failure")
	}
}
