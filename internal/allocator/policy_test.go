package allocator

import (
	"testing"
	"unsafe"
)

// allocNine performs the literal allocation sequence from SPEC_FULL.md's
// policy-distinguishing scenarios and returns the nine pointers in order.
func allocNine(t *testing.T, h *Heap) [9]unsafe.Pointer {
	t.Helper()

	sizes := [9]int{300, 200, 200, 100, 200, 800, 500, 700, 300}

	var ptrs [9]unsafe.Pointer

	for i, size := range sizes {
		ptr, ok := h.Allocate(size)
		if !ok {
			t.Fatalf("Allocate(%d) (index %d) failed", size, i)
		}

		ptrs[i] = ptr
	}

	return ptrs
}

// within reports whether addr falls in [begin, begin+size).
func within(addr unsafe.Pointer, begin unsafe.Pointer, size int) bool {
	a := uintptr(addr)
	b := uintptr(begin)

	return a >= b && a < b+uintptr(size)
}

func TestBestFitSplit(t *testing.T) {
	h := newTestHeap(t)
	mustInit(t, h, 4096, BestFit)

	ptrs := allocNine(t, h)
	b, d, f, hh := ptrs[1], ptrs[3], ptrs[5], ptrs[7]

	for _, p := range []unsafe.Pointer{b, d, f, hh} {
		if err := h.Release(p); err != nil {
			t.Fatalf("release failed: %v", err)
		}
	}

	tPtr, ok := h.Allocate(50)
	if !ok {
		t.Fatal("Allocate(50) failed")
	}

	// The distilled spec's Open Question: accept either the d-range
	// (true smallest-fit, 100 bytes) or the b-range (200 bytes) as valid.
	if !within(tPtr, d, 100) && !within(tPtr, b, 200) {
		t.Fatalf("allocation landed outside both the d-range and the b-range: %p", tPtr)
	}
}

func TestFirstFitPicksFirstFreeBlock(t *testing.T) {
	h := newTestHeap(t)
	mustInit(t, h, 4096, FirstFit)

	ptrs := allocNine(t, h)
	b, d, f, hh := ptrs[1], ptrs[3], ptrs[5], ptrs[7]

	for _, p := range []unsafe.Pointer{b, d, f, hh} {
		if err := h.Release(p); err != nil {
			t.Fatalf("release failed: %v", err)
		}
	}

	tPtr, ok := h.Allocate(50)
	if !ok {
		t.Fatal("Allocate(50) failed")
	}

	if !within(tPtr, b, 200) {
		t.Fatalf("first-fit should land in the b-range, got %p (b=%p)", tPtr, b)
	}
}

func TestWorstFitPicksLargestFreeBlock(t *testing.T) {
	h := newTestHeap(t)
	mustInit(t, h, 4096, WorstFit)

	ptrs := allocNine(t, h)
	b, d, f, hh := ptrs[1], ptrs[3], ptrs[5], ptrs[7]

	for _, p := range []unsafe.Pointer{b, d, f, hh} {
		if err := h.Release(p); err != nil {
			t.Fatalf("release failed: %v", err)
		}
	}

	tPtr, ok := h.Allocate(50)
	if !ok {
		t.Fatal("Allocate(50) failed")
	}

	if !within(tPtr, f, 800) {
		t.Fatalf("worst-fit should land in the f-range, got %p (f=%p)", tPtr, f)
	}
}
