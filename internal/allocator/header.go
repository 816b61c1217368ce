package allocator

import "unsafe"

// header is the inline metadata preceding every block's payload. It is laid
// out with two fixed-width fields so unsafe.Sizeof gives a stable, platform
// -independent constant: this is the one module that reaches into the
// region's raw bytes through unsafe.Pointer, and every other package talks
// to it only through offsets.
type header struct {
	// next is the offset (from the region base) of the following block in
	// address order, or absentOffset if this is the last block. Offset 0
	// is always the list head, so no block's successor can legally equal
	// it; absentOffset reuses 0 for "no successor" without ambiguity.
	next uint64

	// sizeStatus packs the payload size into its high bits and the
	// busy/free tag into bit 0. Even => free, payload == sizeStatus.
	// Odd => busy, payload == sizeStatus-1. Never includes header bytes.
	sizeStatus int64
}

// headerSize is H from the spec: the fixed cost of every block's metadata.
const headerSize = uintptr(unsafe.Sizeof(header{}))

// absentOffset marks "no next block". See header.next's doc comment for why
// offset 0 is safe to reuse for this.
const absentOffset uint64 = 0

// minPayload is the smallest legal payload a free (or busy) block may have.
const minPayload = 4

// splitThreshold is H+4: a residual smaller than this cannot form a legal
// free block, so the splitter leaves it as internal fragmentation instead.
const splitThreshold = headerSize + minPayload

// headerAt interprets the bytes at off within region as a *header. Callers
// must have already validated off against the region's bounds; headerAt
// itself does no bounds checking, matching the "pure address arithmetic"
// role this module plays in the design.
func headerAt(region []byte, off uintptr) *header {
	return (*header)(unsafe.Pointer(&region[off]))
}

// isFree reports whether h currently represents a free block.
func isFree(h *header) bool {
	return h.sizeStatus%2 == 0
}

// markBusy flips a free header's tag bit on. A no-op if already busy.
func markBusy(h *header) {
	if isFree(h) {
		h.sizeStatus++
	}
}

// markFree flips a busy header's tag bit off. A no-op if already free.
func markFree(h *header) {
	if !isFree(h) {
		h.sizeStatus--
	}
}

// payload returns the usable byte count of the block, excluding the header
// and excluding the tag bit.
func payload(h *header) uintptr {
	if isFree(h) {
		return uintptr(h.sizeStatus)
	}

	return uintptr(h.sizeStatus - 1)
}

// roundUp4 rounds n up to the nearest multiple of 4, the spec's minimum
// payload granularity.
func roundUp4(n int) int {
	return (n + 3) &^ 3
}

// roundUpPage rounds n up to the nearest multiple of page, the region's
// allocation granularity.
func roundUpPage(n, page int) int {
	if page <= 0 {
		page = 4096
	}

	return (n + page - 1) / page * page
}

// walk calls visit for every block in address order starting at the head
// (offset 0), stopping early if visit returns false. It never mutates the
// list; splitting rewrites a single block in place, and coalescing does its
// own rightward traversal because it needs to observe and rewrite
// next/sizeStatus together.
func walk(region []byte, visit func(off uintptr, h *header) bool) {
	off := uintptr(0)

	for {
		h := headerAt(region, off)
		if !visit(off, h) {
			return
		}

		if h.next == absentOffset {
			return
		}

		off = uintptr(h.next)
	}
}
