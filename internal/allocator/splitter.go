package allocator

// split installs the residual free block, if any, after carving r bytes of
// payload out of the free block at off, then marks that block busy. r must
// already be rounded up to a multiple of 4 and must not exceed the block's
// current payload.
//
// If the leftover (payload - r) is smaller than splitThreshold, no split
// happens: the block keeps its full size but is marked busy, and the
// leftover bytes become internal fragmentation recoverable only when the
// block is released. This is intentional, preserved from the reference
// implementation.
func split(region []byte, off uintptr, r uintptr) {
	h := headerAt(region, off)
	p := payload(h)

	leftover := p - r
	if leftover < splitThreshold {
		markBusy(h)

		return
	}

	newOff := off + headerSize + r
	n := headerAt(region, newOff)
	n.next = h.next
	n.sizeStatus = int64(leftover - headerSize) // even: free

	h.next = uint64(newOff)
	h.sizeStatus = int64(r)
	markBusy(h)
}
