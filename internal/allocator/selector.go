package allocator

// selectBlock scans the free list once under policy and returns the offset
// of the chosen block and true, or (0, false) if no free block can satisfy
// r bytes of payload. r must already be rounded up to a multiple of 4.
//
// This implements the textbook definitions of best-fit and worst-fit
// (true minimum/maximum payload among candidates, ties broken by lowest
// offset) rather than the reference implementation's extremum-tracking
// quirk — see the Open Questions decision in SPEC_FULL.md.
func selectBlock(region []byte, policy Policy, r uintptr) (uintptr, bool) {
	switch policy {
	case FirstFit:
		return selectFirstFit(region, r)
	case BestFit:
		return selectExtremeFit(region, r, true)
	case WorstFit:
		return selectExtremeFit(region, r, false)
	default:
		return 0, false
	}
}

func selectFirstFit(region []byte, r uintptr) (uintptr, bool) {
	var (
		found    bool
		foundOff uintptr
	)

	walk(region, func(off uintptr, h *header) bool {
		if isFree(h) && payload(h) >= r {
			found, foundOff = true, off

			return false
		}

		return true
	})

	return foundOff, found
}

// selectExtremeFit finds the free block of smallest (wantSmallest=true) or
// largest payload among those with payload >= r, breaking ties toward the
// lowest offset by only replacing a strict improvement.
func selectExtremeFit(region []byte, r uintptr, wantSmallest bool) (uintptr, bool) {
	var (
		found     bool
		foundOff  uintptr
		foundSize uintptr
	)

	walk(region, func(off uintptr, h *header) bool {
		if !isFree(h) {
			return true
		}

		size := payload(h)
		if size < r {
			return true
		}

		switch {
		case !found:
			found, foundOff, foundSize = true, off, size
		case wantSmallest && size < foundSize:
			foundOff, foundSize = off, size
		case !wantSmallest && size > foundSize:
			foundOff, foundSize = off, size
		}

		return true
	})

	return foundOff, found
}
