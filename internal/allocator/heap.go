// Package allocator implements a single-region, header-tagged, free-list
// memory allocator. It hands out variable-sized blocks carved out of a
// contiguous byte range acquired once from a region.Provider, under one of
// three placement policies (best-fit, first-fit, worst-fit), with block
// splitting on allocation and neighbor coalescing on release.
//
// The allocator is not safe for concurrent use: a Heap carries no mutex.
// Callers sharing a Heap across goroutines must serialize access
// externally.
package allocator

import (
	"unsafe"

	allocerrors "github.com/orizon-lang/memregion/internal/errors"
	"github.com/orizon-lang/memregion/internal/region"
)

// Heap is an owned handle around one region. It enforces the init-once
// rule itself rather than through process-wide state: a zero-value Heap is
// uninitialized, Init activates it exactly once, and there is no teardown
// operation — the handle is simply dropped at the end of its lifetime.
type Heap struct {
	provider region.Provider

	region []byte
	length uintptr
	policy Policy
	active bool

	lastAllocErr error
}

// New returns an uninitialized Heap configured by opts. Call Init before
// using it.
func New(opts ...Option) *Heap {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Heap{provider: cfg.Provider}
}

// Init acquires a region of at least requestedBytes from the configured
// provider and installs a single free block spanning it. It fails without
// side effects if requestedBytes is non-positive, if this Heap is already
// active, if policy is not one of BestFit/FirstFit/WorstFit, or if the
// region provider itself fails.
func (h *Heap) Init(requestedBytes int, policy Policy) error {
	if h.active {
		return allocerrors.InitRejected("ALREADY_ACTIVE",
			"Init called on an already-active heap", nil)
	}

	if requestedBytes <= 0 {
		return allocerrors.InitRejected("INVALID_SIZE",
			"requested size must be positive", map[string]interface{}{
				"requestedBytes": requestedBytes,
			})
	}

	if !policy.Valid() {
		return allocerrors.InitRejected("INVALID_POLICY",
			"unknown placement policy", map[string]interface{}{
				"policy": int(policy),
			})
	}

	page := h.provider.PageSize()
	length := roundUpPage(requestedBytes, page)

	buf, err := h.provider.Acquire(length)
	if err != nil {
		return allocerrors.InitRejected("PROVIDER_FAILED",
			"region provider failed to acquire memory", map[string]interface{}{
				"length": length,
				"error":  err.Error(),
			})
	}

	h.region = buf
	h.length = uintptr(length)
	h.policy = policy

	root := headerAt(h.region, 0)
	root.next = absentOffset
	root.sizeStatus = int64(h.length) - int64(headerSize)

	h.active = true

	return nil
}

// Allocate reserves sizeBytes of payload and returns its address and true,
// or (nil, false) if sizeBytes is non-positive or no free block large
// enough exists under the active policy. The rejection reason, if any, is
// additionally available from LastAllocError for diagnostics — callers who
// only check the boolean see exactly the sentinel-only contract.
func (h *Heap) Allocate(sizeBytes int) (unsafe.Pointer, bool) {
	h.lastAllocErr = nil

	if !h.active {
		h.lastAllocErr = allocerrors.AllocRejected("NOT_ACTIVE", "heap is not initialized", nil)

		return nil, false
	}

	if sizeBytes <= 0 {
		h.lastAllocErr = allocerrors.AllocRejected("INVALID_SIZE",
			"requested size must be positive", map[string]interface{}{"sizeBytes": sizeBytes})

		return nil, false
	}

	r := uintptr(roundUp4(sizeBytes))

	off, ok := selectBlock(h.region, h.policy, r)
	if !ok {
		h.lastAllocErr = allocerrors.AllocRejected("NO_FIT",
			"no free block large enough under the active policy", map[string]interface{}{
				"requested": r,
				"policy":    h.policy.String(),
			})

		return nil, false
	}

	split(h.region, off, r)

	return unsafe.Pointer(&h.region[off+headerSize]), true
}

// LastAllocError returns the reason the most recent Allocate call failed,
// or nil if it succeeded or none has run yet.
func (h *Heap) LastAllocError() error {
	if h.lastAllocErr == nil {
		return nil
	}

	return h.lastAllocErr
}

// Release returns a previously allocated block to the free list and
// coalesces it with any free neighbors. ptr must be a value previously
// returned by Allocate and not yet released.
func (h *Heap) Release(ptr unsafe.Pointer) error {
	if ptr == nil {
		return allocerrors.ReleaseRejected("NIL_POINTER", "release called with a nil pointer", nil)
	}

	if !h.active {
		return allocerrors.ReleaseRejected("NOT_ACTIVE", "heap is not initialized", nil)
	}

	if !h.inRegion(ptr) {
		return allocerrors.ReleaseRejected("OUT_OF_REGION",
			"pointer does not lie within the region's payload area", nil)
	}

	off := uintptr(ptr) - h.base() - headerSize
	hdr := headerAt(h.region, off)

	if isFree(hdr) {
		return allocerrors.ReleaseRejected("DOUBLE_FREE",
			"pointer addresses a block that is already free", map[string]interface{}{
				"offset": uint64(off),
			})
	}

	markFree(hdr)
	coalesce(h.region, off)

	return nil
}

// base returns the region's backing address as a uintptr.
func (h *Heap) base() uintptr {
	return uintptr(unsafe.Pointer(&h.region[0]))
}

// inRegion reports whether ptr lies strictly inside the region's payload
// area: base+H <= ptr <= base+length. This is the tight bound the spec's
// design notes recommend, not the looser last-block-end check the
// reference implementation uses.
func (h *Heap) inRegion(ptr unsafe.Pointer) bool {
	p := uintptr(ptr)
	base := h.base()

	return p >= base+headerSize && p <= base+h.length
}

// Policy returns the placement policy this heap was initialized with.
func (h *Heap) Policy() Policy {
	return h.policy
}

// Len returns the region length in bytes, or 0 if the heap is not active.
func (h *Heap) Len() uintptr {
	return h.length
}
