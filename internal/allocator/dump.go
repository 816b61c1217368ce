package allocator

import (
	"fmt"
	"strings"
)

// formatVersion is stamped into every Snapshot so a consumer can reject a
// snapshot produced by an incompatible allocator revision. See
// internal/config for the semver comparison that enforces this.
const formatVersion = "1.0.0"

// BlockReport describes one block in a Snapshot, in the same fields the
// reference implementation's dump prints.
type BlockReport struct {
	Ordinal      int    // 1-based position in the list
	Busy         bool   // true if allocated, false if free
	PayloadBegin uint64 // address of the first payload byte
	PayloadEnd   uint64 // address one past the last payload byte
	Size         uint64 // payload size, excluding the header
	TotalSize    uint64 // payload size plus the header
	HeaderBegin  uint64 // address of the block's header
}

// DumpReport is the structured form of Dump's output.
type DumpReport struct {
	FormatVersion string
	Blocks        []BlockReport
	BusyBytes     uint64
	FreeBytes     uint64
	TotalBytes    uint64
}

// Snapshot walks the block list and returns a structured report. It never
// mutates state and never fails; an uninitialized heap reports zero blocks.
func (h *Heap) Snapshot() DumpReport {
	report := DumpReport{FormatVersion: formatVersion}

	if !h.active {
		return report
	}

	base := h.base()
	ordinal := 1

	walk(h.region, func(off uintptr, hd *header) bool {
		headerBegin := base + off
		payloadBegin := headerBegin + headerSize
		size := uint64(payload(hd))
		totalSize := size + uint64(headerSize)

		report.Blocks = append(report.Blocks, BlockReport{
			Ordinal:      ordinal,
			Busy:         !isFree(hd),
			PayloadBegin: uint64(payloadBegin),
			PayloadEnd:   uint64(payloadBegin) + size,
			Size:         size,
			TotalSize:    totalSize,
			HeaderBegin:  uint64(headerBegin),
		})

		if isFree(hd) {
			report.FreeBytes += totalSize
		} else {
			report.BusyBytes += totalSize
		}

		ordinal++

		return true
	})

	report.TotalBytes = report.BusyBytes + report.FreeBytes

	return report
}

// Dump renders Snapshot as the human-readable table the reference
// implementation prints, for interactive and test use.
func (h *Heap) Dump() string {
	report := h.Snapshot()

	var b strings.Builder

	fmt.Fprintf(&b, "********** block list (format %s) **********\n", report.FormatVersion)
	fmt.Fprintf(&b, "No.\tStatus\tBegin\t\tEnd\t\tSize\tt_Size\tt_Begin\n")
	fmt.Fprintf(&b, "---------------------------------------------------------------------------------\n")

	for _, blk := range report.Blocks {
		status := "Free"
		if blk.Busy {
			status = "Busy"
		}

		fmt.Fprintf(&b, "%d\t%s\t0x%08x\t0x%08x\t%d\t%d\t0x%08x\n",
			blk.Ordinal, status, blk.PayloadBegin, blk.PayloadEnd, blk.Size, blk.TotalSize, blk.HeaderBegin)
	}

	fmt.Fprintf(&b, "---------------------------------------------------------------------------------\n")
	fmt.Fprintf(&b, "Total busy size = %d\n", report.BusyBytes)
	fmt.Fprintf(&b, "Total free size = %d\n", report.FreeBytes)
	fmt.Fprintf(&b, "Total size = %d\n", report.TotalBytes)

	return b.String()
}
