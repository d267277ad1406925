package mmu

import "unsafe"

// The following constants define the bit positions packed into a
// PTE's flag byte.
const (
	pteReferenced = 1 << iota
	pteModified
	pteWriteProtect
	ptePresent
	ptePagedOut
)

// PTE is a page-table entry. Only five bits of state are observable
// (present, write-protect, modified, referenced, paged-out) plus a
// frame index; everything else the original C++ layout reserved is
// not reproduced since spec.md guarantees it never affects output.
// A never-touched entry is the one newPTE returns: no flags set and
// a frame of -1.
type PTE struct {
	flags uint8
	frame int8 // -1 when the entry has no backing frame
}

// newPTE returns a cleared PTE (all flags zero, no backing frame),
// explicit for readability at call sites that reset an entry.
func newPTE() PTE {
	return PTE{frame: -1}
}

// Present reports whether the entry is currently mapped to a frame.
func (p PTE) Present() bool { return p.flags&ptePresent != 0 }

// WriteProtect reports whether writes to this page raise SEGPROT.
func (p PTE) WriteProtect() bool { return p.flags&pteWriteProtect != 0 }

// Modified reports whether the page has been written since it was
// last brought in.
func (p PTE) Modified() bool { return p.flags&pteModified != 0 }

// Referenced reports whether the page has been accessed since the
// bit was last cleared by a replacement algorithm.
func (p PTE) Referenced() bool { return p.flags&pteReferenced != 0 }

// PagedOut reports whether this page was previously written to swap.
func (p PTE) PagedOut() bool { return p.flags&ptePagedOut != 0 }

// Frame returns the backing frame index, or -1 if the entry is not
// present.
func (p PTE) Frame() int { return int(p.frame) }

func (p *PTE) setPresent(v bool)      { p.setFlag(ptePresent, v) }
func (p *PTE) setWriteProtect(v bool) { p.setFlag(pteWriteProtect, v) }
func (p *PTE) setModified(v bool)     { p.setFlag(pteModified, v) }
func (p *PTE) setReferenced(v bool)   { p.setFlag(pteReferenced, v) }
func (p *PTE) setPagedOut(v bool)     { p.setFlag(ptePagedOut, v) }

func (p *PTE) setFlag(bit uint8, v bool) {
	if v {
		p.flags |= bit
	} else {
		p.flags &^= bit
	}
}

func (p *PTE) setFrame(f int) { p.frame = int8(f) }

// reset zeroes the entry entirely, including paged_out, the way
// process exit resets every PTE of the exiting process.
func (p *PTE) reset() { *p = newPTE() }

// PTESize reports the in-memory size of a PTE in bytes, printed on
// the S option's TOTALCOST line so the packed layout stays observable
// even though its exact bit order is not.
func PTESize() uintptr { return unsafe.Sizeof(PTE{}) }
