// Package pager implements the six page-replacement algorithms that
// select a victim frame when the free list is exhausted. Each
// algorithm is a concrete type implementing the single-method Pager
// interface — a closed, fixed set of variants (spec.md §9 calls for
// a tagged variant over open inheritance), the same shape as the
// teacher's closed asm.Instruction implementers.
package pager

import "errors"

// ErrUnknownAlgorithm indicates that New was called with an -a
// letter outside {f, r, c, e, a, w}.
var ErrUnknownAlgorithm = errors.New("pager: unknown algorithm letter")

// FrameEntry is a physical frame's replacement-relevant state: which
// (pid, vpage) it backs, and an Age field interpreted per-algorithm
// (a shift register for Aging, a timestamp for Working-Set, unused
// otherwise). mmu.FTE is a type alias for FrameEntry so the frame
// table and the pagers share one representation without pkg/mmu/pager
// importing pkg/mmu.
type FrameEntry struct {
	Pid, Vpage int
	Age        uint32
}

// Occupied reports whether this frame currently backs a page.
func (f FrameEntry) Occupied() bool { return f.Pid != -1 }

// FrameView is the subset of the frame table a pager needs to select
// a victim.
type FrameView interface {
	Len() int
	At(i int) *FrameEntry
}

// PTEView is the subset of page-table state a pager needs to read
// and mutate (the referenced/modified bits) while choosing a victim,
// addressed by (pid, vpage) rather than by a concrete PTE type, so
// this package never needs to import pkg/mmu.
type PTEView interface {
	Referenced(pid, vpage int) bool
	SetReferenced(pid, vpage int, v bool)
	Modified(pid, vpage int) bool
}

// RandomSource supplies the Random algorithm's samples.
type RandomSource interface {
	Next(n int) int
}

// Context bundles everything a pager needs to select a victim,
// threaded explicitly by the caller on every call rather than kept
// as package-level state — spec.md §9's "no hidden globals" design
// note.
type Context struct {
	Frames  FrameView
	PTEs    PTEView
	Rand    RandomSource
	Counter int // current instruction_counter, pre-incremented
}

// Pager selects a victim frame. The returned frame is not unmapped by
// the pager; the caller performs unmap side effects and returns the
// frame to the free list. A pager may read any PTE/FTE through ctx
// but mutates only the fields its algorithm documents.
type Pager interface {
	SelectVictim(ctx *Context) int
}

// New constructs the pager named by the -a flag's single-letter code.
func New(letter byte) (Pager, error) {
	switch letter {
	case 'f':
		return &FIFO{}, nil
	case 'r':
		return &Random{}, nil
	case 'c':
		return &Clock{}, nil
	case 'e':
		return &NRU{}, nil
	case 'a':
		return &Aging{}, nil
	case 'w':
		return &WorkingSet{}, nil
	default:
		return nil, ErrUnknownAlgorithm
	}
}
