package mmu

import (
	"fmt"

	"github.com/bassosimone/mmusim/pkg/mmu/pager"
)

// FTE is a frame-table entry: a type alias for pager.FrameEntry so
// the frame table and the replacement algorithms share one
// representation without pkg/mmu/pager importing pkg/mmu.
type FTE = pager.FrameEntry

func freeFTE() FTE { return FTE{Pid: -1, Vpage: -1} }

// FrameTable owns F physical frames and the free list over them. A
// frame is in the free list iff its FTE is (-1, -1); violating that
// invariant is an internal error (spec.md §7), not a recoverable
// condition.
type FrameTable struct {
	frames []FTE
	free   []int
}

// NewFrameTable returns a frame table of size f with every frame on
// the free list, in ascending order, as spec.md §3 requires.
func NewFrameTable(f int) *FrameTable {
	ft := &FrameTable{
		frames: make([]FTE, f),
		free:   make([]int, f),
	}
	for i := range ft.frames {
		ft.frames[i] = freeFTE()
		ft.free[i] = i
	}
	return ft
}

// Len returns the number of physical frames, F. It also satisfies
// pager.FrameView.
func (ft *FrameTable) Len() int { return len(ft.frames) }

// At returns a pointer to the FTE for frame i. It also satisfies
// pager.FrameView.
func (ft *FrameTable) At(i int) *FTE { return &ft.frames[i] }

// Alloc pops the front of the free list. ok is false if no frame is
// free.
func (ft *FrameTable) Alloc() (frame int, ok bool) {
	if len(ft.free) == 0 {
		return 0, false
	}
	frame = ft.free[0]
	ft.free = ft.free[1:]
	return frame, true
}

// Release returns frame to the back of the free list after the
// caller has already cleared its FTE. It panics if the FTE is still
// occupied — an invariant violation, per spec.md §7, rather than a
// recoverable error.
func (ft *FrameTable) Release(frame int) {
	fte := &ft.frames[frame]
	if fte.Occupied() {
		panic(fmt.Sprintf("mmu: released frame %d still occupied by %d:%d", frame, fte.Pid, fte.Vpage))
	}
	ft.free = append(ft.free, frame)
}

// NumFree returns the number of frames currently on the free list,
// used to check the frame-conservation testable property.
func (ft *FrameTable) NumFree() int { return len(ft.free) }
