package pager

// tau is the Working-Set age threshold in instructions. Confirmed
// against the reference implementation as a strict > comparison.
const tau = 49

// WorkingSet evicts the first occupied frame, in sweep order from
// hand, whose page is unreferenced and has not been touched within
// the last tau instructions. Referenced frames are stamped with the
// current instruction counter and have their referenced bit cleared
// as the sweep passes them, so a future sweep measures age from that
// point. If no frame qualifies for eviction, the globally oldest
// frame seen during the sweep is chosen instead.
type WorkingSet struct {
	hand int
}

var _ Pager = (*WorkingSet)(nil)

// SelectVictim implements Pager.
func (w *WorkingSet) SelectVictim(ctx *Context) int {
	n := ctx.Frames.Len()
	oldest := -1
	var oldestAge uint32
	for i := 0; i < n; i++ {
		idx := (w.hand + i) % n
		fte := ctx.Frames.At(idx)
		referenced := ctx.PTEs.Referenced(fte.Pid, fte.Vpage)
		if !referenced && ctx.Counter-int(fte.Age) > tau {
			w.hand = (idx + 1) % n
			return idx
		}
		if referenced {
			fte.Age = uint32(ctx.Counter)
			ctx.PTEs.SetReferenced(fte.Pid, fte.Vpage, false)
		}
		if oldest == -1 || fte.Age < oldestAge {
			oldest = idx
			oldestAge = fte.Age
		}
	}
	w.hand = (oldest + 1) % n
	return oldest
}
