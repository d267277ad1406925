package pager

// nruResetPeriod is the instruction-count interval after which NRU
// clears every occupied frame's referenced bit. Confirmed against
// the reference implementation as a >= comparison, not >.
const nruResetPeriod = 48

// NRU classifies each occupied frame into one of four classes by
// (referenced, modified) and evicts the first frame found in the
// lowest nonempty class, walking once around the frame table from
// hand. Periodically (every nruResetPeriod instructions) it clears
// every occupied frame's referenced bit after selecting a victim.
type NRU struct {
	hand      int
	lastReset int
}

var _ Pager = (*NRU)(nil)

// SelectVictim implements Pager.
func (nr *NRU) SelectVictim(ctx *Context) int {
	n := ctx.Frames.Len()
	var classFrame [4]int
	var classFound [4]bool
	for i := 0; i < n; i++ {
		idx := (nr.hand + i) % n
		fte := ctx.Frames.At(idx)
		r := ctx.PTEs.Referenced(fte.Pid, fte.Vpage)
		m := ctx.PTEs.Modified(fte.Pid, fte.Vpage)
		class := 0
		if r {
			class += 2
		}
		if m {
			class++
		}
		if !classFound[class] {
			classFound[class] = true
			classFrame[class] = idx
		}
	}
	victim := -1
	for class := 0; class < 4; class++ {
		if classFound[class] {
			victim = classFrame[class]
			break
		}
	}
	nr.hand = (victim + 1) % n

	if ctx.Counter-nr.lastReset >= nruResetPeriod {
		for i := 0; i < n; i++ {
			fte := ctx.Frames.At(i)
			if fte.Occupied() {
				ctx.PTEs.SetReferenced(fte.Pid, fte.Vpage, false)
			}
		}
		nr.lastReset = ctx.Counter
	}
	return victim
}
