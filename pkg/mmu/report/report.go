// Package report formats the end-of-simulation diagnostic blocks
// enabled by the -o P/F/S flags. Formatting is hand-assembled with
// fmt.Fprintf, the way the teacher's VM.String builds its state dump,
// rather than through a struct-tag-driven encoder: the output is
// whitespace-sensitive and must be bit-exact, which rules out a
// generic marshaler.
package report

import (
	"fmt"
	"io"

	"github.com/bassosimone/mmusim/pkg/mmu"
)

// WritePageTable writes one "PT[pid]: ..." line describing every
// entry of proc's page table.
func WritePageTable(w io.Writer, proc *mmu.Process) {
	fmt.Fprintf(w, "PT[%d]:", proc.ID)
	for i := 0; i < mmu.NumVirtualPages; i++ {
		pte := proc.PageTable[i]
		fmt.Fprint(w, " ")
		if pte.Present() {
			fmt.Fprintf(w, "%d:%c%c%c", i, rmark(pte.Referenced()), mmark(pte.Modified()), smark(pte.PagedOut()))
		} else if pte.PagedOut() {
			fmt.Fprint(w, "#")
		} else {
			fmt.Fprint(w, "*")
		}
	}
	fmt.Fprint(w, "\n")
}

func rmark(v bool) byte {
	if v {
		return 'R'
	}
	return '-'
}

func mmark(v bool) byte {
	if v {
		return 'M'
	}
	return '-'
}

func smark(v bool) byte {
	if v {
		return 'S'
	}
	return '-'
}

// WriteFrameTable writes the "FT: ..." line describing every frame.
func WriteFrameTable(w io.Writer, ft *mmu.FrameTable) {
	fmt.Fprint(w, "FT:")
	for i := 0; i < ft.Len(); i++ {
		fte := ft.At(i)
		if fte.Occupied() {
			fmt.Fprintf(w, " %d:%d", fte.Pid, fte.Vpage)
		} else {
			fmt.Fprint(w, " *")
		}
	}
	fmt.Fprint(w, "\n")
}

// WriteProcessSummaries writes one "PROC[pid]: ..." line per process.
func WriteProcessSummaries(w io.Writer, procs []*mmu.Process) {
	for _, p := range procs {
		c := p.Counters
		fmt.Fprintf(w, "PROC[%d]: U=%d M=%d I=%d O=%d FI=%d FO=%d Z=%d SV=%d SP=%d\n",
			p.ID, c.Unmaps, c.Maps, c.Ins, c.Outs, c.Fins, c.Fouts, c.Zeros, c.Segv, c.Segprot)
	}
}

// WriteTotalCost writes the final "TOTALCOST ..." line.
func WriteTotalCost(w io.Writer, counter int, ctxSwitches, exits, cost uint64, pteSize uintptr) {
	fmt.Fprintf(w, "TOTALCOST %d %d %d %d %d\n", counter, ctxSwitches, exits, cost, pteSize)
}
