// Package mmu implements the virtual-memory paging simulator: the
// process/address-space model, the frame table and free list, the
// fault handler, and the instruction dispatcher described in
// spec.md §3-§4. Replacement policy is delegated to pkg/mmu/pager.
package mmu

import (
	"errors"
	"fmt"
	"io"

	"github.com/bassosimone/mmusim/pkg/mmu/pager"
	"github.com/bassosimone/mmusim/pkg/randstream"
	"github.com/bassosimone/mmusim/pkg/trace"
)

// ErrNoCurrentProcess indicates an r/w/e instruction executed before
// any c instruction selected a current process.
var ErrNoCurrentProcess = errors.New("mmu: no current process")

// ErrBadProcess indicates a c instruction named a process id outside
// the prelude's process table.
var ErrBadProcess = errors.New("mmu: unknown process id")

// ErrBadVpage indicates an r/w instruction named a vpage outside
// [0, NumVirtualPages).
var ErrBadVpage = errors.New("mmu: vpage out of range")

// Simulator holds all state driven by one instruction trace: the
// process table, the frame table, the active replacement policy, the
// random stream, and the running counters. State is bundled into this
// explicit struct rather than module-level globals, per spec.md §9.
type Simulator struct {
	Processes []*Process
	Frames    *FrameTable
	Pager     pager.Pager
	Rand      *randstream.Stream
	Opts      Options

	current int
	counter int

	cost        uint64
	ctxSwitches uint64
	exits       uint64
}

// New constructs a Simulator from parsed prelude specs, a frame
// count, a replacement policy, a random stream, and reporting
// options.
func New(specs []trace.ProcessSpec, frames *FrameTable, pg pager.Pager, rs *randstream.Stream, opts Options) *Simulator {
	procs := make([]*Process, len(specs))
	for i, spec := range specs {
		vmas := make([]VMA, len(spec.VMAs))
		for j, v := range spec.VMAs {
			vmas[j] = VMA{Start: v.Start, End: v.End, WriteProtected: v.WriteProtected, FileMapped: v.FileMapped}
		}
		procs[i] = NewProcess(i, vmas)
	}
	return &Simulator{
		Processes: procs,
		Frames:    frames,
		Pager:     pg,
		Rand:      rs,
		Opts:      opts,
		current:   -1,
	}
}

// pteView adapts a Simulator's process table to pager.PTEView, so the
// replacement algorithms can read and mutate referenced/modified bits
// addressed by (pid, vpage) without depending on the PTE type itself.
type pteView struct{ s *Simulator }

func (v pteView) Referenced(pid, vpage int) bool {
	return v.s.Processes[pid].PageTable[vpage].Referenced()
}

func (v pteView) SetReferenced(pid, vpage int, val bool) {
	v.s.Processes[pid].PageTable[vpage].setReferenced(val)
}

func (v pteView) Modified(pid, vpage int) bool {
	return v.s.Processes[pid].PageTable[vpage].Modified()
}

// Cost returns the running cost accumulator.
func (s *Simulator) Cost() uint64 { return s.cost }

// CtxSwitches returns the number of c instructions executed.
func (s *Simulator) CtxSwitches() uint64 { return s.ctxSwitches }

// Exits returns the number of e instructions executed.
func (s *Simulator) Exits() uint64 { return s.exits }

// Counter returns the final instruction counter.
func (s *Simulator) Counter() int { return s.counter }

// Run drains ch, dispatching each instruction per spec.md §4.4 and
// writing any O-option trace lines to out. Run stops at the first
// fatal input error; simulation-level events (SEGV, SEGPROT) are not
// errors and never stop the run.
func (s *Simulator) Run(ch <-chan trace.Result, out io.Writer) error {
	for res := range ch {
		if res.Err != nil {
			return res.Err
		}
		if err := s.dispatch(res.Instruction, out); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulator) dispatch(instr trace.Instruction, out io.Writer) error {
	s.counter++
	n := s.counter - 1
	if s.Opts.O {
		fmt.Fprintf(out, "%d: ==> %c %d\n", n, instr.Op, instr.Arg)
	}
	switch instr.Op {
	case 'c':
		return s.doCtxSwitch(instr.Arg)
	case 'e':
		return s.doExit(out)
	case 'r', 'w':
		return s.doAccess(instr.Op, instr.Arg, out)
	default:
		return fmt.Errorf("mmu: unreachable op %q", instr.Op)
	}
}

func (s *Simulator) doCtxSwitch(pid int) error {
	if pid < 0 || pid >= len(s.Processes) {
		return fmt.Errorf("%w: %d", ErrBadProcess, pid)
	}
	s.current = pid
	s.ctxSwitches++
	s.cost += costCtxSwitch
	return nil
}

func (s *Simulator) doExit(out io.Writer) error {
	if s.current < 0 || s.current >= len(s.Processes) {
		return ErrNoCurrentProcess
	}
	proc := s.Processes[s.current]
	if s.Opts.O {
		fmt.Fprintf(out, "EXIT current process %d\n", s.current)
	}
	for vpage := 0; vpage < NumVirtualPages; vpage++ {
		pte := &proc.PageTable[vpage]
		if pte.Present() {
			s.unmapOnExit(proc, vpage, out)
		}
		pte.reset()
	}
	s.exits++
	s.cost += costProcExit
	return nil
}

func (s *Simulator) doAccess(op byte, vpage int, out io.Writer) error {
	if s.current < 0 || s.current >= len(s.Processes) {
		return ErrNoCurrentProcess
	}
	if vpage < 0 || vpage >= NumVirtualPages {
		return fmt.Errorf("%w: %d", ErrBadVpage, vpage)
	}
	proc := s.Processes[s.current]
	s.cost += costReadWrite
	pte := &proc.PageTable[vpage]
	if !pte.Present() {
		segv, err := s.fault(proc, vpage, out)
		if err != nil {
			return err
		}
		if segv {
			s.cost += costSegv
			return nil
		}
	}
	pte.setReferenced(true)
	if op == 'w' {
		if pte.WriteProtect() {
			if s.Opts.O {
				fmt.Fprint(out, " SEGPROT\n")
			}
			proc.Counters.Segprot++
			s.cost += costSegprot
		} else {
			pte.setModified(true)
		}
	}
	return nil
}

// fault implements spec.md §4.3. segv reports whether the access
// must be aborted due to an invalid vpage.
func (s *Simulator) fault(proc *Process, vpage int, out io.Writer) (segv bool, err error) {
	vma, ok := proc.VMAFor(vpage)
	if !ok {
		if s.Opts.O {
			fmt.Fprint(out, " SEGV\n")
		}
		proc.Counters.Segv++
		return true, nil
	}

	frame, ok := s.Frames.Alloc()
	if !ok {
		victim := s.Pager.SelectVictim(s.pagerContext())
		s.evict(victim, out)
		s.Frames.Release(victim)
		frame, ok = s.Frames.Alloc()
		if !ok {
			return false, errors.New("mmu: internal error: free list empty after eviction")
		}
	}

	pte := &proc.PageTable[vpage]
	switch {
	case pte.PagedOut():
		if s.Opts.O {
			fmt.Fprint(out, " IN\n")
		}
		proc.Counters.Ins++
		s.cost += costIn
	case vma.FileMapped:
		if s.Opts.O {
			fmt.Fprint(out, " FIN\n")
		}
		proc.Counters.Fins++
		s.cost += costFin
	default:
		if s.Opts.O {
			fmt.Fprint(out, " ZERO\n")
		}
		proc.Counters.Zeros++
		s.cost += costZero
	}

	pte.setPresent(true)
	pte.setFrame(frame)
	pte.setWriteProtect(vma.WriteProtected)
	fte := s.Frames.At(frame)
	fte.Pid = proc.ID
	fte.Vpage = vpage
	// Aging's shift register resets to zero on (re)allocation.
	// Working-Set stamps the instruction counter so it isn't
	// immediately considered stale by the next sweep.
	if _, isWorkingSet := s.Pager.(*pager.WorkingSet); isWorkingSet {
		fte.Age = uint32(s.counter)
	} else {
		fte.Age = 0
	}

	if s.Opts.O {
		fmt.Fprintf(out, " MAP %d\n", frame)
	}
	proc.Counters.Maps++
	s.cost += costMap
	return false, nil
}

func (s *Simulator) pagerContext() *pager.Context {
	return &pager.Context{
		Frames:  s.Frames,
		PTEs:    pteView{s: s},
		Rand:    s.Rand,
		Counter: s.counter,
	}
}

// evict performs the unmap side effects on an about-to-be-stolen
// frame and marks its FTE free; the caller returns it to the free
// list. Process exit goes through unmapOnExit instead; both share
// unmap.
func (s *Simulator) evict(frame int, out io.Writer) {
	fte := s.Frames.At(frame)
	proc := s.Processes[fte.Pid]
	vpage := fte.Vpage
	pte := &proc.PageTable[vpage]
	s.unmap(proc, vpage, pte, out, true)
	fte.Pid = -1
	fte.Vpage = -1
}

// unmapOnExit unmaps a PTE that is present at process-exit time: it
// runs unmap without the anonymous OUT path, marks the frame's FTE
// free, and returns the frame to the free list itself.
func (s *Simulator) unmapOnExit(proc *Process, vpage int, out io.Writer) {
	pte := &proc.PageTable[vpage]
	frame := pte.Frame()
	s.unmap(proc, vpage, pte, out, false)
	fte := s.Frames.At(frame)
	fte.Pid = -1
	fte.Vpage = -1
	s.Frames.Release(frame)
}

// unmap is the shared unmap side-effect logic from spec.md §4.3. When
// allowOut is false (process exit), a modified anonymous page is
// simply discarded rather than written OUT, per spec.md §4.4.
func (s *Simulator) unmap(proc *Process, vpage int, pte *PTE, out io.Writer, allowOut bool) {
	if s.Opts.O {
		fmt.Fprintf(out, " UNMAP %d:%d\n", proc.ID, vpage)
	}
	proc.Counters.Unmaps++
	s.cost += costUnmap
	if pte.Modified() {
		vma, _ := proc.VMAFor(vpage)
		if vma != nil && vma.FileMapped {
			if s.Opts.O {
				fmt.Fprint(out, " FOUT\n")
			}
			proc.Counters.Fouts++
			s.cost += costFout
		} else if allowOut {
			if s.Opts.O {
				fmt.Fprint(out, " OUT\n")
			}
			proc.Counters.Outs++
			s.cost += costOut
			pte.setPagedOut(true)
		}
	}
	pte.setPresent(false)
	pte.setReferenced(false)
	pte.setModified(false)
	pte.setFrame(-1)
}
