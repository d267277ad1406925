package mmu

// NumVirtualPages is the fixed size of every process's page table.
const NumVirtualPages = 64

// VMA is a virtual memory area: a contiguous, inclusive range of
// virtual pages sharing one set of protection and backing-store
// flags. Ranges within a process never overlap.
type VMA struct {
	Start, End     int
	WriteProtected bool
	FileMapped     bool
}

// contains reports whether vpage lies within this VMA.
func (v VMA) contains(vpage int) bool {
	return vpage >= v.Start && vpage <= v.End
}

// Counters holds the nine monotonic per-process accounting fields
// required by the S reporting option and by the accounting-identity
// testable property.
type Counters struct {
	Unmaps, Maps, Ins, Outs, Fins, Fouts, Zeros, Segv, Segprot uint64
}

// Process owns a VMA list and a fixed-size page table. Processes are
// created once during prelude parsing and never destroyed; only
// their PTEs are reset, on exit.
type Process struct {
	ID         int
	VMAs       []VMA
	PageTable  [NumVirtualPages]PTE
	Counters   Counters
}

// NewProcess returns a process with id and the given VMAs, and a
// freshly zeroed page table.
func NewProcess(id int, vmas []VMA) *Process {
	p := &Process{ID: id, VMAs: vmas}
	for i := range p.PageTable {
		p.PageTable[i] = newPTE()
	}
	return p
}

// VMAFor returns the VMA containing vpage, if any. A vpage is valid
// for this process iff it lies in some VMA of the process.
func (p *Process) VMAFor(vpage int) (*VMA, bool) {
	for i := range p.VMAs {
		if p.VMAs[i].contains(vpage) {
			return &p.VMAs[i], true
		}
	}
	return nil, false
}
