package mmu

// Cost is the per-event price added to the running total, per
// spec.md §4.5. All costs are summed into a single uint64
// accumulator; the reported TOTALCOST must equal the exact sum of
// every side effect actually emitted.
const (
	costReadWrite  uint64 = 1
	costCtxSwitch  uint64 = 130
	costProcExit   uint64 = 1230
	costMap        uint64 = 350
	costUnmap      uint64 = 410
	costIn         uint64 = 3200
	costOut        uint64 = 2750
	costFin        uint64 = 2350
	costFout       uint64 = 2800
	costZero       uint64 = 150
	costSegv       uint64 = 440
	costSegprot    uint64 = 410
)
