package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bassosimone/mmusim/pkg/mmu"
	"github.com/bassosimone/mmusim/pkg/mmu/pager"
	"github.com/bassosimone/mmusim/pkg/mmu/report"
	"github.com/bassosimone/mmusim/pkg/randstream"
	"github.com/bassosimone/mmusim/pkg/trace"
)

func TestWriteFrameTable(t *testing.T) {
	ft := mmu.NewFrameTable(3)
	var buf bytes.Buffer
	report.WriteFrameTable(&buf, ft)
	if got, want := buf.String(), "FT: * * *\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWritePageTableAllUnmapped(t *testing.T) {
	specs := []trace.ProcessSpec{{VMAs: []trace.VMASpec{{Start: 0, End: 0}}}}
	rs, err := randstream.Load(strings.NewReader("1\n0\n"))
	if err != nil {
		t.Fatalf("randstream.Load: %v", err)
	}
	pg, err := pager.New('f')
	if err != nil {
		t.Fatalf("pager.New: %v", err)
	}
	sim := mmu.New(specs, mmu.NewFrameTable(1), pg, rs, mmu.Options{})
	var buf bytes.Buffer
	report.WritePageTable(&buf, sim.Processes[0])
	s := buf.String()
	if !strings.HasPrefix(s, "PT[0]: * * *") {
		t.Fatalf("unexpected prefix: %q", s)
	}
	if strings.Count(s, "*") != mmu.NumVirtualPages {
		t.Fatalf("expected %d unmapped markers, got %d in %q", mmu.NumVirtualPages, strings.Count(s, "*"), s)
	}
}
