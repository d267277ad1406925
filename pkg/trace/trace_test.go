package trace

import "strings"

import "testing"

const sample = `
# comment
2
1
0 15 0 0
1
20 20 1 1
#### instruction simulation ######
c 0
r 0
w 1
e 0
`

func TestReaderPreludeAndInstructions(t *testing.T) {
	rd, err := NewReader(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	procs := rd.Prelude()
	if len(procs) != 2 {
		t.Fatalf("len(procs) = %d, want 2", len(procs))
	}
	if len(procs[0].VMAs) != 1 || procs[0].VMAs[0] != (VMASpec{Start: 0, End: 15}) {
		t.Fatalf("procs[0] = %+v", procs[0])
	}
	if len(procs[1].VMAs) != 1 {
		t.Fatalf("procs[1] = %+v", procs[1])
	}
	want := procs[1].VMAs[0]
	if want.Start != 20 || want.End != 20 || !want.WriteProtected || !want.FileMapped {
		t.Fatalf("procs[1].VMAs[0] = %+v", want)
	}

	var got []Instruction
	for res := range rd.Instructions() {
		if res.Err != nil {
			t.Fatalf("unexpected error: %v", res.Err)
		}
		got = append(got, res.Instruction)
	}
	want2 := []Instruction{
		{Op: 'c', Arg: 0, Line: 9},
		{Op: 'r', Arg: 0, Line: 10},
		{Op: 'w', Arg: 1, Line: 11},
		{Op: 'e', Arg: 0, Line: 12},
	}
	if len(got) != len(want2) {
		t.Fatalf("got %d instructions, want %d: %+v", len(got), len(want2), got)
	}
	for i := range want2 {
		if got[i].Op != want2[i].Op || got[i].Arg != want2[i].Arg {
			t.Fatalf("instruction %d = %+v, want %+v", i, got[i], want2[i])
		}
	}
}

func TestUnknownOp(t *testing.T) {
	in := "0\n#### instruction simulation ######\nx 3\n"
	rd, err := NewReader(strings.NewReader(in))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	res := <-rd.Instructions()
	if res.Err == nil {
		t.Fatal("expected error for unknown op")
	}
}

func TestMissingMarker(t *testing.T) {
	if _, err := NewReader(strings.NewReader("0\n")); err == nil {
		t.Fatal("expected error for missing marker")
	}
}
