// Command mmu runs the virtual-memory paging simulator against an
// instruction trace and a random-number file.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/bassosimone/mmusim/pkg/mmu"
	"github.com/bassosimone/mmusim/pkg/mmu/pager"
	"github.com/bassosimone/mmusim/pkg/mmu/report"
	"github.com/bassosimone/mmusim/pkg/randstream"
	"github.com/bassosimone/mmusim/pkg/trace"
)

const usage = "usage: mmu -f<frames> -a<f|r|c|e|a|w> [-o<OPFS>] <inputfile> <randomfile>"

// cliFlags is the parsed -f/-a/-o bundle. The assignment's flag
// grammar packs the value directly onto the letter (-f16, not -f 16
// or -f=16), which the standard flag package cannot parse, so this
// mirrors the getopt-style driver in the reference implementation by
// walking os.Args directly.
type cliFlags struct {
	frames    int
	algo      byte
	optionStr string
	args      []string
}

func parseArgs(argv []string) (cliFlags, error) {
	var f cliFlags
	haveFrames, haveAlgo := false, false
	for _, a := range argv {
		switch {
		case len(a) >= 2 && a[:2] == "-f":
			n, err := parseInt(a[2:])
			if err != nil || n < 1 || n > 128 {
				return f, fmt.Errorf("mmu: bad -f value %q", a)
			}
			f.frames = n
			haveFrames = true
		case len(a) >= 2 && a[:2] == "-a":
			if len(a) != 3 {
				return f, fmt.Errorf("mmu: bad -a value %q", a)
			}
			f.algo = a[2]
			haveAlgo = true
		case len(a) >= 2 && a[:2] == "-o":
			f.optionStr = a[2:]
		case len(a) > 0 && a[0] == '-':
			return f, fmt.Errorf("mmu: unknown flag %q", a)
		default:
			f.args = append(f.args, a)
		}
	}
	if !haveFrames || !haveAlgo || len(f.args) != 2 {
		return f, errors.New(usage)
	}
	return f, nil
}

func parseInt(s string) (int, error) {
	var n int
	if s == "" {
		return 0, fmt.Errorf("empty")
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("not a number")
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}

func main() {
	log.SetFlags(0)
	cli, err := parseArgs(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	opts, err := mmu.ParseOptions(cli.optionStr)
	if err != nil {
		log.Fatal(err)
	}
	inputPath, randPath := cli.args[0], cli.args[1]

	inputFile, err := os.Open(inputPath)
	if err != nil {
		log.Fatal(err)
	}
	defer inputFile.Close()

	randFile, err := os.Open(randPath)
	if err != nil {
		log.Fatal(err)
	}
	defer randFile.Close()

	rs, err := randstream.Load(randFile)
	if err != nil {
		log.Fatal(err)
	}

	tr, err := trace.NewReader(inputFile)
	if err != nil {
		log.Fatal(err)
	}

	pg, err := pager.New(cli.algo)
	if err != nil {
		log.Fatal(err)
	}

	sim := mmu.New(tr.Prelude(), mmu.NewFrameTable(cli.frames), pg, rs, opts)

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if err := sim.Run(tr.Instructions(), out); err != nil {
		log.Fatal(err)
	}

	if opts.P {
		for _, proc := range sim.Processes {
			report.WritePageTable(out, proc)
		}
	}
	if opts.F {
		report.WriteFrameTable(out, sim.Frames)
	}
	if opts.S {
		report.WriteProcessSummaries(out, sim.Processes)
		report.WriteTotalCost(out, sim.Counter(), sim.CtxSwitches(), sim.Exits(), sim.Cost(), mmu.PTESize())
	}
}
