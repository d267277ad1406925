// Command iosched simulates a disk I/O scheduler against a trace of
// arriving track requests. It is an out-of-scope collaborator of the
// paging simulator (spec.md §1): a separate binary, sharing no data
// model with cmd/mmu.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/bassosimone/mmusim/pkg/iosched"
)

const usage = "usage: iosched -s<n|s|l|c|f> <inputfile>"

func parseArgs(argv []string) (algo byte, path string, err error) {
	var haveAlgo bool
	var args []string
	for _, a := range argv {
		switch {
		case len(a) >= 2 && a[:2] == "-s":
			if len(a) != 3 {
				return 0, "", fmt.Errorf("iosched: bad -s value %q", a)
			}
			algo = a[2]
			haveAlgo = true
		case len(a) > 0 && a[0] == '-':
			return 0, "", fmt.Errorf("iosched: unknown flag %q", a)
		default:
			args = append(args, a)
		}
	}
	if !haveAlgo || len(args) != 1 {
		return 0, "", errors.New(usage)
	}
	return algo, args[0], nil
}

// readRequests parses one track-request arrival per non-blank,
// non-comment line: "<arrival_time> <track>".
func readRequests(f *os.File) ([]iosched.Request, error) {
	var reqs []iosched.Request
	sc := bufio.NewScanner(f)
	id := 0
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("iosched: malformed request line %q", line)
		}
		arrival, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("iosched: bad arrival time %q: %w", fields[0], err)
		}
		track, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("iosched: bad track %q: %w", fields[1], err)
		}
		reqs = append(reqs, iosched.Request{ID: id, Track: track, Arrival: arrival})
		id++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return reqs, nil
}

// run steps one tick at a time: at each tick, any requests that have
// arrived are handed to the scheduler, and if the head is idle it
// starts servicing whatever the scheduler picks next.
func run(sched iosched.Scheduler, reqs []iosched.Request) (finished []iosched.Request, simTime, headMovement int) {
	pending := make([]iosched.Request, len(reqs))
	copy(pending, reqs)
	head := 0
	var current *iosched.Request
	remaining := len(reqs)
	tick := 0
	nextArrival := 0
	for remaining > 0 {
		for nextArrival < len(pending) && pending[nextArrival].Arrival == tick {
			sched.Add(pending[nextArrival])
			nextArrival++
		}
		if current == nil && sched.Len() > 0 {
			r, ok := sched.Next(head)
			if ok {
				r.Start = tick
				current = &r
			}
		}
		if current != nil {
			if current.Track == head {
				current.Finish = tick
				finished = append(finished, *current)
				current = nil
				remaining--
			} else if current.Track > head {
				head++
				headMovement++
			} else {
				head--
				headMovement++
			}
		}
		tick++
	}
	return finished, tick, headMovement
}

func main() {
	log.SetFlags(0)
	algo, path, err := parseArgs(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	reqs, err := readRequests(f)
	if err != nil {
		log.Fatal(err)
	}

	sched, err := iosched.New(algo)
	if err != nil {
		log.Fatal(err)
	}

	finished, simTime, headMovement := run(sched, reqs)

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	var totalTurnaround, totalWait float64
	var longestWait int
	for i, r := range finished {
		fmt.Fprintf(out, "%5d: %5d %5d %5d\n", i, r.Arrival, r.Start, r.Finish)
		wait := r.Start - r.Arrival
		totalTurnaround += float64(r.Finish - r.Arrival)
		totalWait += float64(wait)
		if wait > longestWait {
			longestWait = wait
		}
	}
	n := float64(len(finished))
	util := 0.0
	if simTime > 0 {
		util = float64(headMovement) / float64(simTime)
	}
	fmt.Fprintf(out, "SUM: %d %d %.4f %.2f %.2f %d\n",
		simTime, headMovement, util, totalTurnaround/n, totalWait/n, longestWait)
}
