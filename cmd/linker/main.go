// Command linker resolves a list of object modules in the def/use/
// instruction list format into a flat memory map. It is an
// out-of-scope collaborator of the paging simulator (spec.md §1): a
// separate binary, sharing no data model with cmd/mmu.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/bassosimone/mmusim/pkg/linker"
)

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func main() {
	log.SetFlags(0)
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <input_file>\n", os.Args[0])
		os.Exit(1)
	}

	lines, err := readLines(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	l := linker.New()
	if err := l.Pass1(lines, out); err != nil {
		out.Flush()
		fmt.Println(err)
		os.Exit(1)
	}
	if err := l.Pass2(lines, out); err != nil {
		out.Flush()
		fmt.Println(err)
		os.Exit(1)
	}
}
