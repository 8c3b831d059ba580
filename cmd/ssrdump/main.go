// Command ssrdump compiles a template source file to its opcode list and
// digest and prints them, for inspecting what a given template call site
// compiles to without writing a throwaway test.
//
// The input format is a small, line-oriented stand-in for what a tagged
// template literal would be in a language that has one: a bare "%" on its
// own line marks a placeholder (dynamic value) between two fragments, and
// the lines between two placeholders, joined with newlines, form one
// static fragment. This has no bearing on the
// public API — ssr.HTML callers always pass statics as a real []string —
// it exists only so this dump tool has something to parse from a file.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	ssr "github.com/go-lit/ssr"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <template-file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	statics, err := readStatics(flag.Arg(0))
	if err != nil {
		log.Fatalf("ssrdump: %v", err)
	}

	ops, err := ssr.Compile(statics, true)
	if err != nil {
		log.Fatalf("ssrdump: compile error: %v", err)
	}

	fmt.Printf("digest: %s\n", ssr.Digest(statics))
	fmt.Printf("values: %d\n", len(statics)-1)
	ops.Dump(os.Stdout)
}

func readStatics(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var statics []string
	var cur strings.Builder
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if line == "%" {
			statics = append(statics, cur.String())
			cur.Reset()
			continue
		}
		if cur.Len() > 0 {
			cur.WriteByte('\n')
		}
		cur.WriteString(line)
	}
	statics = append(statics, cur.String())
	return statics, sc.Err()
}
