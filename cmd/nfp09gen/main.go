package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/xyproto/env/v2"
	"golang.org/x/term"

	"github.com/intuitionamiga/nfp09gen/internal/fpval"
	"github.com/intuitionamiga/nfp09gen/internal/refop"
)

func main() {
	precision := flag.String("precision", "double", "Floating point format: single, double or both")
	outFile := flag.String("o", "", "Output file (default: stdout; with -precision both: nfp09-tests_<precision>.s)")
	casesFile := flag.String("cases", "", "Lua script with additional test cases")
	noBuiltin := flag.Bool("no-builtin", false, "Omit the built-in test cases")
	noHeader := flag.Bool("no-header", false, "Omit the generated-file banner and license")
	trace := flag.Bool("trace", false, "Emit a pg09 TRC marker before every case")
	romStart := flag.String("rom-start", env.Str("NFP09_ROM_START", "$E000"), "Address of the NFP09 image (env NFP09_ROM_START)")
	stackSize := flag.Int("stack-size", 512, "Bytes reserved for the stack")
	abiInclude := flag.String("abi", env.Str("NFP09_ABI", "../abi/nfp09-abi.s"), "NFP09 ABI include path, as seen by the assembler (env NFP09_ABI)")
	check := flag.String("check", "", "Check a generated program instead of generating one")
	listOps := flag.Bool("ops", false, "List the supported operations and exit")
	stats := flag.Bool("stats", term.IsTerminal(int(os.Stderr.Fd())), "Print generation statistics to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nfp09gen [options]\n\nGenerates pg09 test programs for the NFP09 floating point package.\n\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  nfp09gen -precision single -o tests/single.s\n")
		fmt.Fprintf(os.Stderr, "  nfp09gen -precision both -cases extra.lua -o tests/nfp09.s\n")
		fmt.Fprintf(os.Stderr, "  nfp09gen -check tests/single.s -precision single\n")
	}
	flag.Parse()

	if flag.NArg() != 0 {
		flag.Usage()
		os.Exit(1)
	}

	if *listOps {
		for _, n := range refop.Names() {
			op, _ := refop.Lookup(n)
			fmt.Printf("%-6s %d\n", n, op.Arity)
		}
		return
	}

	precs, err := parsePrecisions(*precision)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *check != "" {
		os.Exit(runCheck(*check, precs, *stats))
	}

	rom, err := parseAddress(*romStart)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: -rom-start: %v\n", err)
		os.Exit(1)
	}

	opts := options{
		precisions: precs,
		output:     *outFile,
		casesFile:  *casesFile,
		noBuiltin:  *noBuiltin,
		noHeader:   *noHeader,
		trace:      *trace,
		romStart:   rom,
		stackSize:  *stackSize,
		abiInclude: *abiInclude,
		stats:      *stats,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := generate(ctx, opts, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if opts.stats {
		for _, r := range results {
			dest := r.path
			if dest == "" || dest == "-" {
				dest = "stdout"
			}
			fmt.Fprintf(os.Stderr, "%s: %d cases, %d lines -> %s\n", r.prec, r.stats.Cases, r.stats.Lines, dest)
		}
	}
}

func runCheck(path string, precs []fpval.Precision, stats bool) int {
	if len(precs) != 1 {
		fmt.Fprintf(os.Stderr, "error: -check needs -precision single or double\n")
		return 1
	}
	rep, err := checkFile(path, precs[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	for _, p := range rep.Problems {
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, p)
	}
	if stats {
		fmt.Fprintf(os.Stderr, "%s: %d cases, %d problem(s)\n", path, len(rep.Cases), len(rep.Problems))
	}
	if !rep.OK() {
		return 1
	}
	return 0
}
