package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/intuitionamiga/nfp09gen/internal/asmcheck"
	"github.com/intuitionamiga/nfp09gen/internal/cases"
	"github.com/intuitionamiga/nfp09gen/internal/emit"
	"github.com/intuitionamiga/nfp09gen/internal/fpval"
	"github.com/intuitionamiga/nfp09gen/internal/program"
	"github.com/intuitionamiga/nfp09gen/internal/script"
)

const defaultBase = "nfp09-tests.s"

// options mirrors the command line.
type options struct {
	precisions []fpval.Precision
	output     string
	casesFile  string
	noBuiltin  bool
	noHeader   bool
	trace      bool
	romStart   uint16
	stackSize  int
	abiInclude string
	stats      bool
}

// result is one generated program.
type result struct {
	prec  fpval.Precision
	path  string
	stats program.Stats
}

// parsePrecisions accepts single, double or both.
func parsePrecisions(s string) ([]fpval.Precision, error) {
	if strings.EqualFold(strings.TrimSpace(s), "both") {
		return []fpval.Precision{fpval.Single, fpval.Double}, nil
	}
	p, err := fpval.ParsePrecision(s)
	if err != nil {
		return nil, err
	}
	return []fpval.Precision{p}, nil
}

// parseAddress accepts $E000, 0xE000 or a decimal value.
func parseAddress(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "$") {
		s = "0x" + s[1:]
	}
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("bad address %q", s)
	}
	return uint16(v), nil
}

// outputPath names the file for precision p. With several precisions the
// precision is inserted before the extension.
func outputPath(base string, p fpval.Precision, multi bool) string {
	if !multi {
		return base
	}
	if base == "" || base == "-" {
		base = defaultBase
	}
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "_" + p.String() + ext
}

func (o options) config(p fpval.Precision) program.Config {
	cfg := program.DefaultConfig(p)
	cfg.Header = !o.noHeader
	cfg.Trace = o.trace
	cfg.ROMStart = o.romStart
	cfg.StackSize = o.stackSize
	cfg.ABIInclude = o.abiInclude
	return cfg
}

// collect returns the built-in cases followed by the script's.
func (o options) collect(ctx context.Context, p fpval.Precision) ([]emit.Case, error) {
	var all []emit.Case
	if !o.noBuiltin {
		cs, err := cases.BuildAll(cases.Builtin(), p)
		if err != nil {
			return nil, err
		}
		all = append(all, cs...)
	}
	if o.casesFile != "" {
		cs, err := script.LoadFile(ctx, o.casesFile, p)
		if err != nil {
			return nil, err
		}
		all = append(all, cs...)
	}
	return all, nil
}

// generate builds one program per requested precision. Programs are
// independent, so they are produced concurrently and written once complete.
func generate(ctx context.Context, o options, stdout io.Writer) ([]result, error) {
	multi := len(o.precisions) > 1
	results := make([]result, len(o.precisions))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range o.precisions {
		i, p := i, p
		g.Go(func() error {
			cs, err := o.collect(ctx, p)
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			var buf bytes.Buffer
			st, err := program.Build(&buf, o.config(p), cs)
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			results[i] = result{prec: p, path: outputPath(o.output, p, multi), stats: st}
			return writeOutput(results[i].path, buf.Bytes(), stdout)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}

// checkFile runs the output checker over an existing program.
func checkFile(path string, p fpval.Precision) (*asmcheck.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return asmcheck.Check(string(data), p), nil
}
