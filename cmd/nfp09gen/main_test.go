package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/intuitionamiga/nfp09gen/internal/asmcheck"
	"github.com/intuitionamiga/nfp09gen/internal/fpval"
)

func defaultOptions(precs ...fpval.Precision) options {
	return options{
		precisions: precs,
		romStart:   0xE000,
		stackSize:  512,
		abiInclude: "../abi/nfp09-abi.s",
	}
}

// ============================================================================
// Flag Parsing Tests
// ============================================================================

func TestParsePrecisions(t *testing.T) {
	both, err := parsePrecisions("both")
	if err != nil || len(both) != 2 || both[0] != fpval.Single || both[1] != fpval.Double {
		t.Errorf("parsePrecisions(both) = %v, %v", both, err)
	}
	one, err := parsePrecisions("single")
	if err != nil || len(one) != 1 || one[0] != fpval.Single {
		t.Errorf("parsePrecisions(single) = %v, %v", one, err)
	}
	if _, err := parsePrecisions("quad"); err == nil {
		t.Error("parsePrecisions(quad) should fail")
	}
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in   string
		want uint16
	}{
		{"$E000", 0xE000},
		{"0xC000", 0xC000},
		{"4096", 4096},
	}
	for _, tt := range tests {
		got, err := parseAddress(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("parseAddress(%q) = %#x, %v; want %#x", tt.in, got, err, tt.want)
		}
	}
	for _, bad := range []string{"$10000", "E000", ""} {
		if _, err := parseAddress(bad); err == nil {
			t.Errorf("parseAddress(%q) should fail", bad)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		base  string
		p     fpval.Precision
		multi bool
		want  string
	}{
		{"", fpval.Double, false, ""},
		{"out.s", fpval.Single, false, "out.s"},
		{"out.s", fpval.Single, true, "out_single.s"},
		{"dir/out.asm", fpval.Double, true, "dir/out_double.asm"},
		{"", fpval.Single, true, "nfp09-tests_single.s"},
		{"-", fpval.Double, true, "nfp09-tests_double.s"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.base, tt.p, tt.multi); got != tt.want {
			t.Errorf("outputPath(%q, %s, %v) = %q, want %q", tt.base, tt.p, tt.multi, got, tt.want)
		}
	}
}

// ============================================================================
// Generation Tests
// ============================================================================

func TestGenerate_Stdout(t *testing.T) {
	var out bytes.Buffer
	res, err := generate(context.Background(), defaultOptions(fpval.Single), &out)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 || res[0].stats.Cases == 0 {
		t.Fatalf("results = %+v", res)
	}
	if !strings.Contains(out.String(), "call0_arg2\tfcb\t$BF,$80,$00,$00\n") {
		t.Error("stdout program missing FABS -1.0 operand")
	}
	if rep := asmcheck.Check(out.String(), fpval.Single); !rep.OK() {
		t.Errorf("generated program fails checks: %v", rep.Problems)
	}
}

func TestGenerate_BothToFiles(t *testing.T) {
	dir := t.TempDir()
	o := defaultOptions(fpval.Single, fpval.Double)
	o.output = filepath.Join(dir, "nfp09.s")
	var stdout bytes.Buffer
	res, err := generate(context.Background(), o, &stdout)
	if err != nil {
		t.Fatal(err)
	}
	if stdout.Len() != 0 {
		t.Error("multi-precision run wrote to stdout")
	}
	if len(res) != 2 {
		t.Fatalf("got %d results", len(res))
	}
	for _, r := range res {
		data, err := os.ReadFile(r.path)
		if err != nil {
			t.Fatalf("%s: %v", r.prec, err)
		}
		if rep := asmcheck.Check(string(data), r.prec); !rep.OK() {
			t.Errorf("%s program fails checks: %v", r.prec, rep.Problems)
		}
		if !strings.Contains(string(data), "#"+r.prec.CtrlSymbol()) {
			t.Errorf("%s program has the wrong mode byte", r.prec)
		}
		if len(asmcheck.Check(string(data), r.prec).Cases) != r.stats.Cases {
			t.Errorf("%s: stats disagree with file contents", r.prec)
		}
	}
	if filepath.Base(res[0].path) != "nfp09_single.s" || filepath.Base(res[1].path) != "nfp09_double.s" {
		t.Errorf("paths = %s, %s", res[0].path, res[1].path)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	o := defaultOptions(fpval.Double)
	if _, err := generate(context.Background(), o, &a); err != nil {
		t.Fatal(err)
	}
	if _, err := generate(context.Background(), o, &b); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Error("two runs produced different output")
	}
}

func TestGenerate_ScriptCases(t *testing.T) {
	dir := t.TempDir()
	lua := filepath.Join(dir, "extra.lua")
	if err := os.WriteFile(lua, []byte(`dyadic("FSUB 5 3", "FSUB", 5, 3)`), 0644); err != nil {
		t.Fatal(err)
	}
	o := defaultOptions(fpval.Double)
	o.casesFile = lua
	o.noBuiltin = true
	var out bytes.Buffer
	res, err := generate(context.Background(), o, &out)
	if err != nil {
		t.Fatal(err)
	}
	if res[0].stats.Cases != 1 {
		t.Fatalf("cases = %d, want 1", res[0].stats.Cases)
	}
	src := out.String()
	if !strings.Contains(src, "\tldu\t#call0_arg1\n") || !strings.Contains(src, "call0_exp\tfcb\t$40,$00,$00,$00,$00,$00,$00,$00\n") {
		t.Errorf("script case not emitted as expected:\n%s", src)
	}
}

func TestGenerate_ScriptError(t *testing.T) {
	dir := t.TempDir()
	lua := filepath.Join(dir, "bad.lua")
	os.WriteFile(lua, []byte(`monadic("x", "NOPE", 1)`), 0644)
	o := defaultOptions(fpval.Single, fpval.Double)
	o.casesFile = lua
	o.output = filepath.Join(dir, "out.s")
	if _, err := generate(context.Background(), o, &bytes.Buffer{}); err == nil {
		t.Fatal("bad script should fail the run")
	}
}

func TestGenerate_WriteError(t *testing.T) {
	o := defaultOptions(fpval.Double)
	o.output = filepath.Join(t.TempDir(), "missing", "dir", "out.s")
	if _, err := generate(context.Background(), o, &bytes.Buffer{}); err == nil {
		t.Fatal("writing into a missing directory should fail")
	}
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	o := defaultOptions(fpval.Single)
	o.output = filepath.Join(dir, "single.s")
	o.trace = true
	if _, err := generate(context.Background(), o, nil); err != nil {
		t.Fatal(err)
	}
	rep, err := checkFile(o.output, fpval.Single)
	if err != nil {
		t.Fatal(err)
	}
	if !rep.OK() {
		t.Errorf("problems: %v", rep.Problems)
	}
	if code := runCheck(o.output, []fpval.Precision{fpval.Double}, false); code == 0 {
		t.Error("single program passed a double check")
	}
	if code := runCheck(o.output, []fpval.Precision{fpval.Single}, false); code != 0 {
		t.Errorf("runCheck = %d, want 0", code)
	}
}
