package refop

import (
	"math"
	"testing"

	"github.com/intuitionamiga/nfp09gen/internal/fpval"
)

// Variables, not constants: constant arithmetic is exact.
var (
	tenth32, fifth32 float32 = 0.1, 0.2
	tenth64, fifth64 float64 = 0.1, 0.2
)

func TestApply_Single(t *testing.T) {
	s := fpval.Single32
	tests := []struct {
		op   string
		args []fpval.Value
		want uint64
	}{
		{"FABS", []fpval.Value{s(-1)}, 0x3F800000},
		{"fabs", []fpval.Value{s(2)}, 0x40000000},
		{"FNEG", []fpval.Value{s(1)}, 0xBF800000},
		{"FNEG", []fpval.Value{s(0)}, 0x80000000},
		{"FSQRT", []fpval.Value{s(4)}, 0x40000000},
		{"FINT", []fpval.Value{s(2.5)}, 0x40000000},
		{"FADD", []fpval.Value{s(1), s(2)}, 0x40400000},
		{"FSUB", []fpval.Value{s(1), s(3)}, 0xC0000000},
		{"FMUL", []fpval.Value{s(1.5), s(2)}, 0x40400000},
		{"FDIV", []fpval.Value{s(1), s(4)}, 0x3E800000},
		{"FREM", []fpval.Value{s(7), s(2)}, 0xBF800000},
		// float32 arithmetic, not float64 rounded afterwards
		{"FADD", []fpval.Value{s(tenth32), s(fifth32)}, uint64(math.Float32bits(tenth32 + fifth32))},
	}
	for _, tt := range tests {
		got, err := Apply(tt.op, tt.args...)
		if err != nil {
			t.Errorf("Apply(%s): %v", tt.op, err)
			continue
		}
		if got.Precision() != fpval.Single {
			t.Errorf("Apply(%s) precision = %s", tt.op, got.Precision())
		}
		if got.Bits() != tt.want {
			t.Errorf("Apply(%s, %v) = 0x%08X, want 0x%08X", tt.op, tt.args, got.Bits(), tt.want)
		}
	}
}

func TestApply_Double(t *testing.T) {
	d := fpval.Double64
	tests := []struct {
		op   string
		args []fpval.Value
		want float64
	}{
		{"FABS", []fpval.Value{d(-1)}, 1},
		{"FSQRT", []fpval.Value{d(2)}, math.Sqrt2},
		{"FADD", []fpval.Value{d(tenth64), d(fifth64)}, tenth64 + fifth64},
		{"FDIV", []fpval.Value{d(1), d(3)}, 1.0 / 3.0},
		{"FSUB", []fpval.Value{d(10), d(4)}, 6},
	}
	for _, tt := range tests {
		got, err := Apply(tt.op, tt.args...)
		if err != nil {
			t.Fatalf("Apply(%s): %v", tt.op, err)
		}
		if got.Float64() != tt.want {
			t.Errorf("Apply(%s) = %v, want %v", tt.op, got.Float64(), tt.want)
		}
	}
}

func TestApply_SpecialResults(t *testing.T) {
	d := fpval.Double64
	sq, err := Apply("FSQRT", d(-1))
	if err != nil {
		t.Fatal(err)
	}
	if !sq.IsNaN() {
		t.Errorf("FSQRT(-1) = %v, want NaN", sq)
	}
	inf, err := Apply("FDIV", d(1), d(0))
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(inf.Float64(), 1) {
		t.Errorf("FDIV(1, 0) = %v, want +Inf", inf)
	}
}

func TestApply_Errors(t *testing.T) {
	if _, err := Apply("FSIN", fpval.Double64(1)); err == nil {
		t.Error("unknown operation should fail")
	}
	if _, err := Apply("FADD", fpval.Double64(1)); err == nil {
		t.Error("FADD with one operand should fail")
	}
	if _, err := Apply("FABS", fpval.Double64(1), fpval.Double64(2)); err == nil {
		t.Error("FABS with two operands should fail")
	}
	if _, err := Apply("FADD", fpval.Double64(1), fpval.Single32(1)); err == nil {
		t.Error("mixed precision should fail")
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != len(ops) {
		t.Fatalf("Names() = %v", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Names() not sorted: %v", names)
		}
	}
	for _, n := range names {
		op, ok := Lookup(n)
		if !ok || op.Name != n {
			t.Errorf("Lookup(%q) = %+v, %v", n, op, ok)
		}
		if op.Arity != 1 && op.Arity != 2 {
			t.Errorf("%s arity %d", n, op.Arity)
		}
	}
}
