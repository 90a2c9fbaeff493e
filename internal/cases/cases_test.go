package cases

import (
	"bytes"
	"math"
	"testing"

	"github.com/intuitionamiga/nfp09gen/internal/fpval"
)

func TestBuiltin_FirstIsFABS(t *testing.T) {
	defs := Builtin()
	if len(defs) == 0 {
		t.Fatal("no built-in cases")
	}
	if defs[0].Description != "FABS -1.0" || defs[0].Op != "FABS" || defs[0].Args[0] != -1.0 {
		t.Errorf("first built-in = %+v, want FABS -1.0", defs[0])
	}
}

func TestBuiltin_IsCopy(t *testing.T) {
	a := Builtin()
	a[0].Description = "changed"
	if Builtin()[0].Description != "FABS -1.0" {
		t.Error("Builtin() exposes its backing array")
	}
}

func TestBuild_FABS(t *testing.T) {
	for _, p := range []fpval.Precision{fpval.Single, fpval.Double} {
		c, err := Def{"FABS -1.0", "FABS", []float64{-1}}.Build(p)
		if err != nil {
			t.Fatalf("%s: %v", p, err)
		}
		if len(c.Args) != 1 || c.Dyadic() {
			t.Errorf("%s: FABS built as dyadic", p)
		}
		wantArg := map[fpval.Precision][]byte{
			fpval.Single: {0xBF, 0x80, 0, 0},
			fpval.Double: {0xBF, 0xF0, 0, 0, 0, 0, 0, 0},
		}[p]
		wantExp := map[fpval.Precision][]byte{
			fpval.Single: {0x3F, 0x80, 0, 0},
			fpval.Double: {0x3F, 0xF0, 0, 0, 0, 0, 0, 0},
		}[p]
		if got := fpval.Encode(c.Args[0]); !bytes.Equal(got, wantArg) {
			t.Errorf("%s: arg = % X, want % X", p, got, wantArg)
		}
		if got := fpval.Encode(c.Expected); !bytes.Equal(got, wantExp) {
			t.Errorf("%s: expected = % X, want % X", p, got, wantExp)
		}
	}
}

func TestBuild_Errors(t *testing.T) {
	if _, err := (Def{"x", "FCOS", []float64{1}}).Build(fpval.Double); err == nil {
		t.Error("unknown operation should fail")
	}
	if _, err := (Def{"x", "FADD", []float64{1}}).Build(fpval.Double); err == nil {
		t.Error("wrong arity should fail")
	}
}

func TestBuildAll_Builtin(t *testing.T) {
	for _, p := range []fpval.Precision{fpval.Single, fpval.Double} {
		cs, err := BuildAll(Builtin(), p)
		if err != nil {
			t.Fatalf("%s: %v", p, err)
		}
		if len(cs) != len(builtin) {
			t.Fatalf("%s: built %d cases, want %d", p, len(cs), len(builtin))
		}
		for _, c := range cs {
			if c.Expected.IsNaN() {
				t.Errorf("%s: built-in %q has a NaN result", p, c.Description)
			}
			if c.Expected.Precision() != p {
				t.Errorf("%s: %q expected value is %s", p, c.Description, c.Expected.Precision())
			}
		}
	}
}

func TestBuild_SingleOverflow(t *testing.T) {
	c, err := Def{"FMUL 1e30 1e30", "FMUL", []float64{1e30, 1e30}}.Build(fpval.Single)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(c.Expected.Float64(), 1) {
		t.Errorf("single 1e30*1e30 = %v, want +Inf", c.Expected)
	}
	d, err := Def{"FMUL 1e30 1e30", "FMUL", []float64{1e30, 1e30}}.Build(fpval.Double)
	if err != nil {
		t.Fatal(err)
	}
	if f := d.Expected.Float64(); math.IsInf(f, 0) || math.Abs(f-1e60) > 1e45 {
		t.Errorf("double 1e30*1e30 = %v, want about 1e60", d.Expected)
	}
}
