package cases

import (
	"fmt"
	"math"

	"github.com/intuitionamiga/nfp09gen/internal/emit"
	"github.com/intuitionamiga/nfp09gen/internal/fpval"
	"github.com/intuitionamiga/nfp09gen/internal/refop"
)

// Def is a precision independent test definition. Operands are converted to
// the program's precision and the expected value is computed on the host.
type Def struct {
	Description string
	Op          string
	Args        []float64
}

// Build turns d into an emittable case for precision p.
func (d Def) Build(p fpval.Precision) (emit.Case, error) {
	op, ok := refop.Lookup(d.Op)
	if !ok {
		return emit.Case{}, fmt.Errorf("%s: unknown operation %q", d.Description, d.Op)
	}
	args := make([]fpval.Value, len(d.Args))
	for i, f := range d.Args {
		args[i] = fpval.FromFloat64(p, f)
	}
	exp, err := op.Eval(args...)
	if err != nil {
		return emit.Case{}, fmt.Errorf("%s: %w", d.Description, err)
	}
	return emit.Case{
		Description: d.Description,
		Op:          op.Name,
		Args:        args,
		Expected:    exp,
	}, nil
}

var negZero = math.Copysign(0, -1)

// builtin is the fixed list every program starts with. Cases whose host
// result is a NaN are left to scripts: the sign of a generated NaN differs
// between host CPUs.
var builtin = []Def{
	// Simple monadic calls.
	{"FABS -1.0", "FABS", []float64{-1.0}},
	{"FABS 1.0", "FABS", []float64{1.0}},
	{"FABS -0.0", "FABS", []float64{negZero}},
	{"FABS -Inf", "FABS", []float64{math.Inf(-1)}},
	{"FNEG 1.0", "FNEG", []float64{1.0}},
	{"FNEG 0.0", "FNEG", []float64{0}},
	{"FNEG -Inf", "FNEG", []float64{math.Inf(-1)}},
	{"FSQRT 4.0", "FSQRT", []float64{4.0}},
	{"FSQRT 2.0", "FSQRT", []float64{2.0}},
	{"FSQRT -0.0", "FSQRT", []float64{negZero}},

	// Dyadic calls.
	{"FADD 1.0 2.0", "FADD", []float64{1.0, 2.0}},
	{"FADD 0.1 0.2", "FADD", []float64{0.1, 0.2}},
	{"FADD 1.0 -1.0", "FADD", []float64{1.0, -1.0}},
	{"FMUL 1.5 2.0", "FMUL", []float64{1.5, 2.0}},
	{"FMUL -3.0 0.5", "FMUL", []float64{-3.0, 0.5}},
	{"FMUL 1e30 1e30", "FMUL", []float64{1e30, 1e30}},
}

// Builtin returns a copy of the built-in definitions.
func Builtin() []Def {
	out := make([]Def, len(builtin))
	copy(out, builtin)
	return out
}

// BuildAll converts defs for precision p, stopping at the first failure.
func BuildAll(defs []Def, p fpval.Precision) ([]emit.Case, error) {
	out := make([]emit.Case, 0, len(defs))
	for _, d := range defs {
		c, err := d.Build(p)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
