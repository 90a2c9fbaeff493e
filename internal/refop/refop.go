package refop

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/intuitionamiga/nfp09gen/internal/fpval"
)

// Op is a host implementation of one NFP09 operation. Single precision is
// evaluated in float32 so results round the way the target format does.
type Op struct {
	Name  string
	Arity int
	f32   func(a, b float32) float32
	f64   func(a, b float64) float64
}

// Dyadic operands are (arg1, arg2): FSUB is arg1-arg2 and FDIV is arg1/arg2.
var ops = map[string]Op{
	"FABS": {Name: "FABS", Arity: 1,
		f32: func(_, x float32) float32 { return math.Float32frombits(math.Float32bits(x) &^ (1 << 31)) },
		f64: func(_, x float64) float64 { return math.Abs(x) }},
	"FNEG": {Name: "FNEG", Arity: 1,
		f32: func(_, x float32) float32 { return -x },
		f64: func(_, x float64) float64 { return -x }},
	"FSQRT": {Name: "FSQRT", Arity: 1,
		f32: func(_, x float32) float32 { return float32(math.Sqrt(float64(x))) },
		f64: func(_, x float64) float64 { return math.Sqrt(x) }},
	"FINT": {Name: "FINT", Arity: 1,
		f32: func(_, x float32) float32 { return float32(math.RoundToEven(float64(x))) },
		f64: func(_, x float64) float64 { return math.RoundToEven(x) }},
	"FADD": {Name: "FADD", Arity: 2,
		f32: func(a, b float32) float32 { return a + b },
		f64: func(a, b float64) float64 { return a + b }},
	"FSUB": {Name: "FSUB", Arity: 2,
		f32: func(a, b float32) float32 { return a - b },
		f64: func(a, b float64) float64 { return a - b }},
	"FMUL": {Name: "FMUL", Arity: 2,
		f32: func(a, b float32) float32 { return a * b },
		f64: func(a, b float64) float64 { return a * b }},
	"FDIV": {Name: "FDIV", Arity: 2,
		f32: func(a, b float32) float32 { return a / b },
		f64: func(a, b float64) float64 { return a / b }},
	"FREM": {Name: "FREM", Arity: 2,
		f32: func(a, b float32) float32 { return float32(math.Remainder(float64(a), float64(b))) },
		f64: func(a, b float64) float64 { return math.Remainder(a, b) }},
}

// Lookup finds an operation by name, ignoring case.
func Lookup(name string) (Op, bool) {
	op, ok := ops[strings.ToUpper(name)]
	return op, ok
}

// Names lists the known operations in sorted order.
func Names() []string {
	names := make([]string, 0, len(ops))
	for n := range ops {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Eval applies op to args, which must all share one precision. Monadic
// operations take their operand in the arg2 position.
func (op Op) Eval(args ...fpval.Value) (fpval.Value, error) {
	if len(args) != op.Arity {
		return fpval.Value{}, fmt.Errorf("%s takes %d operand(s), got %d", op.Name, op.Arity, len(args))
	}
	p := args[0].Precision()
	for _, a := range args[1:] {
		if a.Precision() != p {
			return fpval.Value{}, fmt.Errorf("%s: mixed precision operands", op.Name)
		}
	}
	a1, a2 := args[0], args[len(args)-1]
	if op.Arity == 1 {
		a1 = fpval.Value{}
	}
	if p == fpval.Single {
		return fpval.Single32(op.f32(a1.Float32(), a2.Float32())), nil
	}
	return fpval.Double64(op.f64(a1.Float64(), a2.Float64())), nil
}

// Apply looks up name and evaluates it.
func Apply(name string, args ...fpval.Value) (fpval.Value, error) {
	op, ok := Lookup(name)
	if !ok {
		return fpval.Value{}, fmt.Errorf("unknown operation %q", name)
	}
	return op.Eval(args...)
}
