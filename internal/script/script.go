package script

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/intuitionamiga/nfp09gen/internal/emit"
	"github.com/intuitionamiga/nfp09gen/internal/fpval"
	"github.com/intuitionamiga/nfp09gen/internal/refop"
)

const valueTypeName = "fpvalue"

// loader collects the cases a script declares. Operands given as Lua numbers
// are rounded to the program precision; fpvalue userdata keep their bits.
type loader struct {
	prec  fpval.Precision
	cases []emit.Case
}

// LoadFile runs the Lua case script at path.
func LoadFile(ctx context.Context, path string, p fpval.Precision) ([]emit.Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(ctx, f, path, p)
}

// Load runs a Lua case script read from r and returns its cases in
// declaration order. Scripts see:
//
//	monadic(desc, op, x)        -> expected
//	dyadic(desc, op, x, y)      -> expected
//	expect(desc, op, exp, x[, y])
//	bits("7FC00001"), nan(), inf(sign), negzero(), precision(), ops()
func Load(ctx context.Context, r io.Reader, name string, p fpval.Precision) ([]emit.Case, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("script %s: invalid precision %d", name, int(p))
	}
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	if ctx != nil {
		L.SetContext(ctx)
	}
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			return nil, fmt.Errorf("script %s: open %s: %w", name, lib.name, err)
		}
	}

	ld := &loader{prec: p}
	ld.register(L)

	fn, err := L.Load(r, name)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}
	return ld.cases, nil
}

func (ld *loader) register(L *lua.LState) {
	mt := L.NewTypeMetatable(valueTypeName)
	L.SetField(mt, "__tostring", L.NewFunction(func(L *lua.LState) int {
		v := ld.checkValue(L, 1)
		L.Push(lua.LString(v.String()))
		return 1
	}))

	for name, fn := range map[string]lua.LGFunction{
		"monadic":   ld.monadic,
		"dyadic":    ld.dyadic,
		"expect":    ld.expect,
		"bits":      ld.bits,
		"nan":       ld.nan,
		"inf":       ld.inf,
		"negzero":   ld.negzero,
		"precision": ld.precision,
		"ops":       ld.ops,
	} {
		L.SetGlobal(name, L.NewFunction(fn))
	}
}

func (ld *loader) push(L *lua.LState, v fpval.Value) {
	ud := L.NewUserData()
	ud.Value = v
	L.SetMetatable(ud, L.GetTypeMetatable(valueTypeName))
	L.Push(ud)
}

func (ld *loader) checkValue(L *lua.LState, n int) fpval.Value {
	switch v := L.Get(n).(type) {
	case lua.LNumber:
		return fpval.FromFloat64(ld.prec, float64(v))
	case *lua.LUserData:
		if fv, ok := v.Value.(fpval.Value); ok {
			return fv
		}
	}
	L.ArgError(n, "number or fpvalue expected")
	return fpval.Value{}
}

func (ld *loader) add(L *lua.LState, desc, name string, args ...fpval.Value) fpval.Value {
	op, ok := refop.Lookup(name)
	if !ok {
		L.RaiseError("unknown operation %q", name)
	}
	exp, err := op.Eval(args...)
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	ld.cases = append(ld.cases, emit.Case{Description: desc, Op: op.Name, Args: args, Expected: exp})
	return exp
}

func (ld *loader) monadic(L *lua.LState) int {
	desc := L.CheckString(1)
	op := L.CheckString(2)
	x := ld.checkValue(L, 3)
	ld.push(L, ld.add(L, desc, op, x))
	return 1
}

func (ld *loader) dyadic(L *lua.LState) int {
	desc := L.CheckString(1)
	op := L.CheckString(2)
	x := ld.checkValue(L, 3)
	y := ld.checkValue(L, 4)
	ld.push(L, ld.add(L, desc, op, x, y))
	return 1
}

// expect declares a case with a caller supplied result instead of the host's.
func (ld *loader) expect(L *lua.LState) int {
	desc := L.CheckString(1)
	name := L.CheckString(2)
	exp := ld.checkValue(L, 3)
	op, ok := refop.Lookup(name)
	if !ok {
		L.RaiseError("unknown operation %q", name)
	}
	args := []fpval.Value{ld.checkValue(L, 4)}
	if L.GetTop() >= 5 {
		args = append(args, ld.checkValue(L, 5))
	}
	if len(args) != op.Arity {
		L.RaiseError("%s takes %d operand(s), got %d", op.Name, op.Arity, len(args))
	}
	ld.cases = append(ld.cases, emit.Case{Description: desc, Op: op.Name, Args: args, Expected: exp})
	return 0
}

func (ld *loader) bits(L *lua.LState) int {
	s := L.CheckString(1)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := strconv.ParseUint(s, 16, ld.prec.Width()*8)
	if err != nil {
		L.ArgError(1, fmt.Sprintf("bad %s bit pattern %q", ld.prec, s))
	}
	ld.push(L, fpval.FromBits(ld.prec, b))
	return 1
}

func (ld *loader) nan(L *lua.LState) int {
	if ld.prec == fpval.Single {
		ld.push(L, fpval.FromBits(fpval.Single, 0x7FC00000))
	} else {
		ld.push(L, fpval.FromBits(fpval.Double, 0x7FF8000000000000))
	}
	return 1
}

func (ld *loader) inf(L *lua.LState) int {
	sign := L.OptInt(1, 1)
	ld.push(L, fpval.FromFloat64(ld.prec, math.Inf(sign)))
	return 1
}

func (ld *loader) negzero(L *lua.LState) int {
	ld.push(L, fpval.FromFloat64(ld.prec, math.Copysign(0, -1)))
	return 1
}

func (ld *loader) precision(L *lua.LState) int {
	L.Push(lua.LString(ld.prec.String()))
	return 1
}

func (ld *loader) ops(L *lua.LState) int {
	t := L.NewTable()
	for _, n := range refop.Names() {
		t.Append(lua.LString(n))
	}
	L.Push(t)
	return 1
}
