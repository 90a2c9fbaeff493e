// emit.go - NFP09 test case emitter

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package emit

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/intuitionamiga/nfp09gen/internal/fpval"
	"github.com/intuitionamiga/nfp09gen/internal/label"
	"github.com/intuitionamiga/nfp09gen/internal/pg09"
)

// Fixed symbols every case refers to. They are defined by the program
// preamble and the NFP09 ABI include.
const (
	SymFPCB   = "fpcb"
	SymResult = "result"
	CallMacro = "nfp09_call"
	OpPrefix  = "FPOP_"
)

const (
	SectionCode = "CODE"
	SectionData = "DATA"
)

var (
	ErrArity     = errors.New("case must have one or two operands")
	ErrPrecision = errors.New("operand precision does not match program")
	ErrOpName    = errors.New("invalid operation name")
)

// Case is one test: an NFP09 operation, its operands and the result the
// host computed for them. One operand makes a monadic call, two a dyadic one.
type Case struct {
	Description string
	Op          string
	Args        []fpval.Value
	Expected    fpval.Value
}

// Dyadic reports whether the case passes two operands.
func (c Case) Dyadic() bool { return len(c.Args) == 2 }

// Emitter writes test cases as lwasm source. Each emitter owns its label
// allocator, so two emitters never interfere.
type Emitter struct {
	out   *lineWriter
	alloc label.Allocator
	prec  fpval.Precision
	trace bool
}

// New returns an emitter writing prec-sized values to w.
func New(w io.Writer, prec fpval.Precision) *Emitter {
	return &Emitter{out: newLineWriter(w), prec: prec}
}

// SetTrace makes every case start with a pg09 TRC marker carrying the low
// byte of its index.
func (e *Emitter) SetTrace(on bool) { e.trace = on }

func (e *Emitter) Precision() fpval.Precision { return e.prec }

// Count is the number of cases emitted so far.
func (e *Emitter) Count() int { return e.alloc.Issued() }

// Lines is the number of lines written so far.
func (e *Emitter) Lines() int { return e.out.lines }

// Err returns the first write error, if any.
func (e *Emitter) Err() error { return e.out.err }

// Flush pushes buffered output to the underlying writer.
func (e *Emitter) Flush() error { return e.out.flush() }

// Line writes raw source lines.
func (e *Emitter) Line(lines ...string) {
	for _, l := range lines {
		e.out.line(l)
	}
}

// Section switches the assembler to the named section.
func (e *Emitter) Section(name string) {
	e.out.line(fmt.Sprintf("\tsection \"%s\"", name))
}

// Data writes v under lbl as an fcb byte list.
func (e *Emitter) Data(lbl string, v fpval.Value) {
	e.out.line(lbl + "\tfcb\t" + fpval.FormatBytes(fpval.Encode(v)))
}

// Monadic emits a one-operand case. arg2 is passed in Y; X receives the result.
func (e *Emitter) Monadic(desc, op string, arg2, expected fpval.Value) (label.Set, error) {
	return e.Emit(Case{Description: desc, Op: op, Args: []fpval.Value{arg2}, Expected: expected})
}

// Dyadic emits a two-operand case. arg1 is passed in U and arg2 in Y.
func (e *Emitter) Dyadic(desc, op string, arg1, arg2, expected fpval.Value) (label.Set, error) {
	return e.Emit(Case{Description: desc, Op: op, Args: []fpval.Value{arg1, arg2}, Expected: expected})
}

// Emit writes the CODE and DATA fragments for c. A rejected case consumes no
// index and writes nothing.
func (e *Emitter) Emit(c Case) (label.Set, error) {
	if err := e.check(c); err != nil {
		return label.Set{}, err
	}
	if err := e.out.err; err != nil {
		return label.Set{}, err
	}

	ls := e.alloc.Next()
	dyadic := c.Dyadic()

	e.Section(SectionCode)
	e.out.line(ls.Start())
	e.out.line("\t; " + oneLine(c.Description))
	if e.trace {
		e.Line(pg09.Trace(uint8(ls.Index))...)
	}
	if dyadic {
		e.out.line("\tldu\t#" + ls.Arg1())
	}
	e.out.line("\tldy\t#" + ls.Arg2())
	e.out.line("\tldd\t#" + SymFPCB)
	e.out.line("\tldx\t#" + SymResult)
	e.out.line("\t" + CallMacro + " " + OpPrefix + c.Op)
	e.Line(pg09.TCMP(ls.Exp(), e.prec.Width())...)
	e.out.line("\texport " + ls.End())
	e.out.line(ls.End())
	e.out.line("")

	e.Section(SectionData)
	if dyadic {
		e.Data(ls.Arg1(), c.Args[0])
	}
	e.Data(ls.Arg2(), c.Args[len(c.Args)-1])
	e.Data(ls.Exp(), c.Expected)
	e.out.line("")

	if e.out.err != nil {
		return ls, fmt.Errorf("case %d (%s): %w", ls.Index, c.Op, e.out.err)
	}
	return ls, nil
}

func (e *Emitter) check(c Case) error {
	if len(c.Args) != 1 && len(c.Args) != 2 {
		return fmt.Errorf("%s: %w (got %d)", c.Op, ErrArity, len(c.Args))
	}
	if !validOp(c.Op) {
		return fmt.Errorf("%w: %q", ErrOpName, c.Op)
	}
	for i, a := range c.Args {
		if a.Precision() != e.prec {
			return fmt.Errorf("%s operand %d is %s: %w", c.Op, i+1, a.Precision(), ErrPrecision)
		}
	}
	if c.Expected.Precision() != e.prec {
		return fmt.Errorf("%s expected value is %s: %w", c.Op, c.Expected.Precision(), ErrPrecision)
	}
	return nil
}

// validOp accepts assembler identifiers only, so the FPOP_ symbol is well formed.
func validOp(op string) bool {
	if op == "" {
		return false
	}
	for i := 0; i < len(op); i++ {
		ch := op[i]
		switch {
		case ch >= 'A' && ch <= 'Z', ch >= 'a' && ch <= 'z', ch == '_':
		case ch >= '0' && ch <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// oneLine keeps a description inside its comment.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
