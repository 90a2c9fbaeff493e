// program.go - pg09 test program builder

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

package program

import (
	"fmt"
	"io"
	"strings"

	"github.com/intuitionamiga/nfp09gen/internal/emit"
	"github.com/intuitionamiga/nfp09gen/internal/label"
	"github.com/intuitionamiga/nfp09gen/internal/pg09"
)

// Symbols shared with the NFP09 ABI include and the emitted cases.
const (
	SymEntryVec  = "nfp09_entryvec"
	SymStart     = "testprog_start"
	SymStackTop  = "stack_top"
	SizeofFPCB   = "SIZEOF_FPCB"
	SizeofFPBCD  = "SIZEOF_FPBCD"
	FPCBCtrlOff  = "FPCB_FP_CTRL"
	SetRegEntry  = "nfp09_set_regentry"
	ROMStartName = "ROM_START"
)

type state int

const (
	stateNew state = iota
	stateCases
	stateDone
)

// Stats summarises a finished program.
type Stats struct {
	Cases int
	Lines int
}

// Builder writes one program: Begin, any number of Case calls, then End.
// Every builder numbers its cases from zero.
type Builder struct {
	cfg   Config
	e     *emit.Emitter
	state state
}

// NewBuilder checks cfg and prepares a builder writing to w.
func NewBuilder(w io.Writer, cfg Config) (*Builder, error) {
	if err := cfg.validate(); err != nil {
		return nil, &GenError{Phase: PhaseConfig, Err: err}
	}
	e := emit.New(w, cfg.Precision)
	e.SetTrace(cfg.Trace)
	return &Builder{cfg: cfg, e: e}, nil
}

// Begin writes the header and the preamble.
func (b *Builder) Begin() error {
	if b.state != stateNew {
		return &GenError{Phase: PhasePreamble, Err: ErrOrder}
	}
	if b.cfg.Header {
		b.e.Line(header(b.cfg)...)
	}
	b.e.Line(b.preamble()...)
	b.state = stateCases
	if err := b.e.Err(); err != nil {
		return &GenError{Phase: PhasePreamble, Err: err}
	}
	return nil
}

// Case emits one test case after the preamble.
func (b *Builder) Case(c emit.Case) (label.Set, error) {
	idx := b.e.Count()
	if b.state != stateCases {
		return label.Set{}, &GenError{Phase: PhaseCase, Case: idx, Err: ErrOrder}
	}
	ls, err := b.e.Emit(c)
	if err != nil {
		return ls, &GenError{Phase: PhaseCase, Case: idx, Err: err}
	}
	return ls, nil
}

// End writes the epilogue and flushes the output.
func (b *Builder) End() error {
	if b.state != stateCases {
		return &GenError{Phase: PhaseEpilogue, Err: ErrOrder}
	}
	b.e.Line("")
	b.e.Section(emit.SectionCode)
	b.e.Line("\t; Exit out of the emulator.")
	b.e.Line(pg09.Exit()...)
	b.state = stateDone
	if err := b.e.Flush(); err != nil {
		return &GenError{Phase: PhaseEpilogue, Err: err}
	}
	return nil
}

// Stats reports what has been written so far.
func (b *Builder) Stats() Stats {
	return Stats{Cases: b.e.Count(), Lines: b.e.Lines()}
}

// Build writes a complete program containing cases in order.
func Build(w io.Writer, cfg Config, cases []emit.Case) (Stats, error) {
	b, err := NewBuilder(w, cfg)
	if err != nil {
		return Stats{}, err
	}
	if err := b.Begin(); err != nil {
		return b.Stats(), err
	}
	for _, c := range cases {
		if _, err := b.Case(c); err != nil {
			return b.Stats(), err
		}
	}
	if err := b.End(); err != nil {
		return b.Stats(), err
	}
	return b.Stats(), nil
}

func header(cfg Config) []string {
	lines := []string{
		";",
		";             **********" + center("AUTOMATICALLY GENERATED", bannerWidth) + "**********",
		";             **********" + center("from "+cfg.Generator, bannerWidth) + "**********",
		";",
	}
	if cfg.Copyright != "" {
		lines = append(lines, "; "+cfg.Copyright, "; All rights reserved.", ";")
		for _, l := range bsdLicense {
			if l == "" {
				lines = append(lines, ";")
			} else {
				lines = append(lines, "; "+l)
			}
		}
		lines = append(lines, ";")
	}
	return lines
}

// preamble lays out the zero page, sets up the stack and the NFP09 entry
// vector, clears the FPCB and selects the precision.
func (b *Builder) preamble() []string {
	lines := []string{
		"",
		fmt.Sprintf("\tinclude \"%s\"", b.cfg.ABIInclude),
		"",
		"\t; pg09-specific memory map stuff.",
		fmt.Sprintf("%s\tequ\t$%04X", ROMStartName, b.cfg.ROMStart),
		"",
		"\torg\t$0000",
		"\tsetdp\t$00",
		"",
		"\t;",
		"\t; The reset vector points to $0000, so we jump to the",
		"\t; real entry after our zero page variables.",
		"\t;",
		"\tjmp\t" + SymStart,
		"",
		SymEntryVec,
		"\trmb\t2",
		emit.SymFPCB,
		"\trmb\t" + SizeofFPCB,
		emit.SymResult,
		"\trmb\t" + SizeofFPBCD,
		"",
		sectionLine(emit.SectionCode),
		SymStart,
		"\t;",
		"\t; Initialize the stack.",
		"\t;",
		"\tlds\t#" + SymStackTop,
		"",
		"\t;",
		"\t; Initialize our NFP09 entry vector.",
		"\t;",
		"\tldx\t#" + ROMStartName,
		"\t" + SetRegEntry,
		"",
	}
	lines = append(lines, clearFPCB(b.cfg)...)
	lines = append(lines,
		"",
		sectionLine(emit.SectionData),
		fmt.Sprintf("\tfcn\t\"NFP09 %s-precision test program\"", b.cfg.Precision),
		fmt.Sprintf("\trmb\t%d", b.cfg.StackSize),
		SymStackTop,
		"",
		sectionLine(emit.SectionCode),
		"",
	)
	return lines
}

// clearFPCB zeroes bytes SIZEOF_FPCB-1 down to 0 and only then writes the
// precision byte. A is a signed offset, so SIZEOF_FPCB must not exceed 128.
func clearFPCB(cfg Config) []string {
	return []string{
		"\t;",
		"\t; Initialize the FPCB.",
		"\t;",
		"\tlda\t#" + SizeofFPCB + "-1",
		"\tldx\t#" + emit.SymFPCB,
		"1\tclr\tA,X",
		"\tdeca",
		"\tbpl\t1B",
		"\tlda\t#" + cfg.Precision.CtrlSymbol(),
		"\tsta\t" + FPCBCtrlOff + ",X",
	}
}

const bannerWidth = 25

func center(s string, width int) string {
	if len(s)+2 >= width {
		return " " + s + " "
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}

func sectionLine(name string) string {
	return fmt.Sprintf("\tsection \"%s\"", name)
}

var bsdLicense = []string{
	"Redistribution and use in source and binary forms, with or without",
	"modification, are permitted provided that the following conditions",
	"are met:",
	"1. Redistributions of source code must retain the above copyright",
	"   notice, this list of conditions and the following disclaimer.",
	"2. Redistributions in binary form must reproduce the above copyright",
	"   notice, this list of conditions and the following disclaimer in the",
	"   documentation and/or other materials provided with the distribution.",
	"",
	"THIS SOFTWARE IS PROVIDED BY THE AUTHOR ``AS IS'' AND ANY EXPRESS OR",
	"IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES",
	"OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE DISCLAIMED.",
	"IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY DIRECT, INDIRECT,",
	"INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING,",
	"BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES;",
	"LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED",
	"AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,",
	"OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY",
	"OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF",
	"SUCH DAMAGE.",
}
