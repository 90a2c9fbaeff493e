// check.go - Generated program checker

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

package asmcheck

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/intuitionamiga/nfp09gen/internal/fpval"
	"github.com/intuitionamiga/nfp09gen/internal/label"
	"github.com/intuitionamiga/nfp09gen/internal/pg09"
)

// CaseInfo describes one case found in a generated program.
type CaseInfo struct {
	Index       int
	Description string
	Op          string
	Dyadic      bool
	Values      map[label.Role]fpval.Value

	loadsU bool
}

// Report is the result of checking a program.
type Report struct {
	Precision fpval.Precision
	Cases     []CaseInfo
	Problems  []string
}

// OK reports whether no problems were found.
func (r *Report) OK() bool { return len(r.Problems) == 0 }

func (r *Report) problem(l Line, format string, args ...any) {
	r.Problems = append(r.Problems, fmt.Sprintf("line %d: ", l.Num)+fmt.Sprintf(format, args...))
}

type checker struct {
	rep     *Report
	width   int
	section string
	defined map[string]int
	cur     *CaseInfo
	loaded  map[string]bool // labels loaded into U/Y by the current case

	clearLoopLine int
	modeWriteLine int
	exitLine      int
	lastCodeLine  int
}

// Check verifies a program generated for precision p: labels are unique,
// cases are numbered 0..N-1 in order, every case's code lives in CODE and its
// values in DATA with the right width, the FPCB clear loop runs before the
// precision byte is written, and the program ends with EXIT.
func Check(src string, p fpval.Precision) *Report {
	rep := &Report{Precision: p}
	c := &checker{
		rep:     rep,
		width:   p.Width(),
		defined: make(map[string]int),
	}
	lines := ParseSource(src)
	for _, l := range lines {
		c.line(l)
	}
	c.finish(lines)
	return rep
}

func (c *checker) line(l Line) {
	if l.Label != "" && !isLocalLabel(l.Label) {
		if prev, dup := c.defined[l.Label]; dup {
			c.rep.problem(l, "label %s already defined on line %d", l.Label, prev)
		} else {
			c.defined[l.Label] = l.Num
		}
	}

	if l.Type == LineDirective && strings.EqualFold(l.Op, "section") {
		c.section = strings.Trim(l.Operand, "\"")
		return
	}

	if idx, role, ok := parseCaseLabel(l.Label); ok {
		c.caseLabel(l, idx, role)
	}

	if c.section == "CODE" && (l.Type == LineInstruction || l.Type == LineDirective || l.Type == LineLabeledData) {
		c.lastCodeLine = l.Num
	}

	switch {
	case l.Type == LineComment && c.cur != nil && c.cur.Description == "" && c.section == "CODE":
		c.cur.Description = l.Comment
	case l.Type == LineInstruction:
		c.instruction(l)
	case l.Type == LineDirective && strings.EqualFold(l.Op, "fdb"):
		c.trap(l)
	case l.Type == LineLabeledData && strings.EqualFold(l.Op, "clr") && l.Operand == "A,X":
		c.clearLoopLine = l.Num
	}
}

func (c *checker) caseLabel(l Line, idx int, role label.Role) {
	switch role {
	case label.Start:
		want := len(c.rep.Cases)
		if idx != want {
			c.rep.problem(l, "case %d starts where case %d was expected", idx, want)
		}
		if c.section != "CODE" {
			c.rep.problem(l, "%s outside CODE section", l.Label)
		}
		c.rep.Cases = append(c.rep.Cases, CaseInfo{Index: idx, Values: make(map[label.Role]fpval.Value)})
		c.cur = &c.rep.Cases[len(c.rep.Cases)-1]
		c.loaded = make(map[string]bool)
		return
	case label.End:
		if c.section != "CODE" {
			c.rep.problem(l, "%s outside CODE section", l.Label)
		}
	}
	if c.cur == nil || c.cur.Index != idx {
		c.rep.problem(l, "%s does not belong to the current case", l.Label)
		return
	}
	if role == label.End {
		return
	}

	if c.section != "DATA" {
		c.rep.problem(l, "%s outside DATA section", l.Label)
	}
	if !strings.EqualFold(l.Op, "fcb") {
		c.rep.problem(l, "%s should be an fcb list, got %s", l.Label, l.Op)
		return
	}
	b, err := parseBytes(l.Operand)
	if err != nil {
		c.rep.problem(l, "%s: %v", l.Label, err)
		return
	}
	v, err := fpval.Decode(c.rep.Precision, b)
	if err != nil {
		c.rep.problem(l, "%s: %v", l.Label, err)
		return
	}
	c.cur.Values[role] = v
	switch role {
	case label.Arg1:
		c.cur.Dyadic = true
		if !c.loaded[l.Label] {
			c.rep.problem(l, "%s defined but never loaded into U", l.Label)
		}
	case label.Arg2:
		if !c.loaded[l.Label] {
			c.rep.problem(l, "%s defined but never loaded into Y", l.Label)
		}
	}
}

func (c *checker) instruction(l Line) {
	op := strings.ToLower(l.Op)
	switch {
	case op == "sta" && strings.HasPrefix(l.Operand, "FPCB_FP_CTRL"):
		c.modeWriteLine = l.Num
	case op == "nfp09_call" && c.cur != nil:
		c.cur.Op = strings.TrimPrefix(l.Operand, "FPOP_")
	case (op == "ldu" || op == "ldy") && c.cur != nil:
		c.loaded[strings.TrimPrefix(l.Operand, "#")] = true
		if op == "ldu" {
			c.cur.loadsU = true
		}
	case op == "lda" && c.cur != nil && c.cur.Op != "":
		if n, err := strconv.Atoi(strings.TrimPrefix(l.Operand, "#")); err == nil && n != c.width {
			c.rep.problem(l, "case %d compares %d bytes, want %d", c.cur.Index, n, c.width)
		}
	}
}

func (c *checker) trap(l Line) {
	v, err := strconv.ParseUint(strings.TrimPrefix(l.Operand, "$"), 16, 16)
	if err != nil {
		return
	}
	if uint16(v) == pg09.OpEXIT {
		c.exitLine = l.Num
	}
}

func (c *checker) finish(lines []Line) {
	end := Line{Num: len(lines)}
	switch {
	case c.clearLoopLine == 0:
		c.rep.problem(end, "FPCB clear loop not found")
	case c.modeWriteLine == 0:
		c.rep.problem(end, "precision byte is never written")
	case c.modeWriteLine < c.clearLoopLine:
		c.rep.problem(end, "precision byte written on line %d before the FPCB clear loop on line %d", c.modeWriteLine, c.clearLoopLine)
	}
	if c.exitLine == 0 {
		c.rep.problem(end, "program does not EXIT")
	} else if c.exitLine != c.lastCodeLine {
		c.rep.problem(end, "code follows the EXIT on line %d", c.exitLine)
	}

	for _, ci := range c.rep.Cases {
		for _, role := range []label.Role{label.Arg2, label.Exp} {
			if _, ok := ci.Values[role]; !ok {
				c.rep.problem(end, "case %d has no %s", ci.Index, label.Name(ci.Index, role))
			}
		}
		if _, ok := c.defined[label.Name(ci.Index, label.End)]; !ok {
			c.rep.problem(end, "case %d has no %s", ci.Index, label.Name(ci.Index, label.End))
		}
		if ci.Op == "" {
			c.rep.problem(end, "case %d never calls NFP09", ci.Index)
		}
		if ci.loadsU && !ci.Dyadic {
			c.rep.problem(end, "monadic case %d loads U", ci.Index)
		}
	}
}

// isLocalLabel matches lwasm numeric local labels such as "1".
func isLocalLabel(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

// parseCaseLabel splits "call12_exp" into (12, Exp).
func parseCaseLabel(s string) (int, label.Role, bool) {
	rest, ok := strings.CutPrefix(s, "call")
	if !ok {
		return 0, 0, false
	}
	num, suffix, ok := strings.Cut(rest, "_")
	if !ok {
		return 0, 0, false
	}
	idx, err := strconv.Atoi(num)
	if err != nil || idx < 0 {
		return 0, 0, false
	}
	for _, r := range []label.Role{label.Arg1, label.Arg2, label.Exp, label.Start, label.End} {
		if r.String() == suffix {
			return idx, r, true
		}
	}
	return 0, 0, false
}

// parseBytes reads an fcb operand such as "$BF,$80,$00,$00".
func parseBytes(operand string) ([]byte, error) {
	fields := splitOperands(operand)
	out := make([]byte, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(strings.TrimPrefix(f, "$"), 16, 8)
		if err != nil || !strings.HasPrefix(f, "$") {
			return nil, fmt.Errorf("bad byte %q", f)
		}
		out = append(out, byte(v))
	}
	return out, nil
}
