// lines.go - 6809 assembly line parsing

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

import "strings"

// LineType classifies a line of lwasm source.
type LineType int

const (
	LineEmpty LineType = iota
	LineComment
	LineLabel       // label alone in column 0
	LineLabeledData // label followed by a directive or instruction
	LineDirective
	LineInstruction
)

var directives = map[string]bool{
	"section": true, "export": true, "include": true,
	"org": true, "setdp": true, "equ": true,
	"fcb": true, "fdb": true, "fcc": true, "fcn": true, "rmb": true,
}

// IsDirective reports whether op is an assembler pseudo-op rather than a
// 6809 instruction or macro.
func IsDirective(op string) bool {
	return directives[strings.ToLower(op)]
}

// Line is one parsed source line.
type Line struct {
	Num     int
	Type    LineType
	Label   string
	Op      string
	Operand string
	Comment string
}

// SplitComment splits a line into code and comment parts.
// The comment does NOT include the leading ";".
func SplitComment(line string) (code, comment string) {
	inQuote := false
	quoteChar := byte(0)
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if inQuote {
			if ch == quoteChar {
				inQuote = false
			}
			continue
		}
		if ch == '"' {
			inQuote = true
			quoteChar = ch
			continue
		}
		if ch == ';' {
			code = strings.TrimRight(line[:i], " \t")
			comment = strings.TrimLeft(line[i+1:], " ")
			return
		}
	}
	return line, ""
}

// ParseLine classifies raw. Labels start in column 0; everything else is
// indented. Operands run to the end of the code part so quoted strings with
// spaces survive.
func ParseLine(num int, raw string) Line {
	code, comment := SplitComment(raw)
	l := Line{Num: num, Comment: comment}
	if strings.TrimSpace(code) == "" {
		if strings.Contains(raw, ";") {
			l.Type = LineComment
		}
		return l
	}

	rest := code
	if c := code[0]; c != ' ' && c != '\t' {
		end := strings.IndexAny(code, " \t")
		if end < 0 {
			l.Type = LineLabel
			l.Label = code
			return l
		}
		l.Label = code[:end]
		rest = code[end:]
	}

	rest = strings.TrimLeft(rest, " \t")
	if rest == "" {
		l.Type = LineLabel
		return l
	}
	if end := strings.IndexAny(rest, " \t"); end >= 0 {
		l.Op = rest[:end]
		l.Operand = strings.TrimSpace(rest[end:])
	} else {
		l.Op = rest
	}

	switch {
	case l.Label != "":
		l.Type = LineLabeledData
	case IsDirective(l.Op):
		l.Type = LineDirective
	default:
		l.Type = LineInstruction
	}
	return l
}

// ParseSource splits src into lines and parses each, numbering from 1.
func ParseSource(src string) []Line {
	raw := strings.Split(src, "\n")
	if len(raw) > 0 && raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}
	lines := make([]Line, len(raw))
	for i, r := range raw {
		lines[i] = ParseLine(i+1, r)
	}
	return lines
}

// splitOperands splits "$BF,$80" into its fields. Quoted strings are kept
// whole.
func splitOperands(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var out []string
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuote = !inQuote
		case ',':
			if !inQuote {
				out = append(out, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(out, strings.TrimSpace(s[start:]))
}
