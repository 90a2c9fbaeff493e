// label.go - Per-case label allocation

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

package label

import (
	"strconv"
	"sync"
)

// Role identifies one of the symbols that belong to a single test case.
type Role int

const (
	Arg1 Role = iota // first operand, dyadic cases only
	Arg2             // second (or only) operand
	Exp              // expected result
	Start            // first instruction of the case
	End              // exported end marker
)

var roleSuffix = [...]string{
	Arg1:  "arg1",
	Arg2:  "arg2",
	Exp:   "exp",
	Start: "start",
	End:   "end",
}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleSuffix) {
		return "Role(" + strconv.Itoa(int(r)) + ")"
	}
	return roleSuffix[r]
}

// Name returns the symbol for role within case index, e.g. "call3_exp".
// Indexes are not bounded; the decimal field simply grows.
func Name(index int, role Role) string {
	return "call" + strconv.Itoa(index) + "_" + role.String()
}

// Set is the label family of one emitted case.
type Set struct {
	Index int
}

func (s Set) Name(role Role) string { return Name(s.Index, role) }

func (s Set) Arg1() string  { return s.Name(Arg1) }
func (s Set) Arg2() string  { return s.Name(Arg2) }
func (s Set) Exp() string   { return s.Name(Exp) }
func (s Set) Start() string { return s.Name(Start) }
func (s Set) End() string   { return s.Name(End) }

// Names lists the symbols a case defines. Monadic cases have no Arg1.
func (s Set) Names(dyadic bool) []string {
	names := make([]string, 0, 5)
	if dyadic {
		names = append(names, s.Arg1())
	}
	return append(names, s.Arg2(), s.Exp(), s.Start(), s.End())
}

// Allocator hands out case indexes 0, 1, 2, ... in call order. The zero
// value is ready to use. There is no way to reset or rewind it.
type Allocator struct {
	mu   sync.Mutex
	next int
}

// Next returns the label set for the next case and advances the counter.
func (a *Allocator) Next() Set {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := Set{Index: a.next}
	a.next++
	return s
}

// Issued reports how many sets have been handed out so far.
func (a *Allocator) Issued() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.next
}
