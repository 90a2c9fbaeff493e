// fpval.go - IEEE-754 values and their big-endian byte form

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

package fpval

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// Precision selects the IEEE-754 format used for every value in a program.
type Precision int

const (
	Single Precision = iota // 32-bit binary32
	Double                  // 64-bit binary64
)

// Width returns the on-target size of a value in bytes.
func (p Precision) Width() int {
	if p == Single {
		return 4
	}
	return 8
}

func (p Precision) String() string {
	switch p {
	case Single:
		return "single"
	case Double:
		return "double"
	}
	return fmt.Sprintf("Precision(%d)", int(p))
}

// CtrlSymbol names the FPCB control byte value that selects this precision.
func (p Precision) CtrlSymbol() string {
	if p == Single {
		return "FP_CTRL_SINGLE"
	}
	return "FP_CTRL_DOUBLE"
}

// Valid reports whether p is one of the two supported formats.
func (p Precision) Valid() bool {
	return p == Single || p == Double
}

// ParsePrecision accepts "single"/"double" and the short forms "s"/"d",
// "32"/"64" and "float"/"double".
func ParsePrecision(s string) (Precision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "s", "32", "float", "float32":
		return Single, nil
	case "double", "d", "64", "float64":
		return Double, nil
	}
	return 0, fmt.Errorf("unknown precision %q (want single or double)", s)
}

// Value is a host floating point number tagged with its precision. The raw
// bit pattern is stored so NaN payloads are never canonicalised.
type Value struct {
	prec Precision
	bits uint64
}

// Single32 wraps a float32.
func Single32(f float32) Value {
	return Value{prec: Single, bits: uint64(math.Float32bits(f))}
}

// Double64 wraps a float64.
func Double64(f float64) Value {
	return Value{prec: Double, bits: math.Float64bits(f)}
}

// FromFloat64 converts f to precision p. Single precision rounds to nearest
// float32 the way a Go conversion does.
func FromFloat64(p Precision, f float64) Value {
	if p == Single {
		return Single32(float32(f))
	}
	return Double64(f)
}

// FromBits builds a value from a raw bit pattern. For single precision only
// the low 32 bits are kept.
func FromBits(p Precision, bits uint64) Value {
	if p == Single {
		bits &= math.MaxUint32
	}
	return Value{prec: p, bits: bits}
}

func (v Value) Precision() Precision { return v.prec }

// Bits returns the raw IEEE bit pattern, zero-extended for single precision.
func (v Value) Bits() uint64 { return v.bits }

func (v Value) Float32() float32 {
	if v.prec == Single {
		return math.Float32frombits(uint32(v.bits))
	}
	return float32(math.Float64frombits(v.bits))
}

func (v Value) Float64() float64 {
	if v.prec == Single {
		return float64(math.Float32frombits(uint32(v.bits)))
	}
	return math.Float64frombits(v.bits)
}

func (v Value) IsNaN() bool { return math.IsNaN(v.Float64()) }

func (v Value) String() string {
	if v.prec == Single {
		return fmt.Sprintf("%g (0x%08X)", v.Float32(), uint32(v.bits))
	}
	return fmt.Sprintf("%g (0x%016X)", v.Float64(), v.bits)
}

// Encode returns the big-endian on-target bytes of v: 4 bytes for single
// precision, 8 for double.
func Encode(v Value) []byte {
	b := make([]byte, v.prec.Width())
	if v.prec == Single {
		binary.BigEndian.PutUint32(b, uint32(v.bits))
	} else {
		binary.BigEndian.PutUint64(b, v.bits)
	}
	return b
}

// Decode is the inverse of Encode.
func Decode(p Precision, b []byte) (Value, error) {
	if len(b) != p.Width() {
		return Value{}, fmt.Errorf("decode %s: got %d bytes, want %d", p, len(b), p.Width())
	}
	if p == Single {
		return FromBits(p, uint64(binary.BigEndian.Uint32(b))), nil
	}
	return FromBits(p, binary.BigEndian.Uint64(b)), nil
}

// FormatBytes renders b as an lwasm byte list: "$BF,$80,$00,$00".
func FormatBytes(b []byte) string {
	var sb strings.Builder
	for i, x := range b {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "$%02X", x)
	}
	return sb.String()
}
