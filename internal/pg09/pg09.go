// pg09.go - pg09 emulator trap helpers

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

package pg09

import "fmt"

// Emulator trap words. The pg09 emulator decodes these otherwise illegal
// 6809 opcode pairs as test-support instructions.
const (
	OpTRC  uint16 = 0x11fb // trace marker, followed by one byte
	OpTCMP uint16 = 0x11fc // X = buffer 1, Y = buffer 2, A = length
	OpEXIT uint16 = 0x11fd // stop the emulator
	OpPRI  uint16 = 0x11fe // print registers
)

var opNames = map[uint16]string{
	OpTRC:  "TRC",
	OpTCMP: "TCMP",
	OpEXIT: "EXIT",
	OpPRI:  "PRI",
}

// Name returns the mnemonic for a trap word, or "" if op is not one.
func Name(op uint16) string {
	return opNames[op]
}

// Lookup maps a mnemonic back to its trap word.
func Lookup(name string) (uint16, bool) {
	for op, n := range opNames {
		if n == name {
			return op, true
		}
	}
	return 0, false
}

func trap(op uint16) string {
	return fmt.Sprintf("\tfdb\t$%04x\t\t; pg09 %s", op, opNames[op])
}

// TCMP compares n bytes at the label exp with the buffer X already points to.
func TCMP(exp string, n int) []string {
	return []string{
		fmt.Sprintf("\tldy\t#%s", exp),
		fmt.Sprintf("\tlda\t#%d", n),
		trap(OpTCMP),
	}
}

// Exit halts the emulator.
func Exit() []string {
	return []string{trap(OpEXIT)}
}

// Trace emits a trace marker carrying the byte a.
func Trace(a uint8) []string {
	return []string{
		trap(OpTRC),
		fmt.Sprintf("\tfcb\t%d", a),
	}
}

// Print dumps the CPU registers.
func Print() []string {
	return []string{trap(OpPRI)}
}
