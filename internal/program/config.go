package program

import (
	"errors"
	"fmt"

	"github.com/intuitionamiga/nfp09gen/internal/fpval"
)

// Config controls the fixed parts of a generated program.
type Config struct {
	Precision fpval.Precision

	// Header emits the generated-file banner and license block.
	Header    bool
	Generator string // named in the banner
	Copyright string

	// Trace puts a pg09 TRC marker at the start of every case.
	Trace bool

	ABIInclude string // path of the NFP09 ABI definitions, as seen by lwasm
	ROMStart   uint16 // where the NFP09 image is mapped
	StackSize  int    // bytes reserved below stack_top
}

// DefaultConfig matches the layout the pg09 test harness expects.
func DefaultConfig(p fpval.Precision) Config {
	return Config{
		Precision:  p,
		Header:     true,
		Generator:  "nfp09gen",
		Copyright:  "Copyright (c) 2022 Jason R. Thorpe.",
		ABIInclude: "../abi/nfp09-abi.s",
		ROMStart:   0xE000,
		StackSize:  512,
	}
}

func (c Config) validate() error {
	var errs []error
	if !c.Precision.Valid() {
		errs = append(errs, fmt.Errorf("invalid precision %d", int(c.Precision)))
	}
	if c.ABIInclude == "" {
		errs = append(errs, errors.New("ABI include path is empty"))
	}
	if c.StackSize <= 0 {
		errs = append(errs, fmt.Errorf("stack size %d must be positive", c.StackSize))
	}
	if c.Header && c.Generator == "" {
		errs = append(errs, errors.New("header needs a generator name"))
	}
	return errors.Join(errs...)
}
