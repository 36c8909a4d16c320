package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jcorbin/gomouse/internal/panicerr"
	"github.com/jcorbin/gomouse/internal/source"
)

// New creates a VM with the given options applied over defaults of empty
// input and discarded output; WithProgram must be among them before Run.
func New(opts ...VMOption) *VM {
	var vm VM
	defaultOptions.apply(&vm)
	VMOptions(opts...).apply(&vm)
	return &vm
}

// Run scans the program for macro definitions and then executes it from the
// start, until its end marker or an error. A nil return means that the
// program ended normally; any output is flushed either way.
//
// The context is checked between every step, so a runaway program may be
// stopped by cancelling it.
func (vm *VM) Run(ctx context.Context) error {
	if vm.prog == nil {
		return fmt.Errorf("%w: no program to run", ErrInternal)
	}
	err := panicerr.Recover("mouse", func() error {
		vm.ctx = ctx
		defer func() { vm.ctx = nil }()
		if err := vm.prescan(); err != nil {
			return err
		}
		return vm.run(vm.prog)
	})
	if ferr := vm.flush(); err == nil || err == errProgramEnd {
		err = ferr
	}
	return err
}

func WithInput(r io.Reader) VMOption  { return inputOption{r} }
func WithOutput(w io.Writer) VMOption { return outputOption{w} }
func WithTee(w io.Writer) VMOption    { return teeOption{w} }

// WithProgram sets the program text to run; name appears in diagnostics.
func WithProgram(name string, text []byte) VMOption {
	return programOption{source.New(name, text)}
}

// WithCallLimit bounds how deeply macro calls, and parameter evaluations, may
// nest before a stack overflow error.
func WithCallLimit(limit int) VMOption { return callLimitOption(limit) }

func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }
