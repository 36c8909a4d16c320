package main

import (
	"context"
	"fmt"

	"github.com/jcorbin/gomouse/internal/source"
)

const (
	stackSize        = 256   // value stack capacity
	loopLimit        = 256   // loop position stack capacity
	nestLimit        = 255   // bracket nesting while scanning
	numGlobals       = 26    // A-Z
	maxDigits        = 5     // per numeric literal
	maxNumber        = 65535 // largest numeric literal
	maxString        = 255   // bytes per string literal
	maxMacroLen      = 65534 // bytes per macro body
	defaultCallLimit = 1024  // nested drivers: macro calls and parameter evaluations
)

// VM implements a Mouse machine: a stack of 16-bit integers, 26 global
// variables, and a program text executed byte by byte, its cursor serving as
// the program counter. Control flow is done by seeking the cursor, either
// backward to a loop's opening, or forward past matching brackets.
type VM struct {
	ioCore

	ctx  context.Context
	prog *source.Buffer

	stack []int16
	vars  [numGlobals]int16

	// loops holds the position of each open loop's '(' so that ')' can seek
	// back to it.
	loops []loopMark

	// macros are found by a scan of the whole program before it runs.
	macros [26]*macro

	// frames is the call stack, the active call being the last one.
	frames []*frame

	// nest counts the drivers running on Go's stack beneath the outermost one.
	nest counter
}

type loopMark struct {
	src *source.Buffer
	pos int
}

func (mark loopMark) String() string { return fmt.Sprintf("%v@%v", mark.src.Name(), mark.pos) }

// The stack is simply a bounded LIFO data structure, used implicitly by
// nearly every token. The right-hand operand of a binary token is on top.
func (vm *VM) push(val int16) error {
	if len(vm.stack) >= stackSize {
		return ErrStackOverflow
	}
	vm.stack = append(vm.stack, val)
	return nil
}

func (vm *VM) pop() (int16, error) {
	i := len(vm.stack) - 1
	if i < 0 {
		return 0, ErrStackUnderflow
	}
	val := vm.stack[i]
	vm.stack = vm.stack[:i]
	return val, nil
}

func (vm *VM) pop2() (a, b int16, err error) {
	if b, err = vm.pop(); err == nil {
		a, err = vm.pop()
	}
	return a, b, err
}

// Variables 0-25 are global; while a macro call is active, index 26 and
// above address its locals, in the order the macro body first names them.
func (vm *VM) slot(addr int16) (*int16, error) {
	switch {
	case addr < 0:
		return nil, ErrInvalidVar
	case addr < numGlobals:
		return &vm.vars[addr], nil
	}
	f := vm.frame()
	if f == nil {
		return nil, ErrNotInMacro
	}
	if i := int(addr) - numGlobals; i < len(f.locals) {
		return &f.locals[i], nil
	}
	return nil, ErrInvalidVar
}

func (vm *VM) stor(addr, val int16) error {
	p, err := vm.slot(addr)
	if err == nil {
		*p = val
	}
	return err
}

func (vm *VM) load(addr int16) (int16, error) {
	p, err := vm.slot(addr)
	if err != nil {
		return 0, err
	}
	return *p, nil
}

func (vm *VM) pushLoop(src *source.Buffer, pos int) error {
	if len(vm.loops) >= loopLimit {
		return ErrTooManyLoops
	}
	vm.loops = append(vm.loops, loopMark{src, pos})
	return nil
}

// popLoop pops the innermost loop, which must have been opened in src, and
// within the active call; a macro body cannot see its caller's loops.
func (vm *VM) popLoop(src *source.Buffer) (loopMark, error) {
	i := len(vm.loops) - 1
	if i < 0 || vm.loops[i].src != src {
		return loopMark{}, ErrMalformedLoop
	}
	if f := vm.frame(); f != nil && i < f.loops {
		return loopMark{}, ErrMalformedLoop
	}
	mark := vm.loops[i]
	vm.loops = vm.loops[:i]
	return mark, nil
}

// truncLoops discards any loops opened past depth n, as by an early return.
func (vm *VM) truncLoops(n int) {
	if n < len(vm.loops) {
		vm.loops = vm.loops[:n]
	}
}

func (vm *VM) frame() *frame {
	if i := len(vm.frames) - 1; i >= 0 {
		return vm.frames[i]
	}
	return nil
}

func (vm *VM) pushFrame(f *frame) { vm.frames = append(vm.frames, f) }

func (vm *VM) popFrame() *frame {
	i := len(vm.frames) - 1
	f := vm.frames[i]
	vm.frames[i] = nil
	vm.frames = vm.frames[:i]
	return f
}

// run drives src from its current position, one step at a time, until a
// step returns an error; for a normal end that's errProgramEnd.
func (vm *VM) run(src *source.Buffer) error {
	for {
		if err := vm.step(src); err != nil {
			return err
		}
		if vm.ctx != nil {
			if err := vm.ctx.Err(); err != nil {
				return err
			}
		}
	}
}

// nested runs src from pos as a subroutine of the current driver.
func (vm *VM) nested(src *source.Buffer, pos int) error {
	if !vm.nest.inc() {
		return ErrStackOverflow
	}
	defer vm.nest.dec()
	if vm.logfn != nil {
		defer vm.withLogPrefix("  ")()
	}
	if err := src.Seek(pos); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return vm.run(src)
}
