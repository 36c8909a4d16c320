package main

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/jcorbin/gomouse/internal/source"
)

// macro is a subroutine defined by "$X body @" anywhere in the program.
type macro struct {
	name   byte
	body   int    // position just past the "$X" header
	params int    // highest N used as N% in the body
	locals []byte // lowercase names, in order of first use
}

func (m *macro) String() string {
	return fmt.Sprintf("$%c@%v params:%v locals:%q", m.name, m.body, m.params, m.locals)
}

// frame is one active invocation of a macro; it owns its parameter texts and
// local values.
type frame struct {
	macro  *macro
	params [][]byte
	locals []int16
	loops  int // loop depth when the call began
}

// prescan finds every macro definition in the program, rewinding the
// program cursor when done.
//
// A definition starts with '$' followed by an uppercase letter, and runs to
// the first '@' not inside any brackets. Any other '$' is just the program
// end marker, so "$$" and a trailing '$' are fine.
func (vm *VM) prescan() error {
	if err := vm.prog.Seek(0); err != nil {
		return err
	}
	sc := scanner{src: vm.prog}
	for {
		c, err := sc.next()
		if err == io.EOF {
			return vm.prog.Seek(0)
		} else if err != nil {
			return errorAt(vm.prog, vm.prog.Pos(), readError(err))
		}
		if c != '$' {
			continue
		}
		if name, err := vm.prog.PeekByte(); err != nil || !isUpper(name) {
			continue
		}
		name, _ := sc.next()
		m, err := scanMacro(&sc, name)
		if err != nil {
			return errorAt(vm.prog, vm.prog.Pos()-1, err)
		}
		vm.logf("define %v", m)
		vm.macros[name-'A'] = m
	}
}

// scanMacro scans a macro body, from just after its header through its
// terminating '@'.
func scanMacro(sc *scanner, name byte) (*macro, error) {
	m := &macro{name: name, body: sc.src.Pos()}
	ifs := counter{limit: nestLimit}
	loops := counter{limit: nestLimit}
	var last byte
	for size := 0; ; {
		start := sc.src.Pos()
		c, err := sc.next()
		if err != nil {
			return nil, readError(err)
		}

		switch {
		case c == '[':
			if !ifs.inc() {
				return nil, ErrTooManyIfs
			}
		case c == ']':
			if !ifs.dec() {
				return nil, ErrMalformedMacro
			}
		case c == '(':
			if !loops.inc() {
				return nil, ErrTooManyLoops
			}
		case c == ')':
			if !loops.dec() {
				return nil, ErrMalformedMacro
			}
		case c == '%':
			if last < '1' || last > '9' {
				return nil, ErrMalformedMacro
			}
			if n := int(last - '0'); n > m.params {
				m.params = n
			}
		case isLower(c):
			if bytes.IndexByte(m.locals, c) < 0 {
				m.locals = append(m.locals, c)
			}
		}

		// a character literal counts once
		width := sc.src.Pos() - start
		if c == '\'' && width == 2 {
			width = 1
		}
		if size += width; size >= maxMacroLen {
			return nil, ErrMacroTooLong
		}

		if c == '@' && ifs.n == 0 && loops.n == 0 {
			return m, nil
		}
		last = c
	}
}

// readParams captures the parameter texts of a call, from just after its
// macro letter through the closing ';'. Texts are split on ',' and may
// themselves contain calls, whose ';' are balanced against their '#'.
func readParams(src *source.Buffer) ([][]byte, error) {
	sc := scanner{src: src}

	c, err := sc.next()
	for err == nil && (c == ' ' || c == '\n') {
		c, err = sc.next()
	}
	if err != nil {
		return nil, readError(err)
	}
	switch c {
	case ';':
		return nil, nil
	case ',':
	default:
		return nil, ErrMalformedCall
	}

	var params [][]byte
	calls := counter{limit: nestLimit}
	start := src.Pos()
	param := func() {
		text := src.Slice(start, src.Pos()-1)
		params = append(params, append([]byte(nil), text...))
		start = src.Pos()
	}
	for {
		c, err := sc.next()
		if err != nil {
			return nil, readError(err)
		}
		switch c {
		case '#':
			if !calls.inc() {
				return nil, ErrMalformedCall
			}
		case ';':
			if !calls.dec() {
				param()
				return params, nil
			}
		case ',':
			if calls.n == 0 {
				param()
			}
		}
	}
}

// call invokes the macro named after a '#' just read from src.
//
// The macro body runs in a nested driver over the program text, with a new
// frame for its parameters and locals. The body ends with program end,
// usually by its '@'; afterwards the program cursor is put back to just past
// the call, so that the caller resumes where it left off.
func (vm *VM) call(src *source.Buffer) error {
	name, err := src.ReadByte()
	if err != nil {
		return readError(err)
	}
	if !isUpper(name) {
		return ErrMalformedCall
	}
	params, err := readParams(src)
	if err != nil {
		return err
	}

	m := vm.macros[name-'A']
	if m == nil {
		return fmt.Errorf("%w: #%c is not defined", ErrMalformedCall, name)
	}
	if len(params) != m.params {
		return fmt.Errorf("%w: #%c takes %v parameters, given %v", ErrMalformedCall, name, m.params, len(params))
	}

	f := &frame{
		macro:  m,
		params: params,
		locals: make([]int16, len(m.locals)),
		loops:  len(vm.loops),
	}
	ret := vm.prog.Pos()
	vm.logf("call %v %q", m, params)

	vm.pushFrame(f)
	err = vm.nested(vm.prog, m.body)
	vm.popFrame()
	vm.truncLoops(f.loops)

	if err != errProgramEnd {
		return err
	}
	return vm.prog.Seek(ret)
}

// param evaluates parameter n of the active call.
//
// The parameter text is run as a program of its own, in the scope of the
// call's caller: the active frame is set aside while the text runs, so that
// any locals and parameters it references are the caller's.
func (vm *VM) param(n int) error {
	f := vm.frame()
	if f == nil {
		return ErrNotInMacro
	}
	if n < 1 || n > len(f.params) {
		return ErrInvalidVar
	}

	text := make([]byte, 0, len(f.params[n-1])+1)
	text = append(text, f.params[n-1]...)
	text = append(text, '$')
	scratch := source.New("#"+string(f.macro.name)+"/"+strconv.Itoa(n)+"%", text)

	vm.popFrame()
	loops := len(vm.loops)
	err := vm.nested(scratch, 0)
	vm.truncLoops(loops)
	vm.pushFrame(f)

	if err != errProgramEnd {
		return paramError{f.macro.name, n, err}
	}
	return nil
}
