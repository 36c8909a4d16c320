package main

import (
	"bytes"
	"io"
	"strconv"

	"github.com/jcorbin/gomouse/internal/runeio"
	"github.com/jcorbin/gomouse/internal/source"
)

// step reads one token from src and executes it. It returns nil to continue
// with the token at src's cursor, errProgramEnd when src is done, or an error
// located at the token.
func (vm *VM) step(src *source.Buffer) error {
	at := src.Pos()
	c, err := src.ReadByte()
	if err != nil {
		return errorAt(src, at, readError(err))
	}
	if vm.logfn != nil && c != ' ' && c != '\n' {
		vm.logf("%v @%v s:%v", runeio.Name(c), src.Location(at), vm.stack)
	}
	return errorAt(src, at, vm.exec(src, at, c))
}

func (vm *VM) exec(src *source.Buffer, at int, c byte) error {
	switch {
	case isUpper(c):
		return vm.push(int16(c - 'A'))

	case isLower(c):
		f := vm.frame()
		if f == nil {
			return ErrNotInMacro
		}
		i := bytes.IndexByte(f.macro.locals, c)
		if i < 0 {
			return ErrInvalidVar
		}
		return vm.push(int16(numGlobals + i))

	case isDigit(c):
		if c != '0' {
			if next, err := src.PeekByte(); err == nil && next == '%' {
				src.ReadByte()
				return vm.param(int(c - '0'))
			}
		}
		if err := src.Seek(at); err != nil {
			return err
		}
		val, _, err := parseNumber(src)
		if err != nil {
			return err
		}
		return vm.push(val)
	}

	switch c {
	case ' ', '\n':
		return nil

	case '$':
		return errProgramEnd

	case '@':
		// return from a macro, or end a parameter evaluation
		if vm.nest.n > 0 {
			return errProgramEnd
		}
		return nil

	case '#':
		return vm.call(src)

	case '%':
		return ErrMalformedMacro

	case ',', ';', '{', '}':
		return nil

	case '+', '-', '*', '/', '\\':
		a, b, err := vm.pop2()
		if err != nil {
			return err
		}
		switch c {
		case '+':
			return vm.push(a + b)
		case '-':
			return vm.push(a - b)
		case '*':
			return vm.push(a * b)
		case '/':
			return vm.push(a / b)
		default:
			return vm.push(a % b)
		}

	case '<', '=', '>':
		a, b, err := vm.pop2()
		if err != nil {
			return err
		}
		switch c {
		case '<':
			return vm.push(boolInt(a < b))
		case '=':
			return vm.push(boolInt(a == b))
		default:
			return vm.push(boolInt(a > b))
		}

	case ':':
		addr, val, err := vm.popAddr()
		if err != nil {
			return err
		}
		return vm.stor(addr, val)

	case '.':
		addr, err := vm.pop()
		if err != nil {
			return err
		}
		val, err := vm.load(addr)
		if err != nil {
			return err
		}
		return vm.push(val)

	case '?':
		if quoted(src) {
			b, err := vm.readByte()
			if err != nil {
				return err
			}
			return vm.push(int16(b))
		}
		val, err := vm.readNumber()
		if err != nil {
			return err
		}
		return vm.push(val)

	case '!':
		val, err := vm.pop()
		if err != nil {
			return err
		}
		if quoted(src) {
			return vm.write([]byte{byte(val)})
		}
		var buf [8]byte
		return vm.write(strconv.AppendInt(buf[:0], int64(val), 10))

	case '\'':
		b, err := src.ReadByte()
		if err != nil {
			return readError(err)
		}
		return vm.push(int16(b))

	case '"':
		return vm.printString(src)

	case '[':
		val, err := vm.pop()
		if err != nil || val != 0 {
			return err
		}
		return skipMatching(src, '[', ']', ErrTooManyIfs)

	case ']':
		return nil

	case '(':
		return vm.pushLoop(src, at)

	case ')':
		mark, err := vm.popLoop(src)
		if err != nil {
			return err
		}
		return src.Seek(mark.pos)

	case '^':
		val, err := vm.pop()
		if err != nil || val != 0 {
			return err
		}
		if _, err := vm.popLoop(src); err != nil {
			return err
		}
		return skipMatching(src, '(', ')', ErrTooManyLoops)

	case '~':
		for {
			b, err := src.ReadByte()
			if err != nil {
				return readError(err)
			}
			if b == '\n' {
				return nil
			}
		}
	}

	return ErrInvalidChar
}

// popAddr pops a variable address, and then the value to store there.
func (vm *VM) popAddr() (addr, val int16, err error) {
	if addr, err = vm.pop(); err == nil {
		val, err = vm.pop()
	}
	return addr, val, err
}

// quoted consumes a ' following a token, reporting whether there was one.
func quoted(src *source.Buffer) bool {
	if b, err := src.PeekByte(); err == nil && b == '\'' {
		src.ReadByte()
		return true
	}
	return false
}

// printString prints a string literal just opened in src; '!' within it
// stands for a newline.
func (vm *VM) printString(src *source.Buffer) error {
	var buf [maxString]byte
	n := 0
	for {
		b, err := src.ReadByte()
		if err != nil {
			return readError(err)
		}
		if b == '"' {
			break
		}
		if b == '!' {
			b = '\n'
		}
		if n >= len(buf) {
			return ErrStringTooLong
		}
		buf[n] = b
		n++
	}
	return vm.write(buf[:n])
}

// parseNumber reads an unsigned decimal literal of at most maxDigits digits,
// leaving the first non-digit unread. Values past 32767 wrap negative.
func parseNumber(r io.ByteScanner) (val int16, digits int, err error) {
	var n int
	for ; digits < maxDigits; digits++ {
		b, err := r.ReadByte()
		if err == io.EOF {
			break
		} else if err != nil {
			return 0, digits, readError(err)
		}
		if !isDigit(b) {
			if err := r.UnreadByte(); err != nil {
				return 0, digits, readError(err)
			}
			break
		}
		n = 10*n + int(b-'0')
	}
	if n > maxNumber {
		return 0, digits, ErrNumTooLarge
	}
	return int16(uint16(n)), digits, nil
}

func boolInt(b bool) int16 {
	if b {
		return 1
	}
	return 0
}
