package main

import (
	"errors"
	"fmt"

	"github.com/jcorbin/gomouse/internal/runeio"
	"github.com/jcorbin/gomouse/internal/source"
)

// Error is a fatal interpreter condition. Its value doubles as the process
// exit code; 0 is reserved for a normal program end, and 1 for faults
// recovered from the Go runtime, like division by zero.
type Error int

// The error kinds, in exit code order.
const (
	ErrInternal Error = iota + 2
	ErrEOF
	ErrIO
	ErrNotFound
	ErrStackOverflow
	ErrStackUnderflow
	ErrNumTooLarge
	ErrTooManyIfs
	ErrTooManyLoops
	ErrMalformedLoop
	ErrInvalidVar
	ErrStringTooLong
	ErrInvalidChar
	ErrMalformedCall
	ErrMalformedMacro
	ErrMacroTooLong
	ErrNotInMacro
)

var errorText = [...]string{
	ErrInternal:       "internal interpreter error",
	ErrEOF:            "unexpected end of file",
	ErrIO:             "i/o error",
	ErrNotFound:       "program file not found",
	ErrStackOverflow:  "stack overflow",
	ErrStackUnderflow: "stack underflow",
	ErrNumTooLarge:    "numeric constant too large",
	ErrTooManyIfs:     "too many nested conditionals (>255)",
	ErrTooManyLoops:   "too many nested loops (>255)",
	ErrMalformedLoop:  "malformed loop (end without beginning)",
	ErrInvalidVar:     "non-existent variable",
	ErrStringTooLong:  "string literal too long (>255 chars)",
	ErrInvalidChar:    "invalid character",
	ErrMalformedCall:  "call to undefined macro or with wrong number of parameters",
	ErrMalformedMacro: "incomplete or invalid macro",
	ErrMacroTooLong:   "macro too long (>=65535 chars)",
	ErrNotInMacro:     "local variable or parameter referenced outside of a macro call",
}

func (err Error) Error() string {
	if i := int(err); i >= 0 && i < len(errorText) && errorText[i] != "" {
		return errorText[i]
	}
	return fmt.Sprintf("mouse error %d", int(err))
}

// errProgramEnd is the normal termination of a stream; nested drivers fold it
// into success for their caller.
var errProgramEnd = errors.New("program end")

// atError locates an error at the token that produced it.
type atError struct {
	error
	loc source.Location
	tok byte
}

func (err atError) Error() string {
	return fmt.Sprintf("%v: %v at %v", err.loc, err.error, runeio.Name(err.tok))
}

func (err atError) Unwrap() error { return err.error }

// errorAt locates err at pos within src, unless it already carries a location
// from a nested stream.
func errorAt(src *source.Buffer, pos int, err error) error {
	var at atError
	if err == nil || err == errProgramEnd || errors.As(err, &at) {
		return err
	}
	at.error = err
	at.loc = src.Location(pos)
	if b := src.Slice(pos, pos+1); len(b) > 0 {
		at.tok = b[0]
	}
	return at
}

// paramError reports a parameter evaluation that did not reach its end; it
// is a malformed call, while still unwrapping to its cause.
type paramError struct {
	name  byte
	n     int
	cause error
}

func (err paramError) Error() string {
	return fmt.Sprintf("%v: parameter %v%% of #%c: %v", ErrMalformedCall, err.n, err.name, err.cause)
}

func (err paramError) Unwrap() []error { return []error{ErrMalformedCall, err.cause} }

// ExitCode maps an error returned by VM.Run to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var kind Error
	if errors.As(err, &kind) {
		return int(kind)
	}
	return 1
}
