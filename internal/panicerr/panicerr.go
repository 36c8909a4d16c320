// Package panicerr runs a function so that a panic, or runtime.Goexit, is
// returned as an error rather than tearing down the process.
package panicerr

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Recover runs f on its own goroutine, blocking until it is done, so f may
// use state owned by the caller. A panic is returned as an error carrying the
// panic stack; a Goexit is returned as a plain error naming the runner.
func Recover(name string, f func() error) (err error) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		returned := false
		defer func() {
			if val := recover(); val != nil {
				err = panicError{name, val, debug.Stack()}
			} else if !returned {
				err = fmt.Errorf("%v called runtime.Goexit", label(name))
			}
		}()
		err = f()
		returned = true
	}()
	<-done
	return err
}

func label(name string) string {
	if name == "" {
		return "function"
	}
	return name
}

type panicError struct {
	name  string
	value interface{}
	stack []byte
}

func (pe panicError) Error() string {
	return fmt.Sprintf("%v paniced: %v", label(pe.name), pe.value)
}

// Format adds the panic stack under %+v.
func (pe panicError) Format(f fmt.State, c rune) {
	fmt.Fprint(f, pe.Error())
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "\nPanic stack: %s", pe.stack)
	}
}

func (pe panicError) Unwrap() error {
	err, _ := pe.value.(error)
	return err
}

// IsPanic reports whether err is, or wraps, a recovered panic.
func IsPanic(err error) bool {
	var pe panicError
	return errors.As(err, &pe)
}

// PanicStack returns the stack trace of a recovered panic, or "".
func PanicStack(err error) string {
	var pe panicError
	if errors.As(err, &pe) {
		return string(pe.stack)
	}
	return ""
}
