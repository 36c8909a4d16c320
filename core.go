package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/jcorbin/gomouse/internal/flushio"
)

// ioCore holds the VM's connections to the outside world: a byte-wise input
// stream, a buffered output stream, an optional trace function, and anything
// that needs closing afterwards.
type ioCore struct {
	in  io.ByteScanner
	out flushio.WriteFlusher

	logfn   func(mess string, args ...interface{})
	closers []io.Closer
}

// Close flushes any buffered output and then closes everything the VM was
// given ownership of, in reverse order.
func (ioc *ioCore) Close() (err error) {
	if ioc.out != nil {
		err = ioc.out.Flush()
	}
	for i := len(ioc.closers) - 1; i >= 0; i-- {
		if cerr := ioc.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	ioc.closers = nil
	return err
}

func (ioc *ioCore) withLogPrefix(prefix string) func() {
	logfn := ioc.logfn
	ioc.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		ioc.logfn = logfn
	}
}

func (ioc ioCore) logf(mess string, args ...interface{}) {
	if ioc.logfn != nil {
		ioc.logfn(mess, args...)
	}
}

func (ioc *ioCore) write(p []byte) error {
	if _, err := ioc.out.Write(p); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

func (ioc *ioCore) flush() error {
	if err := ioc.out.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// readByte reads one raw byte of input, after flushing any output that a user
// might need to see first, like a prompt.
func (ioc *ioCore) readByte() (byte, error) {
	if err := ioc.flush(); err != nil {
		return 0, err
	}
	b, err := ioc.in.ReadByte()
	if err != nil {
		return 0, readError(err)
	}
	return b, nil
}

// readNumber reads an unsigned decimal number from input, skipping any
// leading blanks. Input that does not start with a digit reads as 0, and is
// left for the next read.
func (ioc *ioCore) readNumber() (int16, error) {
	b, err := ioc.readByte()
	for err == nil && isBlank(b) {
		b, err = ioc.in.ReadByte()
		err = readError(err)
	}
	if err != nil {
		return 0, err
	}
	if err := ioc.in.UnreadByte(); err != nil {
		return 0, readError(err)
	}
	val, _, err := parseNumber(ioc.in)
	return val, err
}

func isBlank(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

func newByteScanner(r io.Reader) io.ByteScanner {
	if bs, is := r.(io.ByteScanner); is {
		return bs
	}
	return bufio.NewReader(r)
}
