// Package flushio provides buffered output that is flushed on demand, as
// when a program is about to wait on input.
package flushio

import (
	"bufio"
	"errors"
	"io"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// New returns w itself if it already flushes, an unbuffered WriteFlusher for
// writers that gain nothing from buffering, and a bufio.Writer otherwise.
func New(w io.Writer) WriteFlusher {
	switch impl := w.(type) {
	case WriteFlusher:
		return impl
	case interface{ Reset() }:
		// bytes.Buffer, strings.Builder, and the like
		return unbuffered{w}
	}
	if w == io.Discard {
		return unbuffered{w}
	}
	return bufio.NewWriter(w)
}

type unbuffered struct{ io.Writer }

func (unbuffered) Flush() error { return nil }

// Tee returns a WriteFlusher that writes to and flushes every non-nil one of
// wfs, flattening any nested tees; it returns nil if there are none.
func Tee(wfs ...WriteFlusher) WriteFlusher {
	var all tee
	for _, wf := range wfs {
		switch impl := wf.(type) {
		case nil:
		case tee:
			all = append(all, impl...)
		default:
			all = append(all, impl)
		}
	}
	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	}
	return all
}

type tee []WriteFlusher

func (t tee) Write(p []byte) (int, error) {
	for _, wf := range t {
		if n, err := wf.Write(p); err != nil {
			return n, err
		} else if n < len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

// Flush flushes all, even after one fails.
func (t tee) Flush() error {
	var errs []error
	for _, wf := range t {
		errs = append(errs, wf.Flush())
	}
	return errors.Join(errs...)
}
