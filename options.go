package main

import (
	"bytes"
	"io"

	"github.com/jcorbin/gomouse/internal/flushio"
	"github.com/jcorbin/gomouse/internal/source"
)

type VMOption interface{ apply(vm *VM) }

// VMOptions combines any number of options into one, applied in order.
func VMOptions(opts ...VMOption) VMOption {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, impl)
		}
	}
	if len(res) == 1 {
		return res[0]
	}
	return res
}

var defaultOptions = VMOptions(
	inputOption{bytes.NewReader(nil)},
	outputOption{io.Discard},
	callLimitOption(defaultCallLimit),
)

type options []VMOption

func (opts options) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) {
	vm.logfn = logfn
}

type programOption struct{ *source.Buffer }
type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type callLimitOption int

func (prog programOption) apply(vm *VM) {
	vm.prog = prog.Buffer
}

func (i inputOption) apply(vm *VM) {
	vm.in = newByteScanner(i.Reader)
}

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.New(o.Writer)
}

func (o teeOption) apply(vm *VM) {
	vm.out = flushio.Tee(vm.out, flushio.New(o.Writer))
}

func (lim callLimitOption) apply(vm *VM) {
	vm.nest.limit = int(lim)
}
