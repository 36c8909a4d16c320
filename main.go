package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jcorbin/gomouse/internal/logger"
	"github.com/jcorbin/gomouse/internal/panicerr"
)

func main() {
	ctx := context.Background()

	var (
		timeout time.Duration
		trace   bool
		verbose bool
		noColor bool
		dump    bool
	)
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging of every step")
	flag.BoolVar(&verbose, "v", false, "enable debug logging")
	flag.BoolVar(&noColor, "no-color", false, "disable colored log output")
	flag.BoolVar(&dump, "dump", false, "dump VM state to stderr after running")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %v [options] file.mou\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logger.Init(trace || verbose, noColor)

	if flag.NArg() < 1 {
		fmt.Println("No program file specified.")
		return
	}
	name := flag.Arg(0)

	text, err := os.ReadFile(name)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrNotFound, err)
		log.Error("unable to read program", "err", err)
		os.Exit(ExitCode(err))
	}

	opts := []VMOption{
		WithProgram(name, text),
		WithInput(os.Stdin),
		WithOutput(os.Stdout),
	}
	if trace {
		opts = append(opts, WithLogf(logger.Tracef))
	}
	vm := New(opts...)

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		err = vm.Run(ctx)
		cancel()
	} else {
		err = vm.Run(ctx)
	}
	if cerr := vm.Close(); err == nil {
		err = cerr
	}

	if dump {
		vmDumper{vm: vm, out: os.Stderr}.dump()
	}
	if err != nil {
		log.Error("mouse error", "code", ExitCode(err), "err", err)
		if trace && panicerr.IsPanic(err) {
			log.Debug("panic stack", "stack", panicerr.PanicStack(err))
		}
	}
	os.Exit(ExitCode(err))
}
