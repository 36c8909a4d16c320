package main

import (
	"fmt"
	"io"
	"strings"
)

// vmDumper writes a human readable snapshot of VM state, for test failures
// and the -dump flag.
type vmDumper struct {
	vm  *VM
	out io.Writer
}

func (dump vmDumper) dump() {
	fmt.Fprintf(dump.out, "# VM Dump\n")
	if prog := dump.vm.prog; prog != nil {
		fmt.Fprintf(dump.out, "  prog: %v\n", prog.Location(prog.Pos()))
	}
	fmt.Fprintf(dump.out, "  stack: %v\n", dump.vm.stack)
	dump.dumpVars()
	if len(dump.vm.loops) > 0 {
		fmt.Fprintf(dump.out, "  loops: %v\n", dump.vm.loops)
	}
	dump.dumpMacros()
	dump.dumpFrames()
}

func (dump vmDumper) dumpVars() {
	var sb strings.Builder
	for i, val := range dump.vm.vars {
		if val != 0 {
			fmt.Fprintf(&sb, " %c=%v", 'A'+i, val)
		}
	}
	if sb.Len() > 0 {
		fmt.Fprintf(dump.out, "  vars:%v\n", sb.String())
	}
}

func (dump vmDumper) dumpMacros() {
	header := false
	for _, m := range dump.vm.macros {
		if m == nil {
			continue
		}
		if !header {
			fmt.Fprintf(dump.out, "# Macros\n")
			header = true
		}
		fmt.Fprintf(dump.out, "  %v", m)
		if prog := dump.vm.prog; prog != nil {
			fmt.Fprintf(dump.out, " %v", prog.Location(m.body))
		}
		fmt.Fprintln(dump.out)
	}
}

func (dump vmDumper) dumpFrames() {
	if len(dump.vm.frames) == 0 {
		return
	}
	fmt.Fprintf(dump.out, "# Call Stack\n")
	for i := len(dump.vm.frames) - 1; i >= 0; i-- {
		f := dump.vm.frames[i]
		var sb strings.Builder
		fmt.Fprintf(&sb, "  #%c", f.macro.name)
		for _, param := range f.params {
			fmt.Fprintf(&sb, ",%s", param)
		}
		sb.WriteByte(';')
		for j, name := range f.macro.locals {
			fmt.Fprintf(&sb, " %c=%v", name, f.locals[j])
		}
		fmt.Fprintln(dump.out, sb.String())
	}
}
