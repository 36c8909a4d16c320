// gen_vm_expects generates a free function for every vmTestCase builder
// method, so that test tables can share builder steps through apply:
//
//	vmTest("name").apply(expectVMOutput("..."))
//
// Usage: go run scripts/gen_vm_expects.go -- vm_test.go vm_expects_test.go
//
// Output is piped through goimports, which must be on PATH.
package main

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"regexp"
	"time"

	"golang.org/x/sync/errgroup"
)

var builderMethod = regexp.MustCompile(`^func \(vmt vmTestCase\) (expect|with)(\w+)\((.+?)\) vmTestCase`)

func main() {
	var timeout time.Duration
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "time limit for generation")
	flag.Parse()

	in, inName, out := openArgs(flag.Args())

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	pr, pw := io.Pipe()
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		defer out.Close()
		fmtCmd := exec.CommandContext(ctx, "goimports")
		fmtCmd.Stdin = pr
		fmtCmd.Stdout = out
		fmtCmd.Stderr = os.Stderr
		if err := fmtCmd.Run(); err != nil {
			return fmt.Errorf("goimports failed: %w", err)
		}
		return nil
	})

	eg.Go(func() (rerr error) {
		defer func() {
			if cerr := in.Close(); rerr == nil {
				rerr = cerr
			}
			pw.CloseWithError(rerr)
		}()
		return generate(ctx, pw, in, inName, flag.Args())
	})

	if err := eg.Wait(); err != nil {
		log.Fatalln(err)
	}
}

func openArgs(args []string) (in io.ReadCloser, inName string, out io.WriteCloser) {
	in, inName, out = os.Stdin, os.Stdin.Name(), os.Stdout
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			log.Fatalf("failed to open %v: %v", args[0], err)
		}
		in, inName = f, args[0]
	}
	if len(args) > 1 {
		f, err := os.Create(args[1])
		if err != nil {
			log.Fatalf("failed to create %v: %v", args[1], err)
		}
		out = f
	}
	return in, inName, out
}

func generate(ctx context.Context, w io.Writer, r io.Reader, name string, args []string) error {
	var buf bytes.Buffer
	buf.WriteString("package main\n\n")
	fmt.Fprintf(&buf, "// @generated from %v\n\n", name)
	if len(args) >= 2 {
		buf.WriteString("//go:generate go run scripts/gen_vm_expects.go --")
		for _, arg := range args {
			buf.WriteByte(' ')
			buf.WriteString(arg)
		}
		buf.WriteString("\n\n")
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if match := builderMethod.FindSubmatch(sc.Bytes()); match != nil {
			writeWrapper(&buf, string(match[1]), string(match[2]), match[3])
		}
		if buf.Len() > 0 {
			if _, err := buf.WriteTo(w); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return sc.Err()
}

// writeWrapper writes a function taking the same parameters as a builder
// method, returning a closure that calls it; each parameter must carry its
// own type.
func writeWrapper(buf *bytes.Buffer, base, what string, params []byte) {
	fmt.Fprintf(buf, "func %vVM%v(%s) func(vmTestCase) vmTestCase {\n", base, what, params)
	buf.WriteString("\treturn func(vmt vmTestCase) vmTestCase {\n")
	fmt.Fprintf(buf, "\t\treturn vmt.%v%v(", base, what)
	for i, param := range bytes.Split(params, []byte(",")) {
		if i > 0 {
			buf.WriteString(", ")
		}
		fields := bytes.Fields(param)
		buf.Write(fields[0])
		if len(fields) > 1 && bytes.HasPrefix(fields[1], []byte("...")) {
			buf.WriteString("...")
		}
	}
	buf.WriteString(")\n")
	buf.WriteString("\t}\n")
	buf.WriteString("}\n\n")
}
