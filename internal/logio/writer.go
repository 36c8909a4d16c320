// Package logio adapts a printf-style logging function, like testing.T.Logf,
// into an io.Writer.
package logio

import "bytes"

// Writer logs each complete line written to it as one Logf call, after
// Prefix; a trailing partial line is held until more is written, or Close.
type Writer struct {
	Logf   func(mess string, args ...interface{})
	Prefix string

	partial []byte
}

func (lw *Writer) Write(p []byte) (int, error) {
	rest := append(lw.partial, p...)
	for {
		line, more, found := bytes.Cut(rest, []byte{'\n'})
		if !found {
			break
		}
		lw.Logf("%s%s", lw.Prefix, line)
		rest = more
	}
	lw.partial = append(lw.partial[:0], rest...)
	return len(p), nil
}

// Close logs any partial line.
func (lw *Writer) Close() error {
	if len(lw.partial) > 0 {
		lw.Logf("%s%s", lw.Prefix, lw.partial)
		lw.partial = lw.partial[:0]
	}
	return nil
}
