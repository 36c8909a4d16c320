package main

import (
	"fmt"
	"io"

	"github.com/jcorbin/gomouse/internal/source"
)

// counter is a bounded nesting depth: inc fails rather than exceeding limit,
// and dec fails rather than going below zero.
type counter struct {
	n     int
	limit int
}

func (c *counter) inc() bool {
	if c.n >= c.limit {
		return false
	}
	c.n++
	return true
}

func (c *counter) dec() bool {
	if c.n <= 0 {
		return false
	}
	c.n--
	return true
}

// scanner reads structural tokens from a source without executing them.
// Character literals, strings, and comments are consumed whole, so that a
// bracket inside one is never counted. The same scanner serves the macro
// pre-scan, call parameter capture, and run time bracket matching, so that
// all of them agree on where a construct ends.
type scanner struct {
	src  *source.Buffer
	prev byte
}

// next returns the first byte of the next token.
func (sc *scanner) next() (byte, error) {
	c, err := sc.src.ReadByte()
	if err != nil {
		return 0, err
	}
	prev := sc.prev
	sc.prev = c
	switch c {
	case '\'':
		// !' and ?' are the character forms of output and input
		if prev == '!' || prev == '?' {
			break
		}
		if _, err := sc.src.ReadByte(); err != nil {
			return 0, err
		}
		sc.prev = 0
	case '"':
		if err := sc.skipThrough('"'); err != nil {
			return 0, err
		}
		sc.prev = 0
	case '~':
		if err := sc.skipThrough('\n'); err != nil {
			return 0, err
		}
		sc.prev = '\n'
	}
	return c, nil
}

func (sc *scanner) skipThrough(end byte) error {
	for {
		c, err := sc.src.ReadByte()
		if err != nil {
			return err
		}
		if c == end {
			return nil
		}
	}
}

// skipMatching advances src past the close byte that balances an open byte
// already consumed.
func skipMatching(src *source.Buffer, open, close byte, tooDeep Error) error {
	sc := scanner{src: src}
	depth := counter{n: 1, limit: nestLimit}
	for depth.n > 0 {
		c, err := sc.next()
		if err != nil {
			return readError(err)
		}
		switch c {
		case open:
			if !depth.inc() {
				return tooDeep
			}
		case close:
			depth.dec()
		}
	}
	return nil
}

// readError translates the end of a stream to ErrEOF, and others to ErrIO.
func readError(err error) error {
	switch err {
	case nil:
		return nil
	case io.EOF:
		return ErrEOF
	default:
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
}

func isUpper(c byte) bool { return 'A' <= c && c <= 'Z' }
func isLower(c byte) bool { return 'a' <= c && c <= 'z' }
func isDigit(c byte) bool { return '0' <= c && c <= '9' }
