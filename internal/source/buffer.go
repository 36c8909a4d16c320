package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
)

// Location names a line and column in a Buffer.
type Location struct {
	Name string
	Line int
	Col  int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v:%v", loc.Name, loc.Line, loc.Col) }

// ErrSeek is returned by Seek for positions outside of the buffer.
var ErrSeek = errors.New("seek out of range")

// Buffer implements a seekable byte stream over an in-memory text, its cursor
// standing in for a program counter.
type Buffer struct {
	name string
	text []byte
	pos  int

	// lines holds the offset of every newline, indexed on first use
	lines []int
}

// New returns a buffer over text, which is not copied.
func New(name string, text []byte) *Buffer {
	return &Buffer{name: name, text: text}
}

// Name returns the name the buffer was created with.
func (buf *Buffer) Name() string { return buf.name }

// Len returns the length of the underlying text.
func (buf *Buffer) Len() int { return len(buf.text) }

// Pos returns the cursor position of the next byte to be read.
func (buf *Buffer) Pos() int { return buf.pos }

// Slice returns the text between two positions, clamped to the buffer.
func (buf *Buffer) Slice(from, to int) []byte {
	if from < 0 {
		from = 0
	}
	if to > len(buf.text) {
		to = len(buf.text)
	}
	if from >= to {
		return nil
	}
	return buf.text[from:to]
}

// Seek moves the cursor; pos may equal Len, leaving the buffer at end.
func (buf *Buffer) Seek(pos int) error {
	if pos < 0 || pos > len(buf.text) {
		return fmt.Errorf("%w: %v not in [0, %v]", ErrSeek, pos, len(buf.text))
	}
	buf.pos = pos
	return nil
}

// ReadByte reads the byte under the cursor and advances, returning io.EOF at
// the end of the text.
func (buf *Buffer) ReadByte() (byte, error) {
	if buf.pos >= len(buf.text) {
		return 0, io.EOF
	}
	b := buf.text[buf.pos]
	buf.pos++
	return b, nil
}

// UnreadByte steps the cursor back by one.
func (buf *Buffer) UnreadByte() error {
	if buf.pos <= 0 {
		return ErrSeek
	}
	buf.pos--
	return nil
}

// PeekByte returns the byte under the cursor without advancing.
func (buf *Buffer) PeekByte() (byte, error) {
	if buf.pos >= len(buf.text) {
		return 0, io.EOF
	}
	return buf.text[buf.pos], nil
}

// Location computes the line and column of pos, both counted from 1.
func (buf *Buffer) Location(pos int) Location {
	if pos > len(buf.text) {
		pos = len(buf.text)
	}
	if pos < 0 {
		pos = 0
	}
	if buf.lines == nil {
		buf.lines = make([]int, 0, bytes.Count(buf.text, []byte{'\n'}))
		for i, b := range buf.text {
			if b == '\n' {
				buf.lines = append(buf.lines, i)
			}
		}
	}
	// number of newlines before pos
	n := sort.SearchInts(buf.lines, pos)
	loc := Location{Name: buf.name, Line: n + 1, Col: pos + 1}
	if n > 0 {
		loc.Col = pos - buf.lines[n-1]
	}
	return loc
}

func (buf *Buffer) String() string {
	return fmt.Sprintf("%v@%v", buf.name, buf.pos)
}
