// Package buffer implements the line store edited by rsed.
//
// Line numbers used by this package are 1-based and ranges are inclusive,
// matching the addresses users type.
package buffer

import (
	"bufio"
	"io"
	"strings"
)

// Buffer is an ordered sequence of text lines. The zero value is an empty
// buffer ready to use.
type Buffer struct {
	lines []string
}

// New returns an empty Buffer.
func New() *Buffer { return &Buffer{} }

// FromLines returns a Buffer holding a copy of the given lines.
func FromLines(lines ...string) *Buffer {
	return &Buffer{append([]string(nil), lines...)}
}

// Read reads newline-delimited text from r into a new Buffer. A trailing
// newline does not start another line, and "\r\n" line endings are kept
// verbatim minus the "\n".
func Read(r io.Reader) (*Buffer, error) {
	b := New()
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			b.AddLine(strings.TrimSuffix(line, "\n"))
		}
		if err == io.EOF {
			return b, nil
		} else if err != nil {
			return nil, err
		}
	}
}

// WriteTo writes every line of the buffer to w, each terminated by "\n". It
// implements io.WriterTo.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, line := range b.lines {
		m, err := bw.WriteString(line)
		n += int64(m)
		if err != nil {
			return n, err
		}
		err = bw.WriteByte('\n')
		if err != nil {
			return n, err
		}
		n++
	}
	return n, bw.Flush()
}

// Len returns the number of lines.
func (b *Buffer) Len() int { return len(b.lines) }

// AddLine appends a line to the end of the buffer.
func (b *Buffer) AddLine(s string) { b.lines = append(b.lines, s) }

// Line returns line i. It panics if i is out of bounds.
func (b *Buffer) Line(i int) string { return b.lines[i-1] }

// Lines returns a copy of lines start through end. It panics if the range is
// out of bounds.
func (b *Buffer) Lines(start, end int) []string {
	return append([]string(nil), b.lines[start-1:end]...)
}

// All returns a copy of all lines.
func (b *Buffer) All() []string {
	return append([]string(nil), b.lines...)
}

// Insert inserts lines so that the first of them becomes line at. The valid
// values of at are 1 through Len()+1; other values cause a panic.
func (b *Buffer) Insert(at int, lines []string) {
	if len(lines) == 0 {
		return
	}
	i := at - 1
	newLines := make([]string, 0, len(b.lines)+len(lines))
	newLines = append(newLines, b.lines[:i]...)
	newLines = append(newLines, lines...)
	b.lines = append(newLines, b.lines[i:]...)
}

// InsertBuffer is like Insert, taking the lines from another buffer.
func (b *Buffer) InsertBuffer(at int, other *Buffer) {
	b.Insert(at, other.lines)
}

// Delete removes lines start through end. It panics if the range is out of
// bounds.
func (b *Buffer) Delete(start, end int) {
	b.lines = append(b.lines[:start-1], b.lines[end:]...)
}

// IsOutOfBounds reports whether i does not name an existing line.
func (b *Buffer) IsOutOfBounds(i int) bool {
	return i < 1 || i > len(b.lines)
}

// IsRangeOutOfBounds reports whether either end of the range does not name an
// existing line. It does not check the order of the ends.
func (b *Buffer) IsRangeOutOfBounds(start, end int) bool {
	return b.IsOutOfBounds(start) || b.IsOutOfBounds(end)
}
