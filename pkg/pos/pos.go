// Package pos implements line addresses: their representation before
// resolution, their parsing, and their resolution against the editor's cursor
// and buffer length.
package pos

import (
	"fmt"
	"strconv"
)

// Kind identifies the kind of a Pos.
type Kind int

// Possible values of Kind.
const (
	// A specific line number.
	KindLine Kind = iota
	// The current line, "." in commands.
	KindCurrent
	// The last line, "$" in commands.
	KindLast
)

// Pos is a symbolic reference to one line. Only Line is meaningful for
// KindLine; it is always positive.
type Pos struct {
	Kind Kind
	Line int
}

// Line returns a Pos for line n.
func Line(n int) Pos { return Pos{KindLine, n} }

var (
	// Current refers to the current line.
	Current = Pos{Kind: KindCurrent}
	// Last refers to the last line of the buffer.
	Last = Pos{Kind: KindLast}
)

// String returns the pos as it would be typed in a command.
func (p Pos) String() string {
	switch p.Kind {
	case KindLine:
		return strconv.Itoa(p.Line)
	case KindCurrent:
		return "."
	case KindLast:
		return "$"
	default:
		return fmt.Sprintf("<bad pos kind %d>", int(p.Kind))
	}
}

// Range is an inclusive pair of positions.
type Range struct {
	Start, End Pos
}

// Single returns a Range consisting of only p.
func Single(p Pos) Range { return Range{p, p} }

// CurrentLine returns the default range used when a command has none.
func CurrentLine() Range { return Single(Current) }

// WholeBuffer returns the range "1,$".
func WholeBuffer() Range { return Range{Line(1), Last} }

// String returns the range as it would be typed in a command.
func (r Range) String() string {
	if r.Start == r.End {
		return r.Start.String()
	}
	return r.Start.String() + "," + r.End.String()
}

// Resolved is a range of concrete 1-based line numbers. It is not necessarily
// ordered; see Reversed.
type Resolved struct {
	Start, End int
}

// Reversed reports whether the start of the range is after its end.
func (r Resolved) Reversed() bool { return r.Start > r.End }

// Len returns the number of lines in the range, or 0 if it is reversed.
func (r Resolved) Len() int {
	if r.Reversed() {
		return 0
	}
	return r.End - r.Start + 1
}

func (r Resolved) String() string {
	return fmt.Sprintf("%d,%d", r.Start, r.End)
}

// Resolve converts a Pos into a line number, given the current line and the
// length of the buffer. It never fails; line numbers past the end of the
// buffer are returned as is, and it is up to the caller to check them.
func Resolve(p Pos, cursor, storeLen int) int {
	switch p.Kind {
	case KindCurrent:
		return cursor
	case KindLast:
		return storeLen
	default:
		return p.Line
	}
}

// ResolveRange resolves both ends of a Range. It never reorders them.
func ResolveRange(r Range, cursor, storeLen int) Resolved {
	return Resolved{Resolve(r.Start, cursor, storeLen), Resolve(r.End, cursor, storeLen)}
}

// Converter is implemented by types that keep a cursor and know the length of
// their buffer, and can therefore resolve positions on their own.
type Converter interface {
	Cursor() int
	Len() int
}

// ResolveWith resolves a Range using the state of a Converter.
func ResolveWith(c Converter, r Range) Resolved {
	return ResolveRange(r, c.Cursor(), c.Len())
}
