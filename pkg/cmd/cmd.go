// Package cmd defines the commands understood by rsed and parses command
// lines into them.
package cmd

import (
	"fmt"

	"src.rsed.sh/pkg/pos"
)

// Cmd is a parsed command. The set of implementations is closed.
type Cmd interface {
	fmt.Stringer
	isCmd()
}

// PrintStyle controls how printed lines are rendered.
type PrintStyle int

// Possible values of PrintStyle.
const (
	// Line text only, the "p" command.
	Normal PrintStyle = iota
	// Line number, a tab, then the text, the "n" command.
	Numbered
	// Text with "$" marking the end of line, the "l" command.
	ShowLineEndings
)

func (s PrintStyle) String() string {
	switch s {
	case Normal:
		return "normal"
	case Numbered:
		return "numbered"
	case ShowLineEndings:
		return "line-endings"
	default:
		return fmt.Sprintf("PrintStyle(%d)", int(s))
	}
}

// EnterInsert switches to insert mode; lines typed afterwards are inserted
// before the end of Range.
type EnterInsert struct{ Range pos.Range }

// Quit stops the editor.
type Quit struct{}

// Debug shows the internal state of the editor.
type Debug struct{ Range pos.Range }

// Jump moves the cursor to the end of Range and prints the line there.
type Jump struct{ Range pos.Range }

// Delete deletes the lines in Range.
type Delete struct{ Range pos.Range }

// JumpNext moves the cursor to the next line and prints it. It is what an
// empty command line does.
type JumpNext struct{}

// Print prints the lines in Range.
type Print struct {
	Range pos.Range
	Style PrintStyle
}

// PrintLineNumber prints the line number of the end of Range.
type PrintLineNumber struct{ Range pos.Range }

// Edit replaces the buffer with the content of a file.
type Edit struct{ Filename string }

// Write writes the buffer to a file. An empty Filename means the file that
// was last read or written.
type Write struct{ Filename string }

func (EnterInsert) isCmd()     {}
func (Quit) isCmd()            {}
func (Debug) isCmd()           {}
func (Jump) isCmd()            {}
func (Delete) isCmd()          {}
func (JumpNext) isCmd()        {}
func (Print) isCmd()           {}
func (PrintLineNumber) isCmd() {}
func (Edit) isCmd()            {}
func (Write) isCmd()           {}

func (c EnterInsert) String() string { return c.Range.String() + "i" }
func (Quit) String() string          { return "q" }
func (c Debug) String() string       { return c.Range.String() + "?" }
func (c Jump) String() string        { return c.Range.String() }
func (c Delete) String() string      { return c.Range.String() + "d" }
func (JumpNext) String() string      { return "" }

func (c Print) String() string {
	return c.Range.String() + string(styleCodes[c.Style])
}

func (c PrintLineNumber) String() string { return c.Range.String() + "=" }
func (c Edit) String() string            { return "e " + c.Filename }

func (c Write) String() string {
	if c.Filename == "" {
		return "w"
	}
	return "w " + c.Filename
}

var styleCodes = map[PrintStyle]byte{Normal: 'p', Numbered: 'n', ShowLineEndings: 'l'}
