// Package diag contains the error type for problems that can be pinned to a
// part of a command line.
package diag

import (
	"strings"
)

// Error represents an error with the command line it was found in and the
// range of the offending text.
type Error struct {
	Type    string
	Message string
	Source  string
	Ranging
}

// NewError creates a new Error.
func NewError(typ, msg, source string, r Ranger) *Error {
	return &Error{typ, msg, source, r.Range()}
}

// Error returns a plain text representation of the error, without the source.
func (e *Error) Error() string {
	return e.Type + ": " + e.Message
}

// Show shows the error, followed by the source with the offending part
// marked by carets on the next line. A zero-width range gets one caret.
func (e *Error) Show(indent string) string {
	var sb strings.Builder
	sb.WriteString(e.Error())
	if e.From < 0 || e.To > len(e.Source) || e.From > e.To {
		return sb.String()
	}
	sb.WriteString("\n" + indent + "  " + e.Source)
	sb.WriteString("\n" + indent + "  " + strings.Repeat(" ", e.From))
	sb.WriteString(strings.Repeat("^", max(e.To-e.From, 1)))
	return sb.String()
}
