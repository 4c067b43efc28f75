package ed

import (
	"errors"
	"fmt"

	"src.rsed.sh/pkg/cmd"
	"src.rsed.sh/pkg/diag"
	"src.rsed.sh/pkg/pos"
)

// ErrorKind classifies errors from the editor.
type ErrorKind int

// Possible values of ErrorKind.
const (
	Unknown ErrorKind = iota
	ParseError
	IOError
	InvalidRange
	UnimplementedCommand
	UnimplementedAction
)

var kindNames = [...]string{
	Unknown:              "unknown error",
	ParseError:           "parse error",
	IOError:              "I/O error",
	InvalidRange:         "invalid range",
	UnimplementedCommand: "unimplemented command",
	UnimplementedAction:  "unimplemented action",
}

func (k ErrorKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is an error from executing a command.
type Error struct {
	Kind ErrorKind
	// Additional detail; may be empty.
	Message string
	// The offending command, for UnimplementedCommand.
	Cmd cmd.Cmd
	// The offending range, for InvalidRange.
	Range *pos.Resolved
	// The underlying error, for IOError.
	Err error
}

func (e *Error) Error() string {
	s := e.Kind.String()
	switch {
	case e.Cmd != nil:
		s += fmt.Sprintf(" %q", e.Cmd.String())
	case e.Range != nil:
		s += " " + e.Range.String()
	}
	if e.Message != "" {
		s += ": " + e.Message
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

func invalidRange(r pos.Resolved) *Error {
	return &Error{Kind: InvalidRange, Range: &r}
}

func ioError(err error) *Error {
	return &Error{Kind: IOError, Err: err}
}

// KindOf returns the ErrorKind of any error. Parse errors from the cmd
// package are ParseError; errors not from this package are Unknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var de *diag.Error
	if errors.As(err, &de) && de.Type == cmd.ErrorType {
		return ParseError
	}
	return Unknown
}
