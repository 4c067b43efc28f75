// Package ui reads actions from the user and displays lines.
//
// It routes input by mode: in command mode each line is parsed as a command;
// in insert mode lines are passed on verbatim until a line consisting of a
// single "." or the end of input.
package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"src.rsed.sh/pkg/cmd"
	"src.rsed.sh/pkg/diag"
	"src.rsed.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[ui] ")

// Mode determines how input lines are routed.
type Mode int

// Possible values of Mode.
const (
	CommandMode Mode = iota
	InsertMode
)

func (m Mode) String() string {
	if m == InsertMode {
		return "insert"
	}
	return "command"
}

// Action is an event produced from input.
type Action interface{ isAction() }

// Command is a parsed command, produced in command mode.
type Command struct{ Cmd cmd.Cmd }

// Insert is one raw line of text, produced in insert mode.
type Insert struct{ Text string }

// InsertEnd signals the end of insertion, produced in insert mode.
type InsertEnd struct{}

func (Command) isAction()   {}
func (Insert) isAction()    {}
func (InsertEnd) isAction() {}

// The line that ends insert mode.
const insertTerminator = "."

// Config keeps the options of a UI.
type Config struct {
	// Written before reading each command. Never written in insert mode.
	Prompt string
	// Whether to show the prompt at all.
	ShowPrompt bool
	// Called with every command line read, before it is parsed.
	OnCommandLine func(line string)
}

// UI reads from an input and writes to an output.
type UI struct {
	in  *bufio.Reader
	out io.Writer
	cfg Config
}

// New creates a new UI.
func New(in io.Reader, out io.Writer, cfg Config) *UI {
	return &UI{bufio.NewReader(in), out, cfg}
}

// ReadAction reads one line of input and converts it into an Action according
// to mode. At the end of input it returns cmd.Quit in command mode and
// InsertEnd in insert mode. Errors returned are either parse errors or errors
// from the input.
func (u *UI) ReadAction(mode Mode) (Action, error) {
	if mode == CommandMode && u.cfg.ShowPrompt {
		io.WriteString(u.out, u.cfg.Prompt)
	}
	line, err := u.in.ReadString('\n')
	if err == io.EOF {
		if line == "" {
			logger.Println("end of input in", mode, "mode")
			if mode == InsertMode {
				return InsertEnd{}, nil
			}
			return Command{cmd.Quit{}}, nil
		}
	} else if err != nil {
		return nil, err
	}
	line = strings.TrimSuffix(line, "\n")

	if mode == InsertMode {
		if line == insertTerminator {
			return InsertEnd{}, nil
		}
		return Insert{line}, nil
	}

	if u.cfg.OnCommandLine != nil {
		u.cfg.OnCommandLine(line)
	}
	c, err := cmd.Parse(line)
	if err != nil {
		return nil, err
	}
	return Command{c}, nil
}

// Display writes the lines of a DisplayModel.
func (u *UI) Display(m DisplayModel) {
	for i, line := range m.Lines {
		switch m.Style {
		case cmd.Numbered:
			fmt.Fprintf(u.out, "%d\t%s\n", m.First+i, line)
		case cmd.ShowLineEndings:
			fmt.Fprintf(u.out, "%s$\n", line)
		default:
			fmt.Fprintln(u.out, line)
		}
	}
}

// Println writes its arguments followed by a newline.
func (u *UI) Println(args ...any) {
	fmt.Fprintln(u.out, args...)
}

// ShowError writes an error as "? message". If verbose is true and the error
// knows how to show itself, the longer form is used.
func (u *UI) ShowError(err error, verbose bool) {
	var shower diag.Shower
	if verbose && errors.As(err, &shower) {
		fmt.Fprintln(u.out, "? "+shower.Show(""))
		return
	}
	fmt.Fprintln(u.out, "? "+err.Error())
}

// DisplayModel is a run of lines to display. First is the line number of the
// first line.
type DisplayModel struct {
	First int
	Lines []string
	Style cmd.PrintStyle
}
