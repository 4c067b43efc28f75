// Package ed implements the command interpreter of rsed.
//
// An Editor owns a buffer, a cursor and a mode. In command mode it executes
// parsed commands; in insert mode it collects raw lines, which are inserted
// into the buffer in one go when insertion ends.
package ed

import (
	"fmt"

	"src.rsed.sh/pkg/buffer"
	"src.rsed.sh/pkg/cmd"
	"src.rsed.sh/pkg/fsutil"
	"src.rsed.sh/pkg/logutil"
	"src.rsed.sh/pkg/pos"
	"src.rsed.sh/pkg/ui"
)

var logger = logutil.GetLogger("[ed] ")

// Output is where an Editor writes.
type Output interface {
	Display(ui.DisplayModel)
	Println(args ...any)
}

// Mode is the mode of an Editor. It is either CommandMode or *InsertMode.
type Mode interface{ isMode() }

// CommandMode is the mode in which commands are executed.
type CommandMode struct{}

// InsertMode is the mode in which raw lines are collected. The collected
// lines will be inserted so that the first of them becomes line Anchor.
type InsertMode struct {
	Anchor int
	Lines  *buffer.Buffer
}

func (CommandMode) isMode()  {}
func (*InsertMode) isMode() {}

// Editor is the state of the command interpreter.
type Editor struct {
	buf      *buffer.Buffer
	cursor   int
	mode     Mode
	running  bool
	filename string
	out      Output
}

// New creates an Editor with an empty buffer.
func New(out Output) *Editor {
	return &Editor{buffer.New(), 1, CommandMode{}, true, "", out}
}

// Load creates an Editor with the content of a file.
func Load(out Output, filename string) (*Editor, error) {
	e := New(out)
	err := e.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Cursor returns the current line.
func (e *Editor) Cursor() int { return e.cursor }

// Len returns the number of lines in the buffer.
func (e *Editor) Len() int { return e.buf.Len() }

// Lines returns a copy of all lines in the buffer.
func (e *Editor) Lines() []string { return e.buf.All() }

// Mode returns the current mode.
func (e *Editor) Mode() Mode { return e.mode }

// InputMode returns how input should be routed to the editor.
func (e *Editor) InputMode() ui.Mode {
	if _, ok := e.mode.(*InsertMode); ok {
		return ui.InsertMode
	}
	return ui.CommandMode
}

// Running reports whether the editor still accepts input.
func (e *Editor) Running() bool { return e.running }

// Filename returns the name of the file last read or written.
func (e *Editor) Filename() string { return e.filename }

// SetFilename sets the file name used by a "w" command without argument.
func (e *Editor) SetFilename(name string) { e.filename = name }

// Handle handles one action. Commands must only arrive in command mode, and
// raw lines and the end of insertion only in insert mode; violating that is a
// bug in the caller and causes a panic.
func (e *Editor) Handle(action ui.Action) error {
	switch action := action.(type) {
	case ui.Command:
		if _, ok := e.mode.(CommandMode); !ok {
			panic(fmt.Sprintf("command %q received in insert mode", action.Cmd))
		}
		return e.Exec(action.Cmd)
	case ui.Insert:
		e.insertMode("line").Lines.AddLine(action.Text)
		return nil
	case ui.InsertEnd:
		e.endInsert()
		return nil
	default:
		return &Error{Kind: UnimplementedAction, Message: fmt.Sprintf("%T", action)}
	}
}

func (e *Editor) insertMode(what string) *InsertMode {
	m, ok := e.mode.(*InsertMode)
	if !ok {
		panic("insert " + what + " received in command mode")
	}
	return m
}

// Exec executes a command.
func (e *Editor) Exec(c cmd.Cmd) error {
	logger.Printf("executing %q at line %d of %d", c, e.cursor, e.buf.Len())
	switch c := c.(type) {
	case cmd.Quit:
		e.running = false
		return nil
	case cmd.Delete:
		return e.delete(c.Range)
	case cmd.Print:
		return e.print(c.Range, c.Style)
	case cmd.Jump:
		return e.jump(c.Range)
	case cmd.PrintLineNumber:
		e.out.Println(e.resolve(c.Range).End)
		return nil
	case cmd.JumpNext:
		return e.jumpNext()
	case cmd.Edit:
		return e.ReadFile(c.Filename)
	case cmd.Write:
		return e.write(c.Filename)
	case cmd.EnterInsert:
		return e.enterInsert(c.Range)
	case cmd.Debug:
		e.debug(c.Range)
		return nil
	default:
		return &Error{Kind: UnimplementedCommand, Cmd: c}
	}
}

func (e *Editor) resolve(r pos.Range) pos.Resolved {
	return pos.ResolveWith(e, r)
}

func (e *Editor) enterInsert(r pos.Range) error {
	if _, ok := e.mode.(*InsertMode); ok {
		panic("entering insert mode while already in it")
	}
	anchor := pos.Resolve(r.End, e.cursor, e.buf.Len())
	if anchor == 0 && e.buf.Len() == 0 {
		// "$" of an empty buffer.
		anchor = 1
	}
	if anchor < 1 || anchor > e.buf.Len()+1 {
		return invalidRange(pos.Resolved{Start: anchor, End: anchor})
	}
	e.mode = &InsertMode{anchor, buffer.New()}
	return nil
}

func (e *Editor) endInsert() {
	m := e.insertMode("end")
	e.buf.InsertBuffer(m.Anchor, m.Lines)
	e.cursor = m.Anchor + m.Lines.Len()
	e.mode = CommandMode{}
	logger.Printf("inserted %d lines at %d", m.Lines.Len(), m.Anchor)
}

func (e *Editor) checkRange(r pos.Resolved) error {
	if r.Reversed() || e.buf.IsRangeOutOfBounds(r.Start, r.End) {
		return invalidRange(r)
	}
	return nil
}

func (e *Editor) delete(r pos.Range) error {
	resolved := e.resolve(r)
	if err := e.checkRange(resolved); err != nil {
		return err
	}
	e.buf.Delete(resolved.Start, resolved.End)
	switch {
	case resolved.Start <= e.buf.Len():
		e.cursor = resolved.Start
	case e.buf.Len() > 0:
		e.cursor = e.buf.Len()
	default:
		e.cursor = 1
	}
	return nil
}

func (e *Editor) print(r pos.Range, style cmd.PrintStyle) error {
	resolved := e.resolve(r)
	if err := e.checkRange(resolved); err != nil {
		return err
	}
	e.out.Display(ui.DisplayModel{
		First: resolved.Start,
		Lines: e.buf.Lines(resolved.Start, resolved.End),
		Style: style,
	})
	return nil
}

func (e *Editor) jump(r pos.Range) error {
	target := pos.Resolve(r.End, e.cursor, e.buf.Len())
	if e.buf.IsOutOfBounds(target) {
		return invalidRange(pos.Resolved{Start: target, End: target})
	}
	e.cursor = target
	return e.print(pos.CurrentLine(), cmd.Normal)
}

func (e *Editor) jumpNext() error {
	next := e.cursor + 1
	if e.buf.IsOutOfBounds(next) {
		err := invalidRange(pos.Resolved{Start: next, End: next})
		err.Message = "invalid line"
		return err
	}
	e.cursor = next
	return e.print(pos.CurrentLine(), cmd.Normal)
}

func (e *Editor) debug(r pos.Range) {
	mode := "command"
	if m, ok := e.mode.(*InsertMode); ok {
		mode = fmt.Sprintf("insert at %d (%d lines pending)", m.Anchor, m.Lines.Len())
	}
	filename := "(none)"
	if e.filename != "" {
		filename = fsutil.TildeAbbr(e.filename)
	}
	e.out.Println(fmt.Sprintf("range %s -> %s; cursor %d; lines %d; mode %s; file %s",
		r, e.resolve(r), e.cursor, e.buf.Len(), mode, filename))
}

// ReadFile replaces the buffer with the content of a file and moves to line
// 1. The file name is remembered for "w" commands without argument. On error
// the editor is unchanged.
func (e *Editor) ReadFile(name string) error {
	r, err := fsutil.OpenRead(name)
	if err != nil {
		return ioError(err)
	}
	defer r.Close()
	buf, err := buffer.Read(r)
	if err != nil {
		return ioError(err)
	}
	e.buf, e.cursor, e.filename = buf, 1, name
	logger.Printf("read %d lines from %s", buf.Len(), name)
	return nil
}

func (e *Editor) write(name string) error {
	if name == "" {
		if e.filename == "" {
			return &Error{Kind: UnimplementedAction, Message: "no current file name"}
		}
		name = e.filename
	}
	w, err := fsutil.OpenWrite(name)
	if err != nil {
		return ioError(err)
	}
	if _, err := e.buf.WriteTo(w); err != nil {
		w.Abort()
		return ioError(err)
	}
	if err := w.Close(); err != nil {
		return ioError(err)
	}
	e.filename = name
	logger.Printf("wrote %d lines to %s", e.buf.Len(), name)
	return nil
}
