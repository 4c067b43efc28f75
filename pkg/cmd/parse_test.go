package cmd

import (
	"errors"
	"testing"

	"src.rsed.sh/pkg/diag"
	"src.rsed.sh/pkg/pos"
	"src.rsed.sh/pkg/tt"
)

var (
	cur  = pos.CurrentLine()
	line = func(n int) pos.Range { return pos.Single(pos.Line(n)) }
	rng  = func(a, b pos.Pos) pos.Range { return pos.Range{Start: a, End: b} }
)

func TestParse(t *testing.T) {
	tt.Test(t, tt.Fn("Parse", Parse), tt.Table{
		tt.Args("").Rets(JumpNext{}, nil),

		// Command codes with the default range.
		tt.Args("d").Rets(Delete{cur}, nil),
		tt.Args("i").Rets(EnterInsert{cur}, nil),
		tt.Args("q").Rets(Quit{}, nil),
		tt.Args("p").Rets(Print{cur, Normal}, nil),
		tt.Args("n").Rets(Print{cur, Numbered}, nil),
		tt.Args("l").Rets(Print{cur, ShowLineEndings}, nil),
		tt.Args("=").Rets(PrintLineNumber{cur}, nil),
		tt.Args("?").Rets(Debug{cur}, nil),
		tt.Args("w").Rets(Write{}, nil),
		tt.Args("w out.txt").Rets(Write{"out.txt"}, nil),
		tt.Args("e in.txt").Rets(Edit{"in.txt"}, nil),

		// Ranges.
		tt.Args("5").Rets(Jump{line(5)}, nil),
		tt.Args(".").Rets(Jump{cur}, nil),
		tt.Args("$").Rets(Jump{pos.Single(pos.Last)}, nil),
		tt.Args("2,4d").Rets(Delete{rng(pos.Line(2), pos.Line(4))}, nil),
		tt.Args(".,$p").Rets(Print{rng(pos.Current, pos.Last), Normal}, nil),
		tt.Args("%n").Rets(Print{pos.WholeBuffer(), Numbered}, nil),
		tt.Args(",p").Rets(Print{pos.WholeBuffer(), Normal}, nil),
		tt.Args("3,p").Rets(Print{line(3), Normal}, nil),
		tt.Args(",3p").Rets(Print{rng(pos.Line(1), pos.Line(3)), Normal}, nil),
		tt.Args("$=").Rets(PrintLineNumber{pos.Single(pos.Last)}, nil),
		tt.Args("0010p").Rets(Print{line(10), Normal}, nil),
		// Reversed ranges are parsed as is; the interpreter rejects them.
		tt.Args("3,1p").Rets(Print{rng(pos.Line(3), pos.Line(1)), Normal}, nil),
	})
}

func TestParse_Errors(t *testing.T) {
	tt.Test(t, tt.Fn("parseErr", parseErr), tt.Table{
		tt.Args("5d extra").Rets("no argument expected", diag.Ranging{From: 2, To: 8}),
		tt.Args("q ").Rets("no argument expected", diag.Ranging{From: 1, To: 2}),
		tt.Args("5 x").Rets("no argument expected", diag.Ranging{From: 1, To: 3}),
		tt.Args("e").Rets("argument expected", diag.Ranging{From: 1, To: 1}),
		tt.Args("e  ").Rets("argument expected", diag.Ranging{From: 3, To: 3}),
		tt.Args("x").Rets("unknown command", diag.Ranging{From: 0, To: 1}),
		tt.Args("1,2Z").Rets("unknown command", diag.Ranging{From: 3, To: 4}),
		tt.Args("pp").Rets("unexpected character", diag.Ranging{From: 1, To: 2}),
		tt.Args("1;2p").Rets("unexpected character", diag.Ranging{From: 1, To: 2}),
		tt.Args("0p").Rets("line numbers start at 1", diag.Ranging{From: 0, To: 1}),
		tt.Args("1,0p").Rets("line numbers start at 1", diag.Ranging{From: 2, To: 3}),
		tt.Args("1.p").Rets("bad address", diag.Ranging{From: 0, To: 2}),
		tt.Args("$$").Rets("bad address", diag.Ranging{From: 0, To: 2}),
		tt.Args("1%p").Rets("bad address", diag.Ranging{From: 1, To: 2}),
		tt.Args("1,2,3p").Rets("too many addresses", diag.Ranging{From: 3, To: 5}),
		tt.Args("99999999999999999999p").Rets("bad address", diag.Ranging{From: 0, To: 20}),
	})
}

func parseErr(src string) (string, diag.Ranging) {
	_, err := Parse(src)
	var e *diag.Error
	if !errors.As(err, &e) {
		return "no diag.Error", diag.Ranging{}
	}
	if e.Type != ErrorType || e.Source != src {
		return "bad Type or Source", diag.Ranging{}
	}
	return e.Message, e.Ranging
}

func TestString(t *testing.T) {
	tt.Test(t, tt.Fn("Cmd.String", Cmd.String), tt.Table{
		tt.Args(JumpNext{}).Rets(""),
		tt.Args(Jump{line(3)}).Rets("3"),
		tt.Args(Delete{rng(pos.Line(1), pos.Last)}).Rets("1,$d"),
		tt.Args(Print{cur, Numbered}).Rets(".n"),
		tt.Args(Print{cur, ShowLineEndings}).Rets(".l"),
		tt.Args(EnterInsert{cur}).Rets(".i"),
		tt.Args(PrintLineNumber{cur}).Rets(".="),
		tt.Args(Write{}).Rets("w"),
		tt.Args(Write{"f"}).Rets("w f"),
		tt.Args(Edit{"f"}).Rets("e f"),
		tt.Args(Quit{}).Rets("q"),
	})
}

func TestString_ParsesBack(t *testing.T) {
	for _, c := range []Cmd{
		Delete{rng(pos.Line(2), pos.Last)},
		Print{rng(pos.Current, pos.Line(4)), ShowLineEndings},
		EnterInsert{line(1)},
		Debug{cur},
		Write{"x"},
	} {
		got, err := Parse(c.String())
		if err != nil || got != c {
			t.Errorf("Parse(%q) -> %v, %v; want %v", c.String(), got, err, c)
		}
	}
}
