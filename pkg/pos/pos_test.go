package pos

import (
	"testing"

	"src.rsed.sh/pkg/tt"
)

func TestResolve(t *testing.T) {
	tt.Test(t, tt.Fn("Resolve", Resolve), tt.Table{
		tt.Args(Line(1), 3, 10).Rets(1),
		tt.Args(Line(10), 3, 10).Rets(10),
		// Out of bounds lines are not checked.
		tt.Args(Line(42), 3, 10).Rets(42),
		tt.Args(Current, 3, 10).Rets(3),
		tt.Args(Current, 1, 0).Rets(1),
		tt.Args(Last, 3, 10).Rets(10),
		tt.Args(Last, 3, 0).Rets(0),
	})
}

func TestResolve_LineIsIdentity(t *testing.T) {
	const storeLen = 20
	for n := 1; n <= storeLen; n++ {
		for cursor := 1; cursor <= storeLen+1; cursor++ {
			if got := Resolve(Line(n), cursor, storeLen); got != n {
				t.Errorf("Resolve(Line(%d), %d, %d) = %d", n, cursor, storeLen, got)
			}
		}
	}
}

func TestResolve_SymbolicPositions(t *testing.T) {
	for cursor := 1; cursor < 10; cursor++ {
		for storeLen := 0; storeLen < 10; storeLen++ {
			if got := Resolve(Current, cursor, storeLen); got != cursor {
				t.Errorf("Resolve(Current, %d, %d) = %d", cursor, storeLen, got)
			}
			if got := Resolve(Last, cursor, storeLen); got != storeLen {
				t.Errorf("Resolve(Last, %d, %d) = %d", cursor, storeLen, got)
			}
		}
	}
}

func TestResolveRange(t *testing.T) {
	tt.Test(t, tt.Fn("ResolveRange", ResolveRange), tt.Table{
		tt.Args(CurrentLine(), 4, 9).Rets(Resolved{4, 4}),
		tt.Args(WholeBuffer(), 4, 9).Rets(Resolved{1, 9}),
		tt.Args(Range{Current, Last}, 4, 9).Rets(Resolved{4, 9}),
		// Never reordered.
		tt.Args(Range{Line(3), Line(1)}, 4, 9).Rets(Resolved{3, 1}),
		tt.Args(Range{Last, Current}, 4, 9).Rets(Resolved{9, 4}),
	})
}

func TestResolveRange_Idempotent(t *testing.T) {
	r := Range{Current, Last}
	first := ResolveRange(r, 2, 7)
	second := ResolveRange(r, 2, 7)
	if first != second {
		t.Errorf("resolving twice gave %v and %v", first, second)
	}
}

type fakeConverter struct{ cursor, len int }

func (c fakeConverter) Cursor() int { return c.cursor }
func (c fakeConverter) Len() int    { return c.len }

func TestResolveWith(t *testing.T) {
	got := ResolveWith(fakeConverter{2, 5}, Range{Current, Last})
	if got != (Resolved{2, 5}) {
		t.Errorf("got %v, want 2,5", got)
	}
}

func TestResolved(t *testing.T) {
	tt.Test(t, tt.Fn("Resolved.Reversed", Resolved.Reversed), tt.Table{
		tt.Args(Resolved{1, 1}).Rets(false),
		tt.Args(Resolved{1, 2}).Rets(false),
		tt.Args(Resolved{2, 1}).Rets(true),
	})
	tt.Test(t, tt.Fn("Resolved.Len", Resolved.Len), tt.Table{
		tt.Args(Resolved{1, 1}).Rets(1),
		tt.Args(Resolved{2, 5}).Rets(4),
		tt.Args(Resolved{5, 2}).Rets(0),
	})
}

func TestString(t *testing.T) {
	tt.Test(t, tt.Fn("Range.String", Range.String), tt.Table{
		tt.Args(CurrentLine()).Rets("."),
		tt.Args(WholeBuffer()).Rets("1,$"),
		tt.Args(Single(Line(7))).Rets("7"),
		tt.Args(Range{Current, Line(3)}).Rets(".,3"),
	})
}
