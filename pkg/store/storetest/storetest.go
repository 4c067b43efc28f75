// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.rsed.sh/pkg/store/storedefs"
)

var (
	cmds     = []string{"1,$p", "e a.txt", "3d", "1,2n", "w"}
	starts   = []int{1, 2, 3, 4, 5}
	ends     = []int{2, 3, 4, 5, 6}
	prefixes = []string{"1,", "e", "3", "w"}
)

// TestCmd tests the command history functionality of a Store.
func TestCmd(t *testing.T, store storedefs.Store) {
	startSeq, err := store.NextCmdSeq()
	if startSeq != 1 || err != nil {
		t.Errorf("store.NextCmdSeq() => (%v, %v), want (1, nil)", startSeq, err)
	}

	for i, cmd := range cmds {
		wantSeq := startSeq + i
		seq, err := store.AddCmd(cmd)
		if seq != wantSeq || err != nil {
			t.Errorf("store.AddCmd(%q) => (%v, %v), want (%v, nil)", cmd, seq, err, wantSeq)
		}
	}

	endSeq, err := store.NextCmdSeq()
	wantEndSeq := startSeq + len(cmds)
	if endSeq != wantEndSeq || err != nil {
		t.Errorf("store.NextCmdSeq() => (%v, %v), want (%v, nil)", endSeq, err, wantEndSeq)
	}

	for i, want := range cmds {
		seq := i + startSeq
		text, err := store.Cmd(seq)
		if text != want || err != nil {
			t.Errorf("store.Cmd(%v) => (%v, %v), want (%v, nil)", seq, text, err, want)
		}
	}
	if _, err := store.Cmd(endSeq); err != storedefs.ErrNoMatchingCmd {
		t.Errorf("store.Cmd(%v) => error %v, want ErrNoMatchingCmd", endSeq, err)
	}

	for i, start := range starts {
		got, err := store.CmdsWithSeq(start, ends[i])
		if err != nil {
			t.Errorf("store.CmdsWithSeq(%v, %v) => error %v", start, ends[i], err)
		}
		want := []storedefs.Cmd{{Text: cmds[start-1], Seq: start}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("store.CmdsWithSeq(%v, %v) (-want +got):\n%s", start, ends[i], diff)
		}
	}
	all, err := store.CmdsWithSeq(startSeq, endSeq)
	if len(all) != len(cmds) || err != nil {
		t.Errorf("store.CmdsWithSeq(%v, %v) => (%v, %v), want %v entries",
			startSeq, endSeq, all, err, len(cmds))
	}

	for _, prefix := range prefixes {
		next, err := store.NextCmd(startSeq, prefix)
		if err != nil || !hasPrefix(next.Text, prefix) {
			t.Errorf("store.NextCmd(%v, %q) => (%v, %v)", startSeq, prefix, next, err)
		}
		if prev := firstWithPrefix(prefix); next.Seq != prev {
			t.Errorf("store.NextCmd(%v, %q) found seq %v, want %v", startSeq, prefix, next.Seq, prev)
		}
		last, err := store.PrevCmd(endSeq, prefix)
		if err != nil || last.Seq != lastWithPrefix(prefix) {
			t.Errorf("store.PrevCmd(%v, %q) => (%v, %v), want seq %v",
				endSeq, prefix, last, err, lastWithPrefix(prefix))
		}
	}
	if _, err := store.NextCmd(startSeq, "no such prefix"); err != storedefs.ErrNoMatchingCmd {
		t.Errorf("store.NextCmd with no match => error %v, want ErrNoMatchingCmd", err)
	}
	if _, err := store.PrevCmd(startSeq, ""); err != storedefs.ErrNoMatchingCmd {
		t.Errorf("store.PrevCmd before the first entry => error %v, want ErrNoMatchingCmd", err)
	}

	if err := store.DelCmd(startSeq); err != nil {
		t.Errorf("store.DelCmd(%v) => %v", startSeq, err)
	}
	if _, err := store.Cmd(startSeq); err != storedefs.ErrNoMatchingCmd {
		t.Errorf("store.Cmd(%v) after deletion => error %v, want ErrNoMatchingCmd", startSeq, err)
	}
}

func hasPrefix(s, p string) bool { return len(s) >= len(p) && s[:len(p)] == p }

func firstWithPrefix(p string) int {
	for i, cmd := range cmds {
		if hasPrefix(cmd, p) {
			return i + 1
		}
	}
	return -1
}

func lastWithPrefix(p string) int {
	for i := len(cmds) - 1; i >= 0; i-- {
		if hasPrefix(cmds[i], p) {
			return i + 1
		}
	}
	return -1
}
