//go:build unix

package fsutil

import (
	"io"
	"os"
	"testing"
	"time"

	"golang.org/x/sys/unix"
	"src.rsed.sh/pkg/must"
	"src.rsed.sh/pkg/testutil"
)

func TestOpenWrite_WaitsForLockBeforeTouchingFile(t *testing.T) {
	testutil.InTempDir(t)
	must.WriteFile("f", "written by holder\n")
	holder := must.OK1(os.OpenFile("f", os.O_RDWR, 0))
	defer holder.Close()
	must.OK(unix.Flock(int(holder.Fd()), unix.LOCK_EX))

	opened := make(chan *File, 1)
	go func() {
		w, err := OpenWrite("f")
		if err != nil {
			t.Errorf("OpenWrite: %v", err)
		}
		opened <- w
	}()

	select {
	case <-opened:
		t.Fatal("OpenWrite returned while the lock was held elsewhere")
	case <-time.After(100 * time.Millisecond):
	}
	if got := must.ReadFileString("f"); got != "written by holder\n" {
		t.Errorf("while the lock is held, file has %q", got)
	}

	must.OK(unix.Flock(int(holder.Fd()), unix.LOCK_UN))
	w := <-opened
	if w == nil {
		return
	}
	io.WriteString(w, "new\n")
	must.OK(w.Close())
	if got := must.ReadFileString("f"); got != "new\n" {
		t.Errorf("after Close, file has %q", got)
	}
}

func TestOpenWrite_KeepsPermission(t *testing.T) {
	testutil.InTempDir(t)
	must.WriteFile("f", "old\n")
	must.OK(os.Chmod("f", 0600))

	w := must.OK1(OpenWrite("f"))
	must.OK(w.Close())
	if perm := must.OK1(os.Stat("f")).Mode().Perm(); perm != 0600 {
		t.Errorf("permission is %o, want 600", perm)
	}
}

func TestOpenWrite_FollowsSymlink(t *testing.T) {
	testutil.InTempDir(t)
	must.WriteFile("real", "old\n")
	must.OK(os.Symlink("real", "link"))

	w := must.OK1(OpenWrite("link"))
	io.WriteString(w, "new\n")
	must.OK(w.Close())
	if got := must.ReadFileString("real"); got != "new\n" {
		t.Errorf("real has %q", got)
	}
	if _, err := os.Readlink("link"); err != nil {
		t.Errorf("link is no longer a symlink: %v", err)
	}
}

func TestOpenWrite_ReadOnlyFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can write to any file")
	}
	testutil.InTempDir(t)
	must.WriteFile("f", "old\n")
	must.OK(os.Chmod("f", 0400))

	if _, err := OpenWrite("f"); !os.IsPermission(err) {
		t.Errorf("got error %v, want a permission error", err)
	}
	checkOnlyFiles(t, "f")
}
