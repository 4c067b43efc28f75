//go:build unix

package sys

import (
	"os"
	"testing"

	"github.com/creack/pty"
	"src.rsed.sh/pkg/must"
	"src.rsed.sh/pkg/testutil"
)

func TestIsATTY(t *testing.T) {
	p, tty, err := pty.Open()
	if err != nil {
		t.Skip("pty not supported:", err)
	}
	defer p.Close()
	defer tty.Close()

	if !IsATTY(tty) {
		t.Errorf("IsATTY(tty) = false")
	}

	r, w := must.Pipe()
	defer r.Close()
	defer w.Close()
	if IsATTY(r) {
		t.Errorf("IsATTY(pipe) = true")
	}

	f := must.OK1(os.Create(testutil.TempDir(t) + "/file"))
	defer f.Close()
	if IsATTY(f) {
		t.Errorf("IsATTY(regular file) = true")
	}
}
