package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"src.rsed.sh/pkg/must"
)

type cleanuper struct{ fns []func() }

func (c *cleanuper) Cleanup(fn func()) { c.fns = append(c.fns, fn) }

func (c *cleanuper) runCleanups() {
	for i := len(c.fns) - 1; i >= 0; i-- {
		c.fns[i]()
	}
}

func TestTempDir_DirHasSymlinksResolved(t *testing.T) {
	dir := TempDir(t)
	resolved := must.OK1(filepath.EvalSymlinks(dir))
	if dir != resolved {
		t.Errorf("TempDir returns %q, but it resolves to %q", dir, resolved)
	}
}

func TestTempDir_CleanupRemovesDirRecursively(t *testing.T) {
	c := &cleanuper{}
	dir := TempDir(c)
	must.WriteFile(filepath.Join(dir, "a"), "test")

	c.runCleanups()
	if _, err := os.Stat(dir); err == nil {
		t.Errorf("Dir %q still exists after cleanup", dir)
	}
}

func TestInTempDir(t *testing.T) {
	original := must.OK1(os.Getwd())

	c := &cleanuper{}
	dir := InTempDir(c)
	if wd := must.OK1(os.Getwd()); wd != dir {
		t.Errorf("pwd is now %q, want %q", wd, dir)
	}

	c.runCleanups()
	if wd := must.OK1(os.Getwd()); wd != original {
		t.Errorf("pwd restored to %q, want %q", wd, original)
	}
}

func TestApplyDir(t *testing.T) {
	InTempDir(t)

	ApplyDir(Dir{
		"a": "a content",
		"d": Dir{
			"d1": "d1 content",
		},
	})

	for name, want := range map[string]string{"a": "a content", "d/d1": "d1 content"} {
		if got := must.ReadFileString(name); got != want {
			t.Errorf("file %v has content %q, want %q", name, got, want)
		}
	}
}
