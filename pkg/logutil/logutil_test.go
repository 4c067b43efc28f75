package logutil

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"src.rsed.sh/pkg/must"
	"src.rsed.sh/pkg/testutil"
)

func TestLogger(t *testing.T) {
	logger := GetLogger("foo ")

	r, w := must.Pipe()
	SetOutput(w)
	logger.Printf("out 1")
	w.Close()
	if content := must.ReadAllAndClose(r); !strings.Contains(string(content), "foo out 1") {
		t.Errorf("got %q, want a line with \"foo out 1\"", content)
	}

	logPath := filepath.Join(testutil.TempDir(t), "log")
	if err := SetOutputFile(logPath); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { SetOutput(io.Discard) })
	logger.Printf("out 2")
	if content := string(must.ReadFile(logPath)); !strings.Contains(content, "foo out 2") {
		t.Errorf("got log file %q, want a line with \"foo out 2\"", content)
	}

	SetOutputFile("")
	logger.Printf("out 3")
	if content := string(must.ReadFile(logPath)); strings.Contains(content, "out 3") {
		t.Errorf("log file %q has output written after SetOutputFile(\"\")", content)
	}
}

func TestSetOutputFile_Error(t *testing.T) {
	err := SetOutputFile(filepath.Join(testutil.TempDir(t), "no", "such", "dir"))
	if !os.IsNotExist(err) {
		t.Errorf("got error %v, want a not-exist error", err)
	}
}
