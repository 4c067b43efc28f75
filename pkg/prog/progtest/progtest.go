// Package progtest contains utilities for testing [prog.Program]
// implementations.
package progtest

import (
	"io"
	"os"
	"strings"
	"testing"

	"src.rsed.sh/pkg/must"
	"src.rsed.sh/pkg/prog"
)

// Case is a test case that can be used in [Test].
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exitCode int
	stdout   output
	stderr   output
}

type output struct {
	content string
	partial bool
}

func (o output) String() string {
	if o.partial {
		return "text containing " + quote(o.content)
	}
	return quote(o.content)
}

// ThatRsed returns a new Case with the specified CLI arguments.
//
// The new Case expects the program run to exit with 0, and write nothing to
// stdout or stderr.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that "rsed -bad-flag" exits with 2 reads:
//
//	ThatRsed("-bad-flag").ExitsWith(2)
func ThatRsed(args ...string) Case {
	return Case{args: append([]string{"rsed"}, args...)}
}

// WithStdin returns an altered Case that provides the given input to stdin
// of the program.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns c itself. It is useful to mark tests that otherwise
// don't have any expectations, for example:
//
//	ThatRsed("-log", "log").DoesNothing()
func (c Case) DoesNothing() Case {
	return c
}

// ExitsWith returns an altered Case that requires the program run to return
// with the given exit code.
func (c Case) ExitsWith(code int) Case {
	c.want.exitCode = code
	return c
}

// WritesStdout returns an altered Case that requires the program run to write
// exactly the given text to stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.stdout = output{content: s}
	return c
}

// WritesStdoutContaining returns an altered Case that requires the program
// run to write output to stdout that contains the given text as a substring.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.stdout = output{content: s, partial: true}
	return c
}

// WritesStderr returns an altered Case that requires the program run to write
// exactly the given text to stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.stderr = output{content: s}
	return c
}

// WritesStderrContaining returns an altered Case that requires the program
// run to write output to stderr that contains the given text as a substring.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.stderr = output{content: s, partial: true}
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			exitCode, stdout, stderr := RunWithStdin(p, c.stdin, c.args...)
			if c.want.exitCode != exitCode {
				t.Errorf("got exit code %v, want %v", exitCode, c.want.exitCode)
			}
			if !matchOutput(stdout, c.want.stdout) {
				t.Errorf("got stdout %v, want %v", quote(stdout), c.want.stdout)
			}
			if !matchOutput(stderr, c.want.stderr) {
				t.Errorf("got stderr %v, want %v", quote(stderr), c.want.stderr)
			}
		})
	}
}

// Run runs a [prog.Program] with the given arguments and empty stdin. The
// first argument is the program name. It returns the exit status and the
// output written to stdout and stderr.
func Run(p prog.Program, args ...string) (exit int, stdout, stderr string) {
	return RunWithStdin(p, "", args...)
}

// RunWithStdin is like Run, but feeds stdin to the program.
func RunWithStdin(p prog.Program, stdin string, args ...string) (exit int, stdout, stderr string) {
	r0, w0 := must.Pipe()
	go func() {
		io.WriteString(w0, stdin)
		w0.Close()
	}()
	defer r0.Close()
	return RunWithFile(p, r0, args...)
}

// RunWithFile is like Run, but uses the given file as stdin. It is useful for
// testing programs that behave differently when stdin is a terminal.
func RunWithFile(p prog.Program, stdin *os.File, args ...string) (exit int, stdout, stderr string) {
	r1, w1 := must.Pipe()
	r2, w2 := must.Pipe()
	// Read stdout and stderr concurrently, so that the program won't block
	// when it writes more than the pipe buffer can hold.
	stdoutCh := make(chan string, 1)
	stderrCh := make(chan string, 1)
	go func() { stdoutCh <- string(must.ReadAllAndClose(r1)) }()
	go func() { stderrCh <- string(must.ReadAllAndClose(r2)) }()

	exit = prog.Run([3]*os.File{stdin, w1, w2}, args, p)
	w1.Close()
	w2.Close()
	return exit, <-stdoutCh, <-stderrCh
}

func matchOutput(got string, want output) bool {
	if want.partial {
		return strings.Contains(got, want.content)
	}
	return got == want.content
}

func quote(s string) string {
	if s == "" {
		return "empty"
	}
	return "`" + s + "`"
}
