// Package buildinfo contains build information.
//
// Build information should be set during compilation by passing
// -ldflags "-X src.rsed.sh/pkg/buildinfo.Var=value" to "go build" or
// "go get".
package buildinfo

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"src.rsed.sh/pkg/prog"
)

// VersionBase is the version of rsed without the suffix that identifies
// development commits. On development commits, it identifies the next
// release.
const VersionBase = "0.3.0"

// VCSOverride may be set during compilation to "time-commit" (e.g.
// "20220401235958-123456789012") for use in the version string of a
// development build. It is used when the build is made from outside a VCS
// checkout, for example from a source archive.
var VCSOverride string

// BuildInfo contains all the build information.
type BuildInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"goversion"`
}

// Value contains all the build information.
var Value = BuildInfo{
	Version:   devVersion(VersionBase, VCSOverride, debug.ReadBuildInfo),
	GoVersion: runtime.Version(),
}

func devVersion(next, vcsOverride string, f func() (*debug.BuildInfo, bool)) string {
	if vcsOverride != "" {
		return next + "-dev.0." + vcsOverride
	}
	fallback := next + "-dev.unknown"
	bi, ok := f()
	if !ok {
		return fallback
	}
	// If the main module's version is known, use it, but without the "v"
	// prefix. This is the case when rsed is built with
	// "go install src.rsed.sh/cmd/rsed@version".
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		return strings.TrimPrefix(v, "v")
	}
	// If VCS information is known (which is the case when rsed is built from
	// a checkout), use it to build something similar to Go's pseudo version.
	var revision, timeString, modified string
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.time":
			timeString = setting.Value
		case "vcs.modified":
			modified = setting.Value
		}
	}
	if revision == "" || timeString == "" {
		return fallback
	}
	t, err := time.Parse(time.RFC3339Nano, timeString)
	if err != nil {
		return fallback
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	version := next + "-dev.0." + t.UTC().Format("20060102150405") + "-" + revision
	if modified == "true" {
		version += "-dirty"
	}
	return version
}

// Program is the buildinfo subprogram. It handles the -version and
// -buildinfo flags.
type Program struct {
	version, buildinfo bool
	json               *bool
}

// RegisterFlags registers -version and -buildinfo.
func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.version, "version", false, "Output the rsed version and quit")
	fs.BoolVar(&p.buildinfo, "buildinfo", false, "Output information about the rsed build and quit")
	p.json = fs.JSON()
}

// Run runs the subprogram.
func (p *Program) Run(fds [3]*os.File, _ []string) error {
	switch {
	case p.buildinfo:
		if *p.json {
			fmt.Fprintln(fds[1], mustToJSON(Value))
		} else {
			fmt.Fprintln(fds[1], "Version:", Value.Version)
			fmt.Fprintln(fds[1], "Go version:", Value.GoVersion)
		}
	case p.version:
		if *p.json {
			fmt.Fprintln(fds[1], mustToJSON(Value.Version))
		} else {
			fmt.Fprintln(fds[1], Value.Version)
		}
	default:
		return prog.ErrNextProgram
	}
	return nil
}

func mustToJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
