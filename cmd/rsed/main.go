// Rsed is a line-oriented text editor in the tradition of ed. It reads
// commands from stdin, one per line, and applies them to a buffer holding the
// lines of a file.
package main

import (
	"os"

	"src.rsed.sh/pkg/buildinfo"
	"src.rsed.sh/pkg/edprog"
	"src.rsed.sh/pkg/histprog"
	"src.rsed.sh/pkg/prog"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(
			&buildinfo.Program{}, &histprog.Program{}, &edprog.Program{})))
}
