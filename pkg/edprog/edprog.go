// Package edprog implements the default subprogram of rsed, the interactive
// line editor.
package edprog

import (
	"fmt"
	"os"

	"src.rsed.sh/pkg/ed"
	"src.rsed.sh/pkg/logutil"
	"src.rsed.sh/pkg/prog"
	"src.rsed.sh/pkg/rc"
	"src.rsed.sh/pkg/store"
	"src.rsed.sh/pkg/store/storedefs"
	"src.rsed.sh/pkg/sys"
	"src.rsed.sh/pkg/ui"
)

var logger = logutil.GetLogger("[edprog] ")

// DefaultPrompt is the prompt used when none is configured.
const DefaultPrompt = "*"

// Program is the editor subprogram. It always runs.
type Program struct {
	prompt  stringFlag
	verbose bool
	db      *string
	rc      *string
}

// A string flag that remembers whether it was set.
type stringFlag struct {
	value string
	set   bool
}

func (f *stringFlag) String() string { return f.value }

func (f *stringFlag) Set(s string) error {
	f.value, f.set = s, true
	return nil
}

// RegisterFlags registers -p, -verbose and the shared flags it uses.
func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	p.prompt = stringFlag{}
	fs.Var(&p.prompt, "p", "Command prompt; always shown when given")
	fs.BoolVar(&p.verbose, "verbose", false, "Show the offending input of parse errors")
	p.db = fs.DB()
	p.rc = fs.RC()
}

// Run runs the editor on the optional file argument until it quits or input
// ends.
func (p *Program) Run(fds [3]*os.File, args []string) error {
	if len(args) > 1 {
		return prog.BadUsage("at most one file may be given")
	}
	cfg, err := rc.Load(*p.rc)
	if err != nil {
		return err
	}

	uiCfg := ui.Config{Prompt: DefaultPrompt, ShowPrompt: sys.IsATTY(fds[0])}
	switch {
	case p.prompt.set:
		uiCfg.Prompt, uiCfg.ShowPrompt = p.prompt.value, true
	case cfg.Prompt != nil:
		uiCfg.Prompt, uiCfg.ShowPrompt = *cfg.Prompt, true
	}
	verbose := p.verbose || cfg.Verbose

	dbPath := *p.db
	if dbPath == "" {
		dbPath = cfg.History
	}
	if dbPath != "" {
		st, err := store.NewStore(dbPath)
		if err != nil {
			fmt.Fprintln(fds[2], "Warning: cannot open history database:", err)
		} else {
			defer st.Close()
			uiCfg.OnCommandLine = recorder(st)
		}
	}

	u := ui.New(fds[0], fds[1], uiCfg)
	e := ed.New(u)
	if len(args) == 1 {
		if err := e.ReadFile(args[0]); err != nil {
			u.ShowError(err, verbose)
			e.SetFilename(args[0])
		}
	}
	return e.Run(u, func(err error) { u.ShowError(err, verbose) })
}

func recorder(st storedefs.Store) func(string) {
	return func(line string) {
		if _, err := st.AddCmd(line); err != nil {
			logger.Println("failed to add command to history:", err)
		}
	}
}
