// Package histprog implements the subprogram that lists and edits the command
// history.
package histprog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"src.rsed.sh/pkg/logutil"
	"src.rsed.sh/pkg/prog"
	"src.rsed.sh/pkg/rc"
	"src.rsed.sh/pkg/store"
	"src.rsed.sh/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[histprog] ")

var errNoHistory = errors.New("no history database; use -db or set history in the rc file")

// Program is the history subprogram. It handles the -history and -delete
// flags.
type Program struct {
	history bool
	prefix  string
	reverse bool
	delete  int
	json    *bool
	db      *string
	rc      *string
}

// RegisterFlags registers the history flags and the shared flags they use.
func (p *Program) RegisterFlags(f *prog.FlagSet) {
	f.BoolVar(&p.history, "history", false, "List the command history and quit")
	f.StringVar(&p.prefix, "prefix", "", "With -history, only list commands starting with this")
	f.BoolVar(&p.reverse, "reverse", false, "With -history, list the newest command first")
	f.IntVar(&p.delete, "delete", 0, "Delete the history entry with this sequence number and quit")
	p.json = f.JSON()
	p.db = f.DB()
	p.rc = f.RC()
}

type entry struct {
	Seq  int    `json:"seq"`
	Text string `json:"text"`
}

// Run runs the subprogram.
func (p *Program) Run(fds [3]*os.File, args []string) error {
	if !p.history && p.delete == 0 {
		if p.prefix != "" || p.reverse {
			return prog.BadUsage("-prefix and -reverse require -history")
		}
		return prog.ErrNextProgram
	}
	switch {
	case len(args) > 0:
		return prog.BadUsage("-history and -delete take no arguments")
	case p.history && p.delete != 0:
		return prog.BadUsage("-history and -delete cannot be used together")
	case p.delete < 0:
		return prog.BadUsage("-delete needs a positive sequence number")
	}
	dbPath, err := p.dbPath()
	if err != nil {
		return err
	}
	if p.delete != 0 {
		return deleteCmd(dbPath, p.delete)
	}

	cmds, err := list(dbPath, p.prefix, p.reverse)
	if err != nil {
		return err
	}
	logger.Printf("listing %d entries from %s", len(cmds), dbPath)
	if *p.json {
		entries := make([]entry, len(cmds))
		for i, cmd := range cmds {
			entries[i] = entry{cmd.Seq, cmd.Text}
		}
		return json.NewEncoder(fds[1]).Encode(entries)
	}
	for _, cmd := range cmds {
		fmt.Fprintf(fds[1], "%d\t%s\n", cmd.Seq, cmd.Text)
	}
	return nil
}

func (p *Program) dbPath() (string, error) {
	if *p.db != "" {
		return *p.db, nil
	}
	cfg, err := rc.Load(*p.rc)
	if err != nil {
		return "", err
	}
	if cfg.History == "" {
		return "", errNoHistory
	}
	return cfg.History, nil
}

// Lists the history without creating or modifying the database. A database
// that doesn't exist yet has no history.
func list(dbPath, prefix string, reverse bool) ([]storedefs.Cmd, error) {
	st, err := store.NewReadOnlyStore(dbPath)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Println("no history database at", dbPath)
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("cannot open history database: %w", err)
	}
	defer st.Close()

	upto, err := st.NextCmdSeq()
	if err != nil {
		return nil, err
	}
	switch {
	case reverse:
		return walk(func(seq int) (storedefs.Cmd, error) {
			return st.PrevCmd(seq, prefix)
		}, upto, func(c storedefs.Cmd) int { return c.Seq })
	case prefix != "":
		return walk(func(seq int) (storedefs.Cmd, error) {
			return st.NextCmd(seq, prefix)
		}, 0, func(c storedefs.Cmd) int { return c.Seq + 1 })
	default:
		return st.CmdsWithSeq(0, upto)
	}
}

// Collects the commands found by repeatedly calling find, starting from seq
// and continuing from next(found).
func walk(find func(int) (storedefs.Cmd, error), seq int, next func(storedefs.Cmd) int) ([]storedefs.Cmd, error) {
	var cmds []storedefs.Cmd
	for {
		cmd, err := find(seq)
		if err == storedefs.ErrNoMatchingCmd {
			return cmds, nil
		} else if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
		seq = next(cmd)
	}
}

func deleteCmd(dbPath string, seq int) error {
	// Don't create a database just to delete from it.
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("cannot open history database: %w", err)
	}
	st, err := store.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("cannot open history database: %w", err)
	}
	defer st.Close()
	if _, err := st.Cmd(seq); err == storedefs.ErrNoMatchingCmd {
		return fmt.Errorf("no history entry %d", seq)
	} else if err != nil {
		return err
	}
	logger.Println("deleting history entry", seq)
	return st.DelCmd(seq)
}
