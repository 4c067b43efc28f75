package histprog_test

import (
	"os"
	"testing"

	"src.rsed.sh/pkg/histprog"
	. "src.rsed.sh/pkg/prog/progtest"
	"src.rsed.sh/pkg/store"
	"src.rsed.sh/pkg/testutil"
)

func populate(t *testing.T, dbPath string, lines ...string) {
	t.Helper()
	st, err := store.NewStore(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	for _, line := range lines {
		if _, err := st.AddCmd(line); err != nil {
			t.Fatal(err)
		}
	}
}

func setup(t *testing.T) {
	testutil.InTempDir(t)
	testutil.Setenv(t, "XDG_CONFIG_HOME", "xdg")
	populate(t, "hist.db", "1,2p", "i", "w out.txt", "1d")
	testutil.ApplyDir(testutil.Dir{
		"rc.yaml":    "history: hist.db\n",
		"norc.yaml":  "verbose: true\n",
		"badrc.yaml": "history: [\n",
	})
}

func TestProgram_List(t *testing.T) {
	setup(t)

	Test(t, &histprog.Program{},
		ThatRsed("-history", "-db", "hist.db").
			WritesStdout("1\t1,2p\n2\ti\n3\tw out.txt\n4\t1d\n"),
		ThatRsed("-history", "-db", "hist.db", "-json").
			WritesStdout(`[{"seq":1,"text":"1,2p"},{"seq":2,"text":"i"},{"seq":3,"text":"w out.txt"},{"seq":4,"text":"1d"}]` + "\n"),
		ThatRsed("-history", "-rc", "rc.yaml").
			WritesStdout("1\t1,2p\n2\ti\n3\tw out.txt\n4\t1d\n"),

		ThatRsed("-history", "-db", "hist.db", "-prefix", "1").
			WritesStdout("1\t1,2p\n4\t1d\n"),
		ThatRsed("-history", "-db", "hist.db", "-prefix", "x").DoesNothing(),
		ThatRsed("-history", "-db", "hist.db", "-reverse").
			WritesStdout("4\t1d\n3\tw out.txt\n2\ti\n1\t1,2p\n"),
		ThatRsed("-history", "-db", "hist.db", "-reverse", "-prefix", "1").
			WritesStdout("4\t1d\n1\t1,2p\n"),

		ThatRsed("-history", "-db", "missing.db").DoesNothing(),
		ThatRsed("-history", "-db", "missing.db", "-json").WritesStdout("[]\n"),
	)

	if _, err := os.Stat("missing.db"); !os.IsNotExist(err) {
		t.Errorf("listing created missing.db")
	}
}

func TestProgram_Delete(t *testing.T) {
	setup(t)

	Test(t, &histprog.Program{},
		ThatRsed("-delete", "2", "-db", "hist.db").DoesNothing(),
		ThatRsed("-history", "-db", "hist.db").
			WritesStdout("1\t1,2p\n3\tw out.txt\n4\t1d\n"),
		ThatRsed("-delete", "2", "-db", "hist.db").
			ExitsWith(2).
			WritesStderr("no history entry 2\n"),
		ThatRsed("-delete", "1", "-db", "missing.db").
			ExitsWith(2).
			WritesStderrContaining("cannot open history database: "),
	)

	if _, err := os.Stat("missing.db"); !os.IsNotExist(err) {
		t.Errorf("-delete created missing.db")
	}
}

func TestProgram_Errors(t *testing.T) {
	setup(t)

	Test(t, &histprog.Program{},
		ThatRsed("-history").
			ExitsWith(2).
			WritesStderr("no history database; use -db or set history in the rc file\n"),
		ThatRsed("-history", "-rc", "norc.yaml").
			ExitsWith(2).
			WritesStderrContaining("no history database"),
		ThatRsed("-history", "-rc", "badrc.yaml").
			ExitsWith(2).
			WritesStderrContaining("badrc.yaml: "),
		ThatRsed("-history", "-db", "hist.db", "file").
			ExitsWith(2).
			WritesStderrContaining("-history and -delete take no arguments\nUsage:"),
		ThatRsed("-history", "-delete", "1", "-db", "hist.db").
			ExitsWith(2).
			WritesStderrContaining("cannot be used together"),
		ThatRsed("-delete", "-1", "-db", "hist.db").
			ExitsWith(2).
			WritesStderrContaining("-delete needs a positive sequence number"),
		ThatRsed("-prefix", "1").
			ExitsWith(2).
			WritesStderrContaining("-prefix and -reverse require -history"),

		ThatRsed().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}
