package store

import (
	"path/filepath"

	"src.rsed.sh/pkg/must"
	"src.rsed.sh/pkg/testutil"
)

// MustTempStore returns a Store backed by a temporary file. The store is
// closed when the test finishes.
func MustTempStore(c testutil.Cleanuper) DBStore {
	st := must.OK1(NewStore(filepath.Join(testutil.TempDir(c), "db")))
	c.Cleanup(func() { st.Close() })
	return st
}
