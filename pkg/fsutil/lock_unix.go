//go:build unix

package fsutil

import (
	"os"

	"golang.org/x/sys/unix"
)

// The target stays open and locked while the temporary file is renamed over
// it, so that writers waiting for the lock are serialized.
const renameWhileOpen = true

func lock(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_EX)
}

func unlock(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_UN)
}
