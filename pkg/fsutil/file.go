// Package fsutil contains file system utilities.
package fsutil

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// OpenRead opens a file for reading.
func OpenRead(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

// File is a file being replaced. Data written to it goes to a temporary file
// in the same directory, which replaces the target when Close is called. Until
// then, the target keeps its old content.
type File struct {
	name    string
	target  *os.File
	tmp     *os.File
	created bool
}

// OpenWrite opens a file for replacing its content, creating it if it doesn't
// exist. On systems that support it, the target is locked exclusively until the
// File is closed or aborted; if another process holds the lock, OpenWrite waits
// for it. The target is never modified before the lock is held.
//
// If name is a symbolic link, the file it points to is replaced.
func OpenWrite(name string) (*File, error) {
	if resolved, err := filepath.EvalSymlinks(name); err == nil {
		name = resolved
	}
	created := true
	target, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, fs.ErrExist) {
		created = false
		target, err = os.OpenFile(name, os.O_WRONLY, 0)
	}
	if err != nil {
		return nil, err
	}
	f := &File{name: name, target: target, created: created}
	if err := lock(target); err != nil {
		f.release()
		return nil, &os.PathError{Op: "lock", Path: name, Err: err}
	}
	info, err := target.Stat()
	if err != nil {
		f.release()
		return nil, err
	}
	tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*.tmp")
	if err != nil {
		f.release()
		return nil, err
	}
	f.tmp = tmp
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		f.Abort()
		return nil, err
	}
	return f, nil
}

// Name returns the name of the file being replaced.
func (f *File) Name() string { return f.name }

// Write writes to the temporary file.
func (f *File) Write(p []byte) (int, error) { return f.tmp.Write(p) }

// Close replaces the target with what has been written and releases the lock.
// If it fails, the target is left as it was.
func (f *File) Close() error {
	err := f.tmp.Sync()
	if closeErr := f.tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil && !renameWhileOpen {
		err = f.target.Close()
		f.target = nil
	}
	if err == nil {
		err = os.Rename(f.tmp.Name(), f.name)
	}
	if err != nil {
		os.Remove(f.tmp.Name())
		f.release()
		return err
	}
	f.created = false
	return f.release()
}

// Abort discards what has been written and releases the lock. A target that
// OpenWrite created is removed.
func (f *File) Abort() error {
	f.tmp.Close()
	os.Remove(f.tmp.Name())
	return f.release()
}

func (f *File) release() error {
	if f.created {
		os.Remove(f.name)
	}
	if f.target == nil {
		return nil
	}
	unlockErr := unlock(f.target)
	closeErr := f.target.Close()
	if closeErr != nil {
		return closeErr
	}
	return unlockErr
}
