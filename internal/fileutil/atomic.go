// Package fileutil provides shared file operation helpers.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/idelchi/gocrypt/internal/errors"
)

// AtomicFile is an output file written under a temporary name in the target
// directory and renamed onto the target only by Commit. Until then the target
// path is never created or modified.
type AtomicFile struct {
	*os.File

	target string
	done   bool
}

// Create opens a temporary file next to target with the given permissions.
// Callers must defer CleanupOnError (or Abort).
func Create(target string, perm os.FileMode) (*AtomicFile, error) {
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return nil, errors.NewIOError("create", target, err)
	}

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()           //nolint:errcheck,gosec // best-effort cleanup
		os.Remove(tmp.Name()) //nolint:errcheck,gosec // best-effort cleanup

		return nil, errors.NewIOError("chmod", tmp.Name(), err)
	}

	return &AtomicFile{File: tmp, target: target}, nil
}

// Commit flushes, closes and renames the temporary file onto the target.
func (f *AtomicFile) Commit() error {
	if f.done {
		return fmt.Errorf("%w: %q already finalized", errors.ErrInvalidInput, f.target)
	}

	f.done = true

	if err := f.Sync(); err != nil {
		f.discard()

		return errors.NewIOError("sync", f.target, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name()) //nolint:errcheck,gosec // best-effort cleanup

		return errors.NewIOError("close", f.target, err)
	}

	if err := os.Rename(f.Name(), f.target); err != nil {
		os.Remove(f.Name()) //nolint:errcheck,gosec // best-effort cleanup

		return errors.NewIOError("rename", f.target, err)
	}

	return nil
}

// Abort closes and removes the temporary file. It is a no-op after Commit.
func (f *AtomicFile) Abort() {
	if f.done {
		return
	}

	f.done = true
	f.discard()
}

// CleanupOnError aborts the write if *errp is non-nil.
func (f *AtomicFile) CleanupOnError(errp *error) {
	if *errp != nil {
		f.Abort()
	}
}

func (f *AtomicFile) discard() {
	f.Close()           //nolint:errcheck,gosec // best-effort cleanup
	os.Remove(f.Name()) //nolint:errcheck,gosec // best-effort cleanup
}
