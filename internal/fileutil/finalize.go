package fileutil

import (
	"os"
	"time"

	"github.com/idelchi/gocrypt/internal/errors"
)

// Finalize stamps path with modTime (skipped when modTime is zero) and returns its size.
func Finalize(path string, modTime time.Time) (int64, error) {
	if !modTime.IsZero() {
		if err := os.Chtimes(path, modTime, modTime); err != nil {
			return 0, errors.NewIOError("chtimes", path, err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, errors.NewIOError("stat", path, err)
	}

	return info.Size(), nil
}
