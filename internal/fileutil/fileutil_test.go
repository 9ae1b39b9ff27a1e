package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/idelchi/gocrypt/internal/fileutil"
)

func entries(t *testing.T, dir string) []string {
	t.Helper()

	list, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	names := make([]string, 0, len(list))
	for _, e := range list {
		names = append(names, e.Name())
	}

	return names
}

func TestCommit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "out.enc")

	f, err := fileutil.Create(target, 0o600)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := f.WriteString("payload"); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(target); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("target exists before Commit: %v", err)
	}

	if err := f.Commit(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "payload" {
		t.Errorf("content = %q, want %q", data, "payload")
	}

	if names := entries(t, dir); len(names) != 1 {
		t.Errorf("directory holds %v, want only the target", names)
	}

	if err := f.Commit(); err == nil {
		t.Error("second Commit succeeded")
	}
}

func TestCleanupOnError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "out.enc")

	if err := os.WriteFile(target, []byte("previous"), 0o600); err != nil {
		t.Fatal(err)
	}

	func() {
		f, err := fileutil.Create(target, 0o600)
		if err != nil {
			t.Fatal(err)
		}

		failure := errors.New("transform failed")
		defer f.CleanupOnError(&failure)

		f.WriteString("partial") //nolint:errcheck
	}()

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "previous" {
		t.Errorf("target modified on failure: %q", data)
	}

	if names := entries(t, dir); len(names) != 1 {
		t.Errorf("temporary file left behind: %v", names)
	}
}

func TestCreateMissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := fileutil.Create(filepath.Join(t.TempDir(), "missing", "out"), 0o600)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

func TestFinalize(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, []byte("12345"), 0o600); err != nil {
		t.Fatal(err)
	}

	modTime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)

	size, err := fileutil.Finalize(path, modTime)
	if err != nil {
		t.Fatal(err)
	}

	if size != 5 {
		t.Errorf("size = %d, want 5", size)
	}

	info, _ := os.Stat(path)
	if !info.ModTime().Equal(modTime) {
		t.Errorf("mod time = %v, want %v", info.ModTime(), modTime)
	}
}

func TestFinalizeKeepsTimesWhenZero(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	before, _ := os.Stat(path)

	size, err := fileutil.Finalize(path, time.Time{})
	if err != nil {
		t.Fatal(err)
	}

	after, _ := os.Stat(path)

	if size != 0 || !after.ModTime().Equal(before.ModTime()) {
		t.Errorf("size %d, mod time %v -> %v", size, before.ModTime(), after.ModTime())
	}
}
