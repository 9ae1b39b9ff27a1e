// Package filter expands command-line paths into the list of files to process.
// Files are taken as given; directories are walked and their files selected
// with include and exclude glob patterns.
package filter

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Filter selects walked files. Excludes always win. With no includes every
// file is included.
type Filter struct {
	includes Patterns
	excludes Patterns
}

// New compiles include and exclude globs into a Filter.
func New(includes, excludes []string) (*Filter, error) {
	inc, err := CompileAll(includes)
	if err != nil {
		return nil, fmt.Errorf("compiling include patterns: %w", err)
	}

	exc, err := CompileAll(excludes)
	if err != nil {
		return nil, fmt.Errorf("compiling exclude patterns: %w", err)
	}

	return &Filter{includes: inc, excludes: exc}, nil
}

// Match reports whether the slash-separated path is selected.
func (f *Filter) Match(path string) bool {
	if len(f.includes) > 0 && !f.includes.MatchAny(path) {
		return false
	}

	return !f.excludes.MatchAny(path)
}

// Resolve returns the deduplicated files named by args, in order, and the
// number of files considered. Directories are walked recursively through f.
// Any other argument, including a missing path, is passed through unfiltered
// so that its failure is reported with the file it belongs to.
func (f *Filter) Resolve(args []string) (files []string, scanned int, err error) {
	seen := make(map[string]struct{})

	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}

		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, arg := range args {
		arg = filepath.Clean(arg)

		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			scanned++

			add(arg)

			continue
		}

		walked, total, err := f.walk(arg)
		if err != nil {
			return nil, 0, err
		}

		scanned += total

		for _, path := range walked {
			add(path)
		}
	}

	if len(files) == 0 {
		return nil, scanned, fmt.Errorf("no files matched: %v", args)
	}

	return files, scanned, nil
}

// walk returns the selected regular files below dir and the number of files
// seen. A symlinked dir is followed; returned paths keep dir as their prefix.
func (f *Filter) walk(dir string) (files []string, total int, err error) {
	root, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, 0, fmt.Errorf("resolving %q: %w", dir, err)
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		path = filepath.Join(dir, rel)
		total++

		if f.Match(filepath.ToSlash(path)) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("walking %q: %w", dir, err)
	}

	return files, total, nil
}
