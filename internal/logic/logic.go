// Package logic runs the encrypt, decrypt and keygen commands.
package logic

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/idelchi/gocrypt/internal/config"
	"github.com/idelchi/gocrypt/internal/errors"
	"github.com/idelchi/gocrypt/internal/filecrypt"
	"github.com/idelchi/gocrypt/internal/filter"
	"github.com/idelchi/gocrypt/internal/fileutil"
)

// Runner processes the configured files with one credential.
type Runner struct {
	cfg    *config.Config
	cred   Credential
	logger *slog.Logger

	stdout io.Writer
	stderr io.Writer

	scanned int
}

// NewRunner returns a Runner printing progress to stdout and failures to stderr.
func NewRunner(cfg *config.Config, cred Credential, logger *slog.Logger, stdout, stderr io.Writer) *Runner {
	return &Runner{
		cfg:    cfg,
		cred:   cred,
		logger: logger,
		stdout: stdout,
		stderr: stderr,
	}
}

// NewLogger returns a text logger on w at the named level.
func NewLogger(level string, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: config.Level(level)}))
}

// Run processes every file in parallel. Every file is attempted; the first
// failure is returned after all of them finish.
//
//nolint:cyclop,gocognit // parallel processing pipeline with printer goroutine
func (r *Runner) Run(ctx context.Context) error {
	start := time.Now()

	scanned, err := resolveFiles(r.cfg)
	if err != nil {
		return fmt.Errorf("resolving files: %w", err)
	}

	r.scanned = scanned

	if r.cfg.Dry {
		return r.dryRun(start)
	}

	results := make(chan result, len(r.cfg.Files))

	group := errgroup.Group{}
	group.SetLimit(r.cfg.Parallel)

	printed := make(chan struct{})

	var processed, errored int

	var totalSize int64

	go func() {
		defer close(printed)

		for res := range results {
			if res.err != nil {
				errored++

				fmt.Fprintf(r.stderr, "Error processing %q: %v\n", res.input, res.err)

				continue
			}

			processed++

			totalSize += res.outputSize

			if !r.cfg.Quiet {
				fmt.Fprintf(r.stdout, "Processed %q -> %q\n", res.input, res.output)
			}

			if r.cfg.Delete {
				if err := os.Remove(res.input); err != nil {
					fmt.Fprintf(r.stderr, "Error deleting %q: %v\n", res.input, err)
				} else if !r.cfg.Quiet {
					fmt.Fprintf(r.stdout, "Deleted %q\n", res.input)
				}
			}
		}
	}()

	for _, file := range r.cfg.Files {
		group.Go(func() error {
			outPath, size, err := r.processFile(ctx, file)
			if err != nil {
				results <- result{input: file, err: err}

				return err
			}

			results <- result{input: file, output: outPath, outputSize: size}

			return nil
		})
	}

	err = group.Wait()

	close(results)

	<-printed

	if r.cfg.Stats {
		r.printStats(processed, errored, totalSize, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("processing files: %w", err)
	}

	return nil
}

func (r *Runner) processFile(ctx context.Context, file string) (string, int64, error) {
	outPath, err := outputPath(file, r.cfg)
	if err != nil {
		return "", 0, err
	}

	info, err := os.Stat(file)
	if err != nil {
		return "", 0, errors.NewIOError("stat", file, err)
	}

	if !info.Mode().IsRegular() {
		return "", 0, fmt.Errorf("%w: %q is not a regular file", errors.ErrInvalidInput, file)
	}

	r.logger.DebugContext(ctx, "processing", "input", file, "output", outPath, "spec", r.cfg.Spec.String())

	if err := r.transform(ctx, file, outPath); err != nil {
		return "", 0, err
	}

	var modTime time.Time
	if r.cfg.PreserveTimestamps {
		modTime = info.ModTime()
	}

	size, err := fileutil.Finalize(outPath, modTime)
	if err != nil {
		return "", 0, fmt.Errorf("finalizing output: %w", err)
	}

	return outPath, size, nil
}

func (r *Runner) transform(ctx context.Context, in, out string) error {
	alg, mode := r.cfg.Spec.Algorithm, r.cfg.Spec.Mode

	opts := []filecrypt.Option{
		filecrypt.WithIterations(r.cfg.Iterations),
		filecrypt.WithLogger(r.logger),
	}

	switch {
	case r.cred.Key != nil && r.cfg.Decrypt:
		return filecrypt.DecryptWithKey(ctx, in, out, alg, mode, r.cred.Key, opts...)
	case r.cred.Key != nil:
		return filecrypt.EncryptWithKey(ctx, in, out, alg, mode, r.cred.Key, opts...)
	case r.cfg.Decrypt:
		return filecrypt.DecryptWithPassword(ctx, in, out, alg, mode, r.cred.Password, opts...)
	default:
		return filecrypt.EncryptWithPassword(ctx, in, out, alg, mode, r.cred.Password, opts...)
	}
}

// resolveFiles expands directory arguments through the include and exclude
// patterns and replaces cfg.Files with the result. Inside directories,
// encryption skips files that already carry the encrypt suffix and decryption
// without includes picks only those.
// It returns the number of files considered.
func resolveFiles(cfg *config.Config) (int, error) {
	includes := append([]string{}, cfg.Include...)
	excludes := append([]string{}, cfg.Exclude...)

	if cfg.IncludeFrom != "" {
		patterns, err := filter.LoadPatterns(cfg.IncludeFrom)
		if err != nil {
			return 0, fmt.Errorf("loading include patterns: %w", err)
		}

		includes = append(includes, patterns...)
	}

	if cfg.ExcludeFrom != "" {
		patterns, err := filter.LoadPatterns(cfg.ExcludeFrom)
		if err != nil {
			return 0, fmt.Errorf("loading exclude patterns: %w", err)
		}

		excludes = append(excludes, patterns...)
	}

	switch {
	case cfg.Decrypt && len(includes) == 0:
		includes = append(includes, "*"+cfg.Suffixes.Encrypt)
	case !cfg.Decrypt:
		excludes = append(excludes, "*"+cfg.Suffixes.Encrypt)
	}

	flt, err := filter.New(includes, excludes)
	if err != nil {
		return 0, err
	}

	files, scanned, err := flt.Resolve(cfg.Files)
	if err != nil {
		return scanned, err
	}

	cfg.Files = files

	return scanned, nil
}

// dryRun previews what would be processed without touching any file.
func (r *Runner) dryRun(start time.Time) error {
	var (
		totalSize        int64
		planned, errored int
	)

	for _, file := range r.cfg.Files {
		out, err := outputPath(file, r.cfg)
		if err != nil {
			errored++

			fmt.Fprintf(r.stderr, "Error processing %q: %v\n", file, err)

			continue
		}

		planned++

		if !r.cfg.Quiet {
			fmt.Fprintf(r.stdout, "Would process %q -> %q\n", file, out)
		}

		if info, err := os.Stat(file); err == nil {
			totalSize += info.Size()
		}
	}

	if r.cfg.Stats {
		r.printStats(planned, errored, totalSize, time.Since(start))
	}

	return nil
}

// outputPath appends the encrypt suffix, or on decryption swaps it for the
// decrypt suffix. Decrypting a file without the encrypt suffix is an error.
func outputPath(filename string, cfg *config.Config) (string, error) {
	in := filename
	ext := cfg.Suffixes.Encrypt

	if cfg.Decrypt {
		trimmed, ok := strings.CutSuffix(filename, cfg.Suffixes.Encrypt)
		if !ok || trimmed == "" || os.IsPathSeparator(trimmed[len(trimmed)-1]) {
			return "", fmt.Errorf("%w: %q does not end in %q", errors.ErrInvalidInput, filename, cfg.Suffixes.Encrypt)
		}

		filename = trimmed
		ext = cfg.Suffixes.Decrypt
	}

	out := filepath.Join(filepath.Dir(filename), filepath.Base(filename)+ext)

	if out == filepath.Clean(in) {
		return "", fmt.Errorf("%w: output %q would overwrite its input", errors.ErrInvalidInput, out)
	}

	return out, nil
}

func (r *Runner) printStats(processed, errored int, totalSize int64, duration time.Duration) {
	fmt.Fprintf(r.stderr, "\nStats\n")
	fmt.Fprintf(r.stderr, "  Spec:      %s\n", r.cfg.Spec)
	fmt.Fprintf(r.stderr, "  Scanned:   %d\n", r.scanned)
	fmt.Fprintf(r.stderr, "  Excluded:  %d\n", r.scanned-len(r.cfg.Files))
	fmt.Fprintf(r.stderr, "  Processed: %d\n", processed)
	fmt.Fprintf(r.stderr, "  Errors:    %d\n", errored)
	//nolint:gosec // totalSize is always non-negative (sum of file sizes)
	fmt.Fprintf(r.stderr, "  Size:      %s\n", humanize.IBytes(uint64(max(0, totalSize))))
	fmt.Fprintf(r.stderr, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
