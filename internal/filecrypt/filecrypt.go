// Package filecrypt composes cipher resolution, key handling, header framing
// and the streaming engine into one-shot encrypt and decrypt calls.
//
// Every call is synchronous and stateless. Derived keys are zeroed before the
// call returns. File outputs are written to a temporary file and renamed into
// place on success, so a failed call never leaves a truncated output behind.
package filecrypt

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/idelchi/gocrypt/internal/cipherspec"
	"github.com/idelchi/gocrypt/internal/errors"
	"github.com/idelchi/gocrypt/internal/fileutil"
	"github.com/idelchi/gocrypt/internal/keys"
)

const outputPerm = 0o600

// EncryptWithPassword encrypts inPath into outPath with a key derived from password.
func EncryptWithPassword(ctx context.Context, inPath, outPath string, alg cipherspec.Algorithm, mode cipherspec.Mode,
	password []byte, opts ...Option,
) error {
	spec, o, err := preparePassword(alg, mode, password, opts)
	if err != nil {
		return err
	}

	return transformFile(inPath, outPath, func(r io.Reader, w io.Writer) error {
		return encryptPassword(ctx, r, w, spec, password, o)
	})
}

// DecryptWithPassword decrypts inPath into outPath, deriving the key from password and the stored salt.
func DecryptWithPassword(ctx context.Context, inPath, outPath string, alg cipherspec.Algorithm, mode cipherspec.Mode,
	password []byte, opts ...Option,
) error {
	spec, o, err := preparePassword(alg, mode, password, opts)
	if err != nil {
		return err
	}

	return transformFile(inPath, outPath, func(r io.Reader, w io.Writer) error {
		return decryptPassword(ctx, r, w, spec, password, o)
	})
}

// EncryptWithKey encrypts inPath into outPath with a raw key.
// A key of the wrong length fails with ErrKeySizeMismatch before any file is touched.
func EncryptWithKey(ctx context.Context, inPath, outPath string, alg cipherspec.Algorithm, mode cipherspec.Mode,
	key []byte, opts ...Option,
) error {
	spec, err := prepareKey(alg, mode, key)
	if err != nil {
		return err
	}

	o := newOptions(opts)

	return transformFile(inPath, outPath, func(r io.Reader, w io.Writer) error {
		return encryptKey(ctx, r, w, spec, key, o)
	})
}

// DecryptWithKey decrypts inPath into outPath with a raw key. The stored salt is ignored.
func DecryptWithKey(ctx context.Context, inPath, outPath string, alg cipherspec.Algorithm, mode cipherspec.Mode,
	key []byte, opts ...Option,
) error {
	spec, err := prepareKey(alg, mode, key)
	if err != nil {
		return err
	}

	o := newOptions(opts)

	return transformFile(inPath, outPath, func(r io.Reader, w io.Writer) error {
		return decryptKey(ctx, r, w, spec, key, o)
	})
}

// GenerateKey returns a random key of the size alg requires.
func GenerateKey(alg cipherspec.Algorithm) ([]byte, error) {
	spec, err := cipherspec.Resolve(alg, cipherspec.CBC)
	if err != nil {
		return nil, err
	}

	return keys.Generate(spec)
}

// transformFile streams inPath through fn into an atomic output at outPath.
func transformFile(inPath, outPath string, fn func(io.Reader, io.Writer) error) (err error) {
	in, err := os.Open(filepath.Clean(inPath))
	if err != nil {
		return errors.NewIOError("open", inPath, err)
	}
	defer in.Close()

	out, err := fileutil.Create(outPath, outputPerm)
	if err != nil {
		return err
	}

	defer out.CleanupOnError(&err)

	if err := fn(in, out); err != nil {
		return fmt.Errorf("processing %q: %w", inPath, err)
	}

	return out.Commit()
}

func preparePassword(alg cipherspec.Algorithm, mode cipherspec.Mode, password []byte, opts []Option) (cipherspec.Spec, options, error) {
	spec, err := cipherspec.Resolve(alg, mode)
	if err != nil {
		return cipherspec.Spec{}, options{}, err
	}

	o := newOptions(opts)

	if len(password) == 0 {
		return cipherspec.Spec{}, options{}, errors.ErrEmptyPassword
	}

	if o.iterations < 1 {
		return cipherspec.Spec{}, options{}, fmt.Errorf("%w: got %d", errors.ErrInvalidIterations, o.iterations)
	}

	return spec, o, nil
}

func prepareKey(alg cipherspec.Algorithm, mode cipherspec.Mode, key []byte) (cipherspec.Spec, error) {
	spec, err := cipherspec.Resolve(alg, mode)
	if err != nil {
		return cipherspec.Spec{}, err
	}

	if _, err := keys.Validate(key, spec.KeySize); err != nil {
		return cipherspec.Spec{}, err
	}

	return spec, nil
}
