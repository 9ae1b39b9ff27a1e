package filecrypt

import (
	"context"
	"fmt"
	"io"

	"github.com/idelchi/gocrypt/internal/cipherspec"
	"github.com/idelchi/gocrypt/internal/container"
	"github.com/idelchi/gocrypt/internal/encryption"
	"github.com/idelchi/gocrypt/internal/keys"
)

// EncryptStreamWithPassword writes a complete container for the plaintext in r to w.
func EncryptStreamWithPassword(ctx context.Context, r io.Reader, w io.Writer, alg cipherspec.Algorithm,
	mode cipherspec.Mode, password []byte, opts ...Option,
) error {
	spec, o, err := preparePassword(alg, mode, password, opts)
	if err != nil {
		return err
	}

	return encryptPassword(ctx, r, w, spec, password, o)
}

// DecryptStreamWithPassword reads a container from r and writes the plaintext to w.
func DecryptStreamWithPassword(ctx context.Context, r io.Reader, w io.Writer, alg cipherspec.Algorithm,
	mode cipherspec.Mode, password []byte, opts ...Option,
) error {
	spec, o, err := preparePassword(alg, mode, password, opts)
	if err != nil {
		return err
	}

	return decryptPassword(ctx, r, w, spec, password, o)
}

// EncryptStreamWithKey writes a complete container for the plaintext in r to w.
func EncryptStreamWithKey(ctx context.Context, r io.Reader, w io.Writer, alg cipherspec.Algorithm,
	mode cipherspec.Mode, key []byte, opts ...Option,
) error {
	spec, err := prepareKey(alg, mode, key)
	if err != nil {
		return err
	}

	return encryptKey(ctx, r, w, spec, key, newOptions(opts))
}

// DecryptStreamWithKey reads a container from r and writes the plaintext to w.
func DecryptStreamWithKey(ctx context.Context, r io.Reader, w io.Writer, alg cipherspec.Algorithm,
	mode cipherspec.Mode, key []byte, opts ...Option,
) error {
	spec, err := prepareKey(alg, mode, key)
	if err != nil {
		return err
	}

	return decryptKey(ctx, r, w, spec, key, newOptions(opts))
}

func encryptPassword(ctx context.Context, r io.Reader, w io.Writer, spec cipherspec.Spec, password []byte, o options) error {
	header, err := container.NewPasswordHeader(spec)
	if err != nil {
		return err
	}

	key, err := keys.Derive(password, header.Salt, o.iterations, spec.KeySize)
	if err != nil {
		return fmt.Errorf("deriving key: %w", err)
	}
	defer keys.Zero(key)

	o.logger.DebugContext(ctx, "derived key", "spec", spec.String(), "iterations", o.iterations)

	return encryptBody(ctx, r, w, spec, key, header, o)
}

func decryptPassword(ctx context.Context, r io.Reader, w io.Writer, spec cipherspec.Spec, password []byte, o options) error {
	header, err := container.ReadHeader(r, spec)
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}

	key, err := keys.Derive(password, header.Salt, o.iterations, spec.KeySize)
	if err != nil {
		return fmt.Errorf("deriving key: %w", err)
	}
	defer keys.Zero(key)

	o.logger.DebugContext(ctx, "derived key", "spec", spec.String(), "iterations", o.iterations)

	return decryptBody(ctx, r, w, spec, key, header, o)
}

func encryptKey(ctx context.Context, r io.Reader, w io.Writer, spec cipherspec.Spec, key []byte, o options) error {
	header, err := container.NewRawKeyHeader(spec)
	if err != nil {
		return err
	}

	return encryptBody(ctx, r, w, spec, key, header, o)
}

func decryptKey(ctx context.Context, r io.Reader, w io.Writer, spec cipherspec.Spec, key []byte, o options) error {
	header, err := container.ReadHeader(r, spec)
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}

	return decryptBody(ctx, r, w, spec, key, header, o)
}

func encryptBody(ctx context.Context, r io.Reader, w io.Writer, spec cipherspec.Spec, key []byte,
	header container.Header, o options,
) error {
	if err := container.WriteHeader(w, header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if err := encryption.EncryptStream(ctx, r, w, spec, key, header.IV, o.engine()...); err != nil {
		return fmt.Errorf("encrypting: %w", err)
	}

	o.logger.DebugContext(ctx, "encrypted stream", "spec", spec.String(), "header_bytes", container.Size(spec))

	return nil
}

func decryptBody(ctx context.Context, r io.Reader, w io.Writer, spec cipherspec.Spec, key []byte,
	header container.Header, o options,
) error {
	if err := encryption.DecryptStream(ctx, r, w, spec, key, header.IV, o.engine()...); err != nil {
		return fmt.Errorf("decrypting: %w", err)
	}

	o.logger.DebugContext(ctx, "decrypted stream", "spec", spec.String(), "header_bytes", container.Size(spec))

	return nil
}
