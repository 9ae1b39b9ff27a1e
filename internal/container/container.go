// Package container frames the encrypted file header.
//
// A container is salt (16 bytes) followed by the IV (one cipher block),
// followed by PKCS#7-padded ciphertext. There is no magic number or version,
// and neither the algorithm nor the mode is recorded: field lengths are only
// known in conjunction with the cipher chosen by the caller.
package container

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/idelchi/gocrypt/internal/cipherspec"
	"github.com/idelchi/gocrypt/internal/errors"
	"github.com/idelchi/gocrypt/internal/keys"
)

// SaltSize is the length of the salt field.
const SaltSize = keys.SaltSize

// RawKeySalt is the all-zero salt written when a raw key is used.
// It is a layout sentinel, not a secret.
//
//nolint:gochecknoglobals
var RawKeySalt = make([]byte, SaltSize)

// Header is the salt and IV preceding the ciphertext.
type Header struct {
	Salt []byte
	IV   []byte
}

// Size returns the header length for spec.
func Size(spec cipherspec.Spec) int {
	return SaltSize + spec.BlockSize
}

// NewPasswordHeader returns a header with a random salt and a random IV.
func NewPasswordHeader(spec cipherspec.Spec) (Header, error) {
	salt, err := keys.NewSalt()
	if err != nil {
		return Header{}, err
	}

	iv, err := newIV(spec)
	if err != nil {
		return Header{}, err
	}

	return Header{Salt: salt, IV: iv}, nil
}

// NewRawKeyHeader returns a header with the all-zero salt sentinel and a random IV.
func NewRawKeyHeader(spec cipherspec.Spec) (Header, error) {
	iv, err := newIV(spec)
	if err != nil {
		return Header{}, err
	}

	salt := make([]byte, SaltSize)
	copy(salt, RawKeySalt)

	return Header{Salt: salt, IV: iv}, nil
}

func newIV(spec cipherspec.Spec) ([]byte, error) {
	iv := make([]byte, spec.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, fmt.Errorf("generating IV: %w", err)
	}

	return iv, nil
}

// WriteHeader writes the salt followed by the IV, without length prefixes.
func WriteHeader(w io.Writer, h Header) error {
	if len(h.Salt) != SaltSize {
		return fmt.Errorf("%w: salt must be %d bytes, got %d", errors.ErrInvalidInput, SaltSize, len(h.Salt))
	}

	if len(h.IV) == 0 {
		return fmt.Errorf("%w: empty IV", errors.ErrInvalidIV)
	}

	if _, err := w.Write(h.Salt); err != nil {
		return errors.NewIOError("write salt", "", err)
	}

	if _, err := w.Write(h.IV); err != nil {
		return errors.NewIOError("write IV", "", err)
	}

	return nil
}

// ReadHeader reads exactly SaltSize bytes of salt and spec.BlockSize bytes of IV.
// Any shortfall is ErrUnexpectedEndOfStream.
func ReadHeader(r io.Reader, spec cipherspec.Spec) (Header, error) {
	salt, err := readExact(r, SaltSize, "salt")
	if err != nil {
		return Header{}, err
	}

	iv, err := readExact(r, spec.BlockSize, "IV")
	if err != nil {
		return Header{}, err
	}

	return Header{Salt: salt, IV: iv}, nil
}

// readExact reads n bytes or fails; short reads are never accepted.
func readExact(r io.Reader, n int, field string) ([]byte, error) {
	buf := make([]byte, n)

	got, err := io.ReadFull(r, buf)

	switch {
	case err == nil:
		return buf, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return nil, fmt.Errorf("%w: reading %s: got %d of %d bytes", errors.ErrUnexpectedEndOfStream, field, got, n)
	default:
		return nil, errors.NewIOError("read "+field, "", err)
	}
}
