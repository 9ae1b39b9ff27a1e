// Package keys produces key material for a resolved cipher: PBKDF2 derivation
// from a password, validation of caller-supplied raw keys, and random key
// generation.
package keys

import (
	"crypto/sha256"
	"fmt"

	"github.com/idelchi/gogen/pkg/key"
	"golang.org/x/crypto/pbkdf2"

	"github.com/idelchi/gocrypt/internal/cipherspec"
	"github.com/idelchi/gocrypt/internal/errors"
)

const (
	// DefaultIterations is the PBKDF2 iteration count used when the caller does not choose one.
	DefaultIterations = 100_000
	// SaltSize is the salt length in bytes.
	SaltSize = 16
)

// Derive runs PBKDF2-HMAC-SHA256 over password and salt, returning keyLen bytes.
// The result is deterministic in all four inputs. Callers own the returned
// slice and should Zero it when done.
func Derive(password, salt []byte, iterations, keyLen int) ([]byte, error) {
	if len(password) == 0 {
		return nil, errors.ErrEmptyPassword
	}

	if iterations < 1 {
		return nil, fmt.Errorf("%w: got %d", errors.ErrInvalidIterations, iterations)
	}

	if keyLen < 1 {
		return nil, fmt.Errorf("%w: key length %d", errors.ErrInvalidInput, keyLen)
	}

	return pbkdf2.Key(password, salt, iterations, keyLen, sha256.New), nil
}

// Validate returns key unchanged if it is exactly expected bytes long.
func Validate(key []byte, expected int) ([]byte, error) {
	if len(key) != expected {
		return nil, errors.NewKeySizeError(expected, len(key))
	}

	return key, nil
}

// Generate returns spec.KeySize bytes from the system CSPRNG.
func Generate(spec cipherspec.Spec) ([]byte, error) {
	return random(spec.KeySize, "key")
}

// NewSalt returns SaltSize random bytes.
func NewSalt() ([]byte, error) {
	return random(SaltSize, "salt")
}

func random(n int, what string) ([]byte, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %s length %d", errors.ErrInvalidInput, what, n)
	}

	buf, err := key.New(n)
	if err != nil {
		return nil, fmt.Errorf("generating %s: %w", what, err)
	}

	return buf, nil
}

// Zero overwrites b with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
