// Package keyfile reads and writes raw keys as Base64 text.
package keyfile

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idelchi/gocrypt/internal/errors"
	"github.com/idelchi/gocrypt/internal/fileutil"
)

const perm = 0o600

// Encode returns key as standard Base64.
func Encode(key []byte) string {
	return base64.StdEncoding.EncodeToString(key)
}

// Decode parses standard Base64, ignoring surrounding whitespace.
func Decode(text string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(string(bytes.TrimSpace([]byte(text))))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding key: %w", errors.ErrInvalidInput, err)
	}

	if len(key) == 0 {
		return nil, fmt.Errorf("%w: empty key", errors.ErrInvalidInput)
	}

	return key, nil
}

// Read loads and decodes the key stored at path.
func Read(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.NewIOError("read", path, err)
	}

	key, err := Decode(string(data))
	if err != nil {
		return nil, fmt.Errorf("key file %q: %w", path, err)
	}

	return key, nil
}

// Write stores key at path, readable by the owner only.
// An existing file is replaced atomically.
func Write(path string, key []byte) (err error) {
	out, err := fileutil.Create(path, perm)
	if err != nil {
		return err
	}

	defer out.CleanupOnError(&err)

	if _, err := out.WriteString(Encode(key) + "\n"); err != nil {
		return errors.NewIOError("write", path, err)
	}

	return out.Commit()
}
