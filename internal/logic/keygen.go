package logic

import (
	"fmt"
	"io"

	"github.com/idelchi/gocrypt/internal/config"
	"github.com/idelchi/gocrypt/internal/filecrypt"
	"github.com/idelchi/gocrypt/internal/keyfile"
	"github.com/idelchi/gocrypt/internal/keys"
)

// Keygen generates a key for the configured algorithm. It is written to
// cfg.Output as a key file, or printed to w as Base64 when no output is set.
func Keygen(cfg *config.Keygen, w io.Writer) error {
	key, err := filecrypt.GenerateKey(cfg.Spec.Algorithm)
	if err != nil {
		return fmt.Errorf("generating key: %w", err)
	}
	defer keys.Zero(key)

	if cfg.Output == "" {
		fmt.Fprintln(w, keyfile.Encode(key))

		return nil
	}

	if err := keyfile.Write(cfg.Output, key); err != nil {
		return fmt.Errorf("writing key file: %w", err)
	}

	return nil
}
