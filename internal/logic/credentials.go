package logic

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/idelchi/gocrypt/internal/config"
	"github.com/idelchi/gocrypt/internal/errors"
	"github.com/idelchi/gocrypt/internal/keyfile"
	"github.com/idelchi/gocrypt/internal/keys"
)

// Credential holds either a password or a raw key.
type Credential struct {
	Password []byte
	Key      []byte
}

// Zero wipes the secret bytes.
func (c *Credential) Zero() {
	keys.Zero(c.Password)
	keys.Zero(c.Key)
}

// Prompter reads a secret interactively.
type Prompter interface {
	// Available reports whether prompting is possible.
	Available() bool
	ReadPassword(prompt string) ([]byte, error)
}

// Terminal prompts on the controlling terminal without echo.
type Terminal struct {
	In  *os.File
	Out io.Writer
}

// Available reports whether In is a terminal.
func (t Terminal) Available() bool {
	return term.IsTerminal(int(t.In.Fd())) //nolint:gosec // fd fits in int
}

// ReadPassword prints prompt and reads a line without echo.
func (t Terminal) ReadPassword(prompt string) ([]byte, error) {
	fmt.Fprint(t.Out, prompt)

	password, err := term.ReadPassword(int(t.In.Fd())) //nolint:gosec // fd fits in int

	fmt.Fprintln(t.Out)

	if err != nil {
		return nil, errors.NewIOError("read", "password", err)
	}

	return password, nil
}

// ResolveCredential picks the configured key, key file or password, and falls
// back to prompting. Keys are checked against the cipher's key size here so
// a bad key fails before any file is opened.
func ResolveCredential(cfg *config.Config, prompter Prompter) (Credential, error) {
	switch {
	case cfg.Key != "":
		key, err := keyfile.Decode(cfg.Key)
		if err != nil {
			return Credential{}, err
		}

		return checkedKey(key, cfg)
	case cfg.KeyFile != "":
		key, err := keyfile.Read(cfg.KeyFile)
		if err != nil {
			return Credential{}, err
		}

		return checkedKey(key, cfg)
	case cfg.Password != "":
		return Credential{Password: []byte(cfg.Password)}, nil
	}

	if prompter == nil || !prompter.Available() {
		return Credential{}, fmt.Errorf("%w: no password or key given and no terminal to prompt on", errors.ErrInvalidInput)
	}

	password, err := prompter.ReadPassword("Password: ")
	if err != nil {
		return Credential{}, err
	}

	if len(password) == 0 {
		return Credential{}, errors.ErrEmptyPassword
	}

	if !cfg.Decrypt {
		confirm, err := prompter.ReadPassword("Confirm password: ")
		if err != nil {
			keys.Zero(password)

			return Credential{}, err
		}

		defer keys.Zero(confirm)

		if !bytes.Equal(password, confirm) {
			keys.Zero(password)

			return Credential{}, fmt.Errorf("%w: passwords do not match", errors.ErrInvalidInput)
		}
	}

	return Credential{Password: password}, nil
}

func checkedKey(key []byte, cfg *config.Config) (Credential, error) {
	if _, err := keys.Validate(key, cfg.Spec.KeySize); err != nil {
		keys.Zero(key)

		return Credential{}, fmt.Errorf("key for %s: %w", cfg.Spec, err)
	}

	return Credential{Key: key}, nil
}
