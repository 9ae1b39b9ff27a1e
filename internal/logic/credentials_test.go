package logic_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/idelchi/gocrypt/internal/config"
	"github.com/idelchi/gocrypt/internal/errors"
	"github.com/idelchi/gocrypt/internal/keyfile"
	"github.com/idelchi/gocrypt/internal/logic"
)

type fakePrompter struct {
	available bool
	answers   [][]byte
	prompts   []string
}

func (f *fakePrompter) Available() bool {
	return f.available
}

func (f *fakePrompter) ReadPassword(prompt string) ([]byte, error) {
	f.prompts = append(f.prompts, prompt)

	if len(f.answers) == 0 {
		return nil, os.ErrClosed
	}

	answer := f.answers[0]
	f.answers = f.answers[1:]

	return answer, nil
}

func noCredential(t *testing.T) *config.Config {
	t.Helper()

	cfg := newConfig(t, "file")
	cfg.Password = ""

	return cfg
}

func TestResolveKey(t *testing.T) {
	t.Parallel()

	cfg := noCredential(t)
	key := bytes.Repeat([]byte{7}, 32)
	cfg.Key = keyfile.Encode(key)

	cred, err := logic.ResolveCredential(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(cred.Key, key) || cred.Password != nil {
		t.Errorf("credential = %+v", cred)
	}

	cred.Zero()

	if !bytes.Equal(cred.Key, make([]byte, 32)) {
		t.Error("Zero left key bytes behind")
	}
}

func TestResolveKeyWithWhitespace(t *testing.T) {
	t.Parallel()

	cfg := noCredential(t)
	key := bytes.Repeat([]byte{9}, 32)
	cfg.Key = "  " + keyfile.Encode(key) + "\n"

	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	cred, err := logic.ResolveCredential(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(cred.Key, key) {
		t.Errorf("key = %x", cred.Key)
	}
}

func TestResolveKeyFile(t *testing.T) {
	t.Parallel()

	cfg := noCredential(t)
	cfg.KeyFile = filepath.Join(t.TempDir(), "key")

	if err := keyfile.Write(cfg.KeyFile, bytes.Repeat([]byte{1}, 32)); err != nil {
		t.Fatal(err)
	}

	cred, err := logic.ResolveCredential(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(cred.Key) != 32 {
		t.Errorf("key length = %d", len(cred.Key))
	}
}

func TestResolveKeyWrongSize(t *testing.T) {
	t.Parallel()

	cfg := noCredential(t)
	cfg.Key = keyfile.Encode(make([]byte, 16))

	_, err := logic.ResolveCredential(cfg, nil)
	if !errors.Is(err, errors.ErrKeySizeMismatch) {
		t.Errorf("error = %v, want ErrKeySizeMismatch", err)
	}
}

func TestResolvePassword(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, "file")

	cred, err := logic.ResolveCredential(cfg, &fakePrompter{available: true})
	if err != nil {
		t.Fatal(err)
	}

	if string(cred.Password) != "secret" {
		t.Errorf("password = %q", cred.Password)
	}
}

func TestResolvePrompt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		decrypt bool
		answers []string
		prompts int
		want    error
	}{
		{name: "encrypt confirmed", answers: []string{"pw", "pw"}, prompts: 2},
		{name: "decrypt asks once", decrypt: true, answers: []string{"pw"}, prompts: 1},
		{name: "mismatch", answers: []string{"pw", "other"}, prompts: 2, want: errors.ErrInvalidInput},
		{name: "empty", answers: []string{""}, prompts: 1, want: errors.ErrEmptyPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := noCredential(t)
			cfg.Decrypt = tt.decrypt

			prompter := &fakePrompter{available: true}
			for _, a := range tt.answers {
				prompter.answers = append(prompter.answers, []byte(a))
			}

			cred, err := logic.ResolveCredential(cfg, prompter)

			if len(prompter.prompts) != tt.prompts {
				t.Errorf("prompted %d times, want %d", len(prompter.prompts), tt.prompts)
			}

			if tt.want != nil {
				if !errors.Is(err, tt.want) {
					t.Errorf("error = %v, want %v", err, tt.want)
				}

				return
			}

			if err != nil {
				t.Fatal(err)
			}

			if string(cred.Password) != "pw" {
				t.Errorf("password = %q", cred.Password)
			}
		})
	}
}

func TestResolveWithoutTerminal(t *testing.T) {
	t.Parallel()

	_, err := logic.ResolveCredential(noCredential(t), &fakePrompter{available: false})
	if err == nil || !strings.Contains(err.Error(), "no terminal") {
		t.Errorf("error = %v", err)
	}
}
