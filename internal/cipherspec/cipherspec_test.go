package cipherspec_test

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/idelchi/gocrypt/internal/cipherspec"
	"github.com/idelchi/gocrypt/internal/errors"
)

// Case is a single resolver case from a YAML golden file.
type Case struct {
	Algorithm string `yaml:"algorithm"`
	Mode      string `yaml:"mode"`
	KeySize   int    `yaml:"key_size"`
	BlockSize int    `yaml:"block_size"`
	String    string `yaml:"string"`
	Error     string `yaml:"error,omitempty"`
}

// Group is a named collection of resolver cases.
type Group struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Cases       []Case `yaml:"cases"`
}

func loadGroups(t *testing.T) []Group {
	t.Helper()

	files, err := filepath.Glob("testdata/*.yml")
	if err != nil {
		t.Fatalf("globbing testdata: %v", err)
	}

	if len(files) == 0 {
		t.Fatal("no testdata/*.yml files found")
	}

	var all []Group

	for _, f := range files {
		data, err := os.ReadFile(f) //nolint:gosec // test helper reads known testdata files
		if err != nil {
			t.Fatalf("reading %s: %v", f, err)
		}

		var groups []Group
		if err := yaml.Unmarshal(data, &groups); err != nil {
			t.Fatalf("parsing %s: %v", f, err)
		}

		all = append(all, groups...)
	}

	return all
}

func resolveNames(algorithm, mode string) (cipherspec.Spec, error) {
	alg, err := cipherspec.ParseAlgorithm(algorithm)
	if err != nil {
		return cipherspec.Spec{}, err
	}

	m, err := cipherspec.ParseMode(mode)
	if err != nil {
		return cipherspec.Spec{}, err
	}

	return cipherspec.Resolve(alg, m)
}

func TestResolveGolden(t *testing.T) {
	t.Parallel()

	for _, g := range loadGroups(t) {
		t.Run(g.Name, func(t *testing.T) {
			t.Parallel()

			for _, tc := range g.Cases {
				spec, err := resolveNames(tc.Algorithm, tc.Mode)

				if tc.Error != "" {
					if err == nil || !strings.Contains(err.Error(), tc.Error) {
						t.Errorf("resolve(%q, %q) error = %v, want %q", tc.Algorithm, tc.Mode, err, tc.Error)
					}

					continue
				}

				if err != nil {
					t.Fatalf("resolve(%q, %q) error: %v", tc.Algorithm, tc.Mode, err)
				}

				if spec.KeySize != tc.KeySize || spec.BlockSize != tc.BlockSize {
					t.Errorf("resolve(%q, %q) = key %d block %d, want key %d block %d",
						tc.Algorithm, tc.Mode, spec.KeySize, spec.BlockSize, tc.KeySize, tc.BlockSize)
				}

				if spec.String() != tc.String {
					t.Errorf("String() = %q, want %q", spec.String(), tc.String)
				}
			}
		})
	}
}

func TestResolveRejectsUnknownValues(t *testing.T) {
	t.Parallel()

	if _, err := cipherspec.Resolve(cipherspec.Algorithm(42), cipherspec.CBC); !errors.Is(err, errors.ErrUnsupportedAlgorithm) {
		t.Errorf("Resolve(42, CBC) error = %v, want ErrUnsupportedAlgorithm", err)
	}

	if _, err := cipherspec.Resolve(cipherspec.AES, cipherspec.Mode(9)); !errors.Is(err, errors.ErrUnsupportedMode) {
		t.Errorf("Resolve(AES, 9) error = %v, want ErrUnsupportedMode", err)
	}
}

func TestNewBlockKeySize(t *testing.T) {
	t.Parallel()

	for _, alg := range cipherspec.Algorithms() {
		spec, err := cipherspec.Resolve(alg, cipherspec.CBC)
		if err != nil {
			t.Fatalf("Resolve(%v): %v", alg, err)
		}

		if _, err := spec.NewBlock(make([]byte, spec.KeySize)); err != nil {
			t.Errorf("%v: NewBlock with %d bytes: %v", alg, spec.KeySize, err)
		}

		_, err = spec.NewBlock(make([]byte, spec.KeySize-1))

		var kse *errors.KeySizeError
		if !errors.As(err, &kse) || kse.Expected != spec.KeySize {
			t.Errorf("%v: NewBlock with short key error = %v, want KeySizeError{Expected: %d}", alg, err, spec.KeySize)
		}
	}
}

func TestBlockModeRejectsWrongIV(t *testing.T) {
	t.Parallel()

	spec, _ := cipherspec.Resolve(cipherspec.AES, cipherspec.CBC)

	block, err := spec.NewBlock(make([]byte, spec.KeySize))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := spec.NewEncrypter(block, make([]byte, 8)); !errors.Is(err, errors.ErrInvalidIV) {
		t.Errorf("NewEncrypter with 8-byte IV error = %v, want ErrInvalidIV", err)
	}
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("decoding %q: %v", s, err)
	}

	return b
}

// TestECBKnownAnswers checks single-block ECB against FIPS-197 and the classic DES vector.
func TestECBKnownAnswers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		alg        cipherspec.Algorithm
		key        string
		plaintext  string
		ciphertext string
	}{
		{
			name:       "AES-256 FIPS-197 C.3",
			alg:        cipherspec.AES,
			key:        "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f",
			plaintext:  "00112233445566778899aabbccddeeff",
			ciphertext: "8ea2b7ca516745bfeafc49904b496089",
		},
		{
			name:       "DES",
			alg:        cipherspec.DES,
			key:        "133457799bbcdff1",
			plaintext:  "0123456789abcdef",
			ciphertext: "85e813540f0ab405",
		},
		{
			name:       "TripleDES with repeated key equals DES",
			alg:        cipherspec.TripleDES,
			key:        "133457799bbcdff1133457799bbcdff1133457799bbcdff1",
			plaintext:  "0123456789abcdef",
			ciphertext: "85e813540f0ab405",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			spec, err := cipherspec.Resolve(tt.alg, cipherspec.ECB)
			if err != nil {
				t.Fatal(err)
			}

			block, err := spec.NewBlock(mustHex(t, tt.key))
			if err != nil {
				t.Fatal(err)
			}

			iv := make([]byte, spec.BlockSize)
			plaintext := mustHex(t, tt.plaintext)
			want := mustHex(t, tt.ciphertext)

			enc, err := spec.NewEncrypter(block, iv)
			if err != nil {
				t.Fatal(err)
			}

			got := make([]byte, len(plaintext))
			enc.CryptBlocks(got, plaintext)

			if !bytes.Equal(got, want) {
				t.Fatalf("ECB encrypt = %x, want %x", got, want)
			}

			dec, err := spec.NewDecrypter(block, iv)
			if err != nil {
				t.Fatal(err)
			}

			back := make([]byte, len(got))
			dec.CryptBlocks(back, got)

			if !bytes.Equal(back, plaintext) {
				t.Errorf("ECB decrypt = %x, want %x", back, plaintext)
			}
		})
	}
}

func TestECBRepeatsIdenticalBlocks(t *testing.T) {
	t.Parallel()

	spec, _ := cipherspec.Resolve(cipherspec.DES, cipherspec.ECB)

	block, err := spec.NewBlock([]byte("8bytekey"))
	if err != nil {
		t.Fatal(err)
	}

	enc, _ := spec.NewEncrypter(block, make([]byte, spec.BlockSize))

	plaintext := []byte("ABCDEFGHABCDEFGH")
	out := make([]byte, len(plaintext))
	enc.CryptBlocks(out, plaintext)

	if !bytes.Equal(out[:8], out[8:]) {
		t.Errorf("ECB blocks differ: %x vs %x", out[:8], out[8:])
	}
}
