package encryption_test

import (
	"bytes"
	"testing"

	"github.com/idelchi/gocrypt/internal/encryption"
	"github.com/idelchi/gocrypt/internal/errors"
)

func TestPad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int
		want []byte
	}{
		{in: 0, want: bytes.Repeat([]byte{8}, 8)},
		{in: 1, want: bytes.Repeat([]byte{7}, 7)},
		{in: 7, want: []byte{1}},
		{in: 8, want: bytes.Repeat([]byte{8}, 8)},
	}

	for _, tt := range tests {
		data := bytes.Repeat([]byte{0xFF}, tt.in)
		got := encryption.Pad(data, 8)

		if len(got)%8 != 0 {
			t.Errorf("Pad(%d) length %d is not block aligned", tt.in, len(got))
		}

		if !bytes.Equal(got[tt.in:], tt.want) {
			t.Errorf("Pad(%d) padding = %v, want %v", tt.in, got[tt.in:], tt.want)
		}
	}
}

func TestUnpad(t *testing.T) {
	t.Parallel()

	valid := []byte{'a', 'b', 'c', 'd', 'e', 3, 3, 3}

	got, err := encryption.Unpad(valid, 8)
	if err != nil {
		t.Fatal(err)
	}

	if string(got) != "abcde" {
		t.Errorf("Unpad = %q, want %q", got, "abcde")
	}

	invalid := map[string][]byte{
		"empty":             {},
		"not aligned":       {1, 2, 3},
		"zero pad":          {1, 2, 3, 4, 5, 6, 7, 0},
		"pad above block":   {9, 9, 9, 9, 9, 9, 9, 9},
		"inconsistent pad":  {1, 2, 3, 4, 5, 2, 3, 3},
		"full block broken": {8, 8, 8, 8, 8, 8, 7, 8},
	}

	for name, data := range invalid {
		if _, err := encryption.Unpad(data, 8); !errors.Is(err, errors.ErrInvalidPadding) {
			t.Errorf("%s: Unpad error = %v, want ErrInvalidPadding", name, err)
		}
	}
}
