package encryption

import (
	"bytes"
	"fmt"

	"github.com/idelchi/gocrypt/internal/errors"
)

// Pad appends PKCS#7 padding to data so its length is a multiple of blockSize.
// A full block of padding is added when data is already aligned.
func Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	padText := bytes.Repeat([]byte{byte(padding)}, padding)

	return append(data, padText...)
}

// Unpad removes PKCS#7 padding from data.
// It returns ErrInvalidPadding if the padding is malformed.
func Unpad(data []byte, blockSize int) ([]byte, error) {
	length := len(data)
	if length == 0 || length%blockSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of %d-byte blocks", errors.ErrInvalidPadding, length, blockSize)
	}

	padding := int(data[length-1])
	if padding == 0 || padding > blockSize {
		return nil, fmt.Errorf("%w: padding size %d", errors.ErrInvalidPadding, padding)
	}

	for i := length - padding; i < length; i++ {
		if data[i] != byte(padding) {
			return nil, errors.ErrInvalidPadding
		}
	}

	return data[:length-padding], nil
}
