package encryption

import (
	"context"
	"crypto/cipher"
	"fmt"
	"io"

	"github.com/idelchi/gocrypt/internal/cipherspec"
	"github.com/idelchi/gocrypt/internal/errors"
)

// EncryptStream reads plaintext from r and writes PKCS#7-padded ciphertext to w.
// The IV is not written; framing is the caller's concern.
func EncryptStream(ctx context.Context, r io.Reader, w io.Writer, spec cipherspec.Spec, key, iv []byte, opts ...Option) error {
	block, err := spec.NewBlock(key)
	if err != nil {
		return err
	}

	mode, err := spec.NewEncrypter(block, iv)
	if err != nil {
		return err
	}

	o := newOptions(spec.BlockSize, opts)

	buf, release := getBuffer(o.chunkSize)
	defer release()

	for {
		if err := ctx.Err(); err != nil {
			return errors.NewIOError("encrypt", "", err)
		}

		n, err := io.ReadFull(r, buf[:o.chunkSize])

		switch {
		case err == nil:
			mode.CryptBlocks(buf[:n], buf[:n])

			if _, err := w.Write(buf[:n]); err != nil {
				return errors.NewIOError("write ciphertext", "", err)
			}
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			return encryptFinal(w, mode, buf[:n], spec.BlockSize)
		default:
			return errors.NewIOError("read plaintext", "", err)
		}
	}
}

// encryptFinal pads the remaining plaintext and writes it with a single Write.
func encryptFinal(w io.Writer, mode cipher.BlockMode, rest []byte, blockSize int) error {
	final := Pad(rest, blockSize)
	mode.CryptBlocks(final, final)

	if _, err := w.Write(final); err != nil {
		return errors.NewIOError("write final block", "", err)
	}

	return nil
}

// DecryptStream reads ciphertext from r and writes the unpadded plaintext to w.
// The last block is held back until the end of input so its padding can be
// checked and stripped. Plaintext preceding it is written before the padding
// is verified, so callers must discard w on error.
//
//nolint:cyclop // single read loop with hold-back of the last block
func DecryptStream(ctx context.Context, r io.Reader, w io.Writer, spec cipherspec.Spec, key, iv []byte, opts ...Option) error {
	block, err := spec.NewBlock(key)
	if err != nil {
		return err
	}

	mode, err := spec.NewDecrypter(block, iv)
	if err != nil {
		return err
	}

	o := newOptions(spec.BlockSize, opts)

	buf, release := getBuffer(o.chunkSize)
	defer release()

	blockSize := spec.BlockSize
	held := make([]byte, 0, blockSize)

	defer clear(held[:cap(held)])

	for eof := false; !eof; {
		if err := ctx.Err(); err != nil {
			return errors.NewIOError("decrypt", "", err)
		}

		n, err := io.ReadFull(r, buf[:o.chunkSize])

		switch {
		case err == nil:
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			eof = true
		default:
			return errors.NewIOError("read ciphertext", "", err)
		}

		if n%blockSize != 0 {
			return fmt.Errorf("%w: ciphertext is not a multiple of the %d-byte block size",
				errors.ErrUnexpectedEndOfStream, blockSize)
		}

		if n == 0 {
			continue
		}

		if len(held) > 0 {
			if _, err := w.Write(held); err != nil {
				return errors.NewIOError("write plaintext", "", err)
			}

			held = held[:0]
		}

		mode.CryptBlocks(buf[:n], buf[:n])

		if n > blockSize {
			if _, err := w.Write(buf[:n-blockSize]); err != nil {
				return errors.NewIOError("write plaintext", "", err)
			}
		}

		held = append(held, buf[n-blockSize:n]...)
	}

	if len(held) == 0 {
		return fmt.Errorf("%w: no ciphertext after header", errors.ErrUnexpectedEndOfStream)
	}

	plain, err := Unpad(held, blockSize)
	if err != nil {
		return err
	}

	if len(plain) > 0 {
		if _, err := w.Write(plain); err != nil {
			return errors.NewIOError("write final block", "", err)
		}
	}

	return nil
}
