// Package cipherspec resolves an algorithm and mode selection into the key size,
// block size and block-mode constructors the streaming engine needs.
//
// The supported set is closed: new algorithms or modes are added by extending
// the tables in this package.
package cipherspec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des" //nolint:gosec // DES and TripleDES are part of the supported set
	"fmt"
	"strings"

	"github.com/idelchi/gocrypt/internal/errors"
)

// Algorithm identifies a block cipher.
type Algorithm byte

const (
	// AES is AES-256.
	AES Algorithm = iota + 1
	// DES is single DES.
	DES
	// TripleDES is three-key DES-EDE.
	TripleDES
)

// Mode identifies a block-cipher mode of operation.
type Mode byte

const (
	// CBC is Cipher Block Chaining.
	CBC Mode = iota + 1
	// ECB is Electronic Codebook. Identical plaintext blocks yield identical ciphertext blocks.
	ECB
)

// Spec is a resolved (algorithm, mode) selection.
type Spec struct {
	Algorithm Algorithm
	Mode      Mode
	KeySize   int
	BlockSize int
}

type algorithmInfo struct {
	name      string
	keySize   int
	blockSize int
	newBlock  func(key []byte) (cipher.Block, error)
}

//nolint:gochecknoglobals // lookup table for the closed algorithm set
var algorithms = map[Algorithm]algorithmInfo{
	AES:       {name: "AES", keySize: 32, blockSize: aes.BlockSize, newBlock: aes.NewCipher},
	DES:       {name: "DES", keySize: 8, blockSize: des.BlockSize, newBlock: des.NewCipher},
	TripleDES: {name: "TripleDES", keySize: 24, blockSize: des.BlockSize, newBlock: des.NewTripleDESCipher},
}

type modeInfo struct {
	name         string
	newEncrypter func(b cipher.Block, iv []byte) cipher.BlockMode
	newDecrypter func(b cipher.Block, iv []byte) cipher.BlockMode
}

//nolint:gochecknoglobals // lookup table for the closed mode set
var modes = map[Mode]modeInfo{
	CBC: {name: "CBC", newEncrypter: cipher.NewCBCEncrypter, newDecrypter: cipher.NewCBCDecrypter},
	ECB: {name: "ECB", newEncrypter: newECBEncrypter, newDecrypter: newECBDecrypter},
}

// Resolve returns the Spec for the given algorithm and mode.
func Resolve(alg Algorithm, mode Mode) (Spec, error) {
	info, ok := algorithms[alg]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %d", errors.ErrUnsupportedAlgorithm, alg)
	}

	if _, ok := modes[mode]; !ok {
		return Spec{}, fmt.Errorf("%w: %d", errors.ErrUnsupportedMode, mode)
	}

	return Spec{
		Algorithm: alg,
		Mode:      mode,
		KeySize:   info.keySize,
		BlockSize: info.blockSize,
	}, nil
}

// NewBlock instantiates the block cipher keyed with key.
func (s Spec) NewBlock(key []byte) (cipher.Block, error) {
	info, ok := algorithms[s.Algorithm]
	if !ok {
		return nil, fmt.Errorf("%w: %d", errors.ErrUnsupportedAlgorithm, s.Algorithm)
	}

	if len(key) != info.keySize {
		return nil, errors.NewKeySizeError(info.keySize, len(key))
	}

	block, err := info.newBlock(key)
	if err != nil {
		return nil, fmt.Errorf("creating %s cipher: %w", info.name, err)
	}

	return block, nil
}

// NewEncrypter returns the encrypting block mode. ECB ignores iv.
func (s Spec) NewEncrypter(block cipher.Block, iv []byte) (cipher.BlockMode, error) {
	info, err := s.mode(iv)
	if err != nil {
		return nil, err
	}

	return info.newEncrypter(block, iv), nil
}

// NewDecrypter returns the decrypting block mode. ECB ignores iv.
func (s Spec) NewDecrypter(block cipher.Block, iv []byte) (cipher.BlockMode, error) {
	info, err := s.mode(iv)
	if err != nil {
		return nil, err
	}

	return info.newDecrypter(block, iv), nil
}

func (s Spec) mode(iv []byte) (modeInfo, error) {
	info, ok := modes[s.Mode]
	if !ok {
		return modeInfo{}, fmt.Errorf("%w: %d", errors.ErrUnsupportedMode, s.Mode)
	}

	if len(iv) != s.BlockSize {
		return modeInfo{}, fmt.Errorf("%w: expected %d bytes, got %d", errors.ErrInvalidIV, s.BlockSize, len(iv))
	}

	return info, nil
}

// String returns e.g. "AES/CBC".
func (s Spec) String() string {
	return s.Algorithm.String() + "/" + s.Mode.String()
}

func (a Algorithm) String() string {
	if info, ok := algorithms[a]; ok {
		return info.name
	}

	return fmt.Sprintf("Algorithm(%d)", a)
}

func (m Mode) String() string {
	if info, ok := modes[m]; ok {
		return info.name
	}

	return fmt.Sprintf("Mode(%d)", m)
}

// Algorithms lists the supported algorithms.
func Algorithms() []Algorithm {
	return []Algorithm{AES, DES, TripleDES}
}

// Modes lists the supported modes.
func Modes() []Mode {
	return []Mode{CBC, ECB}
}

// ParseAlgorithm parses a case-insensitive algorithm name.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "aes", "aes256", "aes-256":
		return AES, nil
	case "des":
		return DES, nil
	case "3des", "tripledes", "des3", "des-ede3":
		return TripleDES, nil
	default:
		return 0, fmt.Errorf("%w: %q", errors.ErrUnsupportedAlgorithm, name)
	}
}

// ParseMode parses a case-insensitive mode name.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "cbc":
		return CBC, nil
	case "ecb":
		return ECB, nil
	default:
		return 0, fmt.Errorf("%w: %q", errors.ErrUnsupportedMode, name)
	}
}
