package cipherspec

import "crypto/cipher"

// ecb encrypts or decrypts each block independently.
type ecb struct {
	block   cipher.Block
	decrypt bool
}

func newECBEncrypter(b cipher.Block, _ []byte) cipher.BlockMode {
	return &ecb{block: b}
}

func newECBDecrypter(b cipher.Block, _ []byte) cipher.BlockMode {
	return &ecb{block: b, decrypt: true}
}

func (e *ecb) BlockSize() int {
	return e.block.BlockSize()
}

// CryptBlocks panics on partial blocks, matching the cipher.BlockMode contract.
func (e *ecb) CryptBlocks(dst, src []byte) {
	size := e.block.BlockSize()

	if len(src)%size != 0 {
		panic("cipherspec: input not full blocks")
	}

	if len(dst) < len(src) {
		panic("cipherspec: output smaller than input")
	}

	for i := 0; i < len(src); i += size {
		if e.decrypt {
			e.block.Decrypt(dst[i:i+size], src[i:i+size])
		} else {
			e.block.Encrypt(dst[i:i+size], src[i:i+size])
		}
	}
}
