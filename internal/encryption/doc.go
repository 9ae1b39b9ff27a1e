// Package encryption streams data through a block cipher in CBC or ECB mode
// with PKCS#7 padding.
//
// Input is processed in fixed-size chunks so memory use does not depend on
// the size of the stream. No integrity tag is added: a wrong key is usually,
// but not always, detected as invalid padding.
package encryption
