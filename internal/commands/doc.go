// Package commands provides the command-line interface for gocrypt.
//
// It implements commands for:
//   - encryption
//   - decryption
//   - key generation
//
// Flags can also be set through GOCRYPT_* environment variables, with dashes
// replaced by underscores (e.g. GOCRYPT_KEY_FILE).
package commands
