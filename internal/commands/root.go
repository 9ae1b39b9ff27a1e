package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/idelchi/gogen/pkg/cobraext"

	"github.com/idelchi/gocrypt/internal/cipherspec"
	"github.com/idelchi/gocrypt/internal/keys"
)

// NewRootCommand creates the root command with common configuration.
// Flags are bound to viper together with GOCRYPT_* environment variables
// (dashes become underscores) before any subcommand runs.
func NewRootCommand(version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "gocrypt [flags] command [flags]"
	root.Short = "File encryption utility"
	root.Long = `A file encryption utility for AES, DES and TripleDES in CBC or ECB mode.
Keys are derived from a password with PBKDF2-HMAC-SHA256 or given directly.
Provides commands for key generation, encryption, and decryption.`

	root.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(NewEncryptCommand(), NewDecryptCommand(), NewKeygenCommand())

	return root
}

// cryptFlags adds the flags shared by encrypt and decrypt.
func cryptFlags(flags *pflag.FlagSet) {
	flags.BoolP("show", "s", false, "Show the configuration and exit")
	flags.StringP("algorithm", "a", "aes", fmt.Sprintf("Cipher algorithm %v", cipherspec.Algorithms()))
	flags.StringP("mode", "m", "cbc", fmt.Sprintf("Block cipher mode %v", cipherspec.Modes()))

	flags.StringP("password", "p", "", "Password to derive the key from (prompted if no credential is given)")
	flags.StringP("key", "k", "", "Raw key, base64-encoded")
	flags.StringP("key-file", "f", "", "Path to a file with the base64-encoded raw key")
	flags.IntP("iterations", "i", keys.DefaultIterations, "PBKDF2 iteration count; must match between encryption and decryption")

	flags.IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.Bool("dry", false, "Show what would be processed without writing anything")
	flags.BoolP("delete", "d", false, "Delete the original file after successful encryption/decryption")
	flags.Bool("stats", false, "Print statistics after processing")
	flags.Bool("preserve-timestamps", false, "Copy the modification time of each input to its output")

	flags.StringSlice("include", nil, "Glob patterns selecting files inside directory arguments")
	flags.StringSlice("exclude", nil, "Glob patterns excluding files inside directory arguments")
	flags.String("include-from", "", "JSON (with comments) file with a list of include patterns")
	flags.String("exclude-from", "", "JSON (with comments) file with a list of exclude patterns")

	flags.String("encrypt-ext", ".enc", "Suffix to append to encrypted files")
	flags.String("decrypt-ext", "", "Suffix to append to decrypted files, after stripping the encrypted suffix")
}
