package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/gocrypt/internal/cipherspec"
	"github.com/idelchi/gocrypt/internal/config"
	"github.com/idelchi/gocrypt/internal/logic"
)

// NewKeygenCommand creates a new cobra command for the keygen subcommand.
func NewKeygenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "keygen [flags]",
		Aliases: []string{"gen"},
		Short:   "Generate a random key",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cfg config.Keygen
			if err := viper.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("parsing configuration: %w", err)
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			logic.NewLogger(cfg.LogLevel, cmd.ErrOrStderr()).
				Debug("generating key", "algorithm", cfg.Spec.Algorithm.String(), "bytes", cfg.Spec.KeySize)

			return logic.Keygen(&cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringP("algorithm", "a", "aes", fmt.Sprintf("Cipher algorithm %v", cipherspec.Algorithms()))
	cmd.Flags().StringP("output", "o", "", "Write the key to this file instead of printing it")

	return cmd
}
