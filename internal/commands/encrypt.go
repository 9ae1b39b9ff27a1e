package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/gocrypt/internal/config"
	"github.com/idelchi/gocrypt/internal/logic"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "encrypt [flags] paths...",
		Aliases: []string{"enc"},
		Short:   "Encrypt files",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, false)
		},
	}

	cryptFlags(cmd.Flags())

	return cmd
}

// run loads and validates the configuration, resolves the credential and
// processes the files.
func run(cmd *cobra.Command, args []string, decrypt bool) error {
	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("parsing configuration: %w", err)
	}

	cfg.Files = args
	cfg.Decrypt = decrypt

	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Show {
		return logic.Show(cmd.OutOrStdout(), cfg)
	}

	cred, err := logic.ResolveCredential(&cfg, logic.Terminal{In: os.Stdin, Out: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}
	defer cred.Zero()

	logger := logic.NewLogger(cfg.LogLevel, cmd.ErrOrStderr())

	return logic.NewRunner(&cfg, cred, logger, cmd.OutOrStdout(), cmd.ErrOrStderr()).Run(cmd.Context())
}
