package commands

import (
	"github.com/spf13/cobra"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "decrypt [flags] paths...",
		Aliases: []string{"dec"},
		Short:   "Decrypt files",
		Long: `Decrypt files produced by encrypt. The algorithm, mode and iteration count
must match the ones used for encryption; they are not stored in the file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, true)
		},
	}

	cryptFlags(cmd.Flags())

	return cmd
}
