package commands

import (
	"github.com/spf13/cobra"

	"github.com/Nikita21537/cloak/internal/logic"
)

// NewEncryptCommand creates the encrypt subcommand.
func NewEncryptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "encrypt [flags] files...",
		Aliases: []string{"enc"},
		Short:   "Encrypt files",
		Args:    cobra.MinimumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(cmd)
		},
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig(args)
			if err != nil {
				return err
			}

			passphrase, err := resolvePassphrase(cfg, true)
			if err != nil {
				return err
			}

			return logic.Run(cfg, passphrase)
		},
	}

	cmd.Flags().BoolP("delete", "d", false, "Delete the original file after successful encryption")

	return cmd
}
