package commands

import (
	"github.com/spf13/cobra"

	"github.com/Nikita21537/cloak/internal/logic"
)

// NewDecryptCommand creates the decrypt subcommand.
func NewDecryptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "decrypt [flags] files...",
		Aliases: []string{"dec"},
		Short:   "Decrypt files",
		Args:    cobra.MinimumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(cmd)
		},
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig(args)
			if err != nil {
				return err
			}

			cfg.Decrypt = true

			passphrase, err := resolvePassphrase(cfg, false)
			if err != nil {
				return err
			}

			return logic.Run(cfg, passphrase)
		},
	}

	cmd.Flags().BoolP("delete", "d", false, "Delete the encrypted file after successful decryption")

	return cmd
}
