package commands

import (
	"github.com/spf13/cobra"

	"github.com/Nikita21537/cloak/internal/logic"
)

// NewPackCommand creates the pack subcommand: tar a directory and encrypt
// the archive.
func NewPackCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack [flags] directory archive",
		Short: "Pack a directory into an encrypted tar archive",
		Args:  cobra.ExactArgs(2),
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

			return logic.RunPack(cfg, args[0], args[1], passphrase)
		},
	}

	cmd.Flags().StringSliceP("exclude", "x", nil, "Glob patterns to exclude from the archive (repeatable)")

	return cmd
}
