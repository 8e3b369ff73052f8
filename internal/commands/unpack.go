package commands

import (
	"github.com/spf13/cobra"

	"github.com/Nikita21537/cloak/internal/logic"
)

// NewUnpackCommand creates the unpack subcommand: decrypt an archive and
// extract it into a directory.
func NewUnpackCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unpack [flags] archive directory",
		Short: "Decrypt and extract an encrypted tar archive",
		Args:  cobra.ExactArgs(2),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(cmd)
		},
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig(args)
			if err != nil {
				return err
			}

			passphrase, err := resolvePassphrase(cfg, false)
			if err != nil {
				return err
			}

			return logic.RunUnpack(cfg, args[0], args[1], passphrase)
		},
	}
}
