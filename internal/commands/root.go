package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Nikita21537/cloak/internal/config"
)

// NewRootCommand creates the root command with the flags shared by all
// subcommands.
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:     "cloak [flags] command [flags]",
		Short:   "File encryption utility",
		Version: version,
		Long: `A file encryption utility built on a self-contained block cipher engine.
Provides commands for encrypting and decrypting files and for packing
whole directories into encrypted tar archives.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringP("passphrase", "p", "", "Passphrase (prompted for when neither this nor --passphrase-file is given)")
	root.PersistentFlags().String("passphrase-file", "", "Path to a file containing the passphrase")
	root.PersistentFlags().IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	root.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")

	root.PersistentFlags().String("encrypt-ext", ".clk", "Suffix appended to encrypted files")
	root.PersistentFlags().String("decrypt-ext", "", "Suffix appended to decrypted files, after stripping the encrypted suffix")

	root.AddCommand(
		NewEncryptCommand(),
		NewDecryptCommand(),
		NewPackCommand(),
		NewUnpackCommand(),
	)

	return root
}

// bindFlags wires the command's flag set (including inherited persistent
// flags) into viper so the config struct can be unmarshalled from it.
func bindFlags(cmd *cobra.Command) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	if err := viper.BindPFlags(cmd.InheritedFlags()); err != nil {
		return fmt.Errorf("binding inherited flags: %w", err)
	}

	return nil
}

// loadConfig unmarshals the bound flags into a Config, records the
// positional arguments, and validates the result.
func loadConfig(args []string) (*config.Config, error) {
	cfg := &config.Config{}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Files = args

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
