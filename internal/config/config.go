// Package config holds the runtime configuration shared by all commands.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config carries the flags and positional arguments of a single run.
type Config struct {
	// Passphrase given on the command line. Mutually exclusive with
	// PassphraseFile; when both are empty the commands prompt for it.
	Passphrase string `mapstructure:"passphrase" validate:"excluded_with=PassphraseFile"`

	// PassphraseFile is a path to a file whose trimmed content is the passphrase.
	PassphraseFile string `mapstructure:"passphrase-file"`

	// Parallel bounds concurrent workers, for files and cipher blocks alike.
	Parallel int `mapstructure:"parallel" validate:"min=1"`

	// EncryptSuffix is appended to encrypted outputs and stripped on decrypt.
	EncryptSuffix string `mapstructure:"encrypt-ext" validate:"required"`

	// DecryptSuffix is appended to decrypted outputs after stripping EncryptSuffix.
	DecryptSuffix string `mapstructure:"decrypt-ext"`

	// Exclude lists glob patterns skipped when packing a directory.
	Exclude []string `mapstructure:"exclude"`

	Verbose bool `mapstructure:"verbose"`
	Quiet   bool `mapstructure:"quiet"`

	// Delete removes the source after successful processing.
	Delete bool `mapstructure:"delete"`

	// Decrypt switches the file commands into decryption mode.
	Decrypt bool `mapstructure:"-"`

	// Files are the positional arguments.
	Files []string `mapstructure:"-" validate:"min=1"`
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	return nil
}
