package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/Nikita21537/cloak/internal/config"
)

var errPassphraseMismatch = errors.New("passphrases do not match")

// resolvePassphrase obtains the passphrase from the flag, the passphrase
// file, or an interactive no-echo prompt, in that order. When prompting
// and confirm is set (encrypt paths), the passphrase must be entered twice.
func resolvePassphrase(cfg *config.Config, confirm bool) (string, error) {
	if cfg.Passphrase != "" {
		return cfg.Passphrase, nil
	}

	if cfg.PassphraseFile != "" {
		content, err := os.ReadFile(cfg.PassphraseFile)
		if err != nil {
			return "", fmt.Errorf("reading passphrase file: %w", err)
		}

		return strings.TrimRight(string(content), "\r\n"), nil
	}

	passphrase, err := prompt("Passphrase: ")
	if err != nil {
		return "", err
	}

	if confirm {
		again, err := prompt("Confirm passphrase: ")
		if err != nil {
			return "", err
		}

		if passphrase != again {
			return "", errPassphraseMismatch
		}
	}

	return passphrase, nil
}

func prompt(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)

	passphrase, err := term.ReadPassword(int(os.Stdin.Fd()))

	fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}

	return string(passphrase), nil
}
