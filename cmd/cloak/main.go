// cloak encrypts and decrypts files and directory archives with a
// self-contained block cipher engine.
package main

import (
	"fmt"
	"os"

	"github.com/Nikita21537/cloak/internal/commands"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := commands.NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
