// exoai is the command-line client for the exoplanet inference service.
package main

import (
	"fmt"
	"os"

	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/interfaces/cli"
)

// Set at build time via -ldflags "-X main.version=...".
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
