// Command c2c is the Care2Connect intake CLI: one-off extractions, rule
// overlay validation, and an embedded API server.
package main

import (
	"fmt"
	"os"

	"github.com/richlegrande-dot/care2connect-intake/internal/interfaces/cli"
)

// Populated via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	root := cli.NewRootCommand(fmt.Sprintf("%s (%s)", version, commit))
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
