package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/richlegrande-dot/care2connect-intake/internal/intelligence/extraction"
)

// newRulesCommand groups rule-snapshot tooling.
func newRulesCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and validate rule overlays",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <file>",
		Short: "Validate a rules overlay without installing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := extraction.LoadRulesFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s (version %s)\n", args[0], rs.Version)
			return nil
		},
	})
	return cmd
}
