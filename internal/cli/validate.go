package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spindlespace/spindle/pkg/validate"
)

// validateCommand creates the validate command for invariant checking.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [snapshot.json]",
		Short: "Check a snapshot against the network invariants",
		Long: `Check a snapshot against the network invariants.

Every check runs regardless of earlier failures, so the output is the
complete finding list: causal loops, dangling endpoints, duplicate
routes, length mismatches, and gravitium deficits. The command exits
non-zero when any invariant is violated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadSnapshot(args[0])
			if err != nil {
				return err
			}

			result := validate.Galaxy(g)
			if result.Valid {
				printSuccess("%s holds all network invariants", g.Name)
				printStats(g.SystemCount(), g.RailCount(), false)
				return nil
			}

			for _, f := range result.Findings {
				if f.EntityID != "" {
					printWarning("%s [%s] %s", f.Code, f.EntityID, f.Message)
				} else {
					printWarning("%s %s", f.Code, f.Message)
				}
			}
			return fmt.Errorf("%d invariant violations", len(result.Findings))
		},
	}
}
