package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/spindlespace/spindle/pkg/errors"
	"github.com/spindlespace/spindle/pkg/timetable"
)

// timetableCommand creates the timetable command for listing firings.
func (c *CLI) timetableCommand() *cobra.Command {
	var (
		from  string
		count int
	)

	cmd := &cobra.Command{
		Use:   "timetable [snapshot.json] RAIL",
		Short: "List upcoming firings for a rail",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			railID := args[1]
			if err := errors.ValidateRailID(railID); err != nil {
				return err
			}

			g, err := loadSnapshot(args[0])
			if err != nil {
				return err
			}
			rail, ok := g.Rail(railID)
			if !ok {
				return errors.New(errors.ErrCodeRailNotFound, "rail %s not in galaxy", railID)
			}

			at, err := parseDepart(from, departDefault(g))
			if err != nil {
				return err
			}

			firings := timetable.Firings(rail, at, count)
			if len(firings) == 0 {
				printWarning("%s has no schedule", railID)
				return nil
			}

			printInfo("%s  %s %s %s  every %dd", rail.ID, rail.From, iconArrow, rail.To, rail.IntervalDays)
			for _, fire := range firings {
				printDetail("%s", fire.Format(time.RFC3339))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "list firings at or after this time (RFC 3339 or YYYY-MM-DD)")
	cmd.Flags().IntVarP(&count, "count", "n", 10, "number of firings to list")
	return cmd
}
