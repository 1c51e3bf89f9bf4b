package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/spindlespace/spindle/pkg/timetable"
)

// reportCommand creates the report command for all-pairs connectivity.
func (c *CLI) reportCommand() *cobra.Command {
	var (
		depart  string
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "report [snapshot.json]",
		Short: "Compute the all-pairs connectivity report",
		Long: `Compute the all-pairs connectivity report.

For every ordered pair of systems the report records whether a rail
route exists and, when it does, the hop count and journey time from
first firing to final arrival. Reports are cached per snapshot.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadSnapshot(args[0])
			if err != nil {
				return err
			}
			at, err := parseDepart(depart, departDefault(g))
			if err != nil {
				return err
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), cfg, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			spinner := newSpinnerWithContext(cmd.Context(), "Computing connectivity...")
			spinner.Start()
			report, err := runner.Report(cmd.Context(), g, at)
			if err != nil {
				spinner.StopWithError("Report failed")
				return fmt.Errorf("report: %w", err)
			}
			spinner.Stop()

			if output != "" {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return fmt.Errorf("encode report: %w", err)
				}
				if err := os.WriteFile(output, append(data, '\n'), 0o644); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				printFile(output)
				return nil
			}

			printReport(g.Name, report)
			return nil
		},
	}

	cmd.Flags().StringVar(&depart, "depart", "", "departure time (RFC 3339 or YYYY-MM-DD)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the full report as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func printReport(name string, report *timetable.Report) {
	reachable := 0
	var longest time.Duration
	var longestPair string
	for _, conn := range report.Connections {
		if !conn.Reachable {
			continue
		}
		reachable++
		if conn.Duration > longest {
			longest = conn.Duration
			longestPair = conn.From + " " + iconArrow + " " + conn.To
		}
	}

	printSuccess("%s: %d of %d pairs reachable", name, reachable, len(report.Connections))
	printDetail("departure %s", report.Departure.Format(time.RFC3339))
	if longestPair != "" {
		printDetail("longest journey %s (%s)", longestPair, formatDuration(longest))
	}
}
