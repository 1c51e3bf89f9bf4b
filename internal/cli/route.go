package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/spindlespace/spindle/pkg/errors"
	"github.com/spindlespace/spindle/pkg/timetable"
	"github.com/spindlespace/spindle/pkg/universe"
)

// routeCommand creates the route command for journey planning.
func (c *CLI) routeCommand() *cobra.Command {
	var (
		depart   string
		prefer   string
		flexDays int
	)

	cmd := &cobra.Command{
		Use:   "route [snapshot.json] FROM TO",
		Short: "Plan a journey between two systems",
		Long: `Plan a journey between two systems.

The journey follows the shortest rail path and waits at each hop for the
next scheduled firing. Travel through a rail is near-instant; the time
cost of a journey is almost entirely waiting for departures.

With --prefer, the departure is chosen from the first rail's firings:
the one closest to the preferred instant within ±--flex days, instead
of the first firing after --depart.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to := args[1], args[2]
			if err := errors.ValidateSystemID(from); err != nil {
				return err
			}
			if err := errors.ValidateSystemID(to); err != nil {
				return err
			}

			g, err := loadSnapshot(args[0])
			if err != nil {
				return err
			}
			if _, ok := g.System(from); !ok {
				return errors.New(errors.ErrCodeSystemNotFound, "system %s not in galaxy", from)
			}
			if _, ok := g.System(to); !ok {
				return errors.New(errors.ErrCodeSystemNotFound, "system %s not in galaxy", to)
			}

			at, err := parseDepart(depart, departDefault(g))
			if err != nil {
				return err
			}
			if prefer != "" {
				preferred, err := parseDepart(prefer, time.Time{})
				if err != nil {
					return err
				}
				window := universe.Days(flexDays)
				at, err = preferredDeparture(g, from, to, preferred, window)
				if err != nil {
					return err
				}
			}

			journey, ok := timetable.PlanJourney(g, from, to, at)
			if !ok {
				return errors.New(errors.ErrCodeNoRoute, "no rail route from %s to %s", from, to)
			}
			printJourney(journey)
			return nil
		},
	}

	cmd.Flags().StringVar(&depart, "depart", "", "departure time (RFC 3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&prefer, "prefer", "", "preferred departure time (RFC 3339 or YYYY-MM-DD)")
	cmd.Flags().IntVar(&flexDays, "flex", 30, "days of flexibility around --prefer")
	return cmd
}

// preferredDeparture resolves the route-scoped nearest firing, mapping
// the absent result to a coded error for the command.
func preferredDeparture(g *universe.Galaxy, from, to string, preferred time.Time, window time.Duration) (time.Time, error) {
	dep, ok := timetable.PreferredDeparture(g, from, to, preferred, window)
	if !ok {
		return time.Time{}, errors.New(errors.ErrCodeNoRoute,
			"no departure from %s to %s within %s of %s",
			from, to, formatDuration(window), preferred.Format(time.RFC3339))
	}
	return dep, nil
}

func printJourney(j timetable.Journey) {
	printSuccess("%s (%d hops, %s)",
		strings.Join(j.Path, " "+iconArrow+" "), len(j.Legs), formatDuration(j.Duration()))
	for _, leg := range j.Legs {
		printDetail("%s  %s %s %s  via %s",
			leg.Departure.Format(time.RFC3339),
			leg.Rail.From, iconArrow, leg.Rail.To, leg.Rail.ID)
	}
	if len(j.Legs) > 0 {
		printDetail("arrive %s", j.Arrival.Format(time.RFC3339))
		if wait := j.Wait(); wait > 0 {
			printDetail("wait %s for the first firing", formatDuration(wait))
		}
	}
}

// formatDuration renders a journey duration in days and hours, the scale
// timetables actually run on.
func formatDuration(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	switch {
	case days == 0:
		return fmt.Sprintf("%dh", hours)
	case hours == 0:
		return fmt.Sprintf("%dd", days)
	default:
		return fmt.Sprintf("%dd %dh", days, hours)
	}
}
