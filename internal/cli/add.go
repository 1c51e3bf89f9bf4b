package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spindlespace/spindle/pkg/errors"
	"github.com/spindlespace/spindle/pkg/railgen"
	"github.com/spindlespace/spindle/pkg/snapshot"
	"github.com/spindlespace/spindle/pkg/topo"
	"github.com/spindlespace/spindle/pkg/universe"
)

// addCommand creates the add command for hand-editing snapshots.
func (c *CLI) addCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a system or rail to an existing snapshot",
		Long: `Add a system or rail to an existing snapshot.

Hand-added entities get fresh random identifiers rather than seeded
ones, so they never collide with what generation minted. The snapshot
is rewritten in place.`,
	}
	cmd.AddCommand(c.addSystemCommand())
	cmd.AddCommand(c.addRailCommand())
	return cmd
}

func (c *CLI) addSystemCommand() *cobra.Command {
	var (
		x, y, z    float64
		population int64
		deposits   float64
	)

	cmd := &cobra.Command{
		Use:   "system [snapshot.json] NAME",
		Short: "Add a star system to a snapshot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[1]
			if name == "" {
				return errors.New(errors.ErrCodeInvalidInput, "system name cannot be empty")
			}
			if deposits < 0 {
				return errors.New(errors.ErrCodeInvalidInput,
					"gravitium deposits must not be negative: %f", deposits)
			}

			g, err := loadSnapshot(args[0])
			if err != nil {
				return err
			}

			sys := universe.System{
				ID:                universe.RandomIDs{}.SystemID(),
				Name:              name,
				Position:          universe.Position{X: x, Y: y, Z: z},
				StarType:          universe.StarG,
				Population:        population,
				TechLevel:         universe.TierRailAge,
				GravitiumDeposits: deposits,
			}
			if err := g.AddSystem(sys); err != nil {
				return fmt.Errorf("add system: %w", err)
			}
			if err := snapshot.WriteFile(g, args[0]); err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}

			printSuccess("added system %s (%s)", sys.ID, sys.Name)
			printFile(args[0])
			return nil
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "position x (light-years)")
	cmd.Flags().Float64Var(&y, "y", 0, "position y (light-years)")
	cmd.Flags().Float64Var(&z, "z", 0, "position z (light-years)")
	cmd.Flags().Int64Var(&population, "population", 0, "off-world population")
	cmd.Flags().Float64Var(&deposits, "deposits", 0, "gravitium deposits (tons)")
	return cmd
}

func (c *CLI) addRailCommand() *cobra.Command {
	var (
		intervalDays int
		completed    string
	)

	cmd := &cobra.Command{
		Use:   "rail [snapshot.json] FROM TO",
		Short: "Add a rail between two systems in a snapshot",
		Long: `Add a rail between two systems in a snapshot.

The rail's class and capacity follow the estimated trade between the
endpoints, the same way generation sizes rails. The new rail is
rejected if the pair is already linked in that direction or if adding
it would close a causal loop.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromID, toID := args[1], args[2]
			if err := errors.ValidateSystemID(fromID); err != nil {
				return err
			}
			if err := errors.ValidateSystemID(toID); err != nil {
				return err
			}

			g, err := loadSnapshot(args[0])
			if err != nil {
				return err
			}
			from, ok := g.System(fromID)
			if !ok {
				return errors.New(errors.ErrCodeSystemNotFound, "system %s not in galaxy", fromID)
			}
			to, ok := g.System(toID)
			if !ok {
				return errors.New(errors.ErrCodeSystemNotFound, "system %s not in galaxy", toID)
			}
			if _, exists := g.RailBetween(fromID, toID); exists {
				return errors.New(errors.ErrCodeInvalidRail,
					"rail from %s to %s already exists", fromID, toID)
			}

			date, err := parseDepart(completed, departDefault(g))
			if err != nil {
				return err
			}
			rail, err := railgen.ManualRail(universe.RandomIDs{}, from, to, intervalDays, date)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidRail, err, "build rail")
			}

			if topo.HasCycle(topo.EdgesOf(append(g.Rails(), rail))) {
				return errors.New(errors.ErrCodeInvalidRail,
					"rail from %s to %s would close a causal loop", fromID, toID)
			}

			if err := g.AddRail(rail); err != nil {
				return fmt.Errorf("add rail: %w", err)
			}
			if err := snapshot.WriteFile(g, args[0]); err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}

			printSuccess("added rail %s (%s %s %s, class %s, every %dd)",
				rail.ID, rail.From, iconArrow, rail.To, rail.Class, rail.IntervalDays)
			printFile(args[0])
			return nil
		},
	}

	cmd.Flags().IntVar(&intervalDays, "interval", 0, "firing interval in days (0 picks the class default)")
	cmd.Flags().StringVar(&completed, "completed", "", "completion date (RFC 3339 or YYYY-MM-DD)")
	return cmd
}
