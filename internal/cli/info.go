package cli

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/spindlespace/spindle/pkg/railgen"
	"github.com/spindlespace/spindle/pkg/universe"
)

// infoCommand creates the info command for summarizing a snapshot.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info [snapshot.json]",
		Short: "Summarize a snapshot's systems and rail network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadSnapshot(args[0])
			if err != nil {
				return err
			}
			printGalaxyInfo(g)
			return nil
		},
	}
}

func printGalaxyInfo(g *universe.Galaxy) {
	stats := railgen.Stats(g)

	fmt.Println(StyleTitle.Render(g.Name))
	printKeyValue("id", g.ID)
	printKeyValue("seed", strconv.FormatUint(g.Seed, 10))
	if !g.GenerationTime.IsZero() {
		printKeyValue("generated", g.GenerationTime.Format(time.RFC3339))
	}
	printNewline()

	printKeyValue("systems", fmt.Sprintf("%d (%d connected)", stats.Systems, stats.ConnectedSystems))
	printKeyValue("population", fmt.Sprintf("%d", g.TotalPopulation()))
	printKeyValue("rails", strconv.Itoa(stats.Rails))
	printKeyValue("length", fmt.Sprintf("%.1f LY", stats.TotalLength))
	printKeyValue("gravitium", fmt.Sprintf("%.0ft of %.0ft deposits", stats.TotalCost, stats.TotalDeposits))
	if !stats.FirstCompletion.IsZero() {
		printKeyValue("in service", fmt.Sprintf("%s to %s",
			stats.FirstCompletion.Format("2006-01-02"),
			stats.LastCompletion.Format("2006-01-02")))
	}
	printNewline()

	classes := make([]universe.RailClass, 0, len(stats.RailsByClass))
	for class := range stats.RailsByClass {
		classes = append(classes, class)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	for _, class := range classes {
		printDetail("%s: %d rails", class, stats.RailsByClass[class])
	}

	if veins := g.SourceVeins(); len(veins) > 0 {
		printNewline()
		for _, id := range veins {
			s, _ := g.System(id)
			printDetail("vein %s (%s, %.0ft)", id, s.Name, s.GravitiumDeposits)
		}
	}
}
