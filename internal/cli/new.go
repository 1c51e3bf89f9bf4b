package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spindlespace/spindle/pkg/config"
	"github.com/spindlespace/spindle/pkg/errors"
	"github.com/spindlespace/spindle/pkg/pipeline"
	"github.com/spindlespace/spindle/pkg/snapshot"
)

// newCommand creates the "new" command for generating a galaxy.
func (c *CLI) newCommand() *cobra.Command {
	var (
		seed        uint64
		name        string
		systems     int
		radius      float64
		output      string
		noCache     bool
		refresh     bool
		skipOffsets bool
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generate a galaxy and write its snapshot",
		Long: `Generate a galaxy and write its snapshot.

Worldgen places star systems, railgen grows the rail network from the
gravitium source veins, and the finished galaxy is checked against the
network invariants. The same seed with the same options reproduces the
galaxy bit for bit.

Results are cached locally; use --refresh to regenerate.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := cfg.PipelineOptions()
			if cmd.Flags().Changed("seed") {
				opts.Seed = seed
			}
			if cmd.Flags().Changed("name") {
				opts.Name = name
			}
			if cmd.Flags().Changed("systems") {
				opts.World.SystemCount = systems
			}
			if cmd.Flags().Changed("radius") {
				opts.World.Radius = radius
			}
			opts.Refresh = refresh
			opts.SkipOffsets = skipOffsets
			if opts.Name != "" {
				if err := errors.ValidateGalaxyName(opts.Name); err != nil {
					return err
				}
			}
			return c.runNew(cmd.Context(), cfg, opts, output, noCache)
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", pipeline.DefaultSeed, "generation seed")
	cmd.Flags().StringVar(&name, "name", pipeline.DefaultName, "galaxy name")
	cmd.Flags().IntVar(&systems, "systems", 0, "number of star systems")
	cmd.Flags().Float64Var(&radius, "radius", 0, "galaxy disc radius in light-years")
	cmd.Flags().StringVarP(&output, "output", "o", "galaxy.json", "snapshot output file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "regenerate even on a cache hit")
	cmd.Flags().BoolVar(&skipOffsets, "skip-offsets", false, "skip hub schedule staggering")

	return cmd
}

// runNew executes the pipeline and writes the snapshot.
func (c *CLI) runNew(ctx context.Context, cfg *config.Config, opts pipeline.Options, output string, noCache bool) error {
	if err := errors.ValidateSnapshotPath(output); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Generating galaxy...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return fmt.Errorf("generate: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Built %d systems and %d rails",
		result.Stats.SystemCount, result.Stats.RailCount))

	if err := snapshot.WriteFile(result.Galaxy, output); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	printSuccess("Generated %s (%s)", result.Galaxy.Name, result.Galaxy.ID)
	printStats(result.Stats.SystemCount, result.Stats.RailCount, result.CacheInfo.GalaxyHit)
	if n := len(result.Validation.Findings); n > 0 {
		printWarning("%d validation findings", n)
		for _, f := range result.Validation.Findings {
			printDetail("%s", f)
		}
	}
	printFile(output)
	printNewline()
	printNextStep("Inspect it", fmt.Sprintf("%s info %s", appName, output))
	return nil
}
