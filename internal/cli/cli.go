// Package cli implements the spindle command-line interface.
//
// This package provides commands for generating galaxy snapshots, inspecting
// and validating their rail networks, planning journeys, and rendering rail
// maps. The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - new: Generate a galaxy and write its snapshot
//   - add: Add a system or rail to an existing snapshot
//   - info: Summarize a snapshot's systems and rail network
//   - validate: Check a snapshot against the network invariants
//   - route: Plan a journey between two systems
//   - timetable: List upcoming firings for a rail
//   - map: Render the rail network as DOT or SVG
//   - report: Compute the all-pairs connectivity report
//   - cache: Manage the local generation cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Results of
// generation are cached; --no-cache and --refresh control cache use per run.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/spindlespace/spindle/pkg/buildinfo"
	"github.com/spindlespace/spindle/pkg/cache"
	"github.com/spindlespace/spindle/pkg/config"
	"github.com/spindlespace/spindle/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "spindle"

	// defaultConfigPath is where commands look for the configuration file.
	defaultConfigPath = "spindle.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Spindle builds galaxy settings around interstellar rail networks",
		Long:         `Spindle generates galaxy-scale settings: star systems with planets and civilizations, joined by a directed rail network whose firing timetables never close a causal loop.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", defaultConfigPath, "configuration file")

	// Register all subcommands
	root.AddCommand(c.newCommand())
	root.AddCommand(c.addCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.routeCommand())
	root.AddCommand(c.timetableCommand())
	root.AddCommand(c.mapCommand())
	root.AddCommand(c.reportCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration & Runner Factory
// =============================================================================

// loadConfig reads the configuration file. A missing file yields defaults.
func (c *CLI) loadConfig() (*config.Config, error) {
	return config.Load(c.configPath)
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config, noCache bool) (*pipeline.Runner, error) {
	store, err := openCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func openCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	store, err := cfg.OpenCache(ctx)
	if err != nil {
		// A broken cache never blocks generation.
		return cache.NewNullCache(), nil
	}
	return store, nil
}
