package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spindlespace/spindle/pkg/render"
)

// Supported map output formats.
const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// mapCommand creates the map command for rendering the rail network.
func (c *CLI) mapCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
		isolated bool
	)

	cmd := &cobra.Command{
		Use:   "map [snapshot.json]",
		Short: "Render the rail network as DOT or SVG",
		Long: `Render the rail network as DOT or SVG.

Systems keep their real positions; rails draw heavier with class, and
source-vein systems carry a double outline. The DOT output can also be
processed with external Graphviz tools.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatDOT && format != formatSVG {
				return fmt.Errorf("unknown format %q (must be %s or %s)", format, formatDOT, formatSVG)
			}

			g, err := loadSnapshot(args[0])
			if err != nil {
				return err
			}

			dot := render.ToDOT(g, render.Options{Detailed: detailed, ShowIsolated: isolated})
			data := []byte(dot)
			if format == formatSVG {
				if data, err = render.SVG(dot); err != nil {
					return fmt.Errorf("render svg: %w", err)
				}
			}

			if output == "" {
				_, err := os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write map: %w", err)
			}
			printSuccess("Rendered %s map of %s", format, g.Name)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatDOT, "output format: dot or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include population and tech in node labels")
	cmd.Flags().BoolVar(&isolated, "isolated", false, "include systems without rail connections")

	return cmd
}
