// Package render draws galaxy rail maps.
//
// # Overview
//
// This package turns a galaxy into Graphviz DOT source and renders it to
// SVG in process. Systems appear as nodes scaled and colored by their
// role; rails appear as directed edges weighted by class, so trunk lines
// read heavier than frontier spurs.
//
// # Usage
//
// Convert a galaxy to DOT format, then render to SVG:
//
//	dot := render.ToDOT(galaxy, render.Options{})
//	svg, err := render.SVG(dot)
//
// The DOT source can also be saved and processed with external Graphviz
// tools.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spindlespace/spindle/pkg/universe"
)

// Edge styling per rail class: trunk lines draw heavy, spurs draw thin
// and dashed.
var classStyles = map[universe.RailClass]string{
	universe.RailA: `color="#c0392b", penwidth=3.0`,
	universe.RailB: `color="#e67e22", penwidth=2.2`,
	universe.RailC: `color="#2980b9", penwidth=1.4`,
	universe.RailD: `color="#7f8c8d", penwidth=0.8, style=dashed`,
}

// Options configures rail map rendering.
type Options struct {
	// Detailed includes population, tech tier, and deposits in node
	// labels. When false, only the system name is shown.
	Detailed bool

	// ShowIsolated includes systems with no rail connections.
	ShowIsolated bool
}

// ToDOT converts a galaxy to Graphviz DOT format for rail map
// visualization. The resulting DOT string can be rendered with [SVG].
//
// Source-vein systems are drawn with a double outline and gravitium
// hubs with a gold fill, so the economic skeleton of the network stands
// out at a glance.
func ToDOT(g *universe.Galaxy, opts Options) string {
	veins := make(map[string]bool)
	for _, id := range g.SourceVeins() {
		veins[id] = true
	}
	connected := make(map[string]bool)
	for _, id := range g.ConnectedSystems() {
		connected[id] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph rails {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10];\n")
	buf.WriteString("\n")

	for _, s := range g.Systems() {
		if !opts.ShowIsolated && !connected[s.ID] {
			continue
		}
		attrs := nodeAttrs(s, veins[s.ID], opts.Detailed)
		fmt.Fprintf(&buf, "  %q [%s];\n", s.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, r := range g.Rails() {
		style := classStyles[r.Class]
		fmt.Fprintf(&buf, "  %q -> %q [%s, tooltip=%q];\n",
			r.From, r.To, style, fmt.Sprintf("%s %s (%.1f LY)", r.ID, r.Class, r.Length))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(s universe.System, isVein, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", nodeLabel(s, detailed))}

	// Position hint in light-years; neato keeps the map's real geometry.
	attrs = append(attrs, fmt.Sprintf("pos=\"%.2f,%.2f\"", s.Position.X, s.Position.Y))

	if isVein {
		attrs = append(attrs, "shape=doublecircle", "fillcolor=\"#f1c40f\"")
	} else if s.GravitiumDeposits > 0 {
		attrs = append(attrs, "fillcolor=\"#f9e79f\"")
	}
	if s.TotalPopulation() > 1_000_000_000 {
		attrs = append(attrs, "penwidth=2.0")
	}
	return attrs
}

func nodeLabel(s universe.System, detailed bool) string {
	if !detailed {
		return s.Name
	}
	parts := []string{
		s.Name,
		fmt.Sprintf("pop: %d", s.TotalPopulation()),
		fmt.Sprintf("tech: %s", s.TechLevel),
	}
	if s.GravitiumDeposits > 0 {
		parts = append(parts, fmt.Sprintf("gravitium: %.0ft", s.GravitiumDeposits))
	}
	return strings.Join(parts, "\n")
}
