// Package topo provides cycle detection for the directed rail graph.
//
// A directed cycle in the rail network is a closed causal loop, which the
// setting's travel model forbids outright. The generator calls into this
// package before accepting every candidate rail, and the validator uses it
// for standalone checks.
package topo

import (
	"slices"

	"github.com/spindlespace/spindle/pkg/universe"
)

// Edge is a directed connection between two node identifiers.
type Edge struct {
	From string
	To   string
}

// EdgesOf extracts the directed edge set of a rail slice.
func EdgesOf(rails []universe.Rail) []Edge {
	edges := make([]Edge, len(rails))
	for i, r := range rails {
		edges[i] = Edge{From: r.From, To: r.To}
	}
	return edges
}

// StronglyConnected returns every non-trivial strongly connected
// component (size >= 2) of the directed graph formed by edges. A
// non-empty result proves the graph contains at least one directed cycle.
//
// The function is pure: the same edge set always produces the same
// component memberships. Nodes within a component are sorted, and
// components are ordered by their smallest member, so results compare
// directly across calls. Runs in O(V+E) using Tarjan's low-link
// algorithm with an explicit stack (no recursion, so deep chains cannot
// overflow).
func StronglyConnected(edges []Edge) [][]string {
	adj := make(map[string][]string)
	nodes := make(map[string]struct{})
	for _, e := range edges {
		adj[e.From] = append(adj[e.From], e.To)
		nodes[e.From] = struct{}{}
		nodes[e.To] = struct{}{}
	}

	// Sorted roots keep discovery order, and therefore traversal work,
	// independent of map iteration order.
	roots := make([]string, 0, len(nodes))
	for n := range nodes {
		roots = append(roots, n)
	}
	slices.Sort(roots)

	var (
		index    int
		indices  = make(map[string]int, len(nodes))
		lowlinks = make(map[string]int, len(nodes))
		onStack  = make(map[string]bool, len(nodes))
		stack    []string
		sccs     [][]string
	)

	// frame tracks one node's progress through its successor list.
	type frame struct {
		node string
		next int // index of the next successor to visit
	}

	visit := func(root string) {
		frames := []frame{{node: root}}
		indices[root] = index
		lowlinks[root] = index
		index++
		stack = append(stack, root)
		onStack[root] = true

		for len(frames) > 0 {
			f := &frames[len(frames)-1]
			succ := adj[f.node]

			if f.next < len(succ) {
				w := succ[f.next]
				f.next++
				if _, seen := indices[w]; !seen {
					indices[w] = index
					lowlinks[w] = index
					index++
					stack = append(stack, w)
					onStack[w] = true
					frames = append(frames, frame{node: w})
				} else if onStack[w] {
					lowlinks[f.node] = min(lowlinks[f.node], indices[w])
				}
				continue
			}

			// All successors explored: pop a component root if this is one.
			if lowlinks[f.node] == indices[f.node] {
				var scc []string
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					scc = append(scc, w)
					if w == f.node {
						break
					}
				}
				if len(scc) > 1 {
					slices.Sort(scc)
					sccs = append(sccs, scc)
				}
			}

			done := f.node
			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				parent := &frames[len(frames)-1]
				lowlinks[parent.node] = min(lowlinks[parent.node], lowlinks[done])
			}
		}
	}

	for _, n := range roots {
		if _, seen := indices[n]; !seen {
			visit(n)
		}
	}

	slices.SortFunc(sccs, func(a, b []string) int {
		return slices.Compare(a, b)
	})
	return sccs
}

// HasCycle reports whether the directed graph formed by edges contains a
// cycle. Equivalent to checking StronglyConnected for a non-empty result.
func HasCycle(edges []Edge) bool {
	return len(StronglyConnected(edges)) > 0
}
