package topo

import (
	"reflect"
	"strconv"
	"testing"
)

func TestStronglyConnectedAcyclic(t *testing.T) {
	edges := []Edge{
		{"a", "b"},
		{"b", "c"},
		{"a", "c"},
	}

	if sccs := StronglyConnected(edges); len(sccs) != 0 {
		t.Errorf("acyclic graph should have no non-trivial components, got %v", sccs)
	}
	if HasCycle(edges) {
		t.Error("acyclic graph reported a cycle")
	}
}

func TestStronglyConnectedTriangle(t *testing.T) {
	edges := []Edge{
		{"x", "y"},
		{"y", "z"},
		{"z", "x"},
	}

	sccs := StronglyConnected(edges)
	want := [][]string{{"x", "y", "z"}}
	if !reflect.DeepEqual(sccs, want) {
		t.Errorf("StronglyConnected = %v, want %v", sccs, want)
	}
}

func TestStronglyConnectedTwoCycles(t *testing.T) {
	edges := []Edge{
		{"a", "b"}, {"b", "a"},
		{"c", "d"}, {"d", "e"}, {"e", "c"},
		{"b", "c"}, // bridge, not part of either cycle
	}

	sccs := StronglyConnected(edges)
	want := [][]string{{"a", "b"}, {"c", "d", "e"}}
	if !reflect.DeepEqual(sccs, want) {
		t.Errorf("StronglyConnected = %v, want %v", sccs, want)
	}
}

func TestStronglyConnectedDeterministic(t *testing.T) {
	edges := []Edge{
		{"n1", "n2"}, {"n2", "n3"}, {"n3", "n1"},
		{"n3", "n4"}, {"n4", "n5"}, {"n5", "n4"},
		{"n5", "n6"},
	}

	first := StronglyConnected(edges)
	for i := 0; i < 10; i++ {
		if got := StronglyConnected(edges); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differed: %v vs %v", i, got, first)
		}
	}
}

func TestStronglyConnectedLongChain(t *testing.T) {
	// A deep path followed by a back edge: exercises the iterative
	// traversal on input that would overflow a recursive one.
	const n = 200_000
	edges := make([]Edge, 0, n)
	id := func(i int) string { return "s" + strconv.Itoa(i) }
	for i := 0; i < n-1; i++ {
		edges = append(edges, Edge{id(i), id(i + 1)})
	}
	edges = append(edges, Edge{id(n - 1), id(0)})

	sccs := StronglyConnected(edges)
	if len(sccs) != 1 || len(sccs[0]) != n {
		t.Fatalf("expected one component of %d nodes, got %d components", n, len(sccs))
	}
}

func TestStronglyConnectedEmpty(t *testing.T) {
	if sccs := StronglyConnected(nil); len(sccs) != 0 {
		t.Errorf("empty edge set should have no components, got %v", sccs)
	}
}
