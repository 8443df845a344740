// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReachableFromChain(t *testing.T) {
	g := buildChain(t)

	fromA := g.ReachableFrom("a")
	require.Len(t, fromA, 2)
	assert.Equal(t, PathItem{Vertex: "b", Prev: "a", Distance: 1, Labels: NewLabelSet("sym_ab")}, fromA["b"])
	assert.Equal(t, PathItem{Vertex: "c", Prev: "b", Distance: 2, Labels: NewLabelSet("sym_bc")}, fromA["c"])

	fromB := g.ReachableFrom("b")
	require.Len(t, fromB, 1)
	assert.Equal(t, 1, fromB["c"].Distance)

	assert.Empty(t, g.ReachableFrom("c"))
}

func TestReachableExcludesRoot(t *testing.T) {
	builder := NewBuilder()
	builder.AddEdge("a", "a", "self")
	g := builder.Build()

	// The root is visited before its out-edges are examined, so even a
	// literal self-edge yields an empty reachable set.
	assert.Empty(t, g.ReachableFrom("a"))
}

func TestReachableIsolatedVertexes(t *testing.T) {
	builder := NewBuilder()
	builder.AddVertex("a")
	builder.AddVertex("b")
	g := builder.Build()

	assert.Empty(t, g.ReachableFrom("a"))
	assert.Equal(t, map[Vertex]struct{}{"a": {}, "b": {}}, g.Vertexes())
}

func TestReachableCycle(t *testing.T) {
	// a->b->c->d->b
	builder := NewBuilder()
	builder.AddEdge("a", "b", "l1")
	builder.AddEdge("b", "c", "l2")
	builder.AddEdge("c", "d", "l3")
	builder.AddEdge("d", "b", "l4")
	g := builder.Build()

	fromA := g.ReachableFrom("a")
	require.Len(t, fromA, 3)
	assert.Equal(t, 1, fromA["b"].Distance)
	assert.Equal(t, 2, fromA["c"].Distance)
	assert.Equal(t, 3, fromA["d"].Distance)

	// From c the cycle is walked d-first; b is discovered through d at
	// distance 2, which is the traversal contract, not shortest path.
	fromC := g.ReachableFrom("c")
	require.Len(t, fromC, 2)
	assert.Equal(t, PathItem{Vertex: "d", Prev: "c", Distance: 1, Labels: NewLabelSet("l3")}, fromC["d"])
	assert.Equal(t, PathItem{Vertex: "b", Prev: "d", Distance: 2, Labels: NewLabelSet("l4")}, fromC["b"])
}

func TestReachableTwoCycle(t *testing.T) {
	builder := NewBuilder()
	builder.AddEdge("a", "b", "ab")
	builder.AddEdge("b", "a", "ba")
	g := builder.Build()

	fromA := g.ReachableFrom("a")
	require.Len(t, fromA, 1)
	assert.Equal(t, 1, fromA["b"].Distance)
}

func TestReachableDiamond(t *testing.T) {
	// a->b, a->c, b->d, c->d: both branches reach d at distance 2; the
	// shared visited set means only the first branch expands d's parent.
	builder := NewBuilder()
	builder.AddEdge("a", "b", "ab")
	builder.AddEdge("a", "c", "ac")
	builder.AddEdge("b", "d", "bd")
	builder.AddEdge("c", "d", "cd")
	g := builder.Build()

	fromA := g.ReachableFrom("a")
	require.Len(t, fromA, 3)
	assert.Equal(t, 1, fromA["b"].Distance)
	assert.Equal(t, 1, fromA["c"].Distance)
	// Children expand lexicographically, so d is first reached through b.
	assert.Equal(t, PathItem{Vertex: "d", Prev: "b", Distance: 2, Labels: NewLabelSet("bd")}, fromA["d"])
}

func TestReachableNonMinimalDistancePreserved(t *testing.T) {
	// a->b->c and a direct a->c edge. The b branch expands first and
	// marks c visited, so the shorter direct edge is never considered:
	// c keeps distance 2 through b. Non-minimal on purpose.
	builder := NewBuilder()
	builder.AddEdge("a", "b", "ab")
	builder.AddEdge("b", "c", "bc")
	builder.AddEdge("a", "c", "ac")
	g := builder.Build()

	fromA := g.ReachableFrom("a")
	require.Len(t, fromA, 2)
	assert.Equal(t, PathItem{Vertex: "c", Prev: "b", Distance: 2, Labels: NewLabelSet("bc")}, fromA["c"])
}

func TestReachableVisitedSetBlocksReExpansion(t *testing.T) {
	// a->b, a->c, b->c, c->d. The b branch expands first and walks
	// through c to d; everything downstream keeps the b-branch distances
	// and the direct a->c edge contributes nothing.
	builder := NewBuilder()
	builder.AddEdge("a", "b", "ab")
	builder.AddEdge("a", "c", "ac")
	builder.AddEdge("b", "c", "bc")
	builder.AddEdge("c", "d", "cd")
	g := builder.Build()

	fromA := g.ReachableFrom("a")
	require.Len(t, fromA, 3)
	assert.Equal(t, 2, fromA["c"].Distance)
	assert.Equal(t, Vertex("b"), fromA["c"].Prev)
	assert.Equal(t, 3, fromA["d"].Distance)
	assert.Equal(t, Vertex("c"), fromA["d"].Prev)
}

// =============================================================================
// Path Reconstruction
// =============================================================================

func TestReconstructPathChain(t *testing.T) {
	g := buildChain(t)
	fromA := g.ReachableFrom("a")

	path := ReconstructPath("a", fromA["c"], fromA)

	assert.Equal(t, []Vertex{"a", "b", "c"}, path)
}

func TestReconstructPathDirectHop(t *testing.T) {
	g := buildChain(t)
	fromA := g.ReachableFrom("a")

	path := ReconstructPath("a", fromA["b"], fromA)

	assert.Equal(t, []Vertex{"a", "b"}, path)
}

func TestReconstructPathCycle(t *testing.T) {
	builder := NewBuilder()
	builder.AddEdge("a", "b", "l1")
	builder.AddEdge("b", "c", "l2")
	builder.AddEdge("c", "d", "l3")
	builder.AddEdge("d", "b", "l4")
	g := builder.Build()
	fromC := g.ReachableFrom("c")

	path := ReconstructPath("c", fromC["b"], fromC)

	assert.Equal(t, []Vertex{"c", "d", "b"}, path)
}

func TestPathItemEquality(t *testing.T) {
	item := PathItem{Vertex: "b", Prev: "a", Distance: 1, Labels: NewLabelSet("x")}

	assert.True(t, item.Equal(PathItem{Vertex: "b", Prev: "a", Distance: 1, Labels: NewLabelSet("x")}))
	assert.False(t, item.Equal(PathItem{Vertex: "b", Prev: "a", Distance: 2, Labels: NewLabelSet("x")}))
	assert.False(t, item.Equal(PathItem{Vertex: "b", Prev: "a", Distance: 1, Labels: NewLabelSet("y")}))
	assert.Equal(t, "1: a -> b", item.String())
}
