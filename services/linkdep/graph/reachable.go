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
	"fmt"
	"sort"
)

// PathItem records how one reachable vertex was discovered during a
// traversal: the vertex itself, its predecessor on the discovered walk,
// the hop distance from the root, and the labels of the final hop.
type PathItem struct {
	// Vertex is the discovered vertex.
	Vertex Vertex

	// Prev is the predecessor of Vertex on the discovered walk.
	Prev Vertex

	// Distance is the number of hops from the traversal root.
	Distance int

	// Labels are the edge labels of the hop Prev -> Vertex.
	Labels LabelSet
}

// String renders the item as "distance: prev -> vertex".
func (p PathItem) String() string {
	return fmt.Sprintf("%d: %s -> %s", p.Distance, p.Prev, p.Vertex)
}

// Equal reports full value equality, label set included.
func (p PathItem) Equal(other PathItem) bool {
	return p.Vertex == other.Vertex &&
		p.Prev == other.Prev &&
		p.Distance == other.Distance &&
		p.Labels.Equal(other.Labels)
}

// ReachableFrom computes every vertex transitively reachable from root
// along outgoing edges, mapped to the PathItem describing how the
// traversal discovered it.
//
// # Description
//
// The traversal is a recursive depth-first walk with a single visited set
// shared across the whole traversal. A vertex is never re-expanded once
// visited, even when a later branch rediscovers it over a shorter walk,
// so on graphs with multiple divergent paths the recorded distance can
// exceed the true shortest-hop distance. Callers of the analysis layer
// depend on which item the traversal settles on, so this behavior is part
// of the contract; do not replace it with breadth-first shortest path.
//
// When two candidates exist for the same vertex, the one with the
// strictly smaller distance wins; the first-seen candidate is kept on a
// tie. Children are expanded in lexicographic order so results are
// deterministic. The root is never part of its own reachable set: it is
// marked visited before its out-edges are examined, so even a literal
// self-edge root -> root contributes nothing.
func (g *DirectedGraph) ReachableFrom(root Vertex) map[Vertex]PathItem {
	visited := make(map[Vertex]struct{})
	return g.reachable(root, visited)
}

func (g *DirectedGraph) reachable(from Vertex, visited map[Vertex]struct{}) map[Vertex]PathItem {
	visited[from] = struct{}{}
	reachable := make(map[Vertex]PathItem)
	for _, to := range sortedDestinations(g.adjacency[from]) {
		if _, seen := visited[to]; seen {
			continue
		}
		mergeCandidate(reachable, PathItem{
			Vertex:   to,
			Prev:     from,
			Distance: 1,
			Labels:   g.adjacency[from][to],
		})
		for _, item := range g.reachable(to, visited) {
			mergeCandidate(reachable, PathItem{
				Vertex:   item.Vertex,
				Prev:     item.Prev,
				Distance: item.Distance + 1,
				Labels:   item.Labels,
			})
		}
	}
	return reachable
}

// mergeCandidate keeps whichever item for the candidate's vertex has the
// smaller distance; the existing item survives a tie.
func mergeCandidate(reachable map[Vertex]PathItem, candidate PathItem) {
	current, ok := reachable[candidate.Vertex]
	if !ok || candidate.Distance < current.Distance {
		reachable[candidate.Vertex] = candidate
	}
}

func sortedDestinations(destinations map[Vertex]LabelSet) []Vertex {
	out := make([]Vertex, 0, len(destinations))
	for to := range destinations {
		out = append(out, to)
	}
	sort.Strings(out)
	return out
}

// ReconstructPath rebuilds the hop-by-hop vertex chain from root to
// item.Vertex by following predecessors through the reachable mapping the
// item came from. The returned chain starts at root and ends at the
// item's vertex.
//
// The chain is truncated at the reachable-set boundary if a predecessor
// is missing from the mapping; with mappings produced by ReachableFrom
// this does not happen for items the mapping itself contains.
func ReconstructPath(root Vertex, item PathItem, reachable map[Vertex]PathItem) []Vertex {
	chain := []Vertex{item.Vertex}
	current := item
	// The step cap guards against predecessor loops in a hand-built mapping.
	for steps := 0; current.Distance > 1 && steps <= len(reachable); steps++ {
		prev, ok := reachable[current.Prev]
		if !ok {
			break
		}
		chain = append(chain, current.Prev)
		current = prev
	}
	chain = append(chain, root)
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
