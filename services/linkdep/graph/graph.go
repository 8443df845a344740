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

import "sort"

// Vertex identifies a file in the dependency graph.
//
// Vertices are short file names: directory components and the final
// extension are stripped. Two distinct paths that normalize to the same
// short name collide; the last registration wins. This is a documented
// limitation of the vertex model, not a defect to work around here.
type Vertex = string

// LabelSet is a deduplicated set of edge labels. Each label is a symbol
// name justifying the dependency the edge represents.
type LabelSet map[string]struct{}

// NewLabelSet builds a LabelSet from the given labels.
func NewLabelSet(labels ...string) LabelSet {
	set := make(LabelSet, len(labels))
	for _, label := range labels {
		set[label] = struct{}{}
	}
	return set
}

// Sorted returns the labels in lexicographic order.
func (s LabelSet) Sorted() []string {
	labels := make([]string, 0, len(s))
	for label := range s {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Equal reports whether both sets contain exactly the same labels.
func (s LabelSet) Equal(other LabelSet) bool {
	if len(s) != len(other) {
		return false
	}
	for label := range s {
		if _, ok := other[label]; !ok {
			return false
		}
	}
	return true
}

// clone returns an independent copy of the set.
func (s LabelSet) clone() LabelSet {
	out := make(LabelSet, len(s))
	for label := range s {
		out[label] = struct{}{}
	}
	return out
}

// Builder accumulates vertices and labeled edges and freezes them into an
// immutable DirectedGraph.
//
// # Description
//
// Builder is the single mutable phase of the graph lifecycle. Repeated
// edges between the same vertex pair merge into one edge whose label set
// is the union of every label seen for that pair. Build may be called at
// any point; the returned graph is a deep copy and is never affected by
// further Builder mutation.
//
// # Thread Safety
//
// Builder is NOT safe for concurrent use. It is designed for a single
// writer during the build phase, matching the one-shot construction
// pipeline it serves.
type Builder struct {
	adjacency map[Vertex]map[Vertex]LabelSet
}

// NewBuilder creates an empty graph builder.
func NewBuilder() *Builder {
	return &Builder{adjacency: make(map[Vertex]map[Vertex]LabelSet)}
}

// AddVertex ensures v exists in the graph. Idempotent; a vertex already
// registered through an edge is left untouched.
func (b *Builder) AddVertex(v Vertex) {
	if _, ok := b.adjacency[v]; !ok {
		b.adjacency[v] = make(map[Vertex]LabelSet)
	}
}

// AddEdge registers the directed edge from -> to carrying label.
//
// Both endpoints are implicitly registered as vertices, so a sink that is
// only ever referenced as a destination still appears in the final vertex
// set. Adding the same label twice for the same pair is a no-op.
func (b *Builder) AddEdge(from, to Vertex, label string) {
	b.AddVertex(from)
	b.AddVertex(to)
	destinations := b.adjacency[from]
	if _, ok := destinations[to]; !ok {
		destinations[to] = make(LabelSet)
	}
	destinations[to][label] = struct{}{}
}

// AddEdges registers the directed edge from -> to carrying every label in
// labels. An empty label set is a caller error and returns ErrNoLabels;
// an unlabeled dependency has no justification and must not exist.
func (b *Builder) AddEdges(from, to Vertex, labels LabelSet) error {
	if len(labels) == 0 {
		return ErrNoLabels
	}
	for label := range labels {
		b.AddEdge(from, to, label)
	}
	return nil
}

// Build freezes the accumulated vertices and edges into an immutable
// DirectedGraph.
func (b *Builder) Build() *DirectedGraph {
	adjacency := make(map[Vertex]map[Vertex]LabelSet, len(b.adjacency))
	for from, destinations := range b.adjacency {
		copied := make(map[Vertex]LabelSet, len(destinations))
		for to, labels := range destinations {
			copied[to] = labels.clone()
		}
		adjacency[from] = copied
	}
	return &DirectedGraph{adjacency: adjacency}
}

// DirectedGraph is an immutable directed, edge-labeled multigraph over
// file vertices.
//
// # Description
//
// The graph is an adjacency structure keyed by vertex; every value maps a
// destination vertex to the label set of the single collapsed edge between
// the pair. A vertex with an empty destination map is a valid sink and is
// part of the vertex set like any other vertex.
//
// # Thread Safety
//
// DirectedGraph is immutable after Build and safe for concurrent reads.
// All graph-producing operations (Subgraph, Reversed) return new instances.
type DirectedGraph struct {
	adjacency map[Vertex]map[Vertex]LabelSet
}

// IsEmpty reports whether the graph has no vertices.
func (g *DirectedGraph) IsEmpty() bool {
	return len(g.adjacency) == 0
}

// Vertexes returns the set of all vertices, including sinks and isolated
// vertices. The returned map is owned by the caller.
func (g *DirectedGraph) Vertexes() map[Vertex]struct{} {
	vertexes := make(map[Vertex]struct{}, len(g.adjacency))
	for v := range g.adjacency {
		vertexes[v] = struct{}{}
	}
	return vertexes
}

// SortedVertexes returns all vertices in lexicographic order.
func (g *DirectedGraph) SortedVertexes() []Vertex {
	vertexes := make([]Vertex, 0, len(g.adjacency))
	for v := range g.adjacency {
		vertexes = append(vertexes, v)
	}
	sort.Strings(vertexes)
	return vertexes
}

// Destinations returns the destination map for v, or nil when v has no
// outgoing edges. The returned map must not be mutated.
func (g *DirectedGraph) Destinations(v Vertex) map[Vertex]LabelSet {
	return g.adjacency[v]
}

// Subgraph restricts the graph to the vertices in keep.
//
// An edge survives only when both endpoints are kept. A kept vertex whose
// edges are all severed is preserved as an isolated vertex rather than
// silently dropped. Vertices in keep that were never part of the graph do
// not appear in the result.
func (g *DirectedGraph) Subgraph(keep map[Vertex]struct{}) *DirectedGraph {
	builder := NewBuilder()
	for from, destinations := range g.adjacency {
		if _, ok := keep[from]; !ok {
			continue
		}
		builder.AddVertex(from)
		for to, labels := range destinations {
			if _, ok := keep[to]; !ok {
				continue
			}
			for label := range labels {
				builder.AddEdge(from, to, label)
			}
		}
	}
	return builder.Build()
}

// Reversed returns a new graph with every edge direction flipped and all
// label sets carried over. The vertex set is preserved exactly, isolated
// vertices included.
func (g *DirectedGraph) Reversed() *DirectedGraph {
	builder := NewBuilder()
	for from, destinations := range g.adjacency {
		builder.AddVertex(from)
		for to, labels := range destinations {
			for label := range labels {
				builder.AddEdge(to, from, label)
			}
		}
	}
	return builder.Build()
}

// Equal reports structural equality: same vertices, same edges, same
// label sets.
func (g *DirectedGraph) Equal(other *DirectedGraph) bool {
	if other == nil {
		return false
	}
	if len(g.adjacency) != len(other.adjacency) {
		return false
	}
	for from, destinations := range g.adjacency {
		otherDestinations, ok := other.adjacency[from]
		if !ok || len(destinations) != len(otherDestinations) {
			return false
		}
		for to, labels := range destinations {
			otherLabels, ok := otherDestinations[to]
			if !ok || !labels.Equal(otherLabels) {
				return false
			}
		}
	}
	return true
}
