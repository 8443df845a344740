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
	"io"
	"sort"
	"strings"
)

// AnalysisReport bundles the two reachability views of a single file:
// what it transitively requires, and who transitively requires it.
//
// Required is the reachable set of the root over outgoing edges; Provided
// is the reachable set of the root over the reversed graph. Both carry
// the discovery PathItem per vertex, so paths can be reconstructed.
//
// Reports are immutable once built.
type AnalysisReport struct {
	// Root is the file the report describes.
	Root Vertex

	// Required maps each transitively required file to its discovery item.
	Required map[Vertex]PathItem

	// Provided maps each file that transitively requires Root to its
	// discovery item in the reversed graph.
	Provided map[Vertex]PathItem
}

// NewAnalysisReport computes the report for root over the given graph and
// its reversal. The reversed graph must be the reversal of g; it is taken
// as a parameter so one reversal can serve every per-file report.
func NewAnalysisReport(root Vertex, g, reversed *DirectedGraph) *AnalysisReport {
	return &AnalysisReport{
		Root:     root,
		Required: g.ReachableFrom(root),
		Provided: reversed.ReachableFrom(root),
	}
}

// RequiredCount returns the number of files the root transitively requires.
func (r *AnalysisReport) RequiredCount() int {
	return len(r.Required)
}

// ProvidedCount returns the number of files that transitively require the root.
func (r *AnalysisReport) ProvidedCount() int {
	return len(r.Provided)
}

// MostDistantRequired returns a required item with maximum distance.
// Multiple items may share the maximum; the lexicographically smallest
// vertex among them is returned so output is stable. The second result is
// false when the required set is empty.
func (r *AnalysisReport) MostDistantRequired() (PathItem, bool) {
	var best PathItem
	found := false
	for _, v := range sortedItemVertexes(r.Required) {
		item := r.Required[v]
		if !found || item.Distance > best.Distance {
			best = item
			found = true
		}
	}
	return best, found
}

// LongestRequiredDistance returns the maximum required distance, or 0
// when the root requires nothing.
func (r *AnalysisReport) LongestRequiredDistance() int {
	item, ok := r.MostDistantRequired()
	if !ok {
		return 0
	}
	return item.Distance
}

// LongestRequiredPath returns the reconstructed vertex chain from the
// root to its most distant required dependency, or nil when the root
// requires nothing.
func (r *AnalysisReport) LongestRequiredPath() []Vertex {
	item, ok := r.MostDistantRequired()
	if !ok {
		return nil
	}
	return ReconstructPath(r.Root, item, r.Required)
}

// WriteLayered writes the items grouped by equal distance in ascending
// order, one layer per line. Presentation helper only.
func WriteLayered(w io.Writer, items map[Vertex]PathItem) error {
	layers := make(map[int][]Vertex)
	for v, item := range items {
		layers[item.Distance] = append(layers[item.Distance], v)
	}
	distances := make([]int, 0, len(layers))
	for d := range layers {
		distances = append(distances, d)
	}
	sort.Ints(distances)
	for _, d := range distances {
		sort.Strings(layers[d])
		if _, err := fmt.Fprintf(w, "%d: %s\n", d, strings.Join(layers[d], ", ")); err != nil {
			return err
		}
	}
	return nil
}

func sortedItemVertexes(items map[Vertex]PathItem) []Vertex {
	out := make([]Vertex, 0, len(items))
	for v := range items {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
