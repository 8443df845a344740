// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package visualization renders dependency graphs to Graphviz DOT files.
//
// This is the only persisted artifact the tool produces. Output is
// deterministic: vertices and destinations are written in lexicographic
// order and edge labels are sorted within each label clause.
package visualization

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/AleutianAI/linkdep/services/linkdep/graph"
)

const dotIndent = "    "

// ErrEmptyGraph is returned when a dump is requested for a graph with no
// vertices. Emitting an empty graph file is a caller error, not a valid
// degenerate output, and the error is raised before any file is opened.
var ErrEmptyGraph = errors.New("refusing to dump an empty graph")

// WriteDot writes g in DOT format. Each collapsed edge becomes one line;
// a vertex with no outgoing edges becomes a bare vertex line so sinks and
// isolated vertices stay visible in the rendering.
func WriteDot(w io.Writer, g *graph.DirectedGraph, writeLabels bool) error {
	if _, err := fmt.Fprintln(w, "digraph dependencies {"); err != nil {
		return err
	}
	for _, from := range g.SortedVertexes() {
		destinations := g.Destinations(from)
		if len(destinations) == 0 {
			if _, err := fmt.Fprintf(w, "%s%s;\n", dotIndent, from); err != nil {
				return err
			}
			continue
		}
		for _, to := range sortedKeys(destinations) {
			line := fmt.Sprintf("%s%s -> %s", dotIndent, from, to)
			if writeLabels {
				labels := destinations[to].Sorted()
				line += fmt.Sprintf(" [label='%s']", strings.Join(labels, ", "))
			}
			if _, err := fmt.Fprintf(w, "%s;\n", line); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

// DumpDot writes g to a DOT file at path. An empty graph is rejected
// with ErrEmptyGraph before the file is created.
func DumpDot(path string, g *graph.DirectedGraph, writeLabels bool) error {
	if g.IsEmpty() {
		return ErrEmptyGraph
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dot file: %w", err)
	}
	if err := WriteDot(f, g, writeLabels); err != nil {
		f.Close()
		return fmt.Errorf("writing dot file: %w", err)
	}
	return f.Close()
}

func sortedKeys(destinations map[graph.Vertex]graph.LabelSet) []graph.Vertex {
	out := make([]graph.Vertex, 0, len(destinations))
	for to := range destinations {
		out = append(out, to)
	}
	sort.Strings(out)
	return out
}
