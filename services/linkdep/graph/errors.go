// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package graph provides the object-file dependency graph engine.
//
// The graph package contains the directed, edge-labeled multigraph that
// records which file depends on which other file and through which
// symbols, plus the reachability traversal and per-file analysis reports
// built on top of it.
//
// # Lifecycle
//
// A typical graph lifecycle:
//  1. Accumulate vertices and edges with a Builder
//  2. Call Build() to obtain the immutable DirectedGraph
//  3. Derive views with Subgraph() and Reversed()
//  4. Query with ReachableFrom() or wrap in an AnalysisReport
//
// # Thread Safety
//
// Builder is single-writer only. DirectedGraph and AnalysisReport are
// immutable once constructed and safe for concurrent reads.
package graph

import "errors"

// Sentinel errors for graph operations.
var (
	// ErrNoLabels is returned when an edge is registered with an empty
	// label set. Every edge must carry at least one symbol justifying it.
	ErrNoLabels = errors.New("edge requires at least one label")
)
