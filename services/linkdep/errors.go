// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package linkdep answers which object file needs which other object
// file, and why, for a set of linkable object files.
//
// The DependencySet facade orchestrates the pipeline: read per-file
// symbol tables, index defined symbols, resolve each undefined symbol to
// its defining file (or the undefined sentinel), build the immutable
// dependency graph, and serve reachability reports, rankings, connection
// paths, and DOT dumps on top of it.
//
// # Concurrency
//
// The pipeline is sequential and blocking. DependencySet memoizes its
// per-variant analysis reports lazily and without locking: it has a
// single-writer precondition. Do not call MarkFiles concurrently with
// report reads, and mark files before the first analytics call.
package linkdep

import "errors"

// Sentinel errors for dependency set operations.
var (
	// ErrUnknownFile is returned when dependency queries name a file
	// that is not a vertex of the chosen graph variant.
	ErrUnknownFile = errors.New("file is not part of the dependency graph")
)
