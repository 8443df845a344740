// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command linkdep derives and analyzes the dependency graph of a set of
// compiled object files from their global symbol tables.
//
// Usage:
//
//	linkdep LINK_FILE_LIST
//
// reads the newline-delimited list of object files, builds the
// dependency graph through nm(1), and writes dependency.dot.
//
// Subcommands expose the analytics on top of the graph:
//
//	linkdep dump  LINK_FILE_LIST --labels -o graph.dot
//	linkdep deps  LINK_FILE_LIST AppDelegate --layered
//	linkdep path  LINK_FILE_LIST AppDelegate MainView
//	linkdep rank  LINK_FILE_LIST --top 10
//	linkdep watch LINK_FILE_LIST -o graph.dot
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
