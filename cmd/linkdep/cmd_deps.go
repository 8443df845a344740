// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/linkdep/services/linkdep/graph"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	depsProvided      bool
	depsLayered       bool
	depsVerbose       bool
	depsIncludeMarked bool
	depsMarked        []string
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var depsCmd = &cobra.Command{
	Use:   "deps LINK_FILE_LIST FILE",
	Short: "List the transitive dependencies of a file",
	Long: `List every file FILE requires, directly or transitively.

With --provided, the direction is reversed: list every file that
requires FILE. With --verbose, each line carries the dependency
distance and the predecessor on the discovered chain. With --layered,
files are grouped by distance instead of listed one per line.

Marked files (system libraries, see --marked and the config file) are
excluded unless --include-marked is set.

Examples:
  linkdep deps objects.txt AppDelegate
  linkdep deps objects.txt Networking --provided
  linkdep deps objects.txt AppDelegate --layered --include-marked`,
	Args: cobra.ExactArgs(2),
	Run:  runDeps,
}

func init() {
	depsCmd.Flags().BoolVar(&depsProvided, "provided", false,
		"List files that require FILE instead")
	depsCmd.Flags().BoolVar(&depsLayered, "layered", false,
		"Group files by dependency distance")
	depsCmd.Flags().BoolVarP(&depsVerbose, "verbose", "v", false,
		"Show distance and predecessor for each file")
	depsCmd.Flags().BoolVar(&depsIncludeMarked, "include-marked", false,
		"Include marked files in the listing")
	depsCmd.Flags().StringSliceVar(&depsMarked, "marked", nil,
		"Mark these files (overrides config)")

	rootCmd.AddCommand(depsCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runDeps(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), buildTimeout)
	defer cancel()

	set, err := buildSet(ctx, args[0])
	if err != nil {
		fatal("Failed to build dependency graph", err)
	}
	applyMarks(set, depsMarked)

	file := args[1]
	var items map[graph.Vertex]graph.PathItem
	if depsProvided {
		items, err = set.ProvidedDependencies(file, depsIncludeMarked)
	} else {
		items, err = set.RequiredDependencies(file, depsIncludeMarked)
	}
	if err != nil {
		fatal("Failed to resolve dependencies", err)
	}

	if depsLayered {
		if err := graph.WriteLayered(os.Stdout, items); err != nil {
			fatal("Failed to write listing", err)
		}
		return
	}
	printItems(items, depsVerbose)
}

// printItems lists items in vertex order, one per line.
func printItems(items map[graph.Vertex]graph.PathItem, verbose bool) {
	names := make([]graph.Vertex, 0, len(items))
	for v := range items {
		names = append(names, v)
	}
	sort.Strings(names)
	for _, v := range names {
		if verbose {
			fmt.Println(items[v].String())
		} else {
			fmt.Println(v)
		}
	}
}
