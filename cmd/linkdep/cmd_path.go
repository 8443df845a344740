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
	"strings"

	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var pathCmd = &cobra.Command{
	Use:   "path LINK_FILE_LIST FROM TO",
	Short: "Show dependency chains between two files",
	Long: `Show how FROM and TO are connected in the dependency graph.

Both directions are checked: a chain from FROM to TO means FROM
requires TO, and a chain the other way means TO requires FROM. Each
discovered chain is printed as "a -> b -> c". Marked files are always
included when testing connectivity.

Exits with an error if either file is not part of the graph.

Examples:
  linkdep path objects.txt AppDelegate Networking
  linkdep path objects.txt MainView AppDelegate`,
	Args: cobra.ExactArgs(3),
	Run:  runPath,
}

func init() {
	rootCmd.AddCommand(pathCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runPath(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), buildTimeout)
	defer cancel()

	set, err := buildSet(ctx, args[0])
	if err != nil {
		fatal("Failed to build dependency graph", err)
	}

	paths, err := set.FilesConnection(args[1], args[2])
	if err != nil {
		fatal("Failed to resolve connection", err)
	}
	if len(paths) == 0 {
		fmt.Printf("%s and %s are not connected\n", args[1], args[2])
		return
	}
	for _, p := range paths {
		fmt.Println(strings.Join(p, " -> "))
	}
}
