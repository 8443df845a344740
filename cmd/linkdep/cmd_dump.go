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

	"github.com/spf13/cobra"

	"github.com/AleutianAI/linkdep/services/linkdep"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	dumpOutput string
	dumpLabels bool
	dumpOnly   []string
	dumpMarked []string
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var dumpCmd = &cobra.Command{
	Use:   "dump LINK_FILE_LIST",
	Short: "Write the dependency graph as a DOT file",
	Long: `Write the dependency graph derived from LINK_FILE_LIST as a
Graphviz DOT file.

With --only, only the named files (and the edges between them) are
written; files that appear in the list but not in --only are dropped
from the output, not from the underlying graph.

Examples:
  linkdep dump objects.txt -o graph.dot
  linkdep dump objects.txt --labels
  linkdep dump objects.txt --only AppDelegate,MainView,Networking`,
	Args: cobra.ExactArgs(1),
	Run:  runDump,
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpOutput, "output", "o", "",
		"Output DOT file (default dependency.dot)")
	dumpCmd.Flags().BoolVar(&dumpLabels, "labels", false,
		"Label edges with the symbols that create them")
	dumpCmd.Flags().StringSliceVar(&dumpOnly, "only", nil,
		"Restrict the output to these files")
	dumpCmd.Flags().StringSliceVar(&dumpMarked, "marked", nil,
		"Mark these files (overrides config)")

	rootCmd.AddCommand(dumpCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runDump(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), buildTimeout)
	defer cancel()

	set, err := buildSet(ctx, args[0])
	if err != nil {
		fatal("Failed to build dependency graph", err)
	}
	applyMarks(set, dumpMarked)

	out := firstNonEmpty(dumpOutput, config.Output, linkdep.DefaultDumpPath)
	labels := dumpLabels || config.Labels

	if len(dumpOnly) > 0 {
		err = set.DumpSubgraph(out, dumpOnly, labels)
	} else {
		err = set.Dump(out, labels)
	}
	if err != nil {
		fatal("Failed to write DOT file", err)
	}
	logger.Info("wrote dependency graph", "path", out)
}

// applyMarks applies the --marked flag, falling back to the config
// file's marked list.
func applyMarks(set *linkdep.DependencySet, flagMarked []string) {
	marked := flagMarked
	if len(marked) == 0 {
		marked = config.Marked
	}
	if len(marked) > 0 {
		set.MarkFiles(marked)
	}
}
