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

	"github.com/AleutianAI/linkdep/services/linkdep"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	rankTop           int
	rankIncludeMarked bool
	rankMarked        []string
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var rankCmd = &cobra.Command{
	Use:   "rank LINK_FILE_LIST",
	Short: "Rank files by dependency pressure",
	Long: `Rank the listed object files four ways:

  most required        - files with the largest transitive dependency set
  longest chains       - files with the deepest dependency chain
  most provided        - files the most other files depend on
  independent providers - files many depend on that depend on nothing

The provider rankings always exclude marked files, so system
libraries do not drown out project code.

Examples:
  linkdep rank objects.txt
  linkdep rank objects.txt --top 10 --marked libSystem.B`,
	Args: cobra.ExactArgs(1),
	Run:  runRank,
}

func init() {
	rankCmd.Flags().IntVar(&rankTop, "top", linkdep.DefaultRankLimit,
		"Number of files per ranking")
	rankCmd.Flags().BoolVar(&rankIncludeMarked, "include-marked", false,
		"Include marked files in the requirement rankings")
	rankCmd.Flags().StringSliceVar(&rankMarked, "marked", nil,
		"Mark these files (overrides config)")

	rootCmd.AddCommand(rankCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runRank(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), buildTimeout)
	defer cancel()

	set, err := buildSet(ctx, args[0])
	if err != nil {
		fatal("Failed to build dependency graph", err)
	}
	applyMarks(set, rankMarked)

	fmt.Println("Most required:")
	printFileRanks(set.MostRequired(rankTop, rankIncludeMarked))

	fmt.Println("\nLongest chains:")
	for _, r := range set.LongestChains(rankTop, rankIncludeMarked) {
		fmt.Printf("  %s (%d): %s\n", r.File, r.Distance, strings.Join(r.Path, " -> "))
	}

	fmt.Println("\nMost provided:")
	printFileRanks(set.MostProvided(rankTop))

	fmt.Println("\nIndependent providers:")
	printFileRanks(set.IndependentMostProvided(rankTop))
}

func printFileRanks(ranks []linkdep.FileRank) {
	for _, r := range ranks {
		fmt.Printf("  %s (%d)\n", r.File, r.Count)
	}
}
