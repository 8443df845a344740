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
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/linkdep/pkg/logging"
	"github.com/AleutianAI/linkdep/services/linkdep"
	"github.com/AleutianAI/linkdep/services/linkdep/symtab"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
)

// buildTimeout bounds a full symbol-table read of the file list.
const buildTimeout = 2 * time.Minute

// =============================================================================
// GLOBAL FLAGS AND STATE
// =============================================================================

var (
	config Config
	logger *logging.Logger

	configPath string
	logLevel   string
	quiet      bool

	// Root command flags
	rootOutput string
	rootLabels bool
)

// =============================================================================
// ROOT COMMAND
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "linkdep LINK_FILE_LIST",
	Short: "Derive the dependency graph of compiled object files",
	Long: `linkdep reads a newline-delimited list of object files, extracts
their global symbol tables with nm(1), and derives the graph of which
object file needs which other object file, labeled with the symbols
that create each dependency.

The default invocation writes the full graph to dependency.dot.
Files whose undefined symbols no listed file defines are linked to
the synthetic "undefined" vertex.

Subcommands query the same graph:
  dump   - Write the graph (or a subgraph) as a DOT file
  deps   - List what a file requires, or what requires it
  path   - Show dependency chains between two files
  rank   - Rank files by dependency pressure
  watch  - Rebuild the DOT file when listed files change

Examples:
  linkdep objects.txt
  linkdep deps objects.txt AppDelegate --layered
  linkdep rank objects.txt --top 10`,
	Args: cobra.ExactArgs(1),
	Run:  runRoot,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", DefaultConfigPath,
		"Path to the optional linkdep.yaml config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Minimum log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"Suppress all log output")

	rootCmd.Flags().StringVarP(&rootOutput, "output", "o", "",
		"Output DOT file (default dependency.dot)")
	rootCmd.Flags().BoolVar(&rootLabels, "labels", false,
		"Label edges with the symbols that create them")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cfg, err := LoadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(ExitError)
		}
		config = cfg

		level := logging.ParseLevel(firstNonEmpty(logLevel, config.LogLevel))

		logger = logging.New(logging.Config{
			Level:   level,
			Service: "linkdep",
			JSON:    !isatty.IsTerminal(os.Stderr.Fd()),
			Quiet:   quiet,
		})
	}
}

// runRoot builds the graph from the file list and writes the default
// DOT dump.
func runRoot(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), buildTimeout)
	defer cancel()

	set, err := buildSet(ctx, args[0])
	if err != nil {
		fatal("Failed to build dependency graph", err)
	}
	if len(config.Marked) > 0 {
		set.MarkFiles(config.Marked)
	}

	out := firstNonEmpty(rootOutput, config.Output, linkdep.DefaultDumpPath)
	labels := rootLabels || config.Labels
	if err := set.Dump(out, labels); err != nil {
		fatal("Failed to write DOT file", err)
	}
	logger.Info("wrote dependency graph", "path", out, "files", len(set.Files()))
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// buildSet reads the link file list at listPath and constructs the
// dependency set with the system nm reader.
func buildSet(ctx context.Context, listPath string) (*linkdep.DependencySet, error) {
	paths, err := linkdep.ReadLinkFileList(listPath)
	if err != nil {
		return nil, err
	}
	return linkdep.New(ctx, paths, symtab.NewNmReader(), logger)
}

// fatal reports a command failure on stderr and exits.
func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	os.Exit(ExitError)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
