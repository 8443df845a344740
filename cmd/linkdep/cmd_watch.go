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
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/linkdep/services/linkdep"
	"github.com/AleutianAI/linkdep/services/linkdep/symtab"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	watchOutput   string
	watchLabels   bool
	watchMarked   []string
	watchDebounce time.Duration
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var watchCmd = &cobra.Command{
	Use:   "watch LINK_FILE_LIST",
	Short: "Rewrite the DOT file whenever listed files change",
	Long: `Watch every object file in LINK_FILE_LIST and rewrite the DOT
output whenever one of them is recompiled. Rapid bursts of changes
collapse into a single rebuild per debounce window.

Runs until interrupted.

Examples:
  linkdep watch objects.txt -o graph.dot
  linkdep watch objects.txt --debounce 2s`,
	Args: cobra.ExactArgs(1),
	Run:  runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "",
		"Output DOT file (default dependency.dot)")
	watchCmd.Flags().BoolVar(&watchLabels, "labels", false,
		"Label edges with the symbols that create them")
	watchCmd.Flags().StringSliceVar(&watchMarked, "marked", nil,
		"Mark these files (overrides config)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0,
		"Rebuild debounce window (default 500ms)")

	rootCmd.AddCommand(watchCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runWatch(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	paths, err := linkdep.ReadLinkFileList(args[0])
	if err != nil {
		fatal("Failed to read link file list", err)
	}

	out := firstNonEmpty(watchOutput, config.Output, linkdep.DefaultDumpPath)
	labels := watchLabels || config.Labels

	debounce := watchDebounce
	if debounce == 0 {
		if config.DebounceMs > 0 {
			debounce = time.Duration(config.DebounceMs) * time.Millisecond
		} else {
			debounce = linkdep.DefaultDebounceWindow
		}
	}

	rebuild := func(changed []string) {
		buildCtx, cancel := context.WithTimeout(ctx, buildTimeout)
		defer cancel()

		set, err := linkdep.New(buildCtx, paths, symtab.NewNmReader(), logger)
		if err != nil {
			logger.Error("rebuild failed", "error", err)
			return
		}
		applyMarks(set, watchMarked)
		if err := set.Dump(out, labels); err != nil {
			logger.Error("rebuild failed", "error", err)
			return
		}
		logger.Info("rewrote dependency graph",
			"path", out, "changed", len(changed))
	}

	// Initial build before the first change arrives.
	rebuild(nil)

	watcher, err := linkdep.NewWatcher(paths, debounce, rebuild, logger)
	if err != nil {
		fatal("Failed to start watcher", err)
	}
	defer watcher.Stop()

	logger.Info("watching for changes",
		"files", len(paths), "debounce", debounce.String())
	watcher.Start(ctx)
}
