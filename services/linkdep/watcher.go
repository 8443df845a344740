// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package linkdep

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/AleutianAI/linkdep/pkg/logging"
)

// DefaultDebounceWindow is how long the watcher waits for further object
// file changes before triggering a rebuild. Compilers rewrite object
// files in bursts; debouncing avoids rebuilding once per file.
const DefaultDebounceWindow = 500 * time.Millisecond

// RebuildHandler is called with the short-named object files that
// changed once a debounce window closes.
type RebuildHandler func(changed []string)

// Watcher watches the object files of a link file list and invokes a
// rebuild handler when any of them change.
//
// # Description
//
// The watcher registers the parent directories of the listed files
// (object files are typically replaced by rename, which a per-file watch
// would lose) and filters events down to the listed paths. Changes are
// debounced: the handler fires only after DebounceWindow passes without
// further events, receiving every path that changed in the burst.
//
// # Thread Safety
//
// Start launches a single event-loop goroutine; the handler is always
// called from that goroutine. Stop is safe to call more than once.
type Watcher struct {
	paths    map[string]struct{}
	watcher  *fsnotify.Watcher
	handler  RebuildHandler
	debounce time.Duration
	logger   *logging.Logger

	stopOnce sync.Once
	done     chan struct{}
}

// NewWatcher creates a watcher for the given object file paths. A
// debounce of 0 uses DefaultDebounceWindow.
func NewWatcher(paths []string, debounce time.Duration, handler RebuildHandler, logger *logging.Logger) (*Watcher, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if debounce <= 0 {
		debounce = DefaultDebounceWindow
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watched := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			fsWatcher.Close()
			return nil, err
		}
		watched[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsWatcher.Add(dir); err != nil {
			fsWatcher.Close()
			return nil, err
		}
	}

	return &Watcher{
		paths:    watched,
		watcher:  fsWatcher,
		handler:  handler,
		debounce: debounce,
		logger:   logger,
		done:     make(chan struct{}),
	}, nil
}

// Start runs the event loop until the context is cancelled or Stop is
// called. It blocks; run it in a goroutine when the caller has other
// work to do.
func (w *Watcher) Start(ctx context.Context) {
	var timer *time.Timer
	var timerC <-chan time.Time
	changed := make(map[string]struct{})

	flush := func() {
		if len(changed) == 0 {
			return
		}
		batch := make([]string, 0, len(changed))
		for path := range changed {
			batch = append(batch, path)
		}
		changed = make(map[string]struct{})
		w.logger.Debug("object files changed", "count", len(batch))
		w.handler(batch)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			changed[event.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			flush()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// Stop closes the watcher and ends the event loop.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.watcher.Close()
	})
}

// relevant filters directory events down to writes of the listed files.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	_, ok := w.paths[event.Name]
	return ok
}
