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
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the config file searched for in the working
// directory. The file is optional; flags override whatever it sets.
const DefaultConfigPath = "linkdep.yaml"

// Config holds the optional settings read from linkdep.yaml.
//
// Example:
//
//	log_level: debug
//	output: build/dependency.dot
//	labels: true
//	marked:
//	  - libSystem.B
//	  - Foundation
type Config struct {
	// LogLevel sets the minimum log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// Output is the default path for generated DOT files.
	Output string `yaml:"output"`

	// Labels enables symbol labels on graph edges.
	Labels bool `yaml:"labels"`

	// Marked lists object files excluded from unmarked reports,
	// typically system libraries every file links against.
	Marked []string `yaml:"marked"`

	// DebounceMs is the watch-mode rebuild debounce window in
	// milliseconds. Zero keeps the built-in default.
	DebounceMs int `yaml:"debounce_ms"`
}

// LoadConfig reads the config file at path. A missing file is not an
// error; the zero Config is returned so flags and defaults apply.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}
