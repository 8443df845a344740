// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package logging

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("warn"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("info"))
	assert.Equal(t, LevelInfo, ParseLevel("bogus"))
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf strings.Builder
	logger := New(Config{Level: LevelWarn, Output: &buf})

	logger.Debug("dropped")
	logger.Info("dropped too")
	logger.Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestLoggerJSONWithService(t *testing.T) {
	var buf strings.Builder
	logger := New(Config{JSON: true, Service: "linkdep", Output: &buf})

	logger.Info("graph built", "vertexes", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(buf.String()), &entry))
	assert.Equal(t, "graph built", entry["msg"])
	assert.Equal(t, "linkdep", entry["service"])
	assert.Equal(t, float64(3), entry["vertexes"])
}

func TestLoggerQuiet(t *testing.T) {
	var buf strings.Builder
	logger := New(Config{Quiet: true, Output: &buf})

	logger.Error("nothing to see")

	assert.Empty(t, buf.String())
}

func TestLoggerWith(t *testing.T) {
	var buf strings.Builder
	logger := New(Config{Output: &buf}).With("graph_id", "g-1")

	logger.Info("hello")

	assert.Contains(t, buf.String(), "graph_id=g-1")
}
