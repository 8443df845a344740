// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package visualization

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/linkdep/services/linkdep/graph"
)

func buildSampleGraph(t *testing.T) *graph.DirectedGraph {
	t.Helper()
	builder := graph.NewBuilder()
	builder.AddEdge("a", "b", "zeta")
	builder.AddEdge("a", "b", "alpha")
	builder.AddEdge("b", "c", "beta")
	builder.AddVertex("lonely")
	return builder.Build()
}

func TestWriteDotWithLabels(t *testing.T) {
	var buf strings.Builder

	require.NoError(t, WriteDot(&buf, buildSampleGraph(t), true))

	want := "digraph dependencies {\n" +
		"    a -> b [label='alpha, zeta'];\n" +
		"    b -> c [label='beta'];\n" +
		"    c;\n" +
		"    lonely;\n" +
		"}\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteDotWithoutLabels(t *testing.T) {
	var buf strings.Builder

	require.NoError(t, WriteDot(&buf, buildSampleGraph(t), false))

	assert.Contains(t, buf.String(), "    a -> b;\n")
	assert.NotContains(t, buf.String(), "label=")
}

func TestDumpDotWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dependency.dot")

	require.NoError(t, DumpDot(path, buildSampleGraph(t), true))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "digraph dependencies {\n"))
	assert.True(t, strings.HasSuffix(string(content), "}\n"))
}

func TestDumpDotEmptyGraph(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dependency.dot")

	err := DumpDot(path, graph.NewBuilder().Build(), false)

	require.ErrorIs(t, err, ErrEmptyGraph)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file may be written for an empty graph")
}
