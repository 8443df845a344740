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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/linkdep/services/linkdep/graph"
	"github.com/AleutianAI/linkdep/services/linkdep/symtab"
)

// buildStarSet builds a hub most files need:
//
//	app -> ui -> core, app -> core, net -> core
//
// core requires nothing; app requires the most.
func buildStarSet(t *testing.T) *DependencySet {
	t.Helper()
	reader := &fakeReader{symbols: map[string]symtab.Symbols{
		"core.o": {Defined: []string{"_core_init"}},
		"ui.o":   {Defined: []string{"_ui_draw"}, Undefined: []string{"_core_init"}},
		"net.o":  {Defined: []string{"_net_send"}, Undefined: []string{"_core_init"}},
		"app.o":  {Undefined: []string{"_ui_draw", "_core_init"}},
	}}
	d, err := New(context.Background(), []string{"core.o", "ui.o", "net.o", "app.o"}, reader, quietLogger())
	require.NoError(t, err)
	return d
}

func TestMostRequired(t *testing.T) {
	d := buildStarSet(t)

	ranks := d.MostRequired(2, true)

	require.Len(t, ranks, 2)
	assert.Equal(t, FileRank{File: "app", Count: 2}, ranks[0])
	// ui and net both require 1; the lexicographic tie-break picks net.
	assert.Equal(t, FileRank{File: "net", Count: 1}, ranks[1])
}

func TestMostRequiredDefaultLimit(t *testing.T) {
	d := buildStarSet(t)

	ranks := d.MostRequired(0, true)

	// Four files, default limit five: everything is returned.
	assert.Len(t, ranks, 4)
}

func TestLongestChains(t *testing.T) {
	d := buildChainSet(t)

	chains := d.LongestChains(1, true)

	require.Len(t, chains, 1)
	assert.Equal(t, graph.Vertex("a"), chains[0].File)
	assert.Equal(t, 2, chains[0].Distance)
	assert.Equal(t, []graph.Vertex{"a", "b", "c"}, chains[0].Path)
}

func TestMostProvided(t *testing.T) {
	d := buildStarSet(t)

	ranks := d.MostProvided(1)

	require.Len(t, ranks, 1)
	assert.Equal(t, FileRank{File: "core", Count: 3}, ranks[0])
}

func TestMostProvidedExcludesMarked(t *testing.T) {
	d := buildStarSet(t)
	d.MarkFiles([]string{"core.o"})

	ranks := d.MostProvided(1)

	require.Len(t, ranks, 1)
	// With core marked away, ui is the most needed survivor.
	assert.Equal(t, FileRank{File: "ui", Count: 1}, ranks[0])
}

func TestIndependentMostProvided(t *testing.T) {
	d := buildStarSet(t)

	ranks := d.IndependentMostProvided(0)

	require.Len(t, ranks, 1)
	assert.Equal(t, FileRank{File: "core", Count: 3}, ranks[0])
}

func TestLongestChainsCycleStaysFinite(t *testing.T) {
	reader := &fakeReader{symbols: map[string]symtab.Symbols{
		"a.o": {Defined: []string{"_a"}, Undefined: []string{"_b"}},
		"b.o": {Defined: []string{"_b"}, Undefined: []string{"_a"}},
	}}
	d, err := New(context.Background(), []string{"a.o", "b.o"}, reader, quietLogger())
	require.NoError(t, err)

	chains := d.LongestChains(0, true)

	require.Len(t, chains, 2)
	assert.Equal(t, 1, chains[0].Distance)
	assert.Equal(t, 1, chains[1].Distance)
}
