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
	"sort"

	"github.com/AleutianAI/linkdep/services/linkdep/graph"
)

// DefaultRankLimit is how many files each ranking returns when the
// caller does not request a count.
const DefaultRankLimit = 5

// FileRank pairs a file with the metric value it was ranked by.
type FileRank struct {
	// File is the ranked vertex.
	File graph.Vertex

	// Count is the ranking metric: required or provided dependency count,
	// depending on the query.
	Count int
}

// ChainRank describes a file's longest required dependency chain.
type ChainRank struct {
	// File is the chain's starting vertex.
	File graph.Vertex

	// Distance is the hop length of the chain.
	Distance int

	// Path is the reconstructed chain from File to its most distant
	// required dependency.
	Path []graph.Vertex
}

// MostRequired ranks files by how many other files they transitively
// require, descending. Ties order lexicographically so output is stable.
// limit <= 0 means DefaultRankLimit.
func (d *DependencySet) MostRequired(limit int, includeMarked bool) []FileRank {
	reports := d.AllDependencies(includeMarked)
	ranks := make([]FileRank, 0, len(reports))
	for file, report := range reports {
		ranks = append(ranks, FileRank{File: file, Count: report.RequiredCount()})
	}
	return topRanks(ranks, limit)
}

// LongestChains ranks files by the length of their longest required
// dependency chain, descending, with the chain itself reconstructed.
// limit <= 0 means DefaultRankLimit.
func (d *DependencySet) LongestChains(limit int, includeMarked bool) []ChainRank {
	reports := d.AllDependencies(includeMarked)
	chains := make([]ChainRank, 0, len(reports))
	for file, report := range reports {
		chains = append(chains, ChainRank{
			File:     file,
			Distance: report.LongestRequiredDistance(),
			Path:     report.LongestRequiredPath(),
		})
	}
	sort.Slice(chains, func(i, j int) bool {
		if chains[i].Distance != chains[j].Distance {
			return chains[i].Distance > chains[j].Distance
		}
		return chains[i].File < chains[j].File
	})
	return chains[:clampLimit(limit, len(chains))]
}

// MostProvided ranks files by how many other files transitively require
// them, descending. Marked files are excluded: a test-only or system
// file topping the "most needed" list would only be noise.
// limit <= 0 means DefaultRankLimit.
func (d *DependencySet) MostProvided(limit int) []FileRank {
	reports := d.AllDependencies(false)
	ranks := make([]FileRank, 0, len(reports))
	for file, report := range reports {
		ranks = append(ranks, FileRank{File: file, Count: report.ProvidedCount()})
	}
	return topRanks(ranks, limit)
}

// IndependentMostProvided ranks the files that require nothing themselves
// by how many other files need them, descending. These are the leaf
// modules cheapest to pull into a new link target. Marked files are
// excluded. limit <= 0 means DefaultRankLimit.
func (d *DependencySet) IndependentMostProvided(limit int) []FileRank {
	reports := d.AllDependencies(false)
	ranks := make([]FileRank, 0, len(reports))
	for file, report := range reports {
		if report.RequiredCount() != 0 {
			continue
		}
		ranks = append(ranks, FileRank{File: file, Count: report.ProvidedCount()})
	}
	return topRanks(ranks, limit)
}

func topRanks(ranks []FileRank, limit int) []FileRank {
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Count != ranks[j].Count {
			return ranks[i].Count > ranks[j].Count
		}
		return ranks[i].File < ranks[j].File
	})
	return ranks[:clampLimit(limit, len(ranks))]
}

func clampLimit(limit, size int) int {
	if limit <= 0 {
		limit = DefaultRankLimit
	}
	if limit > size {
		return size
	}
	return limit
}
