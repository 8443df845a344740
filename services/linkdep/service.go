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
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/AleutianAI/linkdep/pkg/logging"
	"github.com/AleutianAI/linkdep/services/linkdep/graph"
	"github.com/AleutianAI/linkdep/services/linkdep/symtab"
	"github.com/AleutianAI/linkdep/services/linkdep/visualization"
)

// UndefinedVertex is the sentinel vertex standing in for symbols that no
// processed file defines. It participates in the graph like an ordinary
// vertex and is always part of the marked set.
const UndefinedVertex graph.Vertex = "undefined"

// DefaultDumpPath is where the CLI writes the graph when no output path
// is configured.
const DefaultDumpPath = "dependency.dot"

// DependencySet is the facade over the whole dependency pipeline for one
// list of object files.
//
// # Lifecycle
//
//  1. New reads every file's symbol table and builds the frozen graph.
//  2. MarkFiles (optional) designates externally supplied files.
//  3. Queries: required/provided dependencies, rankings, connections,
//     DOT dumps.
//
// # Thread Safety
//
// Not synchronized. The report caches are memoized on first use and
// never invalidated for the lifetime of the instance; single-writer
// precondition, see the package documentation.
type DependencySet struct {
	id     string
	logger *logging.Logger

	files []graph.Vertex
	graph *graph.DirectedGraph

	marked map[graph.Vertex]struct{}

	// Per-variant memoized report caches. reportsAll covers the whole
	// graph; reportsUnmarked covers the subgraph without marked files.
	// nil means not yet computed.
	reportsAll      map[graph.Vertex]*graph.AnalysisReport
	reportsUnmarked map[graph.Vertex]*graph.AnalysisReport
}

// New builds a DependencySet from the listed object files.
//
// Every file's symbol table is read through reader, sequentially and
// fail-fast: one unreadable file aborts the whole construction and no
// partial graph is kept. Defined symbols are indexed last-writer-wins;
// each undefined symbol becomes a labeled edge from the referencing file
// to its definer, or to UndefinedVertex when no definer is known. Every
// input file appears as a vertex even when it defines and references
// nothing.
func New(ctx context.Context, paths []string, reader symtab.Reader, logger *logging.Logger) (*DependencySet, error) {
	if logger == nil {
		logger = logging.Default()
	}
	id := uuid.NewString()
	logger = logger.With("graph_id", id)

	index := symtab.NewIndex()
	type pendingFile struct {
		path      string
		undefined []string
	}
	pending := make([]pendingFile, 0, len(paths))
	for _, path := range paths {
		symbols, err := reader.Read(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("reading symbols of %s: %w", path, err)
		}
		for _, symbol := range symbols.Defined {
			index.Record(symbol, path)
		}
		pending = append(pending, pendingFile{path: path, undefined: symbols.Undefined})
	}
	logger.Debug("symbol tables read", "files", len(paths), "defined_symbols", index.Len())

	builder := graph.NewBuilder()
	files := make([]graph.Vertex, 0, len(pending))
	for _, file := range pending {
		short := symtab.ShortFileName(file.path)
		files = append(files, short)
		builder.AddVertex(short)
		for _, symbol := range file.undefined {
			resolved := UndefinedVertex
			if definer, ok := index.Lookup(symbol); ok {
				resolved = symtab.ShortFileName(definer)
			}
			builder.AddEdge(short, resolved, symtab.ReadableSymbolName(symbol))
		}
	}

	d := &DependencySet{
		id:     id,
		logger: logger,
		files:  files,
		graph:  builder.Build(),
		marked: map[graph.Vertex]struct{}{UndefinedVertex: {}},
	}
	logger.Info("dependency graph built", "files", len(files), "vertexes", len(d.graph.Vertexes()))
	return d, nil
}

// ID returns the unique identifier of this dependency set, as used in
// its log attributes.
func (d *DependencySet) ID() string {
	return d.id
}

// Graph returns the underlying frozen dependency graph.
func (d *DependencySet) Graph() *graph.DirectedGraph {
	return d.graph
}

// Files returns the short names of all graph vertexes, sorted.
func (d *DependencySet) Files() []graph.Vertex {
	return d.graph.SortedVertexes()
}

// MarkFiles replaces the marked set with the short names of the given
// files plus the undefined sentinel. Marking is a set replacement, not
// additive across calls. Call before the first analytics query; already
// memoized report caches are not recomputed.
func (d *DependencySet) MarkFiles(paths []string) {
	marked := make(map[graph.Vertex]struct{}, len(paths)+1)
	for _, path := range paths {
		marked[symtab.ShortFileName(path)] = struct{}{}
	}
	marked[UndefinedVertex] = struct{}{}
	d.marked = marked
	d.logger.Debug("files marked", "count", len(marked))
}

// MarkedFiles returns the current marked set, sentinel included, sorted.
func (d *DependencySet) MarkedFiles() []graph.Vertex {
	out := make([]graph.Vertex, 0, len(d.marked))
	for v := range d.marked {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// AllDependencies returns the per-file analysis reports for the chosen
// variant: the full graph when includeMarked is true, otherwise the
// subgraph without marked files. Reports are computed lazily on first
// request and memoized per variant for the lifetime of the instance.
// The returned map is the cache itself and must not be mutated.
func (d *DependencySet) AllDependencies(includeMarked bool) map[graph.Vertex]*graph.AnalysisReport {
	if includeMarked {
		if d.reportsAll == nil {
			d.reportsAll = computeReports(d.graph)
			d.logger.Debug("analysis reports computed", "variant", "all", "reports", len(d.reportsAll))
		}
		return d.reportsAll
	}
	if d.reportsUnmarked == nil {
		keep := d.graph.Vertexes()
		for v := range d.marked {
			delete(keep, v)
		}
		d.reportsUnmarked = computeReports(d.graph.Subgraph(keep))
		d.logger.Debug("analysis reports computed", "variant", "unmarked", "reports", len(d.reportsUnmarked))
	}
	return d.reportsUnmarked
}

func computeReports(g *graph.DirectedGraph) map[graph.Vertex]*graph.AnalysisReport {
	reversed := g.Reversed()
	reports := make(map[graph.Vertex]*graph.AnalysisReport, len(g.Vertexes()))
	for v := range g.Vertexes() {
		reports[v] = graph.NewAnalysisReport(v, g, reversed)
	}
	return reports
}

// report resolves the cached report for file in the chosen variant. The
// file argument may be a path; it is normalized to its short name.
func (d *DependencySet) report(file string, includeMarked bool) (*graph.AnalysisReport, error) {
	short := symtab.ShortFileName(file)
	report, ok := d.AllDependencies(includeMarked)[short]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFile, short)
	}
	return report, nil
}

// RequiredDependencies returns the transitive dependencies of file with
// their discovery items: everything that must be linked for file to
// resolve.
func (d *DependencySet) RequiredDependencies(file string, includeMarked bool) (map[graph.Vertex]graph.PathItem, error) {
	report, err := d.report(file, includeMarked)
	if err != nil {
		return nil, err
	}
	return report.Required, nil
}

// RequiredDependencyNames returns just the sorted vertex names of the
// required set. Non-verbose view of RequiredDependencies.
func (d *DependencySet) RequiredDependencyNames(file string, includeMarked bool) ([]graph.Vertex, error) {
	items, err := d.RequiredDependencies(file, includeMarked)
	if err != nil {
		return nil, err
	}
	return sortedVertexes(items), nil
}

// ProvidedDependencies returns every file that transitively requires
// file, with discovery items from the reversed graph.
func (d *DependencySet) ProvidedDependencies(file string, includeMarked bool) (map[graph.Vertex]graph.PathItem, error) {
	report, err := d.report(file, includeMarked)
	if err != nil {
		return nil, err
	}
	return report.Provided, nil
}

// ProvidedDependencyNames returns just the sorted vertex names of the
// provided set.
func (d *DependencySet) ProvidedDependencyNames(file string, includeMarked bool) ([]graph.Vertex, error) {
	items, err := d.ProvidedDependencies(file, includeMarked)
	if err != nil {
		return nil, err
	}
	return sortedVertexes(items), nil
}

// FilesConnection returns up to two reconstructed paths between a and b:
// a's required path to b when b is required by a, then b's required path
// to a when a is required by b. Either, both, or neither may be present.
// Both files must be known vertexes.
func (d *DependencySet) FilesConnection(a, b string) ([][]graph.Vertex, error) {
	reportA, err := d.report(a, true)
	if err != nil {
		return nil, err
	}
	reportB, err := d.report(b, true)
	if err != nil {
		return nil, err
	}

	var paths [][]graph.Vertex
	if item, ok := reportA.Required[reportB.Root]; ok {
		paths = append(paths, graph.ReconstructPath(reportA.Root, item, reportA.Required))
	}
	if item, ok := reportB.Required[reportA.Root]; ok {
		paths = append(paths, graph.ReconstructPath(reportB.Root, item, reportB.Required))
	}
	return paths, nil
}

// Dump writes the whole dependency graph to a DOT file at path.
// Dumping an empty graph is a caller error and fails with
// visualization.ErrEmptyGraph before any file is created.
func (d *DependencySet) Dump(path string, writeLabels bool) error {
	if err := visualization.DumpDot(path, d.graph, writeLabels); err != nil {
		return err
	}
	d.logger.Info("graph dumped", "path", path, "labels", writeLabels)
	return nil
}

// DumpSubgraph writes the subgraph restricted to the given files to a
// DOT file at path. An empty subgraph fails like an empty graph.
func (d *DependencySet) DumpSubgraph(path string, files []string, writeLabels bool) error {
	keep := make(map[graph.Vertex]struct{}, len(files))
	for _, file := range files {
		keep[symtab.ShortFileName(file)] = struct{}{}
	}
	sub := d.graph.Subgraph(keep)
	if err := visualization.DumpDot(path, sub, writeLabels); err != nil {
		return err
	}
	d.logger.Info("subgraph dumped", "path", path, "vertexes", len(sub.Vertexes()))
	return nil
}

// ReadLinkFileList reads a newline-delimited list of object file paths.
// Blank lines and surrounding whitespace are dropped.
func ReadLinkFileList(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading link file list: %w", err)
	}
	var files []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

func sortedVertexes(items map[graph.Vertex]graph.PathItem) []graph.Vertex {
	out := make([]graph.Vertex, 0, len(items))
	for v := range items {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
