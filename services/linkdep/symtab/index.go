// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package symtab

// Index maps each defined symbol name to the single file that defines it.
//
// A duplicate definition silently replaces the previous one: the index
// keeps one authoritative definer per symbol and the last writer wins.
// That is a deliberate design choice for edge resolution, not error
// masking. The index is an explicit instance owned by its caller, never
// ambient state.
//
// Index is NOT safe for concurrent use; it is written and read within
// the single-threaded construction pipeline.
type Index struct {
	symbolToFile map[string]string
}

// NewIndex creates an empty symbol index.
func NewIndex() *Index {
	return &Index{symbolToFile: make(map[string]string)}
}

// Record stores file as the definer of symbol, overwriting any previous
// definer.
func (i *Index) Record(symbol, file string) {
	i.symbolToFile[symbol] = file
}

// Lookup returns the defining file for symbol, or ok=false when no
// processed file defines it.
func (i *Index) Lookup(symbol string) (string, bool) {
	file, ok := i.symbolToFile[symbol]
	return file, ok
}

// Len returns the number of distinct symbols recorded.
func (i *Index) Len() int {
	return len(i.symbolToFile)
}
