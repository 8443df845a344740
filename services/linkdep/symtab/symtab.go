// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package symtab reads global symbol tables of compiled object files and
// maps defined symbols to the files that define them.
//
// The Reader interface is the boundary to the external symbol extractor;
// NmReader is the production implementation backed by the nm(1) tool.
// Symbol names are opaque strings: demangling via ReadableSymbolName is
// cosmetic, for edge labels only, and never changes the identity used
// for definition lookup.
package symtab

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

// Symbol type letters as reported in nm global output.
const (
	definedSymbolType   = "S"
	undefinedSymbolType = "U"
)

// manglePrefixes are the known unreadable symbol prefixes. Exactly one
// matching prefix is stripped when building a readable name.
var manglePrefixes = []string{
	"_OBJC_CLASS_$_",
	"_OBJC_METACLASS_$_",
}

// symbolLinePattern matches one nm output line: padding, a single type
// letter, a space, then the symbol name.
var symbolLinePattern = regexp.MustCompile(`.+ ([a-zA-Z]) (.*)$`)

// Symbols holds the global symbols of one object file.
type Symbols struct {
	// Defined are the symbol names this file defines.
	Defined []string

	// Undefined are the symbol names this file references but does not
	// define.
	Undefined []string
}

// Reader extracts the global symbols of a single object file.
//
// Implementations must treat a read failure as fatal for the file: there
// is no partial result. The caller decides whether one bad file aborts a
// larger run (the dependency pipeline does).
type Reader interface {
	Read(ctx context.Context, path string) (Symbols, error)
}

// NmReader reads symbols by invoking `nm -g` on the object file.
type NmReader struct{}

// NewNmReader creates a Reader backed by the nm tool.
func NewNmReader() *NmReader {
	return &NmReader{}
}

// Read runs `nm -g path` and classifies every reported symbol as defined
// or undefined. Lines with unrecognized type letters are ignored.
func (r *NmReader) Read(ctx context.Context, path string) (Symbols, error) {
	cmd := exec.CommandContext(ctx, "nm", "-g", path)
	output, err := cmd.Output()
	if err != nil {
		return Symbols{}, fmt.Errorf("%w: nm -g %s: %v", ErrSymbolRead, path, err)
	}
	return ParseSymbols(string(output)), nil
}

// ParseSymbols classifies every line of nm global output.
func ParseSymbols(output string) Symbols {
	var symbols Symbols
	for _, line := range strings.Split(output, "\n") {
		symbolType, name, ok := parseSymbolLine(line)
		if !ok {
			continue
		}
		switch symbolType {
		case definedSymbolType:
			symbols.Defined = append(symbols.Defined, name)
		case undefinedSymbolType:
			symbols.Undefined = append(symbols.Undefined, name)
		}
	}
	return symbols
}

// parseSymbolLine splits a line like
//
//	"                 U _OBJC_CLASS_$_NSView"
//
// into its type letter and symbol name. Returns ok=false for lines that
// do not carry a defined or undefined global symbol.
func parseSymbolLine(line string) (symbolType, name string, ok bool) {
	match := symbolLinePattern.FindStringSubmatch(line)
	if match == nil {
		return "", "", false
	}
	symbolType = match[1]
	if symbolType != definedSymbolType && symbolType != undefinedSymbolType {
		return "", "", false
	}
	return symbolType, match[2], true
}

// ReadableSymbolName strips one known mangled-class prefix, if present,
// to produce a readable edge label. Lookup identity is never derived
// from the readable form.
func ReadableSymbolName(name string) string {
	for _, prefix := range manglePrefixes {
		if strings.HasPrefix(name, prefix) {
			return name[len(prefix):]
		}
	}
	return name
}

// ShortFileName strips directory components and the final extension from
// a file path. The result is the graph vertex for the file. Distinct
// paths can normalize to the same short name; the last registration wins.
func ShortFileName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
