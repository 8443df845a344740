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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSymbolLine(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantType   string
		wantSymbol string
		wantOK     bool
	}{
		{
			name:       "undefined objc class",
			line:       "                 U _OBJC_CLASS_$_NSView",
			wantType:   "U",
			wantSymbol: "_OBJC_CLASS_$_NSView",
			wantOK:     true,
		},
		{
			name:       "defined symbol",
			line:       "0000000000000000 S _MyClass_field",
			wantType:   "S",
			wantSymbol: "_MyClass_field",
			wantOK:     true,
		},
		{
			name:   "other type letter ignored",
			line:   "0000000000000000 T _main",
			wantOK: false,
		},
		{
			name:   "empty line",
			line:   "",
			wantOK: false,
		},
		{
			name:   "garbage line",
			line:   "not a symbol line",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			symbolType, name, ok := parseSymbolLine(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantType, symbolType)
				assert.Equal(t, tt.wantSymbol, name)
			}
		})
	}
}

func TestParseSymbols(t *testing.T) {
	output := "0000000000000000 S _OBJC_CLASS_$_AppDelegate\n" +
		"0000000000000010 S _OBJC_METACLASS_$_AppDelegate\n" +
		"                 U _OBJC_CLASS_$_NSWindow\n" +
		"                 U _objc_msgSend\n" +
		"0000000000000020 T _ignored_text_symbol\n"

	symbols := ParseSymbols(output)

	assert.Equal(t, []string{"_OBJC_CLASS_$_AppDelegate", "_OBJC_METACLASS_$_AppDelegate"}, symbols.Defined)
	assert.Equal(t, []string{"_OBJC_CLASS_$_NSWindow", "_objc_msgSend"}, symbols.Undefined)
}

func TestReadableSymbolName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"class prefix", "_OBJC_CLASS_$_NSView", "NSView"},
		{"metaclass prefix", "_OBJC_METACLASS_$_NSView", "NSView"},
		{"plain symbol untouched", "_objc_msgSend", "_objc_msgSend"},
		// Only one prefix is stripped, never repeated stripping.
		{"single strip", "_OBJC_CLASS_$__OBJC_CLASS_$_X", "_OBJC_CLASS_$_X"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReadableSymbolName(tt.in))
		})
	}
}

func TestShortFileName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"path with extension", "build/objs/AppDelegate.o", "AppDelegate"},
		{"bare file", "main.o", "main"},
		{"no extension", "Makefile", "Makefile"},
		{"nested dotted name", "out/lib.v2.o", "lib.v2"},
		{"absolute path", "/tmp/build/View.o", "View"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShortFileName(tt.in))
		})
	}
}
