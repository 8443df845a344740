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

import "errors"

// Sentinel errors for symbol table operations.
var (
	// ErrSymbolRead is returned when the external symbol tool fails for
	// an object file. The failure is fatal for the file; callers building
	// a dependency graph abort the whole construction.
	ErrSymbolRead = errors.New("failed to read symbol table")
)
