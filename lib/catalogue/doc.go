// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package catalogue implements the two-level playbook catalogue: named
// categories, each holding named tasks, each task carrying an optional
// description and an ordered list of steps.
//
// A catalogue document is a JSON object (JSONC comments and trailing
// commas are tolerated):
//
//	{
//	  "PDF Tools": {
//	    "merge": {
//	      "description": "Combine several PDFs into one",
//	      "steps": ["Collect the inputs", "Run the merge", "Check page order"]
//	    }
//	  }
//	}
//
// [Parse] validates the whole document before returning anything: a
// document that is not an object of objects, a category that is not an
// object, or a task that is not an object (or whose steps are not an
// array) rejects the document as a unit with one or more
// [ValidationError] values. Key order is preserved for display.
//
// A parsed [Catalogue] is never mutated. Reloading replaces it
// wholesale, which is what lets the filter and session packages share
// it without locking.
//
// Around the model the package provides the loading collaborators used
// by the shell: [Fetcher] implementations for files (with zstd, lz4 and
// age decoding chosen by extension) and HTTP, [LoadOrFallback] which
// substitutes the embedded [Fallback] catalogue when loading fails, and
// [Watch], which re-reads a catalogue file on change and delivers each
// new valid catalogue. The export functions ([ExportTask], [ExportJSON],
// [PromptText]) produce the stable artifacts consumed by the export
// sinks.
package catalogue
