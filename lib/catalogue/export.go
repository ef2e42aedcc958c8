// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalogue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// exportIndent is the indentation used by every pretty-printed export.
const exportIndent = "  "

// ExportTask renders a single task as `{ "<key>": {description?, steps?} }`,
// pretty-printed with a trailing newline. Use [ImportTask] to validate
// the result back into a catalogue.
func ExportTask(key string, task *Task) ([]byte, error) {
	if task == nil {
		return nil, fmt.Errorf("export task %q: no task", key)
	}
	var compact bytes.Buffer
	compact.WriteByte('{')
	if err := writeMember(&compact, key, task); err != nil {
		return nil, fmt.Errorf("export task %q: %w", key, err)
	}
	compact.WriteByte('}')
	return indent(compact.Bytes())
}

// ExportJSON renders the whole catalogue pretty-printed, in document
// order and in the shape it was loaded with.
func ExportJSON(catalogue *Catalogue) ([]byte, error) {
	compact, err := catalogue.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("export catalogue: %w", err)
	}
	return indent(compact)
}

func indent(compact []byte) ([]byte, error) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, compact, "", exportIndent); err != nil {
		return nil, err
	}
	pretty.WriteByte('\n')
	return pretty.Bytes(), nil
}

// NoStepsPlaceholder replaces the steps section of a prompt export when
// the task has no steps.
const NoStepsPlaceholder = "No steps defined."

// PromptText renders a task as line-oriented plain text for pasting
// into a prompt:
//
//	# <key>
//
//	<description>
//
//	Steps:
//	1. <first step>
//	2. <second step>
//
//	---
//	Exported from <provenance> (category: <category>)
//
// The description paragraph (and its following blank line) is omitted
// when the task has no description. A task without steps gets the
// [NoStepsPlaceholder] line instead of the steps section. The output
// ends with a newline.
func PromptText(category, key string, task *Task, provenance string) string {
	var builder strings.Builder

	builder.WriteString("# ")
	builder.WriteString(key)
	builder.WriteString("\n\n")

	if description := strings.TrimSpace(task.DescriptionText()); description != "" {
		builder.WriteString(description)
		builder.WriteString("\n\n")
	}

	if len(task.Steps) == 0 {
		builder.WriteString(NoStepsPlaceholder)
		builder.WriteString("\n")
	} else {
		builder.WriteString("Steps:\n")
		for index, step := range task.Steps {
			fmt.Fprintf(&builder, "%d. %s\n", index+1, step)
		}
	}

	builder.WriteString("\n---\n")
	fmt.Fprintf(&builder, "Exported from %s (category: %s)\n", provenance, category)
	return builder.String()
}

// ExportFilename derives a filesystem-safe file name from a task or
// catalogue name: lowercased, runs of anything other than letters and
// digits collapsed to a single hyphen. An empty result becomes
// "export".
func ExportFilename(name, extension string) string {
	var builder strings.Builder
	pendingHyphen := false
	for _, character := range strings.ToLower(name) {
		if unicode.IsLetter(character) || unicode.IsDigit(character) {
			if pendingHyphen && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			pendingHyphen = false
			builder.WriteRune(character)
			continue
		}
		pendingHyphen = true
	}
	stem := builder.String()
	if stem == "" {
		stem = "export"
	}
	if extension == "" {
		return stem
	}
	return stem + "." + strings.TrimPrefix(extension, ".")
}
