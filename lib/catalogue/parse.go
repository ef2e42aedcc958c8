// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalogue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/jsonc"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Parse strips JSONC comments and trailing commas from raw, then
// validates and decodes it into a Catalogue. Either the whole document
// is accepted or nothing is: on failure the returned catalogue is nil
// and the error holds every [ValidationError] found, in document order.
func Parse(raw []byte) (*Catalogue, error) {
	members, err := decodeObject(jsonc.ToJSON(raw))
	if err != nil {
		return nil, &ValidationError{
			Kind:   NotAnObject,
			Reason: "top-level value must be an object of categories",
			Err:    err,
		}
	}

	result := newCatalogue()
	var problems []error
	for pair := members.Oldest(); pair != nil; pair = pair.Next() {
		category, categoryProblems := parseCategory(pair.Key, pair.Value)
		problems = append(problems, categoryProblems...)
		if category != nil {
			result.categories.Set(pair.Key, category)
		}
	}

	switch len(problems) {
	case 0:
		return result, nil
	case 1:
		return nil, problems[0]
	default:
		return nil, errors.Join(problems...)
	}
}

// ImportTask validates a single-task export (as produced by
// [ExportTask]) and places it under the given category name. The
// export must be an object holding exactly one task; the result is a
// catalogue with that one category and task.
func ImportTask(category string, raw []byte) (*Catalogue, error) {
	members, err := decodeObject(jsonc.ToJSON(raw))
	if err != nil {
		return nil, &ValidationError{
			Kind:     InvalidCategory,
			Category: category,
			Reason:   "task export must be an object",
			Err:      err,
		}
	}
	if count := members.Len(); count != 1 {
		return nil, &ValidationError{
			Kind:     InvalidCategory,
			Category: category,
			Reason:   fmt.Sprintf("task export must hold exactly one task, found %d", count),
		}
	}

	pair := members.Oldest()
	task, err := parseTask(category, pair.Key, pair.Value)
	if err != nil {
		return nil, err
	}
	imported := newCategory(category)
	imported.tasks.Set(pair.Key, task)

	result := newCatalogue()
	result.categories.Set(category, imported)
	return result, nil
}

func parseCategory(name string, raw json.RawMessage) (*Category, []error) {
	if jsonKind(raw) != '{' {
		return nil, []error{&ValidationError{
			Kind:     InvalidCategory,
			Category: name,
			Reason:   "value must be an object of tasks, got " + kindName(raw),
		}}
	}

	members, err := decodeObject(raw)
	if err != nil {
		return nil, []error{&ValidationError{
			Kind:     InvalidCategory,
			Category: name,
			Reason:   "malformed object",
			Err:      err,
		}}
	}

	category := newCategory(name)
	var problems []error
	for pair := members.Oldest(); pair != nil; pair = pair.Next() {
		task, err := parseTask(name, pair.Key, pair.Value)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		category.tasks.Set(pair.Key, task)
	}
	if len(problems) > 0 {
		return nil, problems
	}
	return category, nil
}

func parseTask(category, key string, raw json.RawMessage) (*Task, error) {
	invalid := func(reason string, cause error) error {
		return &ValidationError{
			Kind:     InvalidTask,
			Category: category,
			Task:     key,
			Reason:   reason,
			Err:      cause,
		}
	}

	if jsonKind(raw) != '{' {
		return nil, invalid("value must be an object, got "+kindName(raw), nil)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, invalid("malformed object", err)
	}

	task := &Task{}

	if description, present := fields["description"]; present {
		switch jsonKind(description) {
		case 'n':
			// null is treated as absent.
		case '"':
			var text string
			if err := json.Unmarshal(description, &text); err != nil {
				return nil, invalid("malformed description", err)
			}
			task.Description = &text
		default:
			return nil, invalid("description must be a string, got "+kindName(description), nil)
		}
	}

	if steps, present := fields["steps"]; present {
		if jsonKind(steps) != '[' {
			return nil, invalid("steps must be an array, got "+kindName(steps), nil)
		}
		var elements []json.RawMessage
		if err := json.Unmarshal(steps, &elements); err != nil {
			return nil, invalid("malformed steps", err)
		}
		task.Steps = make([]string, 0, len(elements))
		for index, element := range elements {
			if jsonKind(element) != '"' {
				return nil, invalid(fmt.Sprintf("step %d must be a string, got %s", index+1, kindName(element)), nil)
			}
			var step string
			if err := json.Unmarshal(element, &step); err != nil {
				return nil, invalid(fmt.Sprintf("malformed step %d", index+1), err)
			}
			task.Steps = append(task.Steps, step)
		}
	}

	return task, nil
}

// decodeObject decodes a JSON object into an ordered map of raw member
// values. Duplicate keys keep their first position and last value.
func decodeObject(raw []byte) (*orderedmap.OrderedMap[string, json.RawMessage], error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))

	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	if delimiter, ok := token.(json.Delim); !ok || delimiter != '{' {
		return nil, fmt.Errorf("expected object, got %s", kindName(raw))
	}

	members := orderedmap.New[string, json.RawMessage]()
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		key, ok := token.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", token)
		}
		var value json.RawMessage
		if err := decoder.Decode(&value); err != nil {
			return nil, fmt.Errorf("member %q: %w", key, err)
		}
		members.Set(key, value)
	}

	// Closing brace.
	if _, err := decoder.Token(); err != nil {
		return nil, err
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level object")
	}
	return members, nil
}

// jsonKind returns the first significant byte of a JSON value: '{',
// '[', '"', 'n' (null), 't'/'f' (booleans), or a number's first byte.
// Returns 0 for empty input.
func jsonKind(raw []byte) byte {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

func kindName(raw []byte) string {
	switch jsonKind(raw) {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 'n':
		return "null"
	case 't', 'f':
		return "boolean"
	case 0:
		return "nothing"
	default:
		return "number"
	}
}
