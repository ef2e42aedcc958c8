// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalogue

import (
	"bytes"
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Catalogue is a validated, ordered mapping from category name to
// [Category]. Construct one with [Parse]; the zero value is an empty
// catalogue.
type Catalogue struct {
	categories *orderedmap.OrderedMap[string, *Category]
}

// Category is an ordered mapping from task key to [Task].
type Category struct {
	name  string
	tasks *orderedmap.OrderedMap[string, *Task]
}

// Task is a single catalogue entry. Description is nil when the
// document omits it (or sets it to null). Steps is nil when the
// document has no steps field and non-nil (possibly empty) when it
// does, so an export reproduces the loaded shape.
type Task struct {
	Description *string
	Steps       []string
}

// DescriptionText returns the description, or "" when absent.
func (task *Task) DescriptionText() string {
	if task == nil || task.Description == nil {
		return ""
	}
	return *task.Description
}

// HasSteps reports whether the task declared a steps field.
func (task *Task) HasSteps() bool {
	return task != nil && task.Steps != nil
}

func newCatalogue() *Catalogue {
	return &Catalogue{categories: orderedmap.New[string, *Category]()}
}

func newCategory(name string) *Category {
	return &Category{name: name, tasks: orderedmap.New[string, *Task]()}
}

// Len returns the number of categories.
func (catalogue *Catalogue) Len() int {
	if catalogue == nil || catalogue.categories == nil {
		return 0
	}
	return catalogue.categories.Len()
}

// Categories returns the category names in document order.
func (catalogue *Catalogue) Categories() []string {
	if catalogue.Len() == 0 {
		return nil
	}
	names := make([]string, 0, catalogue.categories.Len())
	for pair := catalogue.categories.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Category returns the named category.
func (catalogue *Catalogue) Category(name string) (*Category, bool) {
	if catalogue.Len() == 0 {
		return nil, false
	}
	return catalogue.categories.Get(name)
}

// HasCategory reports whether the catalogue contains the named category.
func (catalogue *Catalogue) HasCategory(name string) bool {
	_, exists := catalogue.Category(name)
	return exists
}

// Task returns the task with the given key inside the named category.
func (catalogue *Catalogue) Task(category, key string) (*Task, bool) {
	found, exists := catalogue.Category(category)
	if !exists {
		return nil, false
	}
	return found.Task(key)
}

// First returns the first category and its first task in document
// order. The task key is empty when the first category has no tasks;
// ok is false only for an empty catalogue.
func (catalogue *Catalogue) First() (category string, task string, ok bool) {
	if catalogue.Len() == 0 {
		return "", "", false
	}
	pair := catalogue.categories.Oldest()
	category = pair.Key
	if first := pair.Value.tasks.Oldest(); first != nil {
		task = first.Key
	}
	return category, task, true
}

// TaskCount returns the total number of tasks across all categories.
func (catalogue *Catalogue) TaskCount() int {
	total := 0
	if catalogue.Len() == 0 {
		return 0
	}
	for pair := catalogue.categories.Oldest(); pair != nil; pair = pair.Next() {
		total += pair.Value.Len()
	}
	return total
}

// Name returns the category name.
func (category *Category) Name() string {
	return category.name
}

// Len returns the number of tasks in the category.
func (category *Category) Len() int {
	return category.tasks.Len()
}

// Keys returns the task keys in document order.
func (category *Category) Keys() []string {
	keys := make([]string, 0, category.tasks.Len())
	for pair := category.tasks.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Task returns the task with the given key.
func (category *Category) Task(key string) (*Task, bool) {
	return category.tasks.Get(key)
}

// MarshalJSON encodes the catalogue as a JSON object in document order.
func (catalogue *Catalogue) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	if catalogue.Len() > 0 {
		for pair := catalogue.categories.Oldest(); pair != nil; pair = pair.Next() {
			if pair != catalogue.categories.Oldest() {
				buffer.WriteByte(',')
			}
			if err := writeMember(&buffer, pair.Key, pair.Value); err != nil {
				return nil, err
			}
		}
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// MarshalJSON encodes the category as a JSON object in document order.
func (category *Category) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	for pair := category.tasks.Oldest(); pair != nil; pair = pair.Next() {
		if pair != category.tasks.Oldest() {
			buffer.WriteByte(',')
		}
		if err := writeMember(&buffer, pair.Key, pair.Value); err != nil {
			return nil, err
		}
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// MarshalJSON encodes the task with description before steps, omitting
// whichever fields the loaded document omitted.
func (task *Task) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	if task.Description != nil {
		if err := writeMember(&buffer, "description", *task.Description); err != nil {
			return nil, err
		}
	}
	if task.Steps != nil {
		if task.Description != nil {
			buffer.WriteByte(',')
		}
		if err := writeMember(&buffer, "steps", task.Steps); err != nil {
			return nil, err
		}
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// writeMember appends `"key":value` to buffer without HTML escaping,
// so exported text round-trips byte-for-byte through other tools.
func writeMember(buffer *bytes.Buffer, key string, value any) error {
	encodedKey, err := encodeJSON(key)
	if err != nil {
		return err
	}
	encodedValue, err := encodeJSON(value)
	if err != nil {
		return err
	}
	buffer.Write(encodedKey)
	buffer.WriteByte(':')
	buffer.Write(encodedValue)
	return nil
}

func encodeJSON(value any) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buffer.Bytes(), []byte("\n")), nil
}
