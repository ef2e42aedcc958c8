// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/bureau-foundation/playbook/lib/catalogue"
)

// DocumentFormat identifies a CBOR catalogue document.
const DocumentFormat = "playbook.catalogue"

// DocumentVersion is the only document version this package writes
// and reads.
const DocumentVersion = 1

// Document is the CBOR form of a catalogue.
type Document struct {
	Format     string           `cbor:"format"`
	Version    int              `cbor:"version"`
	Categories []CategoryRecord `cbor:"categories"`
}

// CategoryRecord is one category with its tasks in document order.
type CategoryRecord struct {
	Name  string       `cbor:"name"`
	Tasks []TaskRecord `cbor:"tasks"`
}

// TaskRecord is one task. Nil Description and nil Steps encode as
// null, so absent fields stay distinguishable from empty ones.
type TaskRecord struct {
	Key         string   `cbor:"key"`
	Description *string  `cbor:"description"`
	Steps       []string `cbor:"steps"`
}

// NewDocument converts a catalogue into its CBOR document form.
func NewDocument(loaded *catalogue.Catalogue) Document {
	document := Document{
		Format:     DocumentFormat,
		Version:    DocumentVersion,
		Categories: make([]CategoryRecord, 0, loaded.Len()),
	}
	for _, name := range loaded.Categories() {
		category, _ := loaded.Category(name)
		record := CategoryRecord{Name: name, Tasks: make([]TaskRecord, 0, category.Len())}
		for _, key := range category.Keys() {
			task, _ := category.Task(key)
			record.Tasks = append(record.Tasks, TaskRecord{
				Key:         key,
				Description: task.Description,
				Steps:       task.Steps,
			})
		}
		document.Categories = append(document.Categories, record)
	}
	return document
}

// EncodeCatalogue renders loaded as a deterministic CBOR document.
func EncodeCatalogue(loaded *catalogue.Catalogue) ([]byte, error) {
	data, err := Marshal(NewDocument(loaded))
	if err != nil {
		return nil, fmt.Errorf("encoding catalogue: %w", err)
	}
	return data, nil
}

// DecodeCatalogue reads a CBOR document and validates it the same way
// a JSON catalogue is validated.
func DecodeCatalogue(data []byte) (*catalogue.Catalogue, error) {
	var document Document
	if err := Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("decoding catalogue: %w", err)
	}
	if document.Format != DocumentFormat {
		return nil, fmt.Errorf("decoding catalogue: format %q, expected %q", document.Format, DocumentFormat)
	}
	if document.Version != DocumentVersion {
		return nil, fmt.Errorf("decoding catalogue: unsupported version %d", document.Version)
	}

	categories := orderedmap.New[string, *orderedmap.OrderedMap[string, *catalogue.Task]]()
	for _, record := range document.Categories {
		if _, duplicate := categories.Get(record.Name); duplicate {
			return nil, fmt.Errorf("decoding catalogue: duplicate category %q", record.Name)
		}
		tasks := orderedmap.New[string, *catalogue.Task]()
		for _, task := range record.Tasks {
			if _, duplicate := tasks.Get(task.Key); duplicate {
				return nil, fmt.Errorf("decoding catalogue: duplicate task %q in category %q", task.Key, record.Name)
			}
			tasks.Set(task.Key, &catalogue.Task{Description: task.Description, Steps: task.Steps})
		}
		categories.Set(record.Name, tasks)
	}

	// The JSON rendering goes through Parse so both formats share one
	// set of validation rules.
	rendered, err := json.Marshal(categories)
	if err != nil {
		return nil, fmt.Errorf("decoding catalogue: %w", err)
	}
	return catalogue.Parse(rendered)
}
