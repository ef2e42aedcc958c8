// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/playbook/lib/catalogue"
	"github.com/bureau-foundation/playbook/lib/codec"
)

// ViewSink presents views. The browser and the list command implement
// it.
type ViewSink interface {
	Render(view View)
}

// ArtifactKind identifies what an [Artifact] holds.
type ArtifactKind int

const (
	// TaskJSON is a single task in the task export format.
	TaskJSON ArtifactKind = iota

	// CatalogueJSON is the whole catalogue, pretty-printed.
	CatalogueJSON

	// PromptText is a task rendered as plain text for a prompt.
	PromptText

	// CatalogueCBOR is the whole catalogue as a deterministic CBOR
	// document.
	CatalogueCBOR
)

func (kind ArtifactKind) String() string {
	switch kind {
	case TaskJSON:
		return "task"
	case CatalogueJSON:
		return "catalogue"
	case PromptText:
		return "prompt"
	case CatalogueCBOR:
		return "cbor"
	default:
		return fmt.Sprintf("unknown(%d)", int(kind))
	}
}

// Extension returns the file extension for the kind, without the dot.
func (kind ArtifactKind) Extension() string {
	switch kind {
	case PromptText:
		return "txt"
	case CatalogueCBOR:
		return "cbor"
	default:
		return "json"
	}
}

// Whole reports whether the kind exports the entire catalogue rather
// than the selected task.
func (kind ArtifactKind) Whole() bool {
	return kind == CatalogueJSON || kind == CatalogueCBOR
}

// Artifact is an export ready for delivery.
type Artifact struct {
	Kind ArtifactKind

	// Filename is a suggested file name derived from the task key or,
	// for catalogue exports, from "catalogue".
	Filename string

	// Category and Task name the exported task; both are empty for
	// catalogue exports.
	Category string
	Task     string

	Content []byte
}

// ExportSink delivers artifacts: clipboard, file, or standard output.
type ExportSink interface {
	Export(artifact Artifact) error
}

// ErrNoSelection is returned when a task export is requested with
// nothing selected.
var ErrNoSelection = errors.New("no task selected")

// BuildArtifact renders the export of the given kind for state. Task
// and prompt exports use the selection; provenance labels prompt text.
func BuildArtifact(catalogue *catalogue.Catalogue, state State, kind ArtifactKind, provenance string) (Artifact, error) {
	if kind.Whole() {
		return CatalogueArtifact(catalogue, kind)
	}
	if state.Selection == nil {
		return Artifact{}, ErrNoSelection
	}
	return TaskArtifact(catalogue, state.Selection.Category, state.Selection.Task, kind, provenance)
}

// TaskArtifact renders a task or prompt export for the named task.
func TaskArtifact(loaded *catalogue.Catalogue, category, key string, kind ArtifactKind, provenance string) (Artifact, error) {
	task, exists := loaded.Task(category, key)
	if !exists {
		return Artifact{}, &SelectionError{
			Kind:           NotFound,
			Category:       category,
			Task:           key,
			CategoryExists: loaded.HasCategory(category),
		}
	}

	artifact := Artifact{
		Kind:     kind,
		Filename: catalogue.ExportFilename(key, kind.Extension()),
		Category: category,
		Task:     key,
	}
	switch kind {
	case TaskJSON:
		content, err := catalogue.ExportTask(key, task)
		if err != nil {
			return Artifact{}, err
		}
		artifact.Content = content
	case PromptText:
		artifact.Content = []byte(catalogue.PromptText(category, key, task, provenance))
	default:
		return Artifact{}, fmt.Errorf("artifact kind %s is not a task export", kind)
	}
	return artifact, nil
}

// CatalogueArtifact renders the full catalogue export as JSON or CBOR.
func CatalogueArtifact(loaded *catalogue.Catalogue, kind ArtifactKind) (Artifact, error) {
	var content []byte
	var err error
	switch kind {
	case CatalogueJSON:
		content, err = catalogue.ExportJSON(loaded)
	case CatalogueCBOR:
		content, err = codec.EncodeCatalogue(loaded)
	default:
		return Artifact{}, fmt.Errorf("artifact kind %s is not a catalogue export", kind)
	}
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{
		Kind:     kind,
		Filename: catalogue.ExportFilename("catalogue", kind.Extension()),
		Content:  content,
	}, nil
}

// Export builds the artifact of the given kind for the session's
// current state and hands it to sink.
func (session *Session) Export(kind ArtifactKind, provenance string, sink ExportSink) (Artifact, error) {
	artifact, err := BuildArtifact(session.catalogue, session.state, kind, provenance)
	if err != nil {
		return Artifact{}, err
	}
	if err := sink.Export(artifact); err != nil {
		return Artifact{}, err
	}
	return artifact, nil
}
