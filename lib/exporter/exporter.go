// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package exporter delivers session artifacts to files and streams,
// optionally compressed and age-encrypted.
//
// [DirectorySink] backs the browser's export keys and `playbook export
// --output DIR`; [StreamSink] backs `playbook export` to standard
// output. Both implement session.ExportSink.
package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"filippo.io/age"

	"github.com/bureau-foundation/playbook/lib/atomicfile"
	"github.com/bureau-foundation/playbook/lib/catalogue"
	"github.com/bureau-foundation/playbook/lib/session"
)

// Envelope selects how artifact content is wrapped before delivery.
// The zero value delivers content unchanged.
type Envelope struct {
	Compression catalogue.Compression
	Recipients  []age.Recipient
}

// Encrypted reports whether the envelope encrypts.
func (envelope Envelope) Encrypted() bool {
	return len(envelope.Recipients) > 0
}

// Seal wraps content, returning the bytes and the file name suffix the
// wrapping adds (".zst", ".age", ...).
func (envelope Envelope) Seal(content []byte) ([]byte, string, error) {
	return catalogue.Wrap(content, envelope.Compression, envelope.Recipients)
}

// DirectorySink writes each artifact to Directory under its suggested
// file name plus the envelope suffix, replacing any existing file.
type DirectorySink struct {
	Directory string
	Envelope  Envelope
	Logger    *slog.Logger

	// LastPath is the path of the most recent successful export.
	LastPath string
}

// Export implements session.ExportSink.
func (sink *DirectorySink) Export(artifact session.Artifact) error {
	data, suffix, err := sink.Envelope.Seal(artifact.Content)
	if err != nil {
		return fmt.Errorf("exporting %s: %w", artifact.Filename, err)
	}
	path := filepath.Join(sink.Directory, artifact.Filename+suffix)

	perm := os.FileMode(0o644)
	if sink.Envelope.Encrypted() {
		perm = 0o600
	}
	if err := atomicfile.WriteAll(path, data, perm); err != nil {
		return err
	}
	sink.LastPath = path

	if sink.Logger != nil {
		sink.Logger.Info("exported",
			"kind", artifact.Kind.String(),
			"path", path,
			"bytes", len(data),
		)
	}
	return nil
}

// StreamSink writes each artifact to Writer.
type StreamSink struct {
	Writer   io.Writer
	Envelope Envelope
}

// Export implements session.ExportSink.
func (sink *StreamSink) Export(artifact session.Artifact) error {
	data, _, err := sink.Envelope.Seal(artifact.Content)
	if err != nil {
		return fmt.Errorf("exporting %s: %w", artifact.Filename, err)
	}
	_, err = sink.Writer.Write(data)
	return err
}
