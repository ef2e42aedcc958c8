// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package exporter

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"filippo.io/age"

	"github.com/bureau-foundation/playbook/lib/catalogue"
	"github.com/bureau-foundation/playbook/lib/session"
)

func testArtifact() session.Artifact {
	return session.Artifact{
		Kind:     session.TaskJSON,
		Filename: "undo-last-commit.json",
		Category: "Git",
		Task:     "Undo last commit",
		Content:  []byte("{\n  \"Undo last commit\": {}\n}\n"),
	}
}

func TestDirectorySink_Plain(t *testing.T) {
	directory := filepath.Join(t.TempDir(), "exports")
	sink := &DirectorySink{Directory: directory}

	if err := sink.Export(testArtifact()); err != nil {
		t.Fatalf("Export: %v", err)
	}
	expectedPath := filepath.Join(directory, "undo-last-commit.json")
	if sink.LastPath != expectedPath {
		t.Errorf("LastPath = %q, expected %q", sink.LastPath, expectedPath)
	}
	data, err := os.ReadFile(expectedPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(data, testArtifact().Content) {
		t.Errorf("content = %q", data)
	}
}

func TestDirectorySink_CompressedAndEncrypted(t *testing.T) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		t.Fatalf("GenerateX25519Identity: %v", err)
	}
	directory := t.TempDir()
	sink := &DirectorySink{
		Directory: directory,
		Envelope: Envelope{
			Compression: catalogue.CompressionZstd,
			Recipients:  []age.Recipient{identity.Recipient()},
		},
	}

	if err := sink.Export(testArtifact()); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if filepath.Base(sink.LastPath) != "undo-last-commit.json.zst.age" {
		t.Fatalf("LastPath = %q, expected the .zst.age suffix", sink.LastPath)
	}
	info, err := os.Stat(sink.LastPath)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("encrypted export mode = %o, expected 0600", info.Mode().Perm())
	}

	sealed, err := os.ReadFile(sink.LastPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	opened, err := catalogue.Unwrap(sink.LastPath, sealed, []age.Identity{identity})
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}
	if !bytes.Equal(opened, testArtifact().Content) {
		t.Errorf("unwrapped content = %q", opened)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestStreamSink(t *testing.T) {
	var output bytes.Buffer
	sink := &StreamSink{Writer: &output}
	if err := sink.Export(testArtifact()); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if output.String() != string(testArtifact().Content) {
		t.Errorf("output = %q", output.String())
	}

	output.Reset()
	sink.Envelope.Compression = catalogue.CompressionLZ4
	if err := sink.Export(testArtifact()); err != nil {
		t.Fatalf("Export (lz4): %v", err)
	}
	opened, err := catalogue.Unwrap("out.lz4", output.Bytes(), nil)
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}
	if !bytes.Equal(opened, testArtifact().Content) {
		t.Errorf("lz4 roundtrip = %q", opened)
	}

	broken := &StreamSink{Writer: failingWriter{}}
	if err := broken.Export(testArtifact()); err == nil {
		t.Error("writer failure should be returned")
	}
}
