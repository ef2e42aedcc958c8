// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/playbook/cmd/playbook/cli"
	"github.com/bureau-foundation/playbook/lib/catalogue"
	"github.com/bureau-foundation/playbook/lib/codec"
)

func TestValidate_Valid(t *testing.T) {
	path := writeCatalogue(t, fixtureCatalogue)
	params := validateParams{sourceParams: sourceParams{Catalogue: path}, Format: "json"}

	var output bytes.Buffer
	if err := runValidate(context.Background(), &params, &output, testLogger); err != nil {
		t.Fatalf("runValidate: %v", err)
	}

	data, _ := os.ReadFile(path)
	want := path + ": valid, 2 categories, 3 tasks, digest " + catalogue.DigestOf(data).String() + "\n"
	if output.String() != want {
		t.Errorf("output = %q, want %q", output.String(), want)
	}
}

func TestValidate_ListsEveryProblem(t *testing.T) {
	path := writeCatalogue(t, `{
  "Broken": "not an object",
  "Mixed": {
    "Bad steps": {"steps": "ls"},
    "Fine": {}
  }
}`)
	params := validateParams{sourceParams: sourceParams{Catalogue: path}, Format: "json"}

	var output bytes.Buffer
	err := runValidate(context.Background(), &params, &output, testLogger)
	requireExitCode(t, err, 1)

	text := output.String()
	for _, want := range []string{"2 problems", `category "Broken"`, `task "Bad steps" in category "Mixed"`} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestValidate_JSON(t *testing.T) {
	path := writeCatalogue(t, `{"Broken": []}`)
	params := validateParams{
		sourceParams: sourceParams{Catalogue: path},
		JSONOutput:   cli.JSONOutput{OutputJSON: true},
		Format:       "json",
	}

	var output bytes.Buffer
	err := runValidate(context.Background(), &params, &output, testLogger)
	requireExitCode(t, err, 1)

	var report validationReport
	if err := json.Unmarshal(output.Bytes(), &report); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, output.String())
	}
	if report.Valid || len(report.Problems) != 1 {
		t.Fatalf("report = %+v", report)
	}
	if report.Problems[0].Kind != "invalid_category" || report.Problems[0].Category != "Broken" {
		t.Errorf("problem = %+v", report.Problems[0])
	}
}

func TestValidate_CBOR(t *testing.T) {
	loaded, err := catalogue.Parse([]byte(fixtureCatalogue))
	if err != nil {
		t.Fatal(err)
	}
	encoded, err := codec.EncodeCatalogue(loaded)
	if err != nil {
		t.Fatal(err)
	}
	path := writeCatalogue(t, "")
	path = filepath.Join(filepath.Dir(path), "catalogue.cbor")
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		t.Fatal(err)
	}

	params := validateParams{sourceParams: sourceParams{Catalogue: path}, Format: "cbor"}
	var output bytes.Buffer
	if err := runValidate(context.Background(), &params, &output, testLogger); err != nil {
		t.Fatalf("runValidate: %v", err)
	}
	if !strings.Contains(output.String(), "valid, 2 categories, 3 tasks") {
		t.Errorf("output = %q", output.String())
	}

	// The same bytes are not a JSON catalogue.
	params.Format = "json"
	output.Reset()
	requireExitCode(t, runValidate(context.Background(), &params, &output, testLogger), 1)
}

func TestValidate_Errors(t *testing.T) {
	writeCatalogue(t, "{}")

	params := validateParams{Format: "json"}
	err := runValidate(context.Background(), &params, &bytes.Buffer{}, testLogger)
	requireToolError(t, err, cli.CategoryValidation)

	params = validateParams{Format: "yaml", sourceParams: sourceParams{Catalogue: "tasks.json"}}
	err = runValidate(context.Background(), &params, &bytes.Buffer{}, testLogger)
	requireToolError(t, err, cli.CategoryValidation)

	params = validateParams{Format: "json", sourceParams: sourceParams{Catalogue: filepath.Join(t.TempDir(), "gone.json")}}
	err = runValidate(context.Background(), &params, &bytes.Buffer{}, testLogger)
	requireToolError(t, err, cli.CategoryNotFound)
}
