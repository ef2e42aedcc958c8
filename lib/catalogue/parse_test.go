// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalogue

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testDocument = `{
  "Git": {
    "Rebase onto main": {
      "description": "Replay local commits on top of main.",
      "steps": ["git fetch origin", "git rebase origin/main"]
    },
    "Amend last commit": {
      "steps": ["git commit --amend"]
    }
  },
  "Docker": {
    "Prune images": {
      "description": "Free disk space."
    }
  },
  "Empty": {}
}`

// validationErrors flattens a Parse error into its ValidationErrors in
// reported order.
func validationErrors(t *testing.T, err error) []*ValidationError {
	t.Helper()
	var flattened []*ValidationError
	var walk func(error)
	walk = func(err error) {
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				walk(inner)
			}
			return
		}
		var validation *ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("error %v is not a ValidationError", err)
		}
		flattened = append(flattened, validation)
	}
	walk(err)
	return flattened
}

func TestParse(t *testing.T) {
	parsed, err := Parse([]byte(testDocument))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if diff := cmp.Diff([]string{"Git", "Docker", "Empty"}, parsed.Categories()); diff != "" {
		t.Errorf("category order mismatch (-want +got):\n%s", diff)
	}

	git, exists := parsed.Category("Git")
	if !exists {
		t.Fatal("Git category not found")
	}
	if diff := cmp.Diff([]string{"Rebase onto main", "Amend last commit"}, git.Keys()); diff != "" {
		t.Errorf("task order mismatch (-want +got):\n%s", diff)
	}

	rebase, exists := parsed.Task("Git", "Rebase onto main")
	if !exists {
		t.Fatal("Rebase onto main not found")
	}
	if rebase.DescriptionText() != "Replay local commits on top of main." {
		t.Errorf("description = %q", rebase.DescriptionText())
	}
	if diff := cmp.Diff([]string{"git fetch origin", "git rebase origin/main"}, rebase.Steps); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}

	amend, _ := parsed.Task("Git", "Amend last commit")
	if amend.Description != nil {
		t.Errorf("absent description should be nil, got %q", *amend.Description)
	}

	prune, _ := parsed.Task("Docker", "Prune images")
	if prune.HasSteps() {
		t.Error("task without a steps field reports HasSteps")
	}

	if parsed.TaskCount() != 3 {
		t.Errorf("TaskCount = %d, expected 3", parsed.TaskCount())
	}
	if parsed.Len() != 3 {
		t.Errorf("Len = %d, expected 3", parsed.Len())
	}
}

func TestParse_First(t *testing.T) {
	parsed, err := Parse([]byte(testDocument))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	category, task, ok := parsed.First()
	if !ok || category != "Git" || task != "Rebase onto main" {
		t.Errorf("First = (%q, %q, %v), expected (Git, Rebase onto main, true)", category, task, ok)
	}

	empty, err := Parse([]byte(`{}`))
	if err != nil {
		t.Fatalf("Parse empty: %v", err)
	}
	if _, _, ok := empty.First(); ok {
		t.Error("First on an empty catalogue should report ok=false")
	}

	noTasks, err := Parse([]byte(`{"Empty": {}, "Other": {"a": {}}}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	category, task, ok = noTasks.First()
	if !ok || category != "Empty" || task != "" {
		t.Errorf("First = (%q, %q, %v), expected (Empty, \"\", true)", category, task, ok)
	}
}

func TestParse_JSONC(t *testing.T) {
	document := `{
  // Comments and trailing commas are accepted.
  "Shell": {
    "List files": {
      "steps": ["ls -la",], /* inline */
    },
  },
}`
	parsed, err := Parse([]byte(document))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	task, exists := parsed.Task("Shell", "List files")
	if !exists {
		t.Fatal("List files not found")
	}
	if diff := cmp.Diff([]string{"ls -la"}, task.Steps); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_NotAnObject(t *testing.T) {
	for _, document := range []string{`[]`, `"text"`, `42`, `null`, `{"unterminated": `, ``, `{} {}`} {
		parsed, err := Parse([]byte(document))
		if err == nil {
			t.Errorf("Parse(%q) succeeded, expected NotAnObject", document)
			continue
		}
		if parsed != nil {
			t.Errorf("Parse(%q) returned a catalogue alongside an error", document)
		}
		var validation *ValidationError
		if !errors.As(err, &validation) || validation.Kind != NotAnObject {
			t.Errorf("Parse(%q) error = %v, expected NotAnObject", document, err)
		}
	}
}

func TestParse_InvalidCategory(t *testing.T) {
	_, err := Parse([]byte(`{"Good": {}, "Bad": ["not", "an", "object"]}`))
	problems := validationErrors(t, err)
	if len(problems) != 1 {
		t.Fatalf("expected 1 problem, got %d: %v", len(problems), err)
	}
	if problems[0].Kind != InvalidCategory || problems[0].Category != "Bad" {
		t.Errorf("problem = %+v, expected InvalidCategory for Bad", problems[0])
	}
}

func TestParse_InvalidTask(t *testing.T) {
	tests := []struct {
		name     string
		document string
	}{
		{"task is a string", `{"C": {"T": "do it"}}`},
		{"steps is a string", `{"C": {"T": {"steps": "one"}}}`},
		{"steps is null", `{"C": {"T": {"steps": null}}}`},
		{"step is a number", `{"C": {"T": {"steps": ["one", 2]}}}`},
		{"description is a number", `{"C": {"T": {"description": 7}}}`},
		{"description is an array", `{"C": {"T": {"description": ["a"]}}}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			parsed, err := Parse([]byte(test.document))
			if parsed != nil {
				t.Error("expected nil catalogue")
			}
			problems := validationErrors(t, err)
			if len(problems) != 1 {
				t.Fatalf("expected 1 problem, got %d: %v", len(problems), err)
			}
			if problems[0].Kind != InvalidTask || problems[0].Category != "C" || problems[0].Task != "T" {
				t.Errorf("problem = %+v, expected InvalidTask for C/T", problems[0])
			}
		})
	}
}

func TestParse_NullDescriptionIsAbsent(t *testing.T) {
	parsed, err := Parse([]byte(`{"C": {"T": {"description": null, "steps": []}}}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	task, _ := parsed.Task("C", "T")
	if task.Description != nil {
		t.Error("null description should be absent")
	}
	if !task.HasSteps() || len(task.Steps) != 0 {
		t.Errorf("empty steps array should be present and empty, got %#v", task.Steps)
	}
}

func TestParse_ReportsEveryProblem(t *testing.T) {
	document := `{
  "A": 1,
  "B": {"ok": {}, "bad": {"steps": [true]}},
  "C": {"worse": []}
}`
	_, err := Parse([]byte(document))
	problems := validationErrors(t, err)

	type summary struct {
		Kind     ValidationKind
		Category string
		Task     string
	}
	var got []summary
	for _, problem := range problems {
		got = append(got, summary{problem.Kind, problem.Category, problem.Task})
	}
	want := []summary{
		{InvalidCategory, "A", ""},
		{InvalidTask, "B", "bad"},
		{InvalidTask, "C", "worse"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("problems mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_DuplicateKeys(t *testing.T) {
	parsed, err := Parse([]byte(`{"A": {"x": {"description": "first"}}, "B": {}, "A": {"y": {}}}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff([]string{"A", "B"}, parsed.Categories()); diff != "" {
		t.Errorf("duplicate key should keep first position (-want +got):\n%s", diff)
	}
	category, _ := parsed.Category("A")
	if diff := cmp.Diff([]string{"y"}, category.Keys()); diff != "" {
		t.Errorf("duplicate key should keep last value (-want +got):\n%s", diff)
	}
}

func TestParse_UnknownTaskFieldsDropped(t *testing.T) {
	parsed, err := Parse([]byte(`{"C": {"T": {"description": "d", "owner": "ops"}}}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	exported, err := ExportJSON(parsed)
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if strings.Contains(string(exported), "owner") {
		t.Errorf("unknown field survived export:\n%s", exported)
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Kind: InvalidTask, Category: "C", Task: "T", Reason: "steps must be an array, got string"}
	expected := `task "T" in category "C": steps must be an array, got string`
	if err.Error() != expected {
		t.Errorf("Error() = %q, expected %q", err.Error(), expected)
	}
	if InvalidTask.String() != "invalid_task" {
		t.Errorf("InvalidTask.String() = %q", InvalidTask.String())
	}
}
