// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
)

func TestBindFlags_BasicTypes(t *testing.T) {
	type params struct {
		Name     string        `flag:"name" desc:"the name"`
		Verbose  bool          `flag:"verbose,v" desc:"enable verbose output"`
		Count    int           `flag:"count" desc:"number of items"`
		Timeout  time.Duration `flag:"timeout" desc:"request timeout"`
		Tags     []string      `flag:"tags" desc:"tag list"`
		Untagged string
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	err := flagSet.Parse([]string{
		"--name", "alice",
		"-v",
		"--count", "42",
		"--timeout", "30s",
		"--tags", "a,b,c",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	expected := params{
		Name:    "alice",
		Verbose: true,
		Count:   42,
		Timeout: 30 * time.Second,
		Tags:    []string{"a", "b", "c"},
	}
	if diff := cmp.Diff(expected, p); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
	if flagSet.Lookup("untagged") != nil {
		t.Error("a field without a flag tag should not be bound")
	}
}

func TestBindFlags_Defaults(t *testing.T) {
	type params struct {
		Format  string        `flag:"format" default:"json"`
		Watch   bool          `flag:"watch" default:"true"`
		Limit   int           `flag:"limit" default:"10"`
		Timeout time.Duration `flag:"timeout" default:"5s"`
		Keys    []string      `flag:"keys" default:"a,b"`
	}

	var p params
	flagSet := FlagsFromParams("test", &p)
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	expected := params{Format: "json", Watch: true, Limit: 10, Timeout: 5 * time.Second, Keys: []string{"a", "b"}}
	if diff := cmp.Diff(expected, p); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestBindFlags_EmbeddedStructs(t *testing.T) {
	type source struct {
		Catalogue string `flag:"catalogue" desc:"catalogue path or URL"`
	}
	type params struct {
		source
		JSONOutput
		Limit int `flag:"limit"`
	}

	var p params
	flagSet := FlagsFromParams("test", &p)
	if err := flagSet.Parse([]string{"--catalogue", "tasks.json", "--json", "--limit", "2"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Catalogue != "tasks.json" || !p.OutputJSON || p.Limit != 2 {
		t.Errorf("params = %+v", p)
	}
}

func TestBindFlags_Errors(t *testing.T) {
	var notPointer struct{}
	if err := BindFlags(notPointer, pflag.NewFlagSet("test", pflag.ContinueOnError)); err == nil {
		t.Error("BindFlags should reject a non-pointer")
	}

	type unsupported struct {
		Ratio float32 `flag:"ratio"`
	}
	err := BindFlags(&unsupported{}, pflag.NewFlagSet("test", pflag.ContinueOnError))
	if err == nil || !strings.Contains(err.Error(), "unsupported type") {
		t.Errorf("error = %v, want unsupported type", err)
	}

	type badDefault struct {
		Limit int `flag:"limit" default:"many"`
	}
	err = BindFlags(&badDefault{}, pflag.NewFlagSet("test", pflag.ContinueOnError))
	if err == nil || !strings.Contains(err.Error(), "--limit") {
		t.Errorf("error = %v, want a default parse failure naming --limit", err)
	}
}

func TestFlagsFromParams_PanicsOnInvalidParams(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FlagsFromParams should panic on invalid params")
		}
	}()
	FlagsFromParams("test", 42)
}
