// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package browser

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/playbook/lib/tui"
)

// stripped renders markdown and returns the visible text.
func stripped(input string, width int) string {
	return ansi.Strip(renderMarkdown(input, tui.DarkTheme, width))
}

func TestRenderMarkdownEmpty(t *testing.T) {
	for _, input := range []string{"", "   \n\t"} {
		if result := renderMarkdown(input, tui.DarkTheme, 80); result != "" {
			t.Errorf("renderMarkdown(%q) = %q, expected empty", input, result)
		}
	}
}

func TestRenderMarkdownParagraphReflow(t *testing.T) {
	input := "Soft breaks in the\nsource become spaces\nwhen rendered."
	result := stripped(input, 120)

	if result != "Soft breaks in the source become spaces when rendered." {
		t.Errorf("result = %q", result)
	}
}

func TestRenderMarkdownWrapsToWidth(t *testing.T) {
	input := "This paragraph is long enough that it has to wrap at a narrow pane width."
	for _, line := range strings.Split(stripped(input, 24), "\n") {
		if width := ansi.StringWidth(line); width > 24 {
			t.Errorf("line %q is %d columns, exceeds 24", line, width)
		}
	}
}

func TestRenderMarkdownHardLineBreak(t *testing.T) {
	result := stripped("Line one  \nLine two", 80)
	if result != "Line one\nLine two" {
		t.Errorf("result = %q", result)
	}
}

func TestRenderMarkdownBlocks(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"heading", "## Rolling back", "Rolling back"},
		{"emphasis", "Keep it *short* and **clear**.", "Keep it short and clear."},
		{"strikethrough", "Use ~~rm~~ trash.", "Use rm trash."},
		{"code span", "Run `git status` first.", "Run git status first."},
		{"link", "See [the docs](https://example.com).", "See the docs (https://example.com)."},
		{"autolink", "<https://example.com>", "https://example.com"},
		{"tight list", "- one\n- two", "- one\n- two"},
		{"ordered list", "3. three\n4. four", "3. three\n4. four"},
		{"blockquote", "> careful", "│ careful"},
		{"paragraphs", "first\n\nsecond", "first\n\nsecond"},
		{"html block", "<div>inside</div>", "inside"},
		{"thematic break", "***", strings.Repeat("─", 80)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if result := stripped(test.input, 80); result != test.expected {
				t.Errorf("stripped(%q) = %q, expected %q", test.input, result, test.expected)
			}
		})
	}
}

func TestRenderMarkdownNestedList(t *testing.T) {
	result := stripped("- outer\n  - inner", 80)
	if result != "- outer\n  - inner" {
		t.Errorf("result = %q", result)
	}
}

func TestRenderMarkdownFencedCode(t *testing.T) {
	input := "Before.\n\n```bash\nkubectl get pods -A\n```\n\nAfter."
	raw := renderMarkdown(input, tui.DarkTheme, 80)
	result := ansi.Strip(raw)

	if result != "Before.\n\nkubectl get pods -A\n\nAfter." {
		t.Errorf("result = %q", result)
	}
	if raw == result {
		t.Error("fenced code should carry highlighting escapes")
	}
}

func TestRenderMarkdownUnknownLanguage(t *testing.T) {
	result := stripped("```not-a-language\nplain text\n```", 80)
	if result != "plain text" {
		t.Errorf("result = %q", result)
	}
}

func TestPrefixLines(t *testing.T) {
	result := prefixLines("a\n\nb", "> ", "  ")
	if result != "> a\n\n  b" {
		t.Errorf("prefixLines = %q", result)
	}
}
