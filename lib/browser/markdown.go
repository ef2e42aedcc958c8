// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package browser

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/bureau-foundation/playbook/lib/tui"
)

// wrapBreakpoints are the characters ansi.Wrap may break after, in
// addition to whitespace.
const wrapBreakpoints = " ,.;-+|/"

// minimumWrapWidth keeps deeply nested blocks readable in narrow panes.
const minimumWrapWidth = 10

var markdownParser = sync.OnceValue(func() goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(extension.GFM))
})

// newForcedRenderer returns a lipgloss renderer pinned to ANSI256.
// Detail content is only ever drawn inside the TUI, so color-profile
// detection (which reports no color without a TTY) is skipped.
func newForcedRenderer() *lipgloss.Renderer {
	renderer := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.ANSI256))
	renderer.SetColorProfile(termenv.ANSI256)
	return renderer
}

// renderMarkdown renders a task description for the terminal. Soft
// line breaks become spaces so hard-wrapped source text reflows to
// width; blocks are separated by one blank line.
func renderMarkdown(input string, theme tui.Theme, width int) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	source := []byte(input)
	document := markdownParser().Parser().Parse(text.NewReader(source))

	renderer := &markdownRenderer{
		source: source,
		theme:  theme,
		styles: newForcedRenderer(),
	}
	return strings.Join(renderer.blocks(document, width), "\n\n")
}

type markdownRenderer struct {
	source []byte
	theme  tui.Theme
	styles *lipgloss.Renderer
}

// inlineStyle is the emphasis in effect while rendering inline nodes.
type inlineStyle struct {
	bold          bool
	italic        bool
	strikethrough bool
}

func (renderer *markdownRenderer) style() lipgloss.Style {
	return renderer.styles.NewStyle()
}

func (renderer *markdownRenderer) blocks(parent ast.Node, width int) []string {
	var rendered []string
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		if block := renderer.block(child, width); block != "" {
			rendered = append(rendered, block)
		}
	}
	return rendered
}

func (renderer *markdownRenderer) block(node ast.Node, width int) string {
	width = max(width, minimumWrapWidth)

	switch node := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return ansi.Wrap(renderer.inline(node, inlineStyle{}), width, wrapBreakpoints)

	case *ast.Heading:
		content := ansi.Strip(renderer.inline(node, inlineStyle{}))
		style := renderer.style().Bold(true).Foreground(renderer.theme.NormalText)
		if node.Level <= 2 {
			style = style.Foreground(renderer.theme.HeaderForeground).Underline(true)
		}
		return ansi.Wrap(style.Render(content), width, wrapBreakpoints)

	case *ast.FencedCodeBlock:
		return renderer.code(renderer.lines(node), string(node.Language(renderer.source)))

	case *ast.CodeBlock:
		return renderer.code(renderer.lines(node), "")

	case *ast.Blockquote:
		inner := strings.Join(renderer.blocks(node, width-2), "\n\n")
		bar := renderer.style().Foreground(renderer.theme.BorderColor).Render("│ ")
		return prefixLines(inner, bar, bar)

	case *ast.List:
		return renderer.list(node, width)

	case *ast.ThematicBreak:
		return renderer.style().Foreground(renderer.theme.BorderColor).Render(strings.Repeat("─", width))

	case *ast.HTMLBlock:
		stripped := strings.TrimSpace(stripTags(renderer.lines(node)))
		if stripped == "" {
			return ""
		}
		return renderer.style().Foreground(renderer.theme.FaintText).Render(stripped)

	default:
		return strings.Join(renderer.blocks(node, width), "\n\n")
	}
}

func (renderer *markdownRenderer) list(list *ast.List, width int) string {
	itemSeparator, blockSeparator := "\n\n", "\n\n"
	if list.IsTight {
		itemSeparator, blockSeparator = "\n", "\n"
	}

	number := list.Start
	var items []string
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "- "
		if list.IsOrdered() {
			marker = fmt.Sprintf("%d. ", number)
			number++
		}
		continuation := strings.Repeat(" ", len(marker))
		body := strings.Join(renderer.blocks(item, width-len(marker)), blockSeparator)
		items = append(items, prefixLines(body, marker, continuation))
	}
	return strings.Join(items, itemSeparator)
}

// lines joins the raw source lines of a block node.
func (renderer *markdownRenderer) lines(node ast.Node) string {
	var builder strings.Builder
	segments := node.Lines()
	for index := 0; index < segments.Len(); index++ {
		segment := segments.At(index)
		builder.Write(segment.Value(renderer.source))
	}
	return builder.String()
}

func (renderer *markdownRenderer) code(code, language string) string {
	return strings.TrimRight(highlightCode(renderer.style(), renderer.theme, code, language), "\n")
}

// inline renders the inline children of parent.
func (renderer *markdownRenderer) inline(parent ast.Node, style inlineStyle) string {
	var builder strings.Builder
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		switch node := child.(type) {
		case *ast.Text:
			builder.WriteString(renderer.text(string(node.Segment.Value(renderer.source)), style))
			if node.HardLineBreak() {
				builder.WriteString("\n")
			} else if node.SoftLineBreak() {
				builder.WriteString(" ")
			}

		case *ast.String:
			builder.WriteString(renderer.text(string(node.Value), style))

		case *ast.Emphasis:
			nested := style
			if node.Level >= 2 {
				nested.bold = true
			} else {
				nested.italic = true
			}
			builder.WriteString(renderer.inline(node, nested))

		case *extast.Strikethrough:
			nested := style
			nested.strikethrough = true
			builder.WriteString(renderer.inline(node, nested))

		case *ast.CodeSpan:
			code := ansi.Strip(renderer.inline(node, inlineStyle{}))
			builder.WriteString(renderer.style().Foreground(renderer.theme.Accent).Render(code))

		case *ast.Link:
			builder.WriteString(renderer.inline(node, style))
			if destination := string(node.Destination); destination != "" {
				builder.WriteString(" " + renderer.faint("("+destination+")"))
			}

		case *ast.AutoLink:
			builder.WriteString(renderer.faint(string(node.URL(renderer.source))))

		case *ast.Image:
			builder.WriteString(renderer.faint("[" + ansi.Strip(renderer.inline(node, style)) + "]"))

		case *ast.RawHTML:
			// Inline tags carry no text worth showing.

		default:
			builder.WriteString(renderer.inline(node, style))
		}
	}
	return builder.String()
}

func (renderer *markdownRenderer) text(content string, style inlineStyle) string {
	if content == "" {
		return ""
	}
	return renderer.style().
		Foreground(renderer.theme.NormalText).
		Bold(style.bold).
		Italic(style.italic).
		Strikethrough(style.strikethrough).
		Render(content)
}

func (renderer *markdownRenderer) faint(content string) string {
	return renderer.style().Foreground(renderer.theme.FaintText).Render(content)
}

// highlightCode highlights code with chroma in the theme's code style.
// Unknown languages and chroma failures fall back to faint plain text.
// Trailing blank lines are dropped; chroma's lexers append a newline
// that may itself be wrapped in color codes.
func highlightCode(base lipgloss.Style, theme tui.Theme, code, language string) string {
	code = strings.TrimRight(code, "\n")
	if language != "" && lexers.Get(language) != nil {
		var buffer strings.Builder
		if err := quick.Highlight(&buffer, code, language, "terminal256", theme.CodeStyle); err == nil {
			lines := strings.Split(buffer.String(), "\n")
			for len(lines) > 1 && strings.TrimSpace(ansi.Strip(lines[len(lines)-1])) == "" {
				lines = lines[:len(lines)-1]
			}
			return strings.Join(lines, "\n") + "\x1b[0m"
		}
	}
	return base.Foreground(theme.FaintText).Render(code)
}

// prefixLines prefixes the first line of content with first and every
// later line with rest.
func prefixLines(content, first, rest string) string {
	lines := strings.Split(content, "\n")
	for index, line := range lines {
		if index == 0 {
			lines[index] = first + line
		} else if line != "" {
			lines[index] = rest + line
		}
	}
	return strings.Join(lines, "\n")
}

// stripTags removes HTML tags, keeping their text content.
func stripTags(html string) string {
	var result strings.Builder
	inTag := false
	for _, character := range html {
		switch {
		case character == '<':
			inTag = true
		case character == '>':
			inTag = false
		case !inTag:
			result.WriteRune(character)
		}
	}
	return result.String()
}
