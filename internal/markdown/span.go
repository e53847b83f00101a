// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

// RenderSpans renders the inline children of block back to Markdown
// span text. This is the msgid form: markup preserved, soft line breaks
// collapsed to spaces, hard breaks carried as newlines. Task list
// checkboxes are structure, not text, and are skipped.
func RenderSpans(block ast.Node, source []byte) string {
	var b strings.Builder
	for child := block.FirstChild(); child != nil; child = child.NextSibling() {
		renderInline(&b, child, source)
	}
	return strings.TrimSpace(b.String())
}

// renderInlineNode renders a single inline node to Markdown span text.
func renderInlineNode(n ast.Node, source []byte) string {
	var b strings.Builder
	renderInline(&b, n, source)
	return b.String()
}

func renderInline(b *strings.Builder, n ast.Node, source []byte) {
	switch n := n.(type) {
	case *ast.Text:
		b.Write(n.Segment.Value(source))
		switch {
		case n.HardLineBreak():
			b.WriteByte('\n')
		case n.SoftLineBreak():
			b.WriteByte(' ')
		}
	case *ast.String:
		b.Write(n.Value)
	case *ast.CodeSpan:
		writeCodeSpan(b, n, source)
	case *ast.Emphasis:
		marker := "*"
		if n.Level == 2 {
			marker = "**"
		}
		b.WriteString(marker)
		renderChildren(b, n, source)
		b.WriteString(marker)
	case *extast.Strikethrough:
		b.WriteString("~~")
		renderChildren(b, n, source)
		b.WriteString("~~")
	case *ast.Link:
		writeLink(b, n, source)
	case *ast.AutoLink:
		b.WriteByte('<')
		b.Write(n.Label(source))
		b.WriteByte('>')
	case *ast.Image:
		b.WriteString("![")
		renderChildren(b, n, source)
		b.WriteString("](")
		b.Write(n.Destination)
		writeTitle(b, n.Title)
		b.WriteByte(')')
	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(source))
		}
	case *extast.TaskCheckBox:
		// handled by the block renderer
	default:
		renderChildren(b, n, source)
	}
}

func renderChildren(b *strings.Builder, n ast.Node, source []byte) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		renderInline(b, child, source)
	}
}

// writeCodeSpan re-fences a code span. The fence must be longer than
// any backtick run inside the content, and content with edge backticks
// or spaces gets space padding, per CommonMark.
func writeCodeSpan(b *strings.Builder, n *ast.CodeSpan, source []byte) {
	var content strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			content.Write(t.Segment.Value(source))
		}
	}
	text := strings.ReplaceAll(content.String(), "\n", " ")

	fence := strings.Repeat("`", longestRun(text, '`')+1)
	pad := ""
	if text != "" && (strings.HasPrefix(text, "`") || strings.HasSuffix(text, "`") ||
		strings.HasPrefix(text, " ") || strings.HasSuffix(text, " ")) {
		pad = " "
	}
	b.WriteString(fence)
	b.WriteString(pad)
	b.WriteString(text)
	b.WriteString(pad)
	b.WriteString(fence)
}

func writeLink(b *strings.Builder, n *ast.Link, source []byte) {
	var label strings.Builder
	renderChildren(&label, n, source)
	dest := string(n.Destination)

	// [x](x) with no title collapses to the autolink form <x>.
	if label.String() == dest && len(n.Title) == 0 {
		b.WriteByte('<')
		b.WriteString(dest)
		b.WriteByte('>')
		return
	}
	b.WriteByte('[')
	b.WriteString(label.String())
	b.WriteString("](")
	b.WriteString(dest)
	writeTitle(b, n.Title)
	b.WriteByte(')')
}

func writeTitle(b *strings.Builder, title []byte) {
	if len(title) == 0 {
		return
	}
	b.WriteString(` "`)
	b.WriteString(strings.ReplaceAll(string(title), `"`, `\"`))
	b.WriteByte('"')
}

// longestRun returns the length of the longest run of c in s.
func longestRun(s string, c byte) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}
