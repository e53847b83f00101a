// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

// wrapEngine parses span strings during wrapping. Span text never needs
// more than the default extensions.
var wrapEngine = Engine(nil)

// Wrapper lays out Markdown span text within a line width. Atomic
// constructs (code spans, links, images, autolinks) are never broken
// across lines; everything else breaks at spaces.
type Wrapper struct {
	// Width is the maximum line width in runes, prefix included.
	// Zero or negative disables wrapping.
	Width int

	// FirstPrefix starts the first line (e.g. "- " for a list item).
	FirstPrefix string

	// Prefix starts continuation lines (e.g. "  ").
	Prefix string
}

// atom is an unbreakable chunk of span text.
type atom struct {
	text        string
	spaceBefore bool // a break opportunity precedes this atom
	hardBreak   bool // forces a line break (backslash style)
}

// Wrap renders span under the wrapper's prefixes. Newlines in span are
// treated as hard line breaks.
func (w Wrapper) Wrap(span string) string {
	if w.Width <= 0 {
		return w.FirstPrefix + strings.ReplaceAll(span, "\n", "\\\n"+w.Prefix)
	}

	atoms := tokenizeSpan(span, wrapEngine)
	if len(atoms) == 0 {
		return w.FirstPrefix
	}

	var b strings.Builder
	line := w.FirstPrefix
	onLine := 0 // atoms placed on the current line
	for _, a := range atoms {
		if a.hardBreak {
			line += "\\"
			b.WriteString(line)
			b.WriteByte('\n')
			line = w.Prefix
			onLine = 0
			continue
		}
		switch {
		case onLine == 0:
			line += a.text
		case a.spaceBefore && utf8.RuneCountInString(line)+1+utf8.RuneCountInString(a.text) > w.Width:
			b.WriteString(line)
			b.WriteByte('\n')
			line = w.Prefix + a.text
			onLine = 0
		case a.spaceBefore:
			line += " " + a.text
		default:
			line += a.text
		}
		onLine++
	}
	b.WriteString(line)
	return b.String()
}

// tokenizeSpan parses span as Markdown and flattens its first block
// into atoms. Bare newlines are promoted to backslash hard breaks
// first, since a lone newline would otherwise re-parse as a soft break.
func tokenizeSpan(span string, engine goldmark.Markdown) []atom {
	source := []byte(strings.ReplaceAll(span, "\n", "\\\n"))
	doc := ParseDocument(engine, source)
	block := doc.FirstChild()
	if block == nil {
		return nil
	}
	tk := &tokenizer{source: source}
	for child := block.FirstChild(); child != nil; child = child.NextSibling() {
		tk.walk(child)
	}
	return tk.atoms
}

type tokenizer struct {
	source        []byte
	atoms         []atom
	pendingSpace  bool
	pendingPrefix string
}

func (tk *tokenizer) emit(text string) {
	tk.atoms = append(tk.atoms, atom{
		text:        tk.pendingPrefix + text,
		spaceBefore: tk.pendingSpace,
	})
	tk.pendingPrefix = ""
	tk.pendingSpace = false
}

// appendSuffix glues a closing marker onto the last atom emitted.
func (tk *tokenizer) appendSuffix(s string) {
	if len(tk.atoms) == 0 {
		tk.pendingPrefix += s
		return
	}
	tk.atoms[len(tk.atoms)-1].text += s
}

func (tk *tokenizer) walk(n ast.Node) {
	switch n := n.(type) {
	case *ast.Text:
		tk.walkText(n)
	case *ast.String:
		tk.emit(string(n.Value))
	case *ast.Emphasis:
		marker := "*"
		if n.Level == 2 {
			marker = "**"
		}
		tk.walkContainer(n, marker, marker)
	case *extast.Strikethrough:
		tk.walkContainer(n, "~~", "~~")
	case *ast.CodeSpan, *ast.Link, *ast.Image, *ast.AutoLink, *ast.RawHTML:
		tk.emit(renderInlineNode(n, tk.source))
	case *extast.TaskCheckBox:
		// structure, handled by the block renderer
	default:
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			tk.walk(child)
		}
	}
}

func (tk *tokenizer) walkContainer(n ast.Node, opening, closing string) {
	tk.pendingPrefix += opening
	before := len(tk.atoms)
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		tk.walk(child)
	}
	if len(tk.atoms) == before {
		tk.pendingPrefix += closing
		return
	}
	tk.appendSuffix(closing)
}

func (tk *tokenizer) walkText(n *ast.Text) {
	value := string(n.Segment.Value(tk.source))
	parts := strings.Split(value, " ")
	for i, part := range parts {
		if i > 0 {
			tk.pendingSpace = true
		}
		if part == "" {
			continue
		}
		tk.emit(part)
	}
	switch {
	case n.HardLineBreak():
		tk.atoms = append(tk.atoms, atom{hardBreak: true})
	case n.SoftLineBreak():
		tk.pendingSpace = true
	}
}
