// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package translate implements the PO-to-Markdown stage: it re-serializes
// a parsed document, substituting each translatable block's msgstr.
// Blocks without a usable translation fall back to their msgid, so a run
// against an empty catalog is a pure reformatting pass.
package translate

import (
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/pdiddy/mdpo/internal/catalog"
	"github.com/pdiddy/mdpo/internal/markdown"
	"github.com/pdiddy/mdpo/pkg/types"
)

// Translator renders Markdown documents with catalog substitutions.
type Translator struct {
	opts   types.TranslateOptions
	engine goldmark.Markdown
	table  catalog.Table
}

// New returns a translator over the given lookup table.
func New(opts types.TranslateOptions, table catalog.Table) *Translator {
	return &Translator{
		opts:   opts,
		engine: markdown.Engine(opts.Extensions),
		table:  table,
	}
}

// TranslateFile translates the Markdown file at path.
func (t *Translator) TranslateFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	out, err := t.Translate(data)
	if err != nil {
		return "", fmt.Errorf("translating %s: %w", path, err)
	}
	return out, nil
}

// Translate renders source with translations applied. Frontmatter
// passes through verbatim.
func (t *Translator) Translate(source []byte) (string, error) {
	front, body, err := markdown.SplitFrontmatter(source)
	if err != nil {
		return "", err
	}
	r := &renderer{tr: t, source: body}
	out := r.blocks(markdown.ParseDocument(t.engine, body), prefix{}, false)

	var b strings.Builder
	b.Write(front)
	if len(front) > 0 && out != "" {
		b.WriteByte('\n')
	}
	b.WriteString(out)
	if out != "" {
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// prefix is the pair of line prefixes a block renders under: first for
// its first line (may hold a list marker), rest for every other line.
type prefix struct {
	first string
	rest  string
}

// renderer carries directive state through one rendering pass. The
// disable family mirrors extraction: disabled blocks render their
// msgid untouched.
type renderer struct {
	tr     *Translator
	source []byte

	disabled    bool
	skipNext    bool
	forceNext   bool
	nextContext string
}

// blocks renders the children of parent joined by blank lines, or by
// single newlines when tight (tight list items). Directive comments
// render to nothing and do not count as blocks.
func (r *renderer) blocks(parent ast.Node, p prefix, tight bool) string {
	var parts []string
	first := true
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		cp := p
		if !first {
			cp.first = p.rest
		}
		s, ok := r.block(n, cp)
		if !ok {
			continue
		}
		parts = append(parts, s)
		first = false
	}
	sep := "\n" + strings.TrimRight(p.rest, " ") + "\n"
	if tight {
		sep = "\n"
	}
	return strings.Join(parts, sep)
}

func (r *renderer) block(n ast.Node, p prefix) (string, bool) {
	switch n := n.(type) {
	case *ast.Heading:
		text := r.translated(markdown.RenderSpans(n, r.source))
		return p.first + strings.Repeat("#", n.Level) + " " + text, true
	case *ast.Paragraph:
		return r.paragraph(n, p), true
	case *ast.TextBlock:
		return r.paragraph(n, p), true
	case *ast.Blockquote:
		quoted := prefix{first: p.first + "> ", rest: p.rest + "> "}
		return r.blocks(n, quoted, false), true
	case *ast.List:
		return r.list(n, p), true
	case *ast.FencedCodeBlock:
		return r.fencedCode(n, p), true
	case *ast.CodeBlock:
		return r.indentedCode(n, p), true
	case *ast.ThematicBreak:
		return p.first + "---", true
	case *ast.HTMLBlock:
		return r.htmlBlock(n, p)
	case *extast.Table:
		return r.renderTable(n, p), true
	default:
		if raw := strings.TrimSuffix(markdown.BlockText(n, r.source), "\n"); raw != "" {
			return prefixLines(raw, p), true
		}
		return "", false
	}
}

func (r *renderer) paragraph(n ast.Node, p prefix) string {
	check := ""
	if cb, ok := n.FirstChild().(*extast.TaskCheckBox); ok {
		if cb.IsChecked {
			check = "[x] "
		} else {
			check = "[ ] "
		}
	}
	text := r.translated(markdown.RenderSpans(n, r.source))
	w := markdown.Wrapper{
		Width:       r.tr.opts.WrapWidth,
		FirstPrefix: p.first + check,
		Prefix:      p.rest,
	}
	return w.Wrap(text)
}

func (r *renderer) list(list *ast.List, p prefix) string {
	num := list.Start
	if num == 0 {
		num = 1
	}
	var parts []string
	first := true
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := string(list.Marker) + " "
		if list.IsOrdered() {
			marker = fmt.Sprintf("%d%c ", num, list.Marker)
			num++
		}
		linePrefix := p.first
		if !first {
			linePrefix = p.rest
		}
		ip := prefix{
			first: linePrefix + marker,
			rest:  p.rest + strings.Repeat(" ", len(marker)),
		}
		body := r.blocks(item, ip, list.IsTight)
		if body == "" {
			body = strings.TrimRight(ip.first, " ")
		}
		parts = append(parts, body)
		first = false
	}
	sep := "\n"
	if !list.IsTight {
		sep = "\n" + strings.TrimRight(p.rest, " ") + "\n"
	}
	return strings.Join(parts, sep)
}

func (r *renderer) fencedCode(n *ast.FencedCodeBlock, p prefix) string {
	content := strings.TrimSuffix(markdown.BlockText(n, r.source), "\n")
	content = r.translated(content)

	info := ""
	if n.Info != nil {
		info = string(n.Info.Segment.Value(r.source))
	}
	fenceLen := 3
	if run := longestFence(content); run >= fenceLen {
		fenceLen = run + 1
	}
	fence := strings.Repeat("`", fenceLen)

	var b strings.Builder
	b.WriteString(p.first + fence + info)
	if content != "" {
		for _, line := range strings.Split(content, "\n") {
			b.WriteString("\n" + strings.TrimRight(p.rest+line, " "))
		}
	}
	b.WriteString("\n" + p.rest + fence)
	return b.String()
}

func (r *renderer) indentedCode(n *ast.CodeBlock, p prefix) string {
	content := strings.TrimSuffix(markdown.BlockText(n, r.source), "\n")
	content = r.translated(content)

	var lines []string
	for i, line := range strings.Split(content, "\n") {
		lp := p.rest
		if i == 0 {
			lp = p.first
		}
		lines = append(lines, strings.TrimRight(lp+"    "+line, " "))
	}
	return strings.Join(lines, "\n")
}

// htmlBlock passes raw HTML through untouched, except mdpo directive
// comments: those update rendering state and are stripped from the
// output.
func (r *renderer) htmlBlock(n *ast.HTMLBlock, p prefix) (string, bool) {
	raw := strings.TrimSuffix(markdown.BlockText(n, r.source), "\n")
	if d, ok := markdown.ParseDirective(raw); ok {
		r.applyDirective(d)
		return "", false
	}
	return prefixLines(raw, p), true
}

func (r *renderer) renderTable(tbl *extast.Table, p prefix) string {
	var rows []string
	columns := 0
	for child := tbl.FirstChild(); child != nil; child = child.NextSibling() {
		var cells []string
		for cell := child.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, r.translated(markdown.RenderSpans(cell, r.source)))
		}
		lp := p.rest
		if len(rows) == 0 {
			lp = p.first
			columns = len(cells)
		}
		rows = append(rows, lp+"| "+strings.Join(cells, " | ")+" |")
		if len(rows) == 1 {
			rows = append(rows, p.rest+alignmentRow(tbl.Alignments, columns))
		}
	}
	return strings.Join(rows, "\n")
}

func alignmentRow(aligns []extast.Alignment, columns int) string {
	cells := make([]string, columns)
	for i := range cells {
		a := extast.AlignNone
		if i < len(aligns) {
			a = aligns[i]
		}
		switch a {
		case extast.AlignLeft:
			cells[i] = ":--"
		case extast.AlignRight:
			cells[i] = "--:"
		case extast.AlignCenter:
			cells[i] = ":-:"
		default:
			cells[i] = "---"
		}
	}
	return "| " + strings.Join(cells, " | ") + " |"
}

// translated resolves span through the lookup table, honoring the
// directive state, and falls back to the original text.
func (r *renderer) translated(span string) string {
	if span == "" {
		return span
	}
	ctx := r.nextContext
	skip, force := r.skipNext, r.forceNext
	r.skipNext, r.forceNext, r.nextContext = false, false, ""
	if skip || (r.disabled && !force) {
		return span
	}
	if out, ok := r.tr.table.Get(ctx, span); ok {
		return out
	}
	return span
}

func (r *renderer) applyDirective(d markdown.Directive) {
	switch d.Name {
	case markdown.DirectiveDisable:
		r.disabled = true
	case markdown.DirectiveEnable:
		r.disabled = false
	case markdown.DirectiveDisableNextLine:
		r.skipNext = true
	case markdown.DirectiveEnableNextLine:
		r.forceNext = true
	case markdown.DirectiveContext:
		r.nextContext = d.Value
	}
}

func prefixLines(raw string, p prefix) string {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		lp := p.rest
		if i == 0 {
			lp = p.first
		}
		lines[i] = strings.TrimRight(lp+line, " ")
	}
	return strings.Join(lines, "\n")
}

// longestFence returns the longest run of backticks found at a line
// start in content, so the surrounding fence can outgrow it.
func longestFence(content string) int {
	longest := 0
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimLeft(line, " ")
		run := 0
		for run < len(trimmed) && trimmed[run] == '`' {
			run++
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
