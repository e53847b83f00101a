// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract implements the Markdown-to-PO stage: it walks a
// parsed document tree and collects one catalog entry per translatable
// block.
package extract

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chai2010/gettext-go/gettext/po"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/pdiddy/mdpo/internal/catalog"
	"github.com/pdiddy/mdpo/internal/markdown"
	"github.com/pdiddy/mdpo/pkg/types"
)

// Extractor collects translatable entries from Markdown documents.
type Extractor struct {
	opts   types.ExtractOptions
	engine goldmark.Markdown
}

// New returns an extractor for the given options.
func New(opts types.ExtractOptions) *Extractor {
	if opts.Location == "" {
		opts.Location = types.LocationFull
	}
	return &Extractor{opts: opts, engine: markdown.Engine(opts.Extensions)}
}

// ExtractFile extracts entries from the Markdown file at path.
func (e *Extractor) ExtractFile(path string) (*catalog.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return e.Extract(data, path)
}

// Extract collects entries from source into a new catalog. filename
// appears in location comments; empty suppresses them.
func (e *Extractor) Extract(source []byte, filename string) (*catalog.Catalog, error) {
	front, body, err := markdown.SplitFrontmatter(source)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", filename, err)
	}
	w := &walker{
		ex:         e,
		source:     body,
		filename:   filename,
		lineOffset: strings.Count(string(front), "\n"),
		out:        catalog.New(e.opts.Metadata),
	}
	w.blocks(markdown.ParseDocument(e.engine, body))
	return w.out, nil
}

// ExtractPaths extracts every file into one combined catalog, printing
// per-file status lines to out.
func ExtractPaths(e *Extractor, paths []string, out io.Writer) (*catalog.Catalog, error) {
	combined := catalog.New(e.opts.Metadata)
	for _, path := range paths {
		c, err := e.ExtractFile(path)
		if err != nil {
			fmt.Fprintf(out, "failed:    %s (%v)\n", path, err)
			return nil, err
		}
		for _, m := range c.Entries {
			combined.Add(m)
		}
		fmt.Fprintf(out, "extracted: %s (%d entries)\n", path, len(c.Entries))
	}
	return combined, nil
}

// walker carries the directive state of one extraction pass. The
// one-shot fields (skipNext, forceNext, nextContext, nextComment) apply
// to the next translatable block and reset after it, whether or not it
// was extracted.
type walker struct {
	ex         *Extractor
	source     []byte
	filename   string
	lineOffset int
	out        *catalog.Catalog

	disabled        bool
	skipNext        bool
	forceNext       bool
	includeNextCode bool
	nextContext     string
	nextComment     string
}

func (w *walker) blocks(parent ast.Node) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		w.block(n)
	}
}

func (w *walker) block(n ast.Node) {
	switch n := n.(type) {
	case *ast.Heading:
		w.entry(markdown.RenderSpans(n, w.source), n)
	case *ast.Paragraph:
		w.entry(markdown.RenderSpans(n, w.source), n)
	case *ast.TextBlock:
		w.entry(markdown.RenderSpans(n, w.source), n)
	case *ast.Blockquote, *ast.List, *ast.ListItem:
		w.blocks(n)
	case *ast.FencedCodeBlock:
		w.codeblock(n)
	case *ast.CodeBlock:
		w.codeblock(n)
	case *ast.HTMLBlock:
		if d, ok := markdown.ParseDirective(markdown.BlockText(n, w.source)); ok {
			w.applyDirective(d)
		}
	case *extast.Table, *extast.TableHeader, *extast.TableRow:
		w.blocks(n)
	case *extast.TableCell:
		w.entry(markdown.RenderSpans(n, w.source), n)
	}
}

// entry records one translatable block. A nil node means the text has
// no source block (mdpo-include directives) and gets a file-only
// location.
func (w *walker) entry(msgid string, n ast.Node, flags ...string) {
	if msgid == "" {
		return
	}
	if !w.translatable() {
		w.resetOneShot()
		return
	}
	m := po.Message{MsgId: msgid, MsgContext: w.nextContext}
	m.ExtractedComment = w.nextComment
	m.Flags = flags

	if w.filename != "" && w.ex.opts.Location != types.LocationNever {
		line := 0
		if n != nil && w.ex.opts.Location == types.LocationFull {
			if line = markdown.LineNumber(n, w.source); line > 0 {
				line += w.lineOffset
			}
		}
		m.ReferenceFile = []string{w.filename}
		m.ReferenceLine = []int{line}
	}

	w.out.Add(m)
	w.resetOneShot()
}

func (w *walker) codeblock(n ast.Node) {
	include := w.ex.opts.IncludeCodeblocks || w.includeNextCode
	w.includeNextCode = false
	if !include {
		// still a block: one-shot directives aimed at it must not leak
		// onto the next one
		w.resetOneShot()
		return
	}
	text := strings.TrimSuffix(markdown.BlockText(n, w.source), "\n")
	// literal content, so translation tools must not reflow it
	w.entry(text, n, "no-wrap")
}

func (w *walker) translatable() bool {
	if w.skipNext {
		return false
	}
	if w.forceNext {
		return true
	}
	return !w.disabled
}

func (w *walker) resetOneShot() {
	w.skipNext = false
	w.forceNext = false
	w.nextContext = ""
	w.nextComment = ""
}

func (w *walker) applyDirective(d markdown.Directive) {
	switch d.Name {
	case markdown.DirectiveDisable:
		w.disabled = true
	case markdown.DirectiveEnable:
		w.disabled = false
	case markdown.DirectiveDisableNextLine:
		w.skipNext = true
	case markdown.DirectiveEnableNextLine:
		w.forceNext = true
	case markdown.DirectiveTranslator:
		w.nextComment = d.Value
	case markdown.DirectiveContext:
		w.nextContext = d.Value
	case markdown.DirectiveIncludeCodeblock:
		w.includeNextCode = true
	case markdown.DirectiveInclude:
		if d.Value != "" {
			w.entry(d.Value, nil)
		}
	}
}
