// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns translated Markdown into HTML. It reuses the
// translate stage for substitution and goldmark's HTML renderer for
// output, so the HTML always reflects the same document the
// Markdown-to-Markdown path would produce.
package render

import (
	"bytes"
	"fmt"
	"os"

	"github.com/yuin/goldmark"

	"github.com/pdiddy/mdpo/internal/catalog"
	"github.com/pdiddy/mdpo/internal/markdown"
	"github.com/pdiddy/mdpo/internal/translate"
	"github.com/pdiddy/mdpo/pkg/types"
)

// HTMLRenderer translates Markdown sources and renders them as HTML
// fragments.
type HTMLRenderer struct {
	tr     *translate.Translator
	engine goldmark.Markdown
}

// NewHTML returns a renderer over the given lookup table.
func NewHTML(opts types.TranslateOptions, table catalog.Table) *HTMLRenderer {
	return &HTMLRenderer{
		tr:     translate.New(opts, table),
		engine: markdown.RenderEngine(opts.Extensions),
	}
}

// RenderFile renders the Markdown file at path.
func (r *HTMLRenderer) RenderFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	out, err := r.Render(data)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", path, err)
	}
	return out, nil
}

// Render translates source and converts it to an HTML fragment.
// Frontmatter is dropped: it carries document metadata, not content.
func (r *HTMLRenderer) Render(source []byte) (string, error) {
	_, body, err := markdown.SplitFrontmatter(source)
	if err != nil {
		return "", err
	}
	translated, err := r.tr.Translate(body)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := r.engine.Convert([]byte(translated), &buf); err != nil {
		return "", fmt.Errorf("converting to html: %w", err)
	}
	return buf.String(), nil
}
