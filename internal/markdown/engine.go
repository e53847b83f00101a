// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markdown wraps the goldmark engine for the mdpo pipeline:
// engine construction with named extensions, frontmatter splitting,
// rendering inline trees back to Markdown span text, width-aware span
// wrapping, and mdpo directive comments.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// extensionRegistry maps user-facing extension names to goldmark
// extenders. Unknown names are ignored. "gfm" is GFM minus Linkify:
// Linkify rewrites bare URLs into autolink nodes and the re-serializer
// could no longer tell them apart from real <...> autolinks, so it is
// only enabled by naming it explicitly.
var extensionRegistry = map[string][]goldmark.Extender{
	"gfm":           {extension.Table, extension.Strikethrough, extension.TaskList},
	"table":         {extension.Table},
	"tables":        {extension.Table},
	"strikethrough": {extension.Strikethrough},
	"linkify":       {extension.Linkify},
	"autolink":      {extension.Linkify},
	"tasklist":      {extension.TaskList},
	"definition":    {extension.DefinitionList},
	"footnote":      {extension.Footnote},
}

// defaultExtenders is the default set, identical to the "gfm" name.
func defaultExtenders() []goldmark.Extender {
	return extensionRegistry["gfm"]
}

// Engine builds a goldmark instance for parsing with the named
// extensions. An empty list selects the defaults.
func Engine(names []string) goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(collectExtensions(names)...))
}

// RenderEngine builds a goldmark instance for HTML output: same
// extension handling plus auto heading IDs and raw HTML passthrough.
func RenderEngine(names []string) goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(collectExtensions(names)...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
}

// ParseDocument parses source into a block AST.
func ParseDocument(engine goldmark.Markdown, source []byte) ast.Node {
	return engine.Parser().Parse(text.NewReader(source))
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return defaultExtenders()
	}
	var extenders []goldmark.Extender
	seen := map[string]struct{}{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		if exts, ok := extensionRegistry[key]; ok {
			extenders = append(extenders, exts...)
		}
	}
	return extenders
}
