// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
)

// Directive names understood by the pipeline. Extraction honors all of
// them; translation honors the disable family and strips every
// directive comment from the output.
const (
	DirectiveDisable          = "disable"           // stop extracting until enable
	DirectiveEnable           = "enable"            // resume extracting
	DirectiveDisableNextLine  = "disable-next-line" // skip the next block
	DirectiveEnableNextLine   = "enable-next-line"  // extract the next block even when disabled
	DirectiveTranslator       = "translator"        // extracted comment for the next entry
	DirectiveContext          = "context"           // msgctxt for the next entry
	DirectiveIncludeCodeblock = "include-codeblock" // extract the next code block
	DirectiveInclude          = "include"           // extract the comment value itself
)

// Directive is an mdpo control comment embedded in the document,
// e.g. <!-- mdpo-disable-next-line --> or <!-- mdpo-context menu -->.
type Directive struct {
	Name  string
	Value string
}

var directiveRE = regexp.MustCompile(`<!--\s*mdpo-([a-z0-9-]+)((?:\s+[^\s>][^>]*?)?)\s*-->`)

// ParseDirective extracts an mdpo directive from an HTML chunk.
func ParseDirective(html string) (Directive, bool) {
	m := directiveRE.FindStringSubmatch(html)
	if m == nil {
		return Directive{}, false
	}
	return Directive{Name: m[1], Value: strings.TrimSpace(m[2])}, true
}

// BlockText returns the raw source text of a block node's lines,
// including an HTML block's closure line when present.
func BlockText(n ast.Node, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	if h, ok := n.(*ast.HTMLBlock); ok && h.HasClosure() {
		b.Write(h.ClosureLine.Value(source))
	}
	return b.String()
}

// LineNumber returns the 1-based source line of the block's first line,
// or 0 when the block spans no source lines.
func LineNumber(n ast.Node, source []byte) int {
	if n.Lines().Len() == 0 {
		return 0
	}
	seg := n.Lines().At(0)
	return 1 + bytes.Count(source[:seg.Start], []byte("\n"))
}
