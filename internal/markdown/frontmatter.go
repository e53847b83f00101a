// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// SplitFrontmatter separates a leading YAML frontmatter block from the
// document body. The returned front slice holds the block verbatim,
// delimiters included, so callers can pass it through untouched.
// Frontmatter is metadata, never translatable content.
func SplitFrontmatter(source []byte) (front, body []byte, err error) {
	if !bytes.HasPrefix(source, []byte("---\n")) && !bytes.HasPrefix(source, []byte("---\r\n")) {
		return nil, source, nil
	}

	var meta map[string]any
	rest, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing frontmatter: %w", err)
	}
	if len(rest) >= len(source) {
		return nil, source, nil
	}
	return source[:len(source)-len(rest)], source[len(source)-len(rest):], nil
}
