// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/mdpo/internal/catalog"
	"github.com/pdiddy/mdpo/pkg/types"
)

func msgids(c *catalog.Catalog) []string {
	ids := make([]string, len(c.Entries))
	for i, m := range c.Entries {
		ids[i] = m.MsgId
	}
	return ids
}

func extractString(t *testing.T, src string, opts types.ExtractOptions) *catalog.Catalog {
	t.Helper()
	c, err := New(opts).Extract([]byte(src), "test.md")
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestExtractBlocks(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "heading and paragraph",
			src:  "# Title\n\nA paragraph.\n",
			want: []string{"Title", "A paragraph."},
		},
		{
			name: "setext heading",
			src:  "Title\n=====\n\nBody text.\n",
			want: []string{"Title", "Body text."},
		},
		{
			name: "list items",
			src:  "- first item\n- second item\n  - nested item\n",
			want: []string{"first item", "second item", "nested item"},
		},
		{
			name: "ordered list",
			src:  "1. one\n2. two\n",
			want: []string{"one", "two"},
		},
		{
			name: "blockquote",
			src:  "> quoted text\n>\n> more quoted text\n",
			want: []string{"quoted text", "more quoted text"},
		},
		{
			name: "markup preserved in msgid",
			src:  "Some **bold** and `code` and [a link](https://x).\n",
			want: []string{"Some **bold** and `code` and [a link](https://x)."},
		},
		{
			name: "multiline paragraph joins",
			src:  "spread over\ntwo lines\n",
			want: []string{"spread over two lines"},
		},
		{
			name: "table cells",
			src:  "| Name | Age |\n| --- | --- |\n| Alice | 30 |\n",
			want: []string{"Name", "Age", "Alice", "30"},
		},
		{
			name: "code block skipped by default",
			src:  "text\n\n```go\nfmt.Println()\n```\n",
			want: []string{"text"},
		},
		{
			name: "thematic break skipped",
			src:  "above\n\n---\n\nbelow\n",
			want: []string{"above", "below"},
		},
		{
			name: "html block skipped",
			src:  "<div>\nraw\n</div>\n\ntext\n",
			want: []string{"text"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := extractString(t, tt.src, types.DefaultExtractOptions())
			got := msgids(c)
			if len(got) != len(tt.want) {
				t.Fatalf("msgids = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("msgid[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExtractIncludeCodeblocks(t *testing.T) {
	opts := types.DefaultExtractOptions()
	opts.IncludeCodeblocks = true
	c := extractString(t, "```\nsome code\nmore code\n```\n", opts)

	got := msgids(c)
	if len(got) != 1 || got[0] != "some code\nmore code" {
		t.Errorf("msgids = %q", got)
	}
	if flags := c.Entries[0].Flags; len(flags) != 1 || flags[0] != "no-wrap" {
		t.Errorf("flags = %v, want [no-wrap]", flags)
	}
}

func TestExtractLocations(t *testing.T) {
	src := "# Title\n\nParagraph here.\n"

	t.Run("full", func(t *testing.T) {
		c := extractString(t, src, types.DefaultExtractOptions())
		if c.Entries[0].ReferenceFile[0] != "test.md" || c.Entries[0].ReferenceLine[0] != 1 {
			t.Errorf("entry 0 ref = %v:%v", c.Entries[0].ReferenceFile, c.Entries[0].ReferenceLine)
		}
		if c.Entries[1].ReferenceLine[0] != 3 {
			t.Errorf("entry 1 line = %d, want 3", c.Entries[1].ReferenceLine[0])
		}
	})
	t.Run("file", func(t *testing.T) {
		opts := types.DefaultExtractOptions()
		opts.Location = types.LocationFile
		c := extractString(t, src, opts)
		if c.Entries[0].ReferenceFile[0] != "test.md" || c.Entries[0].ReferenceLine[0] != 0 {
			t.Errorf("ref = %v:%v", c.Entries[0].ReferenceFile, c.Entries[0].ReferenceLine)
		}
	})
	t.Run("never", func(t *testing.T) {
		opts := types.DefaultExtractOptions()
		opts.Location = types.LocationNever
		c := extractString(t, src, opts)
		if len(c.Entries[0].ReferenceFile) != 0 {
			t.Errorf("ref = %v, want none", c.Entries[0].ReferenceFile)
		}
	})
}

func TestExtractFrontmatterOffset(t *testing.T) {
	src := "---\ntitle: Doc\n---\n\n# Title\n"
	c := extractString(t, src, types.DefaultExtractOptions())

	got := msgids(c)
	if len(got) != 1 || got[0] != "Title" {
		t.Fatalf("msgids = %q, frontmatter must not be extracted", got)
	}
	if line := c.Entries[0].ReferenceLine[0]; line != 5 {
		t.Errorf("heading line = %d, want 5", line)
	}
}

func TestExtractDuplicatesMergeOccurrences(t *testing.T) {
	c := extractString(t, "Repeated.\n\nRepeated.\n", types.DefaultExtractOptions())

	if len(c.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(c.Entries))
	}
	if got := c.Entries[0].ReferenceLine; len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("occurrence lines = %v, want [1 3]", got)
	}
}

func TestExtractDirectives(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "disable and enable",
			src:  "kept one\n\n<!-- mdpo-disable -->\n\nhidden\n\n<!-- mdpo-enable -->\n\nkept two\n",
			want: []string{"kept one", "kept two"},
		},
		{
			name: "disable next line",
			src:  "<!-- mdpo-disable-next-line -->\n\nhidden\n\nkept\n",
			want: []string{"kept"},
		},
		{
			name: "enable next line inside disabled region",
			src:  "<!-- mdpo-disable -->\n\nhidden\n\n<!-- mdpo-enable-next-line -->\n\nkept\n\nhidden too\n",
			want: []string{"kept"},
		},
		{
			name: "include text",
			src:  "<!-- mdpo-include Extra release note -->\n\nbody\n",
			want: []string{"Extra release note", "body"},
		},
		{
			name: "disable next line consumed by skipped code block",
			src:  "<!-- mdpo-disable-next-line -->\n\n```\ncode\n```\n\nkept\n",
			want: []string{"kept"},
		},
		{
			name: "include codeblock",
			src:  "<!-- mdpo-include-codeblock -->\n\n```\nkept code\n```\n\n```\nskipped code\n```\n",
			want: []string{"kept code"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := extractString(t, tt.src, types.DefaultExtractOptions())
			got := msgids(c)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("msgids = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractContextAndTranslatorComment(t *testing.T) {
	src := "<!-- mdpo-context menu -->\n<!-- mdpo-translator Keep it short -->\n\nOpen\n\nOther\n"
	c := extractString(t, src, types.DefaultExtractOptions())

	if len(c.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(c.Entries))
	}
	first := c.Entries[0]
	if first.MsgContext != "menu" {
		t.Errorf("msgctxt = %q, want %q", first.MsgContext, "menu")
	}
	if first.ExtractedComment != "Keep it short" {
		t.Errorf("extracted comment = %q", first.ExtractedComment)
	}
	if second := c.Entries[1]; second.MsgContext != "" || second.ExtractedComment != "" {
		t.Errorf("one-shot state leaked into %+v", second)
	}
}

func TestExtractPaths(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.md")
	b := filepath.Join(dir, "b.md")
	if err := os.WriteFile(a, []byte("# Shared\n\nonly in a\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("# Shared\n\nonly in b\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var log bytes.Buffer
	c, err := ExtractPaths(New(types.DefaultExtractOptions()), []string{a, b}, &log)
	if err != nil {
		t.Fatal(err)
	}

	if len(c.Entries) != 3 {
		t.Fatalf("entries = %d, want 3 (shared heading deduplicated)", len(c.Entries))
	}
	if refs := c.Entries[0].ReferenceFile; len(refs) != 2 {
		t.Errorf("shared heading refs = %v, want both files", refs)
	}
	if !strings.Contains(log.String(), "extracted: "+a) {
		t.Errorf("missing status line for %s in %q", a, log.String())
	}
}
