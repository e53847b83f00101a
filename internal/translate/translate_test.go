// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translate

import (
	"strings"
	"testing"

	"github.com/chai2010/gettext-go/gettext/po"

	"github.com/pdiddy/mdpo/internal/catalog"
	"github.com/pdiddy/mdpo/internal/markdown"
	"github.com/pdiddy/mdpo/pkg/types"
)

func table(entries map[string]string) catalog.Table {
	c := catalog.New(nil)
	for id, str := range entries {
		c.Add(po.Message{MsgId: id, MsgStr: str})
	}
	return catalog.NewTable(c)
}

func translate(t *testing.T, src string, entries map[string]string) string {
	t.Helper()
	tr := New(types.DefaultTranslateOptions(), table(entries))
	out, err := tr.Translate([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestTranslateBlocks(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		entries map[string]string
		want    string
	}{
		{
			name: "empty table reformats only",
			src:  "# Title\n\nHello world.\n",
			want: "# Title\n\nHello world.\n",
		},
		{
			name:    "paragraph substituted",
			src:     "# Title\n\nHello world.\n",
			entries: map[string]string{"Hello world.": "Hola mundo."},
			want:    "# Title\n\nHola mundo.\n",
		},
		{
			name:    "heading substituted",
			src:     "## Usage\n",
			entries: map[string]string{"Usage": "Uso"},
			want:    "## Uso\n",
		},
		{
			name: "setext heading normalized to atx",
			src:  "Title\n=====\n",
			want: "# Title\n",
		},
		{
			name:    "tight list",
			src:     "- one\n- two\n",
			entries: map[string]string{"one": "uno", "two": "dos"},
			want:    "- uno\n- dos\n",
		},
		{
			name: "ordered list keeps start number",
			src:  "3. aaa\n4. bbb\n",
			want: "3. aaa\n4. bbb\n",
		},
		{
			name: "nested list stays tight",
			src:  "- first\n  - nested\n",
			want: "- first\n  - nested\n",
		},
		{
			name: "loose item keeps blank line",
			src:  "- para one\n\n  para two\n",
			want: "- para one\n\n  para two\n",
		},
		{
			name:    "blockquote",
			src:     "> text here\n",
			entries: map[string]string{"text here": "texto"},
			want:    "> texto\n",
		},
		{
			name: "fenced code untouched",
			src:  "```python\nprint('hi')\n```\n",
			want: "```python\nprint('hi')\n```\n",
		},
		{
			name:    "fenced code substituted when translated",
			src:     "```\nprint('hi')\n```\n",
			entries: map[string]string{"print('hi')": "print('hola')"},
			want:    "```\nprint('hola')\n```\n",
		},
		{
			name: "thematic break",
			src:  "above\n\n---\n\nbelow\n",
			want: "above\n\n---\n\nbelow\n",
		},
		{
			name:    "table cells",
			src:     "| Name | Age |\n| --- | --- |\n| Alice | 30 |\n",
			entries: map[string]string{"Name": "Nombre"},
			want:    "| Nombre | Age |\n| --- | --- |\n| Alice | 30 |\n",
		},
		{
			name: "table alignments survive",
			src:  "| a | b | c |\n| :-- | :-: | --: |\n| 1 | 2 | 3 |\n",
			want: "| a | b | c |\n| :-- | :-: | --: |\n| 1 | 2 | 3 |\n",
		},
		{
			name:    "task list",
			src:     "- [ ] task one\n- [x] task two\n",
			entries: map[string]string{"task one": "tarea uno"},
			want:    "- [ ] tarea uno\n- [x] task two\n",
		},
		{
			name:    "hard break round trips",
			src:     "alpha\\\nbeta\n",
			entries: map[string]string{"alpha\nbeta": "uno\ndos"},
			want:    "uno\\\ndos\n",
		},
		{
			name: "raw html passes through",
			src:  "<div>\nkeep\n</div>\n\ntext\n",
			want: "<div>\nkeep\n</div>\n\ntext\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := translate(t, tt.src, tt.entries); got != tt.want {
				t.Errorf("Translate(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestTranslateWraps(t *testing.T) {
	tr := New(types.TranslateOptions{WrapWidth: 20}, table(map[string]string{
		"word": "uno dos tres cuatro cinco",
	}))
	out, err := tr.Translate([]byte("word\n"))
	if err != nil {
		t.Fatal(err)
	}
	if out != "uno dos tres cuatro\ncinco\n" {
		t.Errorf("out = %q", out)
	}
}

func TestTranslateDirectives(t *testing.T) {
	src := "<!-- mdpo-disable -->\n\nhidden\n\n<!-- mdpo-enable -->\n\nshown\n"
	got := translate(t, src, map[string]string{"hidden": "X", "shown": "Y"})

	if got != "hidden\n\nY\n" {
		t.Errorf("out = %q, want disabled block untouched and comments stripped", got)
	}
}

func TestTranslateDisableNextLine(t *testing.T) {
	src := "<!-- mdpo-disable-next-line -->\n\nskipped\n\ntaken\n"
	got := translate(t, src, map[string]string{"skipped": "X", "taken": "Y"})

	if got != "skipped\n\nY\n" {
		t.Errorf("out = %q", got)
	}
}

func TestTranslateDirectiveConsumedByCodeBlock(t *testing.T) {
	src := "<!-- mdpo-disable-next-line -->\n\n```\ncode\n```\n\nkept\n"
	got := translate(t, src, map[string]string{"code": "X", "kept": "Y"})

	if got != "```\ncode\n```\n\nY\n" {
		t.Errorf("out = %q, want code block to consume the one-shot directive", got)
	}
}

func TestTranslateContext(t *testing.T) {
	c := catalog.New(nil)
	c.Add(po.Message{MsgId: "Open", MsgStr: "Abierto"})
	c.Add(po.Message{MsgContext: "menu", MsgId: "Open", MsgStr: "Abrir"})

	tr := New(types.DefaultTranslateOptions(), catalog.NewTable(c))
	out, err := tr.Translate([]byte("<!-- mdpo-context menu -->\n\nOpen\n\nOpen\n"))
	if err != nil {
		t.Fatal(err)
	}
	if out != "Abrir\n\nAbierto\n" {
		t.Errorf("out = %q, want context applied to the next block only", out)
	}
}

func TestTranslateFrontmatterPassthrough(t *testing.T) {
	src := []byte("---\ntitle: Doc\n---\n\nHello.\n")
	front, _, err := markdown.SplitFrontmatter(src)
	if err != nil {
		t.Fatal(err)
	}

	got := translate(t, string(src), map[string]string{"Hello.": "Hola."})
	if !strings.HasPrefix(got, string(front)) {
		t.Fatalf("frontmatter not preserved:\n%s", got)
	}
	if !strings.HasSuffix(got, "Hola.\n") {
		t.Errorf("body not translated:\n%s", got)
	}
}

func TestTranslateFuzzyIgnored(t *testing.T) {
	c := catalog.New(nil)
	m := po.Message{MsgId: "text", MsgStr: "texto"}
	catalog.SetFuzzy(&m, true)
	c.Add(m)

	tr := New(types.DefaultTranslateOptions(), catalog.NewTable(c))
	out, err := tr.Translate([]byte("text\n"))
	if err != nil {
		t.Fatal(err)
	}
	if out != "text\n" {
		t.Errorf("out = %q, fuzzy translations must not be applied", out)
	}
}
