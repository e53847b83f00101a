// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package roundtrip

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chai2010/gettext-go/gettext/po"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mdpo/internal/catalog"
	"github.com/pdiddy/mdpo/pkg/types"
)

func testOptions(dir string, langs ...string) types.RoundTripOptions {
	return types.RoundTripOptions{
		Langs:         langs,
		OutputPattern: filepath.Join(dir, "locale", "{lang}"),
		Extract:       types.DefaultExtractOptions(),
		Translate:     types.DefaultTranslateOptions(),
	}
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunCreatesCatalogAndMarkdown(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "README.md", "# Title\n\nHello.\n")

	var log bytes.Buffer
	result, err := New(testOptions(dir, "es")).Run([]string{src}, &log)
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	file := result.Files[0]
	assert.Equal(t, "es", file.Lang)
	assert.Equal(t, 2, file.Coverage.Total)
	assert.Equal(t, 0, file.Coverage.Translated)

	c, err := catalog.Load(file.POPath)
	require.NoError(t, err)
	require.Len(t, c.Entries, 2)
	assert.Equal(t, "Title", c.Entries[0].MsgId)
	assert.Equal(t, "es", c.Header.Language)

	md, err := os.ReadFile(file.MarkdownPath)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nHello.\n", string(md))

	assert.Contains(t, log.String(), "translated: "+src)
	assert.Contains(t, log.String(), "Round trip summary: 1 files")
}

func TestRunAppliesExistingTranslations(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "doc.md", "# Title\n\nHello.\n")

	poDir := filepath.Join(dir, "locale", "es")
	require.NoError(t, os.MkdirAll(poDir, 0o755))
	prev := catalog.New(map[string]string{"Language": "es"})
	prev.Add(po.Message{MsgId: "Hello.", MsgStr: "Hola."})
	require.NoError(t, prev.Save(filepath.Join(poDir, "doc.po"), 78))

	var log bytes.Buffer
	result, err := New(testOptions(dir, "es")).Run([]string{src}, &log)
	require.NoError(t, err)

	file := result.Files[0]
	assert.Equal(t, 1, file.Coverage.Translated)

	md, err := os.ReadFile(file.MarkdownPath)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nHola.\n", string(md))
}

func TestRunMarksRemovedEntriesObsolete(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "doc.md", "Old text.\n")

	var log bytes.Buffer
	runner := New(testOptions(dir, "es"))
	_, err := runner.Run([]string{src}, &log)
	require.NoError(t, err)

	writeSource(t, dir, "doc.md", "New text.\n")
	result, err := runner.Run([]string{src}, &log)
	require.NoError(t, err)

	file := result.Files[0]
	assert.Equal(t, 1, file.Coverage.Obsolete)

	data, err := os.ReadFile(file.POPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "#~ msgid \"Old text.\"")
	assert.Contains(t, string(data), "msgid \"New text.\"")
}

func TestRunMultipleLanguages(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "doc.md", "Hello.\n")

	var log bytes.Buffer
	result, err := New(testOptions(dir, "es", "fr")).Run([]string{src}, &log)
	require.NoError(t, err)
	require.Len(t, result.Files, 2)

	assert.Contains(t, result.Files[0].POPath, filepath.Join("locale", "es"))
	assert.Contains(t, result.Files[1].POPath, filepath.Join("locale", "fr"))
}

func TestRunRequiresLanguages(t *testing.T) {
	dir := t.TempDir()
	_, err := New(testOptions(dir)).Run(nil, &bytes.Buffer{})
	require.Error(t, err)
}

func TestWriteReport(t *testing.T) {
	result := &types.RoundTripResult{Files: []types.RoundTripFile{{
		Source:   "doc.md",
		Lang:     "es",
		Coverage: types.Coverage{Total: 3, Translated: 2},
	}}}
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, WriteReport(result, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "lang: es"))
	assert.True(t, strings.Contains(string(data), "translated: 2"))
}
