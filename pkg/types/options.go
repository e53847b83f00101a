// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds option and result types shared between the mdpo
// pipeline stages and the CLI layer. It carries no behavior.
package types

// LocationMode controls how source locations are recorded in PO
// reference comments.
type LocationMode string

const (
	// LocationFull writes file and line references ("#: README.md:12").
	LocationFull LocationMode = "full"
	// LocationFile writes file references without line numbers.
	LocationFile LocationMode = "file"
	// LocationNever suppresses reference comments entirely.
	LocationNever LocationMode = "never"
)

// Valid reports whether m is one of the known location modes.
func (m LocationMode) Valid() bool {
	switch m {
	case LocationFull, LocationFile, LocationNever:
		return true
	}
	return false
}

// ExtractOptions holds settings for the Markdown-to-PO extraction stage.
type ExtractOptions struct {
	// IncludeCodeblocks extracts fenced and indented code block contents
	// as entries. Individual blocks can also be opted in with an
	// mdpo-include-codeblock directive comment.
	IncludeCodeblocks bool `json:"include_codeblocks" yaml:"include_codeblocks"`

	// Location selects reference comment detail: full, file, or never.
	Location LocationMode `json:"location" yaml:"location"`

	// Extensions names the Markdown extensions to enable (e.g. "gfm",
	// "table", "strikethrough"). Empty means the default set: tables,
	// strikethrough, and task lists.
	Extensions []string `json:"extensions" yaml:"extensions"`

	// Metadata holds PO header fields to set on the output catalog,
	// e.g. "Language" -> "es".
	Metadata map[string]string `json:"metadata" yaml:"metadata"`

	// MarkNotFoundAsObsolete keeps catalog entries whose msgid no longer
	// appears in the source, flagged as obsolete. When false they are
	// dropped on merge.
	MarkNotFoundAsObsolete bool `json:"mark_not_found_as_obsolete" yaml:"mark_not_found_as_obsolete"`

	// WrapWidth is the maximum line width for the serialized catalog.
	// Zero or negative disables wrapping.
	WrapWidth int `json:"wrapwidth" yaml:"wrapwidth"`
}

// DefaultExtractOptions returns the extraction defaults: full locations,
// obsolete marking on, PO wrapping at 78 columns.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		Location:               LocationFull,
		MarkNotFoundAsObsolete: true,
		WrapWidth:              78,
	}
}

// TranslateOptions holds settings for the PO-to-Markdown translation stage.
type TranslateOptions struct {
	// WrapWidth is the maximum line width for rendered Markdown
	// paragraphs. Zero or negative disables wrapping.
	WrapWidth int `json:"wrapwidth" yaml:"wrapwidth"`

	// Extensions names the Markdown extensions to enable. Empty means
	// the default set. Extraction and translation of the same document
	// must use the same set or msgids will not match.
	Extensions []string `json:"extensions" yaml:"extensions"`
}

// DefaultTranslateOptions returns the translation defaults: Markdown
// wrapped at 80 columns.
func DefaultTranslateOptions() TranslateOptions {
	return TranslateOptions{WrapWidth: 80}
}

// RoundTripOptions holds settings for the md2po2md round-trip stage.
type RoundTripOptions struct {
	// Langs lists the target languages, one catalog and one translated
	// document per language.
	Langs []string `json:"langs" yaml:"langs"`

	// OutputPattern is the output directory pattern. A "{lang}"
	// placeholder is replaced with each target language
	// (default "locale/{lang}").
	OutputPattern string `json:"output" yaml:"output"`

	Extract   ExtractOptions   `json:"extract" yaml:"extract"`
	Translate TranslateOptions `json:"translate" yaml:"translate"`
}
