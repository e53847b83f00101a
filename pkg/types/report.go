// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Coverage summarizes the translation state of one catalog.
type Coverage struct {
	// Total is the number of active (non-obsolete) entries.
	Total int `json:"total" yaml:"total"`

	// Translated counts entries with a non-empty, non-fuzzy msgstr.
	Translated int `json:"translated" yaml:"translated"`

	// Fuzzy counts entries flagged fuzzy.
	Fuzzy int `json:"fuzzy" yaml:"fuzzy"`

	// Obsolete counts entries kept from a previous catalog whose msgid
	// no longer appears in the source.
	Obsolete int `json:"obsolete" yaml:"obsolete"`
}

// Complete reports whether every active entry has a usable translation.
func (c Coverage) Complete() bool {
	return c.Total > 0 && c.Translated == c.Total
}

// RoundTripFile is the outcome of one source file for one target language.
type RoundTripFile struct {
	// Source is the input Markdown path.
	Source string `json:"source" yaml:"source"`

	// Lang is the target language code.
	Lang string `json:"lang" yaml:"lang"`

	// POPath is the merged catalog written for this file and language.
	POPath string `json:"po_path" yaml:"po_path"`

	// MarkdownPath is the translated Markdown written for this file
	// and language.
	MarkdownPath string `json:"markdown_path" yaml:"markdown_path"`

	Coverage Coverage `json:"coverage" yaml:"coverage"`
}

// RoundTripResult is the outcome of a full md2po2md run, serialized as
// the YAML coverage report.
type RoundTripResult struct {
	Files []RoundTripFile `json:"files" yaml:"files"`
}

// TotalCoverage sums coverage across all files in the run.
func (r *RoundTripResult) TotalCoverage() Coverage {
	var sum Coverage
	for _, f := range r.Files {
		sum.Total += f.Coverage.Total
		sum.Translated += f.Coverage.Translated
		sum.Fuzzy += f.Coverage.Fuzzy
		sum.Obsolete += f.Coverage.Obsolete
	}
	return sum
}
