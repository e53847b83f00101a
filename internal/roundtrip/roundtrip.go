// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package roundtrip chains extraction and translation: for every source
// file and target language it refreshes the PO catalog (merging any
// existing translations) and writes the translated Markdown next to it.
package roundtrip

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mdpo/internal/catalog"
	"github.com/pdiddy/mdpo/internal/extract"
	"github.com/pdiddy/mdpo/internal/translate"
	"github.com/pdiddy/mdpo/pkg/types"
)

const (
	// DefaultOutputPattern places catalogs and translated documents in a
	// per-language directory.
	DefaultOutputPattern = "locale/{lang}"
	langPlaceholder      = "{lang}"
)

// Runner executes md2po2md round trips.
type Runner struct {
	opts types.RoundTripOptions
}

// New returns a runner for the given options.
func New(opts types.RoundTripOptions) *Runner {
	if opts.OutputPattern == "" {
		opts.OutputPattern = DefaultOutputPattern
	}
	return &Runner{opts: opts}
}

// Run processes every source file for every target language, printing
// per-file status lines to w and returning the coverage report.
func (r *Runner) Run(paths []string, w io.Writer) (*types.RoundTripResult, error) {
	if len(r.opts.Langs) == 0 {
		return nil, errors.New("round trip: no target languages")
	}

	result := &types.RoundTripResult{}
	for _, lang := range r.opts.Langs {
		outDir := strings.ReplaceAll(r.opts.OutputPattern, langPlaceholder, lang)
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", outDir, err)
		}
		for _, src := range paths {
			file, err := r.runFile(src, lang, outDir)
			if err != nil {
				fmt.Fprintf(w, "failed:     %s [%s] (%v)\n", src, lang, err)
				return nil, err
			}
			fmt.Fprintf(w, "translated: %s -> %s (%d/%d entries)\n",
				src, file.MarkdownPath, file.Coverage.Translated, file.Coverage.Total)
			result.Files = append(result.Files, file)
		}
	}

	total := result.TotalCoverage()
	fmt.Fprintf(w, "\nRound trip summary: %d files, %d/%d entries translated\n",
		len(result.Files), total.Translated, total.Total)
	return result, nil
}

// runFile refreshes one file's catalog for one language and writes the
// translated document.
func (r *Runner) runFile(src, lang, outDir string) (types.RoundTripFile, error) {
	opts := r.opts.Extract
	opts.Metadata = withLanguage(opts.Metadata, lang)

	extracted, err := extract.New(opts).ExtractFile(src)
	if err != nil {
		return types.RoundTripFile{}, err
	}

	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	poPath := filepath.Join(outDir, base+".po")

	previous, err := catalog.Load(poPath)
	if err != nil {
		return types.RoundTripFile{}, err
	}
	merged := catalog.Merge(extracted, previous, catalog.MergeOptions{
		MarkNotFoundAsObsolete: opts.MarkNotFoundAsObsolete,
	})
	if err := merged.Save(poPath, opts.WrapWidth); err != nil {
		return types.RoundTripFile{}, err
	}

	tr := translate.New(r.opts.Translate, catalog.NewTable(merged))
	out, err := tr.TranslateFile(src)
	if err != nil {
		return types.RoundTripFile{}, err
	}
	mdPath := filepath.Join(outDir, base+".md")
	if err := os.WriteFile(mdPath, []byte(out), 0o644); err != nil {
		return types.RoundTripFile{}, fmt.Errorf("writing %s: %w", mdPath, err)
	}

	return types.RoundTripFile{
		Source:       src,
		Lang:         lang,
		POPath:       poPath,
		MarkdownPath: mdPath,
		Coverage:     merged.Coverage(),
	}, nil
}

// WriteReport serializes the run result as a YAML coverage report.
func WriteReport(result *types.RoundTripResult, path string) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// withLanguage copies metadata with the Language header set, leaving the
// caller's map untouched.
func withLanguage(metadata map[string]string, lang string) map[string]string {
	out := make(map[string]string, len(metadata)+1)
	for k, v := range metadata {
		out[k] = v
	}
	out["Language"] = lang
	return out
}
