// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mdpo/internal/catalog"
	"github.com/pdiddy/mdpo/internal/extract"
	"github.com/pdiddy/mdpo/pkg/types"
)

var md2poCmd = &cobra.Command{
	Use:   "md2po [files...]",
	Short: "Extract translatable Markdown blocks into a PO catalog",
	Long: `md2po walks each Markdown file and collects one PO entry per translatable
block: headings, paragraphs, list items, blockquote contents, and table
cells. Inline markup stays inside the msgid, so translators see the same
emphasis, links, and code spans the reader will.

With --po the new extraction is merged into the existing catalog:
translations are kept, removed entries become obsolete. With no file
arguments, Markdown is read from stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := extractOptions(cmd)
		if err != nil {
			return err
		}
		poPath, _ := cmd.Flags().GetString("po")
		save, _ := cmd.Flags().GetBool("save")
		if save && poPath == "" {
			return errors.New("--save requires --po")
		}

		ex := extract.New(opts)
		var extracted *catalog.Catalog
		if len(args) == 0 {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			if extracted, err = ex.Extract(data, ""); err != nil {
				return err
			}
		} else {
			if extracted, err = extract.ExtractPaths(ex, args, statusWriter()); err != nil {
				return err
			}
		}

		merged := extracted
		if poPath != "" {
			previous, err := catalog.Load(poPath)
			if err != nil {
				return err
			}
			merged = catalog.Merge(extracted, previous, catalog.MergeOptions{
				MarkNotFoundAsObsolete: opts.MarkNotFoundAsObsolete,
			})
		}

		if save {
			return merged.Save(poPath, opts.WrapWidth)
		}
		_, err = os.Stdout.Write(merged.Data(opts.WrapWidth))
		return err
	},
}

func init() {
	md2poCmd.Flags().String("po", "", "catalog path to merge with and, under --save, write back to")
	md2poCmd.Flags().Bool("save", false, "write the merged catalog to --po instead of stdout")
	addExtractFlags(md2poCmd)

	rootCmd.AddCommand(md2poCmd)
}

// addExtractFlags registers the extraction flags shared by md2po and
// md2po2md.
func addExtractFlags(cmd *cobra.Command) {
	cmd.Flags().Int("wrapwidth", 78, "maximum PO line width (0 disables wrapping)")
	cmd.Flags().String("location", "full", "reference comment detail: full, file, or never")
	cmd.Flags().Bool("include-codeblocks", false, "extract code block contents as entries")
	cmd.Flags().Bool("mark-not-found-as-obsolete", true, "keep removed entries in the catalog as #~ obsolete")
	cmd.Flags().StringArray("metadata", nil, "PO header field as key=value (repeatable)")
	cmd.Flags().StringSlice("extensions", nil, "markdown extensions to enable (default: table, strikethrough, tasklist)")
}

// extractOptions builds extraction options from the flags registered by
// addExtractFlags.
func extractOptions(cmd *cobra.Command) (types.ExtractOptions, error) {
	opts := types.DefaultExtractOptions()
	opts.WrapWidth, _ = cmd.Flags().GetInt("wrapwidth")
	opts.IncludeCodeblocks, _ = cmd.Flags().GetBool("include-codeblocks")
	opts.MarkNotFoundAsObsolete, _ = cmd.Flags().GetBool("mark-not-found-as-obsolete")
	opts.Extensions, _ = cmd.Flags().GetStringSlice("extensions")

	loc, _ := cmd.Flags().GetString("location")
	opts.Location = types.LocationMode(loc)
	if !opts.Location.Valid() {
		return opts, fmt.Errorf("invalid --location %q, want full, file, or never", loc)
	}

	pairs, _ := cmd.Flags().GetStringArray("metadata")
	metadata, err := parseMetadata(pairs)
	if err != nil {
		return opts, err
	}
	opts.Metadata = metadata
	return opts, nil
}
