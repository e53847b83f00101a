// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mdpo/internal/render"
	"github.com/pdiddy/mdpo/pkg/types"
)

var mdpo2htmlCmd = &cobra.Command{
	Use:   "mdpo2html <file.md>",
	Short: "Translate a Markdown document and render it as HTML",
	Long: `mdpo2html applies PO catalog substitutions like po2md, then renders the
translated document as an HTML fragment. Raw HTML in the source passes
through, and frontmatter is dropped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patterns, _ := cmd.Flags().GetStringArray("po")
		if len(patterns) == 0 {
			return errors.New("at least one --po catalog is required")
		}
		table, err := loadCatalogs(patterns)
		if err != nil {
			return err
		}

		opts := types.DefaultTranslateOptions()
		opts.Extensions, _ = cmd.Flags().GetStringSlice("extensions")

		out, err := render.NewHTML(opts, table).RenderFile(args[0])
		if err != nil {
			return err
		}
		save, _ := cmd.Flags().GetString("save")
		return writeOutput(save, out)
	},
}

func init() {
	mdpo2htmlCmd.Flags().StringArray("po", nil, "catalog path or glob (repeatable)")
	mdpo2htmlCmd.Flags().String("save", "", "output HTML path (default: stdout)")
	mdpo2htmlCmd.Flags().StringSlice("extensions", nil, "markdown extensions to enable (default: table, strikethrough, tasklist)")

	rootCmd.AddCommand(mdpo2htmlCmd)
}
