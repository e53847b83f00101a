// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mdpo/internal/translate"
	"github.com/pdiddy/mdpo/pkg/types"
)

var po2mdCmd = &cobra.Command{
	Use:   "po2md <file.md>",
	Short: "Apply PO catalog translations to a Markdown document",
	Long: `po2md re-serializes a Markdown document, replacing each translatable
block with its msgstr from the given catalogs. Blocks without a usable
translation (missing, empty, or fuzzy) keep their original text, so the
output is always a complete document.

--po may repeat and may contain globs; later catalogs win on conflicts.`,
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
		opts.WrapWidth, _ = cmd.Flags().GetInt("wrapwidth")
		opts.Extensions, _ = cmd.Flags().GetStringSlice("extensions")

		out, err := translate.New(opts, table).TranslateFile(args[0])
		if err != nil {
			return err
		}
		save, _ := cmd.Flags().GetString("save")
		return writeOutput(save, out)
	},
}

func init() {
	po2mdCmd.Flags().StringArray("po", nil, "catalog path or glob (repeatable)")
	po2mdCmd.Flags().String("save", "", "output Markdown path (default: stdout)")
	po2mdCmd.Flags().Int("wrapwidth", 80, "maximum Markdown line width (0 disables wrapping)")
	po2mdCmd.Flags().StringSlice("extensions", nil, "markdown extensions to enable (default: table, strikethrough, tasklist)")

	rootCmd.AddCommand(po2mdCmd)
}
