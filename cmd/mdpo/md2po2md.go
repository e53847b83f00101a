// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mdpo/internal/roundtrip"
	"github.com/pdiddy/mdpo/pkg/types"
)

var md2po2mdCmd = &cobra.Command{
	Use:   "md2po2md [files...]",
	Short: "Extract, merge, and translate in one pass per language",
	Long: `md2po2md runs the full round trip for each source file and target
language: extract entries, merge them into <output>/<basename>.po
(keeping existing translations, marking removed entries obsolete), save
the catalog, and write the translated <output>/<basename>.md.

The --output pattern must contain a {lang} placeholder, replaced with
each --lang value. --report writes a YAML coverage summary of the run.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		langs, _ := cmd.Flags().GetStringSlice("lang")
		if len(langs) == 0 {
			return errors.New("at least one --lang is required")
		}
		exOpts, err := extractOptions(cmd)
		if err != nil {
			return err
		}
		trOpts := types.DefaultTranslateOptions()
		trOpts.Extensions = exOpts.Extensions

		output, _ := cmd.Flags().GetString("output")
		runner := roundtrip.New(types.RoundTripOptions{
			Langs:         langs,
			OutputPattern: output,
			Extract:       exOpts,
			Translate:     trOpts,
		})
		result, err := runner.Run(args, statusWriter())
		if err != nil {
			return err
		}

		if report, _ := cmd.Flags().GetString("report"); report != "" {
			return roundtrip.WriteReport(result, report)
		}
		return nil
	},
}

func init() {
	md2po2mdCmd.Flags().StringSlice("lang", nil, "target language code (repeatable)")
	md2po2mdCmd.Flags().String("output", roundtrip.DefaultOutputPattern, "output directory pattern containing {lang}")
	md2po2mdCmd.Flags().String("report", "", "YAML coverage report path")
	addExtractFlags(md2po2mdCmd)

	rootCmd.AddCommand(md2po2mdCmd)
}
