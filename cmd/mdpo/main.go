// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the mdpo CLI.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/mdpo/internal/catalog"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the mdpo CLI.
var rootCmd = &cobra.Command{
	Use:   "mdpo",
	Short: "Markdown and gettext PO interconversion",
	Long: `mdpo converts between Markdown documents and gettext PO catalogs so prose
can ride the standard translation toolchain. Extraction collects one entry
per translatable block, with inline markup preserved inside the msgid;
translation substitutes msgstr values into a freshly re-serialized document.

Each direction is a subcommand: md2po extracts, po2md injects, md2po2md
round-trips per target language, and mdpo2html renders translated HTML.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return applyConfig(cmd.Flags())
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./mdpo.yaml or ~/.config/mdpo/config.yaml)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress status lines on stderr")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("mdpo")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "mdpo"))
		}
	}

	viper.SetEnvPrefix("MDPO")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// applyConfig fills flags the user did not set from viper, so config
// file keys and MDPO_* env vars of the same name supply flag defaults.
// Explicit command-line values always win.
func applyConfig(flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed || !viper.IsSet(f.Name) {
			return
		}
		value := viper.GetString(f.Name)
		if value == "" {
			if s := viper.GetStringSlice(f.Name); len(s) > 0 {
				value = strings.Join(s, ",")
			}
		}
		if value == "" {
			return
		}
		if e := flags.Set(f.Name, value); e != nil {
			err = fmt.Errorf("config value for --%s: %w", f.Name, e)
		}
	})
	return err
}

// statusWriter returns the stream for per-file status lines: stderr, or
// a discard writer under --quiet.
func statusWriter() io.Writer {
	if quiet, _ := rootCmd.PersistentFlags().GetBool("quiet"); quiet {
		return io.Discard
	}
	return os.Stderr
}

// loadCatalogs expands glob patterns and loads every matching catalog.
// Later catalogs win on conflicting entries.
func loadCatalogs(patterns []string) (catalog.Table, error) {
	var catalogs []*catalog.Catalog
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad catalog pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no catalogs match %q", pattern)
		}
		sort.Strings(matches)
		for _, m := range matches {
			c, err := catalog.Load(m)
			if err != nil {
				return nil, err
			}
			catalogs = append(catalogs, c)
		}
	}
	return catalog.NewTable(catalogs...), nil
}

// writeOutput writes content to the save path, or to stdout when save is
// empty.
func writeOutput(save, content string) error {
	if save == "" {
		_, err := os.Stdout.WriteString(content)
		return err
	}
	if err := os.WriteFile(save, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", save, err)
	}
	return nil
}

// parseMetadata turns repeated key=value flags into a header map.
func parseMetadata(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --metadata %q, want key=value", pair)
		}
		out[key] = value
	}
	return out, nil
}
