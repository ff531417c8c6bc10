// Package main is the entry point for the po12 CLI
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/james-see/po12toolbox/pkg/config"
	"github.com/james-see/po12toolbox/pkg/converter"
	"github.com/james-see/po12toolbox/pkg/converter/devices"
	"github.com/james-see/po12toolbox/pkg/library"
	"github.com/james-see/po12toolbox/pkg/pattern"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	configPath  string
	patternsDir string
	verbose     bool

	cfg    = config.Default()
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "po12",
	Short: "Create, analyse and export PO-12 rhythm patterns",
	Long: `po12 manages a library of Pocket Operator PO-12 drum patterns stored as
markdown files, and exports them to MIDI, JSON, CSV and text notation.

Examples:
  po12 create --template basic-rock -n "My Rock Beat"
  po12 view patterns/basic-rock.md
  po12 similar patterns/amen-break.md --threshold 0.6
  po12 midi patterns/intro.md patterns/verse.md -o song.mid
  po12 tui`,
	Version:           fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./"+config.DefaultFile+")")
	rootCmd.PersistentFlags().StringVarP(&patternsDir, "patterns-dir", "d", "", "Pattern library directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(chainCmd)
	rootCmd.AddCommand(similarCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(midiCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(templateCmd)
}

// setup configures logging and loads the config file before any command runs
func setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	path, explicit := configPath, configPath != ""
	if !explicit {
		path = config.DefaultFile
	}
	loaded, err := config.Load(path, explicit)
	if err != nil {
		return err
	}
	cfg = loaded

	if patternsDir != "" {
		cfg.PatternsDir = patternsDir
	}
	logger.Debug("configuration loaded",
		slog.String("config", path),
		slog.String("patterns_dir", cfg.PatternsDir),
	)
	return nil
}

func newLibrary() *library.Library {
	return library.New(cfg.PatternsDir, logger)
}

func newConverter() *converter.Converter {
	conv := converter.New(devices.NewPO12())
	conv.SetMIDIOptions(cfg.MIDI)
	return conv
}

// readPatterns reads one pattern from each path, in order
func readPatterns(paths []string) ([]pattern.Pattern, error) {
	conv := newConverter()
	patterns := make([]pattern.Pattern, 0, len(paths))
	for _, path := range paths {
		p, err := conv.ReadPattern(path)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded pattern", slog.String("file", path), slog.String("name", p.Metadata.Name))
		patterns = append(patterns, p)
	}
	return patterns, nil
}

func getOutputPath(input, output, defaultExt string) string {
	if output != "" {
		return output
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + defaultExt
}
