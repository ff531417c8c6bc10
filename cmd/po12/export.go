package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/james-see/po12toolbox/pkg/converter"
	"github.com/james-see/po12toolbox/pkg/pattern"
)

var exportOpts struct {
	format   string
	output   string
	metadata bool
}

var exportCmd = &cobra.Command{
	Use:   "export <pattern>...",
	Short: "Export patterns as JSON, CSV or text notation",
	Long: `Export patterns as json, csv, csv-grid or text.
Several patterns export as a JSON array or a multi-pattern CSV.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

var importOutput string

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a MIDI, JSON or text pattern into the library as markdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var convertOutput string

var convertCmd = &cobra.Command{
	Use:   "convert <input>",
	Short: "Auto-detect and convert between formats",
	Long: `Detects the input format and converts to the format given by the output
file extension.

Supported conversions:
  ` + strings.Join(converter.GetSupportedConversions(), "\n  "),
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	f := exportCmd.Flags()
	f.StringVarP(&exportOpts.format, "format", "f", "json", "json, csv, csv-grid or text")
	f.StringVarP(&exportOpts.output, "output", "o", "", "Output file (default: stdout)")
	f.BoolVar(&exportOpts.metadata, "metadata", false, "Add pattern metadata columns to CSV output")

	importCmd.Flags().StringVarP(&importOutput, "output", "o", "", "Output directory (default: patterns directory)")

	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output file path (required)")
	_ = convertCmd.MarkFlagRequired("output")
}

func runExport(cmd *cobra.Command, args []string) error {
	patterns, err := readPatterns(args)
	if err != nil {
		return err
	}

	data, err := exportPatterns(patterns, exportOpts.format, exportOpts.metadata)
	if err != nil {
		return err
	}

	if exportOpts.output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(exportOpts.output, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintln(os.Stderr, successStyle.Render("✓ Exported: ")+exportOpts.output)
	return nil
}

func exportPatterns(patterns []pattern.Pattern, format string, metadata bool) ([]byte, error) {
	var buf bytes.Buffer
	switch strings.ToLower(format) {
	case "json":
		return newConverter().Encode(patterns, converter.FormatJSON)
	case "text", "txt":
		for _, p := range patterns {
			buf.WriteString(converter.TextNotation(p.Voices()))
			buf.WriteString("\n")
		}
		return buf.Bytes(), nil
	case "csv":
		var err error
		if len(patterns) == 1 {
			err = converter.WriteCSV(&buf, patterns[0], metadata)
		} else {
			err = converter.WriteCSVMultiple(&buf, patterns)
		}
		return buf.Bytes(), err
	case "csv-grid":
		for i, p := range patterns {
			if i > 0 {
				buf.WriteString("\n")
			}
			if err := converter.WriteCSVGrid(&buf, p); err != nil {
				return nil, err
			}
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", converter.ErrUnsupportedFormat, format)
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	patterns, err := newConverter().ReadPatterns(args[0])
	if err != nil {
		return err
	}

	dir := importOutput
	if dir == "" {
		dir = cfg.PatternsDir
	}
	for _, p := range patterns {
		path, err := converter.WriteMarkdownFile(p, dir)
		if err != nil {
			return err
		}
		printValidation(pattern.Validate(p))
		fmt.Printf("%s %s (%d voices, %d notes)\n",
			successStyle.Render("✓ Imported:"), path, p.VoiceCount(), p.TotalNotes())
	}
	return nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	fmt.Printf("Converting %s -> %s\n", input, convertOutput)
	if err := newConverter().ConvertFile(input, convertOutput); err != nil {
		return err
	}
	fmt.Println(successStyle.Render("✓ Conversion complete"))
	return nil
}
