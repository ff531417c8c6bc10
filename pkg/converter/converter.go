package converter

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/james-see/po12toolbox/pkg/pattern"
)

// Format represents a file format
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatMIDI     Format = "midi"
	FormatCSV      Format = "csv"
	FormatText     Format = "text"
	FormatUnknown  Format = "unknown"
)

// DetectFormat detects the format of a file based on extension
func DetectFormat(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".json":
		return FormatJSON
	case ".mid", ".midi":
		return FormatMIDI
	case ".csv":
		return FormatCSV
	case ".txt":
		return FormatText
	default:
		return FormatUnknown
	}
}

// DetectFormatFromContent detects format from file content
func DetectFormatFromContent(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) < 3 {
		return FormatUnknown
	}

	// Check for MIDI file signature "MThd"
	if bytes.HasPrefix(data, []byte("MThd")) {
		return FormatMIDI
	}

	if bytes.HasPrefix(trimmed, []byte(frontMatterSep)) {
		return FormatMarkdown
	}

	if trimmed[0] == '{' || trimmed[0] == '[' {
		return FormatJSON
	}

	if _, _, ok := ParseTextLine(string(bytes.SplitN(trimmed, []byte("\n"), 2)[0])); ok {
		return FormatText
	}

	return FormatUnknown
}

// ReadPatterns reads every pattern stored in a file. Markdown, MIDI and text
// files hold one pattern, JSON files may hold an array.
func (c *Converter) ReadPatterns(inputPath string) ([]pattern.Pattern, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	format := DetectFormat(inputPath)
	if format == FormatUnknown {
		format = DetectFormatFromContent(data)
	}

	switch format {
	case FormatMarkdown:
		p, err := ParseMarkdown(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(inputPath), err)
		}
		return []pattern.Pattern{p}, nil
	case FormatJSON:
		if isJSONArray(data) {
			return ParseJSONList(data)
		}
		p, err := ParseJSON(data)
		if err != nil {
			return nil, err
		}
		return []pattern.Pattern{p}, nil
	case FormatMIDI:
		p, err := c.MIDI().ParseMIDI(data)
		if err != nil {
			return nil, err
		}
		return []pattern.Pattern{p}, nil
	case FormatText:
		name := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		p, err := pattern.New(pattern.MinNumber, ParseText(string(data)), pattern.Metadata{
			Name:    name,
			Created: pattern.Today(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build pattern: %w", err)
		}
		return []pattern.Pattern{p}, nil
	default:
		return nil, fmt.Errorf("%w: cannot read %s", ErrUnsupportedFormat, format)
	}
}

// ReadPattern reads the first pattern stored in a file
func (c *Converter) ReadPattern(inputPath string) (pattern.Pattern, error) {
	patterns, err := c.ReadPatterns(inputPath)
	if err != nil {
		return pattern.Pattern{}, err
	}
	if len(patterns) == 0 {
		return pattern.Pattern{}, fmt.Errorf("%s: %w", filepath.Base(inputPath), ErrNoPatterns)
	}
	return patterns[0], nil
}

// Encode renders patterns in the given format. Markdown and text hold a
// single pattern; MIDI chains all of them.
func (c *Converter) Encode(patterns []pattern.Pattern, format Format) ([]byte, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}

	switch format {
	case FormatMarkdown:
		return GenerateMarkdown(patterns[0]), nil
	case FormatJSON:
		if len(patterns) == 1 {
			return GenerateJSON(patterns[0])
		}
		return GenerateJSONList(patterns)
	case FormatCSV:
		var buf bytes.Buffer
		var err error
		if len(patterns) == 1 {
			err = WriteCSV(&buf, patterns[0], false)
		} else {
			err = WriteCSVMultiple(&buf, patterns)
		}
		if err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatMIDI:
		return c.MIDI().GenerateMIDI(patterns...)
	case FormatText:
		return []byte(TextNotation(patterns[0].Voices()) + "\n"), nil
	default:
		return nil, fmt.Errorf("%w: cannot write %s", ErrUnsupportedFormat, format)
	}
}

// ConvertFile converts a file from one format to another
func (c *Converter) ConvertFile(inputPath, outputPath string) error {
	outputFormat := DetectFormat(outputPath)
	if outputFormat == FormatUnknown {
		return errors.New("cannot determine output format from filename")
	}

	patterns, err := c.ReadPatterns(inputPath)
	if err != nil {
		return err
	}

	outputData, err := c.Encode(patterns, outputFormat)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	if err := os.WriteFile(outputPath, outputData, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// GetSupportedConversions returns a list of supported conversion paths
func GetSupportedConversions() []string {
	inputs := []Format{FormatMarkdown, FormatJSON, FormatMIDI, FormatText}
	outputs := []Format{FormatMarkdown, FormatJSON, FormatCSV, FormatMIDI, FormatText}

	var conversions []string
	for _, in := range inputs {
		for _, out := range outputs {
			if in != out {
				conversions = append(conversions, fmt.Sprintf("%s -> %s", in, out))
			}
		}
	}
	return conversions
}
