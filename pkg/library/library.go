// Package library provides a directory-backed collection of markdown patterns
package library

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/james-see/po12toolbox/pkg/converter"
	"github.com/james-see/po12toolbox/pkg/pattern"
)

// DefaultDir is where patterns live when no directory is configured
const DefaultDir = "patterns"

// Entry is a pattern and the file it was loaded from
type Entry struct {
	Path    string
	Pattern pattern.Pattern
}

// Summary names a pattern file and the voices it uses
type Summary struct {
	Path   string
	Name   string
	Voices []pattern.Voice
}

// Library loads patterns from a directory of markdown files
type Library struct {
	dir    string
	logger *slog.Logger
}

// New creates a library rooted at dir. A nil logger discards log output.
func New(dir string, logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Library{dir: dir, logger: logger}
}

// Dir returns the library directory
func (l *Library) Dir() string {
	return l.dir
}

// Load parses every markdown pattern in the directory, sorted by name.
// README.md and files that fail to parse are skipped with a warning.
// A missing directory yields no entries.
func (l *Library) Load() ([]Entry, error) {
	dirEntries, err := os.ReadDir(l.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Debug("pattern directory missing", slog.String("dir", l.dir))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read pattern directory: %w", err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() || !isPatternFile(de.Name()) {
			continue
		}
		path := filepath.Join(l.dir, de.Name())
		p, err := converter.ParseMarkdownFile(path)
		if err != nil {
			l.logger.Warn("skipping pattern file", slog.String("file", path), slog.Any("error", err))
			continue
		}
		entries = append(entries, Entry{Path: path, Pattern: p})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Pattern.Metadata.Name < entries[j].Pattern.Metadata.Name
	})
	l.logger.Debug("loaded pattern library", slog.String("dir", l.dir), slog.Int("patterns", len(entries)))
	return entries, nil
}

// Patterns loads the library and returns just the patterns
func (l *Library) Patterns() ([]pattern.Pattern, error) {
	entries, err := l.Load()
	if err != nil {
		return nil, err
	}
	return Patterns(entries), nil
}

// Summaries lists the name and voices of every pattern in the library
func (l *Library) Summaries() ([]Summary, error) {
	entries, err := l.Load()
	if err != nil {
		return nil, err
	}
	summaries := make([]Summary, len(entries))
	for i, e := range entries {
		summaries[i] = Summary{
			Path:   e.Path,
			Name:   e.Pattern.Metadata.Name,
			Voices: e.Pattern.UsedVoices(),
		}
	}
	return summaries, nil
}

// Save writes a pattern into the library directory and returns its path
func (l *Library) Save(p pattern.Pattern) (string, error) {
	return converter.WriteMarkdownFile(p, l.dir)
}

// Patterns strips the paths from entries
func Patterns(entries []Entry) []pattern.Pattern {
	patterns := make([]pattern.Pattern, len(entries))
	for i, e := range entries {
		patterns[i] = e.Pattern
	}
	return patterns
}

func isPatternFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".md") && !strings.EqualFold(name, "README.md")
}
