package converter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/james-see/po12toolbox/pkg/pattern"
)

const (
	dateLayout     = "2006-01-02"
	gridLookahead  = 10
	activeCell     = "[●]"
	inactiveCell   = "[ ]"
	frontMatterSep = "---"
)

var (
	soundHeading = regexp.MustCompile(`Sound (\d+)`)
	gridCell     = regexp.MustCompile(`\[(●| )\]`)
	slugInvalid  = regexp.MustCompile(`[^a-z0-9]+`)
)

type frontMatter struct {
	Name           *string  `yaml:"name"`
	Description    string   `yaml:"description"`
	BPM            int      `yaml:"bpm"`
	Genre          []string `yaml:"genre"`
	Difficulty     string   `yaml:"difficulty"`
	Source         string   `yaml:"source"`
	Author         string   `yaml:"author"`
	Date           yamlDate `yaml:"date"`
	PatternNumbers []int    `yaml:"pattern_numbers"`
	ChainSequence  []int    `yaml:"chain_sequence"`
}

// yamlDate accepts a bare or quoted YYYY-MM-DD scalar
type yamlDate struct {
	Time time.Time
}

func (d *yamlDate) UnmarshalYAML(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"'`)
	if s == "" || s == "null" || s == "~" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// ParseMarkdownFile reads a markdown pattern file
func ParseMarkdownFile(filename string) (pattern.Pattern, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return pattern.Pattern{}, fmt.Errorf("failed to read markdown file: %w", err)
	}
	p, err := ParseMarkdown(data)
	if err != nil {
		return pattern.Pattern{}, fmt.Errorf("%s: %w", filepath.Base(filename), err)
	}
	return p, nil
}

// ParseMarkdown parses a pattern from YAML front matter and the voice grids
// that follow "### Name (Sound N)" headings
func ParseMarkdown(data []byte) (pattern.Pattern, error) {
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	fm, err := parseFrontMatter(lines)
	if err != nil {
		return pattern.Pattern{}, err
	}

	meta := pattern.Metadata{
		Name:        *fm.Name,
		Description: fm.Description,
		BPM:         fm.BPM,
		Genre:       fm.Genre,
		Source:      fm.Source,
		Author:      fm.Author,
		Created:     fm.Date.Time,
	}
	if d, ok := pattern.ParseDifficulty(fm.Difficulty); ok {
		meta.Difficulty = d
	}
	if meta.Created.IsZero() {
		meta.Created = pattern.Today()
	}

	number := pattern.MinNumber
	if len(fm.PatternNumbers) > 0 {
		number = fm.PatternNumbers[0]
	}

	p, err := pattern.New(number, parseVoices(lines), meta)
	if err != nil {
		return pattern.Pattern{}, fmt.Errorf("failed to build pattern: %w", err)
	}
	return p, nil
}

func parseFrontMatter(lines []string) (frontMatter, error) {
	var fm frontMatter

	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == frontMatterSep {
			start = i
			break
		}
	}
	if start == -1 {
		return fm, ErrMissingFrontMatter
	}
	end := -1
	for i := start + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontMatterSep {
			end = i
			break
		}
	}
	if end == -1 {
		return fm, ErrMissingFrontMatter
	}

	doc := strings.Join(lines[start+1:end], "\n")
	if err := yaml.Unmarshal([]byte(doc), &fm); err != nil {
		return fm, fmt.Errorf("failed to parse front matter: %w", err)
	}
	if fm.Name == nil {
		return fm, ErrMissingName
	}
	return fm, nil
}

func parseVoices(lines []string) pattern.Voices {
	voices := make(pattern.Voices)
	for i, line := range lines {
		if !strings.HasPrefix(line, "###") {
			continue
		}
		m := soundHeading.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		v, ok := pattern.VoiceFromNumber(n)
		if !ok {
			continue
		}
		if steps := parseStepGrid(lines, i); len(steps) > 0 {
			voices[v] = steps
		}
	}
	return voices
}

// parseStepGrid finds the first grid line within a few lines of a heading
func parseStepGrid(lines []string, start int) []int {
	end := min(start+gridLookahead, len(lines))
	for _, line := range lines[start:end] {
		if !strings.Contains(line, activeCell) && !strings.Contains(line, inactiveCell) {
			continue
		}
		var steps []int
		for i, cell := range gridCell.FindAllString(line, -1) {
			if cell == activeCell {
				steps = append(steps, i+1)
			}
		}
		return steps
	}
	return nil
}

// Slug lowercases a name and replaces every run of other characters with a hyphen
func Slug(name string) string {
	return strings.Trim(slugInvalid.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

// MarkdownFileName returns the file name a pattern is saved under
func MarkdownFileName(p pattern.Pattern) string {
	return Slug(p.Metadata.Name) + ".md"
}

// WriteMarkdownFile writes a pattern into dir and returns the created path
func WriteMarkdownFile(p pattern.Pattern, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	path := filepath.Join(dir, MarkdownFileName(p))
	if err := os.WriteFile(path, GenerateMarkdown(p), 0644); err != nil {
		return "", fmt.Errorf("failed to write markdown file: %w", err)
	}
	return path, nil
}

// GenerateMarkdown renders a pattern as a markdown document
func GenerateMarkdown(p pattern.Pattern) []byte {
	var b bytes.Buffer
	meta := p.Metadata

	writeFrontMatter(&b, p)
	b.WriteString("\n")

	fmt.Fprintf(&b, "# %s\n\n", meta.Name)
	if meta.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", meta.Description)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Pattern %d\n\n", p.Number())
	for _, v := range p.UsedVoices() {
		fmt.Fprintf(&b, "### %s (Sound %d)\n", v.DisplayName(), v.Number())
		b.WriteString("```\n")
		b.WriteString(StepGrid(p.Steps(v)))
		b.WriteString("```\n\n")
	}
	b.WriteString("\n")

	writeInstructions(&b, p)
	writeNotes(&b, meta)
	return b.Bytes()
}

func writeFrontMatter(b *bytes.Buffer, p pattern.Pattern) {
	meta := p.Metadata
	b.WriteString(frontMatterSep + "\n")
	fmt.Fprintf(b, "name: %s\n", strconv.Quote(meta.Name))
	if meta.Description != "" {
		fmt.Fprintf(b, "description: %s\n", strconv.Quote(meta.Description))
	}
	if meta.HasBPM() {
		fmt.Fprintf(b, "bpm: %d\n", meta.BPM)
	}
	if len(meta.Genre) > 0 {
		quoted := make([]string, len(meta.Genre))
		for i, g := range meta.Genre {
			quoted[i] = strconv.Quote(g)
		}
		fmt.Fprintf(b, "genre: [%s]\n", strings.Join(quoted, ", "))
	}
	if meta.Difficulty != pattern.DifficultyNone {
		fmt.Fprintf(b, "difficulty: %s\n", meta.Difficulty)
	}
	if meta.Source != "" {
		fmt.Fprintf(b, "source: %s\n", strconv.Quote(meta.Source))
	}
	if meta.Author != "" {
		fmt.Fprintf(b, "author: %s\n", strconv.Quote(meta.Author))
	}
	created := meta.Created
	if created.IsZero() {
		created = pattern.Today()
	}
	fmt.Fprintf(b, "date: %s\n", created.Format(dateLayout))
	fmt.Fprintf(b, "pattern_numbers: [%d]\n", p.Number())
	b.WriteString("chain_sequence: null\n")
	b.WriteString(frontMatterSep + "\n")
}

// StepGrid renders the step ruler and one grid row for the given active steps
func StepGrid(active []int) string {
	on := make(map[int]bool, len(active))
	for _, s := range active {
		on[s] = true
	}

	var b strings.Builder
	b.WriteString("Step:  ")
	for i := pattern.MinStep; i <= pattern.MaxStep; i++ {
		fmt.Fprintf(&b, "%2d  ", i)
	}
	b.WriteString("\n      ")
	for i := pattern.MinStep; i <= pattern.MaxStep; i++ {
		if on[i] {
			b.WriteString(activeCell + " ")
		} else {
			b.WriteString(inactiveCell + " ")
		}
	}
	b.WriteString("\n")
	return b.String()
}

func writeInstructions(b *bytes.Buffer, p pattern.Pattern) {
	b.WriteString("## PO-12 Programming Instructions\n\n")
	fmt.Fprintf(b, "1. Select Pattern %d on your PO-12\n", p.Number())

	n := 2
	for _, v := range p.UsedVoices() {
		steps := p.Steps(v)
		if len(steps) == 0 {
			continue
		}
		fmt.Fprintf(b, "%d. For %s (button %d):\n", n, v.DisplayName(), v.Number())
		fmt.Fprintf(b, "   - Press and hold button %d\n", v.Number())
		fmt.Fprintf(b, "   - Tap steps: %s\n", JoinSteps(steps))
		n++
	}
}

func writeNotes(b *bytes.Buffer, meta pattern.Metadata) {
	var notes []string
	if meta.HasBPM() {
		notes = append(notes, fmt.Sprintf("Set tempo to %d BPM for authentic feel", meta.BPM))
	}
	if meta.Source != "" {
		notes = append(notes, "Original: "+meta.Source)
	}
	if len(notes) == 0 {
		return
	}
	b.WriteString("\n## Notes\n")
	for _, note := range notes {
		fmt.Fprintf(b, "- %s\n", note)
	}
}

// JoinSteps formats steps as "1, 5, 9"
func JoinSteps(steps []int) string {
	parts := make([]string, len(steps))
	for i, s := range steps {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ", ")
}
