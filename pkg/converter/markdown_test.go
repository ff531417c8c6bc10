package converter

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/james-see/po12toolbox/pkg/pattern"
)

const amenMarkdown = `---
name: "Amen Break"
description: "The \"classic\" break"
bpm: 136
genre: ["breakbeat", "jungle"]
difficulty: Advanced
source: "The Winstons"
date: 2024-01-15
pattern_numbers: [4]
chain_sequence: null
---

# Amen Break

## Pattern 4

### Bass Drum (Sound 1)
` + "```" + `
Step:   1   2   3   4   5   6   7   8   9  10  11  12  13  14  15  16
      [●] [ ] [●] [ ] [ ] [ ] [ ] [ ] [ ] [ ] [●] [ ] [ ] [ ] [ ] [ ]
` + "```" + `

### Snare (Sound 2)
` + "```" + `
Step:   1   2   3   4   5   6   7   8   9  10  11  12  13  14  15  16
      [ ] [ ] [ ] [ ] [●] [ ] [ ] [●] [ ] [ ] [ ] [ ] [●] [ ] [ ] [●]
` + "```" + `

### Cowbell (Sound 10)
` + "```" + `
Step:   1   2   3   4   5   6   7   8   9  10  11  12  13  14  15  16
      [ ] [ ] [ ] [ ] [ ] [ ] [ ] [ ] [ ] [ ] [ ] [ ] [ ] [ ] [ ] [ ]
` + "```" + `
`

func TestParseMarkdown(t *testing.T) {
	p, err := ParseMarkdown([]byte(amenMarkdown))
	if err != nil {
		t.Fatalf("ParseMarkdown() error = %v", err)
	}

	if p.Number() != 4 {
		t.Errorf("Number() = %d, want 4", p.Number())
	}
	meta := p.Metadata
	if meta.Name != "Amen Break" || meta.Description != `The "classic" break` {
		t.Errorf("Name/Description = %q / %q", meta.Name, meta.Description)
	}
	if meta.BPM != 136 || meta.Difficulty != pattern.DifficultyAdvanced {
		t.Errorf("BPM/Difficulty = %d / %q", meta.BPM, meta.Difficulty)
	}
	if !reflect.DeepEqual(meta.Genre, []string{"breakbeat", "jungle"}) {
		t.Errorf("Genre = %v", meta.Genre)
	}
	if !meta.Created.Equal(time2024()) {
		t.Errorf("Created = %v, want %v", meta.Created, time2024())
	}

	want := pattern.Voices{
		pattern.Kick:  {1, 3, 11},
		pattern.Snare: {5, 8, 13, 16},
	}
	if !reflect.DeepEqual(p.Voices(), want) {
		t.Errorf("Voices() = %v, want %v", p.Voices(), want)
	}
}

func TestParseMarkdownDefaults(t *testing.T) {
	doc := "---\nname: Minimal\n---\n\n### Snare (Sound 2)\n```\n      [●] [ ]\n```\n"
	p, err := ParseMarkdown([]byte(doc))
	if err != nil {
		t.Fatalf("ParseMarkdown() error = %v", err)
	}
	if p.Number() != 1 {
		t.Errorf("Number() = %d, want default 1", p.Number())
	}
	if p.Metadata.HasBPM() || p.Metadata.Difficulty != pattern.DifficultyNone {
		t.Errorf("unexpected metadata %+v", p.Metadata)
	}
	if p.Metadata.Created.IsZero() {
		t.Error("Created should default to today")
	}
	if !reflect.DeepEqual(p.Steps(pattern.Snare), []int{1}) {
		t.Errorf("Steps(Snare) = %v", p.Steps(pattern.Snare))
	}
}

func TestParseMarkdownErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"no front matter", "# Just a title\n", ErrMissingFrontMatter},
		{"unterminated front matter", "---\nname: x\n", ErrMissingFrontMatter},
		{"no name", "---\nbpm: 120\n---\n", ErrMissingName},
		{"pattern number out of range", "---\nname: x\npattern_numbers: [20]\n---\n", pattern.ErrInvalidNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMarkdown([]byte(tt.doc))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseMarkdown() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := ParseMarkdown([]byte("---\nname: x\ndate: yesterday\n---\n")); err == nil {
		t.Error("ParseMarkdown() should reject an invalid date")
	}
}

func TestGenerateMarkdown(t *testing.T) {
	p := testPattern(t)
	doc := string(GenerateMarkdown(p))

	for _, want := range []string{
		"name: \"Basic Rock\"\n",
		"bpm: 110\n",
		"genre: [\"rock\"]\n",
		"difficulty: beginner\n",
		"date: 2024-01-15\n",
		"pattern_numbers: [3]\n",
		"chain_sequence: null\n",
		"# Basic Rock\n",
		"## Pattern 3\n",
		"### Bass Drum (Sound 1)\n",
		"      [●] [ ] [ ] [ ] [●] [ ] [ ] [ ] [●] [ ] [ ] [ ] [●] [ ] [ ] [ ] \n",
		"1. Select Pattern 3 on your PO-12\n",
		"2. For Bass Drum (button 1):\n",
		"   - Tap steps: 1, 5, 9, 13\n",
		"- Set tempo to 110 BPM for authentic feel\n",
		"- Original: Pocket Operations\n",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("GenerateMarkdown() missing %q", want)
		}
	}

	// voices appear in device order
	if strings.Index(doc, "(Sound 1)") > strings.Index(doc, "(Sound 3)") {
		t.Error("voices not in device order")
	}
}

func TestMarkdownRoundTrip(t *testing.T) {
	p := testPattern(t)
	back, err := ParseMarkdown(GenerateMarkdown(p))
	if err != nil {
		t.Fatalf("ParseMarkdown() error = %v", err)
	}
	if !reflect.DeepEqual(back.Voices(), p.Voices()) {
		t.Errorf("voices = %v, want %v", back.Voices(), p.Voices())
	}
	if back.Number() != p.Number() || back.Metadata.Source != p.Metadata.Source {
		t.Errorf("metadata = %+v", back.Metadata)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Basic Rock", "basic-rock"},
		{"Amen Break (Part 1)!", "amen-break-part-1"},
		{"  --Hip Hop--  ", "hip-hop"},
		{"Über Beat", "ber-beat"},
	}
	for _, tt := range tests {
		if got := Slug(tt.name); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestStepGrid(t *testing.T) {
	grid := StepGrid([]int{1, 16})
	lines := strings.Split(strings.TrimSuffix(grid, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("StepGrid() lines = %d, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Step:   1   2") {
		t.Errorf("ruler = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "      [●] [ ]") || !strings.HasSuffix(lines[1], "[●] ") {
		t.Errorf("grid = %q", lines[1])
	}
}
