package converter

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/james-see/po12toolbox/pkg/pattern"
)

type jsonPattern struct {
	PatternNumber int          `json:"patternNumber"`
	Metadata      jsonMetadata `json:"metadata"`
	Voices        []jsonVoice  `json:"voices"`
}

type jsonMetadata struct {
	Name        *string  `json:"name"`
	Description string   `json:"description,omitempty"`
	BPM         int      `json:"bpm,omitempty"`
	Genre       []string `json:"genre,omitempty"`
	Difficulty  string   `json:"difficulty,omitempty"`
	Source      string   `json:"source,omitempty"`
	Author      string   `json:"author,omitempty"`
	DateCreated string   `json:"dateCreated"`
}

type jsonVoice struct {
	ShortName   string `json:"shortName"`
	DisplayName string `json:"displayName"`
	PONumber    int    `json:"poNumber"`
	Steps       []int  `json:"steps"`
}

func toJSONPattern(p pattern.Pattern) jsonPattern {
	meta := p.Metadata
	name := meta.Name
	created := meta.Created
	if created.IsZero() {
		created = pattern.Today()
	}

	jp := jsonPattern{
		PatternNumber: p.Number(),
		Metadata: jsonMetadata{
			Name:        &name,
			Description: meta.Description,
			BPM:         meta.BPM,
			Genre:       meta.Genre,
			Difficulty:  string(meta.Difficulty),
			Source:      meta.Source,
			Author:      meta.Author,
			DateCreated: created.Format(dateLayout),
		},
		Voices: make([]jsonVoice, 0, p.VoiceCount()),
	}
	for _, v := range p.UsedVoices() {
		steps := p.Steps(v)
		if steps == nil {
			steps = []int{}
		}
		jp.Voices = append(jp.Voices, jsonVoice{
			ShortName:   v.ShortName(),
			DisplayName: v.DisplayName(),
			PONumber:    v.Number(),
			Steps:       steps,
		})
	}
	return jp
}

func (jp jsonPattern) toPattern() (pattern.Pattern, error) {
	if jp.Metadata.Name == nil {
		return pattern.Pattern{}, ErrMissingName
	}
	meta := pattern.Metadata{
		Name:        *jp.Metadata.Name,
		Description: jp.Metadata.Description,
		BPM:         jp.Metadata.BPM,
		Genre:       jp.Metadata.Genre,
		Source:      jp.Metadata.Source,
		Author:      jp.Metadata.Author,
		Created:     pattern.Today(),
	}
	if d, ok := pattern.ParseDifficulty(jp.Metadata.Difficulty); ok {
		meta.Difficulty = d
	}
	if jp.Metadata.DateCreated != "" {
		t, err := time.Parse(dateLayout, jp.Metadata.DateCreated)
		if err != nil {
			return pattern.Pattern{}, fmt.Errorf("invalid dateCreated %q: %w", jp.Metadata.DateCreated, err)
		}
		meta.Created = t
	}

	voices := make(pattern.Voices, len(jp.Voices))
	for _, jv := range jp.Voices {
		v, ok := pattern.VoiceFromShortName(jv.ShortName)
		if !ok {
			continue
		}
		voices[v] = jv.Steps
	}

	p, err := pattern.New(jp.PatternNumber, voices, meta)
	if err != nil {
		return pattern.Pattern{}, fmt.Errorf("failed to build pattern: %w", err)
	}
	return p, nil
}

// GenerateJSON renders a pattern as an indented JSON object
func GenerateJSON(p pattern.Pattern) ([]byte, error) {
	data, err := json.MarshalIndent(toJSONPattern(p), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return data, nil
}

// GenerateJSONList renders patterns as an indented JSON array
func GenerateJSONList(patterns []pattern.Pattern) ([]byte, error) {
	list := make([]jsonPattern, len(patterns))
	for i, p := range patterns {
		list[i] = toJSONPattern(p)
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return data, nil
}

// ParseJSON decodes a single pattern object. Unknown voices are skipped.
func ParseJSON(data []byte) (pattern.Pattern, error) {
	var jp jsonPattern
	if err := json.Unmarshal(data, &jp); err != nil {
		return pattern.Pattern{}, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return jp.toPattern()
}

// ParseJSONList decodes an array of pattern objects
func ParseJSONList(data []byte) ([]pattern.Pattern, error) {
	var list []jsonPattern
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	patterns := make([]pattern.Pattern, 0, len(list))
	for i, jp := range list {
		p, err := jp.toPattern()
		if err != nil {
			return nil, fmt.Errorf("pattern %d: %w", i, err)
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

// ParseJSONFile reads a JSON file holding one pattern or an array of patterns
func ParseJSONFile(filename string) ([]pattern.Pattern, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}
	if isJSONArray(data) {
		return ParseJSONList(data)
	}
	p, err := ParseJSON(data)
	if err != nil {
		return nil, err
	}
	return []pattern.Pattern{p}, nil
}

func isJSONArray(data []byte) bool {
	for _, c := range data {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}
