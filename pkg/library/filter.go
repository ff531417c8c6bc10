package library

import (
	"strings"

	"github.com/james-see/po12toolbox/pkg/pattern"
)

// Filter narrows a library listing. Zero fields match everything.
type Filter struct {
	Genre      string
	Difficulty pattern.Difficulty
	MinBPM     int
	MaxBPM     int
}

// IsZero reports whether the filter matches everything
func (f Filter) IsZero() bool {
	return f.Genre == "" && f.Difficulty == pattern.DifficultyNone && f.MinBPM == 0 && f.MaxBPM == 0
}

// Match reports whether a pattern passes the filter. Genre is a
// case-insensitive substring match against any tag. A pattern without a
// BPM never passes a BPM bound.
func (f Filter) Match(p pattern.Pattern) bool {
	meta := p.Metadata

	if f.Genre != "" {
		want := strings.ToLower(f.Genre)
		found := false
		for _, g := range meta.Genre {
			if strings.Contains(strings.ToLower(g), want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.Difficulty != pattern.DifficultyNone && meta.Difficulty != f.Difficulty {
		return false
	}

	if f.MinBPM > 0 && (!meta.HasBPM() || meta.BPM < f.MinBPM) {
		return false
	}
	if f.MaxBPM > 0 && (!meta.HasBPM() || meta.BPM > f.MaxBPM) {
		return false
	}
	return true
}

// Apply returns the entries that pass the filter, keeping their order
func (f Filter) Apply(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if f.Match(e.Pattern) {
			out = append(out, e)
		}
	}
	return out
}
