package library

import (
	"fmt"

	"github.com/james-see/po12toolbox/pkg/converter"
	"github.com/james-see/po12toolbox/pkg/pattern"
)

// LoadVoice reads the steps one voice plays in a pattern file.
// It reports false when the pattern does not use that voice.
func LoadVoice(path string, v pattern.Voice) ([]int, bool, error) {
	p, err := converter.ParseMarkdownFile(path)
	if err != nil {
		return nil, false, err
	}
	if !p.HasVoice(v) {
		return nil, false, nil
	}
	return p.Steps(v), true, nil
}

// CopyVoice copies the steps of src's voice onto dst's target voice and
// returns the updated voices. dst is not modified.
func CopyVoice(src pattern.Pattern, from pattern.Voice, dst pattern.Voices, to pattern.Voice) (pattern.Voices, error) {
	if !src.HasVoice(from) {
		return nil, fmt.Errorf("source pattern %q has no %s voice", src.Metadata.Name, from.DisplayName())
	}
	if !to.Valid() {
		return nil, &pattern.ValidationError{Field: "voice", Value: int(to), Err: pattern.ErrInvalidVoice}
	}
	out := dst.Clone()
	out[to] = src.Steps(from)
	return out, nil
}
