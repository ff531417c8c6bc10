package pattern

import (
	"fmt"
	"strings"
)

// Device tempo limits
const (
	MinTypicalBPM = 60
	MaxTypicalBPM = 300
	MaxDeviceBPM  = 206
)

// ValidationResult collects problems found in a pattern
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether no errors were found
func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings reports whether any warnings were found
func (r ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Validate checks a pattern for correctness and common mistakes.
// Range violations cannot occur for patterns built with New but are
// still reported so zero values are caught.
func Validate(p Pattern) ValidationResult {
	var res ValidationResult

	if p.number < MinNumber || p.number > MaxNumber {
		res.Errors = append(res.Errors, fmt.Sprintf("Pattern number must be between 1 and 16, got: %d", p.number))
	}

	if len(p.voices) == 0 {
		res.Errors = append(res.Errors, "Pattern has no drum voices programmed")
	}

	for _, v := range p.UsedVoices() {
		steps := p.voices[v]
		if len(steps) == 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Voice '%s' has no active steps", v.DisplayName()))
		}

		seen := make(map[int]bool, len(steps))
		duplicate := false
		for _, s := range steps {
			if s < MinStep || s > MaxStep {
				res.Errors = append(res.Errors, fmt.Sprintf("Voice '%s' has invalid step: %d (must be 1-16)", v.DisplayName(), s))
			}
			if seen[s] {
				duplicate = true
			}
			seen[s] = true
		}
		if duplicate {
			res.Errors = append(res.Errors, fmt.Sprintf("Voice '%s' has duplicate steps", v.DisplayName()))
		}
	}

	if strings.TrimSpace(p.Metadata.Name) == "" {
		res.Errors = append(res.Errors, "Pattern name cannot be blank")
	}

	if bpm := p.Metadata.BPM; p.Metadata.HasBPM() {
		if bpm < MinTypicalBPM || bpm > MaxTypicalBPM {
			res.Warnings = append(res.Warnings, fmt.Sprintf("BPM %d is outside typical range (60-300)", bpm))
		}
		if bpm > MaxDeviceBPM {
			res.Warnings = append(res.Warnings, fmt.Sprintf("BPM %d exceeds PO-12 maximum of %d", bpm, MaxDeviceBPM))
		}
	}

	if len(p.voices) == 1 {
		res.Warnings = append(res.Warnings, "Pattern only uses 1 voice - consider adding more for fuller sound")
	}

	if !p.HasVoice(Kick) && !p.HasVoice(Snare) {
		res.Warnings = append(res.Warnings, "Pattern has no kick or snare - might lack rhythmic foundation")
	}

	return res
}
