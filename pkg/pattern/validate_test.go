package pattern

import (
	"strings"
	"testing"
)

func contains(list []string, substr string) bool {
	for _, s := range list {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		pattern      Pattern
		valid        bool
		wantError    string
		wantWarnings []string
	}{
		{
			name: "clean pattern",
			pattern: MustNew(1, Voices{
				Kick:  {1, 5, 9, 13},
				Snare: {5, 13},
			}, Metadata{Name: "Clean", BPM: 120}),
			valid: true,
		},
		{
			name:      "no voices",
			pattern:   MustNew(1, Voices{}, Metadata{Name: "Empty"}),
			wantError: "no drum voices",
		},
		{
			name:      "duplicate steps",
			pattern:   MustNew(1, Voices{Kick: {1, 1, 5}, Snare: {5}}, Metadata{Name: "Dup"}),
			wantError: "duplicate steps",
		},
		{
			name:      "blank name",
			pattern:   MustNew(1, Voices{Kick: {1}, Snare: {5}}, Metadata{Name: "  "}),
			wantError: "name cannot be blank",
		},
		{
			name:         "fast tempo",
			pattern:      MustNew(1, Voices{Kick: {1}, Snare: {5}}, Metadata{Name: "Fast", BPM: 250}),
			valid:        true,
			wantWarnings: []string{"exceeds PO-12 maximum"},
		},
		{
			name:         "single voice without foundation",
			pattern:      MustNew(1, Voices{Cowbell: {}}, Metadata{Name: "Bell", BPM: 40}),
			valid:        true,
			wantWarnings: []string{"no active steps", "outside typical range", "only uses 1 voice", "no kick or snare"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.pattern)
			if res.Valid() != tt.valid {
				t.Fatalf("Valid() = %v, want %v (errors: %v)", res.Valid(), tt.valid, res.Errors)
			}
			if tt.wantError != "" && !contains(res.Errors, tt.wantError) {
				t.Errorf("Errors = %v, want one containing %q", res.Errors, tt.wantError)
			}
			for _, w := range tt.wantWarnings {
				if !contains(res.Warnings, w) {
					t.Errorf("Warnings = %v, want one containing %q", res.Warnings, w)
				}
			}
		})
	}
}

func TestValidateZeroPattern(t *testing.T) {
	res := Validate(Pattern{})
	if res.Valid() {
		t.Fatal("zero Pattern should be invalid")
	}
	if !contains(res.Errors, "between 1 and 16") {
		t.Errorf("Errors = %v, want pattern number error", res.Errors)
	}
}
