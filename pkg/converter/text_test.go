package converter

import (
	"reflect"
	"testing"

	"github.com/james-see/po12toolbox/pkg/pattern"
)

func TestParseTextLine(t *testing.T) {
	tests := []struct {
		line      string
		wantVoice pattern.Voice
		wantSteps []int
		wantOK    bool
	}{
		{"kick: 1,5,9,13", pattern.Kick, []int{1, 5, 9, 13}, true},
		{"snare: 13 5", pattern.Snare, []int{5, 13}, true},
		{"  CLOSED-HH : 1, 3,3 ,1", pattern.ClosedHH, []int{1, 3}, true},
		{"cowbell:", pattern.Cowbell, []int{}, true},
		{"# kick: 1", 0, nil, false},
		{"", 0, nil, false},
		{"kick 1 5", 0, nil, false},
		{"banjo: 1", 0, nil, false},
		{"kick: 0", 0, nil, false},
		{"kick: 17", 0, nil, false},
		{"kick: one", 0, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			v, steps, ok := ParseTextLine(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("ParseTextLine(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if v != tt.wantVoice || !reflect.DeepEqual(steps, tt.wantSteps) {
				t.Errorf("ParseTextLine(%q) = %v %v, want %v %v", tt.line, v, steps, tt.wantVoice, tt.wantSteps)
			}
		})
	}
}

func TestParseText(t *testing.T) {
	text := "# groove\nkick: 1,9\nnonsense\nsnare: 5 13\nkick: 1,5,9,13\n"
	want := pattern.Voices{
		pattern.Kick:  {1, 5, 9, 13},
		pattern.Snare: {5, 13},
	}
	if got := ParseText(text); !reflect.DeepEqual(got, want) {
		t.Errorf("ParseText() = %v, want %v", got, want)
	}
}

func TestTextNotation(t *testing.T) {
	vs := pattern.Voices{
		pattern.Snare: {5, 13},
		pattern.Kick:  {1, 5, 9, 13},
	}
	want := "kick: 1, 5, 9, 13\nsnare: 5, 13"
	if got := TextNotation(vs); got != want {
		t.Errorf("TextNotation() = %q, want %q", got, want)
	}
	if back := ParseText(TextNotation(vs)); !reflect.DeepEqual(back, vs) {
		t.Errorf("ParseText(TextNotation()) = %v", back)
	}
}
