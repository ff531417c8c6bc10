package converter

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/james-see/po12toolbox/pkg/pattern"
)

var stepSeparators = regexp.MustCompile(`[,\s]+`)

// ParseTextLine parses "voice: 1,5 9" into a voice and its sorted, deduplicated
// steps. Blank lines, comments and malformed lines report false.
func ParseTextLine(line string) (pattern.Voice, []int, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return 0, nil, false
	}

	name, stepsStr, found := strings.Cut(line, ":")
	if !found {
		return 0, nil, false
	}
	v, ok := pattern.VoiceFromShortName(name)
	if !ok {
		return 0, nil, false
	}

	seen := make(map[int]bool)
	steps := []int{}
	for _, part := range stepSeparators.Split(strings.TrimSpace(stepsStr), -1) {
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < pattern.MinStep || n > pattern.MaxStep {
			return 0, nil, false
		}
		if !seen[n] {
			seen[n] = true
			steps = append(steps, n)
		}
	}
	sort.Ints(steps)
	return v, steps, true
}

// ParseText parses one voice per line. A later line for the same voice wins.
func ParseText(text string) pattern.Voices {
	voices := make(pattern.Voices)
	for _, line := range strings.Split(text, "\n") {
		if v, steps, ok := ParseTextLine(line); ok {
			voices[v] = steps
		}
	}
	return voices
}

// TextNotation renders voices as text notation lines in device order
func TextNotation(voices pattern.Voices) string {
	lines := make([]string, 0, len(voices))
	for _, v := range voices.Sorted() {
		lines = append(lines, v.ShortName()+": "+JoinSteps(voices[v]))
	}
	return strings.Join(lines, "\n")
}
