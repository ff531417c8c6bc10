// Package analysis provides similarity scoring and statistics for drum patterns
package analysis

import (
	"math"
	"sort"

	"github.com/james-see/po12toolbox/pkg/pattern"
)

// DefaultThreshold is the minimum score FindSimilar keeps by default
const DefaultThreshold = 0.5

// SimilarityWeights weights the three similarity components.
// Weights should sum to 1.0; Similarity does not normalise them.
type SimilarityWeights struct {
	Voice  float64 `toml:"voice_weight" validate:"gte=0"`
	Step   float64 `toml:"step_weight" validate:"gte=0"`
	Rhythm float64 `toml:"rhythm_weight" validate:"gte=0"`
}

// DefaultWeights returns voice=0.4, step=0.4, rhythm=0.2
func DefaultWeights() SimilarityWeights {
	return SimilarityWeights{Voice: 0.4, Step: 0.4, Rhythm: 0.2}
}

// IsValid reports whether the weights are non-negative and sum to 1.0
// within a 0.001 tolerance
func (w SimilarityWeights) IsValid() bool {
	if w.Voice < 0 || w.Step < 0 || w.Rhythm < 0 {
		return false
	}
	return math.Abs(w.Voice+w.Step+w.Rhythm-1.0) < 0.001
}

// SimilarityResult pairs a library pattern with its score
type SimilarityResult struct {
	Pattern    pattern.Pattern
	Similarity float64
}

// Similarity combines voice, step and rhythm similarity with the given weights
func Similarity(a, b pattern.Pattern, w SimilarityWeights) float64 {
	voiceSim := VoiceSimilarity(a, b)
	stepSim := StepSimilarity(a, b)
	rhythmSim := RhythmSimilarity(a, b)

	return voiceSim*w.Voice + stepSim*w.Step + rhythmSim*w.Rhythm
}

// VoiceSimilarity is the Jaccard index of the voice sets, ignoring steps
func VoiceSimilarity(a, b pattern.Pattern) float64 {
	if a.IsEmpty() && b.IsEmpty() {
		return 1.0
	}
	if a.IsEmpty() || b.IsEmpty() {
		return 0.0
	}

	common := 0
	for _, v := range a.UsedVoices() {
		if b.HasVoice(v) {
			common++
		}
	}
	union := a.VoiceCount() + b.VoiceCount() - common
	return float64(common) / float64(union)
}

// StepSimilarity averages, over the voices both patterns use, the overlap
// |A∩B| / max(|A|,|B|) of their step sets
func StepSimilarity(a, b pattern.Pattern) float64 {
	if a.IsEmpty() && b.IsEmpty() {
		return 1.0
	}
	if a.IsEmpty() || b.IsEmpty() {
		return 0.0
	}

	var sum float64
	common := 0
	for _, v := range a.UsedVoices() {
		if !b.HasVoice(v) {
			continue
		}
		common++
		sa := newStepSet(a.Steps(v))
		sb := newStepSet(b.Steps(v))

		maxLen := max(len(sa), len(sb))
		if maxLen == 0 {
			sum += 1.0
			continue
		}
		sum += float64(sa.intersect(sb)) / float64(maxLen)
	}

	if common == 0 {
		return 0.0
	}
	return sum / float64(common)
}

// RhythmSimilarity compares which steps are hit by any voice
func RhythmSimilarity(a, b pattern.Pattern) float64 {
	if a.IsEmpty() && b.IsEmpty() {
		return 1.0
	}
	if a.IsEmpty() || b.IsEmpty() {
		return 0.0
	}
	return jaccard(rhythmSignature(a), rhythmSignature(b))
}

// DensitySimilarity is min(notesA, notesB) / max(notesA, notesB)
func DensitySimilarity(a, b pattern.Pattern) float64 {
	countA := a.TotalNotes()
	countB := b.TotalNotes()
	if countA == 0 && countB == 0 {
		return 1.0
	}
	return float64(min(countA, countB)) / float64(max(countA, countB))
}

// Jaccard returns |A∩B| / |A∪B| treating both step lists as sets.
// Two empty sets score 1.0, one empty set scores 0.0.
func Jaccard(a, b []int) float64 {
	return jaccard(newStepSet(a), newStepSet(b))
}

// FindSimilar scores every library pattern against target, keeps those at
// or above threshold and sorts them by descending score. Ties keep library
// order.
func FindSimilar(target pattern.Pattern, library []pattern.Pattern, threshold float64, w SimilarityWeights) []SimilarityResult {
	results := make([]SimilarityResult, 0, len(library))
	for _, p := range library {
		score := Similarity(target, p, w)
		if score >= threshold {
			results = append(results, SimilarityResult{Pattern: p, Similarity: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	return results
}

type stepSet map[int]struct{}

func newStepSet(steps []int) stepSet {
	s := make(stepSet, len(steps))
	for _, step := range steps {
		s[step] = struct{}{}
	}
	return s
}

func (s stepSet) intersect(o stepSet) int {
	n := 0
	for step := range s {
		if _, ok := o[step]; ok {
			n++
		}
	}
	return n
}

func jaccard(a, b stepSet) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	inter := a.intersect(b)
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

func rhythmSignature(p pattern.Pattern) stepSet {
	sig := make(stepSet)
	for _, v := range p.UsedVoices() {
		for _, step := range p.Steps(v) {
			sig[step] = struct{}{}
		}
	}
	return sig
}
