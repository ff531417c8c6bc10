package analysis

import (
	"sort"

	"github.com/james-see/po12toolbox/pkg/pattern"
)

// Complexity weights
const (
	voiceComplexityWeight       = 0.3
	densityComplexityWeight     = 0.4
	syncopationComplexityWeight = 0.3
)

// BreakbeatSyncopation is the syncopation a kick+snare pattern needs to
// count as a breakbeat. The classifier is a heuristic.
const BreakbeatSyncopation = 0.3

// TopVoices is how many voices LibraryStatistics ranks
const TopVoices = 5

// strongBeats are the quarter note downbeats of a 16 step bar
var strongBeats = [pattern.NumSteps + 1]bool{1: true, 5: true, 9: true, 13: true}

// PatternStatistics describes a single pattern
type PatternStatistics struct {
	TotalNotes   int
	VoiceCount   int
	ActiveSteps  int
	Density      float64
	StepCoverage float64
	Complexity   float64
	VoiceUsage   map[pattern.Voice]int
}

// BPMRange summarises tempos across a library
type BPMRange struct {
	Min     float64
	Max     float64
	Average float64
}

// LibraryStatistics aggregates a pattern library
type LibraryStatistics struct {
	TotalPatterns     int
	AverageDensity    float64
	AverageComplexity float64
	MostUsedVoices    []pattern.Voice
	BPMRange          BPMRange
}

// Analyze computes the statistics snapshot for one pattern
func Analyze(p pattern.Pattern) PatternStatistics {
	usage := make(map[pattern.Voice]int, p.VoiceCount())
	active := make(stepSet)
	for _, v := range p.UsedVoices() {
		steps := p.Steps(v)
		usage[v] = len(steps)
		for _, s := range steps {
			active[s] = struct{}{}
		}
	}

	return PatternStatistics{
		TotalNotes:   p.TotalNotes(),
		VoiceCount:   p.VoiceCount(),
		ActiveSteps:  len(active),
		Density:      Density(p),
		StepCoverage: float64(len(active)) / float64(pattern.NumSteps),
		Complexity:   Complexity(p),
		VoiceUsage:   usage,
	}
}

// Density is the filled fraction of the voice × step slots of the voices
// in use. A pattern with no voices has density 0.
func Density(p pattern.Pattern) float64 {
	voices := p.VoiceCount()
	if voices == 0 {
		return 0.0
	}
	return float64(p.TotalNotes()) / float64(voices*pattern.NumSteps)
}

// Complexity blends voice count, density and syncopation, clamped to [0,1]
func Complexity(p pattern.Pattern) float64 {
	if p.IsEmpty() {
		return 0.0
	}

	voiceComplexity := float64(p.VoiceCount()) / float64(pattern.NumVoices)
	score := voiceComplexity*voiceComplexityWeight +
		Density(p)*densityComplexityWeight +
		Syncopation(p)*syncopationComplexityWeight

	return clamp(score, 0.0, 1.0)
}

// Syncopation is the share of note events on weak beats. Every voice's
// hits count separately, so a step played by two voices counts twice.
func Syncopation(p pattern.Pattern) float64 {
	total, weak := 0, 0
	for _, v := range p.UsedVoices() {
		for _, s := range p.Steps(v) {
			total++
			if s >= pattern.MinStep && s <= pattern.MaxStep && !strongBeats[s] {
				weak++
			}
		}
	}
	if total == 0 {
		return 0.0
	}
	return float64(weak) / float64(total)
}

// IsFourOnTheFloor reports whether the kick hits all of steps 1, 5, 9 and 13
func IsFourOnTheFloor(p pattern.Pattern) bool {
	if !p.HasVoice(pattern.Kick) {
		return false
	}
	kick := newStepSet(p.Steps(pattern.Kick))
	for step := range strongBeats {
		if strongBeats[step] {
			if _, ok := kick[step]; !ok {
				return false
			}
		}
	}
	return true
}

// HasBreakbeatCharacteristics reports kick and snare with notes plus
// syncopation above BreakbeatSyncopation
func HasBreakbeatCharacteristics(p pattern.Pattern) bool {
	if len(p.Steps(pattern.Kick)) == 0 || len(p.Steps(pattern.Snare)) == 0 {
		return false
	}
	return Syncopation(p) > BreakbeatSyncopation
}

// AnalyzeLibrary aggregates a collection of patterns. An empty library
// yields zero values.
func AnalyzeLibrary(library []pattern.Pattern) LibraryStatistics {
	if len(library) == 0 {
		return LibraryStatistics{MostUsedVoices: []pattern.Voice{}}
	}

	var densitySum, complexitySum float64
	frequency := make(map[pattern.Voice]int)
	var bpms []float64

	for _, p := range library {
		densitySum += Density(p)
		complexitySum += Complexity(p)
		for _, v := range p.UsedVoices() {
			frequency[v]++
		}
		if p.Metadata.HasBPM() {
			bpms = append(bpms, float64(p.Metadata.BPM))
		}
	}

	n := float64(len(library))
	return LibraryStatistics{
		TotalPatterns:     len(library),
		AverageDensity:    densitySum / n,
		AverageComplexity: complexitySum / n,
		MostUsedVoices:    mostUsed(frequency, TopVoices),
		BPMRange:          bpmRange(bpms),
	}
}

// DensityPercentile is the percentage of library patterns with strictly
// lower density than p. An empty library yields 50.
func DensityPercentile(p pattern.Pattern, library []pattern.Pattern) float64 {
	if len(library) == 0 {
		return 50.0
	}
	d := Density(p)
	lower := 0
	for _, other := range library {
		if Density(other) < d {
			lower++
		}
	}
	return float64(lower) / float64(len(library)) * 100.0
}

// mostUsed ranks voices by pattern count, breaking ties by device order
func mostUsed(frequency map[pattern.Voice]int, n int) []pattern.Voice {
	voices := make([]pattern.Voice, 0, len(frequency))
	for v := range frequency {
		voices = append(voices, v)
	}
	sort.Slice(voices, func(i, j int) bool {
		if frequency[voices[i]] != frequency[voices[j]] {
			return frequency[voices[i]] > frequency[voices[j]]
		}
		return voices[i] < voices[j]
	})
	if len(voices) > n {
		voices = voices[:n]
	}
	return voices
}

func bpmRange(bpms []float64) BPMRange {
	if len(bpms) == 0 {
		return BPMRange{}
	}
	r := BPMRange{Min: bpms[0], Max: bpms[0]}
	var sum float64
	for _, b := range bpms {
		r.Min = min(r.Min, b)
		r.Max = max(r.Max, b)
		sum += b
	}
	r.Average = sum / float64(len(bpms))
	return r
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
