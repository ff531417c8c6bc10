package analysis

import (
	"math"
	"testing"

	"github.com/james-see/po12toolbox/pkg/pattern"
)

const epsilon = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func mk(voices pattern.Voices) pattern.Pattern {
	return pattern.MustNew(1, voices, pattern.Metadata{Name: "test"})
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b []int
		want float64
	}{
		{"both empty", nil, nil, 1.0},
		{"one empty", []int{1}, nil, 0.0},
		{"identical", []int{1, 5, 9}, []int{9, 5, 1}, 1.0},
		{"half overlap", []int{1, 5}, []int{5, 9}, 1.0 / 3.0},
		{"disjoint", []int{1}, []int{2}, 0.0},
		{"duplicates collapse", []int{1, 1, 5}, []int{1, 5}, 1.0},
		{"four on the floor vs shifted", []int{1, 5, 9, 13}, []int{1, 5, 11, 13}, 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Jaccard(tt.a, tt.b); !approx(got, tt.want) {
				t.Errorf("Jaccard() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSimilaritySelf(t *testing.T) {
	p := mk(pattern.Voices{
		pattern.Kick:     {1, 5, 9, 13},
		pattern.Snare:    {5, 13},
		pattern.ClosedHH: {1, 3, 5, 7, 9, 11, 13, 15},
	})
	if got := Similarity(p, p, DefaultWeights()); !approx(got, 1.0) {
		t.Errorf("Similarity(p, p) = %v, want 1.0", got)
	}
}

func TestSimilarityEmpty(t *testing.T) {
	empty := mk(pattern.Voices{})
	full := mk(pattern.Voices{pattern.Kick: {1}})

	if got := Similarity(empty, empty, DefaultWeights()); !approx(got, 1.0) {
		t.Errorf("Similarity(empty, empty) = %v, want 1.0", got)
	}
	if got := Similarity(empty, full, DefaultWeights()); !approx(got, 0.0) {
		t.Errorf("Similarity(empty, full) = %v, want 0.0", got)
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	a := mk(pattern.Voices{pattern.Kick: {1, 5, 9, 13}, pattern.Snare: {5, 13}})
	b := mk(pattern.Voices{pattern.Kick: {1, 9}, pattern.HandClap: {5, 13}, pattern.ClosedHH: {3, 7}})

	ab := Similarity(a, b, DefaultWeights())
	ba := Similarity(b, a, DefaultWeights())
	if !approx(ab, ba) {
		t.Errorf("Similarity not symmetric: %v vs %v", ab, ba)
	}
	if ab < 0 || ab > 1 {
		t.Errorf("Similarity() = %v, out of [0,1]", ab)
	}
}

func TestSimilarityComponents(t *testing.T) {
	// Kick shared with overlap 2/4, snare only in a
	a := mk(pattern.Voices{pattern.Kick: {1, 5, 9, 13}, pattern.Snare: {5, 13}})
	b := mk(pattern.Voices{pattern.Kick: {1, 9}})

	if got := VoiceSimilarity(a, b); !approx(got, 0.5) {
		t.Errorf("VoiceSimilarity() = %v, want 0.5", got)
	}
	if got := StepSimilarity(a, b); !approx(got, 0.5) {
		t.Errorf("StepSimilarity() = %v, want 0.5", got)
	}
	if got := RhythmSimilarity(a, b); !approx(got, 0.5) {
		t.Errorf("RhythmSimilarity() = %v, want 0.5", got)
	}
	if got := Similarity(a, b, DefaultWeights()); !approx(got, 0.5) {
		t.Errorf("Similarity() = %v, want 0.5", got)
	}
}

func TestStepSimilarityShiftedKick(t *testing.T) {
	a := mk(pattern.Voices{pattern.Kick: {1, 5, 9, 13}})
	b := mk(pattern.Voices{pattern.Kick: {1, 5, 11, 13}})
	if got := StepSimilarity(a, b); !approx(got, 0.75) {
		t.Errorf("StepSimilarity() = %v, want 0.75", got)
	}
}

func TestSimilarityUnnormalizedWeights(t *testing.T) {
	p := mk(pattern.Voices{pattern.Kick: {1, 9}, pattern.Snare: {5, 13}})
	w := SimilarityWeights{Voice: 0.5, Step: 0.5, Rhythm: 0.5}
	if got := Similarity(p, p, w); !approx(got, 1.5) {
		t.Errorf("Similarity() = %v, want 1.5", got)
	}
}

func TestStepSimilarityNoCommonVoices(t *testing.T) {
	a := mk(pattern.Voices{pattern.Kick: {1}})
	b := mk(pattern.Voices{pattern.Snare: {1}})
	if got := StepSimilarity(a, b); got != 0.0 {
		t.Errorf("StepSimilarity() = %v, want 0", got)
	}
	// Same step grid even though the voices differ
	if got := RhythmSimilarity(a, b); !approx(got, 1.0) {
		t.Errorf("RhythmSimilarity() = %v, want 1", got)
	}
}

func TestStepSimilarityEmptyVoices(t *testing.T) {
	a := mk(pattern.Voices{pattern.Cowbell: {}})
	b := mk(pattern.Voices{pattern.Cowbell: {}})
	if got := StepSimilarity(a, b); !approx(got, 1.0) {
		t.Errorf("StepSimilarity() = %v, want 1", got)
	}
}

func TestDensitySimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b pattern.Pattern
		want float64
	}{
		{"both silent", mk(pattern.Voices{}), mk(pattern.Voices{pattern.Kick: {}}), 1.0},
		{"one silent", mk(pattern.Voices{}), mk(pattern.Voices{pattern.Kick: {1}}), 0.0},
		{"half", mk(pattern.Voices{pattern.Kick: {1, 5}}), mk(pattern.Voices{pattern.Kick: {1, 5, 9, 13}}), 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DensitySimilarity(tt.a, tt.b); !approx(got, tt.want) {
				t.Errorf("DensitySimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeightsIsValid(t *testing.T) {
	tests := []struct {
		name string
		w    SimilarityWeights
		want bool
	}{
		{"defaults", DefaultWeights(), true},
		{"within tolerance", SimilarityWeights{0.3333, 0.3333, 0.3334}, true},
		{"sum too large", SimilarityWeights{0.5, 0.5, 0.5}, false},
		{"negative", SimilarityWeights{1.2, -0.2, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.w.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindSimilar(t *testing.T) {
	target := mk(pattern.Voices{pattern.Kick: {1, 5, 9, 13}, pattern.Snare: {5, 13}})
	exact := pattern.MustNew(1, target.Voices(), pattern.Metadata{Name: "exact"})
	near := pattern.MustNew(2, pattern.Voices{pattern.Kick: {1, 5, 9, 13}}, pattern.Metadata{Name: "near"})
	far := pattern.MustNew(3, pattern.Voices{pattern.Noise: {2}}, pattern.Metadata{Name: "far"})
	twin := pattern.MustNew(4, target.Voices(), pattern.Metadata{Name: "twin"})

	results := FindSimilar(target, []pattern.Pattern{far, near, exact, twin}, DefaultThreshold, DefaultWeights())

	if len(results) != 3 {
		t.Fatalf("FindSimilar() returned %d results, want 3", len(results))
	}
	wantOrder := []string{"exact", "twin", "near"}
	for i, name := range wantOrder {
		if results[i].Pattern.Metadata.Name != name {
			t.Errorf("results[%d] = %q, want %q", i, results[i].Pattern.Metadata.Name, name)
		}
	}
	for i := 1; i < len(results); i++ {
		if results[i].Similarity > results[i-1].Similarity {
			t.Errorf("results not sorted at %d", i)
		}
	}
	for _, r := range results {
		if r.Similarity < DefaultThreshold {
			t.Errorf("%q scored %v below threshold", r.Pattern.Metadata.Name, r.Similarity)
		}
	}
}

func TestFindSimilarEmptyLibrary(t *testing.T) {
	target := mk(pattern.Voices{pattern.Kick: {1}})
	if got := FindSimilar(target, nil, 0, DefaultWeights()); len(got) != 0 {
		t.Errorf("FindSimilar() = %v, want empty", got)
	}
}
