package pattern

import "sort"

// Pattern limits
const (
	MinStep    = 1
	MaxStep    = 16
	NumSteps   = 16
	MinNumber  = 1
	MaxNumber  = 16
	DefaultBPM = 120
)

// Voices maps each used voice to its active steps (1-16)
type Voices map[Voice][]int

// Clone returns a deep copy
func (vs Voices) Clone() Voices {
	if vs == nil {
		return Voices{}
	}
	c := make(Voices, len(vs))
	for v, steps := range vs {
		c[v] = append([]int(nil), steps...)
	}
	return c
}

// Sorted returns the voices in device order
func (vs Voices) Sorted() []Voice {
	keys := make([]Voice, 0, len(vs))
	for v := range vs {
		keys = append(keys, v)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Pattern is one 16-step rhythm for a PO-12 pattern slot.
// A Pattern is immutable once built; accessors return copies.
type Pattern struct {
	number   int
	voices   Voices
	Metadata Metadata
}

// New builds a Pattern and enforces the slot and step ranges
func New(number int, voices Voices, meta Metadata) (Pattern, error) {
	if number < MinNumber || number > MaxNumber {
		return Pattern{}, &ValidationError{Field: "pattern number", Value: number, Err: ErrInvalidNumber}
	}
	for v, steps := range voices {
		if !v.Valid() {
			return Pattern{}, &ValidationError{Field: "voice", Value: int(v), Err: ErrInvalidVoice}
		}
		for _, s := range steps {
			if s < MinStep || s > MaxStep {
				return Pattern{}, &ValidationError{Field: "step", Value: s, Err: ErrInvalidStep}
			}
		}
	}
	return Pattern{
		number:   number,
		voices:   voices.Clone(),
		Metadata: meta.clone(),
	}, nil
}

// MustNew is like New but panics on error. Intended for fixtures and built-ins.
func MustNew(number int, voices Voices, meta Metadata) Pattern {
	p, err := New(number, voices, meta)
	if err != nil {
		panic(err)
	}
	return p
}

// Number returns the pattern slot (1-16)
func (p Pattern) Number() int {
	return p.number
}

// Voices returns a copy of the voice map
func (p Pattern) Voices() Voices {
	return p.voices.Clone()
}

// UsedVoices returns the voices present in the pattern, in device order
func (p Pattern) UsedVoices() []Voice {
	return p.voices.Sorted()
}

// VoiceCount returns the number of voices present
func (p Pattern) VoiceCount() int {
	return len(p.voices)
}

// HasVoice reports whether the voice is present (even with no steps)
func (p Pattern) HasVoice(v Voice) bool {
	_, ok := p.voices[v]
	return ok
}

// Steps returns a copy of the active steps for a voice, empty when absent
func (p Pattern) Steps(v Voice) []int {
	return append([]int(nil), p.voices[v]...)
}

// TotalNotes sums the step list lengths of every voice
func (p Pattern) TotalNotes() int {
	total := 0
	for _, steps := range p.voices {
		total += len(steps)
	}
	return total
}

// IsEmpty reports whether the pattern has no voices
func (p Pattern) IsEmpty() bool {
	return len(p.voices) == 0
}

// WithVoices returns a new Pattern with the same number and metadata
func (p Pattern) WithVoices(voices Voices) (Pattern, error) {
	return New(p.number, voices, p.Metadata)
}

// WithNumber returns a new Pattern moved to another slot
func (p Pattern) WithNumber(number int) (Pattern, error) {
	return New(number, p.voices, p.Metadata)
}
