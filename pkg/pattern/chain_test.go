package pattern

import (
	"errors"
	"testing"
)

func TestNewChain(t *testing.T) {
	p1 := MustNew(1, Voices{Kick: {1, 7, 11}}, Metadata{Name: "Amen A", BPM: 136})
	p2 := MustNew(2, Voices{Kick: {1, 3, 11}}, Metadata{Name: "Amen B"})

	chain, err := NewChain("Amen", []Pattern{p1, p2}, []int{1, 1, 2}, p1.Metadata)
	if err != nil {
		t.Fatalf("NewChain() error = %v", err)
	}
	if chain.TotalBars() != 3 {
		t.Errorf("TotalBars() = %d, want 3", chain.TotalBars())
	}
	if chain.SequenceString() != "1,1,2" {
		t.Errorf("SequenceString() = %q, want %q", chain.SequenceString(), "1,1,2")
	}
	seq := chain.PatternsInSequence()
	if len(seq) != 3 || seq[2].Metadata.Name != "Amen B" {
		t.Errorf("PatternsInSequence() = %d patterns", len(seq))
	}
	if _, ok := chain.Pattern(9); ok {
		t.Error("Pattern(9) should not be found")
	}
}

func TestNewChainErrors(t *testing.T) {
	p1 := MustNew(1, Voices{Kick: {1}}, Metadata{Name: "One"})
	meta := Metadata{Name: "Chain"}

	tests := []struct {
		name     string
		chain    string
		patterns []Pattern
		sequence []int
		wantErr  error
	}{
		{"blank name", " ", []Pattern{p1}, []int{1}, ErrBlankName},
		{"no patterns", "c", nil, []int{1}, ErrEmptyChain},
		{"no sequence", "c", []Pattern{p1}, nil, ErrEmptySequence},
		{"missing reference", "c", []Pattern{p1}, []int{1, 2}, ErrMissingChainRef},
		{"shared slot", "c", []Pattern{p1, MustNew(1, Voices{Snare: {5}}, Metadata{Name: "Also One"})}, []int{1}, ErrDuplicateSlot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChain(tt.chain, tt.patterns, tt.sequence, meta)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewChain() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewChainFromPatterns(t *testing.T) {
	p1 := MustNew(3, Voices{Kick: {1}}, Metadata{Name: "Three", BPM: 100})
	p2 := MustNew(5, Voices{Snare: {5}}, Metadata{Name: "Five", BPM: 140})

	chain, err := NewChainFromPatterns("", []Pattern{p1, p2})
	if err != nil {
		t.Fatalf("NewChainFromPatterns() error = %v", err)
	}
	if chain.Name != "Three" {
		t.Errorf("Name = %q, want first pattern name", chain.Name)
	}
	if chain.SequenceString() != "3,5" {
		t.Errorf("SequenceString() = %q, want %q", chain.SequenceString(), "3,5")
	}
	if chain.Metadata.BPM != 100 {
		t.Errorf("Metadata.BPM = %d, want first pattern BPM", chain.Metadata.BPM)
	}
}

func TestChainPatternsInSameSlot(t *testing.T) {
	intro := MustNew(1, Voices{Kick: {1, 9}}, Metadata{Name: "Intro"})
	verse := MustNew(1, Voices{Snare: {5, 13}}, Metadata{Name: "Verse"})

	if _, err := NewChainFromPatterns("", []Pattern{intro, verse}); !errors.Is(err, ErrDuplicateSlot) {
		t.Fatalf("NewChainFromPatterns() error = %v, want ErrDuplicateSlot", err)
	}

	slotted, moved, err := AssignSlots([]Pattern{intro, verse})
	if err != nil {
		t.Fatalf("AssignSlots() error = %v", err)
	}
	if !moved {
		t.Error("AssignSlots() should report that slots were reassigned")
	}

	chain, err := NewChainFromPatterns("", slotted)
	if err != nil {
		t.Fatalf("NewChainFromPatterns() error = %v", err)
	}
	if chain.SequenceString() != "1,2" {
		t.Errorf("SequenceString() = %q, want %q", chain.SequenceString(), "1,2")
	}
	played := chain.PatternsInSequence()
	if len(played) != 2 || played[0].Metadata.Name != "Intro" || played[1].Metadata.Name != "Verse" {
		t.Errorf("PatternsInSequence() = %v, want Intro then Verse", played)
	}
}

func TestAssignSlotsDistinct(t *testing.T) {
	a := MustNew(3, Voices{Kick: {1}}, Metadata{Name: "A"})
	b := MustNew(7, Voices{Kick: {1}}, Metadata{Name: "B"})

	out, moved, err := AssignSlots([]Pattern{a, b})
	if err != nil || moved {
		t.Fatalf("AssignSlots() = moved %v, err %v; want unchanged", moved, err)
	}
	if out[0].Number() != 3 || out[1].Number() != 7 {
		t.Errorf("AssignSlots() slots = %d, %d; want 3, 7", out[0].Number(), out[1].Number())
	}
}

func TestAssignSlotsTooMany(t *testing.T) {
	patterns := make([]Pattern, MaxNumber+1)
	for i := range patterns {
		patterns[i] = MustNew(1, Voices{Kick: {1}}, Metadata{Name: "same"})
	}
	if _, _, err := AssignSlots(patterns); !errors.Is(err, ErrInvalidNumber) {
		t.Errorf("AssignSlots() error = %v, want ErrInvalidNumber", err)
	}
}

func TestTemplates(t *testing.T) {
	if len(Templates()) != 5 {
		t.Fatalf("Templates() returned %d, want 5", len(Templates()))
	}
	if len(TemplatesByCategory("foundation")) != 1 {
		t.Errorf("foundation templates = %d, want 1", len(TemplatesByCategory("foundation")))
	}
	if len(TemplatesByDifficulty(DifficultyIntermediate)) != 1 {
		t.Errorf("intermediate templates = %d, want 1", len(TemplatesByDifficulty(DifficultyIntermediate)))
	}

	tmpl, ok := TemplateByID("basic-techno")
	if !ok {
		t.Fatal("TemplateByID(basic-techno) not found")
	}
	p, err := tmpl.Pattern(2, Metadata{})
	if err != nil {
		t.Fatalf("Pattern() error = %v", err)
	}
	if p.Metadata.Name != "Basic Techno" || p.Metadata.BPM != 128 {
		t.Errorf("Pattern() metadata = %+v", p.Metadata)
	}
	if p.Metadata.Source != "Template: Basic Techno" {
		t.Errorf("Source = %q", p.Metadata.Source)
	}
	if !p.HasVoice(HandClap) || p.Number() != 2 {
		t.Error("Pattern() should carry template voices and number")
	}

	// Callers can not corrupt the built-ins
	tmpl.Voices[Kick][0] = 16
	again, _ := TemplateByID("basic-techno")
	if again.Voices[Kick][0] != 1 {
		t.Error("Templates() should return copies")
	}
}
