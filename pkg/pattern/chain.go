package pattern

import (
	"fmt"
	"strconv"
	"strings"
)

// Chain is a sequence of patterns played back to back, e.g. a two bar
// break programmed as patterns 1 and 2 and chained as "1,2".
type Chain struct {
	Name     string
	Patterns []Pattern
	Sequence []int // pattern numbers in play order
	Metadata Metadata
}

// NewChain validates and builds a chain
func NewChain(name string, patterns []Pattern, sequence []int, meta Metadata) (Chain, error) {
	if strings.TrimSpace(name) == "" {
		return Chain{}, fmt.Errorf("chain: %w", ErrBlankName)
	}
	if len(patterns) == 0 {
		return Chain{}, ErrEmptyChain
	}
	if len(sequence) == 0 {
		return Chain{}, ErrEmptySequence
	}

	known := make(map[int]bool, len(patterns))
	for _, p := range patterns {
		if known[p.Number()] {
			return Chain{}, &ValidationError{Field: "chained pattern slot", Value: p.Number(), Err: ErrDuplicateSlot}
		}
		known[p.Number()] = true
	}
	for _, n := range sequence {
		if !known[n] {
			return Chain{}, &ValidationError{Field: "chain sequence entry", Value: n, Err: ErrMissingChainRef}
		}
	}

	return Chain{
		Name:     name,
		Patterns: append([]Pattern(nil), patterns...),
		Sequence: append([]int(nil), sequence...),
		Metadata: meta.clone(),
	}, nil
}

// NewChainFromPatterns chains the patterns in the order given. The chain
// takes its metadata from the first pattern. Patterns must sit in distinct
// slots; see AssignSlots.
func NewChainFromPatterns(name string, patterns []Pattern) (Chain, error) {
	if len(patterns) == 0 {
		return Chain{}, ErrEmptyChain
	}
	seq := make([]int, len(patterns))
	for i, p := range patterns {
		seq[i] = p.Number()
	}
	if name == "" {
		name = patterns[0].Metadata.Name
	}
	return NewChain(name, patterns, seq, patterns[0].Metadata)
}

// AssignSlots moves the patterns into slots 1..n in the order given when
// any two share a slot. Patterns in distinct slots are returned unchanged.
func AssignSlots(patterns []Pattern) ([]Pattern, bool, error) {
	seen := make(map[int]bool, len(patterns))
	clash := false
	for _, p := range patterns {
		if seen[p.Number()] {
			clash = true
			break
		}
		seen[p.Number()] = true
	}
	if !clash {
		return patterns, false, nil
	}

	out := make([]Pattern, len(patterns))
	for i, p := range patterns {
		moved, err := p.WithNumber(i + 1)
		if err != nil {
			return nil, false, fmt.Errorf("failed to assign slot to %q: %w", p.Metadata.Name, err)
		}
		out[i] = moved
	}
	return out, true, nil
}

// TotalBars is the number of bars one pass of the chain plays
func (c Chain) TotalBars() int {
	return len(c.Sequence)
}

// SequenceString formats the sequence for entry on the device, e.g. "1,1,2"
func (c Chain) SequenceString() string {
	parts := make([]string, len(c.Sequence))
	for i, n := range c.Sequence {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// Pattern returns the first pattern with the given slot number
func (c Chain) Pattern(number int) (Pattern, bool) {
	for _, p := range c.Patterns {
		if p.Number() == number {
			return p, true
		}
	}
	return Pattern{}, false
}

// PatternsInSequence expands the sequence into play order
func (c Chain) PatternsInSequence() []Pattern {
	out := make([]Pattern, 0, len(c.Sequence))
	for _, n := range c.Sequence {
		if p, ok := c.Pattern(n); ok {
			out = append(out, p)
		}
	}
	return out
}
