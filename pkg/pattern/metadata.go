package pattern

import (
	"strings"
	"time"
)

// Difficulty is the skill tier of a pattern
type Difficulty string

const (
	DifficultyNone         Difficulty = ""
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ParseDifficulty parses a difficulty name (case-insensitive)
func ParseDifficulty(s string) (Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner":
		return DifficultyBeginner, true
	case "intermediate":
		return DifficultyIntermediate, true
	case "advanced":
		return DifficultyAdvanced, true
	default:
		return DifficultyNone, false
	}
}

// Metadata describes a pattern. Only Name is required.
type Metadata struct {
	Name        string
	Description string
	BPM         int // 0 means unset
	Genre       []string
	Difficulty  Difficulty
	Source      string
	Author      string
	Created     time.Time
}

// HasBPM reports whether a tempo was recorded
func (m Metadata) HasBPM() bool {
	return m.BPM > 0
}

func (m Metadata) clone() Metadata {
	c := m
	if m.Genre != nil {
		c.Genre = append([]string(nil), m.Genre...)
	}
	return c
}

// Today returns the current date truncated to midnight UTC
func Today() time.Time {
	y, mo, d := time.Now().Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}
