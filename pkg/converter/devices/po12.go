// Package devices provides device-specific voice and note mappings
package devices

import "github.com/james-see/po12toolbox/pkg/pattern"

// PO-12 device constants
const (
	PO12DeviceID = 0x0C
	DrumChannel  = 9  // MIDI channel 10, zero-indexed
	FallbackNote = 38 // Acoustic Snare
	MaxSteps     = pattern.NumSteps
	MaxPatterns  = pattern.MaxNumber
)

// General MIDI drum map, indexed by voice number
var po12Notes = [pattern.NumVoices + 1]uint8{
	pattern.Kick:     36,
	pattern.Snare:    38,
	pattern.ClosedHH: 42,
	pattern.OpenHH:   46,
	pattern.TomLow:   45,
	pattern.TomMid:   47,
	pattern.TomHigh:  50,
	pattern.RimShot:  37,
	pattern.HandClap: 39,
	pattern.Cowbell:  56,
	pattern.Cymbal:   49,
	pattern.Click:    33,
	pattern.Noise:    54,
	pattern.Blip:     76,
	pattern.Tone:     80,
	pattern.Sticks:   31,
}

var gmDrumNames = map[uint8]string{
	31: "Sticks",
	33: "Metronome Click",
	36: "Bass Drum 1",
	37: "Side Stick",
	38: "Acoustic Snare",
	39: "Hand Clap",
	42: "Closed Hi-Hat",
	45: "Low Tom",
	46: "Open Hi-Hat",
	47: "Low-Mid Tom",
	49: "Crash Cymbal 1",
	50: "High Tom",
	54: "Tambourine",
	56: "Cowbell",
	76: "Hi Wood Block",
	80: "Mute Triangle",
}

// Mapping pairs a voice with its MIDI note
type Mapping struct {
	Voice pattern.Voice
	Note  uint8
}

// PO12 maps the Pocket Operator PO-12 rhythm sounds onto the General MIDI drum map
type PO12 struct{}

// NewPO12 creates a new PO-12 device handler
func NewPO12() *PO12 {
	return &PO12{}
}

// Name returns the device name
func (d *PO12) Name() string {
	return "Teenage Engineering PO-12 rhythm"
}

// ID returns the device ID
func (d *PO12) ID() uint8 {
	return PO12DeviceID
}

// Channel returns the zero-indexed MIDI channel drums are written on
func (d *PO12) Channel() uint8 {
	return DrumChannel
}

// Note returns the GM drum note for a voice. Unknown voices map to the snare.
func (d *PO12) Note(v pattern.Voice) uint8 {
	if !v.Valid() {
		return FallbackNote
	}
	return po12Notes[v]
}

// Voice looks up the voice that plays a GM drum note
func (d *PO12) Voice(note uint8) (pattern.Voice, bool) {
	for v := pattern.Kick; v <= pattern.Sticks; v++ {
		if po12Notes[v] == note {
			return v, true
		}
	}
	return 0, false
}

// Mappings returns every voice mapping in device order
func (d *PO12) Mappings() []Mapping {
	m := make([]Mapping, 0, pattern.NumVoices)
	for _, v := range pattern.AllVoices() {
		m = append(m, Mapping{Voice: v, Note: po12Notes[v]})
	}
	return m
}

// GMDrumName returns the General MIDI name of a drum note used by the map
func GMDrumName(note uint8) (string, bool) {
	name, ok := gmDrumNames[note]
	return name, ok
}
