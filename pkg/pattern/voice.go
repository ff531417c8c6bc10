// Package pattern provides the PO-12 rhythm pattern data model
package pattern

import "strings"

// Voice identifies one of the 16 PO-12 drum sounds.
// The numeric value is the device sound number (1-16).
type Voice int

const (
	Kick Voice = iota + 1
	Snare
	ClosedHH
	OpenHH
	TomLow
	TomMid
	TomHigh
	RimShot
	HandClap
	Cowbell
	Cymbal
	Click
	Noise
	Blip
	Tone
	Sticks
)

// NumVoices is the number of sounds on the device
const NumVoices = 16

type voiceInfo struct {
	display string
	short   string
}

var voiceTable = [NumVoices + 1]voiceInfo{
	Kick:     {"Bass Drum", "kick"},
	Snare:    {"Snare", "snare"},
	ClosedHH: {"Closed Hi-Hat", "closed-hh"},
	OpenHH:   {"Open Hi-Hat", "open-hh"},
	TomLow:   {"Low Tom", "tom-low"},
	TomMid:   {"Mid Tom", "tom-mid"},
	TomHigh:  {"High Tom", "tom-high"},
	RimShot:  {"Rim Shot", "rim"},
	HandClap: {"Hand Clap", "clap"},
	Cowbell:  {"Cowbell", "cowbell"},
	Cymbal:   {"Cymbal", "cymbal"},
	Click:    {"Click", "click"},
	Noise:    {"Noise", "noise"},
	Blip:     {"Blip", "blip"},
	Tone:     {"Tone", "tone"},
	Sticks:   {"Sticks", "sticks"},
}

// Valid reports whether v is one of the 16 device voices
func (v Voice) Valid() bool {
	return v >= Kick && v <= Sticks
}

// Number returns the device sound number (1-16)
func (v Voice) Number() int {
	return int(v)
}

// DisplayName returns the human readable name, e.g. "Bass Drum"
func (v Voice) DisplayName() string {
	if !v.Valid() {
		return "Unknown"
	}
	return voiceTable[v].display
}

// ShortName returns the machine friendly name used in text formats, e.g. "kick"
func (v Voice) ShortName() string {
	if !v.Valid() {
		return ""
	}
	return voiceTable[v].short
}

func (v Voice) String() string {
	return v.ShortName()
}

// AllVoices returns every voice in device order
func AllVoices() []Voice {
	voices := make([]Voice, 0, NumVoices)
	for v := Kick; v <= Sticks; v++ {
		voices = append(voices, v)
	}
	return voices
}

// VoiceFromShortName looks up a voice by its short name (case-insensitive)
func VoiceFromShortName(name string) (Voice, bool) {
	name = strings.TrimSpace(name)
	for v := Kick; v <= Sticks; v++ {
		if strings.EqualFold(voiceTable[v].short, name) {
			return v, true
		}
	}
	return 0, false
}

// VoiceFromNumber looks up a voice by its device sound number
func VoiceFromNumber(n int) (Voice, bool) {
	v := Voice(n)
	if !v.Valid() {
		return 0, false
	}
	return v, true
}
