package converter

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/james-see/po12toolbox/pkg/pattern"
)

// MIDI export defaults
const (
	DefaultResolution   = 96 // pulses per quarter note
	DefaultVelocity     = 100
	DefaultNoteDuration = 96 // one quarter note at the default resolution

	microsecondsPerMinute = 60_000_000
	stepsPerBar           = pattern.NumSteps
)

// EventKind distinguishes note-on from note-off events
type EventKind int

const (
	NoteOn EventKind = iota
	NoteOff
)

func (k EventKind) String() string {
	if k == NoteOn {
		return "note-on"
	}
	return "note-off"
}

// MIDIExportOptions configures MIDI export.
// Velocity is not enforced by the exporter; call Validate first.
type MIDIExportOptions struct {
	Resolution      int  `toml:"resolution" validate:"gte=4,lte=32767"`
	Velocity        int  `toml:"velocity" validate:"gte=1,lte=127"`
	NoteDuration    int  `toml:"note_duration" validate:"gte=1"`
	IncludeMetadata bool `toml:"include_metadata"`
}

// DefaultMIDIExportOptions returns 96 PPQ, velocity 100, quarter note duration, metadata on
func DefaultMIDIExportOptions() MIDIExportOptions {
	return MIDIExportOptions{
		Resolution:      DefaultResolution,
		Velocity:        DefaultVelocity,
		NoteDuration:    DefaultNoteDuration,
		IncludeMetadata: true,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the options against their struct constraints
func (o MIDIExportOptions) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid MIDI options: %w", err)
	}
	return nil
}

// TicksPerStep returns the ticks in one sixteenth note step.
// Resolutions not divisible by 4 are truncated.
func TicksPerStep(resolution int) int {
	return resolution / 4
}

// MIDITempo converts BPM to microseconds per quarter note, truncating.
// Non-positive BPM falls back to 120.
func MIDITempo(bpm int) int {
	if bpm <= 0 {
		bpm = pattern.DefaultBPM
	}
	return microsecondsPerMinute / bpm
}

// IsValidVelocity reports whether velocity is within 1-127
func IsValidVelocity(velocity int) bool {
	return velocity >= 1 && velocity <= 127
}

// Event is one note event on the absolute tick timeline
type Event struct {
	Tick     int
	Kind     EventKind
	Channel  int
	Note     int
	Velocity int
}

// Timeline is the absolute-tick layout of one or more chained patterns
type Timeline struct {
	Resolution   int
	TicksPerStep int
	BPM          int
	Tempo        int // microseconds per quarter note
	TrackName    string
	Events       []Event
	EndTick      int
}

// MIDIConverter handles MIDI file parsing and generation
type MIDIConverter struct {
	device Device
	opts   MIDIExportOptions
}

// NewMIDIConverter creates a new MIDI converter
func NewMIDIConverter(device Device, opts MIDIExportOptions) *MIDIConverter {
	return &MIDIConverter{device: device, opts: opts}
}

// Timeline lays patterns out one bar after another. Tempo and track name
// come from the first pattern.
func (m *MIDIConverter) Timeline(patterns []pattern.Pattern) Timeline {
	tps := TicksPerStep(m.opts.Resolution)
	tl := Timeline{
		Resolution:   m.opts.Resolution,
		TicksPerStep: tps,
	}
	if len(patterns) == 0 {
		return tl
	}

	first := patterns[0].Metadata
	tl.BPM = pattern.DefaultBPM
	if first.HasBPM() {
		tl.BPM = first.BPM
	}
	tl.Tempo = MIDITempo(tl.BPM)
	if m.opts.IncludeMetadata {
		tl.TrackName = first.Name
	}

	channel := int(m.device.Channel())
	startTick := 0
	for _, p := range patterns {
		for _, v := range p.UsedVoices() {
			note := int(m.device.Note(v))
			for _, step := range p.Steps(v) {
				onTick := startTick + (step-1)*tps
				tl.Events = append(tl.Events,
					Event{Tick: onTick, Kind: NoteOn, Channel: channel, Note: note, Velocity: m.opts.Velocity},
					Event{Tick: onTick + m.opts.NoteDuration, Kind: NoteOff, Channel: channel, Note: note, Velocity: 0},
				)
			}
		}
		startTick += stepsPerBar * tps
	}

	sort.SliceStable(tl.Events, func(i, j int) bool {
		return tl.Events[i].Tick < tl.Events[j].Tick
	})

	tl.EndTick = startTick
	if n := len(tl.Events); n > 0 && tl.Events[n-1].Tick > tl.EndTick {
		tl.EndTick = tl.Events[n-1].Tick
	}
	return tl
}

// GenerateMIDI creates MIDI data from one pattern or a chain of patterns
func (m *MIDIConverter) GenerateMIDI(patterns ...pattern.Pattern) ([]byte, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}
	return m.Encode(m.Timeline(patterns))
}

// Encode writes a timeline as a standard MIDI file with a single track
func (m *MIDIConverter) Encode(tl Timeline) ([]byte, error) {
	if tl.Resolution <= 0 || tl.Resolution > math.MaxUint16 {
		return nil, fmt.Errorf("invalid resolution %d", tl.Resolution)
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(tl.Resolution)

	var track smf.Track

	// Add tempo meta event
	if tl.Tempo <= 0 {
		tl.Tempo = MIDITempo(pattern.DefaultBPM)
	}
	tempo := uint32(tl.Tempo)
	tempoData := smf.Message([]byte{
		0xFF, 0x51, 0x03,
		byte(tempo >> 16),
		byte(tempo >> 8),
		byte(tempo),
	})
	track.Add(0, tempoData)

	if tl.TrackName != "" {
		track.Add(0, smf.MetaTrackSequenceName(tl.TrackName))
	}

	// Add time signature (4/4)
	timeSigData := smf.Message([]byte{0xFF, 0x58, 0x04, 0x04, 0x02, 0x18, 0x08})
	track.Add(0, timeSigData)

	var currentTick int
	for _, ev := range tl.Events {
		delta := uint32(ev.Tick - currentTick)
		switch ev.Kind {
		case NoteOn:
			track.Add(delta, midi.NoteOn(uint8(ev.Channel), uint8(ev.Note), uint8(ev.Velocity)))
		case NoteOff:
			track.Add(delta, midi.NoteOff(uint8(ev.Channel), uint8(ev.Note)))
		}
		currentTick = ev.Tick
	}

	// Add end of track
	track.Close(uint32(tl.EndTick - currentTick))

	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("failed to add track: %w", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteMIDIFile writes one pattern or a chain of patterns to a MIDI file
func (m *MIDIConverter) WriteMIDIFile(filename string, patterns ...pattern.Pattern) error {
	data, err := m.GenerateMIDI(patterns...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write MIDI file: %w", err)
	}
	return nil
}

// ParseMIDIFile reads a MIDI file and extracts the first bar as a pattern
func (m *MIDIConverter) ParseMIDIFile(filename string) (pattern.Pattern, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return pattern.Pattern{}, fmt.Errorf("failed to read MIDI file: %w", err)
	}
	return m.ParseMIDI(data)
}

// ParseMIDI quantizes the note-ons of the first bar onto steps, mapping GM
// drum notes back to voices. Notes outside the drum map are ignored.
func (m *MIDIConverter) ParseMIDI(data []byte) (pattern.Pattern, error) {
	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return pattern.Pattern{}, fmt.Errorf("failed to parse MIDI: %w", err)
	}

	resolution := int64(DefaultResolution)
	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok {
		resolution = int64(mt.Resolution())
	}
	ticksPerStep := resolution / 4
	if ticksPerStep == 0 {
		return pattern.Pattern{}, fmt.Errorf("resolution %d too small", resolution)
	}
	barTicks := ticksPerStep * stepsPerBar
	drumChannel := m.device.Channel()

	meta := pattern.Metadata{Name: "MIDI Pattern", Created: pattern.Today()}
	hits := make(map[pattern.Voice]map[int]bool)

	for _, track := range s.Tracks {
		var currentTick int64
		for _, ev := range track {
			currentTick += int64(ev.Delta)
			msg := ev.Message

			// Tempo meta message (FF 51 03 ...)
			if len(msg) >= 6 && msg[0] == 0xFF && msg[1] == 0x51 && msg[2] == 0x03 {
				microsecondsPerBeat := uint32(msg[3])<<16 | uint32(msg[4])<<8 | uint32(msg[5])
				if microsecondsPerBeat > 0 {
					meta.BPM = int(math.Round(microsecondsPerMinute / float64(microsecondsPerBeat)))
				}
				continue
			}

			// Track name meta message (FF 03 len ...)
			if len(msg) >= 3 && msg[0] == 0xFF && msg[1] == 0x03 {
				if name := strings.TrimSpace(metaText(msg[2:])); name != "" {
					meta.Name = name
				}
				continue
			}

			// Note On: 0x9n nn vv with a non-zero velocity on the drum channel
			if len(msg) >= 3 && msg[0]&0xF0 == 0x90 && msg[2] > 0 {
				if msg[0]&0x0F != drumChannel {
					continue
				}
				if currentTick >= barTicks {
					continue
				}
				v, ok := m.device.Voice(msg[1])
				if !ok {
					continue
				}
				step := int(currentTick/ticksPerStep) + 1
				if hits[v] == nil {
					hits[v] = make(map[int]bool)
				}
				hits[v][step] = true
			}
		}
	}

	voices := make(pattern.Voices, len(hits))
	for v, steps := range hits {
		for step := range steps {
			voices[v] = append(voices[v], step)
		}
		sort.Ints(voices[v])
	}

	p, err := pattern.New(1, voices, meta)
	if err != nil {
		return pattern.Pattern{}, fmt.Errorf("failed to build pattern from MIDI: %w", err)
	}
	return p, nil
}

// metaText decodes the variable length prefixed payload of a meta event
func metaText(b []byte) string {
	var length, i int
	for i < len(b) {
		c := b[i]
		i++
		length = length<<7 | int(c&0x7F)
		if c&0x80 == 0 {
			break
		}
	}
	if i+length > len(b) {
		length = len(b) - i
	}
	return string(b[i : i+length])
}
