// Package converter provides conversion between PO-12 patterns and markdown, JSON, CSV, text and MIDI
package converter

import (
	"errors"

	"github.com/james-see/po12toolbox/pkg/pattern"
)

var (
	ErrMissingFrontMatter = errors.New("missing front matter")
	ErrMissingName        = errors.New("missing name in front matter")
	ErrUnsupportedFormat  = errors.New("unsupported format")
	ErrNoPatterns         = errors.New("no patterns")
)

// Device interface for device-specific voice to MIDI note mapping
type Device interface {
	Name() string
	ID() uint8
	Channel() uint8
	Note(v pattern.Voice) uint8
	Voice(note uint8) (pattern.Voice, bool)
}

// Converter handles format conversions
type Converter struct {
	device Device
	midi   MIDIExportOptions
}

// New creates a new Converter with the specified device and default MIDI options
func New(device Device) *Converter {
	return &Converter{device: device, midi: DefaultMIDIExportOptions()}
}

// GetDevice returns the current device
func (c *Converter) GetDevice() Device {
	return c.device
}

// SetDevice sets the device for conversion
func (c *Converter) SetDevice(device Device) {
	c.device = device
}

// MIDIOptions returns the options used for MIDI export
func (c *Converter) MIDIOptions() MIDIExportOptions {
	return c.midi
}

// SetMIDIOptions sets the options used for MIDI export
func (c *Converter) SetMIDIOptions(opts MIDIExportOptions) {
	c.midi = opts
}

// MIDI returns a MIDI converter bound to the current device and options
func (c *Converter) MIDI() *MIDIConverter {
	return NewMIDIConverter(c.device, c.midi)
}
