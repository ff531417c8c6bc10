package converter

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/james-see/po12toolbox/pkg/converter/devices"
	"github.com/james-see/po12toolbox/pkg/pattern"
)

func testPattern(t *testing.T) pattern.Pattern {
	t.Helper()
	p, err := pattern.New(3, pattern.Voices{
		pattern.Kick:     {1, 5, 9, 13},
		pattern.Snare:    {5, 13},
		pattern.ClosedHH: {3, 7, 11, 15},
	}, pattern.Metadata{
		Name:       "Basic Rock",
		BPM:        110,
		Genre:      []string{"rock"},
		Difficulty: pattern.DifficultyBeginner,
		Source:     "Pocket Operations",
		Created:    time2024(),
	})
	if err != nil {
		t.Fatalf("pattern.New() error = %v", err)
	}
	return p
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		expected Format
	}{
		{"test.md", FormatMarkdown},
		{"TEST.MD", FormatMarkdown},
		{"test.json", FormatJSON},
		{"test.mid", FormatMIDI},
		{"test.midi", FormatMIDI},
		{"test.csv", FormatCSV},
		{"test.txt", FormatText},
		{"test.seq", FormatUnknown},
		{"test", FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			result := DetectFormat(tt.filename)
			if result != tt.expected {
				t.Errorf("DetectFormat(%q) = %v, want %v", tt.filename, result, tt.expected)
			}
		})
	}
}

func TestDetectFormatFromContent(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected Format
	}{
		{"MIDI file", []byte("MThd\x00\x00\x00\x06"), FormatMIDI},
		{"markdown", []byte("---\nname: \"x\"\n---\n"), FormatMarkdown},
		{"JSON object", []byte("  {\"patternNumber\": 1}"), FormatJSON},
		{"JSON array", []byte("[]\n"), FormatJSON},
		{"text notation", []byte("kick: 1,5,9,13\nsnare: 5 13\n"), FormatText},
		{"Short data", []byte{0x00, 0x01}, FormatUnknown},
		{"binary", []byte{0x3C, 0x01, 0x3E, 0x02, 0x40, 0x03}, FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DetectFormatFromContent(tt.data)
			if result != tt.expected {
				t.Errorf("DetectFormatFromContent() = %v, want %v", result, tt.expected)
			}
		})
	}
}

// mockDevice implements Device interface for testing
type mockDevice struct{}

func (m *mockDevice) Name() string               { return "Mock Device" }
func (m *mockDevice) ID() uint8                  { return 0 }
func (m *mockDevice) Channel() uint8             { return 0 }
func (m *mockDevice) Note(v pattern.Voice) uint8 { return uint8(60 + v) }

func (m *mockDevice) Voice(note uint8) (pattern.Voice, bool) {
	return pattern.VoiceFromNumber(int(note) - 60)
}

func TestConverterNew(t *testing.T) {
	device := &mockDevice{}
	conv := New(device)

	if conv == nil {
		t.Fatal("New() returned nil")
	}
	if conv.GetDevice() != device {
		t.Error("GetDevice() did not return the expected device")
	}
	if conv.MIDIOptions() != DefaultMIDIExportOptions() {
		t.Errorf("MIDIOptions() = %+v, want defaults", conv.MIDIOptions())
	}
}

func TestConverterSetDevice(t *testing.T) {
	device1 := &mockDevice{}
	device2 := devices.NewPO12()

	conv := New(device1)
	if conv.GetDevice() != device1 {
		t.Error("GetDevice() should return device1")
	}

	conv.SetDevice(device2)
	if conv.GetDevice() != device2 {
		t.Error("GetDevice() should return device2 after SetDevice")
	}
}

func TestConverterUsesDeviceNotes(t *testing.T) {
	conv := New(&mockDevice{})
	p := pattern.MustNew(1, pattern.Voices{pattern.Snare: {1}}, pattern.Metadata{Name: "m"})

	tl := conv.MIDI().Timeline([]pattern.Pattern{p})
	if len(tl.Events) != 2 || tl.Events[0].Note != 62 || tl.Events[0].Channel != 0 {
		t.Errorf("Events = %+v, want mock note 62 on channel 0", tl.Events)
	}
}

func TestConvertFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	conv := New(devices.NewPO12())
	p := testPattern(t)

	mdPath, err := WriteMarkdownFile(p, dir)
	if err != nil {
		t.Fatalf("WriteMarkdownFile() error = %v", err)
	}
	if filepath.Base(mdPath) != "basic-rock.md" {
		t.Errorf("WriteMarkdownFile() path = %q", mdPath)
	}

	jsonPath := filepath.Join(dir, "rock.json")
	if err := conv.ConvertFile(mdPath, jsonPath); err != nil {
		t.Fatalf("ConvertFile(md -> json) error = %v", err)
	}
	backPath := filepath.Join(dir, "back.md")
	if err := conv.ConvertFile(jsonPath, backPath); err != nil {
		t.Fatalf("ConvertFile(json -> md) error = %v", err)
	}

	back, err := conv.ReadPattern(backPath)
	if err != nil {
		t.Fatalf("ReadPattern() error = %v", err)
	}
	if !reflect.DeepEqual(back.Voices(), p.Voices()) {
		t.Errorf("voices = %v, want %v", back.Voices(), p.Voices())
	}
	if back.Number() != 3 || back.Metadata.BPM != 110 || back.Metadata.Name != "Basic Rock" {
		t.Errorf("round trip lost metadata: %d %+v", back.Number(), back.Metadata)
	}

	midPath := filepath.Join(dir, "rock.mid")
	if err := conv.ConvertFile(backPath, midPath); err != nil {
		t.Fatalf("ConvertFile(md -> mid) error = %v", err)
	}
	fromMIDI, err := conv.ReadPattern(midPath)
	if err != nil {
		t.Fatalf("ReadPattern(mid) error = %v", err)
	}
	if !reflect.DeepEqual(fromMIDI.Voices(), p.Voices()) {
		t.Errorf("MIDI voices = %v, want %v", fromMIDI.Voices(), p.Voices())
	}
}

func TestReadPatternsText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "groove.txt")
	if err := os.WriteFile(path, []byte("# groove\nkick: 1,9\nsnare: 5 13\n"), 0644); err != nil {
		t.Fatal(err)
	}
	p, err := New(devices.NewPO12()).ReadPattern(path)
	if err != nil {
		t.Fatalf("ReadPattern() error = %v", err)
	}
	if p.Metadata.Name != "groove" || !reflect.DeepEqual(p.Steps(pattern.Snare), []int{5, 13}) {
		t.Errorf("ReadPattern() = %q %v", p.Metadata.Name, p.Voices())
	}
}

func TestConvertFileErrors(t *testing.T) {
	dir := t.TempDir()
	conv := New(devices.NewPO12())

	csvPath := filepath.Join(dir, "in.csv")
	if err := os.WriteFile(csvPath, []byte("Voice,Step 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := conv.ConvertFile(csvPath, filepath.Join(dir, "out.md")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ConvertFile(csv) error = %v, want ErrUnsupportedFormat", err)
	}
	if err := conv.ConvertFile(csvPath, filepath.Join(dir, "out.seq")); err == nil {
		t.Error("ConvertFile() to unknown extension should fail")
	}
	if err := conv.ConvertFile(filepath.Join(dir, "missing.md"), filepath.Join(dir, "out.json")); err == nil {
		t.Error("ConvertFile() with missing input should fail")
	}
	if _, err := conv.Encode(nil, FormatJSON); !errors.Is(err, ErrNoPatterns) {
		t.Errorf("Encode(nil) error = %v, want ErrNoPatterns", err)
	}
}

func TestGetSupportedConversions(t *testing.T) {
	conversions := GetSupportedConversions()

	if len(conversions) != 16 {
		t.Errorf("GetSupportedConversions() returned %d conversions, want 16", len(conversions))
	}

	expected := []string{
		"markdown -> json",
		"markdown -> midi",
		"json -> markdown",
		"midi -> markdown",
		"text -> csv",
	}
	for _, exp := range expected {
		found := false
		for _, c := range conversions {
			if c == exp {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("conversion %q missing", exp)
		}
	}
}
