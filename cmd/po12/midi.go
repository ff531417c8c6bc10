package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/james-see/po12toolbox/pkg/converter"
)

var midiOpts struct {
	output       string
	resolution   int
	velocity     int
	noteDuration int
	noMetadata   bool
}

var midiCmd = &cobra.Command{
	Use:   "midi <pattern>...",
	Short: "Export one pattern, or several chained, to a MIDI file",
	Long: `Export patterns to a standard MIDI file on the GM drum channel.
Several patterns are chained one bar after another.

Examples:
  po12 midi patterns/basic-rock.md
  po12 midi intro.md verse.md -o song.mid --velocity 110`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMIDI,
}

func init() {
	f := midiCmd.Flags()
	f.StringVarP(&midiOpts.output, "output", "o", "", "Output .mid file path")
	f.IntVar(&midiOpts.resolution, "resolution", converter.DefaultResolution, "Ticks per quarter note")
	f.IntVar(&midiOpts.velocity, "velocity", converter.DefaultVelocity, "Note velocity (1-127)")
	f.IntVar(&midiOpts.noteDuration, "duration", converter.DefaultNoteDuration, "Note length in ticks")
	f.BoolVar(&midiOpts.noMetadata, "no-metadata", false, "Leave out the track name")
}

// midiOptions overlays the flags the user set on the configured options
func midiOptions(cmd *cobra.Command) converter.MIDIExportOptions {
	opts := cfg.MIDI
	f := cmd.Flags()
	if f.Changed("resolution") {
		opts.Resolution = midiOpts.resolution
	}
	if f.Changed("velocity") {
		opts.Velocity = midiOpts.velocity
	}
	if f.Changed("duration") {
		opts.NoteDuration = midiOpts.noteDuration
	}
	if midiOpts.noMetadata {
		opts.IncludeMetadata = false
	}
	return opts
}

func runMIDI(cmd *cobra.Command, args []string) error {
	opts := midiOptions(cmd)
	if !converter.IsValidVelocity(opts.Velocity) {
		return fmt.Errorf("velocity must be between 1 and 127, got %d", opts.Velocity)
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	patterns, err := readPatterns(args)
	if err != nil {
		return err
	}

	output := getOutputPath(args[0], midiOpts.output, ".mid")
	conv := newConverter()
	conv.SetMIDIOptions(opts)

	logger.Debug("exporting MIDI",
		slog.String("output", output),
		slog.Int("patterns", len(patterns)),
		slog.Int("resolution", opts.Resolution),
	)
	if err := conv.MIDI().WriteMIDIFile(output, patterns...); err != nil {
		return err
	}

	tl := conv.MIDI().Timeline(patterns)
	fmt.Printf("Exported %d pattern(s), %d notes at %d BPM\n", len(patterns), len(tl.Events)/2, tl.BPM)
	fmt.Println(successStyle.Render("✓ MIDI written: ") + output)
	return nil
}
