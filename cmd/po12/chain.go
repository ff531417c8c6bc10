package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/james-see/po12toolbox/pkg/pattern"
)

var chainOpts struct {
	name     string
	sequence string
	midi     string
}

var chainCmd = &cobra.Command{
	Use:   "chain <pattern>...",
	Short: "Chain patterns and show how to program them",
	Long: `Chain patterns together and print PO-12 chaining instructions.
Each pattern plays for one bar.

Examples:
  po12 chain intro.md verse.md
  po12 chain a.md b.md --sequence 1,1,2,1 --midi song.mid`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChain,
}

func init() {
	f := chainCmd.Flags()
	f.StringVarP(&chainOpts.name, "name", "n", "", "Chain name (default: first pattern name)")
	f.StringVar(&chainOpts.sequence, "sequence", "", "Play order as pattern numbers, e.g. 1,1,2")
	f.StringVar(&chainOpts.midi, "midi", "", "Also export the chain to this MIDI file")
}

func runChain(cmd *cobra.Command, args []string) error {
	patterns, err := readPatterns(args)
	if err != nil {
		return err
	}

	var chain pattern.Chain
	if chainOpts.sequence != "" {
		seq, err := parseSequence(chainOpts.sequence)
		if err != nil {
			return err
		}
		name := chainOpts.name
		if name == "" {
			name = patterns[0].Metadata.Name
		}
		chain, err = pattern.NewChain(name, patterns, seq, patterns[0].Metadata)
		if err != nil {
			return err
		}
	} else {
		slotted, moved, err := pattern.AssignSlots(patterns)
		if err != nil {
			return err
		}
		if moved {
			fmt.Println(warnStyle.Render(fmt.Sprintf("Patterns share a slot, renumbered 1..%d in the order given", len(slotted))))
		}
		chain, err = pattern.NewChainFromPatterns(chainOpts.name, slotted)
		if err != nil {
			return err
		}
	}

	fmt.Println(headingStyle.Render("Chain: " + chain.Name))
	fmt.Printf("Sequence:   %s\n", chain.SequenceString())
	fmt.Printf("Total bars: %d\n", chain.TotalBars())
	fmt.Println()

	t := newTable("Position", "Pattern", "Name", "Voices", "Notes")
	for i, p := range chain.PatternsInSequence() {
		t.Row(
			humanize.Ordinal(i+1),
			fmt.Sprint(p.Number()),
			p.Metadata.Name,
			fmt.Sprint(p.VoiceCount()),
			fmt.Sprint(p.TotalNotes()),
		)
	}
	fmt.Println(t)
	fmt.Println()

	fmt.Println(boldStyle.Render("PO-12 Chaining Instructions"))
	fmt.Println(rule())
	fmt.Println("1. Program each pattern into its slot first")
	fmt.Println("2. Hold PATTERN and press, in order:")
	for i, n := range chain.Sequence {
		fmt.Printf("   %s: pattern %d\n", humanize.Ordinal(i+1), n)
	}
	fmt.Println("3. Release PATTERN; the chain loops until a new pattern is chosen")

	if chainOpts.midi != "" {
		if err := newConverter().MIDI().WriteMIDIFile(chainOpts.midi, chain.PatternsInSequence()...); err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(successStyle.Render("✓ MIDI written: ") + chainOpts.midi)
	}
	return nil
}

// parseSequence parses "1, 1,2" into pattern numbers
func parseSequence(s string) ([]int, error) {
	var seq []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid sequence entry %q", part)
		}
		seq = append(seq, n)
	}
	return seq, nil
}
