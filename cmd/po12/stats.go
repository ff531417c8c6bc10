package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/james-see/po12toolbox/pkg/analysis"
	"github.com/james-see/po12toolbox/pkg/pattern"
)

var statsLibrary bool

var statsCmd = &cobra.Command{
	Use:   "stats [pattern]",
	Short: "Show statistics for a pattern or the whole library",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVarP(&statsLibrary, "library", "l", false, "Aggregate statistics for the pattern library")
}

func runStats(cmd *cobra.Command, args []string) error {
	if statsLibrary || len(args) == 0 {
		return runLibraryStats()
	}

	p, err := newConverter().ReadPattern(args[0])
	if err != nil {
		return err
	}
	lib, err := newLibrary().Patterns()
	if err != nil {
		return err
	}

	s := analysis.Analyze(p)
	fmt.Println(headingStyle.Render("Statistics: " + p.Metadata.Name))
	fmt.Println()
	fmt.Printf("Total notes:   %d\n", s.TotalNotes)
	fmt.Printf("Voices:        %d\n", s.VoiceCount)
	fmt.Printf("Active steps:  %d of %d (%s)\n", s.ActiveSteps, pattern.NumSteps, percent(s.StepCoverage))
	fmt.Printf("Density:       %s\n", percent(s.Density))
	fmt.Printf("Syncopation:   %s\n", percent(analysis.Syncopation(p)))
	fmt.Printf("Complexity:    %.2f\n", s.Complexity)
	fmt.Println()

	fmt.Printf("Four on the floor: %s\n", yesNo(analysis.IsFourOnTheFloor(p)))
	fmt.Printf("Breakbeat feel:    %s\n", yesNo(analysis.HasBreakbeatCharacteristics(p)))
	if len(lib) > 0 {
		fmt.Printf("Denser than %.0f%% of %d library patterns\n", analysis.DensityPercentile(p, lib), len(lib))
	}
	fmt.Println()

	t := newTable("Voice", "Notes")
	voices := make([]pattern.Voice, 0, len(s.VoiceUsage))
	for v := range s.VoiceUsage {
		voices = append(voices, v)
	}
	sort.Slice(voices, func(i, j int) bool { return voices[i] < voices[j] })
	for _, v := range voices {
		t.Row(v.DisplayName(), fmt.Sprint(s.VoiceUsage[v]))
	}
	fmt.Println(t)
	return nil
}

func runLibraryStats() error {
	lib, err := newLibrary().Patterns()
	if err != nil {
		return err
	}

	s := analysis.AnalyzeLibrary(lib)
	fmt.Println(headingStyle.Render("Library Statistics: " + cfg.PatternsDir))
	fmt.Println()
	fmt.Printf("Patterns:           %d\n", s.TotalPatterns)
	if s.TotalPatterns == 0 {
		return nil
	}
	fmt.Printf("Average density:    %s\n", percent(s.AverageDensity))
	fmt.Printf("Average complexity: %.2f\n", s.AverageComplexity)
	if s.BPMRange.Max > 0 {
		fmt.Printf("BPM range:          %.0f-%.0f (average %.1f)\n", s.BPMRange.Min, s.BPMRange.Max, s.BPMRange.Average)
	}

	fourFloor, breakbeat := 0, 0
	for _, p := range lib {
		if analysis.IsFourOnTheFloor(p) {
			fourFloor++
		}
		if analysis.HasBreakbeatCharacteristics(p) {
			breakbeat++
		}
	}
	fmt.Printf("Four on the floor:  %d\n", fourFloor)
	fmt.Printf("Breakbeat feel:     %d\n", breakbeat)
	fmt.Println()

	fmt.Println(boldStyle.Render("Most used voices"))
	for i, v := range s.MostUsedVoices {
		fmt.Printf("  %d. %s\n", i+1, v.DisplayName())
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return successStyle.Render("yes")
	}
	return dimStyle.Render("no")
}
