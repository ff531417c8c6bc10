package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/james-see/po12toolbox/pkg/analysis"
	"github.com/james-see/po12toolbox/pkg/config"
	"github.com/james-see/po12toolbox/pkg/library"
	"github.com/james-see/po12toolbox/pkg/pattern"
)

var similarOpts struct {
	threshold    float64
	limit        int
	voiceWeight  float64
	stepWeight   float64
	rhythmWeight float64
}

var similarCmd = &cobra.Command{
	Use:   "similar <pattern>",
	Short: "Find library patterns similar to a pattern",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimilar,
}

func init() {
	w := analysis.DefaultWeights()
	f := similarCmd.Flags()
	f.Float64VarP(&similarOpts.threshold, "threshold", "t", analysis.DefaultThreshold, "Minimum similarity (0.0-1.0)")
	f.IntVarP(&similarOpts.limit, "limit", "n", config.DefaultSimilarLimit, "Maximum number of results")
	f.Float64Var(&similarOpts.voiceWeight, "voice-weight", w.Voice, "Weight of voice similarity")
	f.Float64Var(&similarOpts.stepWeight, "step-weight", w.Step, "Weight of step similarity")
	f.Float64Var(&similarOpts.rhythmWeight, "rhythm-weight", w.Rhythm, "Weight of rhythm similarity")
}

// similarSettings starts from the config file and applies the flags the user set
func similarSettings(cmd *cobra.Command) (threshold float64, limit int, w analysis.SimilarityWeights) {
	s := cfg.Similarity
	threshold, limit, w = s.Threshold, s.Limit, s.SimilarityWeights

	f := cmd.Flags()
	if f.Changed("threshold") {
		threshold = similarOpts.threshold
	}
	if f.Changed("limit") {
		limit = similarOpts.limit
	}
	if f.Changed("voice-weight") {
		w.Voice = similarOpts.voiceWeight
	}
	if f.Changed("step-weight") {
		w.Step = similarOpts.stepWeight
	}
	if f.Changed("rhythm-weight") {
		w.Rhythm = similarOpts.rhythmWeight
	}
	return threshold, limit, w
}

func runSimilar(cmd *cobra.Command, args []string) error {
	threshold, limit, weights := similarSettings(cmd)
	if threshold < 0 || threshold > 1 {
		return fmt.Errorf("threshold must be between 0.0 and 1.0, got %g", threshold)
	}
	if limit < 1 {
		return fmt.Errorf("limit must be at least 1, got %d", limit)
	}

	target, err := newConverter().ReadPattern(args[0])
	if err != nil {
		return err
	}

	fmt.Println(headingStyle.Render("Pattern Similarity Search"))
	fmt.Println()
	fmt.Println(boldStyle.Render("Target: ") + target.Metadata.Name)
	fmt.Printf("  Voices: %d, Notes: %d\n\n", target.VoiceCount(), target.TotalNotes())

	if !weights.IsValid() {
		fmt.Println(warnStyle.Render(fmt.Sprintf(
			"Warning: weights sum to %.2f, not 1.0; scores are not normalised",
			weights.Voice+weights.Step+weights.Rhythm)))
		fmt.Println()
	}

	entries, err := newLibrary().Load()
	if err != nil {
		return err
	}
	candidates := excludeTarget(entries, args[0])
	logger.Debug("comparing against library", slog.Int("patterns", len(candidates)))
	fmt.Printf("Comparing against %d patterns\n", len(candidates))
	fmt.Println(rule())

	results := analysis.FindSimilar(target, candidates, threshold, weights)
	if len(results) > limit {
		results = results[:limit]
	}
	if len(results) == 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("No similar patterns found above the %.0f%% threshold", threshold*100)))
		fmt.Println(dimStyle.Render("Try lowering the threshold with --threshold"))
		return nil
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("Found %d similar pattern(s):", len(results))))
	t := newTable("Rank", "Similarity", "Pattern", "Voices", "Notes", "BPM", "Difficulty")
	for i, r := range results {
		meta := r.Pattern.Metadata
		t.Row(
			humanize.Ordinal(i+1),
			percent(r.Similarity),
			meta.Name,
			fmt.Sprint(r.Pattern.VoiceCount()),
			fmt.Sprint(r.Pattern.TotalNotes()),
			bpmLabel(meta),
			difficultyLabel(meta.Difficulty),
		)
	}
	fmt.Println(t)
	fmt.Println()

	best := results[0].Pattern
	fmt.Println(boldStyle.Render("Breakdown for " + best.Metadata.Name))
	fmt.Printf("  Voice similarity:   %s\n", percent(analysis.VoiceSimilarity(target, best)))
	fmt.Printf("  Step similarity:    %s\n", percent(analysis.StepSimilarity(target, best)))
	fmt.Printf("  Rhythm similarity:  %s\n", percent(analysis.RhythmSimilarity(target, best)))
	fmt.Printf("  Density similarity: %s\n", percent(analysis.DensitySimilarity(target, best)))
	return nil
}

// excludeTarget drops the target file itself from the comparison set
func excludeTarget(entries []library.Entry, target string) []pattern.Pattern {
	abs, _ := filepath.Abs(target)
	var out []pattern.Pattern
	for _, e := range entries {
		if p, _ := filepath.Abs(e.Path); p == abs {
			continue
		}
		out = append(out, e.Pattern)
	}
	return out
}
