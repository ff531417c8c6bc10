package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/james-see/po12toolbox/pkg/library"
	"github.com/james-see/po12toolbox/pkg/pattern"
)

var listOpts struct {
	genre      string
	difficulty string
	minBPM     int
	maxBPM     int
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the patterns in the library",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	f := listCmd.Flags()
	f.StringVarP(&listOpts.genre, "genre", "g", "", "Only patterns whose genre contains this text")
	f.StringVar(&listOpts.difficulty, "difficulty", "", "Only patterns of this difficulty")
	f.IntVar(&listOpts.minBPM, "min-bpm", 0, "Minimum BPM")
	f.IntVar(&listOpts.maxBPM, "max-bpm", 0, "Maximum BPM")
}

func runList(cmd *cobra.Command, args []string) error {
	filter := library.Filter{
		Genre:  listOpts.genre,
		MinBPM: listOpts.minBPM,
		MaxBPM: listOpts.maxBPM,
	}
	if listOpts.difficulty != "" {
		d, ok := pattern.ParseDifficulty(listOpts.difficulty)
		if !ok {
			return fmt.Errorf("unknown difficulty %q", listOpts.difficulty)
		}
		filter.Difficulty = d
	}

	entries, err := newLibrary().Load()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println(warnStyle.Render("No patterns found in " + cfg.PatternsDir))
		return nil
	}

	matched := filter.Apply(entries)
	fmt.Println(headingStyle.Render("PO-12 Pattern Library"))
	if !filter.IsZero() {
		fmt.Println(dimStyle.Render(fmt.Sprintf("%d of %d patterns match", len(matched), len(entries))))
	}
	fmt.Println()

	if len(matched) == 0 {
		fmt.Println(warnStyle.Render("No patterns match the filters"))
		return nil
	}

	t := newTable("File", "Name", "#", "BPM", "Genre", "Difficulty", "Voices")
	for _, e := range matched {
		meta := e.Pattern.Metadata
		t.Row(
			filepath.Base(e.Path),
			meta.Name,
			fmt.Sprint(e.Pattern.Number()),
			bpmLabel(meta),
			genreLabel(meta),
			difficultyLabel(meta.Difficulty),
			voiceList(e.Pattern.UsedVoices()),
		)
	}
	fmt.Println(t)
	return nil
}

func voiceList(voices []pattern.Voice) string {
	names := make([]string, len(voices))
	for i, v := range voices {
		names[i] = v.ShortName()
	}
	return strings.Join(names, " ")
}
