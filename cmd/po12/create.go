package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/james-see/po12toolbox/pkg/converter"
	"github.com/james-see/po12toolbox/pkg/pattern"
	"github.com/james-see/po12toolbox/pkg/tui"
)

var createOpts struct {
	template    string
	steps       []string
	name        string
	description string
	number      int
	bpm         int
	genre       []string
	difficulty  string
	source      string
	author      string
	interactive bool
	output      string
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new pattern",
	Long: `Create a pattern from a template, from text notation, or in the grid editor.

Examples:
  po12 create --template four-on-the-floor -n "House Starter"
  po12 create -n "Half Time" --steps "kick: 1,11" --steps "snare: 9"
  po12 create -n "Sketch" --interactive`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

func init() {
	f := createCmd.Flags()
	f.StringVarP(&createOpts.template, "template", "t", "", "Start from a built-in template id")
	f.StringArrayVarP(&createOpts.steps, "steps", "s", nil, `Voice steps in text notation, e.g. "kick: 1,5,9,13" (repeatable)`)
	f.StringVarP(&createOpts.name, "name", "n", "", "Pattern name")
	f.StringVar(&createOpts.description, "description", "", "Pattern description")
	f.IntVarP(&createOpts.number, "pattern-number", "p", pattern.MinNumber, "Pattern slot (1-16)")
	f.IntVar(&createOpts.bpm, "bpm", 0, "Tempo in BPM")
	f.StringSliceVarP(&createOpts.genre, "genre", "g", nil, "Genre tags")
	f.StringVar(&createOpts.difficulty, "difficulty", "", "beginner, intermediate or advanced")
	f.StringVar(&createOpts.source, "source", "", "Where the pattern comes from")
	f.StringVar(&createOpts.author, "author", "", "Pattern author")
	f.BoolVarP(&createOpts.interactive, "interactive", "i", false, "Open the grid editor after creating")
	f.StringVarP(&createOpts.output, "output", "o", "", "Output directory (default: patterns directory)")
}

func createMetadata() (pattern.Metadata, error) {
	meta := pattern.Metadata{
		Name:        createOpts.name,
		Description: createOpts.description,
		BPM:         createOpts.bpm,
		Genre:       createOpts.genre,
		Source:      createOpts.source,
		Author:      createOpts.author,
		Created:     pattern.Today(),
	}
	if createOpts.difficulty != "" {
		d, ok := pattern.ParseDifficulty(createOpts.difficulty)
		if !ok {
			return meta, fmt.Errorf("unknown difficulty %q", createOpts.difficulty)
		}
		meta.Difficulty = d
	}
	return meta, nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	meta, err := createMetadata()
	if err != nil {
		return err
	}

	var p pattern.Pattern
	switch {
	case createOpts.template != "":
		t, ok := pattern.TemplateByID(createOpts.template)
		if !ok {
			return fmt.Errorf("unknown template %q (see 'po12 template --list')", createOpts.template)
		}
		p, err = t.Pattern(createOpts.number, meta)
	default:
		if strings.TrimSpace(meta.Name) == "" {
			return errors.New("a pattern name is required (--name)")
		}
		voices := converter.ParseText(strings.Join(createOpts.steps, "\n"))
		if len(voices) == 0 && !createOpts.interactive {
			return errors.New("no voices given: use --steps, --template or --interactive")
		}
		p, err = pattern.New(createOpts.number, voices, meta)
	}
	if err != nil {
		return fmt.Errorf("failed to create pattern: %w", err)
	}

	dir := createOpts.output
	if dir == "" {
		dir = cfg.PatternsDir
	}

	if createOpts.interactive {
		logger.Debug("opening editor", slog.String("name", p.Metadata.Name))
		return tui.Run(p, dir)
	}

	path, err := converter.WriteMarkdownFile(p, dir)
	if err != nil {
		return err
	}

	printValidation(pattern.Validate(p))
	fmt.Println(successStyle.Render("✓ Pattern created: ") + path)
	return nil
}
