package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/james-see/po12toolbox/pkg/converter"
	"github.com/james-see/po12toolbox/pkg/pattern"
)

var templateOpts struct {
	list       bool
	category   string
	difficulty string
	name       string
	number     int
	output     string
}

var templateCmd = &cobra.Command{
	Use:   "template [id]",
	Short: "List built-in templates or create a pattern from one",
	Long: `Without an id, lists the built-in templates. With an id, writes a new
pattern based on that template.

Examples:
  po12 template --list --category genre
  po12 template basic-breakbeat -n "My Break" -p 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTemplate,
}

func init() {
	f := templateCmd.Flags()
	f.BoolVarP(&templateOpts.list, "list", "l", false, "List templates")
	f.StringVarP(&templateOpts.category, "category", "c", "", "Only templates in this category")
	f.StringVar(&templateOpts.difficulty, "difficulty", "", "Only templates of this difficulty")
	f.StringVarP(&templateOpts.name, "name", "n", "", "Name for the new pattern")
	f.IntVarP(&templateOpts.number, "pattern-number", "p", pattern.MinNumber, "Pattern slot (1-16)")
	f.StringVarP(&templateOpts.output, "output", "o", "", "Output directory (default: patterns directory)")
}

func runTemplate(cmd *cobra.Command, args []string) error {
	if templateOpts.list || len(args) == 0 {
		return listTemplates()
	}

	t, ok := pattern.TemplateByID(args[0])
	if !ok {
		return fmt.Errorf("unknown template %q", args[0])
	}
	p, err := t.Pattern(templateOpts.number, pattern.Metadata{Name: templateOpts.name})
	if err != nil {
		return fmt.Errorf("failed to create pattern: %w", err)
	}

	dir := templateOpts.output
	if dir == "" {
		dir = cfg.PatternsDir
	}
	path, err := converter.WriteMarkdownFile(p, dir)
	if err != nil {
		return err
	}
	printPattern(p)
	fmt.Println()
	fmt.Println(successStyle.Render("✓ Pattern created: ") + path)
	return nil
}

func listTemplates() error {
	var d pattern.Difficulty
	if templateOpts.difficulty != "" {
		var ok bool
		if d, ok = pattern.ParseDifficulty(templateOpts.difficulty); !ok {
			return fmt.Errorf("unknown difficulty %q", templateOpts.difficulty)
		}
	}

	var templates []pattern.Template
	switch {
	case templateOpts.category != "":
		for _, t := range pattern.TemplatesByCategory(templateOpts.category) {
			if d == pattern.DifficultyNone || t.Difficulty == d {
				templates = append(templates, t)
			}
		}
	case d != pattern.DifficultyNone:
		templates = pattern.TemplatesByDifficulty(d)
	default:
		templates = pattern.Templates()
	}

	if len(templates) == 0 {
		fmt.Println(warnStyle.Render("No templates match"))
		return nil
	}

	fmt.Println(headingStyle.Render("Pattern Templates"))
	fmt.Println()
	t := newTable("ID", "Name", "Category", "Difficulty", "BPM", "Description")
	for _, tpl := range templates {
		t.Row(
			tpl.ID,
			tpl.Name,
			tpl.Category,
			difficultyLabel(tpl.Difficulty),
			fmt.Sprint(tpl.SuggestedBPM),
			tpl.Description,
		)
	}
	fmt.Println(t)
	return nil
}
