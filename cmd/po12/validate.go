package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/james-see/po12toolbox/pkg/pattern"
)

var validateCmd = &cobra.Command{
	Use:   "validate <pattern>...",
	Short: "Check patterns for errors and common mistakes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	conv := newConverter()
	failed := 0

	for _, path := range args {
		fmt.Println(boldStyle.Render(filepath.Base(path)))
		p, err := conv.ReadPattern(path)
		if err != nil {
			fmt.Println(errorStyle.Render("  ✗ " + err.Error()))
			failed++
			continue
		}

		res := pattern.Validate(p)
		printValidation(res)
		if res.Valid() {
			fmt.Println(successStyle.Render("  ✓ valid"))
		} else {
			failed++
		}
	}

	fmt.Println()
	if failed > 0 {
		return fmt.Errorf("%d of %d pattern(s) failed validation", failed, len(args))
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("All %d pattern(s) valid", len(args))))
	return nil
}

func printValidation(res pattern.ValidationResult) {
	for _, e := range res.Errors {
		fmt.Println(errorStyle.Render("  ✗ " + e))
	}
	for _, w := range res.Warnings {
		fmt.Println(warnStyle.Render("  ⚠ " + w))
	}
}
