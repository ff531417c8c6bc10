package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/james-see/po12toolbox/pkg/converter"
)

var viewCmd = &cobra.Command{
	Use:   "view <pattern>",
	Short: "Show a pattern with its step grids",
	Args:  cobra.ExactArgs(1),
	RunE:  runView,
}

func runView(cmd *cobra.Command, args []string) error {
	p, err := newConverter().ReadPattern(args[0])
	if err != nil {
		return err
	}

	printPattern(p)
	fmt.Println()
	if !p.Metadata.Created.IsZero() {
		fmt.Println(dimStyle.Render(fmt.Sprintf("Created %s (%s)",
			p.Metadata.Created.Format("2006-01-02"), humanize.Time(p.Metadata.Created))))
	}
	fmt.Println(dimStyle.Render(converter.TextNotation(p.Voices())))
	return nil
}
