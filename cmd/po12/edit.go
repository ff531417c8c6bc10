package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/james-see/po12toolbox/pkg/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit <pattern>",
	Short: "Edit a pattern in the grid editor",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Pick a pattern from the library and edit it",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func runEdit(cmd *cobra.Command, args []string) error {
	p, err := newConverter().ReadPattern(args[0])
	if err != nil {
		return err
	}
	return tui.Run(p, filepath.Dir(args[0]))
}

func runTUI(cmd *cobra.Command, args []string) error {
	dir, err := filepath.Abs(cfg.PatternsDir)
	if err != nil {
		return err
	}
	return tui.RunPicker(dir)
}
