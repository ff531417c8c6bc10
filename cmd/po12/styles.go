package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/james-see/po12toolbox/pkg/pattern"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00BCD4"))
	boldStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#39FF14")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD400"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)

	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

const ruleWidth = 70

func rule() string {
	return dimStyle.Render(strings.Repeat("─", ruleWidth))
}

// newTable builds the bordered table every listing uses
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
}

func difficultyLabel(d pattern.Difficulty) string {
	switch d {
	case pattern.DifficultyBeginner:
		return successStyle.UnsetBold().Render("beginner")
	case pattern.DifficultyIntermediate:
		return warnStyle.Render("intermediate")
	case pattern.DifficultyAdvanced:
		return errorStyle.UnsetBold().Render("advanced")
	default:
		return "-"
	}
}

func bpmLabel(meta pattern.Metadata) string {
	if !meta.HasBPM() {
		return "-"
	}
	return fmt.Sprint(meta.BPM)
}

func genreLabel(meta pattern.Metadata) string {
	if len(meta.Genre) == 0 {
		return "-"
	}
	return strings.Join(meta.Genre, ", ")
}

func percent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// printPattern shows metadata and the step grid of every voice
func printPattern(p pattern.Pattern) {
	meta := p.Metadata
	fmt.Println(headingStyle.Render(meta.Name))
	if meta.Description != "" {
		fmt.Println(dimStyle.Render(meta.Description))
	}
	fmt.Println()

	fmt.Printf("Pattern:    %d\n", p.Number())
	fmt.Printf("BPM:        %s\n", bpmLabel(meta))
	fmt.Printf("Genre:      %s\n", genreLabel(meta))
	fmt.Printf("Difficulty: %s\n", difficultyLabel(meta.Difficulty))
	if meta.Source != "" {
		fmt.Printf("Source:     %s\n", meta.Source)
	}
	if meta.Author != "" {
		fmt.Printf("Author:     %s\n", meta.Author)
	}
	fmt.Println()

	for _, v := range p.UsedVoices() {
		fmt.Println(boldStyle.Render(fmt.Sprintf("%s (Sound %d)", v.DisplayName(), v.Number())))
		fmt.Print(gridLine(p.Steps(v)))
	}
}

func gridLine(steps []int) string {
	on := make(map[int]bool, len(steps))
	for _, s := range steps {
		on[s] = true
	}
	var b strings.Builder
	for s := pattern.MinStep; s <= pattern.MaxStep; s++ {
		if on[s] {
			b.WriteString(successStyle.Render("●"))
		} else {
			b.WriteString(dimStyle.Render("·"))
		}
		if s%4 == 0 {
			b.WriteString(" ")
		}
	}
	b.WriteString("\n")
	return b.String()
}
