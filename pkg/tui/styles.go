package tui

import "github.com/charmbracelet/lipgloss"

// PO-12 panel colors
var (
	panelOrange = lipgloss.Color("#FF6F00")
	padYellow   = lipgloss.Color("#FFD400")
	silverGray  = lipgloss.Color("#C0C0C0")
	darkGray    = lipgloss.Color("#333333")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(panelOrange).
			Background(darkGray).
			Padding(0, 2).
			MarginBottom(1)

	voiceLabelStyle = lipgloss.NewStyle().
			Foreground(silverGray).
			Width(labelWidth)

	activeLabelStyle = lipgloss.NewStyle().
				Foreground(panelOrange).
				Bold(true).
				Width(labelWidth)

	cellOnStyle = lipgloss.NewStyle().
			Foreground(panelOrange).
			Bold(true)

	cellOffStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(darkGray).
			Background(padYellow).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(padYellow).
			PaddingTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(panelOrange).
			Padding(1, 2)
)
