// Package tui provides the terminal pattern editor for po12toolbox
package tui

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/james-see/po12toolbox/pkg/converter"
	"github.com/james-see/po12toolbox/pkg/pattern"
)

// State represents the current TUI state
type State int

const (
	StatePicker State = iota
	StateEditor
)

// Model is the bubbletea model for the pattern picker and editor
type Model struct {
	state      State
	filePicker filepicker.Model
	help       help.Model

	base    pattern.Pattern
	voices  pattern.Voices
	history *pattern.History
	cursor  Cursor

	saveDir string
	saved   string
	status  string
	err     error
}

// savedMsg signals the pattern was written
type savedMsg struct {
	path string
	err  error
}

// NewEditor opens p for editing. Saves go to dir.
func NewEditor(p pattern.Pattern, dir string) Model {
	return Model{
		state:   StateEditor,
		help:    help.New(),
		base:    p,
		voices:  p.Voices(),
		history: pattern.NewHistory(pattern.DefaultHistorySize),
		cursor:  Cursor{Voice: pattern.Kick, Step: pattern.MinStep},
		saveDir: dir,
	}
}

// NewPicker starts with a file picker over the markdown patterns in dir
func NewPicker(dir string) Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".md"}
	fp.CurrentDirectory = dir

	m := NewEditor(pattern.Pattern{}, dir)
	m.state = StatePicker
	m.filePicker = fp
	return m
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	if m.state == StatePicker {
		return m.filePicker.Init()
	}
	return nil
}

// State returns the current screen
func (m Model) State() State { return m.state }

// Voices returns a copy of the voices being edited
func (m Model) Voices() pattern.Voices { return m.voices.Clone() }

// Cursor returns the selected grid cell
func (m Model) Cursor() Cursor { return m.cursor }

// Saved returns the path of the last successful save
func (m Model) Saved() string { return m.saved }

// Pattern returns the edited pattern with the current voices
func (m Model) Pattern() (pattern.Pattern, error) {
	return m.base.WithVoices(m.voices)
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The picker needs every message, not just keys
	if m.state == StatePicker {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc", "q", "ctrl+c":
				return m, tea.Quit
			}
		}

		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			return m.open(path), nil
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.updateEditor(msg)

	case savedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.saved = msg.path
			m.status = "Saved " + filepath.Base(msg.path)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) open(path string) Model {
	p, err := converter.ParseMarkdownFile(path)
	if err != nil {
		m.err = err
		return m
	}
	edit := NewEditor(p, filepath.Dir(path))
	edit.status = "Opened " + filepath.Base(path)
	return edit
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor.Voice > pattern.Kick {
			m.cursor.Voice--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor.Voice < pattern.Sticks {
			m.cursor.Voice++
		}
	case key.Matches(msg, keys.Left):
		m.cursor.Step--
		if m.cursor.Step < pattern.MinStep {
			m.cursor.Step = pattern.MaxStep
		}
	case key.Matches(msg, keys.Right):
		m.cursor.Step++
		if m.cursor.Step > pattern.MaxStep {
			m.cursor.Step = pattern.MinStep
		}

	case key.Matches(msg, keys.Toggle):
		steps := toggle(m.voices[m.cursor.Voice], m.cursor.Step)
		cmd := pattern.SetSteps(m.voices, m.cursor.Voice, steps)
		m.voices = m.history.Execute(m.voices, cmd)
		m.status = cmd.Describe()

	case key.Matches(msg, keys.Undo):
		desc := m.history.UndoDescription()
		if vs, ok := m.history.Undo(m.voices); ok {
			m.voices = vs
			m.status = "Undo: " + desc
		} else {
			m.status = "Nothing to undo"
		}
	case key.Matches(msg, keys.Redo):
		desc := m.history.RedoDescription()
		if vs, ok := m.history.Redo(m.voices); ok {
			m.voices = vs
			m.status = "Redo: " + desc
		} else {
			m.status = "Nothing to redo"
		}

	case key.Matches(msg, keys.Save):
		return m, m.save()
	}
	return m, nil
}

func (m Model) save() tea.Cmd {
	p, err := m.Pattern()
	dir := m.saveDir
	return func() tea.Msg {
		if err != nil {
			return savedMsg{err: err}
		}
		path, err := converter.WriteMarkdownFile(p, dir)
		return savedMsg{path: path, err: err}
	}
}

// toggle flips step in a sorted step list
func toggle(steps []int, step int) []int {
	out := make([]int, 0, len(steps)+1)
	found := false
	for _, s := range steps {
		if s == step {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		out = append(out, step)
		slices.Sort(out)
	}
	return out
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	switch m.state {
	case StatePicker:
		s.WriteString(titleStyle.Render(" SELECT PATTERN "))
		s.WriteString("\n\n")
		s.WriteString(m.filePicker.View())
		if m.err != nil {
			s.WriteString("\n")
			s.WriteString(errorStyle.Render("✗ " + m.err.Error()))
		}
		s.WriteString("\n")
		s.WriteString(helpStyle.Render("enter: open • esc: quit"))
		return s.String()

	case StateEditor:
		name := m.base.Metadata.Name
		if name == "" {
			name = "Untitled"
		}
		s.WriteString(titleStyle.Render(fmt.Sprintf(" %s · PATTERN %d ", strings.ToUpper(name), m.base.Number())))
		s.WriteString("\n")
		s.WriteString(RenderGrid(m.voices, m.cursor))

		if m.err != nil {
			s.WriteString(statusStyle.Render(errorStyle.Render("✗ " + m.err.Error())))
		} else if m.status != "" {
			s.WriteString(statusStyle.Render(m.status))
		}
		s.WriteString("\n")
		s.WriteString(helpStyle.Render(m.help.View(keys)))
	}

	return boxStyle.Render(s.String())
}

// Run starts the editor on p, saving into dir
func Run(p pattern.Pattern, dir string) error {
	prog := tea.NewProgram(NewEditor(p, dir), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}

// RunPicker lets the user choose a pattern from dir and edit it
func RunPicker(dir string) error {
	prog := tea.NewProgram(NewPicker(dir), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}
