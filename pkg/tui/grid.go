package tui

import (
	"fmt"
	"strings"

	"github.com/james-see/po12toolbox/pkg/pattern"
)

const (
	labelWidth = 18
	cellOn     = "●"
	cellOff    = "·"
)

// Cursor addresses one cell of the voice × step grid
type Cursor struct {
	Voice pattern.Voice
	Step  int
}

// RenderGrid draws all 16 voices against 16 steps, highlighting the cursor
// cell. Beat boundaries are separated by a gap.
func RenderGrid(voices pattern.Voices, cur Cursor) string {
	var b strings.Builder

	b.WriteString(strings.Repeat(" ", labelWidth))
	for s := pattern.MinStep; s <= pattern.MaxStep; s++ {
		fmt.Fprintf(&b, "%2d", s)
		if s%4 == 0 && s != pattern.MaxStep {
			b.WriteString(" ")
		}
	}
	b.WriteString("\n")

	for _, v := range pattern.AllVoices() {
		on := make(map[int]bool)
		for _, s := range voices[v] {
			on[s] = true
		}

		label := fmt.Sprintf("%2d %s", v.Number(), v.DisplayName())
		if v == cur.Voice {
			b.WriteString(activeLabelStyle.Render(label))
		} else {
			b.WriteString(voiceLabelStyle.Render(label))
		}

		for s := pattern.MinStep; s <= pattern.MaxStep; s++ {
			cell := cellOff
			style := cellOffStyle
			if on[s] {
				cell = cellOn
				style = cellOnStyle
			}
			if v == cur.Voice && s == cur.Step {
				style = cursorStyle
			}
			b.WriteString(" ")
			b.WriteString(style.Render(cell))
			if s%4 == 0 && s != pattern.MaxStep {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
