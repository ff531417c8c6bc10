package pattern

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultHistorySize caps the undo stack
const DefaultHistorySize = 50

// EditCommand is a reversible edit. Both directions return a new voice map
// and leave their input untouched.
type EditCommand interface {
	Apply(Voices) Voices
	Revert(Voices) Voices
	Describe() string
}

// AddVoice adds a voice that was not present
type AddVoice struct {
	Voice Voice
	Steps []int
}

func (c AddVoice) Apply(vs Voices) Voices {
	out := vs.Clone()
	out[c.Voice] = append([]int(nil), c.Steps...)
	return out
}

func (c AddVoice) Revert(vs Voices) Voices {
	out := vs.Clone()
	delete(out, c.Voice)
	return out
}

func (c AddVoice) Describe() string {
	return fmt.Sprintf("Added %s: %s", c.Voice.DisplayName(), joinSteps(c.Steps))
}

// RemoveVoice removes a voice, remembering its steps
type RemoveVoice struct {
	Voice         Voice
	PreviousSteps []int
}

func (c RemoveVoice) Apply(vs Voices) Voices {
	out := vs.Clone()
	delete(out, c.Voice)
	return out
}

func (c RemoveVoice) Revert(vs Voices) Voices {
	out := vs.Clone()
	out[c.Voice] = append([]int(nil), c.PreviousSteps...)
	return out
}

func (c RemoveVoice) Describe() string {
	return "Removed " + c.Voice.DisplayName()
}

// ModifyVoice replaces the steps of a voice
type ModifyVoice struct {
	Voice    Voice
	OldSteps []int
	NewSteps []int
}

func (c ModifyVoice) Apply(vs Voices) Voices {
	out := vs.Clone()
	out[c.Voice] = append([]int(nil), c.NewSteps...)
	return out
}

func (c ModifyVoice) Revert(vs Voices) Voices {
	out := vs.Clone()
	out[c.Voice] = append([]int(nil), c.OldSteps...)
	return out
}

func (c ModifyVoice) Describe() string {
	return fmt.Sprintf("Modified %s: %s", c.Voice.DisplayName(), joinSteps(c.NewSteps))
}

// SetSteps returns the command that takes vs to the given steps for a voice.
// An empty step list removes the voice.
func SetSteps(vs Voices, v Voice, steps []int) EditCommand {
	old, present := vs[v]
	switch {
	case !present:
		return AddVoice{Voice: v, Steps: steps}
	case len(steps) == 0:
		return RemoveVoice{Voice: v, PreviousSteps: old}
	default:
		return ModifyVoice{Voice: v, OldSteps: old, NewSteps: steps}
	}
}

// History keeps undo and redo stacks of edit commands
type History struct {
	limit int
	undo  []EditCommand
	redo  []EditCommand
}

// NewHistory creates a history holding at most limit commands
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistorySize
	}
	return &History{limit: limit}
}

// Execute applies cmd, records it and clears the redo stack
func (h *History) Execute(vs Voices, cmd EditCommand) Voices {
	h.undo = append(h.undo, cmd)
	if len(h.undo) > h.limit {
		h.undo = h.undo[1:]
	}
	h.redo = nil
	return cmd.Apply(vs)
}

// CanUndo reports whether there is something to undo
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether there is something to redo
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Undo reverts the last command. ok is false when there is nothing to undo.
func (h *History) Undo(vs Voices) (Voices, bool) {
	if len(h.undo) == 0 {
		return vs, false
	}
	cmd := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, cmd)
	return cmd.Revert(vs), true
}

// Redo re-applies the last undone command
func (h *History) Redo(vs Voices) (Voices, bool) {
	if len(h.redo) == 0 {
		return vs, false
	}
	cmd := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, cmd)
	return cmd.Apply(vs), true
}

// UndoDescription describes the command Undo would revert
func (h *History) UndoDescription() string {
	if len(h.undo) == 0 {
		return ""
	}
	return h.undo[len(h.undo)-1].Describe()
}

// RedoDescription describes the command Redo would apply
func (h *History) RedoDescription() string {
	if len(h.redo) == 0 {
		return ""
	}
	return h.redo[len(h.redo)-1].Describe()
}

// Clear drops both stacks
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

func joinSteps(steps []int) string {
	parts := make([]string, len(steps))
	for i, s := range steps {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ", ")
}
