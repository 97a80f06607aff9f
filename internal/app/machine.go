package app

import (
	"strconv"

	"github.com/audiolibrelab/lapsecapture/internal/settings"
	"github.com/audiolibrelab/lapsecapture/internal/ui"
)

// Editor is the numeric keypad's working state; it only exists while the
// numeric screen is active.
type Editor struct {
	Field  settings.Field
	Buffer string
	Return ui.ScreenID
}

// Append adds a digit unless the buffer already holds as many digits as
// the field's maximum has.
func (e *Editor) Append(d int) {
	if d < 0 || d > 9 {
		return
	}
	if e.Buffer == "0" {
		e.Buffer = ""
	}
	if len(e.Buffer) >= e.Field.MaxDigits() {
		return
	}
	e.Buffer += strconv.Itoa(d)
}

func (e *Editor) Delete() {
	if len(e.Buffer) > 0 {
		e.Buffer = e.Buffer[:len(e.Buffer)-1]
	}
}

// Value parses the buffer; empty or unparsable commits as zero, then the
// result is clamped into the field's range.
func (e *Editor) Value() int {
	n, err := strconv.Atoi(e.Buffer)
	if err != nil {
		n = 0
	}
	return e.Field.Clamp(n)
}

// Machine tracks the active screen
type Machine struct {
	active ui.ScreenID
	editor *Editor
}

func NewMachine() *Machine {
	return &Machine{active: ui.ScreenViewfinder}
}

func (m *Machine) Active() ui.ScreenID {
	return m.active
}

// Editor is nil unless the numeric screen is active
func (m *Machine) Editor() *Editor {
	return m.editor
}

func (m *Machine) OpenSettings() {
	m.active = ui.ScreenSettings
}

// OpenEditor starts editing field with its current value as the buffer
func (m *Machine) OpenEditor(field settings.Field, current int) {
	m.editor = &Editor{
		Field:  field,
		Buffer: strconv.Itoa(current),
		Return: m.active,
	}
	m.active = ui.ScreenNumeric
}

// CloseEditor returns to the screen the editor was opened from
func (m *Machine) CloseEditor() {
	if m.editor == nil {
		return
	}
	m.active = m.editor.Return
	m.editor = nil
}

func (m *Machine) Done() {
	m.active = ui.ScreenViewfinder
}

// screenFor reports which screen owns an action kind
func screenFor(kind ui.ActionKind) (ui.ScreenID, bool) {
	switch kind {
	case ui.ActionStart, ui.ActionStop, ui.ActionOpenSettings:
		return ui.ScreenViewfinder, true
	case ui.ActionEditField, ui.ActionSettingsDone, ui.ActionShutdown:
		return ui.ScreenSettings, true
	case ui.ActionDigit, ui.ActionDelete, ui.ActionCancel, ui.ActionConfirm:
		return ui.ScreenNumeric, true
	default:
		return 0, false
	}
}
