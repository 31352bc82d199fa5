package website

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) startEditing() tea.Cmd {
	m.editing = true
	m.focusedField = fieldStart
	m.startInput.SetValue(m.form.Start)
	m.endInput.SetValue(m.form.End)
	m.updateFormFocus()
	return textinput.Blink
}

func (m *Model) stopEditing() {
	m.editing = false
	m.startInput.Blur()
	m.endInput.Blur()
}

// commitStart applies the start field. A changed start moves the end to the
// following day, which is then shown in the end field.
func (m *Model) commitStart() {
	if v := m.startInput.Value(); v != m.form.Start {
		m.form.SelectStart(v)
		m.endInput.SetValue(m.form.End)
	}
}

// updateDateForm handles keys while the date fields are focused.
func (m *Model) updateDateForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.stopEditing()
		return nil

	case "tab", "shift+tab", "up", "down":
		if m.focusedField == fieldStart {
			m.commitStart()
			m.focusedField = fieldEnd
		} else {
			m.focusedField = fieldStart
		}
		m.updateFormFocus()
		return textinput.Blink

	case "enter":
		m.commitStart()
		m.form.SelectEnd(m.endInput.Value())
		m.presetApplied = false
		m.stopEditing()
		return nil
	}

	var cmd tea.Cmd
	switch m.focusedField {
	case fieldStart:
		m.startInput, cmd = m.startInput.Update(msg)
	case fieldEnd:
		m.endInput, cmd = m.endInput.Update(msg)
	}
	return cmd
}

// updateFormFocus updates which date field is focused.
func (m *Model) updateFormFocus() {
	m.startInput.Blur()
	m.endInput.Blur()

	switch m.focusedField {
	case fieldStart:
		m.startInput.Focus()
	case fieldEnd:
		m.endInput.Focus()
	}
}
