package form

import (
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/minutes/internal/core/styles"
)

// Dialog is a form container that manages focus cycling, submission, and
// cancellation across a set of form fields.
type Dialog struct {
	fields       []Field
	variables    []string // parallel slice: variable name for each field
	focusedField int
	submitted    bool
	cancelled    bool
	Title        string
}

// NewDialog creates a form dialog with the given fields and variable names.
// The first field is focused automatically.
func NewDialog(title string, fields []Field, variables []string) *Dialog {
	d := &Dialog{
		fields:    fields,
		variables: variables,
		Title:     title,
	}
	if len(fields) > 0 {
		fields[0].Focus()
	}
	return d
}

// Update handles key input for the dialog, managing focus cycling and submit/cancel.
func (d *Dialog) Update(msg tea.Msg) (*Dialog, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return d.updateFocusedField(msg)
	}

	switch keyMsg.String() {
	case "tab", "down":
		return d.advanceFocus(false)
	case "shift+tab", "up":
		return d.retreatFocus()
	case "enter":
		if d.isTextAreaFocused() {
			return d.updateFocusedField(msg)
		}
		return d.advanceFocus(true)
	case "ctrl+s":
		d.submitted = true
		return d, nil
	case "esc":
		d.cancelled = true
		return d, nil
	}

	return d.updateFocusedField(msg)
}

// View renders all fields vertically with spacing and help text.
func (d *Dialog) View() string {
	var parts []string
	for i, field := range d.fields {
		if i > 0 {
			parts = append(parts, "")
		}
		parts = append(parts, field.View())
	}

	help := styles.HelpDescStyle.Render("tab: next  shift+tab: prev  enter: submit  esc: cancel")
	parts = append(parts, "", help)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Value returns the value of the field bound to variable, or "".
func (d *Dialog) Value(variable string) string {
	for i, v := range d.variables {
		if v == variable {
			return d.fields[i].Value()
		}
	}
	return ""
}

// SetValue sets the field bound to variable.
func (d *Dialog) SetValue(variable, value string) {
	for i, v := range d.variables {
		if v == variable {
			d.fields[i].SetValue(value)
			return
		}
	}
}

// FormValues returns a map of variable names to field values.
func (d *Dialog) FormValues() map[string]string {
	result := make(map[string]string, len(d.fields))
	for i, field := range d.fields {
		result[d.variables[i]] = field.Value()
	}
	return result
}

// Reset clears every field, the submitted and cancelled flags, and moves
// focus back to the first field.
func (d *Dialog) Reset() tea.Cmd {
	d.submitted = false
	d.cancelled = false
	for _, f := range d.fields {
		f.Reset()
		f.Blur()
	}
	d.focusedField = 0
	if len(d.fields) == 0 {
		return nil
	}
	return d.fields[0].Focus()
}

// Rearm clears the submitted flag while keeping values, so the same form
// can be submitted again after a failed save.
func (d *Dialog) Rearm() {
	d.submitted = false
}

// SetWidth resizes every field.
func (d *Dialog) SetWidth(w int) {
	for _, f := range d.fields {
		f.SetWidth(w)
	}
}

// Submitted returns whether the form was submitted.
func (d *Dialog) Submitted() bool { return d.submitted }

// Cancelled returns whether the form was cancelled.
func (d *Dialog) Cancelled() bool { return d.cancelled }

// advanceFocus moves to the next field. Moving past the last field submits
// the form only when submit is set.
func (d *Dialog) advanceFocus(submit bool) (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 {
		return d, nil
	}

	next := d.focusedField + 1
	if next >= len(d.fields) {
		if submit {
			d.submitted = true
			return d, nil
		}
		next = 0
	}

	d.fields[d.focusedField].Blur()
	d.focusedField = next
	cmd := d.fields[d.focusedField].Focus()
	return d, cmd
}

func (d *Dialog) retreatFocus() (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 || d.focusedField == 0 {
		return d, nil
	}

	d.fields[d.focusedField].Blur()
	d.focusedField--
	cmd := d.fields[d.focusedField].Focus()
	return d, cmd
}

func (d *Dialog) updateFocusedField(msg tea.Msg) (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 {
		return d, nil
	}

	var cmd tea.Cmd
	d.fields[d.focusedField], cmd = d.fields[d.focusedField].Update(msg)
	return d, cmd
}

func (d *Dialog) isTextAreaFocused() bool {
	if len(d.fields) == 0 {
		return false
	}
	_, ok := d.fields[d.focusedField].(*TextAreaField)
	return ok
}
