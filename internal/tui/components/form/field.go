// Package form provides the small set of text form fields used by the board:
// the transcript editor and the add/edit item forms.
package form

import tea "charm.land/bubbletea/v2"

// Field is the interface implemented by all form field types.
type Field interface {
	Update(msg tea.Msg) (Field, tea.Cmd)
	View() string
	Focus() tea.Cmd
	Blur()
	Focused() bool
	Value() string
	SetValue(s string)
	Reset()
	SetWidth(w int)
	Label() string
}
