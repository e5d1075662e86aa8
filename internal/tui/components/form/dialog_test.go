package form

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func TestDialog(t *testing.T) {
	t.Run("creation focuses first field", func(t *testing.T) {
		f1 := NewTextField("Task", "", "")
		f2 := NewTextField("Owner", "", "")
		d := NewDialog("Test", []Field{f1, f2}, []string{"task", "owner"})

		assert.True(t, f1.Focused())
		assert.False(t, f2.Focused())
		assert.False(t, d.Submitted())
		assert.False(t, d.Cancelled())
	})

	t.Run("empty dialog", func(t *testing.T) {
		d := NewDialog("Empty", []Field{}, []string{})
		assert.False(t, d.Submitted())
		assert.Empty(t, d.FormValues())
		assert.Nil(t, d.Reset())
	})

	t.Run("tab advances and wraps without submitting", func(t *testing.T) {
		f1 := NewTextField("A", "", "")
		f2 := NewTextField("B", "", "")
		d := NewDialog("Test", []Field{f1, f2}, []string{"a", "b"})

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyTab}))
		assert.True(t, f2.Focused())

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyTab}))
		assert.True(t, f1.Focused())
		assert.False(t, d.Submitted())
	})

	t.Run("shift+tab retreats focus", func(t *testing.T) {
		f1 := NewTextField("A", "", "")
		f2 := NewTextField("B", "", "")
		d := NewDialog("Test", []Field{f1, f2}, []string{"a", "b"})

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyTab}))
		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyTab, Mod: tea.ModShift}))
		assert.True(t, f1.Focused())
		assert.False(t, f2.Focused())
	})

	t.Run("enter advances then submits on last field", func(t *testing.T) {
		f1 := NewTextField("A", "", "")
		f2 := NewTextField("B", "", "")
		d := NewDialog("Test", []Field{f1, f2}, []string{"a", "b"})

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter}))
		assert.True(t, f2.Focused())
		assert.False(t, d.Submitted())

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter}))
		assert.True(t, d.Submitted())
	})

	t.Run("ctrl+s submits from any field", func(t *testing.T) {
		d := NewItemDialog("Add")
		d.Update(tea.KeyPressMsg(tea.Key{Code: 's', Mod: tea.ModCtrl}))
		assert.True(t, d.Submitted())
	})

	t.Run("enter on textarea does not advance", func(t *testing.T) {
		f1 := NewTextAreaField("Body", "", "")
		f2 := NewTextField("Name", "", "")
		d := NewDialog("Test", []Field{f1, f2}, []string{"body", "name"})

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter}))
		assert.True(t, f1.Focused())
		assert.False(t, d.Submitted())
	})

	t.Run("escape cancels", func(t *testing.T) {
		d := NewItemDialog("Add")

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape}))
		assert.True(t, d.Cancelled())
		assert.False(t, d.Submitted())
	})

	t.Run("values by variable", func(t *testing.T) {
		d := NewItemDialog("Edit")
		d.SetValue(VarTask, "Send report")
		d.SetValue(VarOwner, "Alice")
		d.SetValue("missing", "ignored")

		assert.Equal(t, "Send report", d.Value(VarTask))
		assert.Equal(t, map[string]string{VarTask: "Send report", VarOwner: "Alice", VarDue: ""}, d.FormValues())
	})

	t.Run("typing goes to focused field", func(t *testing.T) {
		d := NewItemDialog("Add")
		for _, r := range "Hi" {
			d.Update(tea.KeyPressMsg(tea.Key{Code: r, Text: string(r)}))
		}
		assert.Equal(t, "Hi", d.Value(VarTask))
	})

	t.Run("reset clears values and flags", func(t *testing.T) {
		d := NewItemDialog("Add")
		d.SetValue(VarTask, "x")
		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyTab}))
		d.Update(tea.KeyPressMsg(tea.Key{Code: 's', Mod: tea.ModCtrl}))

		cmd := d.Reset()
		assert.NotNil(t, cmd)
		assert.False(t, d.Submitted())
		assert.Empty(t, d.Value(VarTask))
		assert.True(t, d.fields[0].Focused())
		assert.False(t, d.fields[1].Focused())
	})

	t.Run("rearm keeps values", func(t *testing.T) {
		d := NewItemDialog("Edit")
		d.SetValue(VarTask, "x")
		d.Update(tea.KeyPressMsg(tea.Key{Code: 's', Mod: tea.ModCtrl}))

		d.Rearm()
		assert.False(t, d.Submitted())
		assert.Equal(t, "x", d.Value(VarTask))
	})

	t.Run("view renders labels and help", func(t *testing.T) {
		view := NewItemDialog("Add").View()
		assert.Contains(t, view, "Task")
		assert.Contains(t, view, "Owner")
		assert.Contains(t, view, "Due date")
		assert.Contains(t, view, "tab")
	})
}
