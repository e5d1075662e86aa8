package tui

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/minutes/internal/core/sanitize"
	"github.com/colonyops/minutes/internal/core/tracker"
	"github.com/colonyops/minutes/internal/tui/components"
	"github.com/colonyops/minutes/internal/tui/components/form"
)

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	switch m.state {
	case stateConfirmingDelete:
		return m.handleDeleteKey(msg)
	case stateAdding:
		return m.handleAddFormKey(msg)
	case stateEditing:
		return m.handleEditFormKey(msg)
	case stateShowingHelp:
		return m.handleHelpKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m, m.ctrl.Submit(m.transcript.Value())
	case key.Matches(msg, m.keys.NextPane):
		return m.setFocus((m.focus + 1) % paneCount)
	case key.Matches(msg, m.keys.PrevPane):
		return m.setFocus((m.focus + paneCount - 1) % paneCount)
	}

	if m.focus == paneTranscript {
		_, cmd := m.transcript.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.helpDialog = components.NewHelpDialog("minutes "+m.opts.Build.label(), m.keys.helpSections())
		m.state = stateShowingHelp
		return m, nil
	}

	if m.focus == paneHistory {
		return m.handleHistoryKey(msg)
	}
	return m.handleItemsKey(msg)
}

func (m Model) setFocus(p pane) (tea.Model, tea.Cmd) {
	m.focus = p
	if p == paneTranscript {
		return m, m.transcript.Focus()
	}
	m.transcript.Blur()
	return m, nil
}

func (m Model) handleItemsKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	s := m.ctrl.State()

	switch {
	case key.Matches(msg, m.keys.Up):
		m.itemCursor = clamp(m.itemCursor-1, len(s.Items))
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.itemCursor = clamp(m.itemCursor+1, len(s.Items))
		return m, nil
	case key.Matches(msg, m.keys.Filter):
		return m, m.ctrl.ChangeFilter(s.Filter.Next())
	case key.Matches(msg, m.keys.All):
		return m, m.ctrl.ChangeFilter(tracker.FilterAll)
	case key.Matches(msg, m.keys.Open):
		return m, m.ctrl.ChangeFilter(tracker.FilterOpen)
	case key.Matches(msg, m.keys.Done):
		return m, m.ctrl.ChangeFilter(tracker.FilterDone)
	case key.Matches(msg, m.keys.Reload):
		return m, tea.Batch(m.ctrl.LoadItems(), m.ctrl.LoadHistory())
	case key.Matches(msg, m.keys.New):
		return m.openAddForm()
	}

	item, ok := m.selectedItem()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Toggle):
		return m, m.ctrl.Toggle(item.ID, !item.Done())
	case key.Matches(msg, m.keys.Edit):
		return m.openEditForm(item)
	case key.Matches(msg, m.keys.Delete):
		m.ctrl.RequestDelete(item.ID)
		m.deleteBox = NewModal("Delete action item?", fmt.Sprintf("%q will be removed.", sanitize.Line(item.Task)))
		m.state = stateConfirmingDelete
		return m, nil
	}
	return m, nil
}

func (m Model) selectedItem() (tracker.ActionItem, bool) {
	items := m.ctrl.State().Items
	if len(items) == 0 {
		return tracker.ActionItem{}, false
	}
	return items[clamp(m.itemCursor, len(items))], true
}

func (m Model) handleHistoryKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	history := m.ctrl.State().History

	switch {
	case key.Matches(msg, m.keys.Up):
		m.historyCursor = clamp(m.historyCursor-1, len(history))
	case key.Matches(msg, m.keys.Down):
		m.historyCursor = clamp(m.historyCursor+1, len(history))
	case key.Matches(msg, m.keys.Reload):
		return m, m.ctrl.LoadHistory()
	case key.Matches(msg, m.keys.Load):
		if len(history) == 0 {
			return m, nil
		}
		id := history[clamp(m.historyCursor, len(history))].ID
		m.focus = paneItems
		m.itemCursor = 0
		return m, m.ctrl.LoadTranscript(id)
	}
	return m, nil
}

func (m Model) openAddForm() (tea.Model, tea.Cmd) {
	m.addForm = form.NewItemDialog("New action item")
	m.state = stateAdding
	m.layoutInputs()
	return m, nil
}

func (m Model) openEditForm(item tracker.ActionItem) (tea.Model, tea.Cmd) {
	m.ctrl.BeginEdit(item.ID)

	d := form.NewItemDialog("Edit action item")
	d.SetValue(form.VarTask, sanitize.Line(item.Task))
	d.SetValue(form.VarOwner, sanitize.Line(item.Owner))
	d.SetValue(form.VarDue, sanitize.Line(item.DueDate))

	m.editForm = d
	m.editID = item.ID
	m.state = stateEditing
	m.layoutInputs()
	return m, nil
}

func (m Model) handleAddFormKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.addForm, cmd = m.addForm.Update(msg)

	switch {
	case m.addForm.Cancelled():
		m.addForm = nil
		m.state = stateNormal
		return m, nil
	case m.addForm.Submitted():
		m.addForm.Rearm()
		add := m.ctrl.AddItem(
			m.addForm.Value(form.VarTask),
			m.addForm.Value(form.VarOwner),
			m.addForm.Value(form.VarDue),
		)
		return m, tea.Batch(cmd, add)
	}
	return m, cmd
}

func (m Model) handleEditFormKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.editForm, cmd = m.editForm.Update(msg)

	switch {
	case m.editForm.Cancelled():
		m.ctrl.CancelEdit()
		m.editForm = nil
		m.editID = 0
		m.state = stateNormal
		return m, nil
	case m.editForm.Submitted():
		m.editForm.Rearm()
		save := m.ctrl.SaveEdit(
			m.editID,
			m.editForm.Value(form.VarTask),
			m.editForm.Value(form.VarOwner),
			m.editForm.Value(form.VarDue),
		)
		return m, tea.Batch(cmd, save)
	}
	return m, cmd
}

func (m Model) handleDeleteKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	m.deleteBox.Update(msg)

	switch {
	case m.deleteBox.Confirmed():
		m.deleteBox = nil
		m.state = stateNormal
		return m, m.ctrl.ConfirmDelete()
	case m.deleteBox.Cancelled():
		m.ctrl.CancelDelete()
		m.deleteBox = nil
		m.state = stateNormal
	}
	return m, nil
}

func (m Model) handleHelpKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "?", "q", "enter":
		m.helpDialog = nil
		m.state = stateNormal
	}
	return m, nil
}
