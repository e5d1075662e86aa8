package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/minutes/internal/board"
	"github.com/colonyops/minutes/internal/core/styles"
	"github.com/colonyops/minutes/internal/tui/components/form"
)

// View renders the TUI.
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	vm := board.BuildView(m.ctrl.State(), board.ViewOptions{Now: m.opts.Now()})
	mainView := m.renderBoard(vm, w, h)

	var content string
	switch {
	case m.state == stateAdding && m.addForm != nil:
		content = overlayCenter(mainView, renderFormModal(m.addForm), w, h)
	case m.state == stateEditing && m.editForm != nil:
		content = overlayCenter(mainView, renderFormModal(m.editForm), w, h)
	case m.state == stateConfirmingDelete && m.deleteBox != nil:
		content = m.deleteBox.Overlay(mainView, w, h)
	case m.state == stateShowingHelp && m.helpDialog != nil:
		content = m.helpDialog.Overlay(mainView, w, h)
	default:
		content = mainView
	}

	if m.toasts.HasToasts() {
		content = m.toastUI.Overlay(content, w, h)
	}
	return content
}

func renderFormModal(d *form.Dialog) string {
	body := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(d.Title),
		"",
		d.View(),
	)
	return styles.ModalStyle.Render(body)
}

func (m Model) renderBoard(vm board.View, w, h int) string {
	header := m.renderHeader(vm, w)
	footer := styles.StatusBarStyle.Width(w).Render(m.help.ShortHelpView(m.keys.paneHelp(m.focus)))

	bodyH := max(h-lipgloss.Height(header)-lipgloss.Height(footer), 6)
	left, right := m.columnWidths()
	right = min(right, w-left)

	transcriptH := max(bodyH/2, 5)
	historyH := max(bodyH-transcriptH, 3)

	leftCol := lipgloss.JoinVertical(lipgloss.Left,
		m.paneBox(paneTranscript, "Transcript", m.transcript.View(), left, transcriptH),
		m.paneBox(paneHistory, "History", m.renderHistory(vm, left-4), left, historyH),
	)
	rightCol := m.paneBox(paneItems, m.itemsTitle(vm), m.renderItems(vm, right-4), right, bodyH)

	body := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, rightCol)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderHeader(vm board.View, w int) string {
	title := styles.TitleStyle.Render("minutes")
	parts := []string{title, styles.MutedStyle.Render(m.opts.Build.label())}

	if m.opts.BaseURL != "" {
		parts = append(parts, styles.MutedStyle.Render(m.opts.BaseURL))
	}
	if vm.Source != "" {
		parts = append(parts, styles.MutedStyle.Render("source: "+vm.Source))
	}
	if vm.Loading {
		parts = append(parts, m.spinner.View()+" "+styles.MutedStyle.Render("working"))
	}

	line := strings.Join(parts, "  ")
	return lipgloss.NewStyle().MaxWidth(w).Render(line)
}

func (m Model) paneBox(p pane, title, body string, w, h int) string {
	style := styles.PaneStyle
	if m.focus == p && m.state == stateNormal {
		style = styles.PaneFocusedStyle
	}
	content := lipgloss.JoinVertical(lipgloss.Left, styles.PaneTitleStyle.Render(title), body)
	// Border takes two columns and two rows.
	return style.Width(max(w-2, 1)).Height(max(h-2, 1)).MaxHeight(h).Render(content)
}

func (m Model) itemsTitle(vm board.View) string {
	if vm.TranscriptID == 0 {
		return "Action items"
	}
	return fmt.Sprintf("Action items · transcript #%d", vm.TranscriptID)
}

func (m Model) renderItems(vm board.View, width int) string {
	tabs := make([]string, 0, len(vm.Filters))
	for _, tab := range vm.Filters {
		if tab.Active {
			tabs = append(tabs, styles.FilterActive.Render(tab.Label))
		} else {
			tabs = append(tabs, styles.FilterStyle.Render(tab.Label))
		}
	}
	lines := []string{strings.Join(tabs, " "), ""}

	if len(vm.Items) == 0 {
		lines = append(lines, styles.EmptyStateStyle.Render(vm.EmptyText))
		return strings.Join(lines, "\n")
	}

	focused := m.focus == paneItems
	cursor := clamp(m.itemCursor, len(vm.Items))
	for i, row := range vm.Items {
		lines = append(lines, renderItemRow(row, focused && i == cursor, width)...)
	}
	return strings.Join(lines, "\n")
}

func renderItemRow(row board.ItemRow, selected bool, width int) []string {
	prefix := "  "
	if selected {
		prefix = styles.ItemSelectedStyle.Render(styles.IconCursor) + " "
	}

	var check, task string
	switch {
	case row.Syncing:
		check = styles.ItemPendingStyle.Render(styles.IconPending)
	case row.Done:
		check = styles.CheckDoneStyle.Render(styles.IconDone)
	default:
		check = styles.CheckOpenStyle.Render(styles.IconOpen)
	}
	if row.Done {
		task = styles.ItemDoneStyle.Render(row.Task)
	} else {
		task = styles.ItemTaskStyle.Render(row.Task)
	}
	if row.Editing {
		task += " " + styles.ItemPendingStyle.Render("(editing)")
	}

	clip := lipgloss.NewStyle().MaxWidth(max(width, 10))
	lines := []string{clip.Render(prefix + check + " " + task)}

	var meta []string
	if row.Owner != "" {
		meta = append(meta, styles.IconOwner+row.Owner)
	}
	if row.DueDate != "" {
		meta = append(meta, styles.IconDue+" "+row.DueDate)
	}
	if len(meta) > 0 {
		lines = append(lines, clip.Render("    "+styles.ItemMetaStyle.Render(strings.Join(meta, "  "))))
	}
	return lines
}

func (m Model) renderHistory(vm board.View, width int) string {
	if len(vm.History) == 0 {
		return styles.EmptyStateStyle.Render("No transcripts yet")
	}

	focused := m.focus == paneHistory
	cursor := clamp(m.historyCursor, len(vm.History))
	clip := lipgloss.NewStyle().MaxWidth(max(width, 10))

	lines := make([]string, 0, len(vm.History))
	for i, row := range vm.History {
		prefix := "  "
		if focused && i == cursor {
			prefix = styles.ItemSelectedStyle.Render(styles.IconCursor) + " "
		}

		text := fmt.Sprintf("#%d  %s  (%d)  %s", row.ID, row.When, row.ItemCount, row.Age)
		if row.Current {
			text = styles.HistoryActiveStyle.Render(styles.IconDot + " " + text)
		} else {
			text = styles.HistoryRowStyle.Render("  " + text)
		}
		lines = append(lines, clip.Render(prefix+text))
	}
	return strings.Join(lines, "\n")
}
