package tui

import (
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/minutes/internal/core/styles"
)

// Modal is a confirm/cancel dialog.
type Modal struct {
	title           string
	message         string
	confirmSelected bool // true = confirm button selected, false = cancel button selected
	confirmed       bool
	cancelled       bool
}

// NewModal creates a new modal with the given title and message. The cancel
// button is selected so a stray enter does not confirm a destructive action.
func NewModal(title, message string) *Modal {
	return &Modal{
		title:   title,
		message: message,
	}
}

// Update handles y/n shortcuts, button selection and enter.
func (m *Modal) Update(msg tea.Msg) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return
	}

	switch keyMsg.String() {
	case "y", "Y":
		m.confirmed = true
	case "n", "N", "esc":
		m.cancelled = true
	case "left", "right", "h", "l", "tab":
		m.confirmSelected = !m.confirmSelected
	case "enter":
		if m.confirmSelected {
			m.confirmed = true
		} else {
			m.cancelled = true
		}
	}
}

// ConfirmSelected returns true if the confirm button is selected.
func (m *Modal) ConfirmSelected() bool { return m.confirmSelected }

// Confirmed returns true once the user confirmed.
func (m *Modal) Confirmed() bool { return m.confirmed }

// Cancelled returns true once the user cancelled.
func (m *Modal) Cancelled() bool { return m.cancelled }

// View renders the modal box.
func (m *Modal) View() string {
	var confirmBtn, cancelBtn string
	if m.confirmSelected {
		confirmBtn = styles.ModalButtonSelectedStyle.Render("Delete")
		cancelBtn = styles.ModalButtonStyle.Render("Cancel")
	} else {
		confirmBtn = styles.ModalButtonStyle.Render("Delete")
		cancelBtn = styles.ModalButtonSelectedStyle.Render("Cancel")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, confirmBtn, "  ", cancelBtn)
	buttonRow := lipgloss.NewStyle().MarginTop(1).Render(buttons)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(m.title),
		"",
		m.message,
		buttonRow,
		styles.ModalHelpStyle.Render("y confirm  n/esc cancel  ←/→ select"),
	)

	return styles.ModalStyle.Render(content)
}

// Overlay renders the modal centered over background.
func (m *Modal) Overlay(background string, width, height int) string {
	return overlayCenter(background, m.View(), width, height)
}

// overlayCenter composites fg centered over bg.
func overlayCenter(bg, fg string, width, height int) string {
	bgLayer := lipgloss.NewLayer(bg)
	fgLayer := lipgloss.NewLayer(fg)

	fgW := lipgloss.Width(fg)
	fgH := lipgloss.Height(fg)
	fgLayer.X(max((width-fgW)/2, 0)).Y(max((height-fgH)/2, 0)).Z(1)

	return lipgloss.NewCompositor(bgLayer, fgLayer).Render()
}
