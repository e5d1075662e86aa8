// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	lipgloss "charm.land/lipgloss/v2"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	// CLI styles.
	HeaderStyle  lipgloss.Style
	MutedStyle   lipgloss.Style
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style

	// Board layout.
	TitleStyle       lipgloss.Style
	PaneStyle        lipgloss.Style
	PaneFocusedStyle lipgloss.Style
	PaneTitleStyle   lipgloss.Style
	StatusBarStyle   lipgloss.Style
	HelpKeyStyle     lipgloss.Style
	HelpDescStyle    lipgloss.Style
	EmptyStateStyle  lipgloss.Style
	FilterStyle      lipgloss.Style
	FilterActive     lipgloss.Style

	// Item rows.
	ItemTaskStyle     lipgloss.Style
	ItemDoneStyle     lipgloss.Style
	ItemMetaStyle     lipgloss.Style
	ItemSelectedStyle lipgloss.Style
	ItemPendingStyle  lipgloss.Style
	CheckOpenStyle    lipgloss.Style
	CheckDoneStyle    lipgloss.Style

	// History rows.
	HistoryActiveStyle lipgloss.Style
	HistoryRowStyle    lipgloss.Style

	// Modals and forms.
	ModalStyle               lipgloss.Style
	ModalTitleStyle          lipgloss.Style
	ModalHelpStyle           lipgloss.Style
	ModalButtonStyle         lipgloss.Style
	ModalButtonSelectedStyle lipgloss.Style

	FormFieldStyle        lipgloss.Style
	FormFieldFocusedStyle lipgloss.Style
	FormLabelStyle        lipgloss.Style
	FormErrorStyle        lipgloss.Style

	// Toasts.
	ToastInfoStyle    lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	HeaderStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	MutedStyle = lipgloss.NewStyle().Foreground(p.Muted)
	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error)

	TitleStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		Padding(0, 1)
	PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface).
		Padding(0, 1)
	PaneFocusedStyle = PaneStyle.
		BorderForeground(p.Primary)
	PaneTitleStyle = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)
	StatusBarStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Padding(0, 1)
	HelpKeyStyle = lipgloss.NewStyle().Foreground(p.Secondary)
	HelpDescStyle = lipgloss.NewStyle().Foreground(p.Muted)
	EmptyStateStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true)
	FilterStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Padding(0, 1)
	FilterActive = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Primary).
		Bold(true).
		Padding(0, 1)

	ItemTaskStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	ItemDoneStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Strikethrough(true)
	ItemMetaStyle = lipgloss.NewStyle().Foreground(p.Muted)
	ItemSelectedStyle = lipgloss.NewStyle().
		Background(p.Surface).
		Bold(true)
	ItemPendingStyle = lipgloss.NewStyle().Foreground(p.Warning)
	CheckOpenStyle = lipgloss.NewStyle().Foreground(p.Muted)
	CheckDoneStyle = lipgloss.NewStyle().Foreground(p.Success)

	HistoryActiveStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	HistoryRowStyle = lipgloss.NewStyle().Foreground(p.Foreground)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Foreground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		MarginTop(1)
	ModalButtonStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.Surface).
		Foreground(p.Muted)
	ModalButtonSelectedStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.Primary).
		Foreground(p.Background).
		Bold(true)

	FormFieldStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(p.Muted).
		PaddingLeft(1)
	FormFieldFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(p.Primary).
		PaddingLeft(1)
	FormLabelStyle = lipgloss.NewStyle().Foreground(p.Muted)
	FormErrorStyle = lipgloss.NewStyle().Foreground(p.Error)

	toast := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	ToastInfoStyle = toast.BorderForeground(p.Success).Foreground(p.Foreground)
	ToastWarningStyle = toast.BorderForeground(p.Warning).Foreground(p.Foreground)
	ToastErrorStyle = toast.BorderForeground(p.Error).Foreground(p.Foreground)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
