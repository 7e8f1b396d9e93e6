package tabs

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by the view.
type Styles struct {
	Title       lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	TabGap      lipgloss.Style
	Pane        lipgloss.Style
	PaneTitle   lipgloss.Style
	Label       lipgloss.Style
	Focus       lipgloss.Style
	Button      lipgloss.Style
	FocusButton lipgloss.Style
	Review      lipgloss.Style
	Note        lipgloss.Style
	Error       lipgloss.Style
	Success     lipgloss.Style
}

// DefaultStyles returns the built-in palette.
func DefaultStyles() Styles {
	accent := lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#60a5fa"}
	muted := lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	border := lipgloss.RoundedBorder()

	tab := lipgloss.NewStyle().
		Border(border, true, true, false, true).
		BorderForeground(muted).
		Foreground(muted).
		Padding(0, 1)

	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).MarginBottom(1),
		Tab:         tab,
		ActiveTab:   tab.BorderForeground(accent).Foreground(accent).Bold(true),
		TabGap:      lipgloss.NewStyle().Foreground(muted),
		Pane:        lipgloss.NewStyle().Border(border).BorderForeground(accent).Padding(1, 2),
		PaneTitle:   lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		Label:       lipgloss.NewStyle().Width(20),
		Focus:       lipgloss.NewStyle().Foreground(accent).Bold(true),
		Button:      lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder()).BorderForeground(muted),
		FocusButton: lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder()).BorderForeground(accent).Foreground(accent).Bold(true),
		Review:      lipgloss.NewStyle().PaddingLeft(2),
		Note:        lipgloss.NewStyle().Foreground(lipgloss.Color("#d97706")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626")),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a")).Bold(true),
	}
}
