package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Directory         *lipgloss.Style
	File              *lipgloss.Style
	Bookmark          *lipgloss.Style
	Denied            *lipgloss.Style
	Guide             *lipgloss.Style
	Selected          *lipgloss.Style
	Match             *lipgloss.Style
	Border            *lipgloss.Style
	BorderFocused     *lipgloss.Style
	PanelTitle        *lipgloss.Style
	PanelInfo         *lipgloss.Style
	Error             *lipgloss.Style
	Info              *lipgloss.Style
	Footer            *lipgloss.Style
	Filter            *lipgloss.Style
	FilterPrompt      *lipgloss.Style
	FilterPlaceholder *lipgloss.Style
	Cursor            *lipgloss.Style
	LineNumber        *lipgloss.Style
	PreviewBody       *lipgloss.Style
	PreviewError      *lipgloss.Style
}

var defaultStyles = Styles{
	Directory: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true),
	),
	File: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
	),
	Bookmark: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
	),
	Denied: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	),
	Guide: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("37")),
	),
	Selected: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Match: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Underline(true),
	),
	Border: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	BorderFocused: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	PanelTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	PanelInfo: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
	),
	LineNumber: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	PreviewBody: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	PreviewError: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
