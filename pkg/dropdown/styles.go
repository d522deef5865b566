package dropdown

import "github.com/charmbracelet/lipgloss"

// Colors shared by the toggle and the menu.
var (
	Primary      = lipgloss.Color("212")
	Muted        = lipgloss.Color("241")
	BorderNormal = lipgloss.Color("240")
)

// Toggle button styles
var (
	Toggle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderNormal).
		Foreground(lipgloss.Color("252")).
		Padding(0, 1)

	ToggleFocused = Toggle.
			BorderForeground(Primary).
			Foreground(lipgloss.Color("255")).
			Bold(true)

	ToggleHover = Toggle.
			BorderForeground(lipgloss.Color("245"))

	Caret     = lipgloss.NewStyle().Foreground(Muted)
	CaretOpen = lipgloss.NewStyle().Foreground(Primary).Bold(true)
)

// Menu styles
var (
	Menu = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderNormal)

	MutedText = lipgloss.NewStyle().Foreground(Muted)

	ItemNormal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	ItemHover = lipgloss.NewStyle().
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255"))

	ItemFocused = lipgloss.NewStyle().
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Bold(true)

	ItemDisabled = lipgloss.NewStyle().
			Foreground(Muted).
			Strikethrough(true)

	Cursor = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)
)
