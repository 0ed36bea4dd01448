package ui

import "github.com/charmbracelet/lipgloss"

// Plain ANSI colors so light and dark terminals both read well.
var (
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle is dimmed so descriptions sit behind commands.
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// Chat transcript.
	UserStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	BotStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	IntentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)
