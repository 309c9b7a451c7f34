// Package theme holds the shared palette and lipgloss styles.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette. Night background, one warm colour reserved for streaks.
var (
	Primary   = lipgloss.Color("#A78BFA") // lavender, focus and titles
	Secondary = lipgloss.Color("#2DD4BF") // mint, progress
	Accent    = lipgloss.Color("#FB923C") // amber, warnings
	Success   = lipgloss.Color("#4ADE80")
	Error     = lipgloss.Color("#FB7185")
	Text      = lipgloss.Color("#E2E8F0")
	TextDim   = lipgloss.Color("#8492A6")
	BgDark    = lipgloss.Color("#0B1020")
	BgCard    = lipgloss.Color("#161D31")
	Border    = lipgloss.Color("#2E3A55")
	Gold      = lipgloss.Color("#FACC15") // streaks, perfect days
	Cyan      = lipgloss.Color("#22D3EE") // score frame
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// Correct and Incorrect mark graded answers on result panels.
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	Badge = lipgloss.NewStyle().
		Foreground(BgDark).
		Background(Accent).
		Bold(true).
		Padding(0, 1)
)
