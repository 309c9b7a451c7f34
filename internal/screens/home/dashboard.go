package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindupgrade/internal/progress"
	"github.com/abhisek/mindupgrade/internal/session"
	"github.com/abhisek/mindupgrade/internal/ui/components"
	"github.com/abhisek/mindupgrade/internal/ui/theme"
)

const titleFull = "M I N D U P G R A D E"

const titleCompact = "MINDUPGRADE"

// renderTitle returns the styled title line.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Gold).
		Bold(true)

	title := titleFull
	if compact {
		title = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderGreeting shows who is logged in.
func renderGreeting(email string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render("Welcome back, " + email)
}

// renderStatsBar renders today's score bar and the streak in a bordered box
// matching content width.
func renderStatsBar(snap session.Snapshot, cw int, compact bool) string {
	bar := components.NewProgressBar("Today", snap.Score, progress.MaxScore, true, cw-6)
	if snap.Score == progress.MaxScore {
		bar.Fill = lipgloss.NewStyle().Background(theme.Gold)
	}

	streakStyle := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var streak string
	next := progress.NextMilestone(snap.Streak)
	if compact {
		streak = streakStyle.Render(fmt.Sprintf("★%d", snap.Streak)) +
			dimStyle.Render(fmt.Sprintf(" → %d", next))
	} else {
		streak = streakStyle.Render(fmt.Sprintf("★ %d DAY STREAK", snap.Streak)) +
			dimStyle.Render(fmt.Sprintf("   next milestone: %d days   perfect days: %d",
				next, snap.History.PerfectDays()))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Cyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(bar.View() + "\n" + streak)
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}

// renderUnsaved warns that local progress is ahead of the service.
func renderUnsaved(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(theme.Badge.Render("UNSAVED") +
			lipgloss.NewStyle().Foreground(theme.Accent).Render("  Progress not saved. Press S to try again."))
}

// renderPerfect is shown once every category is done today.
func renderPerfect(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Gold).
		Bold(true).
		Width(cw).
		Align(lipgloss.Center).
		Render("🎉 Perfect day! Come back tomorrow to grow your streak.")
}
