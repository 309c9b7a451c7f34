package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindupgrade/internal/ui/theme"
)

// ProgressBar displays a horizontal bar for value out of max.
type ProgressBar struct {
	Label     string
	Value     int
	Max       int
	ShowValue bool
	Width     int
	Fill      lipgloss.Style
}

// NewProgressBar creates a new progress bar filled in the secondary color.
func NewProgressBar(label string, value, total int, showValue bool, width int) ProgressBar {
	return ProgressBar{
		Label:     label,
		Value:     value,
		Max:       total,
		ShowValue: showValue,
		Width:     width,
		Fill:      theme.ProgressFilled,
	}
}

// Fraction returns Value/Max clamped to [0, 1].
func (p ProgressBar) Fraction() float64 {
	if p.Max <= 0 {
		return 0
	}
	f := float64(p.Value) / float64(p.Max)
	return min(1, max(0, f))
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	suffix := ""
	if p.ShowValue {
		suffix = fmt.Sprintf("  %d/%d", p.Value, p.Max)
	}

	barWidth := p.Width - lipgloss.Width(result) - len(suffix)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Fraction())
	empty := barWidth - filled

	result += p.Fill.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	if suffix != "" {
		result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix)
	}

	return result
}
