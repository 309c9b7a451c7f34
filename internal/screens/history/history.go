package history

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindupgrade/internal/progress"
	"github.com/abhisek/mindupgrade/internal/router"
	"github.com/abhisek/mindupgrade/internal/screen"
	"github.com/abhisek/mindupgrade/internal/task"
	"github.com/abhisek/mindupgrade/internal/ui/layout"
	"github.com/abhisek/mindupgrade/internal/ui/theme"
)

// HistoryScreen lists past days newest first with their scores.
type HistoryScreen struct {
	days     []progress.Day
	streak   int
	perfect  int
	selected int
	expanded map[int]bool
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen over a copy of h as of today.
func New(h progress.History, today time.Time) *HistoryScreen {
	return &HistoryScreen{
		days:     h.Days(),
		streak:   progress.Streak(h, today),
		perfect:  h.PerfectDays(),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd { return nil }

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.days)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if len(s.days) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No days yet. Finish a task to start your history!")
	}

	var b strings.Builder
	b.WriteString("\n")
	summary := fmt.Sprintf("%d days played   %d perfect   ★ %d day streak", len(s.days), s.perfect, s.streak)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).Render(summary)))
	b.WriteString("\n\n")

	// Keep the selection on screen: rows before it scroll off the top.
	first := 0
	if visible := height - 6; visible > 0 && s.selected >= visible {
		first = s.selected - visible + 1
	}

	for i := first; i < len(s.days); i++ {
		day := s.days[i]
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		mark := " "
		if day.Record.Perfect() {
			mark = "★"
		}
		line := fmt.Sprintf("%s%s  %s  %3d/100  %d of %d tasks %s",
			prefix, formatDay(day.Key), scoreBar(day.Record.Score), day.Record.Score,
			len(day.Record.Completed), task.Count, mark)

		style := lipgloss.NewStyle().Foreground(scoreColor(day.Record.Score))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(doneList(day.Record))))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func formatDay(key string) string {
	t, err := progress.ParseDateKey(key)
	if err != nil {
		return key
	}
	return t.Format("Mon Jan 02, 2006")
}

// scoreBar draws the score as ten cells.
func scoreBar(score int) string {
	filled := (score + 5) / 10
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

func doneList(rec progress.DayRecord) string {
	var parts []string
	for _, id := range task.All() {
		if rec.Completed[id] {
			parts = append(parts, "✓ "+id.DisplayName())
		} else {
			parts = append(parts, "· "+id.DisplayName())
		}
	}
	return "    " + strings.Join(parts, "  ")
}

func scoreColor(score int) color.Color {
	switch {
	case score == progress.MaxScore:
		return theme.Gold
	case score >= 50:
		return theme.Secondary
	case score > 0:
		return theme.Text
	default:
		return theme.TextDim
	}
}
