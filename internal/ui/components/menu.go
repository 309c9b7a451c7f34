package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindupgrade/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label    string
	Icon     string
	Detail   string
	Done     bool
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a new menu with the given items.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{
		Items:    items,
		Selected: selected,
	}
}

// Select moves the cursor to i if it is a selectable item.
func (m *Menu) Select(i int) {
	if i >= 0 && i < len(m.Items) && !m.Items[i].Disabled {
		m.Selected = i
	}
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// View renders the menu, one row per item, at width w.
func (m Menu) View(w int) string {
	rows := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		mark := lipgloss.NewStyle().Foreground(theme.TextDim).Render("○")
		if item.Done {
			mark = lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("✓")
		}

		label := item.Label
		if item.Icon != "" {
			label = item.Icon + "  " + label
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		prefix := "  "
		switch {
		case item.Disabled:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
			prefix = "▸ "
		}

		line := prefix + mark + " " + style.Render(label)
		if item.Detail != "" {
			gap := w - lipgloss.Width(line) - lipgloss.Width(item.Detail)
			if gap < 2 {
				gap = 2
			}
			line += strings.Repeat(" ", gap) + theme.Hint.Render(item.Detail)
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}
