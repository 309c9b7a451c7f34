package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestProgressBarFraction(t *testing.T) {
	tests := []struct {
		value, max int
		want       float64
	}{
		{0, 100, 0},
		{50, 100, 0.5},
		{100, 100, 1},
		{150, 100, 1},
		{-5, 100, 0},
		{3, 0, 0},
	}
	for _, tt := range tests {
		p := NewProgressBar("", tt.value, tt.max, false, 40)
		if got := p.Fraction(); got != tt.want {
			t.Errorf("Fraction(%d/%d) = %v, want %v", tt.value, tt.max, got, tt.want)
		}
	}
}

func TestProgressBarShowsValue(t *testing.T) {
	p := NewProgressBar("Score", 67, 100, true, 40)
	if !strings.Contains(p.View(), "67/100") {
		t.Errorf("expected value suffix in %q", p.View())
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	fired := ""
	m := NewMenu([]MenuItem{
		{Label: "a", Disabled: true},
		{Label: "b", Action: func() tea.Cmd { fired = "b"; return nil }},
		{Label: "c", Disabled: true},
		{Label: "d", Action: func() tea.Cmd { fired = "d"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("expected first enabled item selected, got %d", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("down should skip disabled item, got %d", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if fired != "d" {
		t.Errorf("enter fired %q, want d", fired)
	}

	m.Select(2)
	if m.Selected != 3 {
		t.Errorf("Select on a disabled item should be ignored, got %d", m.Selected)
	}
}

func TestMenuViewMarksDone(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "Memory", Done: true}, {Label: "Focus"}})
	view := m.View(40)
	lines := strings.Split(view, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "✓") || strings.Contains(lines[1], "✓") {
		t.Errorf("done mark misplaced:\n%s", view)
	}
}

func TestNotice(t *testing.T) {
	if Notice("", true) != "" {
		t.Error("empty notice should render nothing")
	}
	if !strings.Contains(Notice("offline", true), "offline") {
		t.Error("notice text missing")
	}
}
