package components

import (
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindupgrade/internal/ui/theme"
)

// TextInput is a labelled text field backed by bubbles/textinput, or by
// bubbles/textarea for multi-line answers. A check mark is shown after
// grading.
type TextInput struct {
	Label     string
	multiline bool
	line      textinput.Model
	area      textarea.Model
	graded    bool
	correct   bool
}

// NewTextInput creates a blurred single-line input. A charLimit of zero
// means unlimited.
func NewTextInput(label, placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = charLimit
	return TextInput{Label: label, line: ti}
}

// NewTextArea creates a blurred multi-line input of the given size.
func NewTextArea(label, placeholder string, width, height int) TextInput {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(width)
	ta.SetHeight(height)
	return TextInput{Label: label, multiline: true, area: ta}
}

// Multiline reports whether enter inserts a newline.
func (t TextInput) Multiline() bool { return t.multiline }

// Focus gives the input keyboard focus.
func (t *TextInput) Focus() tea.Cmd {
	if t.multiline {
		return t.area.Focus()
	}
	return t.line.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	if t.multiline {
		t.area.Blur()
		return
	}
	t.line.Blur()
}

// Focused reports whether the input has keyboard focus.
func (t TextInput) Focused() bool {
	if t.multiline {
		return t.area.Focused()
	}
	return t.line.Focused()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	if t.multiline {
		t.area, cmd = t.area.Update(msg)
	} else {
		t.line, cmd = t.line.Update(msg)
	}
	return t, cmd
}

// View renders the label above the input.
func (t TextInput) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if t.Focused() {
		labelStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}

	var view string
	if t.multiline {
		view = t.area.View()
	} else {
		view = t.line.View()
	}
	if t.graded {
		if t.correct {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	if t.Label == "" {
		return view
	}
	return labelStyle.Render(t.Label) + "\n" + view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	if t.multiline {
		return t.area.Value()
	}
	return t.line.Value()
}

// SetValue replaces the value and moves the cursor to the end.
func (t *TextInput) SetValue(v string) {
	if t.multiline {
		t.area.SetValue(v)
		return
	}
	t.line.SetValue(v)
	t.line.CursorEnd()
}

// Grade marks the input with the result of a check.
func (t *TextInput) Grade(correct bool) {
	t.graded = true
	t.correct = correct
}

// ClearGrade removes the check mark.
func (t *TextInput) ClearGrade() {
	t.graded = false
}
