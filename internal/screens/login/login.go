// Package login asks for the email that identifies the user's record.
package login

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindupgrade/internal/apperr"
	"github.com/abhisek/mindupgrade/internal/router"
	"github.com/abhisek/mindupgrade/internal/screen"
	"github.com/abhisek/mindupgrade/internal/session"
	"github.com/abhisek/mindupgrade/internal/ui/components"
	"github.com/abhisek/mindupgrade/internal/ui/layout"
	"github.com/abhisek/mindupgrade/internal/ui/theme"
)

const loginTimeout = 10 * time.Second

// Authenticator starts a session for an email.
type Authenticator interface {
	Login(ctx context.Context, email string) error
}

type loginDoneMsg struct{ err error }

// LoginScreen collects an email and logs in. An unreachable service shows
// a blocking notice; the user retries by pressing enter again.
type LoginScreen struct {
	auth     Authenticator
	next     func() screen.Screen
	input    components.TextInput
	fieldErr string
	blocking string
	notice   string
	busy     bool
}

var (
	_ screen.Screen          = (*LoginScreen)(nil)
	_ screen.KeyHintProvider = (*LoginScreen)(nil)
)

// New creates a LoginScreen. next builds the screen shown after a
// successful login. notice, if set, is shown above the form.
func New(auth Authenticator, next func() screen.Screen, notice string) *LoginScreen {
	in := components.NewTextInput("Email", "you@example.com", 254)
	in.Focus()
	return &LoginScreen{auth: auth, next: next, input: in, notice: notice}
}

func (l *LoginScreen) Title() string { return "Log in" }

func (l *LoginScreen) Init() tea.Cmd {
	return l.input.Focus()
}

func (l *LoginScreen) KeyHints() []layout.KeyHint {
	if l.blocking != "" {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Try again"},
			{Key: "Esc", Description: "Dismiss"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Log in"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (l *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		l.busy = false
		return l, l.finish(msg.err)

	case tea.KeyPressMsg:
		if l.busy {
			return l, nil
		}
		if l.blocking != "" {
			switch msg.String() {
			case "enter":
				l.blocking = ""
				return l, l.submit()
			case "esc":
				l.blocking = ""
			}
			return l, nil
		}
		if msg.String() == "enter" {
			return l, l.submit()
		}
	}

	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	if _, ok := msg.(tea.KeyPressMsg); ok {
		l.fieldErr = ""
	}
	return l, cmd
}

// submit validates locally before going to the service so a typo never
// costs a round trip.
func (l *LoginScreen) submit() tea.Cmd {
	email := strings.TrimSpace(l.input.Value())
	if err := session.ValidateEmail(email); err != nil {
		l.fieldErr = reason(err)
		return nil
	}
	l.busy = true
	l.notice = ""
	auth := l.auth
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loginTimeout)
		defer cancel()
		return loginDoneMsg{err: auth.Login(ctx, email)}
	}
}

func (l *LoginScreen) finish(err error) tea.Cmd {
	switch {
	case err == nil:
		next := l.next()
		return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case errors.Is(err, apperr.ErrValidation):
		l.fieldErr = reason(err)
	case errors.Is(err, apperr.ErrUnavailable):
		l.blocking = "Can't reach the MindUpgrade server. Your progress is safe there; check the connection and try again."
	default:
		l.blocking = "Login failed: " + err.Error()
	}
	return nil
}

func reason(err error) string {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		return ve.Reason
	}
	return err.Error()
}

func (l *LoginScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if cw > 56 {
		cw = 56
	}

	var sections []string
	sections = append(sections, theme.Title.Width(cw).Render("Welcome to MindUpgrade"))
	sections = append(sections, theme.Subtitle.Width(cw).Render("Log in with your email to pick up where you left off."))
	if l.notice != "" {
		sections = append(sections, components.Notice(l.notice, false))
	}

	form := l.input.View()
	if l.fieldErr != "" {
		form += "\n" + components.Notice(l.fieldErr, true)
	}
	if l.busy {
		form += "\n" + theme.Hint.Render("Logging in...")
	}
	sections = append(sections, components.Card(form, cw))

	if l.blocking != "" {
		modal := lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(theme.Error).
			Width(cw - 2).
			Padding(1, 2).
			Render(lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Server unavailable") +
				"\n\n" + theme.Body.Render(l.blocking))
		sections = append(sections, modal)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n\n"))
}
