// Package app is the root Bubble Tea model. It owns the screen stack and
// wires every screen to the session and the exercise selector.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/mindupgrade/internal/apperr"
	"github.com/abhisek/mindupgrade/internal/content"
	"github.com/abhisek/mindupgrade/internal/exercise"
	"github.com/abhisek/mindupgrade/internal/promptgen"
	"github.com/abhisek/mindupgrade/internal/router"
	"github.com/abhisek/mindupgrade/internal/screen"
	"github.com/abhisek/mindupgrade/internal/screens/history"
	"github.com/abhisek/mindupgrade/internal/screens/home"
	"github.com/abhisek/mindupgrade/internal/screens/login"
	"github.com/abhisek/mindupgrade/internal/screens/play"
	"github.com/abhisek/mindupgrade/internal/screens/welcome"
	"github.com/abhisek/mindupgrade/internal/session"
	"github.com/abhisek/mindupgrade/internal/task"
	"github.com/abhisek/mindupgrade/internal/ui/layout"
)

const refreshTimeout = 30 * time.Second

// Options holds the dependencies of the terminal UI.
type Options struct {
	Session  *session.Controller
	Selector *exercise.Selector
	Logger   *zap.Logger

	// Bank and Refresher are optional. When both are set the prompt pools
	// are refreshed once in the background at startup.
	Bank      *content.Bank
	Refresher *promptgen.Refresher

	// Now overrides the clock handed to task screens.
	Now func() time.Time
}

// bankRefreshedMsg carries the outcome of the startup prompt refresh.
type bankRefreshedMsg struct {
	bank *content.Bank
	err  error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel starting on the splash screen.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	m := AppModel{opts: opts}
	m.router = router.New(m.welcomeScreen())
	return m
}

func (m AppModel) welcomeScreen() screen.Screen {
	return welcome.New(m.opts.Session.Resume, func(loggedIn bool, err error) screen.Screen {
		if loggedIn {
			return m.homeScreen()
		}
		if err != nil {
			m.opts.Logger.Warn("resume session", zap.Error(err))
		}
		return m.loginScreen(resumeNotice(err))
	})
}

// resumeNotice explains why the remembered session was not restored.
func resumeNotice(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, apperr.ErrNotFound):
		return "Your saved session was not found. Please log in again."
	case errors.Is(err, apperr.ErrUnavailable):
		return "Couldn't reach the server to restore your session."
	default:
		return "Couldn't restore your session. Please log in."
	}
}

func (m AppModel) loginScreen(notice string) screen.Screen {
	return login.New(m.opts.Session, m.homeScreen, notice)
}

func (m AppModel) homeScreen() screen.Screen {
	return home.New(m.opts.Session, home.Routes{
		Task:    m.taskScreen,
		History: m.historyScreen,
		Login:   func() screen.Screen { return m.loginScreen("") },
	})
}

func (m AppModel) taskScreen(id task.ID) screen.Screen {
	sel := m.opts.Selector
	open := func(now time.Time, onComplete func()) (exercise.Variant, error) {
		return sel.Open(id, now, onComplete)
	}
	return play.New(id, open, m.opts.Session, play.WithClock(m.opts.Now))
}

func (m AppModel) historyScreen() screen.Screen {
	return history.New(m.opts.Session.Snapshot().History, m.opts.Now())
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init()}
	if m.opts.Refresher != nil && m.opts.Bank != nil {
		r, base := m.opts.Refresher, m.opts.Bank
		cmds = append(cmds, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
			defer cancel()
			bank, err := r.Refresh(ctx, base)
			return bankRefreshedMsg{bank: bank, err: err}
		})
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case bankRefreshedMsg:
		if msg.err != nil {
			m.opts.Logger.Warn("keeping static prompts", zap.Error(msg.err))
			return m, nil
		}
		// The selector is only touched from the update loop.
		m.opts.Selector.SetBank(msg.bank)
		return m, nil

	case screen.SavedMsg:
		if msg.Err != nil {
			m.opts.Logger.Warn("progress not saved", zap.Error(msg.Err))
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render composes header, active screen and footer at the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	var stats *layout.HeaderStats
	if snap := m.opts.Session.Snapshot(); snap.LoggedIn() {
		stats = &layout.HeaderStats{Score: snap.Score, Streak: snap.Streak, Unsaved: snap.Unsaved}
	}
	header := layout.RenderHeader(title, stats, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Any key", Description: "Continue"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run terminal UI: %w", err)
	}
	return nil
}
