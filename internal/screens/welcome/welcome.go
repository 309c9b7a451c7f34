package welcome

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindupgrade/internal/router"
	"github.com/abhisek/mindupgrade/internal/screen"
	"github.com/abhisek/mindupgrade/internal/ui/theme"
)

const (
	tickInterval  = 100 * time.Millisecond
	phase1End     = 500 * time.Millisecond
	phase2End     = 1500 * time.Millisecond
	totalDur      = 3000 * time.Millisecond
	resumeTimeout = 10 * time.Second
)

const mascotArt = `    ╭─────────╮
  ╭─┤ ∿∿ ∿ ∿∿ ├─╮
  │ │ ∿ ∿∿∿ ∿ │ │
  ╰─┤ ∿∿ ∿ ∿∿ ├─╯
    ╰────┬────╯
         │`

// sparkle frames cycle around the mascot
var sparkleFrames = []string{"★", "✦"}

type tickMsg time.Time

// resumedMsg carries the outcome of restoring the remembered session.
type resumedMsg struct {
	ok  bool
	err error
}

// Resumer restores a remembered session. It reports false when there is
// nothing to restore.
type Resumer func(ctx context.Context) (bool, error)

// Next builds the screen shown after the splash. err is set when the
// remembered session could not be checked.
type Next func(loggedIn bool, err error) screen.Screen

// WelcomeScreen shows a splash animation while the remembered session is
// restored, then hands over to home or login.
type WelcomeScreen struct {
	resume       Resumer
	next         Next
	elapsed      time.Duration
	tickCount    int
	resolved     bool
	loggedIn     bool
	resumeErr    error
	wantOut      bool
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that runs resume in the background and
// transitions to the screen produced by next.
func New(resume Resumer, next Next) *WelcomeScreen {
	return &WelcomeScreen{
		resume: resume,
		next:   next,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Batch(tick(), w.resumeCmd())
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) resumeCmd() tea.Cmd {
	if w.resume == nil {
		return func() tea.Msg { return resumedMsg{} }
	}
	resume := w.resume
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), resumeTimeout)
		defer cancel()
		ok, err := resume(ctx)
		return resumedMsg{ok: ok, err: err}
	}
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		if w.elapsed >= totalDur {
			w.wantOut = true
			if cmd := w.transition(); cmd != nil {
				return w, cmd
			}
		}
		return w, tick()

	case resumedMsg:
		w.resolved = true
		w.loggedIn = msg.ok
		w.resumeErr = msg.err
		if w.wantOut {
			return w, w.transition()
		}
		return w, nil

	case tea.KeyPressMsg:
		// Any key skips the animation; the hand-over still waits for resume.
		w.wantOut = true
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned || !w.resolved {
		return nil
	}
	w.transitioned = true
	nextScreen := w.next(w.loggedIn, w.resumeErr)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: nextScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	mascotStyle := lipgloss.NewStyle().Foreground(theme.Primary)

	// Phase 1+: mascot
	rendered := mascotStyle.Render(mascotArt)

	// Phase 2+: sparkles around mascot
	if w.elapsed >= phase1End {
		frame := w.tickCount % len(sparkleFrames)
		sparkle := sparkleFrames[frame]

		accentStyle := lipgloss.NewStyle().Foreground(theme.Accent)
		secondaryStyle := lipgloss.NewStyle().Foreground(theme.Secondary)

		s1 := accentStyle.Render(sparkle)
		s2 := secondaryStyle.Render(sparkle)

		lines := strings.Split(rendered, "\n")
		if len(lines) > 1 {
			lines[1] = s1 + "  " + lines[1] + "  " + s2
		}
		if len(lines) > 3 {
			lines[3] = s2 + "  " + lines[3] + "  " + s1
		}
		rendered = strings.Join(lines, "\n")
	}

	sections = append(sections, rendered)

	// Phase 3+: banner + tagline
	if w.elapsed >= phase2End {
		sections = append(sections, "")
		sections = append(sections, RenderBanner(width))
		sections = append(sections, "")

		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Six small workouts for your mind, every day.")
		sections = append(sections, tagline)
	}

	if w.wantOut && !w.resolved {
		sections = append(sections, "")
		sections = append(sections, theme.Hint.Render("restoring your session..."))
	} else if w.elapsed >= phase2End {
		sections = append(sections, "")
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue")
		sections = append(sections, hint)
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
