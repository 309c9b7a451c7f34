package welcome

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mindupgrade/internal/router"
	"github.com/abhisek/mindupgrade/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{ title string }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

type nextCall struct {
	loggedIn bool
	err      error
}

func newTestWelcome() (*WelcomeScreen, *[]nextCall) {
	var calls []nextCall
	next := func(loggedIn bool, err error) screen.Screen {
		calls = append(calls, nextCall{loggedIn, err})
		if loggedIn {
			return &stubScreen{title: "home"}
		}
		return &stubScreen{title: "login"}
	}
	resume := func(context.Context) (bool, error) { return true, nil }
	return New(resume, next), &calls
}

func sendTicks(w *WelcomeScreen, n int) (screen.Screen, tea.Cmd) {
	var s screen.Screen = w
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		s, cmd = s.Update(tickMsg(time.Now()))
	}
	return s, cmd
}

func replaced(t *testing.T, cmd tea.Cmd) screen.Screen {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg")
	}
	return msg.Screen
}

func TestPhaseTransitions(t *testing.T) {
	w, _ := newTestWelcome()

	view := w.View(80, 24)
	if containsBanner(view) {
		t.Error("banner should not be visible at start")
	}

	sendTicks(w, 5)
	if w.elapsed != 500*time.Millisecond {
		t.Errorf("expected elapsed 500ms, got %v", w.elapsed)
	}

	sendTicks(w, 10)
	if w.elapsed != 1500*time.Millisecond {
		t.Errorf("expected elapsed 1500ms, got %v", w.elapsed)
	}

	view = w.View(80, 24)
	if !containsBanner(view) {
		t.Error("banner should be visible after phase 2")
	}
}

func TestKeypressWaitsForResume(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd != nil {
		t.Fatal("keypress before resume finished should not transition")
	}
	if !strings.Contains(w.View(80, 24), "restoring") {
		t.Error("expected restoring hint while waiting")
	}

	_, cmd = w.Update(resumedMsg{ok: true})
	s := replaced(t, cmd)
	if s.Title() != "home" {
		t.Errorf("expected home after successful resume, got %q", s.Title())
	}
	if len(*calls) != 1 {
		t.Errorf("next should be called once, got %d", len(*calls))
	}
}

func TestResumeThenKeypress(t *testing.T) {
	w, calls := newTestWelcome()

	_, cmd := w.Update(resumedMsg{ok: false})
	if cmd != nil {
		t.Fatal("resume alone should not transition mid-animation")
	}

	_, cmd = w.Update(tea.KeyPressMsg{Code: 'a'})
	s := replaced(t, cmd)
	if s.Title() != "login" {
		t.Errorf("expected login without a session, got %q", s.Title())
	}
	if (*calls)[0].loggedIn {
		t.Error("next called with loggedIn=true")
	}
}

func TestAutoTransitionAfterAnimation(t *testing.T) {
	w, calls := newTestWelcome()
	w.Update(resumedMsg{ok: true})

	_, cmd := sendTicks(w, int(totalDur/tickInterval))
	replaced(t, cmd)
	if len(*calls) != 1 {
		t.Errorf("next should be called once, got %d", len(*calls))
	}
	if w.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, w.elapsed)
	}
}

func TestResumeErrorPassedOn(t *testing.T) {
	w, calls := newTestWelcome()
	boom := errors.New("offline")
	w.Update(tea.KeyPressMsg{Code: 'a'})
	w.Update(resumedMsg{err: boom})

	if len(*calls) != 1 || !errors.Is((*calls)[0].err, boom) {
		t.Fatalf("expected next called with the resume error, got %+v", *calls)
	}
}

func TestNextCalledOnce(t *testing.T) {
	w, calls := newTestWelcome()
	w.Update(resumedMsg{ok: true})
	w.Update(tea.KeyPressMsg{Code: 'a'})

	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if _, cmd := w.Update(tickMsg(time.Now())); cmd != nil {
		t.Error("ticks after the hand-over should stop")
	}
	if len(*calls) != 1 {
		t.Errorf("next should be called exactly once, got %d", len(*calls))
	}
}

func TestResumeCmdRunsResumer(t *testing.T) {
	called := false
	w := New(func(ctx context.Context) (bool, error) {
		called = true
		if _, ok := ctx.Deadline(); !ok {
			t.Error("resume should run with a deadline")
		}
		return true, nil
	}, nil)

	msg := w.resumeCmd()()
	if !called {
		t.Fatal("resumer not called")
	}
	if got := msg.(resumedMsg); !got.ok {
		t.Errorf("expected ok resume, got %+v", got)
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newTestWelcome()
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}

func containsBanner(s string) bool {
	return strings.Contains(s, "workouts for your mind")
}
