// Package play hosts one opened exercise variant: it feeds key presses and
// clock ticks into the variant, records the completion when it passes and
// saves progress in the background.
package play

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/mindupgrade/internal/apperr"
	"github.com/abhisek/mindupgrade/internal/exercise"
	"github.com/abhisek/mindupgrade/internal/router"
	"github.com/abhisek/mindupgrade/internal/screen"
	"github.com/abhisek/mindupgrade/internal/session"
	"github.com/abhisek/mindupgrade/internal/task"
	"github.com/abhisek/mindupgrade/internal/ui/components"
	"github.com/abhisek/mindupgrade/internal/ui/layout"
)

const (
	tickInterval = 100 * time.Millisecond
	celebrateFor = 3500 * time.Millisecond
	saveTimeout  = 10 * time.Second

	// chooserColumns is how many options share a row.
	chooserColumns = 4
)

// Recorder folds a completion into the session and saves it.
type Recorder interface {
	Record(id task.ID) (session.Completion, error)
	Persist(ctx context.Context) error
}

// Opener draws a variant for the screen. onComplete must be passed to the
// variant unchanged.
type Opener func(now time.Time, onComplete func()) (exercise.Variant, error)

// Option configures a PlayScreen.
type Option func(*PlayScreen)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *PlayScreen) { s.now = now }
}

// PlayScreen implements screen.Screen for one opened task.
type PlayScreen struct {
	id       task.ID
	recorder Recorder
	now      func() time.Time
	mount    string

	variant exercise.Variant
	openErr error
	phase   exercise.Phase
	closed  bool

	inputs []components.TextInput
	focus  int
	cursor int
	notice string

	passed         bool
	completion     *session.Completion
	recordErr      error
	saving         bool
	saveErr        error
	celebrateUntil time.Time
}

var (
	_ screen.Screen          = (*PlayScreen)(nil)
	_ screen.KeyHintProvider = (*PlayScreen)(nil)
	_ screen.Closer          = (*PlayScreen)(nil)
)

// New opens a variant of task id through open.
func New(id task.ID, open Opener, recorder Recorder, opts ...Option) *PlayScreen {
	s := &PlayScreen{
		id:       id,
		recorder: recorder,
		now:      time.Now,
		mount:    uuid.NewString(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.variant, s.openErr = open(s.now(), func() { s.passed = true })
	if s.variant != nil {
		s.sync()
	}
	return s
}

func (s *PlayScreen) Title() string {
	if s.variant == nil {
		return s.id.DisplayName()
	}
	return s.id.DisplayName() + " · " + s.variant.Kind().Tag()
}

func (s *PlayScreen) Init() tea.Cmd {
	if s.variant == nil {
		return nil
	}
	return tea.Batch(s.tick(), s.focusCmd())
}

func (s *PlayScreen) tick() tea.Cmd {
	mount := s.mount
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg{mount: mount, at: t}
	})
}

// Close stops the variant's timers. Ticks already in flight are ignored.
func (s *PlayScreen) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.variant != nil {
		s.variant.Close()
	}
}

// Variant returns the hosted variant, or nil if opening failed.
func (s *PlayScreen) Variant() exercise.Variant { return s.variant }

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.mount != s.mount || s.closed || s.variant == nil {
			return s, nil
		}
		s.variant.Advance(s.now())
		s.sync()
		return s, tea.Batch(s.settle(), s.tick())

	case screen.SavedMsg:
		s.saving = false
		s.saveErr = msg.Err
		return s, nil

	case tea.KeyPressMsg:
		if s.closed {
			return s, nil
		}
		if s.variant == nil {
			return s, pop
		}
		cmd := s.handleKey(msg)
		return s, tea.Batch(cmd, s.settle())
	}

	// Blink and other input messages go to the focused field.
	if len(s.inputs) > 0 && !s.closed {
		var cmd tea.Cmd
		s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
		return s, cmd
	}
	return s, nil
}

func pop() tea.Msg { return router.PopScreenMsg{} }

func (s *PlayScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	now := s.now()
	v := s.variant

	if key == "ctrl+t" {
		if h, ok := v.(exercise.Hinter); ok && h.Hint() != "" {
			h.ShowHint()
		}
		return nil
	}

	if v.Phase() == exercise.PhaseResult {
		return s.handleResultKey(key, now)
	}

	if st, ok := v.(exercise.Studier); ok && v.Phase() == exercise.PhaseStudy {
		if key == "enter" {
			s.apply(st.SkipStudy(now))
		}
		return nil
	}

	switch x := v.(type) {
	case *exercise.ReactionTap:
		if key == "space" || key == "enter" {
			s.apply(x.Tap(now))
		}
		return nil
	case *exercise.HoldBeat:
		if key == "space" {
			if x.Phase() == exercise.PhaseHolding {
				s.apply(x.Release(now))
			} else {
				s.apply(x.Press(now))
			}
		}
		return nil
	case *exercise.Delayed:
		switch {
		case key == "enter" && x.Phase() == exercise.PhaseReady:
			s.apply(x.Start(now))
		case key == "g" && x.Phase() == exercise.PhaseWaiting:
			s.apply(x.Abort(now))
		}
		return nil
	}

	if c, ok := v.(exercise.Chooser); ok {
		return s.handleChooserKey(c, key, now)
	}
	if f, ok := v.(exercise.Form); ok {
		return s.handleFormKey(f, msg, now)
	}
	return nil
}

func (s *PlayScreen) handleResultKey(key string, now time.Time) tea.Cmd {
	switch s.variant.Outcome() {
	case exercise.Failed:
		if key == "r" || key == "enter" {
			s.apply(s.variant.Retry(now))
		}
	case exercise.Passed:
		switch key {
		case "enter":
			return pop
		case "s":
			if s.saveErr != nil && !s.saving {
				return s.persist()
			}
		}
	}
	return nil
}

func (s *PlayScreen) handleChooserKey(c exercise.Chooser, key string, now time.Time) tea.Cmd {
	n := len(c.Options())
	switch key {
	case "left", "h":
		if s.cursor > 0 {
			s.cursor--
		}
	case "right", "l":
		if s.cursor < n-1 {
			s.cursor++
		}
	case "up", "k":
		if s.cursor-chooserColumns >= 0 {
			s.cursor -= chooserColumns
		}
	case "down", "j":
		if s.cursor+chooserColumns < n {
			s.cursor += chooserColumns
		}
	case "space":
		s.apply(c.Choose(s.cursor))
	case "enter":
		if sub, ok := c.(exercise.Submitter); ok {
			s.apply(sub.Submit(now))
		} else {
			s.apply(c.Choose(s.cursor))
		}
	}
	return nil
}

func (s *PlayScreen) handleFormKey(f exercise.Form, msg tea.KeyPressMsg, now time.Time) tea.Cmd {
	if len(s.inputs) == 0 {
		return nil
	}
	switch msg.String() {
	case "tab":
		return s.moveFocus(1)
	case "shift+tab":
		return s.moveFocus(-1)
	case "ctrl+s":
		s.apply(f.Submit(now))
		return nil
	case "enter":
		if !s.inputs[s.focus].Multiline() {
			if s.focus < len(s.inputs)-1 {
				return s.moveFocus(1)
			}
			s.apply(f.Submit(now))
			return nil
		}
	}

	var cmd tea.Cmd
	before := s.inputs[s.focus].Value()
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	if after := s.inputs[s.focus].Value(); after != before {
		s.notice = ""
		s.apply(f.SetField(s.focus, after))
	}
	return cmd
}

func (s *PlayScreen) moveFocus(delta int) tea.Cmd {
	n := len(s.inputs)
	s.inputs[s.focus].Blur()
	s.focus = (s.focus + delta + n) % n
	return s.inputs[s.focus].Focus()
}

func (s *PlayScreen) focusCmd() tea.Cmd {
	if len(s.inputs) == 0 {
		return nil
	}
	return s.inputs[s.focus].Focus()
}

// apply shows a validation failure inline. Actions that do not fit the
// current phase are ignored.
func (s *PlayScreen) apply(err error) {
	var ve *apperr.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &ve):
		s.notice = ve.Reason
		if ve.Field != "" {
			s.notice = ve.Field + ": " + ve.Reason
		}
	case errors.Is(err, exercise.ErrPhase), errors.Is(err, exercise.ErrClosed):
	default:
		s.notice = err.Error()
	}
	s.sync()
}

// sync rebuilds the answer fields whenever the variant enters the input
// phase, which happens on open and after every retry.
func (s *PlayScreen) sync() {
	phase := s.variant.Phase()
	if phase == s.phase {
		return
	}
	s.phase = phase
	s.inputs = nil
	s.focus = 0
	if phase != exercise.PhaseInput {
		return
	}
	s.cursor = 0
	s.notice = ""
	f, ok := s.variant.(exercise.Form)
	if !ok {
		return
	}
	for _, fld := range f.Fields() {
		var in components.TextInput
		if fld.Multiline {
			in = components.NewTextArea(fld.Label, fld.Placeholder, 60, 6)
		} else {
			in = components.NewTextInput(fld.Label, fld.Placeholder, 0)
		}
		in.SetValue(fld.Value)
		s.inputs = append(s.inputs, in)
	}
	if len(s.inputs) > 0 {
		s.inputs[0].Focus()
	}
}

// settle records a pass once and starts the background save.
func (s *PlayScreen) settle() tea.Cmd {
	if !s.passed || s.completion != nil || s.recordErr != nil {
		return nil
	}
	comp, err := s.recorder.Record(s.id)
	if err != nil {
		s.recordErr = err
		return nil
	}
	s.completion = &comp
	if comp.Celebrate() {
		s.celebrateUntil = s.now().Add(celebrateFor)
	}
	return s.persist()
}

func (s *PlayScreen) persist() tea.Cmd {
	s.saving = true
	s.saveErr = nil
	rec := s.recorder
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		return screen.SavedMsg{Err: rec.Persist(ctx)}
	}
}

// Celebrating reports whether the perfect-day banner is showing.
func (s *PlayScreen) Celebrating() bool {
	return !s.celebrateUntil.IsZero() && s.now().Before(s.celebrateUntil)
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	back := layout.KeyHint{Key: "Esc", Description: "Back"}
	v := s.variant
	if v == nil {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}

	if v.Phase() == exercise.PhaseResult {
		if v.Outcome() == exercise.Failed {
			return []layout.KeyHint{{Key: "R", Description: "Try again"}, back}
		}
		hints := []layout.KeyHint{{Key: "Enter", Description: "Done"}}
		if s.saveErr != nil {
			hints = append(hints, layout.KeyHint{Key: "S", Description: "Save again"})
		}
		return hints
	}
	if _, ok := v.(exercise.Studier); ok && v.Phase() == exercise.PhaseStudy {
		return []layout.KeyHint{{Key: "Enter", Description: "I'm ready"}, back}
	}

	var hints []layout.KeyHint
	switch v.(type) {
	case *exercise.ReactionTap:
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Tap"})
	case *exercise.HoldBeat:
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Hold / release"})
	case *exercise.Delayed:
		if v.Phase() == exercise.PhaseReady {
			hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Start waiting"})
		} else {
			hints = append(hints, layout.KeyHint{Key: "G", Description: "Give up"})
		}
	default:
		if c, ok := v.(exercise.Chooser); ok {
			hints = append(hints, layout.KeyHint{Key: "←→↑↓", Description: "Move"})
			if _, multi := c.(exercise.Submitter); multi {
				hints = append(hints,
					layout.KeyHint{Key: "Space", Description: "Toggle"},
					layout.KeyHint{Key: "Enter", Description: "Check"})
			} else {
				hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Pick"})
			}
		} else if len(s.inputs) > 1 {
			hints = append(hints,
				layout.KeyHint{Key: "Tab", Description: "Next field"},
				layout.KeyHint{Key: "Ctrl+S", Description: "Submit"})
		} else if len(s.inputs) == 1 && s.inputs[0].Multiline() {
			hints = append(hints, layout.KeyHint{Key: "Ctrl+S", Description: "Submit"})
		} else if len(s.inputs) == 1 {
			hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Submit"})
		}
		if h, ok := v.(exercise.Hinter); ok && h.Hint() != "" && !h.HintShown() {
			hints = append(hints, layout.KeyHint{Key: "Ctrl+T", Description: "Hint"})
		}
	}
	return append(hints, back)
}
