// Package exercise implements the eighteen timed and untimed mini-tasks,
// three per training category. Content is drawn once when a variant is
// opened and kept through retries.
package exercise

import (
	"errors"
	"time"

	"github.com/abhisek/mindupgrade/internal/task"
)

// Kind identifies a concrete variant.
type Kind string

const (
	KindWordRecall  Kind = "word-recall"
	KindNumberSeq   Kind = "number-sequence"
	KindSymbols     Kind = "pattern-recall"
	KindTyping      Kind = "typing-accuracy"
	KindMentalMath  Kind = "mental-math"
	KindOddOneOut   Kind = "odd-one-out"
	KindBrainstorm  Kind = "brainstorm"
	KindProsCons    Kind = "pros-cons"
	KindWhatIf      Kind = "what-if"
	KindReactionTap Kind = "reaction-tap"
	KindHoldBeat    Kind = "hold-the-beat"
	KindDelayed     Kind = "delayed-gratification"
	KindRiddle      Kind = "riddle"
	KindLogic       Kind = "logic-puzzle"
	KindPattern     Kind = "pattern"
	KindReflective  Kind = "reflection"
	KindLetter      Kind = "letter"
	KindStory       Kind = "story"
)

// Tag returns the short uppercase label shown above a variant.
func (k Kind) Tag() string {
	switch k {
	case KindWordRecall:
		return "WORD RECALL"
	case KindNumberSeq:
		return "NUMBER SEQUENCE"
	case KindSymbols:
		return "PATTERN RECALL"
	case KindTyping:
		return "TYPING ACCURACY"
	case KindMentalMath:
		return "MENTAL MATH"
	case KindOddOneOut:
		return "ODD ONE OUT"
	case KindBrainstorm:
		return "BRAINSTORM"
	case KindProsCons:
		return "PROS & CONS"
	case KindWhatIf:
		return "WHAT IF"
	case KindReactionTap:
		return "REACTION TAP"
	case KindHoldBeat:
		return "HOLD THE BEAT"
	case KindDelayed:
		return "DELAYED GRATIFICATION"
	case KindRiddle:
		return "RIDDLE"
	case KindLogic:
		return "LOGIC PUZZLE"
	case KindPattern:
		return "PATTERN"
	case KindReflective:
		return "REFLECTION"
	case KindLetter:
		return "LETTER"
	case KindStory:
		return "STORY"
	default:
		return string(k)
	}
}

// Phase is the step a variant is in.
type Phase string

const (
	PhaseStudy   Phase = "study"   // timed memorisation
	PhaseInput   Phase = "input"   // answering
	PhaseReady   Phase = "ready"   // waiting for the user to start
	PhaseWaiting Phase = "waiting" // a timer is running and the user must hold off
	PhaseGo      Phase = "go"      // reaction window is open
	PhaseHolding Phase = "holding"
	PhaseResult  Phase = "result"
)

// Outcome is the verdict of a finished attempt.
type Outcome int

const (
	Pending Outcome = iota
	Passed
	Failed
)

var (
	// ErrClosed is returned by every action on a closed variant.
	ErrClosed = errors.New("exercise: closed")

	// ErrPhase is returned when an action does not apply to the current phase.
	ErrPhase = errors.New("exercise: action not available in this phase")
)

// Variant is one opened mini-task.
type Variant interface {
	Kind() Kind
	Task() task.ID
	Phase() Phase
	Outcome() Outcome

	// Summary describes the result once Phase is PhaseResult.
	Summary() string

	// Advance fires any timers due at now. The host calls it on every tick.
	Advance(now time.Time)

	// Retry restarts a failed attempt with the same content.
	Retry(now time.Time) error

	// Close stops all timers. After Close no callback fires and every
	// action returns ErrClosed.
	Close()
	Closed() bool
}

// Field is one editable text answer.
type Field struct {
	Label       string
	Value       string
	Placeholder string
	Multiline   bool
}

// Submitter is implemented by variants with an explicit check step.
type Submitter interface {
	Submit(now time.Time) error
}

// Form is implemented by variants answered with free text. Fields is only
// meaningful in PhaseInput.
type Form interface {
	Submitter
	Fields() []Field
	SetField(i int, value string) error
}

// Chooser is implemented by variants answered by picking options.
type Chooser interface {
	Options() []string
	IsSelected(i int) bool
	Choose(i int) error
}

// Studier is implemented by variants that open with a timed study phase.
type Studier interface {
	StudyRemaining(now time.Time) time.Duration
	SkipStudy(now time.Time) error
}

// Hinter is implemented by variants that can reveal a hint.
type Hinter interface {
	Hint() string
	HintShown() bool
	ShowHint()
}

// base carries the state machine shared by all variants.
type base struct {
	kind       Kind
	task       task.ID
	phase      Phase
	outcome    Outcome
	onComplete func()
	fired      bool
	closed     bool
	timers     []*Countdown
}

func newBase(kind Kind, id task.ID, phase Phase, onComplete func()) base {
	return base{kind: kind, task: id, phase: phase, onComplete: onComplete}
}

func (b *base) Kind() Kind { return b.kind }
func (b *base) Task() task.ID { return b.task }
func (b *base) Phase() Phase { return b.phase }
func (b *base) Outcome() Outcome { return b.outcome }
func (b *base) Closed() bool { return b.closed }

// timer registers a countdown owned by the variant.
func (b *base) timer(d time.Duration) *Countdown {
	c := NewCountdown(d)
	b.timers = append(b.timers, c)
	return c
}

func (b *base) Close() {
	for _, c := range b.timers {
		c.Stop()
	}
	b.closed = true
}

// check returns ErrClosed or ErrPhase unless the variant is open and in
// one of the given phases.
func (b *base) check(phases ...Phase) error {
	if b.closed {
		return ErrClosed
	}
	for _, p := range phases {
		if b.phase == p {
			return nil
		}
	}
	return ErrPhase
}

// pass ends the attempt successfully. onComplete fires at most once per
// variant and never after Close.
func (b *base) pass() {
	b.stopTimers()
	b.phase = PhaseResult
	b.outcome = Passed
	if b.fired || b.closed {
		return
	}
	b.fired = true
	if b.onComplete != nil {
		b.onComplete()
	}
}

func (b *base) fail() {
	b.stopTimers()
	b.phase = PhaseResult
	b.outcome = Failed
}

func (b *base) settle(ok bool) {
	if ok {
		b.pass()
	} else {
		b.fail()
	}
}

// restart resets the outcome for a retry after a failure.
func (b *base) restart(phase Phase) error {
	if err := b.check(PhaseResult); err != nil {
		return err
	}
	if b.outcome != Failed {
		return ErrPhase
	}
	b.outcome = Pending
	b.phase = phase
	return nil
}

func (b *base) stopTimers() {
	for _, c := range b.timers {
		c.Stop()
	}
}

// Advance is a no-op for variants without timers.
func (b *base) Advance(time.Time) {}
