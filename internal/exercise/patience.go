package exercise

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abhisek/mindupgrade/internal/content"
	"github.com/abhisek/mindupgrade/internal/task"
)

const (
	tapRounds     = 3
	tapJitter     = 2000 * time.Millisecond
	holdTarget    = 5 * time.Second
	holdTolerance = 500 * time.Millisecond
	delayedWait   = 12 * time.Second
)

// tapBases are the per-round base delays; every delay lies in
// [3000ms, 6500ms) once jitter is added.
var tapBases = []time.Duration{
	3000 * time.Millisecond,
	3500 * time.Millisecond,
	4000 * time.Millisecond,
	4500 * time.Millisecond,
}

// ReactionTap runs three rounds of waiting for a signal and tapping.
// Tapping before the signal re-arms the round with a fresh delay.
type ReactionTap struct {
	base
	rng      *rand.Rand
	delay    *Countdown
	round    int
	opened   time.Time
	times    []time.Duration
	tooEarly bool
}

func newReactionTap(_ *content.Bank, rng *rand.Rand, now time.Time, onComplete func()) *ReactionTap {
	r := &ReactionTap{base: newBase(KindReactionTap, task.Patience, PhaseWaiting, onComplete), rng: rng}
	r.delay = r.timer(0)
	r.arm(now)
	return r
}

// TapDelay returns the wait before the signal for a round.
func TapDelay(round int, rng *rand.Rand) time.Duration {
	jitter := time.Duration(rng.Int64N(int64(tapJitter)))
	return tapBases[round%len(tapBases)] + jitter
}

func (r *ReactionTap) arm(now time.Time) {
	r.phase = PhaseWaiting
	r.delay.StartWith(now, TapDelay(r.round, r.rng))
}

func (r *ReactionTap) Advance(now time.Time) {
	if r.closed || r.phase != PhaseWaiting {
		return
	}
	if r.delay.Expired(now) {
		r.delay.Stop()
		r.phase = PhaseGo
		r.opened = now
	}
}

// Tap reacts to the signal. An early tap re-arms the current round.
func (r *ReactionTap) Tap(now time.Time) error {
	if err := r.check(PhaseWaiting, PhaseGo); err != nil {
		return err
	}
	if r.phase == PhaseWaiting {
		r.tooEarly = true
		r.arm(now)
		return nil
	}
	r.tooEarly = false
	r.times = append(r.times, now.Sub(r.opened))
	r.round++
	if len(r.times) >= tapRounds {
		r.pass()
		return nil
	}
	r.arm(now)
	return nil
}

// Round returns the zero-based round in progress.
func (r *ReactionTap) Round() int { return r.round }

// Rounds returns the number of rounds to finish.
func (r *ReactionTap) Rounds() int { return tapRounds }

// TooEarly reports whether the last tap came before the signal.
func (r *ReactionTap) TooEarly() bool { return r.tooEarly }

// Times returns the recorded reaction times.
func (r *ReactionTap) Times() []time.Duration { return r.times }

// Average returns the mean reaction time.
func (r *ReactionTap) Average() time.Duration {
	if len(r.times) == 0 {
		return 0
	}
	var sum time.Duration
	for _, t := range r.times {
		sum += t
	}
	return sum / time.Duration(len(r.times))
}

// Retry does not apply: every finished run passes.
func (r *ReactionTap) Retry(time.Time) error { return r.restart(PhaseWaiting) }

func (r *ReactionTap) Summary() string {
	return fmt.Sprintf("Average reaction: %dms.", r.Average().Milliseconds())
}

// HoldBeat asks the user to hold for as close to five seconds as possible.
type HoldBeat struct {
	base
	pressed time.Time
	held    time.Duration
}

func newHoldBeat(_ *content.Bank, _ *rand.Rand, _ time.Time, onComplete func()) *HoldBeat {
	return &HoldBeat{base: newBase(KindHoldBeat, task.Patience, PhaseReady, onComplete)}
}

// Press starts holding.
func (h *HoldBeat) Press(now time.Time) error {
	if err := h.check(PhaseReady); err != nil {
		return err
	}
	h.pressed = now
	h.phase = PhaseHolding
	return nil
}

// Release stops holding and scores the hold.
func (h *HoldBeat) Release(now time.Time) error {
	if err := h.check(PhaseHolding); err != nil {
		return err
	}
	h.held = now.Sub(h.pressed)
	h.settle(HoldOnBeat(h.held))
	return nil
}

// HoldOnBeat reports whether held is within tolerance of the target.
func HoldOnBeat(held time.Duration) bool {
	return (held - holdTarget).Abs() <= holdTolerance
}

// Elapsed returns how long the current hold has lasted.
func (h *HoldBeat) Elapsed(now time.Time) time.Duration {
	if h.phase == PhaseHolding {
		return now.Sub(h.pressed)
	}
	return h.held
}

// Target returns the duration to aim for.
func (h *HoldBeat) Target() time.Duration { return holdTarget }

// Retry returns to the ready state.
func (h *HoldBeat) Retry(time.Time) error {
	if err := h.restart(PhaseReady); err != nil {
		return err
	}
	h.held = 0
	return nil
}

func (h *HoldBeat) Summary() string {
	diff := (h.held - holdTarget).Abs()
	s := fmt.Sprintf("You held for %.2fs (off by %.2fs).", h.held.Seconds(), diff.Seconds())
	if h.outcome == Passed {
		return s + " Perfect timing!"
	}
	return s + fmt.Sprintf(" Need to be within %.1fs of %ds.", holdTolerance.Seconds(), int(holdTarget.Seconds()))
}

// Delayed offers to wait out a twelve second countdown. Giving up ends the
// attempt as failed.
type Delayed struct {
	base
	clock *Countdown
}

func newDelayed(_ *content.Bank, _ *rand.Rand, _ time.Time, onComplete func()) *Delayed {
	d := &Delayed{base: newBase(KindDelayed, task.Patience, PhaseReady, onComplete)}
	d.clock = d.timer(delayedWait)
	return d
}

// Start begins the countdown.
func (d *Delayed) Start(now time.Time) error {
	if err := d.check(PhaseReady); err != nil {
		return err
	}
	d.clock.Start(now)
	d.phase = PhaseWaiting
	return nil
}

// Abort gives up while waiting.
func (d *Delayed) Abort(time.Time) error {
	if err := d.check(PhaseWaiting); err != nil {
		return err
	}
	d.fail()
	return nil
}

func (d *Delayed) Advance(now time.Time) {
	if d.closed || d.phase != PhaseWaiting {
		return
	}
	if d.clock.Expired(now) {
		d.pass()
	}
}

// SecondsLeft returns the whole seconds left on the countdown.
func (d *Delayed) SecondsLeft(now time.Time) int { return d.clock.SecondsLeft(now) }

// Retry returns to the ready state.
func (d *Delayed) Retry(time.Time) error { return d.restart(PhaseReady) }

func (d *Delayed) Summary() string {
	if d.outcome == Passed {
		return fmt.Sprintf("You waited the full %d seconds.", int(delayedWait.Seconds()))
	}
	return "You gave up early. The reward goes to those who wait."
}
