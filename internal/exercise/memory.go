package exercise

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/mindupgrade/internal/content"
	"github.com/abhisek/mindupgrade/internal/task"
)

const (
	wordCount      = 10
	wordPassMark   = 6
	wordStudyTime  = 30 * time.Second
	digitStudyTime = 20 * time.Second
	symbolStudy    = 15 * time.Second
)

// study is the timed memorisation phase shared by the memory variants.
type study struct {
	base
	clock *Countdown
}

func newStudy(kind Kind, d time.Duration, now time.Time, onComplete func()) study {
	s := study{base: newBase(kind, task.Memory, PhaseStudy, onComplete)}
	s.clock = s.timer(d)
	s.clock.Start(now)
	return s
}

func (s *study) Advance(now time.Time) {
	if s.closed || s.phase != PhaseStudy {
		return
	}
	if s.clock.Expired(now) {
		s.clock.Stop()
		s.phase = PhaseInput
	}
}

func (s *study) StudyRemaining(now time.Time) time.Duration {
	return s.clock.Remaining(now)
}

func (s *study) SkipStudy(time.Time) error {
	if err := s.check(PhaseStudy); err != nil {
		return err
	}
	s.clock.Stop()
	s.phase = PhaseInput
	return nil
}

// restudy goes back to a fresh study timer after a failure.
func (s *study) restudy(now time.Time) error {
	if err := s.restart(PhaseStudy); err != nil {
		return err
	}
	s.clock.Start(now)
	return nil
}

// WordRecall shows ten words to memorise in order, then asks for them back.
type WordRecall struct {
	study
	words   []string
	inputs  []string
	matches int
}

var (
	_ Form    = (*WordRecall)(nil)
	_ Studier = (*WordRecall)(nil)
)

func newWordRecall(bank *content.Bank, rng *rand.Rand, now time.Time, onComplete func()) *WordRecall {
	perm := rng.Perm(len(bank.Words))
	words := make([]string, wordCount)
	for i := range words {
		words[i] = bank.Words[perm[i]]
	}
	return &WordRecall{
		study:  newStudy(KindWordRecall, wordStudyTime, now, onComplete),
		words:  words,
		inputs: make([]string, wordCount),
	}
}

// Words returns the words to memorise, in order.
func (w *WordRecall) Words() []string { return w.words }

// Matches returns how many words the last attempt recalled.
func (w *WordRecall) Matches() int { return w.matches }

// Correct reports whether the i-th answer of the last attempt matched.
func (w *WordRecall) Correct(i int) bool {
	return strings.EqualFold(strings.TrimSpace(w.inputs[i]), w.words[i])
}

func (w *WordRecall) Fields() []Field {
	out := make([]Field, len(w.inputs))
	for i, v := range w.inputs {
		out[i] = Field{Label: fmt.Sprintf("Word %d", i+1), Value: v}
	}
	return out
}

func (w *WordRecall) SetField(i int, value string) error {
	if err := w.check(PhaseInput); err != nil {
		return err
	}
	if i < 0 || i >= len(w.inputs) {
		return fmt.Errorf("field %d out of range", i)
	}
	w.inputs[i] = value
	return nil
}

func (w *WordRecall) Submit(time.Time) error {
	if err := w.check(PhaseInput); err != nil {
		return err
	}
	w.matches = CountMatches(w.words, w.inputs)
	w.settle(w.matches >= wordPassMark)
	return nil
}

// Retry returns to a fresh 30 second study phase with empty answers.
func (w *WordRecall) Retry(now time.Time) error {
	if err := w.restudy(now); err != nil {
		return err
	}
	clear(w.inputs)
	w.matches = 0
	return nil
}

func (w *WordRecall) Summary() string {
	s := fmt.Sprintf("You recalled %d/%d words correctly.", w.matches, len(w.words))
	if w.outcome == Failed {
		s += fmt.Sprintf(" Need %d/%d to pass.", wordPassMark, len(w.words))
	}
	return s
}

// CountMatches counts position-exact, case-insensitive matches.
func CountMatches(words, inputs []string) int {
	n := 0
	for i, word := range words {
		if i < len(inputs) && strings.EqualFold(strings.TrimSpace(inputs[i]), word) {
			n++
		}
	}
	return n
}

// NumberSequence shows eight digits to memorise, then asks for them back.
type NumberSequence struct {
	study
	digits []int
	input  string
}

var (
	_ Form    = (*NumberSequence)(nil)
	_ Studier = (*NumberSequence)(nil)
)

func newNumberSequence(bank *content.Bank, rng *rand.Rand, now time.Time, onComplete func()) *NumberSequence {
	seq := bank.Sequences[rng.IntN(len(bank.Sequences))]
	return &NumberSequence{
		study:  newStudy(KindNumberSeq, digitStudyTime, now, onComplete),
		digits: slices.Clone(seq),
	}
}

// Digits returns the sequence to memorise.
func (n *NumberSequence) Digits() []int { return n.digits }

func (n *NumberSequence) String() string {
	var b strings.Builder
	for _, d := range n.digits {
		b.WriteString(strconv.Itoa(d))
	}
	return b.String()
}

func (n *NumberSequence) Fields() []Field {
	return []Field{{Label: "Sequence", Value: n.input, Placeholder: "_ _ _ _ _ _ _ _"}}
}

func (n *NumberSequence) SetField(i int, value string) error {
	if err := n.check(PhaseInput); err != nil {
		return err
	}
	if i != 0 {
		return fmt.Errorf("field %d out of range", i)
	}
	n.input = value
	return nil
}

func (n *NumberSequence) Submit(time.Time) error {
	if err := n.check(PhaseInput); err != nil {
		return err
	}
	n.settle(stripSpace(n.input) == n.String())
	return nil
}

// Retry keeps the same sequence and restarts the 20 second study timer.
func (n *NumberSequence) Retry(now time.Time) error {
	if err := n.restudy(now); err != nil {
		return err
	}
	n.input = ""
	return nil
}

func (n *NumberSequence) Summary() string {
	if n.outcome == Passed {
		return "Perfect recall!"
	}
	return fmt.Sprintf("The sequence was %s.", n.String())
}

// SymbolPattern shows a twelve-cell grid, then asks which symbols appeared.
type SymbolPattern struct {
	study
	grid     []string
	palette  []string
	selected map[string]bool
}

var (
	_ Chooser   = (*SymbolPattern)(nil)
	_ Submitter = (*SymbolPattern)(nil)
	_ Studier   = (*SymbolPattern)(nil)
)

func newSymbolPattern(bank *content.Bank, rng *rand.Rand, now time.Time, onComplete func()) *SymbolPattern {
	return &SymbolPattern{
		study:    newStudy(KindSymbols, symbolStudy, now, onComplete),
		grid:     slices.Clone(bank.SymbolGrids[rng.IntN(len(bank.SymbolGrids))]),
		palette:  slices.Clone(bank.SymbolPalette),
		selected: make(map[string]bool),
	}
}

// Grid returns the cells shown during study.
func (s *SymbolPattern) Grid() []string { return s.grid }

// Unique returns the distinct symbols of the grid.
func (s *SymbolPattern) Unique() []string { return content.UniqueSymbols(s.grid) }

func (s *SymbolPattern) Options() []string { return s.palette }

func (s *SymbolPattern) IsSelected(i int) bool {
	return i >= 0 && i < len(s.palette) && s.selected[s.palette[i]]
}

// Choose toggles the i-th palette symbol.
func (s *SymbolPattern) Choose(i int) error {
	if err := s.check(PhaseInput); err != nil {
		return err
	}
	if i < 0 || i >= len(s.palette) {
		return fmt.Errorf("option %d out of range", i)
	}
	sym := s.palette[i]
	if s.selected[sym] {
		delete(s.selected, sym)
	} else {
		s.selected[sym] = true
	}
	return nil
}

func (s *SymbolPattern) Submit(time.Time) error {
	if err := s.check(PhaseInput); err != nil {
		return err
	}
	picked := make([]string, 0, len(s.selected))
	for sym := range s.selected {
		picked = append(picked, sym)
	}
	s.settle(SameSet(picked, s.Unique()))
	return nil
}

// Retry clears the selection and restarts the 15 second study timer.
func (s *SymbolPattern) Retry(now time.Time) error {
	if err := s.restudy(now); err != nil {
		return err
	}
	clear(s.selected)
	return nil
}

func (s *SymbolPattern) Summary() string {
	if s.outcome == Passed {
		return "You spotted every symbol."
	}
	return "The symbols were " + strings.Join(s.Unique(), " ") + "."
}

// SameSet reports whether a and b hold the same distinct elements.
func SameSet(a, b []string) bool {
	as := make(map[string]bool, len(a))
	for _, x := range a {
		as[x] = true
	}
	bs := make(map[string]bool, len(b))
	for _, x := range b {
		bs[x] = true
	}
	if len(as) != len(bs) {
		return false
	}
	for x := range as {
		if !bs[x] {
			return false
		}
	}
	return true
}
