package exercise

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/abhisek/mindupgrade/internal/apperr"
	"github.com/abhisek/mindupgrade/internal/content"
	"github.com/abhisek/mindupgrade/internal/task"
)

const typingPassMark = 90

// Typing asks the user to copy a passage. The attempt is scored as soon as
// the typed text is at least as long as the passage.
type Typing struct {
	base
	passage  string
	typed    string
	accuracy int
}

var _ Form = (*Typing)(nil)

func newTyping(bank *content.Bank, rng *rand.Rand, _ time.Time, onComplete func()) *Typing {
	return &Typing{
		base:    newBase(KindTyping, task.Focus, PhaseInput, onComplete),
		passage: bank.Passages[rng.IntN(len(bank.Passages))],
	}
}

// Passage returns the text to copy.
func (t *Typing) Passage() string { return t.passage }

// Typed returns the current input.
func (t *Typing) Typed() string { return t.typed }

// Accuracy returns the score of the finished attempt as a percentage.
func (t *Typing) Accuracy() int { return t.accuracy }

func (t *Typing) Fields() []Field {
	return []Field{{Label: "Your typing", Value: t.typed, Placeholder: "Start typing here..."}}
}

func (t *Typing) SetField(i int, value string) error {
	if err := t.check(PhaseInput); err != nil {
		return err
	}
	if i != 0 {
		return fmt.Errorf("field %d out of range", i)
	}
	t.typed = value
	if utf8.RuneCountInString(value) >= utf8.RuneCountInString(t.passage) {
		t.accuracy = Accuracy(t.passage, value)
		t.settle(t.accuracy >= typingPassMark)
	}
	return nil
}

// Submit only reports how much is left; scoring happens while typing.
func (t *Typing) Submit(time.Time) error {
	if err := t.check(PhaseInput); err != nil {
		return err
	}
	left := utf8.RuneCountInString(t.passage) - utf8.RuneCountInString(t.typed)
	return apperr.Invalid("", fmt.Sprintf("keep typing: %d characters to go", left))
}

// Retry clears the input and keeps the passage.
func (t *Typing) Retry(time.Time) error {
	if err := t.restart(PhaseInput); err != nil {
		return err
	}
	t.typed = ""
	t.accuracy = 0
	return nil
}

func (t *Typing) Summary() string {
	s := fmt.Sprintf("Accuracy: %d%%.", t.accuracy)
	if t.outcome == Failed {
		s += fmt.Sprintf(" Need %d%% to pass.", typingPassMark)
	}
	return s
}

// Accuracy returns the rounded percentage of passage characters matched
// position by position in typed.
func Accuracy(passage, typed string) int {
	want := []rune(passage)
	if len(want) == 0 {
		return 100
	}
	got := []rune(typed)
	correct := 0
	for i, r := range want {
		if i < len(got) && got[i] == r {
			correct++
		}
	}
	return int(math.Floor(float64(correct)/float64(len(want))*100 + 0.5))
}

// MentalMath reads out an arithmetic chain and asks for the result.
type MentalMath struct {
	base
	chain  Chain
	answer string
}

var _ Form = (*MentalMath)(nil)

func newMentalMath(_ *content.Bank, rng *rand.Rand, _ time.Time, onComplete func()) *MentalMath {
	return &MentalMath{
		base:  newBase(KindMentalMath, task.Focus, PhaseInput, onComplete),
		chain: GenerateChain(rng),
	}
}

// Chain returns the generated problem.
func (m *MentalMath) Chain() Chain { return m.chain }

func (m *MentalMath) Fields() []Field {
	return []Field{{Label: "Answer", Value: m.answer, Placeholder: "Your answer"}}
}

func (m *MentalMath) SetField(i int, value string) error {
	if err := m.check(PhaseInput); err != nil {
		return err
	}
	if i != 0 {
		return fmt.Errorf("field %d out of range", i)
	}
	m.answer = value
	return nil
}

func (m *MentalMath) Submit(time.Time) error {
	if err := m.check(PhaseInput); err != nil {
		return err
	}
	n, ok := parseLeadingInt(m.answer)
	m.settle(ok && n == m.chain.Answer)
	return nil
}

// Retry clears the answer and keeps the chain.
func (m *MentalMath) Retry(time.Time) error {
	if err := m.restart(PhaseInput); err != nil {
		return err
	}
	m.answer = ""
	return nil
}

func (m *MentalMath) Summary() string {
	if m.outcome == Passed {
		return "Correct! The answer is " + strconv.Itoa(m.chain.Answer) + "."
	}
	return "Not quite. Work through the steps again."
}

// OddOneOut asks which item does not belong to a category.
type OddOneOut struct {
	base
	set    content.OddSet
	picked int
}

var _ Chooser = (*OddOneOut)(nil)

func newOddOneOut(bank *content.Bank, rng *rand.Rand, _ time.Time, onComplete func()) *OddOneOut {
	set := bank.OddSets[rng.IntN(len(bank.OddSets))]
	set.Items = slices.Clone(set.Items)
	return &OddOneOut{
		base:   newBase(KindOddOneOut, task.Focus, PhaseInput, onComplete),
		set:    set,
		picked: -1,
	}
}

// Set returns the drawn item set.
func (o *OddOneOut) Set() content.OddSet { return o.set }

func (o *OddOneOut) Options() []string { return o.set.Items }

func (o *OddOneOut) IsSelected(i int) bool { return i == o.picked }

// Choose picks the i-th item and settles the attempt immediately.
func (o *OddOneOut) Choose(i int) error {
	if err := o.check(PhaseInput); err != nil {
		return err
	}
	if i < 0 || i >= len(o.set.Items) {
		return fmt.Errorf("option %d out of range", i)
	}
	o.picked = i
	o.settle(o.set.Items[i] == o.set.Odd)
	return nil
}

// Retry clears the pick.
func (o *OddOneOut) Retry(time.Time) error {
	if err := o.restart(PhaseInput); err != nil {
		return err
	}
	o.picked = -1
	return nil
}

func (o *OddOneOut) Summary() string {
	if o.outcome == Passed {
		return fmt.Sprintf("Correct! %q is not one of the %s.", o.set.Odd, o.set.Category)
	}
	return fmt.Sprintf("Not quite. %q doesn't belong: it's not one of the %s.", o.set.Odd, o.set.Category)
}
