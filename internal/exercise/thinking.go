package exercise

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abhisek/mindupgrade/internal/apperr"
	"github.com/abhisek/mindupgrade/internal/content"
	"github.com/abhisek/mindupgrade/internal/task"
)

const (
	ideaMinLen  = 10
	ideaCount   = 3
	pointMinLen = 5
	whatIfWords = 30
)

// openForm is a free-text variant with a readiness gate and no wrong
// answers: once ready, submitting always passes.
type openForm struct {
	base
	prompt string
	labels []string
	values []string
	multi  bool
	ready  func(values []string) error
}

func (f *openForm) Prompt() string { return f.prompt }

func (f *openForm) Fields() []Field {
	out := make([]Field, len(f.values))
	for i, v := range f.values {
		out[i] = Field{Label: f.labels[i], Value: v, Placeholder: f.labels[i] + "...", Multiline: f.multi}
	}
	return out
}

func (f *openForm) SetField(i int, value string) error {
	if err := f.check(PhaseInput); err != nil {
		return err
	}
	if i < 0 || i >= len(f.values) {
		return fmt.Errorf("field %d out of range", i)
	}
	f.values[i] = value
	return nil
}

// Ready reports whether Submit would be accepted.
func (f *openForm) Ready() bool { return f.ready(f.values) == nil }

func (f *openForm) Submit(time.Time) error {
	if err := f.check(PhaseInput); err != nil {
		return err
	}
	if err := f.ready(f.values); err != nil {
		return err
	}
	f.pass()
	return nil
}

// Retry is never needed: an open form cannot fail.
func (f *openForm) Retry(time.Time) error { return f.restart(PhaseInput) }

func (f *openForm) Summary() string { return "Submitted. Nice work!" }

// Brainstorm asks for three ideas about a scenario.
type Brainstorm struct{ openForm }

// ProsCons asks for two pros and two cons of a decision.
type ProsCons struct{ openForm }

// WhatIf asks for a thought-through answer to a hypothetical.
type WhatIf struct{ openForm }

var (
	_ Form = (*Brainstorm)(nil)
	_ Form = (*ProsCons)(nil)
	_ Form = (*WhatIf)(nil)
)

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.IntN(len(pool))]
}

func newBrainstorm(bank *content.Bank, rng *rand.Rand, _ time.Time, onComplete func()) *Brainstorm {
	labels := make([]string, ideaCount)
	for i := range labels {
		labels[i] = fmt.Sprintf("Idea %d", i+1)
	}
	return &Brainstorm{openForm{
		base:   newBase(KindBrainstorm, task.Thinking, PhaseInput, onComplete),
		prompt: pick(rng, bank.Brainstorm),
		labels: labels,
		values: make([]string, ideaCount),
		ready:  ideasReady,
	}}
}

func ideasReady(values []string) error {
	n := 0
	for _, v := range values {
		if trimmedLen(v) > ideaMinLen {
			n++
		}
	}
	if n < ideaCount {
		return apperr.Invalid("ideas", fmt.Sprintf("%d of %d ideas need more than %d characters", ideaCount-n, ideaCount, ideaMinLen))
	}
	return nil
}

func newProsCons(bank *content.Bank, rng *rand.Rand, _ time.Time, onComplete func()) *ProsCons {
	return &ProsCons{openForm{
		base:   newBase(KindProsCons, task.Thinking, PhaseInput, onComplete),
		prompt: pick(rng, bank.ProsCons),
		labels: []string{"Pro 1", "Pro 2", "Con 1", "Con 2"},
		values: make([]string, 4),
		ready:  pointsReady,
	}}
}

func pointsReady(values []string) error {
	for i, v := range values {
		if trimmedLen(v) <= pointMinLen {
			side, n := "pro", i+1
			if i >= 2 {
				side, n = "con", i-1
			}
			return apperr.Invalid(fmt.Sprintf("%s %d", side, n), fmt.Sprintf("needs more than %d characters", pointMinLen))
		}
	}
	return nil
}

func newWhatIf(bank *content.Bank, rng *rand.Rand, _ time.Time, onComplete func()) *WhatIf {
	return &WhatIf{openForm{
		base:   newBase(KindWhatIf, task.Thinking, PhaseInput, onComplete),
		prompt: pick(rng, bank.WhatIf),
		labels: []string{"Your answer"},
		values: make([]string, 1),
		multi:  true,
		ready:  minWords(whatIfWords),
	}}
}

func minWords(n int) func([]string) error {
	return func(values []string) error {
		if got := WordCount(values[0]); got < n {
			return apperr.Invalid("answer", fmt.Sprintf("%d/%d words", got, n))
		}
		return nil
	}
}

// MinWords returns the word count needed to submit.
func (w *WhatIf) MinWords() int { return whatIfWords }

// Words returns the current word count.
func (w *WhatIf) Words() int { return WordCount(w.values[0]) }
