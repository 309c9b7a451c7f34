package exercise

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abhisek/mindupgrade/internal/content"
	"github.com/abhisek/mindupgrade/internal/task"
)

// openAnswerMin is the trimmed length that counts as an answer to an
// open-ended logic puzzle.
const openAnswerMin = 20

// Puzzle is a single-answer problem. The three problem-solving variants
// differ only in their pool and matching rule.
type Puzzle struct {
	base
	puzzle content.Puzzle
	answer string
	hint   bool
	match  func(p content.Puzzle, answer string) bool
}

var (
	_ Form   = (*Puzzle)(nil)
	_ Hinter = (*Puzzle)(nil)
)

func newPuzzle(kind Kind, p content.Puzzle, match func(content.Puzzle, string) bool, onComplete func()) *Puzzle {
	return &Puzzle{base: newBase(kind, task.Problem, PhaseInput, onComplete), puzzle: p, match: match}
}

func newRiddle(bank *content.Bank, rng *rand.Rand, _ time.Time, onComplete func()) *Puzzle {
	return newPuzzle(KindRiddle, bank.Riddles[rng.IntN(len(bank.Riddles))], RiddleCorrect, onComplete)
}

func newLogic(bank *content.Bank, rng *rand.Rand, _ time.Time, onComplete func()) *Puzzle {
	return newPuzzle(KindLogic, bank.Logic[rng.IntN(len(bank.Logic))], LogicCorrect, onComplete)
}

func newPattern(bank *content.Bank, rng *rand.Rand, _ time.Time, onComplete func()) *Puzzle {
	return newPuzzle(KindPattern, bank.Patterns[rng.IntN(len(bank.Patterns))], PatternCorrect, onComplete)
}

// RiddleCorrect accepts an answer that equals or contains the canonical one.
func RiddleCorrect(p content.Puzzle, answer string) bool {
	return matchesAnswer(answer, p.Answer)
}

// LogicCorrect applies the riddle rule to closed puzzles and accepts any
// answer of at least twenty characters for open ones.
func LogicCorrect(p content.Puzzle, answer string) bool {
	if p.Open {
		return trimmedLen(answer) >= openAnswerMin
	}
	return matchesAnswer(answer, p.Answer)
}

// PatternCorrect requires case-insensitive equality with the next term.
func PatternCorrect(p content.Puzzle, answer string) bool {
	return normalize(answer) == normalize(p.Answer)
}

// Question returns the puzzle text.
func (p *Puzzle) Question() string { return p.puzzle.Question }

// Open reports whether the puzzle has no canonical answer.
func (p *Puzzle) Open() bool { return p.puzzle.Open }

func (p *Puzzle) Fields() []Field {
	f := Field{Label: "Answer", Value: p.answer, Placeholder: "Your answer..."}
	switch {
	case p.puzzle.Open:
		f.Multiline = true
		f.Placeholder = "Explain your solution..."
	case p.kind == KindPattern:
		f.Placeholder = "Next in sequence..."
	}
	return []Field{f}
}

func (p *Puzzle) SetField(i int, value string) error {
	if err := p.check(PhaseInput); err != nil {
		return err
	}
	if i != 0 {
		return fmt.Errorf("field %d out of range", i)
	}
	p.answer = value
	return nil
}

func (p *Puzzle) Submit(time.Time) error {
	if err := p.check(PhaseInput); err != nil {
		return err
	}
	p.settle(p.match(p.puzzle, p.answer))
	return nil
}

func (p *Puzzle) Hint() string    { return p.puzzle.Hint }
func (p *Puzzle) HintShown() bool { return p.hint }
func (p *Puzzle) ShowHint()       { p.hint = true }

// Retry clears the answer and keeps the puzzle.
func (p *Puzzle) Retry(time.Time) error {
	if err := p.restart(PhaseInput); err != nil {
		return err
	}
	p.answer = ""
	return nil
}

func (p *Puzzle) Summary() string {
	if p.outcome == Passed {
		return "Correct! 🎉"
	}
	return "Not quite right. Have another go."
}
