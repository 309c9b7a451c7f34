package exercise

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abhisek/mindupgrade/internal/content"
	"github.com/abhisek/mindupgrade/internal/task"
)

type constructor func(bank *content.Bank, rng *rand.Rand, now time.Time, onComplete func()) Variant

type entry struct {
	kind Kind
	open constructor
}

func variant[V Variant](kind Kind, f func(*content.Bank, *rand.Rand, time.Time, func()) V) entry {
	return entry{kind: kind, open: func(b *content.Bank, r *rand.Rand, now time.Time, cb func()) Variant {
		return f(b, r, now, cb)
	}}
}

// catalog maps each category to its three variants.
var catalog = map[task.ID][3]entry{
	task.Memory: {
		variant(KindWordRecall, newWordRecall),
		variant(KindNumberSeq, newNumberSequence),
		variant(KindSymbols, newSymbolPattern),
	},
	task.Focus: {
		variant(KindTyping, newTyping),
		variant(KindMentalMath, newMentalMath),
		variant(KindOddOneOut, newOddOneOut),
	},
	task.Thinking: {
		variant(KindBrainstorm, newBrainstorm),
		variant(KindProsCons, newProsCons),
		variant(KindWhatIf, newWhatIf),
	},
	task.Patience: {
		variant(KindReactionTap, newReactionTap),
		variant(KindHoldBeat, newHoldBeat),
		variant(KindDelayed, newDelayed),
	},
	task.Problem: {
		variant(KindRiddle, newRiddle),
		variant(KindLogic, newLogic),
		variant(KindPattern, newPattern),
	},
	task.Writing: {
		variant(KindReflective, newReflective),
		variant(KindLetter, newLetter),
		variant(KindStory, newStory),
	},
}

// Kinds returns the variant kinds of a category.
func Kinds(id task.ID) []Kind {
	var out []Kind
	for _, e := range catalog[id] {
		out = append(out, e.kind)
	}
	return out
}

// Selector opens a uniformly random variant of a category. It is not safe
// for concurrent use; the UI loop owns it.
type Selector struct {
	bank *content.Bank
	rng  *rand.Rand
}

// NewSelector creates a Selector drawing content from bank.
func NewSelector(bank *content.Bank, rng *rand.Rand) *Selector {
	return &Selector{bank: bank, rng: rng}
}

// SetBank swaps the content pools used by variants opened afterwards.
func (s *Selector) SetBank(bank *content.Bank) { s.bank = bank }

// Open draws a variant for id and mounts it at now. onComplete runs once
// when the variant is passed.
func (s *Selector) Open(id task.ID, now time.Time, onComplete func()) (Variant, error) {
	entries, ok := catalog[id]
	if !ok {
		return nil, fmt.Errorf("unknown task %q", id)
	}
	e := entries[s.rng.IntN(len(entries))]
	return e.open(s.bank, s.rng, now, onComplete), nil
}

// OpenKind mounts a specific variant.
func (s *Selector) OpenKind(kind Kind, now time.Time, onComplete func()) (Variant, error) {
	for _, entries := range catalog {
		for _, e := range entries {
			if e.kind == kind {
				return e.open(s.bank, s.rng, now, onComplete), nil
			}
		}
	}
	return nil, fmt.Errorf("unknown exercise %q", kind)
}
