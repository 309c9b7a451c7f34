package exercise

import (
	"math/rand/v2"
	"time"

	"github.com/abhisek/mindupgrade/internal/content"
	"github.com/abhisek/mindupgrade/internal/task"
)

// Word thresholds for the writing variants.
const (
	ReflectiveWords = 50
	LetterWords     = 40
	StoryWords      = 30
)

// Writing is a free-writing prompt gated only by word count.
type Writing struct {
	openForm
	minWords int
}

var _ Form = (*Writing)(nil)

func newWriting(kind Kind, prompt, label string, words int, onComplete func()) *Writing {
	return &Writing{
		openForm: openForm{
			base:   newBase(kind, task.Writing, PhaseInput, onComplete),
			prompt: prompt,
			labels: []string{label},
			values: make([]string, 1),
			multi:  true,
			ready:  minWords(words),
		},
		minWords: words,
	}
}

func newReflective(bank *content.Bank, rng *rand.Rand, _ time.Time, onComplete func()) *Writing {
	return newWriting(KindReflective, pick(rng, bank.Reflective), "Write freely", ReflectiveWords, onComplete)
}

func newLetter(bank *content.Bank, rng *rand.Rand, _ time.Time, onComplete func()) *Writing {
	return newWriting(KindLetter, pick(rng, bank.Letter), "Dear", LetterWords, onComplete)
}

func newStory(bank *content.Bank, rng *rand.Rand, _ time.Time, onComplete func()) *Writing {
	return newWriting(KindStory, pick(rng, bank.Story), "Once", StoryWords, onComplete)
}

// MinWords returns the word count needed to submit.
func (w *Writing) MinWords() int { return w.minWords }

// Words returns the current word count.
func (w *Writing) Words() int { return WordCount(w.values[0]) }

func (w *Writing) Summary() string { return "Saved. Writing every day builds clarity. ✍️" }
