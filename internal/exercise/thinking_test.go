package exercise

import (
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/mindupgrade/internal/apperr"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestIdeasReady(t *testing.T) {
	long := "a long enough idea"
	tests := []struct {
		name   string
		values []string
		ok     bool
	}{
		{"three ideas", []string{long, long, long}, true},
		{"one short", []string{long, long, "too short"}, false},
		{"padding does not count", []string{long, long, "    ten chars    "}, false},
		{"exactly eleven", []string{long, long, "eleven char"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ideasReady(tt.values); (err == nil) != tt.ok {
				t.Errorf("ideasReady err = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestPointsReady(t *testing.T) {
	err := pointsReady([]string{"cheaper", "closer", "noisy", "far away"})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) || ve.Field != "con 1" {
		t.Errorf("err = %v, want validation error on con 1", err)
	}
	if err := pointsReady([]string{"cheaper", "closer", "noisier", "far away"}); err != nil {
		t.Errorf("err = %v", err)
	}
}

func TestOpenFormGate(t *testing.T) {
	var c counter
	w := newWhatIf(bankWith(nil), newRand(), t0, c.done)
	if w.Prompt() == "" || !w.Fields()[0].Multiline {
		t.Fatal("what-if should have a prompt and a multiline field")
	}
	_ = w.SetField(0, words(whatIfWords-1))
	if w.Ready() {
		t.Error("ready below the word count")
	}
	if err := w.Submit(t0); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("Submit err = %v, want validation error", err)
	}
	if w.Phase() != PhaseInput || c.n != 0 {
		t.Fatalf("rejected submit changed state: %v fired = %d", w.Phase(), c.n)
	}
	_ = w.SetField(0, words(whatIfWords))
	if err := w.Submit(t0); err != nil {
		t.Fatal(err)
	}
	if w.Outcome() != Passed || c.n != 1 {
		t.Errorf("outcome = %v fired = %d", w.Outcome(), c.n)
	}
}

func TestBrainstormAndProsConsFields(t *testing.T) {
	b := newBrainstorm(bankWith(nil), newRand(), t0, nil)
	if n := len(b.Fields()); n != ideaCount {
		t.Errorf("brainstorm has %d fields", n)
	}
	p := newProsCons(bankWith(nil), newRand(), t0, nil)
	got := []string{}
	for _, f := range p.Fields() {
		got = append(got, f.Label)
	}
	if strings.Join(got, ",") != "Pro 1,Pro 2,Con 1,Con 2" {
		t.Errorf("pros/cons labels = %v", got)
	}
	if err := p.SetField(4, "x"); err == nil {
		t.Error("SetField accepted an out of range index")
	}
}

func TestWritingThresholds(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindReflective, ReflectiveWords},
		{KindLetter, LetterWords},
		{KindStory, StoryWords},
	}
	s := NewSelector(bankWith(nil), newRand())
	for _, tt := range tests {
		v, _ := s.OpenKind(tt.kind, t0, nil)
		w := v.(*Writing)
		if w.MinWords() != tt.want {
			t.Errorf("%s MinWords = %d, want %d", tt.kind, w.MinWords(), tt.want)
		}
		_ = w.SetField(0, words(tt.want-1))
		if w.Ready() || w.Words() != tt.want-1 {
			t.Errorf("%s ready at %d words", tt.kind, w.Words())
		}
		_ = w.SetField(0, words(tt.want))
		_ = w.Submit(t0)
		if w.Outcome() != Passed {
			t.Errorf("%s outcome = %v at %d words", tt.kind, w.Outcome(), tt.want)
		}
	}
}
