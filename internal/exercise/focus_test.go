package exercise

import (
	"errors"
	"strconv"
	"testing"

	"github.com/abhisek/mindupgrade/internal/apperr"
	"github.com/abhisek/mindupgrade/internal/content"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		passage, typed string
		want           int
	}{
		{"hello", "hello", 100},
		{"hello", "hellx", 80},
		{"hello", "HELLO", 0},
		{"hello", "", 0},
		{"abc", "ab", 67},
		{"", "anything", 100},
		{"héllo", "héllo", 100},
	}
	for _, tt := range tests {
		if got := Accuracy(tt.passage, tt.typed); got != tt.want {
			t.Errorf("Accuracy(%q, %q) = %d, want %d", tt.passage, tt.typed, got, tt.want)
		}
	}
}

func TestTypingScoresWhenLongEnough(t *testing.T) {
	bank := bankWith(func(b *content.Bank) { b.Passages = []string{"abcdefghij"} })

	var c counter
	ty := newTyping(bank, newRand(), t0, c.done)
	_ = ty.SetField(0, "abcdefghi")
	if ty.Phase() != PhaseInput {
		t.Fatalf("scored before the passage length: %v", ty.Phase())
	}
	if err := ty.Submit(t0); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("early Submit err = %v, want validation error", err)
	}
	_ = ty.SetField(0, "abcdefghij")
	if ty.Outcome() != Passed || ty.Accuracy() != 100 || c.n != 1 {
		t.Errorf("outcome = %v accuracy = %d fired = %d", ty.Outcome(), ty.Accuracy(), c.n)
	}

	ty = newTyping(bank, newRand(), t0, nil)
	_ = ty.SetField(0, "abcdefghXY")
	if ty.Outcome() != Failed || ty.Accuracy() != 80 {
		t.Errorf("outcome = %v accuracy = %d, want Failed at 80", ty.Outcome(), ty.Accuracy())
	}
	if err := ty.Retry(t0); err != nil {
		t.Fatal(err)
	}
	if ty.Typed() != "" || ty.Passage() != "abcdefghij" {
		t.Errorf("Retry: typed = %q passage = %q", ty.Typed(), ty.Passage())
	}
}

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"123", 123, true},
		{"  42 ", 42, true},
		{"-7", -7, true},
		{"+8", 8, true},
		{"15 apples", 15, true},
		{"12.9", 12, true},
		{"abc", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{"2147483647", 2147483647, true},
		{"99999999999999999999999", 0, false},
		{"-99999999999999999999999 left", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseLeadingInt(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseLeadingInt(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMentalMath(t *testing.T) {
	var c counter
	m := newMentalMath(nil, newRand(), t0, c.done)
	answer := m.Chain().Answer

	_ = m.SetField(0, strconv.Itoa(answer+1))
	_ = m.Submit(t0)
	if m.Outcome() != Failed {
		t.Fatalf("wrong answer outcome = %v", m.Outcome())
	}
	chain := m.Chain()
	_ = m.Retry(t0)
	if m.Chain().Start != chain.Start || m.Chain().Answer != chain.Answer {
		t.Error("Retry regenerated the chain")
	}
	_ = m.SetField(0, " "+strconv.Itoa(answer)+" ")
	_ = m.Submit(t0)
	if m.Outcome() != Passed || c.n != 1 {
		t.Errorf("outcome = %v fired = %d", m.Outcome(), c.n)
	}
}

func TestOddOneOut(t *testing.T) {
	bank := bankWith(func(b *content.Bank) { b.OddSets = b.OddSets[:1] })

	o := newOddOneOut(bank, newRand(), t0, nil)
	if err := o.Choose(9); err == nil {
		t.Error("Choose accepted an out of range index")
	}
	for i := range o.Options() {
		if o.IsSelected(i) {
			t.Fatalf("item %d selected on open", i)
		}
	}
	_ = o.Choose(0)
	if o.Outcome() != Failed || !o.IsSelected(0) {
		t.Errorf("apple: outcome = %v", o.Outcome())
	}
	_ = o.Retry(t0)
	_ = o.Choose(3)
	if o.Outcome() != Passed {
		t.Errorf("hammer: outcome = %v, want Passed", o.Outcome())
	}
}
