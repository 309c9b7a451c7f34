package exercise

import (
	"strings"
	"testing"

	"github.com/abhisek/mindupgrade/internal/content"
)

func TestRiddleCorrect(t *testing.T) {
	p := content.Puzzle{Answer: "echo"}
	tests := []struct {
		answer string
		want   bool
	}{
		{"echo", true},
		{"  ECHO ", true},
		{"it is an echo", true},
		{"sound", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := RiddleCorrect(p, tt.answer); got != tt.want {
			t.Errorf("RiddleCorrect(%q) = %v, want %v", tt.answer, got, tt.want)
		}
	}
}

func TestLogicCorrect(t *testing.T) {
	closed := content.Puzzle{Answer: "dave"}
	if !LogicCorrect(closed, "Dave is") || LogicCorrect(closed, "carol") {
		t.Error("closed logic puzzle uses the riddle rule")
	}
	open := content.Puzzle{Open: true}
	if LogicCorrect(open, "   "+strings.Repeat("x", 19)+"   ") {
		t.Error("19 characters accepted for an open puzzle")
	}
	if !LogicCorrect(open, strings.Repeat("x", 20)) {
		t.Error("20 characters rejected for an open puzzle")
	}
}

func TestPatternCorrect(t *testing.T) {
	p := content.Puzzle{Answer: "i"}
	if !PatternCorrect(p, " I ") {
		t.Error("case-insensitive match rejected")
	}
	if PatternCorrect(content.Puzzle{Answer: "64"}, "the answer is 64") {
		t.Error("pattern accepted a containing answer")
	}
}

func TestPuzzleHint(t *testing.T) {
	bank := bankWith(func(b *content.Bank) { b.Logic = b.Logic[2:] })
	p := newLogic(bank, newRand(), t0, nil)
	if !p.Open() || !p.Fields()[0].Multiline {
		t.Fatal("buckets puzzle should be open with a multiline answer")
	}
	if p.HintShown() {
		t.Error("hint shown on open")
	}
	p.ShowHint()
	if !p.HintShown() || p.Hint() == "" {
		t.Error("ShowHint did not reveal the hint")
	}
}
