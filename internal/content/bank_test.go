package content

import (
	"slices"
	"strings"
	"testing"
)

func TestDefaultBankValid(t *testing.T) {
	if err := DefaultBank().Validate(); err != nil {
		t.Fatalf("DefaultBank().Validate() = %v", err)
	}
}

func TestDefaultBankWordsUnique(t *testing.T) {
	b := DefaultBank()
	if len(b.Words) != 48 {
		t.Errorf("len(Words) = %d, want 48", len(b.Words))
	}
	if len(unique(b.Words)) != len(b.Words) {
		t.Error("word pool contains duplicates")
	}
}

func TestValidateCatchesBrokenPools(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *Bank)
		want   string
	}{
		{"short word pool", func(b *Bank) { b.Words = b.Words[:5] }, "words"},
		{"duplicate word", func(b *Bank) { b.Words = append(b.Words, b.Words[0]) }, "duplicates"},
		{"short sequence", func(b *Bank) { b.Sequences = [][]int{{1, 2, 3}} }, "sequences[0]"},
		{"non digit", func(b *Bank) { b.Sequences = [][]int{{1, 2, 3, 4, 5, 6, 7, 12}} }, "not a digit"},
		{"grid symbol off palette", func(b *Bank) {
			b.SymbolGrids = [][]string{{"★", "▲", "●", "■", "♦", "★", "▲", "●", "■", "♦", "▲", "X"}}
		}, "missing from palette"},
		{"outlier missing", func(b *Bank) { b.OddSets = []OddSet{{Items: []string{"a", "b"}, Odd: "c"}} }, "outlier"},
		{"closed riddle without answer", func(b *Bank) { b.Riddles = []Puzzle{{Question: "?"}} }, "closed puzzle"},
		{"empty prompts", func(b *Bank) { b.Story = nil }, "story"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := DefaultBank()
			tt.mutate(b)
			err := b.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %q, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestUniqueSymbols(t *testing.T) {
	grid := []string{"★", "▲", "●", "■", "♦", "★", "▲", "●", "■", "♦", "▲", "●"}
	got := UniqueSymbols(grid)
	want := []string{"★", "▲", "●", "■", "♦"}
	if !slices.Equal(got, want) {
		t.Errorf("UniqueSymbols = %v, want %v", got, want)
	}
}

func TestCloneDetachesPromptPools(t *testing.T) {
	b := DefaultBank()
	c := b.Clone()
	c.Story[0] = "changed"
	if b.Story[0] == "changed" {
		t.Error("Clone shares the story pool")
	}
}
