package content

import (
	"errors"
	"fmt"
	"slices"
)

// MinWords is the number of words drawn for a word-recall round.
const MinWords = 10

// SequenceLen is the length of every number sequence.
const SequenceLen = 8

// GridCells is the number of cells in every symbol grid.
const GridCells = 12

// Validate checks the pool invariants the exercise variants rely on.
func (b *Bank) Validate() error {
	var errs []error

	if n := len(unique(b.Words)); n < MinWords {
		errs = append(errs, fmt.Errorf("words: need %d unique, have %d", MinWords, n))
	}
	if len(unique(b.Words)) != len(b.Words) {
		errs = append(errs, errors.New("words: duplicates in pool"))
	}

	if len(b.Sequences) == 0 {
		errs = append(errs, errors.New("sequences: empty pool"))
	}
	for i, seq := range b.Sequences {
		if len(seq) != SequenceLen {
			errs = append(errs, fmt.Errorf("sequences[%d]: length %d, want %d", i, len(seq), SequenceLen))
		}
		for _, d := range seq {
			if d < 0 || d > 9 {
				errs = append(errs, fmt.Errorf("sequences[%d]: %d is not a digit", i, d))
			}
		}
	}

	if len(b.SymbolGrids) == 0 {
		errs = append(errs, errors.New("symbol grids: empty pool"))
	}
	for i, g := range b.SymbolGrids {
		if len(g) != GridCells {
			errs = append(errs, fmt.Errorf("symbol grids[%d]: %d cells, want %d", i, len(g), GridCells))
		}
		for _, sym := range g {
			if !slices.Contains(b.SymbolPalette, sym) {
				errs = append(errs, fmt.Errorf("symbol grids[%d]: %q missing from palette", i, sym))
			}
		}
	}

	for i, set := range b.OddSets {
		if !slices.Contains(set.Items, set.Odd) {
			errs = append(errs, fmt.Errorf("odd sets[%d]: outlier %q not among items", i, set.Odd))
		}
	}

	for name, pool := range map[string][]Puzzle{"riddles": b.Riddles, "logic": b.Logic, "patterns": b.Patterns} {
		if len(pool) == 0 {
			errs = append(errs, fmt.Errorf("%s: empty pool", name))
		}
		for i, p := range pool {
			if !p.Open && p.Answer == "" {
				errs = append(errs, fmt.Errorf("%s[%d]: closed puzzle without answer", name, i))
			}
		}
	}

	for name, pool := range b.promptPools() {
		if len(pool) == 0 {
			errs = append(errs, fmt.Errorf("%s: empty pool", name))
		}
	}
	if len(b.Passages) == 0 {
		errs = append(errs, errors.New("passages: empty pool"))
	}

	return errors.Join(errs...)
}

func (b *Bank) promptPools() map[string][]string {
	return map[string][]string{
		"brainstorm": b.Brainstorm,
		"pros_cons":  b.ProsCons,
		"what_if":    b.WhatIf,
		"reflective": b.Reflective,
		"letter":     b.Letter,
		"story":      b.Story,
	}
}

// UniqueSymbols returns the distinct symbols of grid in first-seen order.
func UniqueSymbols(grid []string) []string {
	return unique(grid)
}

func unique(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, it := range items {
		if !seen[it] {
			seen[it] = true
			out = append(out, it)
		}
	}
	return out
}
