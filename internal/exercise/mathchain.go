package exercise

import (
	"fmt"
	"math/rand/v2"
)

// Op is an arithmetic step operator.
type Op int

const (
	OpAdd Op = iota
	OpSubtract
	OpMultiply
	OpDivide
)

// Step is one operation of a mental-math chain.
type Step struct {
	Op      Op
	Operand int
}

func (s Step) String() string {
	switch s.Op {
	case OpSubtract:
		return fmt.Sprintf("Subtract %d", s.Operand)
	case OpMultiply:
		return fmt.Sprintf("Multiply by %d", s.Operand)
	case OpDivide:
		return fmt.Sprintf("Divide by %d", s.Operand)
	default:
		return fmt.Sprintf("Add %d", s.Operand)
	}
}

// Apply performs the step on v.
func (s Step) Apply(v int) int {
	switch s.Op {
	case OpSubtract:
		return v - s.Operand
	case OpMultiply:
		return v * s.Operand
	case OpDivide:
		return v / s.Operand
	default:
		return v + s.Operand
	}
}

// Chain is a generated mental-math problem.
type Chain struct {
	Start  int
	Steps  []Step
	Answer int
}

var (
	chainStarts = []int{50, 60, 80, 100, 120, 150, 200}
	divisors    = []int{2, 3, 4, 5, 6}
)

const (
	chainFloor   = 10
	chainCeiling = 2000
)

// GenerateChain builds a chain of 4 or 5 integer steps from a round start.
// Every intermediate value stays an integer of at least 10, divisions are
// exact and products never exceed 2000.
func GenerateChain(rng *rand.Rand) Chain {
	c := Chain{Start: chainStarts[rng.IntN(len(chainStarts))]}
	v := c.Start
	n := 4 + rng.IntN(2)
	for range n {
		step := nextStep(rng, v)
		v = step.Apply(v)
		c.Steps = append(c.Steps, step)
	}
	c.Answer = v
	return c
}

func addStep(rng *rand.Rand) Step {
	return Step{Op: OpAdd, Operand: 5 + rng.IntN(36)}
}

func nextStep(rng *rand.Rand, v int) Step {
	switch Op(rng.IntN(4)) {
	case OpSubtract:
		room := v - chainFloor
		if room < 1 {
			return addStep(rng)
		}
		return Step{Op: OpSubtract, Operand: 1 + rng.IntN(min(room, 40))}
	case OpMultiply:
		f := 2 + rng.IntN(2)
		if v*f > chainCeiling {
			return Step{Op: OpAdd, Operand: 10}
		}
		return Step{Op: OpMultiply, Operand: f}
	case OpDivide:
		var ok []int
		for _, d := range divisors {
			if v%d == 0 && v/d >= chainFloor {
				ok = append(ok, d)
			}
		}
		if len(ok) == 0 {
			return addStep(rng)
		}
		return Step{Op: OpDivide, Operand: ok[rng.IntN(len(ok))]}
	default:
		return addStep(rng)
	}
}

// Evaluate replays steps from start.
func Evaluate(start int, steps []Step) int {
	v := start
	for _, s := range steps {
		v = s.Apply(v)
	}
	return v
}

// Lines renders the chain as the instructions shown to the user.
func (c Chain) Lines() []string {
	out := make([]string, 0, len(c.Steps)+1)
	out = append(out, fmt.Sprintf("Start with %d", c.Start))
	for _, s := range c.Steps {
		out = append(out, s.String())
	}
	return out
}
