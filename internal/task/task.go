package task

import "fmt"

// ID identifies one of the six daily training categories.
type ID string

const (
	Memory   ID = "memory"
	Focus    ID = "focus"
	Thinking ID = "thinking"
	Patience ID = "patience"
	Problem  ID = "problem"
	Writing  ID = "writing"
)

// Count is the number of categories in a full day.
const Count = 6

var all = [Count]ID{Memory, Focus, Thinking, Patience, Problem, Writing}

// All returns every category in display order.
func All() []ID {
	out := make([]ID, Count)
	copy(out, all[:])
	return out
}

// Valid reports whether id is one of the fixed categories.
func Valid(id ID) bool {
	for _, t := range all {
		if t == id {
			return true
		}
	}
	return false
}

// Parse converts s into a category ID.
func Parse(s string) (ID, error) {
	id := ID(s)
	if !Valid(id) {
		return "", fmt.Errorf("unknown task %q", s)
	}
	return id, nil
}

// DisplayName returns a human-readable label for the category.
func (id ID) DisplayName() string {
	switch id {
	case Memory:
		return "Memory"
	case Focus:
		return "Focus"
	case Thinking:
		return "Thinking"
	case Patience:
		return "Patience"
	case Problem:
		return "Problem Solving"
	case Writing:
		return "Writing"
	default:
		return string(id)
	}
}

// Icon returns the display icon for the category.
func (id ID) Icon() string {
	switch id {
	case Memory:
		return "🧠"
	case Focus:
		return "🎯"
	case Thinking:
		return "💡"
	case Patience:
		return "⏳"
	case Problem:
		return "🔐"
	case Writing:
		return "✍️"
	default:
		return "✦"
	}
}

// Blurb is the one-line description shown on the category card.
func (id ID) Blurb() string {
	switch id {
	case Memory:
		return "Hold information, then recall it"
	case Focus:
		return "Stay precise under attention load"
	case Thinking:
		return "Generate ideas and weigh options"
	case Patience:
		return "Control impulses and timing"
	case Problem:
		return "Riddles, logic and patterns"
	case Writing:
		return "Put your thoughts into words"
	default:
		return ""
	}
}
