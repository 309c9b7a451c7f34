package progress

import (
	"math"

	"github.com/abhisek/mindupgrade/internal/task"
)

// MaxScore is awarded only when all categories are complete.
const MaxScore = 100

// partialCap bounds the score of any day that is not complete.
const partialCap = 99

// Score returns the daily score for count completed categories.
func Score(count int) int {
	if count >= task.Count {
		return MaxScore
	}
	if count <= 0 {
		return 0
	}
	s := int(math.Floor(100*float64(count)/float64(task.Count) + 0.5))
	return min(partialCap, s)
}

// CountCompleted counts the known categories marked true in completed.
func CountCompleted(completed map[task.ID]bool) int {
	n := 0
	for _, id := range task.All() {
		if completed[id] {
			n++
		}
	}
	return n
}

// ScoreOf returns the daily score for a completed set.
func ScoreOf(completed map[task.ID]bool) int {
	return Score(CountCompleted(completed))
}
