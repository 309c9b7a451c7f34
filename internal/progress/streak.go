package progress

import "time"

const (
	dateLayout = "2006-01-02"

	// streakWindow is how many days back the streak walk looks.
	streakWindow = 365
)

// DateKey returns the history key for the UTC calendar date of t.
func DateKey(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// ParseDateKey parses a history key back into a UTC midnight time.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, key, time.UTC)
}

// Streak counts consecutive perfect days walking back from today. A
// non-perfect today does not end the walk; the first earlier day that is
// not perfect does.
func Streak(h History, today time.Time) int {
	day := today.UTC()
	streak := 0
	for i := 0; i < streakWindow; i++ {
		key := DateKey(day.AddDate(0, 0, -i))
		if rec, ok := h[key]; ok && rec.Score == MaxScore {
			streak++
			continue
		}
		if i > 0 {
			break
		}
	}
	return streak
}

// NextMilestone returns the next streak milestone above the current streak.
func NextMilestone(current int) int {
	for _, m := range []int{3, 7, 14, 30} {
		if m > current {
			return m
		}
	}
	// Beyond 30, every 30 days.
	return ((current / 30) + 1) * 30
}
