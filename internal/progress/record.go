package progress

import (
	"sort"

	"github.com/abhisek/mindupgrade/internal/task"
)

// DayRecord is the completion snapshot for one calendar date.
type DayRecord struct {
	Completed map[task.ID]bool `json:"completed"`
	Score     int              `json:"score"`
}

// NewDayRecord builds a record from a completed set, keeping only true
// entries for known categories and deriving the score from them.
func NewDayRecord(completed map[task.ID]bool) DayRecord {
	rec := DayRecord{Completed: make(map[task.ID]bool, len(completed))}
	for id, done := range completed {
		if done && task.Valid(id) {
			rec.Completed[id] = true
		}
	}
	rec.Score = Score(len(rec.Completed))
	return rec
}

// Clone returns a deep copy of the record.
func (d DayRecord) Clone() DayRecord {
	out := DayRecord{Score: d.Score, Completed: make(map[task.ID]bool, len(d.Completed))}
	for id, done := range d.Completed {
		out.Completed[id] = done
	}
	return out
}

// Perfect reports whether every category was completed that day.
func (d DayRecord) Perfect() bool {
	return d.Score == MaxScore
}

// History maps a date key (YYYY-MM-DD) to that day's record.
type History map[string]DayRecord

// Clone returns a deep copy of the history.
func (h History) Clone() History {
	out := make(History, len(h))
	for k, v := range h {
		out[k] = v.Clone()
	}
	return out
}

// Day is a dated entry of a history, used for listings.
type Day struct {
	Key    string
	Record DayRecord
}

// Days returns the history entries newest first.
func (h History) Days() []Day {
	days := make([]Day, 0, len(h))
	for k, v := range h {
		days = append(days, Day{Key: k, Record: v})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Key > days[j].Key })
	return days
}

// PerfectDays counts the days that reached a full score.
func (h History) PerfectDays() int {
	n := 0
	for _, d := range h {
		if d.Perfect() {
			n++
		}
	}
	return n
}

// UserRecord is the persisted per-user document.
type UserRecord struct {
	Email   string  `json:"email,omitempty"`
	History History `json:"history"`
}
