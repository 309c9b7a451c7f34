package progress

import (
	"testing"
	"time"
)

var today = time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)

func key(daysAgo int) string {
	return DateKey(today.AddDate(0, 0, -daysAgo))
}

func day(score int) DayRecord {
	return DayRecord{Score: score}
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name string
		h    History
		want int
	}{
		{"empty", History{}, 0},
		{"today and yesterday", History{key(0): day(100), key(1): day(100), key(2): day(0)}, 2},
		{"partial today is exempt", History{key(0): day(40), key(1): day(100), key(2): day(100), key(3): day(0)}, 2},
		{"missing today is exempt", History{key(1): day(100)}, 1},
		{"yesterday breaks", History{key(1): day(0), key(2): day(100)}, 0},
		{"gap breaks", History{key(0): day(100), key(2): day(100)}, 1},
		{"only today", History{key(0): day(100)}, 1},
		{"83 is not perfect", History{key(0): day(100), key(1): day(83)}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Streak(tt.h, today); got != tt.want {
				t.Errorf("Streak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStreakWindow(t *testing.T) {
	h := History{}
	for i := 0; i < 400; i++ {
		h[key(i)] = day(100)
	}
	if got := Streak(h, today); got != streakWindow {
		t.Errorf("Streak = %d, want %d", got, streakWindow)
	}
}

func TestDateKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	// 01:00 local on the 11th is still the 10th in UTC.
	local := time.Date(2024, 6, 11, 1, 0, 0, 0, loc)
	if got := DateKey(local); got != "2024-06-10" {
		t.Errorf("DateKey = %q, want 2024-06-10", got)
	}

	parsed, err := ParseDateKey("2024-06-10")
	if err != nil {
		t.Fatalf("ParseDateKey: %v", err)
	}
	if DateKey(parsed) != "2024-06-10" {
		t.Errorf("round trip = %q", DateKey(parsed))
	}
}

func TestNextMilestone(t *testing.T) {
	tests := []struct {
		current int
		want    int
	}{
		{0, 3},
		{2, 3},
		{3, 7},
		{6, 7},
		{7, 14},
		{14, 30},
		{29, 30},
		{30, 60},
		{59, 60},
		{61, 90},
	}
	for _, tt := range tests {
		if got := NextMilestone(tt.current); got != tt.want {
			t.Errorf("NextMilestone(%d) = %d, want %d", tt.current, got, tt.want)
		}
	}
}
