package exercise

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// WordCount counts whitespace-delimited words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// trimmedLen is the rune length of s without surrounding whitespace.
func trimmedLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

// normalize lowercases and trims an answer for comparison.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// matchesAnswer reports whether answer equals or contains canonical.
func matchesAnswer(answer, canonical string) bool {
	clean := normalize(answer)
	want := strings.ToLower(canonical)
	return clean == want || strings.Contains(clean, want)
}

// stripSpace removes every whitespace rune from s.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// parseLeadingInt reads an optionally signed run of leading digits after
// trimming, ignoring anything that follows. ok is false when no digit
// was found or the number does not fit in an int.
func parseLeadingInt(s string) (n int, ok bool) {
	s = strings.TrimSpace(s)
	start := 0
	if s != "" && (s[0] == '-' || s[0] == '+') {
		start = 1
	}
	end := start
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
