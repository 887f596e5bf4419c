package tui

import (
	"strings"
	"time"
	"unicode/utf8"
)

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// padCell fits a string into a fixed-width table cell. Padding counts
// runes, not bytes, so masked codes and accented names line up.
func padCell(s string, width int) string {
	s = truncStr(s, width)
	if n := width - utf8.RuneCountInString(s); n > 0 {
		s += strings.Repeat(" ", n)
	}
	return s
}

// formatStamp renders a persisted ISO-8601 timestamp for the table.
// Malformed timestamps show as a dash rather than erroring.
func formatStamp(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return "—"
	}
	return t.Local().Format("Jan 02 15:04")
}

// maskCode hides a redemption code behind dots of the same length.
func maskCode(code string) string {
	runes := make([]rune, utf8.RuneCountInString(code))
	for i := range runes {
		runes[i] = '•'
	}
	return string(runes)
}
