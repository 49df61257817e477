package constants

import "strings"

// Teaching days. Sunday is intentionally absent: the timetable runs Monday–Saturday.
var Weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// NormalizeDay canonicalizes casing ("monday", "MONDAY" → "Monday") and returns
// ok=false for anything outside the teaching week.
func NormalizeDay(day string) (string, bool) {
	day = strings.TrimSpace(day)
	for _, d := range Weekdays {
		if strings.EqualFold(d, day) {
			return d, true
		}
	}
	return "", false
}
