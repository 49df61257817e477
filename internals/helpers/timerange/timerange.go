// file: internals/helpers/timerange/timerange.go
package timerange

import (
	"fmt"
	"strings"
	"time"
)

// Interval is a wall-clock time range in minutes past midnight, half-open:
// [StartMin, EndMin). Minute granularity is all the timetable needs; keeping the
// values as plain ints makes overlap checks and the DB-side int4range columns line up.
type Interval struct {
	StartMin int
	EndMin   int
}

// Parse reads a "H:MM-H:MM" slot string (hours 0–23, minutes 0–59, start before
// end) into an Interval. Anything else is an error; callers decide whether an
// invalid stored value means "skip this row" or "reject this request".
func Parse(rangeStr string) (Interval, error) {
	parts := strings.SplitN(rangeStr, "-", 2)
	if len(parts) != 2 {
		return Interval{}, fmt.Errorf("timerange: %q is not a start-end range", rangeStr)
	}
	start, err := parseClock(parts[0])
	if err != nil {
		return Interval{}, err
	}
	end, err := parseClock(parts[1])
	if err != nil {
		return Interval{}, err
	}
	if start >= end {
		return Interval{}, fmt.Errorf("timerange: %q must start before it ends", rangeStr)
	}
	return Interval{StartMin: start, EndMin: end}, nil
}

func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("timerange: bad clock value %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Overlaps reports whether two half-open intervals intersect. Touching
// endpoints ("09:00-10:00" vs "10:00-11:00") do NOT overlap — a teacher can
// legitimately finish one class and start the next back-to-back.
func (a Interval) Overlaps(b Interval) bool {
	return a.StartMin < b.EndMin && b.StartMin < a.EndMin
}

// String renders the interval back as "HH:MM-HH:MM".
func (a Interval) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d",
		a.StartMin/60, a.StartMin%60, a.EndMin/60, a.EndMin%60)
}

// Duration in minutes.
func (a Interval) Duration() int {
	return a.EndMin - a.StartMin
}
