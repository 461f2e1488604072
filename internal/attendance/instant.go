package attendance

// instant.go provides a nullable point in time for event timestamps.
//
// Attendance exports are hand-edited often enough that a timestamp cell may
// hold anything. A cell that does not parse becomes the null Instant instead
// of an error, and every duration computed against a null Instant is zero.

import (
	"strings"
	"time"
)

// TwoDigitYearPivot decides the century of 2-digit years. A year that would
// land more than this many years past the current one is moved back a century.
var TwoDigitYearPivot = 20

// Layouts are tried in order. ISO forms go first, then month-first numeric
// dates, then day-first ones, so 3/4/2021 is March 4 and 15/3/2021 is March 15.
var (
	timestampLayouts = []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05.999999999Z07:00",
		"2006-01-02 15:04:05Z07:00",
		"2006-01-02 15:04:05 Z07:00",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
		"2006/01/02 15:04:05",
		"2006.01.02 15:04:05",

		// month first
		"1/2/2006, 3:04:05 PM",
		"1/2/2006, 3:04 PM",
		"1/2/2006 3:04:05 PM",
		"1/2/2006 3:04 PM",
		"1/2/2006, 15:04:05",
		"1/2/2006 15:04:05",
		"1/2/2006 15:04",
		"1/2/2006",
		"1-2-2006 15:04:05",
		"1.2.2006 15:04:05",

		// day first
		"2/1/2006, 3:04:05 PM",
		"2/1/2006 3:04:05 PM",
		"2/1/2006, 15:04:05",
		"2/1/2006 15:04:05",
		"2/1/2006 15:04",
		"2/1/2006",
		"2-1-2006 15:04:05",
		"2.1.2006, 15:04:05",
		"2.1.2006 15:04:05",
		"2.1.2006 15:04",
		"2.1.2006",

		"Jan 2, 2006 3:04:05 PM",
		"Jan 2, 2006, 3:04:05 PM",
		"2 Jan 2006 15:04:05",
	}

	twoDigitYearLayouts = []string{
		"1/2/06, 3:04:05 PM",
		"1/2/06 3:04:05 PM",
		"1/2/06, 15:04:05",
		"1/2/06 15:04:05",
		"1/2/06 15:04",
		"2/1/06, 3:04:05 PM",
		"2/1/06 3:04:05 PM",
		"2/1/06, 15:04:05",
		"2/1/06 15:04:05",
		"2/1/06 15:04",
		"2.1.06 15:04:05",
	}
)

// Instant is a timestamp that may be null.
type Instant struct {
	t     time.Time
	valid bool
}

// Null returns the null Instant.
func Null() Instant {
	return Instant{}
}

// At wraps t as a valid Instant.
func At(t time.Time) Instant {
	return Instant{t: t, valid: true}
}

// ParseInstant parses s with the known timestamp layouts. Values without a
// zone are read as UTC. Unparseable input yields the null Instant.
func ParseInstant(s string) Instant {
	s = strings.TrimSpace(s)
	if s == "" {
		return Null()
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return At(t)
		}
	}

	pivotYear := time.Now().Year() + TwoDigitYearPivot
	for _, layout := range twoDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return At(t)
		}
	}
	return Null()
}

// Valid reports whether the Instant holds a time.
func (i Instant) Valid() bool {
	return i.valid
}

// Time returns the wrapped time and whether it is valid.
func (i Instant) Time() (time.Time, bool) {
	return i.t, i.valid
}

// Before orders Instants with null first.
func (i Instant) Before(o Instant) bool {
	switch {
	case !i.valid:
		return o.valid
	case !o.valid:
		return false
	default:
		return i.t.Before(o.t)
	}
}

// Sub returns i-o in seconds. If either side is null the result is zero.
func (i Instant) Sub(o Instant) float64 {
	if !i.valid || !o.valid {
		return 0
	}
	return i.t.Sub(o.t).Seconds()
}

// String formats valid Instants as RFC3339 and null as an empty string.
func (i Instant) String() string {
	if !i.valid {
		return ""
	}
	return i.t.Format(time.RFC3339)
}
