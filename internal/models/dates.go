package models

import (
	"strings"
	"time"
)

// dayLayouts are the date renderings seen in journey log exports
var dayLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
	"01/02/2006",
	"2.1.2006",
	"02.01.2006",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseDay parses a calendar date and truncates it to midnight UTC.
// Returns false when none of the known layouts match.
func ParseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// Day returns the parsed calendar date of the trip start
func (t Trip) Day() (time.Time, bool) {
	return ParseDay(t.DatePart())
}

// StartTime returns the parsed start date and time of day.
// A missing or unparsable time of day yields midnight.
func (t Trip) StartTime() (time.Time, bool) {
	day, ok := t.Day()
	if !ok {
		return time.Time{}, false
	}
	clock, err := time.Parse("15:04", t.TimePart())
	if err != nil {
		clock, err = time.Parse("15:04:05", t.TimePart())
	}
	if err != nil {
		return day, true
	}
	return day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute +
		time.Duration(clock.Second())*time.Second), true
}
