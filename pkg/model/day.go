package model

import (
	"fmt"
	"strings"
)

// Day is a day of the week. It is the only date dimension the conflict
// checks operate on; activities repeat weekly.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (d Day) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// ParseDay matches a day name case-insensitively. Three-letter
// abbreviations are accepted because the seed files use both forms.
func ParseDay(s string) (Day, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for i, name := range dayNames {
		lower := strings.ToLower(name)
		if normalized == lower || (len(normalized) == 3 && normalized == lower[:3]) {
			return Day(i), nil
		}
	}
	return 0, fmt.Errorf("unrecognized day %q", s)
}

// ClockTime is a wall-clock time of day in minutes since midnight.
type ClockTime int

// NewClockTime builds a ClockTime from an hour and minute pair.
func NewClockTime(hour int, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

// ParseClockTime parses a HH:MM string.
func ParseClockTime(s string) (ClockTime, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("unrecognized time %q", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return NewClockTime(hour, minute), nil
}

func (t ClockTime) Hour() int   { return int(t) / 60 }
func (t ClockTime) Minute() int { return int(t) % 60 }

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}
