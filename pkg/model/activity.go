package model

import (
	"strings"
	"time"
)

// ActivityType tags the variant of an Activity.
type ActivityType int

const (
	Lecture ActivityType = iota
	Lab
	Tutorial
)

func (at ActivityType) String() string {
	switch at {
	case Lecture:
		return "Lecture"
	case Lab:
		return "Lab"
	case Tutorial:
		return "Tutorial"
	}
	return "Unknown"
}

// ParseActivityType matches a type name case-insensitively.
func ParseActivityType(s string) (ActivityType, bool) {
	switch {
	case strings.EqualFold(s, "lecture"):
		return Lecture, true
	case strings.EqualFold(s, "lab"):
		return Lab, true
	case strings.EqualFold(s, "tutorial"):
		return Tutorial, true
	}
	return 0, false
}

// Activity is a single scheduled teaching event belonging to a course.
// The three variants share every field except Recorded (lectures) and
// Capacity (labs and tutorials). Activities are immutable once built and
// owned by their course; students only ever see TimeSlot projections.
type Activity struct {
	ID        int
	Type      ActivityType
	Day       Day
	Start     ClockTime
	End       ClockTime
	StartDate time.Time
	EndDate   time.Time
	Location  string
	Recorded  bool
	Capacity  int
}

// NewLecture creates a lecture activity. Lectures are mandatory and their
// time slots are chosen on the student's behalf.
func NewLecture(day Day, start ClockTime, end ClockTime, location string, recorded bool) *Activity {
	return &Activity{Type: Lecture, Day: day, Start: start, End: end, Location: location, Recorded: recorded}
}

// NewLab creates a lab activity with a seating capacity.
func NewLab(day Day, start ClockTime, end ClockTime, location string, capacity int) *Activity {
	return &Activity{Type: Lab, Day: day, Start: start, End: end, Location: location, Capacity: capacity}
}

// NewTutorial creates a tutorial activity with a seating capacity.
func NewTutorial(day Day, start ClockTime, end ClockTime, location string, capacity int) *Activity {
	return &Activity{Type: Tutorial, Day: day, Start: start, End: end, Location: location, Capacity: capacity}
}

// HasID reports whether this activity carries the given id.
func (a *Activity) HasID(id int) bool {
	return a.ID == id
}
