package scheduler

import (
	"errors"
	"fmt"

	"github.com/unidesk/go-enroll/pkg/model"
)

// Every failure the engine reports is one of these values or a
// *ConflictError; callers branch with errors.Is / errors.As and recover by
// supplying new input. Nothing here terminates the process.
var (
	ErrUnknownCourse        = errors.New("course not found in catalog")
	ErrCourseExists         = errors.New("course code already in catalog")
	ErrNoTimetable          = errors.New("student has no timetable")
	ErrCourseNotInTimetable = errors.New("course not in student's timetable")
	ErrUnknownActivity      = errors.New("no such activity for course")
	ErrAlreadyEnrolled      = errors.New("course already in student's timetable")
	ErrInvalidActivityID    = errors.New("activity id must be a positive integer")
	ErrDuplicateActivityID  = errors.New("activity id already used within course")
)

// ConflictError reports the chosen slot that overlaps the requested one.
type ConflictError struct {
	CourseCode string
	ActivityID int
	Type       model.ActivityType
	Day        model.Day
	Start      model.ClockTime
	End        model.ClockTime
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("clashes with %s #%d of %s (%s %s-%s)",
		e.Type, e.ActivityID, e.CourseCode, e.Day, e.Start, e.End)
}

func newConflictError(c *model.Conflict) *ConflictError {
	return &ConflictError{
		CourseCode: c.CourseCode,
		ActivityID: c.ActivityID,
		Type:       c.Type,
		Day:        c.Day,
		Start:      c.Start,
		End:        c.End,
	}
}
