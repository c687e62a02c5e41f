package export

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/unidesk/go-enroll/pkg/model"
)

var bydayTokens = [...]string{"MO", "TU", "WE", "TH", "FR", "SA", "SU"}

// TimetableICS renders the student's chosen slots as an iCalendar feed
// with one weekly-recurring event per slot. The model only knows weekday
// and wall-clock times, so events are anchored to the first occurrence of
// their weekday on or after ref.
func TimetableICS(t *model.Timetable, ref time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//go-enroll//timetable//EN")

	for _, s := range t.ChosenSlots() {
		uid := fmt.Sprintf("%s-%d@go-enroll", s.CourseCode, s.ActivityID)
		event := cal.AddEvent(uid)
		event.SetDtStampTime(ref)
		event.SetStartAt(nextOccurrence(ref, s.Day, s.Start))
		event.SetEndAt(nextOccurrence(ref, s.Day, s.End))
		event.SetSummary(fmt.Sprintf("%s %s", s.CourseCode, s.Type))
		event.AddRrule(fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s", bydayTokens[s.Day]))
	}

	return cal.Serialize()
}

// nextOccurrence is the first instant of the given weekday and clock time
// on or after ref.
func nextOccurrence(ref time.Time, day model.Day, at model.ClockTime) time.Time {
	// model.Day starts on Monday, time.Weekday on Sunday.
	target := time.Weekday((int(day) + 1) % 7)
	date := time.Date(ref.Year(), ref.Month(), ref.Day(), at.Hour(), at.Minute(), 0, 0, ref.Location())
	offset := (int(target) - int(date.Weekday()) + 7) % 7
	return date.AddDate(0, 0, offset)
}
