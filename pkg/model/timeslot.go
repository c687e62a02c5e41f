package model

// SlotStatus is the selection state of a TimeSlot. The only transition is
// Unchosen to Chosen; deselection is not part of the contract.
type SlotStatus int

const (
	Unchosen SlotStatus = iota
	Chosen
)

func (s SlotStatus) String() string {
	if s == Chosen {
		return "Chosen"
	}
	return "Unchosen"
}

// TimeSlot is a student-scoped projection of one activity. It holds only
// the scalar copies needed for conflict checks and display and does not
// own the activity: after a course is withdrawn from the catalog the
// course code here is a weak reference that may no longer resolve.
type TimeSlot struct {
	ActivityID int
	CourseCode string
	Type       ActivityType
	Day        Day
	Start      ClockTime
	End        ClockTime
	Status     SlotStatus
}

// Conflict describes one already-chosen slot overlapping a queried
// interval. When both a lecture and an optional slot overlap, the lecture
// is the one reported.
type Conflict struct {
	CourseCode string
	ActivityID int
	Type       ActivityType
	Day        Day
	Start      ClockTime
	End        ClockTime
}

func conflictWith(s *TimeSlot) *Conflict {
	return &Conflict{
		CourseCode: s.CourseCode,
		ActivityID: s.ActivityID,
		Type:       s.Type,
		Day:        s.Day,
		Start:      s.Start,
		End:        s.End,
	}
}
