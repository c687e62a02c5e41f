package model

import (
	"slices"

	"github.com/samber/lo"
)

// Timetable holds the time slots offered to one student. Storage order is
// insertion order; the sorted view is a presentation concern served by
// ChosenSlots.
type Timetable struct {
	Owner string

	slots []*TimeSlot
}

// NewTimetable creates an empty timetable for a student. An empty
// timetable and a missing one are distinct states; the engine creates one
// lazily on first enrollment and never removes it.
func NewTimetable(owner string) *Timetable {
	return &Timetable{Owner: owner}
}

// AddTimeSlot projects an activity into a slot and appends it. Lecture
// slots start Chosen because they are mandatory; lab and tutorial slots
// start Unchosen. Returns false without appending when a slot for the
// same (course, activity) pair already exists.
func (t *Timetable) AddTimeSlot(a *Activity, courseCode string) bool {
	if _, exists := t.Slot(courseCode, a.ID); exists {
		return false
	}
	status := Unchosen
	if a.Type == Lecture {
		status = Chosen
	}
	t.slots = append(t.slots, &TimeSlot{
		ActivityID: a.ID,
		CourseCode: courseCode,
		Type:       a.Type,
		Day:        a.Day,
		Start:      a.Start,
		End:        a.End,
		Status:     status,
	})
	return true
}

// CheckConflicts scans for a chosen same-day slot overlapping the given
// interval. Overlap requires interior intersection on both sides
// (start < slot.End && end > slot.Start), so two intervals that only
// share a boundary instant do not conflict. If any overlapping slot is a
// lecture it is reported over the others: lectures cannot be deselected,
// so that conflict is the one the student cannot resolve by retrying.
// Returns nil when nothing overlaps.
func (t *Timetable) CheckConflicts(day Day, start ClockTime, end ClockTime) *Conflict {
	var first *TimeSlot
	for _, s := range t.slots {
		if s.Status != Chosen || s.Day != day {
			continue
		}
		if start < s.End && end > s.Start {
			if s.Type == Lecture {
				return conflictWith(s)
			}
			if first == nil {
				first = s
			}
		}
	}
	if first == nil {
		return nil
	}
	return conflictWith(first)
}

// ChooseActivity marks the matching unchosen slot as chosen. Returns true
// only when a transition happened; an already-chosen or missing slot is a
// no-op.
func (t *Timetable) ChooseActivity(courseCode string, activityID int) bool {
	for _, s := range t.slots {
		if s.CourseCode == courseCode && s.ActivityID == activityID && s.Status == Unchosen {
			s.Status = Chosen
			return true
		}
	}
	return false
}

// RemoveSlotsForCourse deletes every slot belonging to the course,
// used when a student drops it.
func (t *Timetable) RemoveSlotsForCourse(courseCode string) {
	t.slots = slices.DeleteFunc(t.slots, func(s *TimeSlot) bool {
		return s.CourseCode == courseCode
	})
}

// Slot finds the slot for a (course, activity) pair.
func (t *Timetable) Slot(courseCode string, activityID int) (*TimeSlot, bool) {
	for _, s := range t.slots {
		if s.CourseCode == courseCode && s.ActivityID == activityID {
			return s, true
		}
	}
	return nil, false
}

// HasSlotsForCourse reports whether any slot belongs to the course.
func (t *Timetable) HasSlotsForCourse(courseCode string) bool {
	return lo.SomeBy(t.slots, func(s *TimeSlot) bool {
		return s.CourseCode == courseCode
	})
}

// HasSlotForActivity reports whether a slot exists for the pair.
func (t *Timetable) HasSlotForActivity(courseCode string, activityID int) bool {
	_, ok := t.Slot(courseCode, activityID)
	return ok
}

// NumChosenLabs counts the chosen lab slots of a course, for comparison
// against the course's required-lab quota.
func (t *Timetable) NumChosenLabs(courseCode string) int {
	return t.numChosen(courseCode, Lab)
}

// NumChosenTutorials counts the chosen tutorial slots of a course.
func (t *Timetable) NumChosenTutorials(courseCode string) int {
	return t.numChosen(courseCode, Tutorial)
}

func (t *Timetable) numChosen(courseCode string, at ActivityType) int {
	return lo.CountBy(t.slots, func(s *TimeSlot) bool {
		return s.CourseCode == courseCode && s.Type == at && s.Status == Chosen
	})
}

// Clone returns a deep copy that stays stable while the original keeps
// being mutated. Slot values are copied because their status changes in
// place.
func (t *Timetable) Clone() *Timetable {
	clone := NewTimetable(t.Owner)
	clone.slots = make([]*TimeSlot, 0, len(t.slots))
	for _, s := range t.slots {
		dup := *s
		clone.slots = append(clone.slots, &dup)
	}
	return clone
}

// Slots returns every slot in insertion order.
func (t *Timetable) Slots() []*TimeSlot {
	return t.slots
}

// ChosenSlots returns the chosen slots sorted by day then start time,
// the order the timetable is rendered in.
func (t *Timetable) ChosenSlots() []*TimeSlot {
	chosen := lo.Filter(t.slots, func(s *TimeSlot, _ int) bool {
		return s.Status == Chosen
	})
	slices.SortStableFunc(chosen, func(a *TimeSlot, b *TimeSlot) int {
		if day := int(a.Day) - int(b.Day); day != 0 {
			return day
		}
		return int(a.Start) - int(b.Start)
	})
	return chosen
}
