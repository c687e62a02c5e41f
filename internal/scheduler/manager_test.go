package scheduler

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unidesk/go-enroll/pkg/model"
)

const student = "ada@uni.example"

// newTestManager seeds CS101 (lecture Monday 09:00-10:00, two labs, one
// tutorial; one lab required, one tutorial required) and CS202 (lecture
// Monday 09:30-10:30 so it clashes with CS101's lecture).
func newTestManager(t *testing.T) *CourseManager {
	t.Helper()
	m := NewCourseManager(nil)

	cs101 := &model.Course{Code: "CS101", Name: "Programming", RequiredLabs: 1, RequiredTutorials: 1}
	require.NoError(t, m.AddCourse(cs101))
	require.NoError(t, m.AddActivity("CS101", model.NewLecture(model.Monday, model.NewClockTime(9, 0), model.NewClockTime(10, 0), "LT1", true)))
	require.NoError(t, m.AddActivity("CS101", model.NewLab(model.Tuesday, model.NewClockTime(10, 0), model.NewClockTime(11, 0), "Lab A", 30)))
	require.NoError(t, m.AddActivity("CS101", model.NewLab(model.Wednesday, model.NewClockTime(10, 0), model.NewClockTime(11, 0), "Lab A", 30)))
	require.NoError(t, m.AddActivity("CS101", model.NewTutorial(model.Thursday, model.NewClockTime(10, 0), model.NewClockTime(11, 0), "Room 2", 15)))

	cs202 := &model.Course{Code: "CS202", Name: "Algorithms"}
	require.NoError(t, m.AddCourse(cs202))
	require.NoError(t, m.AddActivity("CS202", model.NewLecture(model.Monday, model.NewClockTime(9, 30), model.NewClockTime(10, 30), "LT2", false)))

	return m
}

func activityIDs(t *testing.T, m *CourseManager, code string) []int {
	t.Helper()
	c, ok := m.Course(code)
	require.True(t, ok)
	var ids []int
	for _, a := range c.Activities() {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestNextActivityID(t *testing.T) {
	m := NewCourseManager(nil)
	first := m.NextActivityID()
	second := m.NextActivityID()
	assert.Greater(t, second, first)

	// Ids stay unique across courses because the counter is engine-wide.
	assert.ElementsMatch(t, []int{1, 2}, []int{first, second})
}

func TestAddCourse(t *testing.T) {
	m := NewCourseManager(nil)
	require.NoError(t, m.AddCourse(&model.Course{Code: "CS101"}))
	assert.ErrorIs(t, m.AddCourse(&model.Course{Code: "CS101"}), ErrCourseExists)

	assert.ErrorIs(t, m.AddActivity("CS999", model.NewLecture(model.Monday, 0, 0, "", false)), ErrUnknownCourse)
}

func TestAddActivityIDValidation(t *testing.T) {
	m := NewCourseManager(nil)
	require.NoError(t, m.AddCourse(&model.Course{Code: "CS101"}))

	lecture := model.NewLecture(model.Monday, model.NewClockTime(9, 0), model.NewClockTime(10, 0), "LT1", true)
	lecture.ID = 7
	require.NoError(t, m.AddActivity("CS101", lecture))

	// A repeated caller-supplied id would collapse two activities into
	// one timetable slot, so it is rejected.
	clashingLab := model.NewLab(model.Tuesday, model.NewClockTime(10, 0), model.NewClockTime(11, 0), "Lab A", 30)
	clashingLab.ID = 7
	assert.ErrorIs(t, m.AddActivity("CS101", clashingLab), ErrDuplicateActivityID)

	negative := model.NewLab(model.Tuesday, model.NewClockTime(10, 0), model.NewClockTime(11, 0), "Lab A", 30)
	negative.ID = -1
	assert.ErrorIs(t, m.AddActivity("CS101", negative), ErrInvalidActivityID)

	lab := model.NewLab(model.Tuesday, model.NewClockTime(10, 0), model.NewClockTime(11, 0), "Lab A", 30)
	require.NoError(t, m.AddActivity("CS101", lab))
	assert.NotEqual(t, 7, lab.ID, "generated id skips the taken one")

	// Every accepted activity projects into exactly one slot.
	result, err := m.AddCourseToTimetable(student, "CS101")
	require.NoError(t, err)
	assert.Len(t, result.Slots, 2)
	tt, _ := m.Timetable(student)
	assert.Len(t, tt.Slots(), 2)
}

func TestReadAccessorsReturnSnapshots(t *testing.T) {
	m := newTestManager(t)
	_, err := m.AddCourseToTimetable(student, "CS101")
	require.NoError(t, err)
	ids := activityIDs(t, m, "CS101")

	snapshot, ok := m.Timetable(student)
	require.True(t, ok)
	course, ok := m.Course("CS101")
	require.True(t, ok)

	_, err = m.ChooseActivityForCourse(student, "CS101", ids[1])
	require.NoError(t, err)
	require.NoError(t, m.AddActivity("CS101", model.NewTutorial(model.Friday, model.NewClockTime(15, 0), model.NewClockTime(16, 0), "Room 4", 10)))

	slot, ok := snapshot.Slot("CS101", ids[1])
	require.True(t, ok)
	assert.Equal(t, model.Unchosen, slot.Status, "later choices do not show through the snapshot")
	assert.Len(t, course.Activities(), 4, "later catalog additions do not show through the snapshot")

	require.NoError(t, m.RemoveCourseFromTimetable(student, "CS101"))
	assert.True(t, snapshot.HasSlotsForCourse("CS101"))

	fresh, ok := m.Timetable(student)
	require.True(t, ok)
	assert.Empty(t, fresh.Slots())
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	m := newTestManager(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			email := fmt.Sprintf("student%d@uni.example", n)
			for j := 0; j < 50; j++ {
				m.AddCourseToTimetable(email, "CS101")
				if tt, ok := m.Timetable(email); ok {
					tt.ChosenSlots()
					tt.Slots()
				}
				for _, c := range m.Courses() {
					c.Activities()
				}
				m.RemoveCourseFromTimetable(email, "CS101")
			}
		}(i)
	}
	wg.Wait()

	valid, report := Validate(m)
	assert.True(t, valid, report)
}

func TestAddCourseToTimetable(t *testing.T) {
	t.Run("unknown course", func(t *testing.T) {
		m := newTestManager(t)
		_, err := m.AddCourseToTimetable(student, "CS999")
		assert.ErrorIs(t, err, ErrUnknownCourse)
		_, ok := m.Timetable(student)
		assert.False(t, ok, "no timetable materialized for a failed lookup")
	})

	t.Run("projects every activity with lecture chosen", func(t *testing.T) {
		m := newTestManager(t)
		result, err := m.AddCourseToTimetable(student, "CS101")
		require.NoError(t, err)
		require.Len(t, result.Slots, 4)

		chosen := 0
		for _, s := range result.Slots {
			if s.Status == model.Chosen {
				chosen++
				assert.Equal(t, model.Lecture, s.Type)
			}
		}
		assert.Equal(t, 1, chosen)

		c, _ := m.Course("CS101")
		assert.True(t, c.HasMember(student))
	})

	t.Run("re-enrolling is rejected without duplicating slots", func(t *testing.T) {
		m := newTestManager(t)
		_, err := m.AddCourseToTimetable(student, "CS101")
		require.NoError(t, err)
		_, err = m.AddCourseToTimetable(student, "CS101")
		assert.ErrorIs(t, err, ErrAlreadyEnrolled)

		tt, _ := m.Timetable(student)
		assert.Len(t, tt.Slots(), 4)
	})

	t.Run("lecture clash rolls back the whole course", func(t *testing.T) {
		m := newTestManager(t)
		_, err := m.AddCourseToTimetable(student, "CS101")
		require.NoError(t, err)

		_, err = m.AddCourseToTimetable(student, "CS202")
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "CS101", conflict.CourseCode)
		assert.Equal(t, model.Lecture, conflict.Type)

		tt, ok := m.Timetable(student)
		require.True(t, ok)
		assert.False(t, tt.HasSlotsForCourse("CS202"), "all-or-nothing enrollment")
		assert.Len(t, tt.Slots(), 4, "existing course untouched")

		c, _ := m.Course("CS202")
		assert.False(t, c.HasMember(student))
	})
}

func TestChooseActivityForCourse(t *testing.T) {
	t.Run("error taxonomy", func(t *testing.T) {
		m := newTestManager(t)

		_, err := m.ChooseActivityForCourse(student, "CS101", 2)
		assert.ErrorIs(t, err, ErrNoTimetable)

		_, err = m.AddCourseToTimetable(student, "CS101")
		require.NoError(t, err)

		_, err = m.ChooseActivityForCourse(student, "CS202", 2)
		assert.ErrorIs(t, err, ErrCourseNotInTimetable)

		_, err = m.ChooseActivityForCourse(student, "CS101", 999)
		assert.ErrorIs(t, err, ErrUnknownActivity)

		_, err = m.ChooseActivityForCourse(student, "CS101", -4)
		assert.ErrorIs(t, err, ErrInvalidActivityID)
	})

	t.Run("reports quota standing", func(t *testing.T) {
		m := newTestManager(t)
		_, err := m.AddCourseToTimetable(student, "CS101")
		require.NoError(t, err)
		ids := activityIDs(t, m, "CS101")

		result, err := m.ChooseActivityForCourse(student, "CS101", ids[1])
		require.NoError(t, err)
		assert.Equal(t, model.Lab, result.Type)
		assert.Equal(t, 1, result.Chosen)
		assert.Equal(t, 1, result.Required)
		assert.Equal(t, 0, result.Remaining())

		// Over-selection is reported, not rejected.
		result, err = m.ChooseActivityForCourse(student, "CS101", ids[2])
		require.NoError(t, err)
		assert.Equal(t, 2, result.Chosen)
		assert.Equal(t, -1, result.Remaining())
	})

	t.Run("already chosen is a reported no-op", func(t *testing.T) {
		m := newTestManager(t)
		_, err := m.AddCourseToTimetable(student, "CS101")
		require.NoError(t, err)
		ids := activityIDs(t, m, "CS101")

		first, err := m.ChooseActivityForCourse(student, "CS101", ids[1])
		require.NoError(t, err)
		assert.False(t, first.AlreadyChosen)

		again, err := m.ChooseActivityForCourse(student, "CS101", ids[1])
		require.NoError(t, err)
		assert.True(t, again.AlreadyChosen)
		assert.Equal(t, 1, again.Chosen)
	})

	t.Run("clash leaves the slot unchosen", func(t *testing.T) {
		m := NewCourseManager(nil)
		require.NoError(t, m.AddCourse(&model.Course{Code: "CS101", Name: "Programming", RequiredLabs: 1}))
		require.NoError(t, m.AddActivity("CS101", model.NewLecture(model.Monday, model.NewClockTime(9, 0), model.NewClockTime(10, 0), "LT1", true)))
		require.NoError(t, m.AddActivity("CS101", model.NewLab(model.Tuesday, model.NewClockTime(10, 0), model.NewClockTime(11, 0), "Lab A", 30)))
		require.NoError(t, m.AddCourse(&model.Course{Code: "CS202", Name: "Algorithms", RequiredLabs: 1}))
		require.NoError(t, m.AddActivity("CS202", model.NewLecture(model.Friday, model.NewClockTime(9, 0), model.NewClockTime(10, 0), "LT2", false)))
		require.NoError(t, m.AddActivity("CS202", model.NewLab(model.Tuesday, model.NewClockTime(10, 30), model.NewClockTime(11, 30), "Lab B", 20)))

		_, err := m.AddCourseToTimetable(student, "CS101")
		require.NoError(t, err)
		_, err = m.AddCourseToTimetable(student, "CS202")
		require.NoError(t, err)

		cs101IDs := activityIDs(t, m, "CS101")
		cs202IDs := activityIDs(t, m, "CS202")

		_, err = m.ChooseActivityForCourse(student, "CS101", cs101IDs[1])
		require.NoError(t, err)

		_, err = m.ChooseActivityForCourse(student, "CS202", cs202IDs[1])
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "CS101", conflict.CourseCode)
		assert.Equal(t, cs101IDs[1], conflict.ActivityID)

		tt, _ := m.Timetable(student)
		slot, ok := tt.Slot("CS202", cs202IDs[1])
		require.True(t, ok)
		assert.Equal(t, model.Unchosen, slot.Status)
	})
}

func TestRemoveCourseFromTimetable(t *testing.T) {
	m := newTestManager(t)

	assert.ErrorIs(t, m.RemoveCourseFromTimetable(student, "CS101"), ErrNoTimetable)

	_, err := m.AddCourseToTimetable(student, "CS101")
	require.NoError(t, err)

	assert.ErrorIs(t, m.RemoveCourseFromTimetable(student, "CS202"), ErrCourseNotInTimetable)

	require.NoError(t, m.RemoveCourseFromTimetable(student, "CS101"))
	tt, ok := m.Timetable(student)
	require.True(t, ok, "an emptied timetable still exists")
	assert.Empty(t, tt.Slots())

	c, _ := m.Course("CS101")
	assert.False(t, c.HasMember(student))
}

func TestRemoveCourse(t *testing.T) {
	m := newTestManager(t)
	_, err := m.AddCourseToTimetable(student, "CS101")
	require.NoError(t, err)

	removed, err := m.RemoveCourse("CS101")
	require.NoError(t, err)
	assert.Equal(t, "CS101", removed.Code)
	assert.Equal(t, []string{student}, removed.Members)

	_, err = m.RemoveCourse("CS101")
	assert.ErrorIs(t, err, ErrUnknownCourse)

	// Removal does not cascade: the slots stay as weak references and
	// choosing still works, with the quota unknowable and reported as zero.
	tt, _ := m.Timetable(student)
	assert.True(t, tt.HasSlotsForCourse("CS101"))

	var labID int
	for _, s := range tt.Slots() {
		if s.Type == model.Lab {
			labID = s.ActivityID
			break
		}
	}
	result, err := m.ChooseActivityForCourse(student, "CS101", labID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Chosen)
	assert.Equal(t, 0, result.Required)
}

func TestValidate(t *testing.T) {
	m := newTestManager(t)
	_, err := m.AddCourseToTimetable(student, "CS101")
	require.NoError(t, err)

	valid, report := Validate(m)
	assert.True(t, valid)
	assert.Contains(t, report, "[  OK]")

	// A withdrawn course is reported but does not fail the audit.
	_, err = m.RemoveCourse("CS101")
	require.NoError(t, err)
	valid, report = Validate(m)
	assert.True(t, valid)
	assert.Contains(t, report, "withdrawn courses")
}
