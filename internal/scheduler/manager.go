package scheduler

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/unidesk/go-enroll/pkg/model"
)

// CourseManager is the scheduling engine. It is the sole owner and
// mutator of the course catalog and the per-student timetable registry;
// Course and Timetable never reference each other directly, so every
// cross-cutting rule lives here. The front ends serve concurrent callers,
// hence the mutex around both maps.
type CourseManager struct {
	mu         sync.RWMutex
	courses    map[string]*model.Course
	timetables map[string]*model.Timetable
	nextID     atomic.Int64
	log        *zap.Logger
}

// NewCourseManager creates an empty engine. A nil logger disables logging.
func NewCourseManager(log *zap.Logger) *CourseManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &CourseManager{
		courses:    make(map[string]*model.Course),
		timetables: make(map[string]*model.Timetable),
		log:        log,
	}
}

// NextActivityID returns a process-wide monotonically increasing id.
// Sharing one counter across all courses keeps activity ids globally
// unique without per-course coordination.
func (m *CourseManager) NextActivityID() int {
	return int(m.nextID.Add(1))
}

// AddCourse registers a course under its code.
func (m *CourseManager) AddCourse(c *model.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.courses[c.Code]; exists {
		return ErrCourseExists
	}
	m.courses[c.Code] = c
	m.log.Info("course added", zap.String("course", c.Code), zap.Int("activities", len(c.Activities())))
	return nil
}

// AddActivity attaches an activity to a cataloged course, assigning an id
// from the shared counter when the caller left it zero. A caller-supplied
// id must be positive and unused within the course: a duplicate would
// collapse two activities into one timetable slot.
func (m *CourseManager) AddActivity(courseCode string, a *model.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.courses[courseCode]
	if !ok {
		return ErrUnknownCourse
	}
	if a.ID < 0 {
		return ErrInvalidActivityID
	}
	if a.ID == 0 {
		a.ID = int(m.nextID.Add(1))
	} else if c.HasActivityID(a.ID) {
		return ErrDuplicateActivityID
	}
	c.AddActivity(a)
	return nil
}

// Course looks up a course by code. The returned course is a snapshot
// taken under the lock; later catalog mutations do not show through it.
func (m *CourseManager) Course(code string) (*model.Course, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.courses[code]
	if !ok {
		return nil, false
	}
	return c.Clone(), true
}

// Courses returns catalog snapshots sorted by course code.
func (m *CourseManager) Courses() []*model.Course {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := lo.Map(lo.Values(m.courses), func(c *model.Course, _ int) *model.Course {
		return c.Clone()
	})
	sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	return all
}

// RemoveCourse withdraws a course from the catalog and returns its
// descriptive fields with the enrolled member emails so the caller can
// notify them. Removal does not cascade into timetables: slots keep their
// course code as a weak reference and every catalog join checks existence.
func (m *CourseManager) RemoveCourse(code string) (*RemovedCourse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.courses[code]
	if !ok {
		return nil, ErrUnknownCourse
	}
	delete(m.courses, code)
	m.log.Info("course removed", zap.String("course", code), zap.Int("members", len(c.Members())))
	return &RemovedCourse{
		Code:           c.Code,
		Name:           c.Name,
		Description:    c.Description,
		OrganiserName:  c.OrganiserName,
		OrganiserEmail: c.OrganiserEmail,
		Members:        c.Members(),
	}, nil
}

// Timetable looks up a student's timetable. A student who never enrolled
// has none, which is distinct from having an empty one. The returned
// timetable is a snapshot taken under the lock so callers can iterate its
// slots while other requests mutate the live one.
func (m *CourseManager) Timetable(email string) (*model.Timetable, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.timetables[email]
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

// AddCourseToTimetable enrolls a student into a course: it creates the
// timetable on first use and projects every activity of the course into a
// slot. Enrollment is atomic per course: a lecture whose interval clashes
// with an already-chosen slot rolls back every slot added for the course
// and reports the clash.
func (m *CourseManager) AddCourseToTimetable(email string, courseCode string) (*EnrollmentResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.courses[courseCode]
	if !ok {
		return nil, ErrUnknownCourse
	}
	t, ok := m.timetables[email]
	if !ok {
		t = model.NewTimetable(email)
		m.timetables[email] = t
	}
	if t.HasSlotsForCourse(courseCode) {
		return nil, ErrAlreadyEnrolled
	}
	// Each lecture is checked before its own slot lands, so a clash
	// between two lectures of the same course is caught as well.
	for _, a := range c.Activities() {
		if a.Type == model.Lecture {
			if conflict := t.CheckConflicts(a.Day, a.Start, a.End); conflict != nil {
				t.RemoveSlotsForCourse(courseCode)
				m.log.Debug("enrollment rejected",
					zap.String("student", email),
					zap.String("course", courseCode),
					zap.String("clash", conflict.CourseCode))
				return nil, newConflictError(conflict)
			}
		}
		t.AddTimeSlot(a, courseCode)
	}
	c.AddMember(email)
	// Copies, not pointers into the live timetable.
	var added []model.TimeSlot
	for _, a := range c.Activities() {
		if s, ok := t.Slot(courseCode, a.ID); ok {
			added = append(added, *s)
		}
	}
	m.log.Info("student enrolled", zap.String("student", email), zap.String("course", courseCode), zap.Int("slots", len(added)))
	return &EnrollmentResult{CourseCode: courseCode, Slots: added}, nil
}

// ChooseActivityForCourse marks a lab or tutorial slot as chosen after
// checking its interval against the chosen slots. The slot itself is still
// unchosen during the check, so it never conflicts with itself. On success
// the result carries the advisory chosen-versus-required standing for the
// slot's type.
func (m *CourseManager) ChooseActivityForCourse(email string, courseCode string, activityID int) (*ChoiceResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if activityID <= 0 {
		return nil, ErrInvalidActivityID
	}
	t, ok := m.timetables[email]
	if !ok {
		return nil, ErrNoTimetable
	}
	if !t.HasSlotsForCourse(courseCode) {
		return nil, ErrCourseNotInTimetable
	}
	slot, ok := t.Slot(courseCode, activityID)
	if !ok {
		return nil, ErrUnknownActivity
	}
	result := &ChoiceResult{CourseCode: courseCode, ActivityID: activityID, Type: slot.Type}
	if slot.Status == model.Chosen {
		result.AlreadyChosen = true
	} else {
		if conflict := t.CheckConflicts(slot.Day, slot.Start, slot.End); conflict != nil {
			return nil, newConflictError(conflict)
		}
		t.ChooseActivity(courseCode, activityID)
	}
	switch slot.Type {
	case model.Lab:
		result.Chosen = t.NumChosenLabs(courseCode)
	case model.Tutorial:
		result.Chosen = t.NumChosenTutorials(courseCode)
	}
	// The course may have left the catalog since enrollment; the quota is
	// then unknowable and reported as zero.
	if c, ok := m.courses[courseCode]; ok {
		switch slot.Type {
		case model.Lab:
			result.Required = c.RequiredLabs
		case model.Tutorial:
			result.Required = c.RequiredTutorials
		}
	}
	return result, nil
}

// RemoveCourseFromTimetable drops every slot of the course from the
// student's timetable and, when the course is still cataloged, forgets
// the student's membership.
func (m *CourseManager) RemoveCourseFromTimetable(email string, courseCode string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.timetables[email]
	if !ok {
		return ErrNoTimetable
	}
	if !t.HasSlotsForCourse(courseCode) {
		return ErrCourseNotInTimetable
	}
	t.RemoveSlotsForCourse(courseCode)
	if c, ok := m.courses[courseCode]; ok {
		c.RemoveMember(email)
	}
	m.log.Info("course dropped", zap.String("student", email), zap.String("course", courseCode))
	return nil
}
