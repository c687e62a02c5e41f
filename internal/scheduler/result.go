package scheduler

import "github.com/unidesk/go-enroll/pkg/model"

// ChoiceResult reports the quota standing for the chosen slot's activity
// type after a choose call. The quota is advisory: over-selection is
// reported through a negative Remaining, never rejected.
type ChoiceResult struct {
	CourseCode    string
	ActivityID    int
	Type          model.ActivityType
	Chosen        int
	Required      int
	AlreadyChosen bool
}

// Remaining is how many more slots of this type the course still requires.
// Negative means the student selected more than required.
func (r *ChoiceResult) Remaining() int {
	return r.Required - r.Chosen
}

// EnrollmentResult lists the slots created by a successful enrollment.
// The slots are copies; the live timetable stays behind the engine lock.
type EnrollmentResult struct {
	CourseCode string
	Slots      []model.TimeSlot
}

// RemovedCourse is handed to the notification collaborator after a
// catalog-level removal: the descriptive fields plus who was enrolled.
type RemovedCourse struct {
	Code           string
	Name           string
	Description    string
	OrganiserName  string
	OrganiserEmail string
	Members        []string
}
