package model

import "slices"

// Course is a named course owning its activities and its required-activity
// quotas. The code is the catalog key and never changes after creation.
type Course struct {
	Code              string
	Name              string
	Description       string
	RequiresComputers bool
	OrganiserName     string
	OrganiserEmail    string
	SecretaryName     string
	SecretaryEmail    string
	RequiredTutorials int
	RequiredLabs      int

	activities []*Activity
	members    []string
}

// AddActivity appends an activity to the course. Id uniqueness within the
// course is the scheduling engine's responsibility, not checked here.
func (c *Course) AddActivity(a *Activity) {
	c.activities = append(c.activities, a)
}

// Activities returns the activity list in insertion order.
func (c *Course) Activities() []*Activity {
	return c.activities
}

// ActivityByID finds an activity of this course by id.
func (c *Course) ActivityByID(id int) (*Activity, bool) {
	for _, a := range c.activities {
		if a.HasID(id) {
			return a, true
		}
	}
	return nil, false
}

// HasCode reports whether the course carries the given code.
func (c *Course) HasCode(code string) bool {
	return c.Code == code
}

// HasActivityID reports whether any activity of this course carries the given id.
func (c *Course) HasActivityID(id int) bool {
	_, ok := c.ActivityByID(id)
	return ok
}

// AddMember records an enrolled student's email. Adding twice is a no-op.
func (c *Course) AddMember(email string) {
	if !slices.Contains(c.members, email) {
		c.members = append(c.members, email)
	}
}

// RemoveMember forgets an enrolled student's email.
func (c *Course) RemoveMember(email string) {
	c.members = slices.DeleteFunc(c.members, func(m string) bool { return m == email })
}

// HasMember reports whether the student is enrolled in this course.
func (c *Course) HasMember(email string) bool {
	return slices.Contains(c.members, email)
}

// Members returns a copy of the enrolled member emails, used by the
// notification collaborator when a course is withdrawn from the catalog.
func (c *Course) Members() []string {
	return slices.Clone(c.members)
}

// Clone returns a copy that stays stable while the original keeps being
// mutated. Activities are immutable and shared; both slices are copied.
func (c *Course) Clone() *Course {
	clone := *c
	clone.activities = slices.Clone(c.activities)
	clone.members = slices.Clone(c.members)
	return &clone
}
