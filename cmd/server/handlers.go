package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/unidesk/go-enroll/internal/csvio"
	"github.com/unidesk/go-enroll/internal/export"
	"github.com/unidesk/go-enroll/internal/scheduler"
	"github.com/unidesk/go-enroll/pkg/model"
)

type activityJSON struct {
	ID       int    `json:"id,omitempty"`
	Type     string `json:"type"`
	Day      string `json:"day"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Location string `json:"location"`
	Recorded bool   `json:"recorded,omitempty"`
	Capacity int    `json:"capacity,omitempty"`
}

type courseJSON struct {
	Code              string         `json:"code"`
	Name              string         `json:"name"`
	Description       string         `json:"description,omitempty"`
	RequiresComputers bool           `json:"requires_computers,omitempty"`
	OrganiserName     string         `json:"organiser_name,omitempty"`
	OrganiserEmail    string         `json:"organiser_email,omitempty"`
	SecretaryName     string         `json:"secretary_name,omitempty"`
	SecretaryEmail    string         `json:"secretary_email,omitempty"`
	RequiredTutorials int            `json:"required_tutorials"`
	RequiredLabs      int            `json:"required_labs"`
	Activities        []activityJSON `json:"activities,omitempty"`
}

type slotJSON struct {
	ActivityID int    `json:"activity_id"`
	CourseCode string `json:"course_code"`
	Type       string `json:"type"`
	Day        string `json:"day"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Status     string `json:"status"`
}

func courseToJSON(c *model.Course) courseJSON {
	out := courseJSON{
		Code:              c.Code,
		Name:              c.Name,
		Description:       c.Description,
		RequiresComputers: c.RequiresComputers,
		OrganiserName:     c.OrganiserName,
		OrganiserEmail:    c.OrganiserEmail,
		SecretaryName:     c.SecretaryName,
		SecretaryEmail:    c.SecretaryEmail,
		RequiredTutorials: c.RequiredTutorials,
		RequiredLabs:      c.RequiredLabs,
	}
	for _, a := range c.Activities() {
		out.Activities = append(out.Activities, activityJSON{
			ID:       a.ID,
			Type:     a.Type.String(),
			Day:      a.Day.String(),
			Start:    a.Start.String(),
			End:      a.End.String(),
			Location: a.Location,
			Recorded: a.Recorded,
			Capacity: a.Capacity,
		})
	}
	return out
}

func slotToJSON(s *model.TimeSlot) slotJSON {
	return slotJSON{
		ActivityID: s.ActivityID,
		CourseCode: s.CourseCode,
		Type:       s.Type.String(),
		Day:        s.Day.String(),
		Start:      s.Start.String(),
		End:        s.End.String(),
		Status:     s.Status.String(),
	}
}

// respondError maps the engine's error taxonomy onto HTTP statuses.
// Conflicts carry the clashing (course, activity) pair in the body.
func respondError(ctx *gin.Context, err error) {
	var conflict *scheduler.ConflictError
	if errors.As(err, &conflict) {
		ctx.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
			"conflict": gin.H{
				"course_code": conflict.CourseCode,
				"activity_id": conflict.ActivityID,
				"type":        conflict.Type.String(),
				"day":         conflict.Day.String(),
				"start":       conflict.Start.String(),
				"end":         conflict.End.String(),
			},
		})
		return
	}
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, scheduler.ErrUnknownCourse),
		errors.Is(err, scheduler.ErrNoTimetable),
		errors.Is(err, scheduler.ErrCourseNotInTimetable),
		errors.Is(err, scheduler.ErrUnknownActivity):
		status = http.StatusNotFound
	case errors.Is(err, scheduler.ErrAlreadyEnrolled),
		errors.Is(err, scheduler.ErrCourseExists),
		errors.Is(err, scheduler.ErrDuplicateActivityID):
		status = http.StatusConflict
	case errors.Is(err, scheduler.ErrInvalidActivityID):
		status = http.StatusBadRequest
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}

func handleListCourses(ctx *gin.Context) {
	courses := mgr.Courses()
	out := make([]courseJSON, 0, len(courses))
	for _, c := range courses {
		out = append(out, courseToJSON(c))
	}
	ctx.JSON(http.StatusOK, gin.H{"courses": out})
}

func handleGetCourse(ctx *gin.Context) {
	c, ok := mgr.Course(ctx.Param("code"))
	if !ok {
		respondError(ctx, scheduler.ErrUnknownCourse)
		return
	}
	ctx.JSON(http.StatusOK, courseToJSON(c))
}

func handleCreateCourse(ctx *gin.Context) {
	var body courseJSON
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.Code == "" || body.RequiredTutorials < 0 || body.RequiredLabs < 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "course code required; quotas must be non-negative"})
		return
	}
	course := &model.Course{
		Code:              body.Code,
		Name:              body.Name,
		Description:       body.Description,
		RequiresComputers: body.RequiresComputers,
		OrganiserName:     body.OrganiserName,
		OrganiserEmail:    body.OrganiserEmail,
		SecretaryName:     body.SecretaryName,
		SecretaryEmail:    body.SecretaryEmail,
		RequiredTutorials: body.RequiredTutorials,
		RequiredLabs:      body.RequiredLabs,
	}
	// Parse every activity before touching the catalog so a bad row does
	// not leave a half-built course behind.
	activities := make([]*model.Activity, 0, len(body.Activities))
	for _, a := range body.Activities {
		activityType, ok := model.ParseActivityType(a.Type)
		if !ok {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "unrecognized activity type " + a.Type})
			return
		}
		day, err := model.ParseDay(a.Day)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		start, err := model.ParseClockTime(a.Start)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		end, err := model.ParseClockTime(a.End)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var activity *model.Activity
		switch activityType {
		case model.Lecture:
			activity = model.NewLecture(day, start, end, a.Location, a.Recorded)
		case model.Lab:
			activity = model.NewLab(day, start, end, a.Location, a.Capacity)
		default:
			activity = model.NewTutorial(day, start, end, a.Location, a.Capacity)
		}
		activity.ID = a.ID
		activities = append(activities, activity)
	}
	if err := mgr.AddCourse(course); err != nil {
		respondError(ctx, err)
		return
	}
	for _, activity := range activities {
		if err := mgr.AddActivity(course.Code, activity); err != nil {
			respondError(ctx, err)
			return
		}
	}
	ctx.JSON(http.StatusCreated, courseToJSON(course))
}

func handleRemoveCourse(ctx *gin.Context) {
	removed, err := mgr.RemoveCourse(ctx.Param("code"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	// The notifier consumes this payload; the engine itself sends nothing.
	ctx.JSON(http.StatusOK, gin.H{
		"code":            removed.Code,
		"name":            removed.Name,
		"organiser_email": removed.OrganiserEmail,
		"members":         removed.Members,
	})
}

func handleEnroll(ctx *gin.Context) {
	result, err := mgr.AddCourseToTimetable(ctx.Param("email"), ctx.Param("code"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	slots := make([]slotJSON, 0, len(result.Slots))
	for _, s := range result.Slots {
		slots = append(slots, slotToJSON(&s))
	}
	ctx.JSON(http.StatusCreated, gin.H{"course_code": result.CourseCode, "slots": slots})
}

func handleDrop(ctx *gin.Context) {
	if err := mgr.RemoveCourseFromTimetable(ctx.Param("email"), ctx.Param("code")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func handleChoose(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondError(ctx, scheduler.ErrInvalidActivityID)
		return
	}
	result, err := mgr.ChooseActivityForCourse(ctx.Param("email"), ctx.Param("code"), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"course_code":    result.CourseCode,
		"activity_id":    result.ActivityID,
		"type":           result.Type.String(),
		"chosen":         result.Chosen,
		"required":       result.Required,
		"remaining":      result.Remaining(),
		"already_chosen": result.AlreadyChosen,
	})
}

func studentTimetable(ctx *gin.Context) (*model.Timetable, bool) {
	t, ok := mgr.Timetable(ctx.Param("email"))
	if !ok {
		respondError(ctx, scheduler.ErrNoTimetable)
		return nil, false
	}
	return t, true
}

func handleGetTimetable(ctx *gin.Context) {
	t, ok := studentTimetable(ctx)
	if !ok {
		return
	}
	slots := t.ChosenSlots()
	if ctx.Query("all") != "" {
		slots = t.Slots()
	}
	out := make([]slotJSON, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotToJSON(s))
	}
	ctx.JSON(http.StatusOK, gin.H{"student": t.Owner, "slots": out})
}

func handleGetTimetableCSV(ctx *gin.Context) {
	t, ok := studentTimetable(ctx)
	if !ok {
		return
	}
	data, err := csvio.ExportTimetableString(t)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.Data(http.StatusOK, "text/csv", []byte(data))
}

func handleGetTimetableICS(ctx *gin.Context) {
	t, ok := studentTimetable(ctx)
	if !ok {
		return
	}
	ctx.Data(http.StatusOK, "text/calendar", []byte(export.TimetableICS(t, time.Now())))
}

func handleGetTimetableXLSX(ctx *gin.Context) {
	t, ok := studentTimetable(ctx)
	if !ok {
		return
	}
	f, err := export.TimetableXLSX(t)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()
	ctx.Header("Content-Disposition", `attachment; filename="timetable.xlsx"`)
	ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(ctx.Writer); err != nil {
		log.Warn("xlsx write failed", zap.Error(err))
	}
}

func handleValidate(ctx *gin.Context) {
	valid, report := scheduler.Validate(mgr)
	ctx.JSON(http.StatusOK, gin.H{"valid": valid, "report": report})
}
