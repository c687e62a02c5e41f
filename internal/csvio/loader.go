package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/unidesk/go-enroll/internal/scheduler"
	"github.com/unidesk/go-enroll/pkg/model"
)

// LoadCatalog reads and parses the courses and activities csv files and
// materializes courses with their activities attached. Activity ids come
// from nextID so they stay globally unique. Activity rows referencing an
// unknown course code are reported and skipped.
func LoadCatalog(cfg *scheduler.Configuration, delim rune, nextID func() int) ([]*model.Course, bool, string) {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = delim
		return r
	})

	var errorExists bool = false
	var reportString string = ""

	coursesFile, err := os.Open(cfg.CoursesFile)
	if err != nil {
		errorExists = true
		reportString = reportString + "Failed to open " + cfg.CoursesFile + " file. Please make sure the file exists.\n"
	}
	defer coursesFile.Close()

	_courses := []*model.CourseCSVRow{}
	if !errorExists {
		if err := gocsv.UnmarshalFile(coursesFile, &_courses); err != nil {
			errorExists = true
			reportString = reportString + "Failed to parse data from " + cfg.CoursesFile + " file. Please check the data integrity and format.\n"
		}
	}

	activitiesFile, err := os.Open(cfg.ActivitiesFile)
	if err != nil {
		errorExists = true
		reportString = reportString + "Failed to open " + cfg.ActivitiesFile + " file. Please make sure the file exists.\n"
	}
	defer activitiesFile.Close()

	_activities := []*model.ActivityCSVRow{}
	if !errorExists {
		if err := gocsv.UnmarshalFile(activitiesFile, &_activities); err != nil {
			errorExists = true
			reportString = reportString + "Failed to parse data from " + cfg.ActivitiesFile + " file. Please check the data integrity and format.\n"
		}
	}

	if errorExists {
		return nil, true, reportString
	}

	byCode := make(map[string]*model.Course, len(_courses))
	courses := make([]*model.Course, 0, len(_courses))
	for _, row := range _courses {
		if _, dup := byCode[row.Code]; dup {
			errorExists = true
			reportString = reportString + "Duplicate course code " + row.Code + " in " + cfg.CoursesFile + ".\n"
			continue
		}
		c := &model.Course{
			Code:              row.Code,
			Name:              row.Name,
			Description:       row.Description,
			RequiresComputers: row.RequiresComputers,
			OrganiserName:     row.OrganiserName,
			OrganiserEmail:    row.OrganiserEmail,
			SecretaryName:     row.SecretaryName,
			SecretaryEmail:    row.SecretaryEmail,
			RequiredTutorials: row.RequiredTutorials,
			RequiredLabs:      row.RequiredLabs,
		}
		byCode[row.Code] = c
		courses = append(courses, c)
	}

	for i, row := range _activities {
		course, ok := byCode[row.CourseCode]
		if !ok {
			errorExists = true
			reportString = reportString + fmt.Sprintf("Activity row %d references unknown course %s.\n", i+1, row.CourseCode)
			continue
		}
		activity, err := parseActivity(row)
		if err != nil {
			errorExists = true
			reportString = reportString + fmt.Sprintf("Activity row %d: %v.\n", i+1, err)
			continue
		}
		activity.ID = nextID()
		course.AddActivity(activity)
	}

	return courses, errorExists, reportString
}

func parseActivity(row *model.ActivityCSVRow) (*model.Activity, error) {
	activityType, ok := model.ParseActivityType(row.TypeSTR)
	if !ok {
		return nil, fmt.Errorf("unrecognized activity type %q", row.TypeSTR)
	}
	day, err := model.ParseDay(row.DaySTR)
	if err != nil {
		return nil, err
	}
	start, err := model.ParseClockTime(row.StartSTR)
	if err != nil {
		return nil, err
	}
	end, err := model.ParseClockTime(row.EndSTR)
	if err != nil {
		return nil, err
	}

	var activity *model.Activity
	switch activityType {
	case model.Lecture:
		activity = model.NewLecture(day, start, end, row.Location, row.Recorded)
	case model.Lab:
		activity = model.NewLab(day, start, end, row.Location, row.Capacity)
	default:
		activity = model.NewTutorial(day, start, end, row.Location, row.Capacity)
	}

	// Term dates are informational only and may be left blank.
	if row.StartDateSTR != "" {
		if activity.StartDate, err = time.Parse(time.DateOnly, row.StartDateSTR); err != nil {
			return nil, fmt.Errorf("unrecognized start date %q", row.StartDateSTR)
		}
	}
	if row.EndDateSTR != "" {
		if activity.EndDate, err = time.Parse(time.DateOnly, row.EndDateSTR); err != nil {
			return nil, fmt.Errorf("unrecognized end date %q", row.EndDateSTR)
		}
	}
	return activity, nil
}
