package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/unidesk/go-enroll/internal/csvio"
	"github.com/unidesk/go-enroll/internal/scheduler"
)

// Program parameters
var cfg = &scheduler.Configuration{
	CoursesFile:    "./res/courses.csv",
	ActivitiesFile: "./res/activities.csv",
	ExportFile:     "timetable.csv",
}

func main() {
	mgr := scheduler.NewCourseManager(nil)

	courses, bad, report := csvio.LoadCatalog(cfg, ';', mgr.NextActivityID)
	if bad {
		fmt.Println(report)
	}
	for _, c := range courses {
		if err := mgr.AddCourse(c); err != nil {
			fmt.Println("skipping " + c.Code + ": " + err.Error())
		}
	}
	fmt.Printf("Loaded %d courses.\n\n", len(courses))

	in := bufio.NewScanner(os.Stdin)
	email := prompt(in, "Student email: ")
	if email == "" {
		return
	}

	for {
		fmt.Println()
		fmt.Println("1) List courses")
		fmt.Println("2) Enroll in a course")
		fmt.Println("3) Choose an activity")
		fmt.Println("4) Drop a course")
		fmt.Println("5) Show timetable")
		fmt.Println("6) Export timetable to " + cfg.ExportFile)
		fmt.Println("0) Quit")

		switch prompt(in, "> ") {
		case "1":
			for _, c := range mgr.Courses() {
				fmt.Printf("%-10s %s (labs required: %d, tutorials required: %d)\n",
					c.Code, c.Name, c.RequiredLabs, c.RequiredTutorials)
				for _, a := range c.Activities() {
					fmt.Printf("    #%-4d %-9s %-10s %s-%s %s\n",
						a.ID, a.Type, a.Day, a.Start, a.End, a.Location)
				}
			}
		case "2":
			code := prompt(in, "Course code: ")
			result, err := mgr.AddCourseToTimetable(email, code)
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Printf("Enrolled in %s: %d slots added. Lectures are chosen for you;\n", code, len(result.Slots))
			fmt.Println("labs and tutorials stay unchosen until you pick them.")
		case "3":
			code := prompt(in, "Course code: ")
			id, err := strconv.Atoi(prompt(in, "Activity id: "))
			if err != nil {
				fmt.Println(scheduler.ErrInvalidActivityID)
				continue
			}
			result, err := mgr.ChooseActivityForCourse(email, code, id)
			var conflict *scheduler.ConflictError
			if errors.As(err, &conflict) {
				fmt.Printf("Cannot choose: %v. Pick a different slot.\n", conflict)
				continue
			}
			if err != nil {
				fmt.Println(err)
				continue
			}
			if result.AlreadyChosen {
				fmt.Println("Already chosen.")
				continue
			}
			if remaining := result.Remaining(); remaining > 0 {
				fmt.Printf("Chosen. %d more %s(s) required for %s.\n", remaining, strings.ToLower(result.Type.String()), code)
			} else {
				fmt.Printf("Chosen. %s requirement for %s satisfied.\n", result.Type, code)
			}
		case "4":
			code := prompt(in, "Course code: ")
			if err := mgr.RemoveCourseFromTimetable(email, code); err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println("Dropped " + code + ".")
		case "5":
			t, ok := mgr.Timetable(email)
			if !ok {
				fmt.Println(scheduler.ErrNoTimetable)
				continue
			}
			csvio.PrintTimetable(t)
		case "6":
			t, ok := mgr.Timetable(email)
			if !ok {
				fmt.Println(scheduler.ErrNoTimetable)
				continue
			}
			if err := csvio.ExportTimetable(t, cfg.ExportFile); err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println("Exported to " + cfg.ExportFile)
		case "0", "":
			return
		}
	}
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}
