package csvio

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/unidesk/go-enroll/pkg/model"
)

// ExportTimetable formats the chosen slots into TimetableCSVRow structs
// and writes them to the CSV file specified by the given path.
func ExportTimetable(t *model.Timetable, path string) error {
	nice := formatTimetable(t)
	// Remove file if exists
	_, err := os.Stat(path)
	if err == nil {
		os.Remove(path)
	}

	out, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, os.ModePerm)
	if err != nil {
		return err
	}
	defer out.Close()

	return gocsv.MarshalFile(&nice, out)
}

// ExportTimetableString renders the chosen slots as a CSV string.
func ExportTimetableString(t *model.Timetable) (string, error) {
	nice := formatTimetable(t)
	return gocsv.MarshalString(&nice)
}

// PrintTimetable prints the student's chosen slots, one line per slot,
// ordered by day then start time.
func PrintTimetable(t *model.Timetable) {
	nice := formatTimetable(t)
	fmt.Printf("Timetable of %s\n", t.Owner)
	for _, row := range nice {
		fmt.Printf("%-10s %s-%s   %-10s %-9s #%d\n", row.Day, row.Start, row.End, row.CourseCode, row.Type, row.ActivityID)
	}
	fmt.Printf("Printed rows: %d\n", len(nice))
}

func formatTimetable(t *model.Timetable) []*model.TimetableCSVRow {
	var formatted []*model.TimetableCSVRow
	for _, s := range t.ChosenSlots() {
		formatted = append(formatted, &model.TimetableCSVRow{
			Day:        s.Day.String(),
			Start:      s.Start.String(),
			End:        s.End.String(),
			CourseCode: s.CourseCode,
			ActivityID: s.ActivityID,
			Type:       s.Type.String(),
		})
	}
	return formatted
}
