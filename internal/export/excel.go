package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/unidesk/go-enroll/pkg/model"
)

const sheetName = "Timetable"

// TimetableXLSX renders the student's chosen slots as a workbook, one row
// per slot ordered by day then start time. The caller owns the returned
// file and must Close it.
func TimetableXLSX(t *model.Timetable) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		f.Close()
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Timetable — %s", t.Owner))
	f.MergeCell(sheetName, "A1", "F1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	headers := []string{"Day", "Start", "End", "Course", "Activity", "Type"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}
	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "D", "D", 14)

	row := 3
	for _, s := range t.ChosenSlots() {
		values := []interface{}{s.Day.String(), s.Start.String(), s.End.String(), s.CourseCode, s.ActivityID, s.Type.String()}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheetName, cell, v)
		}
		row++
	}

	return f, nil
}
