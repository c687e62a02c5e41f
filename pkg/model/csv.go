package model

type CourseCSVRow struct {
	Code              string `csv:"course_code"`
	Name              string `csv:"name"`
	Description       string `csv:"description"`
	RequiresComputers bool   `csv:"requires_computers"`
	OrganiserName     string `csv:"organiser_name"`
	OrganiserEmail    string `csv:"organiser_email"`
	SecretaryName     string `csv:"secretary_name"`
	SecretaryEmail    string `csv:"secretary_email"`
	RequiredTutorials int    `csv:"required_tutorials"`
	RequiredLabs      int    `csv:"required_labs"`
}

type ActivityCSVRow struct {
	CourseCode   string `csv:"course_code"`
	TypeSTR      string `csv:"type"`
	DaySTR       string `csv:"day"`
	StartSTR     string `csv:"start"`
	EndSTR       string `csv:"end"`
	StartDateSTR string `csv:"start_date"`
	EndDateSTR   string `csv:"end_date"`
	Location     string `csv:"location"`
	Recorded     bool   `csv:"recorded"`
	Capacity     int    `csv:"capacity"`
}

type TimetableCSVRow struct {
	Day        string `csv:"day"`
	Start      string `csv:"start"`
	End        string `csv:"end"`
	CourseCode string `csv:"course_code"`
	ActivityID int    `csv:"activity_id"`
	Type       string `csv:"type"`
}
