package scheduler

type Configuration struct {
	CoursesFile    string
	ActivitiesFile string
	ExportFile     string
	ListenAddr     string
}

func NewDefaultConfiguration() *Configuration {
	return &Configuration{
		CoursesFile:    "./res/courses.csv",
		ActivitiesFile: "./res/activities.csv",
		ExportFile:     "timetable.csv",
		ListenAddr:     ":3001",
	}
}
