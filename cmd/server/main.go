package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/unidesk/go-enroll/internal/csvio"
	"github.com/unidesk/go-enroll/internal/scheduler"
	"github.com/unidesk/go-enroll/pkg/logger"
)

var mgr *scheduler.CourseManager
var log *zap.Logger

func main() {
	// .env is optional; real environments set the variables directly.
	godotenv.Load()

	var err error
	log, err = logger.New(envOr("LOG_LEVEL", "info"), envOr("LOG_FORMAT", "console"))
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := scheduler.NewDefaultConfiguration()
	if v := os.Getenv("COURSES_FILE"); v != "" {
		cfg.CoursesFile = v
	}
	if v := os.Getenv("ACTIVITIES_FILE"); v != "" {
		cfg.ActivitiesFile = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}

	mgr = scheduler.NewCourseManager(log)
	courses, bad, report := csvio.LoadCatalog(cfg, ';', mgr.NextActivityID)
	if bad {
		log.Warn("catalog seed had problems", zap.String("report", report))
	}
	for _, c := range courses {
		if err := mgr.AddCourse(c); err != nil {
			log.Warn("skipping course", zap.String("course", c.Code), zap.Error(err))
		}
	}
	log.Info("catalog seeded", zap.Int("courses", len(courses)))

	r := gin.Default()

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-Id", uuid.NewString())
		c.Next()
	})

	r.GET("/courses", handleListCourses)
	r.GET("/courses/:code", handleGetCourse)
	r.POST("/courses", handleCreateCourse)
	r.DELETE("/courses/:code", handleRemoveCourse)

	r.POST("/students/:email/courses/:code", handleEnroll)
	r.DELETE("/students/:email/courses/:code", handleDrop)
	r.POST("/students/:email/courses/:code/activities/:id", handleChoose)
	r.GET("/students/:email/timetable", handleGetTimetable)
	r.GET("/students/:email/timetable.csv", handleGetTimetableCSV)
	r.GET("/students/:email/timetable.ics", handleGetTimetableICS)
	r.GET("/students/:email/timetable.xlsx", handleGetTimetableXLSX)

	r.GET("/validate", handleValidate)

	r.Run(cfg.ListenAddr)
}

func envOr(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
