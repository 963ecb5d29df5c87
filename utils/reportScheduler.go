package utils

import (
	"academia/config"
	"academia/database"
	courseModels "academia/models/course"
	"log"
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[REPORT-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartReportScheduler runs the daily participation report for every active
// course that has a report email configured.
func StartReportScheduler() *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc(config.AppConfig.ReportCron, sendDailyReports)
	if err != nil {
		logScheduler("Invalid REPORT_CRON expression, scheduler disabled: " + err.Error())
		return c
	}

	c.Start()
	logScheduler("Daily report scheduler started (" + config.AppConfig.ReportCron + ")")
	return c
}

func sendDailyReports() {
	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Where("is_active = ? AND is_deleted = ? AND report_email <> ''", true, false).
		Find(&courses).Error; err != nil {
		logScheduler("Error fetching courses: " + err.Error())
		return
	}

	// Yesterday's window, for the activity summary line
	dayStart := now.BeginningOfDay().AddDate(0, 0, -1)
	dayEnd := now.BeginningOfDay()

	for _, course := range courses {
		var enrollments []courseModels.Enrollment
		if err := db.Where("course_id = ? AND is_deleted = ?", course.ID, false).
			Order("created_at asc").Find(&enrollments).Error; err != nil {
			logScheduler("Error fetching enrollments for course " + course.Title + ": " + err.Error())
			continue
		}

		if len(enrollments) == 0 {
			continue
		}

		var newEnrollments int64
		db.Model(&courseModels.Enrollment{}).
			Where("course_id = ? AND is_deleted = ? AND created_at >= ? AND created_at < ?",
				course.ID, false, dayStart, dayEnd).
			Count(&newEnrollments)

		// Notify Destination (Async)
		go func(c courseModels.Course, e []courseModels.Enrollment, fresh int64) {
			if err := SendCourseReportEmail(c.ReportEmail, c, e, fresh); err != nil {
				logScheduler("Failed to send report for course " + c.Title + ": " + err.Error())
				return
			}
			logScheduler("Report sent for course " + c.Title)
		}(course, enrollments, newEnrollments)
	}
}
