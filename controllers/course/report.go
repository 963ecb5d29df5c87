package controllers

import (
	"academia/database"
	"academia/middleware"
	courseModels "academia/models/course"
	"academia/utils"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// AdminExportEnrollmentsCSV streams a course's enrollments as a CSV file.
// Zero enrollments is an error, not an empty file.
func AdminExportEnrollmentsCSV(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("created_at asc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	if len(enrollments) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No enrollments to export for this course!", nil)
	}

	data, err := utils.EnrollmentsCSV(enrollments)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate CSV!", nil)
	}

	filename := fmt.Sprintf("inscripciones_curso_%d.csv", courseID)
	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
	return c.Status(fiber.StatusOK).Send(data)
}

// AdminSendCourseReport sends the participation report email for a course.
// The destination defaults to the course's configured report email.
func AdminSendCourseReport(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	destination := course.ReportEmail
	if reqData, ok := c.Locals("validatedReport").(*struct {
		EmailDestino string `json:"emailDestino"`
	}); ok && reqData.EmailDestino != "" {
		destination = reqData.EmailDestino
	}

	if destination == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course has no report email configured!", nil)
	}

	var enrollments []courseModels.Enrollment
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("created_at asc").Find(&enrollments)

	var newEnrollments int64
	database.Database.Db.Model(&courseModels.Enrollment{}).
		Where("course_id = ? AND is_deleted = ? AND created_at >= ?",
			courseID, false, now.BeginningOfDay().AddDate(0, 0, -1)).
		Count(&newEnrollments)

	if err := utils.SendCourseReportEmail(destination, course, enrollments, newEnrollments); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to send report email!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Report email sent!", fiber.Map{
		"emailDestino":  destination,
		"participantes": len(enrollments),
	})
}

// AdminGetCourseEnrollments lists a course's enrollments with optional
// pagination
func AdminGetCourseEnrollments(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Enrollment{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false)

	var total int64
	db.Count(&total)

	var enrollments []courseModels.Enrollment
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// AdminGetCourseRatings lists a course's ratings with the average
func AdminGetCourseRatings(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var ratings []courseModels.CourseRating
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("created_at desc").Find(&ratings).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch ratings!", nil)
	}

	average := 0.0
	if len(ratings) > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r.Stars
		}
		average = float64(sum) / float64(len(ratings))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ratings fetched successfully!", fiber.Map{
		"ratings": ratings,
		"average": average,
		"total":   len(ratings),
	})
}
