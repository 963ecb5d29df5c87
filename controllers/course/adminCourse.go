package controllers

import (
	"academia/database"
	"academia/middleware"
	courseModels "academia/models/course"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateCourse creates a new course
func AdminCreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title                  string `json:"title"`
		Description            string `json:"description"`
		Category               string `json:"category"`
		DurationLabel          string `json:"duration_label"`
		Level                  string `json:"level"`
		Instructor             string `json:"instructor"`
		CoverImageURL          string `json:"cover_image_url"`
		EnrollmentKey          string `json:"enrollment_key"`
		CertificateTemplateURL string `json:"certificate_template_url"`
		ReportEmail            string `json:"report_email"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.Course{
		Title:                  reqData.Title,
		Description:            reqData.Description,
		Category:               reqData.Category,
		DurationLabel:          reqData.DurationLabel,
		Level:                  reqData.Level,
		Instructor:             reqData.Instructor,
		CoverImageURL:          reqData.CoverImageURL,
		EnrollmentKey:          reqData.EnrollmentKey,
		CertificateTemplateURL: reqData.CertificateTemplateURL,
		ReportEmail:            reqData.ReportEmail,
		IsActive:               true,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AdminUpdateCourse updates an existing course
func AdminUpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title                  string `json:"title"`
		Description            string `json:"description"`
		Category               string `json:"category"`
		DurationLabel          string `json:"duration_label"`
		Level                  string `json:"level"`
		Instructor             string `json:"instructor"`
		CoverImageURL          string `json:"cover_image_url"`
		EnrollmentKey          string `json:"enrollment_key"`
		CertificateTemplateURL string `json:"certificate_template_url"`
		ReportEmail            string `json:"report_email"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Update only provided fields
	if reqData.Title != "" {
		course.Title = reqData.Title
	}
	if reqData.Description != "" {
		course.Description = reqData.Description
	}
	if reqData.Category != "" {
		course.Category = reqData.Category
	}
	if reqData.DurationLabel != "" {
		course.DurationLabel = reqData.DurationLabel
	}
	if reqData.Level != "" {
		course.Level = reqData.Level
	}
	if reqData.Instructor != "" {
		course.Instructor = reqData.Instructor
	}
	if reqData.CoverImageURL != "" {
		course.CoverImageURL = reqData.CoverImageURL
	}
	if reqData.EnrollmentKey != "" {
		course.EnrollmentKey = reqData.EnrollmentKey
	}
	if reqData.CertificateTemplateURL != "" {
		course.CertificateTemplateURL = reqData.CertificateTemplateURL
	}
	if reqData.ReportEmail != "" {
		course.ReportEmail = reqData.ReportEmail
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// AdminSetCourseActive activates or deactivates a course
func AdminSetCourseActive(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	active := c.Locals("activeStatus").(bool)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsActive = active
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	message := "Course deactivated successfully!"
	if active {
		message = "Course activated successfully!"
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, course)
}

// AdminDeleteCourse soft deletes a course together with its blocks
func AdminDeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	tx := database.Database.Db.Begin()

	course.IsDeleted = true
	if err := tx.Save(&course).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	// Blocks live and die with their owning course
	if err := tx.Model(&courseModels.ContentBlock{}).Where("course_id = ?", courseID).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course blocks!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// AdminGetAllCourses lists all courses for administration
func AdminGetAllCourses(c *fiber.Ctx) error {
	var courses []courseModels.Course
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"total":   len(courses),
	})
}

// AdminGetCourseDetails gets one course with its full block list
func AdminGetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var blocks []courseModels.ContentBlock
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&blocks)

	// Key is stripped from JSON; admins need it back explicitly
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":         course,
		"enrollment_key": course.EnrollmentKey,
		"blocks":         blocks,
	})
}
