package controllers

import (
	"academia/database"
	"academia/middleware"
	courseModels "academia/models/course"

	"github.com/gofiber/fiber/v2"
)

// VerifyEnrollmentKey checks the supplied key against the course's
// configured key. Exact string equality, case-sensitive, no trimming.
func VerifyEnrollmentKey(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_active = ? AND is_deleted = ?", courseID, true, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not active!", nil)
	}

	reqData, ok := c.Locals("validatedKey").(*struct {
		EnrollmentKey string `json:"enrollment_key"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.EnrollmentKey != course.EnrollmentKey {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Incorrect enrollment key!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment key accepted!", nil)
}

// EnrollInCourse enrolls a learner after verifying the enrollment key
func EnrollInCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_active = ? AND is_deleted = ?", courseID, true, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not active!", nil)
	}

	reqData, ok := c.Locals("validatedEnrollment").(*struct {
		EnrollmentKey string `json:"enrollment_key"`
		FullName      string `json:"full_name"`
		Document      string `json:"document"`
		Email         string `json:"email"`
		JobTitle      string `json:"job_title"`
		Company       string `json:"company"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.EnrollmentKey != course.EnrollmentKey {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Incorrect enrollment key!", nil)
	}

	// Check if learner is already enrolled
	var existingEnrollment courseModels.Enrollment
	if err := database.Database.Db.Where("document = ? AND course_id = ? AND is_deleted = ?",
		reqData.Document, courseID, false).First(&existingEnrollment).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Learner already enrolled in this course!", nil)
	}

	enrollment := courseModels.Enrollment{
		CourseID: uint(courseID),
		Document: reqData.Document,
		FullName: reqData.FullName,
		Email:    reqData.Email,
		JobTitle: reqData.JobTitle,
		Company:  reqData.Company,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

// GetEnrollment fetches a learner's enrollment record for a course
func GetEnrollment(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	document := c.Locals("document").(string)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("document = ? AND course_id = ? AND is_deleted = ?",
		document, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment fetched successfully!", enrollment)
}

// SubmitRating stores a learner's course rating, overwriting any earlier one
func SubmitRating(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedRating").(*struct {
		Document string `json:"document"`
		Stars    int    `json:"stars"`
		Comment  string `json:"comment"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("document = ? AND course_id = ? AND is_deleted = ?",
		reqData.Document, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Learner not enrolled in this course!", nil)
	}

	var rating courseModels.CourseRating
	err := database.Database.Db.Where("document = ? AND course_id = ? AND is_deleted = ?",
		reqData.Document, courseID, false).First(&rating).Error
	if err != nil {
		rating = courseModels.CourseRating{
			CourseID: uint(courseID),
			Document: reqData.Document,
		}
	}
	rating.Stars = reqData.Stars
	rating.Comment = reqData.Comment

	if err := database.Database.Db.Save(&rating).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit rating!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Rating submitted successfully!", rating)
}
