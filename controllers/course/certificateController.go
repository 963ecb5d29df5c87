package controllers

import (
	"academia/database"
	"academia/middleware"
	courseModels "academia/models/course"
	"academia/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// IssueCertificate generates a completion certificate for a learner.
// Idempotent: an already issued certificate is returned as-is.
func IssueCertificate(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	document := c.Locals("document").(string)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("document = ? AND course_id = ? AND is_deleted = ?",
		document, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Learner not enrolled in this course!", nil)
	}

	if !enrollment.Completed {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please complete the course before requesting a certificate!", nil)
	}

	var existingCert courseModels.Certificate
	if err := database.Database.Db.Where("document = ? AND course_id = ? AND is_deleted = ?",
		document, courseID, false).First(&existingCert).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate already issued!", existingCert)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	completedAt := time.Now()
	if enrollment.CompletedAt != nil {
		completedAt = *enrollment.CompletedAt
	}

	certNumber := uuid.NewString()
	fileURL, err := utils.RenderCertificate(utils.CertificateData{
		LearnerName:       enrollment.FullName,
		Document:          enrollment.Document,
		CourseTitle:       course.Title,
		Instructor:        course.Instructor,
		CompletionDate:    completedAt,
		CertificateNumber: certNumber,
		TemplateURL:       course.CertificateTemplateURL,
	})
	if err != nil {
		log.Printf("Certificate rendering failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate certificate!", nil)
	}

	cert := courseModels.Certificate{
		CourseID:          uint(courseID),
		Document:          enrollment.Document,
		FullName:          enrollment.FullName,
		CertificateURL:    fileURL,
		CertificateNumber: certNumber,
		IssuedAt:          time.Now(),
	}

	if err := database.Database.Db.Create(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save certificate!", nil)
	}

	if enrollment.Email != "" {
		utils.SendCertificateEmail(enrollment.Email, enrollment.FullName, course.Title, fileURL)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate issued successfully!", cert)
}

// GetCertificate fetches a learner's certificate for a course
func GetCertificate(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	document := c.Locals("document").(string)

	var cert courseModels.Certificate
	if err := database.Database.Db.Where("document = ? AND course_id = ? AND is_deleted = ?",
		document, courseID, false).First(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate fetched successfully!", cert)
}
