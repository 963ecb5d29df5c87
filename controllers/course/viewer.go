package controllers

import (
	"academia/database"
	"academia/middleware"
	courseModels "academia/models/course"
	"log"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GetCourseBlocks lists the sorted block sequence for an enrolled learner
// with per-block completion flags. Quiz blocks report whether the learner
// currently has a passed attempt.
func GetCourseBlocks(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	document := c.Locals("document").(string)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("document = ? AND course_id = ? AND is_deleted = ?",
		document, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	var blocks []courseModels.ContentBlock
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&blocks).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch blocks!", nil)
	}

	type BlockWithState struct {
		courseModels.ContentBlock
		IsCompleted bool `json:"is_completed"`
		QuizPassed  bool `json:"quiz_passed,omitempty"`
	}

	result := make([]BlockWithState, len(blocks))
	for i, block := range blocks {
		result[i] = BlockWithState{ContentBlock: block}

		var completion courseModels.BlockCompletion
		if err := database.Database.Db.Where("document = ? AND block_id = ? AND is_deleted = ?",
			document, block.ID, false).First(&completion).Error; err == nil {
			result[i].IsCompleted = true
		}

		if block.Type == courseModels.BlockQuiz {
			result[i].QuizPassed = hasPassedAttempt(document, block.ID)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Blocks fetched successfully!", fiber.Map{
		"blocks":     result,
		"enrollment": enrollment,
	})
}

// MarkBlockComplete marks a block as completed by explicit learner action.
// Quiz blocks additionally require a passed attempt.
func MarkBlockComplete(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	blockID := c.Locals("blockID").(int)
	document := c.Locals("document").(string)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("document = ? AND course_id = ? AND is_deleted = ?",
		document, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Learner not enrolled in this course!", nil)
	}

	var block courseModels.ContentBlock
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?",
		blockID, courseID, false).First(&block).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Block not found!", nil)
	}

	if block.Type == courseModels.BlockQuiz && !hasPassedAttempt(document, block.ID) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You must pass the quiz before marking it as completed!", nil)
	}

	// Idempotent: completing twice is not an error
	var existing courseModels.BlockCompletion
	if err := database.Database.Db.Where("document = ? AND block_id = ? AND is_deleted = ?",
		document, blockID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Block already completed!", fiber.Map{
			"progress": enrollment.Progress,
		})
	}

	completion := courseModels.BlockCompletion{
		CourseID: uint(courseID),
		BlockID:  uint(blockID),
		Document: document,
	}
	if err := database.Database.Db.Create(&completion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark block as completed!", nil)
	}

	updateEnrollmentProgress(document, uint(courseID))

	database.Database.Db.Where("document = ? AND course_id = ? AND is_deleted = ?",
		document, courseID, false).First(&enrollment)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Block marked as completed!", fiber.Map{
		"progress":  enrollment.Progress,
		"completed": enrollment.Completed,
	})
}

// GetProgress reports the learner's progress in a course
func GetProgress(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	document := c.Locals("document").(string)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("document = ? AND course_id = ? AND is_deleted = ?",
		document, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Learner not enrolled in this course!", nil)
	}

	var completions []courseModels.BlockCompletion
	database.Database.Db.Where("document = ? AND course_id = ? AND is_deleted = ?",
		document, courseID, false).Find(&completions)

	completedIDs := make([]uint, len(completions))
	for i, cc := range completions {
		completedIDs[i] = cc.BlockID
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment":    enrollment,
		"completed_ids": completedIDs,
	})
}

// hasPassedAttempt reports whether the learner's latest graded attempt on a
// quiz block passed.
func hasPassedAttempt(document string, blockID uint) bool {
	var attempt courseModels.QuizAttempt
	err := database.Database.Db.Where("document = ? AND block_id = ? AND status = ? AND is_deleted = ?",
		document, blockID, courseModels.AttemptGraded, false).
		Order("attempt_number desc").First(&attempt).Error
	return err == nil && attempt.Passed
}

// updateEnrollmentProgress recomputes progress from completion rows. The
// client never supplies a percentage; the server derives it, which removes
// the lost-update hazard of trusting concurrent clients.
func updateEnrollmentProgress(document string, courseID uint) {
	var totalBlocks int64
	var completedBlocks int64

	database.Database.Db.Model(&courseModels.ContentBlock{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&totalBlocks)
	database.Database.Db.Model(&courseModels.BlockCompletion{}).
		Where("document = ? AND course_id = ? AND is_deleted = ?", document, courseID, false).Count(&completedBlocks)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("document = ? AND course_id = ? AND is_deleted = ?",
		document, courseID, false).First(&enrollment).Error; err != nil {
		return
	}

	if totalBlocks > 0 {
		enrollment.Progress = int(math.Round(100 * float64(completedBlocks) / float64(totalBlocks)))
	}

	if enrollment.Progress >= 100 && !enrollment.Completed {
		enrollment.Completed = true
		now := time.Now()
		enrollment.CompletedAt = &now
	}

	if err := database.Database.Db.Save(&enrollment).Error; err != nil {
		log.Printf("Failed to save progress for document %s in course %d: %v", document, courseID, err)
	}
}
