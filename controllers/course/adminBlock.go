package controllers

import (
	"academia/database"
	"academia/middleware"
	courseModels "academia/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// renumberBlocks rewrites order_index contiguously for a course's live
// blocks. Called after any structural mutation so the order field never
// drifts from the display sequence.
func renumberBlocks(tx *gorm.DB, courseID uint) error {
	var blocks []courseModels.ContentBlock
	if err := tx.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&blocks).Error; err != nil {
		return err
	}
	for i := range blocks {
		if blocks[i].OrderIndex != i {
			if err := tx.Model(&courseModels.ContentBlock{}).Where("id = ?", blocks[i].ID).
				Update("order_index", i).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// AdminCreateBlock appends a new content block to a course
func AdminCreateBlock(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedBlock").(*struct {
		Type            string `json:"type"`
		Title           string `json:"title"`
		DurationMinutes *int   `json:"duration_minutes"`
		BodyText        string `json:"body_text"`
		VideoURL        string `json:"video_url"`
		FileURL         string `json:"file_url"`
		PassPercent     *int   `json:"pass_percent"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	duration := courseModels.DefaultDuration(reqData.Type)
	if reqData.DurationMinutes != nil {
		duration = *reqData.DurationMinutes
	}

	passPercent := 100
	if reqData.PassPercent != nil {
		passPercent = *reqData.PassPercent
	}

	// New blocks go to the end of the sequence
	var maxOrder int
	database.Database.Db.Model(&courseModels.ContentBlock{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Select("COALESCE(MAX(order_index), -1)").Scan(&maxOrder)

	block := courseModels.ContentBlock{
		CourseID:        uint(courseID),
		Type:            reqData.Type,
		Title:           reqData.Title,
		DurationMinutes: duration,
		OrderIndex:      maxOrder + 1,
		BodyText:        reqData.BodyText,
		VideoURL:        reqData.VideoURL,
		FileURL:         reqData.FileURL,
		PassPercent:     passPercent,
	}

	if err := database.Database.Db.Create(&block).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create block!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Block created successfully!", block)
}

// AdminUpdateBlock updates block fields
func AdminUpdateBlock(c *fiber.Ctx) error {
	blockID := c.Locals("blockID").(int)

	var block courseModels.ContentBlock
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", blockID, false).First(&block).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Block not found!", nil)
	}

	reqData, ok := c.Locals("validatedBlockUpdate").(*struct {
		Title           string `json:"title"`
		DurationMinutes *int   `json:"duration_minutes"`
		BodyText        string `json:"body_text"`
		VideoURL        string `json:"video_url"`
		FileURL         string `json:"file_url"`
		PassPercent     *int   `json:"pass_percent"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		block.Title = reqData.Title
	}
	if reqData.DurationMinutes != nil {
		block.DurationMinutes = *reqData.DurationMinutes
	}
	if reqData.BodyText != "" {
		block.BodyText = reqData.BodyText
	}
	if reqData.VideoURL != "" {
		block.VideoURL = reqData.VideoURL
	}
	if reqData.FileURL != "" {
		block.FileURL = reqData.FileURL
	}
	if reqData.PassPercent != nil {
		block.PassPercent = *reqData.PassPercent
	}

	if err := database.Database.Db.Save(&block).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update block!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Block updated successfully!", block)
}

// AdminDeleteBlock soft deletes a block and renumbers the remaining sequence
func AdminDeleteBlock(c *fiber.Ctx) error {
	blockID := c.Locals("blockID").(int)

	var block courseModels.ContentBlock
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", blockID, false).First(&block).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Block not found!", nil)
	}

	tx := database.Database.Db.Begin()

	block.IsDeleted = true
	if err := tx.Save(&block).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete block!", nil)
	}

	// Questions and options go with the quiz block
	if block.Type == courseModels.BlockQuiz {
		var questionIDs []uint
		tx.Model(&courseModels.Question{}).Where("block_id = ?", blockID).Pluck("id", &questionIDs)
		if err := tx.Model(&courseModels.Question{}).Where("block_id = ?", blockID).Update("is_deleted", true).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete questions!", nil)
		}
		if len(questionIDs) > 0 {
			if err := tx.Model(&courseModels.QuestionOption{}).Where("question_id IN ?", questionIDs).Update("is_deleted", true).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete options!", nil)
			}
		}
	}

	if err := renumberBlocks(tx, block.CourseID); err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reorder blocks!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Block deleted successfully!", nil)
}

// AdminMoveBlock moves a block one position up or down in the sequence
func AdminMoveBlock(c *fiber.Ctx) error {
	blockID := c.Locals("blockID").(int)
	direction := c.Locals("moveDirection").(string) // "up" or "down"

	var block courseModels.ContentBlock
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", blockID, false).First(&block).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Block not found!", nil)
	}

	neighborOrder := block.OrderIndex - 1
	if direction == "down" {
		neighborOrder = block.OrderIndex + 1
	}

	var neighbor courseModels.ContentBlock
	if err := database.Database.Db.Where("course_id = ? AND order_index = ? AND is_deleted = ?",
		block.CourseID, neighborOrder, false).First(&neighbor).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Block is already at the edge of the sequence!", nil)
	}

	tx := database.Database.Db.Begin()

	block.OrderIndex, neighbor.OrderIndex = neighbor.OrderIndex, block.OrderIndex
	if err := tx.Save(&block).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to move block!", nil)
	}
	if err := tx.Save(&neighbor).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to move block!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Block moved successfully!", fiber.Map{
		"block":    block,
		"neighbor": neighbor,
	})
}

// AdminListBlocks lists a course's blocks in display order
func AdminListBlocks(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var blocks []courseModels.ContentBlock
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&blocks).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch blocks!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Blocks fetched successfully!", fiber.Map{
		"blocks": blocks,
		"total":  len(blocks),
	})
}
