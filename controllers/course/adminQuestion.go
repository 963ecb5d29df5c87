package controllers

import (
	"academia/database"
	"academia/middleware"
	courseModels "academia/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminAddQuestion adds a blank question to a quiz block: multiple-choice,
// two empty options, the first marked correct.
func AdminAddQuestion(c *fiber.Ctx) error {
	blockID := c.Locals("blockID").(int)

	var block courseModels.ContentBlock
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", blockID, false).First(&block).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Block not found!", nil)
	}

	if block.Type != courseModels.BlockQuiz {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Block is not a quiz!", nil)
	}

	var maxOrder int
	database.Database.Db.Model(&courseModels.Question{}).
		Where("block_id = ? AND is_deleted = ?", blockID, false).
		Select("COALESCE(MAX(order_index), -1)").Scan(&maxOrder)

	question := courseModels.Question{
		BlockID:    uint(blockID),
		UID:        uuid.NewString(),
		Kind:       courseModels.KindMultipleChoice,
		OrderIndex: maxOrder + 1,
	}

	tx := database.Database.Db.Begin()

	if err := tx.Create(&question).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add question!", nil)
	}

	options := []courseModels.QuestionOption{
		{QuestionID: question.ID, IsCorrect: true, OrderIndex: 0},
		{QuestionID: question.ID, IsCorrect: false, OrderIndex: 1},
	}
	if err := tx.Create(&options).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add question options!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question added successfully!", fiber.Map{
		"question": question,
		"options":  options,
	})
}

// AdminUpdateQuestion updates question fields
func AdminUpdateQuestion(c *fiber.Ctx) error {
	questionID := c.Locals("questionID").(int)

	var question courseModels.Question
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	reqData, ok := c.Locals("validatedQuestionUpdate").(*struct {
		Prompt           string `json:"prompt"`
		Kind             string `json:"kind"`
		PositiveFeedback string `json:"positive_feedback"`
		NegativeFeedback string `json:"negative_feedback"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Prompt != "" {
		question.Prompt = reqData.Prompt
	}
	if reqData.Kind != "" {
		question.Kind = reqData.Kind
	}
	if reqData.PositiveFeedback != "" {
		question.PositiveFeedback = reqData.PositiveFeedback
	}
	if reqData.NegativeFeedback != "" {
		question.NegativeFeedback = reqData.NegativeFeedback
	}

	if err := database.Database.Db.Save(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question updated successfully!", question)
}

// AdminToggleMultipleAnswers switches a question between single and multiple
// answer mode. Turning multiple off keeps only the first correct option
// correct, so the single-answer cardinality always holds.
func AdminToggleMultipleAnswers(c *fiber.Ctx) error {
	questionID := c.Locals("questionID").(int)

	var question courseModels.Question
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	if question.Kind != courseModels.KindMultipleChoice {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Only multiple-choice questions support answer modes!", nil)
	}

	tx := database.Database.Db.Begin()

	question.MultipleAnswers = !question.MultipleAnswers
	if err := tx.Save(&question).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update question!", nil)
	}

	if !question.MultipleAnswers {
		var correct []courseModels.QuestionOption
		tx.Where("question_id = ? AND is_correct = ? AND is_deleted = ?", questionID, true, false).
			Order("order_index asc").Find(&correct)
		for i := 1; i < len(correct); i++ {
			if err := tx.Model(&courseModels.QuestionOption{}).Where("id = ?", correct[i].ID).
				Update("is_correct", false).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update options!", nil)
			}
		}
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer mode updated successfully!", question)
}

// AdminDeleteQuestion soft deletes a question with its options
func AdminDeleteQuestion(c *fiber.Ctx) error {
	questionID := c.Locals("questionID").(int)

	var question courseModels.Question
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	tx := database.Database.Db.Begin()

	question.IsDeleted = true
	if err := tx.Save(&question).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	if err := tx.Model(&courseModels.QuestionOption{}).Where("question_id = ?", questionID).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete options!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully!", nil)
}

// AdminAddOption adds an option to a multiple-choice question
func AdminAddOption(c *fiber.Ctx) error {
	questionID := c.Locals("questionID").(int)

	var question courseModels.Question
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	if question.Kind != courseModels.KindMultipleChoice {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Question is not multiple-choice!", nil)
	}

	reqData, ok := c.Locals("validatedOption").(*struct {
		OptionText string `json:"option_text"`
		IsCorrect  bool   `json:"is_correct"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Single-answer questions keep exactly one correct option
	if reqData.IsCorrect && !question.MultipleAnswers {
		var correctCount int64
		database.Database.Db.Model(&courseModels.QuestionOption{}).
			Where("question_id = ? AND is_correct = ? AND is_deleted = ?", questionID, true, false).Count(&correctCount)
		if correctCount > 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Question already has a correct answer. Enable multiple answers first!", nil)
		}
	}

	var maxOrder int
	database.Database.Db.Model(&courseModels.QuestionOption{}).
		Where("question_id = ? AND is_deleted = ?", questionID, false).
		Select("COALESCE(MAX(order_index), -1)").Scan(&maxOrder)

	option := courseModels.QuestionOption{
		QuestionID: uint(questionID),
		OptionText: reqData.OptionText,
		IsCorrect:  reqData.IsCorrect,
		OrderIndex: maxOrder + 1,
	}

	if err := database.Database.Db.Create(&option).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add option!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Option added successfully!", option)
}

// AdminUpdateOption updates an option
func AdminUpdateOption(c *fiber.Ctx) error {
	optionID := c.Locals("optionID").(int)

	var option courseModels.QuestionOption
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", optionID, false).First(&option).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Option not found!", nil)
	}

	reqData, ok := c.Locals("validatedOptionUpdate").(*struct {
		OptionText string `json:"option_text"`
		IsCorrect  *bool  `json:"is_correct"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.OptionText != "" {
		option.OptionText = reqData.OptionText
	}
	if reqData.IsCorrect != nil && *reqData.IsCorrect != option.IsCorrect {
		var question courseModels.Question
		if err := database.Database.Db.Where("id = ?", option.QuestionID).First(&question).Error; err == nil {
			// Marking a new correct option on a single-answer question
			// demotes the previous one
			if *reqData.IsCorrect && !question.MultipleAnswers {
				database.Database.Db.Model(&courseModels.QuestionOption{}).
					Where("question_id = ? AND is_deleted = ?", option.QuestionID, false).
					Update("is_correct", false)
			}
		}
		option.IsCorrect = *reqData.IsCorrect
	}

	if err := database.Database.Db.Save(&option).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update option!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Option updated successfully!", option)
}

// AdminDeleteOption soft deletes an option
func AdminDeleteOption(c *fiber.Ctx) error {
	optionID := c.Locals("optionID").(int)

	var option courseModels.QuestionOption
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", optionID, false).First(&option).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Option not found!", nil)
	}

	option.IsDeleted = true
	if err := database.Database.Db.Save(&option).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete option!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Option deleted successfully!", nil)
}

// AdminGetBlockQuestions lists a quiz block's questions with their options
func AdminGetBlockQuestions(c *fiber.Ctx) error {
	blockID := c.Locals("blockID").(int)

	var block courseModels.ContentBlock
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", blockID, false).First(&block).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Block not found!", nil)
	}

	var questions []courseModels.Question
	database.Database.Db.Where("block_id = ? AND is_deleted = ?", blockID, false).
		Order("order_index asc").Find(&questions)

	type QuestionWithOptions struct {
		courseModels.Question
		Options []courseModels.QuestionOption `json:"options"`
	}

	result := make([]QuestionWithOptions, len(questions))
	for i, q := range questions {
		var options []courseModels.QuestionOption
		database.Database.Db.Where("question_id = ? AND is_deleted = ?", q.ID, false).
			Order("order_index asc").Find(&options)
		result[i] = QuestionWithOptions{Question: q, Options: options}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions fetched successfully!", fiber.Map{
		"questions": result,
		"total":     len(result),
	})
}
