package controllers

import (
	"academia/database"
	"academia/middleware"
	courseModels "academia/models/course"
	"academia/utils"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ShuffledOption is an option as shown to the learner: correctness stripped
type ShuffledOption struct {
	ID         uint   `json:"id"`
	OptionText string `json:"option_text"`
}

// ShuffledQuestion is a question in attempt order
type ShuffledQuestion struct {
	ID              uint             `json:"id"`
	UID             string           `json:"uid"`
	Prompt          string           `json:"prompt"`
	Kind            string           `json:"kind"`
	MultipleAnswers bool             `json:"multiple_answers"`
	Options         []ShuffledOption `json:"options,omitempty"`
}

// AttemptAnswer is the learner's answer to one question
type AttemptAnswer struct {
	SelectedOptionIDs []uint `json:"selected_option_ids,omitempty"`
	Text              string `json:"text,omitempty"`
}

// buildShuffledQuestions loads a block's questions in the permutation fixed
// by the attempt seed. Option order is shuffled independently per question.
// Learners answer with option ids, so a display shuffle can never detach an
// option from its correctness.
func buildShuffledQuestions(blockID uint, seed int64) ([]ShuffledQuestion, error) {
	var questions []courseModels.Question
	if err := database.Database.Db.Where("block_id = ? AND is_deleted = ?", blockID, false).
		Order("order_index asc").Find(&questions).Error; err != nil {
		return nil, err
	}

	order := utils.ShuffledOrder(seed, len(questions))
	result := make([]ShuffledQuestion, 0, len(questions))

	for _, idx := range order {
		q := questions[idx]
		sq := ShuffledQuestion{
			ID:              q.ID,
			UID:             q.UID,
			Prompt:          q.Prompt,
			Kind:            q.Kind,
			MultipleAnswers: q.MultipleAnswers,
		}

		if q.Kind == courseModels.KindMultipleChoice {
			var options []courseModels.QuestionOption
			if err := database.Database.Db.Where("question_id = ? AND is_deleted = ?", q.ID, false).
				Order("order_index asc").Find(&options).Error; err != nil {
				return nil, err
			}
			// Per-question sub-seed keeps option order independent of
			// question order
			optOrder := utils.ShuffledOrder(seed+int64(q.ID), len(options))
			for _, oi := range optOrder {
				sq.Options = append(sq.Options, ShuffledOption{
					ID:         options[oi].ID,
					OptionText: options[oi].OptionText,
				})
			}
		}

		result = append(result, sq)
	}

	return result, nil
}

// StartQuizAttempt opens (or resumes) an attempt on a quiz block. A fresh
// attempt gets a new shuffle seed; resuming an in-progress attempt returns
// the same permutation. Blocks with a duration get a force-submit deadline.
func StartQuizAttempt(c *fiber.Ctx) error {
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

	if block.Type != courseModels.BlockQuiz {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Block is not a quiz!", nil)
	}

	var questions []courseModels.Question
	if err := database.Database.Db.Where("block_id = ? AND is_deleted = ?", blockID, false).
		Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load questions!", nil)
	}
	if len(questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Quiz has no questions yet!", nil)
	}

	// Every multiple-choice question must be answerable before the quiz
	// opens: at least two options, a correct one, and exactly one correct
	// in single-answer mode. Option edits can break this after authoring.
	for _, q := range questions {
		if q.Kind != courseModels.KindMultipleChoice {
			continue
		}

		var optionCount, correctCount int64
		database.Database.Db.Model(&courseModels.QuestionOption{}).
			Where("question_id = ? AND is_deleted = ?", q.ID, false).Count(&optionCount)
		database.Database.Db.Model(&courseModels.QuestionOption{}).
			Where("question_id = ? AND is_correct = ? AND is_deleted = ?", q.ID, true, false).Count(&correctCount)

		if optionCount < 2 || correctCount == 0 || (!q.MultipleAnswers && correctCount != 1) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Quiz has questions without a valid answer set. Please contact the course administrator!", nil)
		}
	}

	// Resume an open attempt instead of reshuffling mid-attempt
	var attempt courseModels.QuizAttempt
	err := database.Database.Db.Where("document = ? AND block_id = ? AND status = ? AND is_deleted = ?",
		document, blockID, courseModels.AttemptInProgress, false).
		Order("attempt_number desc").First(&attempt).Error

	if err != nil {
		// No open attempt; a passed one means there is nothing to retry
		var last courseModels.QuizAttempt
		if err := database.Database.Db.Where("document = ? AND block_id = ? AND is_deleted = ?",
			document, blockID, false).Order("attempt_number desc").First(&last).Error; err == nil && last.Passed {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Quiz already passed!", fiber.Map{
				"attempt": last,
			})
		}

		var attemptCount int64
		database.Database.Db.Model(&courseModels.QuizAttempt{}).
			Where("document = ? AND block_id = ? AND is_deleted = ?", document, blockID, false).Count(&attemptCount)

		attempt = courseModels.QuizAttempt{
			CourseID:      uint(courseID),
			BlockID:       uint(blockID),
			Document:      document,
			ShuffleSeed:   rand.Int63(),
			Status:        courseModels.AttemptInProgress,
			AttemptNumber: int(attemptCount) + 1,
			StartedAt:     time.Now(),
		}
		if block.DurationMinutes > 0 {
			deadline := attempt.StartedAt.Add(time.Duration(block.DurationMinutes) * time.Minute)
			attempt.Deadline = &deadline
		}

		if err := database.Database.Db.Create(&attempt).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start attempt!", nil)
		}
	}

	shuffledQuestions, err := buildShuffledQuestions(uint(blockID), attempt.ShuffleSeed)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load questions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt started!", fiber.Map{
		"attempt":   attempt,
		"questions": shuffledQuestions,
	})
}

// QuestionResult is the per-question outcome returned after grading
type QuestionResult struct {
	QuestionID uint   `json:"question_id"`
	Correct    bool   `json:"correct"`
	Feedback   string `json:"feedback"`
}

// SubmitQuizAttempt grades the learner's answers against the block's live
// questions. Submissions after the deadline are still graded: the countdown
// force-submits, it does not cancel.
func SubmitQuizAttempt(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	blockID := c.Locals("blockID").(int)

	reqData, ok := c.Locals("validatedSubmission").(*struct {
		Document string                   `json:"document"`
		Answers  map[string]AttemptAnswer `json:"answers"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("document = ? AND course_id = ? AND is_deleted = ?",
		reqData.Document, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Learner not enrolled in this course!", nil)
	}

	var block courseModels.ContentBlock
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?",
		blockID, courseID, false).First(&block).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Block not found!", nil)
	}

	var attempt courseModels.QuizAttempt
	if err := database.Database.Db.Where("document = ? AND block_id = ? AND status = ? AND is_deleted = ?",
		reqData.Document, blockID, courseModels.AttemptInProgress, false).
		Order("attempt_number desc").First(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No attempt in progress. Start the quiz first!", nil)
	}

	var questions []courseModels.Question
	database.Database.Db.Where("block_id = ? AND is_deleted = ?", blockID, false).Find(&questions)

	correctCount := 0
	results := make([]QuestionResult, 0, len(questions))

	for _, q := range questions {
		answer := reqData.Answers[q.UID]
		correct := false

		switch q.Kind {
		case courseModels.KindOpenEnded:
			correct = utils.OpenAnswerCorrect(answer.Text)
		default:
			var correctIDs []uint
			database.Database.Db.Model(&courseModels.QuestionOption{}).
				Where("question_id = ? AND is_correct = ? AND is_deleted = ?", q.ID, true, false).
				Pluck("id", &correctIDs)
			correct = utils.ExactSetMatch(answer.SelectedOptionIDs, correctIDs)
		}

		feedback := q.NegativeFeedback
		if correct {
			correctCount++
			feedback = q.PositiveFeedback
		}

		results = append(results, QuestionResult{
			QuestionID: q.ID,
			Correct:    correct,
			Feedback:   feedback,
		})
	}

	score := utils.QuizScore(correctCount, len(questions))
	passed := score >= block.PassPercent

	answersJSON, _ := json.Marshal(reqData.Answers)
	now := time.Now()

	attempt.Answers = string(answersJSON)
	attempt.Score = score
	attempt.Passed = passed
	attempt.Status = courseModels.AttemptGraded
	attempt.GradedAt = &now

	if err := database.Database.Db.Save(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit attempt!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt graded!", fiber.Map{
		"attempt":       attempt,
		"score":         score,
		"passed":        passed,
		"correct_count": correctCount,
		"total":         len(questions),
		"results":       results,
	})
}

// GetQuizAttempt returns the learner's latest attempt for a quiz block
func GetQuizAttempt(c *fiber.Ctx) error {
	blockID := c.Locals("blockID").(int)
	document := c.Locals("document").(string)

	var attempt courseModels.QuizAttempt
	if err := database.Database.Db.Where("document = ? AND block_id = ? AND is_deleted = ?",
		document, blockID, false).Order("attempt_number desc").First(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No attempt found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt fetched successfully!", attempt)
}
