package controllers

import (
	"academia/config"
	"academia/database"
	"academia/middleware"
	courseModels "academia/models/course"
	"encoding/json"
	"log"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GeneratedQuestion is a candidate question returned by the generation
// endpoint, pending manual review. Nothing is persisted until the admin
// accepts it.
type GeneratedQuestion struct {
	Prompt           string   `json:"prompt"`
	Options          []string `json:"options"`
	CorrectIndices   []int    `json:"correct_indices"`
	MultipleAnswers  bool     `json:"multiple_answers"`
	PositiveFeedback string   `json:"positive_feedback"`
	NegativeFeedback string   `json:"negative_feedback"`
}

// AdminGenerateQuestions asks the external text-generation endpoint for
// candidate quiz questions based on the block's body text. Failure is a
// hard error to the caller; no retry is attempted.
func AdminGenerateQuestions(c *fiber.Ctx) error {
	blockID := c.Locals("blockID").(int)

	var block courseModels.ContentBlock
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", blockID, false).First(&block).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Block not found!", nil)
	}

	if block.Type != courseModels.BlockQuiz {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Block is not a quiz!", nil)
	}

	if config.AppConfig.AiApiURL == "" {
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Question generation is not configured!", nil)
	}

	reqData, ok := c.Locals("validatedGenerate").(*struct {
		ContenidoCurso string `json:"contenidoCurso"`
		TiposPreguntas struct {
			Opcion2 int `json:"opcion2"`
			Opcion3 int `json:"opcion3"`
			Opcion4 int `json:"opcion4"`
			Opcion5 int `json:"opcion5"`
		} `json:"tiposPreguntas"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Block body is the default source material
	if reqData.ContenidoCurso == "" {
		reqData.ContenidoCurso = block.BodyText
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+config.AppConfig.AiApiKey).
		SetBody(reqData).
		Post(config.AppConfig.AiApiURL)
	if err != nil {
		log.Printf("Question generation call failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Question generation service is unavailable!", nil)
	}
	if resp.StatusCode() != 200 {
		log.Printf("Question generation returned %d: %s", resp.StatusCode(), resp.String())
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Question generation failed!", nil)
	}

	var genResp struct {
		Preguntas []GeneratedQuestion `json:"preguntas"`
	}
	if err := json.Unmarshal(resp.Body(), &genResp); err != nil {
		log.Printf("Invalid question generation response: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Invalid response from question generation service!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Candidate questions generated. Review before accepting!", fiber.Map{
		"candidates": genResp.Preguntas,
		"total":      len(genResp.Preguntas),
	})
}

// AdminAcceptGeneratedQuestions appends reviewed candidate questions to the
// block's permanent question list.
func AdminAcceptGeneratedQuestions(c *fiber.Ctx) error {
	blockID := c.Locals("blockID").(int)

	var block courseModels.ContentBlock
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", blockID, false).First(&block).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Block not found!", nil)
	}

	if block.Type != courseModels.BlockQuiz {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Block is not a quiz!", nil)
	}

	reqData, ok := c.Locals("validatedAccept").(*struct {
		Questions []GeneratedQuestion `json:"questions"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var maxOrder int
	database.Database.Db.Model(&courseModels.Question{}).
		Where("block_id = ? AND is_deleted = ?", blockID, false).
		Select("COALESCE(MAX(order_index), -1)").Scan(&maxOrder)

	tx := database.Database.Db.Begin()

	created := make([]courseModels.Question, 0, len(reqData.Questions))
	for i, gq := range reqData.Questions {
		multiple := gq.MultipleAnswers || len(gq.CorrectIndices) > 1

		question := courseModels.Question{
			BlockID:          uint(blockID),
			UID:              uuid.NewString(),
			Prompt:           gq.Prompt,
			Kind:             courseModels.KindMultipleChoice,
			MultipleAnswers:  multiple,
			PositiveFeedback: gq.PositiveFeedback,
			NegativeFeedback: gq.NegativeFeedback,
			OrderIndex:       maxOrder + 1 + i,
		}
		if err := tx.Create(&question).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save questions!", nil)
		}

		correct := make(map[int]bool, len(gq.CorrectIndices))
		for _, idx := range gq.CorrectIndices {
			correct[idx] = true
		}

		for j, text := range gq.Options {
			option := courseModels.QuestionOption{
				QuestionID: question.ID,
				OptionText: text,
				IsCorrect:  correct[j],
				OrderIndex: j,
			}
			if err := tx.Create(&option).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save question options!", nil)
			}
		}

		created = append(created, question)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Questions accepted successfully!", fiber.Map{
		"questions": created,
		"total":     len(created),
	})
}
