package courseValidator

import (
	"academia/middleware"
	courseModels "academia/models/course"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func isValidBlockType(blockType string) bool {
	switch blockType {
	case courseModels.BlockReading, courseModels.BlockVideo, courseModels.BlockDocument, courseModels.BlockQuiz:
		return true
	}
	return false
}

func CreateBlock() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "id", "courseID"); err != nil {
			return err
		}

		reqData := new(struct {
			Type            string `json:"type"`
			Title           string `json:"title"`
			DurationMinutes *int   `json:"duration_minutes"`
			BodyText        string `json:"body_text"`
			VideoURL        string `json:"video_url"`
			FileURL         string `json:"file_url"`
			PassPercent     *int   `json:"pass_percent"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if !isValidBlockType(reqData.Type) {
			errors["type"] = "Type must be READING, VIDEO, DOCUMENT or QUIZ!"
		}

		if reqData.DurationMinutes != nil && *reqData.DurationMinutes < 0 {
			errors["duration_minutes"] = "Duration cannot be negative!"
		}

		if reqData.PassPercent != nil && (*reqData.PassPercent < 0 || *reqData.PassPercent > 100) {
			errors["pass_percent"] = "Pass percent must be between 0 and 100!"
		}

		if reqData.Type == courseModels.BlockVideo && strings.TrimSpace(reqData.VideoURL) == "" {
			errors["video_url"] = "Video URL is required for video blocks!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBlock", reqData)
		return c.Next()
	}
}

func UpdateBlock() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "block_id", "blockID"); err != nil {
			return err
		}

		reqData := new(struct {
			Title           string `json:"title"`
			DurationMinutes *int   `json:"duration_minutes"`
			BodyText        string `json:"body_text"`
			VideoURL        string `json:"video_url"`
			FileURL         string `json:"file_url"`
			PassPercent     *int   `json:"pass_percent"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.DurationMinutes != nil && *reqData.DurationMinutes < 0 {
			errors["duration_minutes"] = "Duration cannot be negative!"
		}

		if reqData.PassPercent != nil && (*reqData.PassPercent < 0 || *reqData.PassPercent > 100) {
			errors["pass_percent"] = "Pass percent must be between 0 and 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBlockUpdate", reqData)
		return c.Next()
	}
}

func BlockID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "block_id", "blockID"); err != nil {
			return err
		}
		return c.Next()
	}
}

func MoveBlock() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "block_id", "blockID"); err != nil {
			return err
		}

		reqData := new(struct {
			Direction string `json:"direction"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Direction != "up" && reqData.Direction != "down" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Direction must be 'up' or 'down'!", nil)
		}

		c.Locals("moveDirection", reqData.Direction)
		return c.Next()
	}
}
