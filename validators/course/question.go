package courseValidator

import (
	controllers "academia/controllers/course"
	"academia/middleware"
	courseModels "academia/models/course"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func QuestionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "question_id", "questionID"); err != nil {
			return err
		}
		return c.Next()
	}
}

func OptionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "option_id", "optionID"); err != nil {
			return err
		}
		return c.Next()
	}
}

func UpdateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "question_id", "questionID"); err != nil {
			return err
		}

		reqData := new(struct {
			Prompt           string `json:"prompt"`
			Kind             string `json:"kind"`
			PositiveFeedback string `json:"positive_feedback"`
			NegativeFeedback string `json:"negative_feedback"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Kind != "" && reqData.Kind != courseModels.KindMultipleChoice && reqData.Kind != courseModels.KindOpenEnded {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Kind must be MULTIPLE_CHOICE or OPEN_ENDED!", nil)
		}

		c.Locals("validatedQuestionUpdate", reqData)
		return c.Next()
	}
}

func AddOption() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "question_id", "questionID"); err != nil {
			return err
		}

		reqData := new(struct {
			OptionText string `json:"option_text"`
			IsCorrect  bool   `json:"is_correct"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.OptionText) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Option text is required!", nil)
		}

		c.Locals("validatedOption", reqData)
		return c.Next()
	}
}

func UpdateOption() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "option_id", "optionID"); err != nil {
			return err
		}

		reqData := new(struct {
			OptionText string `json:"option_text"`
			IsCorrect  *bool  `json:"is_correct"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedOptionUpdate", reqData)
		return c.Next()
	}
}

func GenerateQuestions() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "block_id", "blockID"); err != nil {
			return err
		}

		reqData := new(struct {
			ContenidoCurso string `json:"contenidoCurso"`
			TiposPreguntas struct {
				Opcion2 int `json:"opcion2"`
				Opcion3 int `json:"opcion3"`
				Opcion4 int `json:"opcion4"`
				Opcion5 int `json:"opcion5"`
			} `json:"tiposPreguntas"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		total := reqData.TiposPreguntas.Opcion2 + reqData.TiposPreguntas.Opcion3 +
			reqData.TiposPreguntas.Opcion4 + reqData.TiposPreguntas.Opcion5
		if total <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Request at least one question!", nil)
		}

		c.Locals("validatedGenerate", reqData)
		return c.Next()
	}
}

func AcceptGeneratedQuestions() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "block_id", "blockID"); err != nil {
			return err
		}

		reqData := new(struct {
			Questions []controllers.GeneratedQuestion `json:"questions"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.Questions) == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No questions to accept!", nil)
		}

		errors := make(map[string]string)

		for _, q := range reqData.Questions {
			if strings.TrimSpace(q.Prompt) == "" {
				errors["questions"] = "Every question needs a prompt!"
				break
			}
			if len(q.Options) < 2 {
				errors["questions"] = "Every question needs at least 2 options!"
				break
			}
			if len(q.CorrectIndices) == 0 {
				errors["questions"] = "Every question needs at least one correct answer!"
				break
			}
			for _, idx := range q.CorrectIndices {
				if idx < 0 || idx >= len(q.Options) {
					errors["questions"] = "Correct answer index out of range!"
					break
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAccept", reqData)
		return c.Next()
	}
}
