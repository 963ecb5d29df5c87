package courseValidator

import (
	controllers "academia/controllers/course"
	"academia/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// BlockDocument validates the course and block path parameters together with
// the ?document= query parameter.
func BlockDocument() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "id", "courseID"); err != nil {
			return err
		}
		if err := parseIDParam(c, "block_id", "blockID"); err != nil {
			return err
		}

		document := strings.TrimSpace(c.Query("document"))
		if document == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Document number is required!", nil)
		}

		c.Locals("document", document)
		return c.Next()
	}
}

func Submission() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "id", "courseID"); err != nil {
			return err
		}
		if err := parseIDParam(c, "block_id", "blockID"); err != nil {
			return err
		}

		reqData := new(struct {
			Document string                               `json:"document"`
			Answers  map[string]controllers.AttemptAnswer `json:"answers"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Document) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Document number is required!", nil)
		}

		reqData.Document = strings.TrimSpace(reqData.Document)
		if reqData.Answers == nil {
			reqData.Answers = make(map[string]controllers.AttemptAnswer)
		}

		c.Locals("validatedSubmission", reqData)
		return c.Next()
	}
}
