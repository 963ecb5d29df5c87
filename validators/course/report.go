package courseValidator

import (
	"academia/middleware"
	"regexp"

	"github.com/gofiber/fiber/v2"
)

var reportEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// SendReport validates the optional destination override for a manual report
// send. Without a body the course's configured report email is used.
func SendReport() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "id", "courseID"); err != nil {
			return err
		}

		if len(c.Body()) == 0 {
			return c.Next()
		}

		reqData := new(struct {
			EmailDestino string `json:"emailDestino"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.EmailDestino != "" && !reportEmailRegex.MatchString(reqData.EmailDestino) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid destination email!", nil)
		}

		c.Locals("validatedReport", reqData)
		return c.Next()
	}
}
