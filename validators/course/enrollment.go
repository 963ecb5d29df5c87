package courseValidator

import (
	"academia/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Document validates the ?document= query parameter identifying a learner.
func Document() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "id", "courseID"); err != nil {
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

func VerifyKey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "id", "courseID"); err != nil {
			return err
		}

		reqData := new(struct {
			EnrollmentKey string `json:"enrollment_key"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.EnrollmentKey == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Enrollment key is required!", nil)
		}

		c.Locals("validatedKey", reqData)
		return c.Next()
	}
}

func Enroll() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "id", "courseID"); err != nil {
			return err
		}

		reqData := new(struct {
			EnrollmentKey string `json:"enrollment_key"`
			FullName      string `json:"full_name"`
			Document      string `json:"document"`
			Email         string `json:"email"`
			JobTitle      string `json:"job_title"`
			Company       string `json:"company"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.EnrollmentKey == "" {
			errors["enrollment_key"] = "Enrollment key is required!"
		}
		if strings.TrimSpace(reqData.FullName) == "" {
			errors["full_name"] = "Full name is required!"
		}
		if strings.TrimSpace(reqData.Document) == "" {
			errors["document"] = "Document number is required!"
		}
		if reqData.Email != "" && !reportEmailRegex.MatchString(reqData.Email) {
			errors["email"] = "Invalid email address!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData.FullName = strings.TrimSpace(reqData.FullName)
		reqData.Document = strings.TrimSpace(reqData.Document)

		c.Locals("validatedEnrollment", reqData)
		return c.Next()
	}
}

func Rating() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "id", "courseID"); err != nil {
			return err
		}

		reqData := new(struct {
			Document string `json:"document"`
			Stars    int    `json:"stars"`
			Comment  string `json:"comment"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Document) == "" {
			errors["document"] = "Document number is required!"
		}
		if reqData.Stars < 1 || reqData.Stars > 5 {
			errors["stars"] = "Stars must be between 1 and 5!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData.Document = strings.TrimSpace(reqData.Document)

		c.Locals("validatedRating", reqData)
		return c.Next()
	}
}
