package courseValidator

import (
	"academia/middleware"
	courseModels "academia/models/course"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// parseIDParam validates a positive integer path parameter and stores it in
// Locals under localsKey.
func parseIDParam(c *fiber.Ctx, param, localsKey string) error {
	raw := strings.TrimSpace(c.Params(param))
	if raw == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing "+param+" in the URL!", nil)
	}

	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+"!", nil)
	}

	c.Locals(localsKey, id)
	return nil
}

func isValidLevel(level string) bool {
	switch level {
	case courseModels.LevelBeginner, courseModels.LevelIntermediate, courseModels.LevelAdvanced:
		return true
	}
	return false
}

// CourseID validates the :id path parameter only
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "id", "courseID"); err != nil {
			return err
		}
		return c.Next()
	}
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title                  string `json:"title"`
			Description            string `json:"description"`
			Category               string `json:"category"`
			DurationLabel          string `json:"duration_label"`
			Level                  string `json:"level"`
			Instructor             string `json:"instructor"`
			CoverImageURL          string `json:"cover_image_url"`
			EnrollmentKey          string `json:"enrollment_key"`
			CertificateTemplateURL string `json:"certificate_template_url"`
			ReportEmail            string `json:"report_email"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		}

		// The enrollment key gates learner access; a course without one
		// would be open to anyone
		if reqData.EnrollmentKey == "" {
			errors["enrollment_key"] = "Enrollment key is required!"
		}

		if reqData.Level == "" {
			reqData.Level = courseModels.LevelBeginner
		} else if !isValidLevel(reqData.Level) {
			errors["level"] = "Level must be BEGINNER, INTERMEDIATE or ADVANCED!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "id", "courseID"); err != nil {
			return err
		}

		reqData := new(struct {
			Title                  string `json:"title"`
			Description            string `json:"description"`
			Category               string `json:"category"`
			DurationLabel          string `json:"duration_label"`
			Level                  string `json:"level"`
			Instructor             string `json:"instructor"`
			CoverImageURL          string `json:"cover_image_url"`
			EnrollmentKey          string `json:"enrollment_key"`
			CertificateTemplateURL string `json:"certificate_template_url"`
			ReportEmail            string `json:"report_email"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Level != "" && !isValidLevel(reqData.Level) {
			errors["level"] = "Level must be BEGINNER, INTERMEDIATE or ADVANCED!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

func SetCourseActive() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "id", "courseID"); err != nil {
			return err
		}

		reqData := new(struct {
			Active *bool `json:"active"`
		})

		if err := c.BodyParser(reqData); err != nil || reqData.Active == nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Field 'active' is required!", nil)
		}

		c.Locals("activeStatus", *reqData.Active)
		return c.Next()
	}
}
