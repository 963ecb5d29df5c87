package courseRoutes

import (
	controllers "academia/controllers/course"
	validators "academia/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes registers the learner-facing API. Learners are not
// registered users; they identify themselves with their document number
// after unlocking a course with its enrollment key.
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses")

	courseGroup.Get("/", controllers.GetAllCourses)
	courseGroup.Get("/:id", validators.CourseID(), controllers.GetCourseDetails)

	// Enrollment
	courseGroup.Post("/:id/verify-key", validators.VerifyKey(), controllers.VerifyEnrollmentKey)
	courseGroup.Post("/:id/enroll", validators.Enroll(), controllers.EnrollInCourse)
	courseGroup.Get("/:id/enrollment", validators.Document(), controllers.GetEnrollment)
	courseGroup.Post("/:id/rating", validators.Rating(), controllers.SubmitRating)

	// Course consumption
	courseGroup.Get("/:id/blocks", validators.Document(), controllers.GetCourseBlocks)
	courseGroup.Post("/:id/blocks/:block_id/complete", validators.BlockDocument(), controllers.MarkBlockComplete)
	courseGroup.Get("/:id/progress", validators.Document(), controllers.GetProgress)

	// Quiz attempts
	courseGroup.Post("/:id/blocks/:block_id/attempts", validators.BlockDocument(), controllers.StartQuizAttempt)
	courseGroup.Post("/:id/blocks/:block_id/attempts/submit", validators.Submission(), controllers.SubmitQuizAttempt)
	courseGroup.Get("/:id/blocks/:block_id/attempts/latest", validators.BlockDocument(), controllers.GetQuizAttempt)

	// Certificates
	courseGroup.Post("/:id/certificate", validators.Document(), controllers.IssueCertificate)
	courseGroup.Get("/:id/certificate", validators.Document(), controllers.GetCertificate)
}
