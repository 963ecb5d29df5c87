package courseRoutes

import (
	controllers "academia/controllers/course"
	"academia/middleware"
	validators "academia/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes registers the course builder API. Every route in
// here requires an authenticated admin.
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/courses", middleware.JWTMiddleware, middleware.AdminOnly)

	// Course CRUD
	adminGroup.Post("/", validators.CreateCourse(), controllers.AdminCreateCourse)
	adminGroup.Get("/", controllers.AdminGetAllCourses)
	adminGroup.Get("/:id", validators.CourseID(), controllers.AdminGetCourseDetails)
	adminGroup.Put("/:id", validators.UpdateCourse(), controllers.AdminUpdateCourse)
	adminGroup.Patch("/:id/active", validators.SetCourseActive(), controllers.AdminSetCourseActive)
	adminGroup.Delete("/:id", validators.CourseID(), controllers.AdminDeleteCourse)

	// Content blocks
	adminGroup.Post("/:id/blocks", validators.CreateBlock(), controllers.AdminCreateBlock)
	adminGroup.Get("/:id/blocks", validators.CourseID(), controllers.AdminListBlocks)

	blockGroup := app.Group("/admin/blocks", middleware.JWTMiddleware, middleware.AdminOnly)
	blockGroup.Put("/:block_id", validators.UpdateBlock(), controllers.AdminUpdateBlock)
	blockGroup.Delete("/:block_id", validators.BlockID(), controllers.AdminDeleteBlock)
	blockGroup.Patch("/:block_id/move", validators.MoveBlock(), controllers.AdminMoveBlock)

	// Quiz questions
	blockGroup.Post("/:block_id/questions", validators.BlockID(), controllers.AdminAddQuestion)
	blockGroup.Get("/:block_id/questions", validators.BlockID(), controllers.AdminGetBlockQuestions)
	blockGroup.Post("/:block_id/questions/generate", validators.GenerateQuestions(), controllers.AdminGenerateQuestions)
	blockGroup.Post("/:block_id/questions/accept", validators.AcceptGeneratedQuestions(), controllers.AdminAcceptGeneratedQuestions)

	questionGroup := app.Group("/admin/questions", middleware.JWTMiddleware, middleware.AdminOnly)
	questionGroup.Put("/:question_id", validators.UpdateQuestion(), controllers.AdminUpdateQuestion)
	questionGroup.Patch("/:question_id/multiple", validators.QuestionID(), controllers.AdminToggleMultipleAnswers)
	questionGroup.Delete("/:question_id", validators.QuestionID(), controllers.AdminDeleteQuestion)
	questionGroup.Post("/:question_id/options", validators.AddOption(), controllers.AdminAddOption)

	optionGroup := app.Group("/admin/options", middleware.JWTMiddleware, middleware.AdminOnly)
	optionGroup.Put("/:option_id", validators.UpdateOption(), controllers.AdminUpdateOption)
	optionGroup.Delete("/:option_id", validators.OptionID(), controllers.AdminDeleteOption)

	// Assets (cover images, certificate templates, lesson documents)
	app.Post("/admin/uploads", middleware.JWTMiddleware, middleware.AdminOnly, controllers.AdminUploadAsset)

	// Reporting
	adminGroup.Get("/:id/enrollments", validators.CourseID(), controllers.AdminGetCourseEnrollments)
	adminGroup.Get("/:id/enrollments/export", validators.CourseID(), controllers.AdminExportEnrollmentsCSV)
	adminGroup.Post("/:id/report", validators.SendReport(), controllers.AdminSendCourseReport)
	adminGroup.Get("/:id/ratings", validators.CourseID(), controllers.AdminGetCourseRatings)
}
