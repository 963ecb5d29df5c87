package controllers_test

import (
	"academia/config"
	"academia/database"
	"academia/middleware"
	"academia/models"
	courseModels "academia/models/course"
	courseRoutes "academia/routers/courseRoutes"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// apiResponse mirrors the JSON envelope every handler writes.
type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// setupApp wires a fresh in-memory database and the full route table.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}, token string) (int, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp.StatusCode, parsed
}

func doRaw(t *testing.T, app *fiber.App, method, target, token string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func seedAdmin(t *testing.T) string {
	t.Helper()

	admin := models.User{
		Name:     "Admin",
		Email:    "admin@academiasantafe.com",
		Role:     "ADMIN",
		Password: "not-a-real-hash",
	}
	require.NoError(t, database.Database.Db.Create(&admin).Error)

	token, err := middleware.GenerateJWT(admin.ID, admin.Name, admin.Role, admin.Email)
	require.NoError(t, err)
	return token
}

func seedCourse(t *testing.T, key string) courseModels.Course {
	t.Helper()

	course := courseModels.Course{
		Title:         "Seguridad en el Trabajo",
		Description:   "Curso de inducción",
		EnrollmentKey: key,
		IsActive:      true,
	}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course
}

func seedBlock(t *testing.T, courseID uint, blockType string, order int) courseModels.ContentBlock {
	t.Helper()

	block := courseModels.ContentBlock{
		CourseID:    courseID,
		Type:        blockType,
		Title:       blockType + " block",
		OrderIndex:  order,
		PassPercent: 100,
	}
	require.NoError(t, database.Database.Db.Create(&block).Error)
	return block
}

func seedEnrollment(t *testing.T, courseID uint, document string) courseModels.Enrollment {
	t.Helper()

	enrollment := courseModels.Enrollment{
		CourseID: courseID,
		Document: document,
		FullName: "Ana María Pérez",
		JobTitle: "Operaria",
		Company:  "Santafé",
	}
	require.NoError(t, database.Database.Db.Create(&enrollment).Error)
	return enrollment
}

// seedMultiAnswerQuestion creates a multiple choice question in
// multiple-answer mode; the options at correctIdx are the correct set.
func seedMultiAnswerQuestion(t *testing.T, blockID uint, uid string, order int, correctIdx []int, optionTexts ...string) (courseModels.Question, []courseModels.QuestionOption) {
	t.Helper()

	question := courseModels.Question{
		BlockID:          blockID,
		UID:              uid,
		Prompt:           "Pregunta " + uid,
		Kind:             courseModels.KindMultipleChoice,
		MultipleAnswers:  true,
		PositiveFeedback: "Correcto",
		NegativeFeedback: "Incorrecto",
		OrderIndex:       order,
	}
	require.NoError(t, database.Database.Db.Create(&question).Error)

	correct := make(map[int]bool, len(correctIdx))
	for _, idx := range correctIdx {
		correct[idx] = true
	}

	options := make([]courseModels.QuestionOption, 0, len(optionTexts))
	for i, text := range optionTexts {
		option := courseModels.QuestionOption{
			QuestionID: question.ID,
			OptionText: text,
			IsCorrect:  correct[i],
			OrderIndex: i,
		}
		require.NoError(t, database.Database.Db.Create(&option).Error)
		options = append(options, option)
	}

	return question, options
}

// seedQuestion creates a multiple choice question whose option at correctIdx
// is the single correct one.
func seedQuestion(t *testing.T, blockID uint, uid string, order, correctIdx int, optionTexts ...string) (courseModels.Question, []courseModels.QuestionOption) {
	t.Helper()

	question := courseModels.Question{
		BlockID:          blockID,
		UID:              uid,
		Prompt:           "Pregunta " + uid,
		Kind:             courseModels.KindMultipleChoice,
		PositiveFeedback: "Correcto",
		NegativeFeedback: "Incorrecto",
		OrderIndex:       order,
	}
	require.NoError(t, database.Database.Db.Create(&question).Error)

	options := make([]courseModels.QuestionOption, 0, len(optionTexts))
	for i, text := range optionTexts {
		option := courseModels.QuestionOption{
			QuestionID: question.ID,
			OptionText: text,
			IsCorrect:  i == correctIdx,
			OrderIndex: i,
		}
		require.NoError(t, database.Database.Db.Create(&option).Error)
		options = append(options, option)
	}

	return question, options
}
