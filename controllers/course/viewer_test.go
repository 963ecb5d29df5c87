package controllers_test

import (
	"academia/database"
	courseModels "academia/models/course"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeBlock(t *testing.T, app *fiber.App, courseID, blockID uint, document string) (int, apiResponse) {
	t.Helper()
	url := fmt.Sprintf("/courses/%d/blocks/%d/complete?document=%s", courseID, blockID, document)
	return doJSON(t, app, http.MethodPost, url, nil, "")
}

func TestProgressIsRoundedPercentage(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t, "Clave2026")
	seedEnrollment(t, course.ID, "1012345678")

	blocks := make([]courseModels.ContentBlock, 5)
	for i := range blocks {
		blocks[i] = seedBlock(t, course.ID, courseModels.BlockReading, i)
	}

	status, resp := completeBlock(t, app, course.ID, blocks[0].ID, "1012345678")
	require.Equal(t, http.StatusOK, status)

	var progress struct {
		Progress int `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &progress))
	assert.Equal(t, 20, progress.Progress)

	status, resp = completeBlock(t, app, course.ID, blocks[1].ID, "1012345678")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(resp.Data, &progress))
	assert.Equal(t, 40, progress.Progress)

	// 3 of 5 done
	status, resp = completeBlock(t, app, course.ID, blocks[2].ID, "1012345678")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(resp.Data, &progress))
	assert.Equal(t, 60, progress.Progress)
}

func TestCompletingAllBlocksMarksEnrollmentDone(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t, "Clave2026")
	seedEnrollment(t, course.ID, "1012345678")

	b1 := seedBlock(t, course.ID, courseModels.BlockReading, 0)
	b2 := seedBlock(t, course.ID, courseModels.BlockVideo, 1)

	status, _ := completeBlock(t, app, course.ID, b1.ID, "1012345678")
	require.Equal(t, http.StatusOK, status)
	status, _ = completeBlock(t, app, course.ID, b2.ID, "1012345678")
	require.Equal(t, http.StatusOK, status)

	var enrollment courseModels.Enrollment
	require.NoError(t, database.Database.Db.Where("document = ? AND course_id = ?",
		"1012345678", course.ID).First(&enrollment).Error)
	assert.Equal(t, 100, enrollment.Progress)
	assert.True(t, enrollment.Completed)
	require.NotNil(t, enrollment.CompletedAt)
}

func TestMarkCompleteIsIdempotent(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t, "Clave2026")
	seedEnrollment(t, course.ID, "1012345678")

	b1 := seedBlock(t, course.ID, courseModels.BlockReading, 0)
	seedBlock(t, course.ID, courseModels.BlockReading, 1)

	status, _ := completeBlock(t, app, course.ID, b1.ID, "1012345678")
	require.Equal(t, http.StatusOK, status)
	status, _ = completeBlock(t, app, course.ID, b1.ID, "1012345678")
	require.Equal(t, http.StatusOK, status)

	var count int64
	database.Database.Db.Model(&courseModels.BlockCompletion{}).
		Where("document = ? AND block_id = ?", "1012345678", b1.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	var enrollment courseModels.Enrollment
	require.NoError(t, database.Database.Db.Where("document = ? AND course_id = ?",
		"1012345678", course.ID).First(&enrollment).Error)
	assert.Equal(t, 50, enrollment.Progress)
}

func TestQuizBlockRequiresPassedAttempt(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t, "Clave2026")
	seedEnrollment(t, course.ID, "1012345678")

	quiz := seedBlock(t, course.ID, courseModels.BlockQuiz, 0)
	q1, opts1 := seedQuestion(t, quiz.ID, "q-1", 0, 0, "Roja", "Azul")

	status, _ := completeBlock(t, app, course.ID, quiz.ID, "1012345678")
	assert.Equal(t, http.StatusBadRequest, status, "no attempt yet")

	// Fail the quiz, still not completable
	startURL := fmt.Sprintf("/courses/%d/blocks/%d/attempts?document=1012345678", course.ID, quiz.ID)
	submitURL := fmt.Sprintf("/courses/%d/blocks/%d/attempts/submit", course.ID, quiz.ID)

	status, _ = doJSON(t, app, http.MethodPost, startURL, nil, "")
	require.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, app, http.MethodPost, submitURL, map[string]interface{}{
		"document": "1012345678",
		"answers": map[string]interface{}{
			q1.UID: map[string]interface{}{"selected_option_ids": []uint{opts1[1].ID}},
		},
	}, "")
	require.Equal(t, http.StatusOK, status)

	status, _ = completeBlock(t, app, course.ID, quiz.ID, "1012345678")
	assert.Equal(t, http.StatusBadRequest, status, "failed attempt does not unlock completion")

	// Pass it
	status, _ = doJSON(t, app, http.MethodPost, startURL, nil, "")
	require.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, app, http.MethodPost, submitURL, map[string]interface{}{
		"document": "1012345678",
		"answers": map[string]interface{}{
			q1.UID: map[string]interface{}{"selected_option_ids": []uint{opts1[0].ID}},
		},
	}, "")
	require.Equal(t, http.StatusOK, status)

	status, _ = completeBlock(t, app, course.ID, quiz.ID, "1012345678")
	assert.Equal(t, http.StatusOK, status)
}

func TestGetBlocksRequiresEnrollment(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t, "Clave2026")
	seedBlock(t, course.ID, courseModels.BlockReading, 0)

	url := fmt.Sprintf("/courses/%d/blocks?document=9999", course.ID)
	status, _ := doJSON(t, app, http.MethodGet, url, nil, "")
	assert.Equal(t, http.StatusForbidden, status)
}
