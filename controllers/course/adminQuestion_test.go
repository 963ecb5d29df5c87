package controllers_test

import (
	"academia/database"
	courseModels "academia/models/course"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func correctOptionIDs(t *testing.T, questionID uint) []uint {
	t.Helper()
	var ids []uint
	require.NoError(t, database.Database.Db.Model(&courseModels.QuestionOption{}).
		Where("question_id = ? AND is_correct = ? AND is_deleted = ?", questionID, true, false).
		Order("order_index asc").Pluck("id", &ids).Error)
	return ids
}

func TestSingleAnswerQuestionKeepsOneCorrectOption(t *testing.T) {
	app := setupApp(t)
	token := seedAdmin(t)
	course := seedCourse(t, "Clave2026")
	quiz := seedBlock(t, course.ID, courseModels.BlockQuiz, 0)
	question, _ := seedQuestion(t, quiz.ID, "q-1", 0, 0, "Roja", "Azul")

	// A second correct option is rejected while in single-answer mode
	status, _ := doJSON(t, app, http.MethodPost, fmt.Sprintf("/admin/questions/%d/options", question.ID),
		map[string]interface{}{"option_text": "Verde", "is_correct": true}, token)
	assert.Equal(t, http.StatusBadRequest, status)

	// An incorrect option is fine
	status, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/admin/questions/%d/options", question.ID),
		map[string]interface{}{"option_text": "Verde"}, token)
	assert.Equal(t, http.StatusCreated, status)

	require.Len(t, correctOptionIDs(t, question.ID), 1)
}

func TestMarkingCorrectDemotesPreviousOnSingleAnswer(t *testing.T) {
	app := setupApp(t)
	token := seedAdmin(t)
	course := seedCourse(t, "Clave2026")
	quiz := seedBlock(t, course.ID, courseModels.BlockQuiz, 0)
	question, options := seedQuestion(t, quiz.ID, "q-1", 0, 0, "Roja", "Azul")

	status, _ := doJSON(t, app, http.MethodPut, fmt.Sprintf("/admin/options/%d", options[1].ID),
		map[string]interface{}{"is_correct": true}, token)
	require.Equal(t, http.StatusOK, status)

	ids := correctOptionIDs(t, question.ID)
	require.Len(t, ids, 1)
	assert.Equal(t, options[1].ID, ids[0])
}

func TestTurningMultipleOffKeepsFirstCorrect(t *testing.T) {
	app := setupApp(t)
	token := seedAdmin(t)
	course := seedCourse(t, "Clave2026")
	quiz := seedBlock(t, course.ID, courseModels.BlockQuiz, 0)
	question, options := seedQuestion(t, quiz.ID, "q-1", 0, 0, "Roja", "Azul", "Verde")

	toggleURL := fmt.Sprintf("/admin/questions/%d/multiple", question.ID)

	// Enable multiple answers and mark a second option correct
	status, _ := doJSON(t, app, http.MethodPatch, toggleURL, nil, token)
	require.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, app, http.MethodPut, fmt.Sprintf("/admin/options/%d", options[2].ID),
		map[string]interface{}{"is_correct": true}, token)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, correctOptionIDs(t, question.ID), 2)

	// Turning multiple off collapses back to the first correct option
	status, _ = doJSON(t, app, http.MethodPatch, toggleURL, nil, token)
	require.Equal(t, http.StatusOK, status)

	ids := correctOptionIDs(t, question.ID)
	require.Len(t, ids, 1)
	assert.Equal(t, options[0].ID, ids[0])
}

func TestDeleteQuestionRemovesItFromGrading(t *testing.T) {
	app := setupApp(t)
	token := seedAdmin(t)
	course := seedCourse(t, "Clave2026")
	quiz := seedBlock(t, course.ID, courseModels.BlockQuiz, 0)
	question, _ := seedQuestion(t, quiz.ID, "q-1", 0, 0, "Roja", "Azul")
	seedQuestion(t, quiz.ID, "q-2", 1, 0, "Uno", "Dos")

	status, _ := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/admin/questions/%d", question.ID), nil, token)
	require.Equal(t, http.StatusOK, status)

	var count int64
	database.Database.Db.Model(&courseModels.Question{}).
		Where("block_id = ? AND is_deleted = ?", quiz.ID, false).Count(&count)
	assert.Equal(t, int64(1), count)
}
