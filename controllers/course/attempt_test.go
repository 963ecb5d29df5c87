package controllers_test

import (
	courseModels "academia/models/course"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type attemptPayload struct {
	Attempt   courseModels.QuizAttempt `json:"attempt"`
	Questions []struct {
		ID      uint   `json:"id"`
		UID     string `json:"uid"`
		Kind    string `json:"kind"`
		Options []struct {
			ID         uint   `json:"id"`
			OptionText string `json:"option_text"`
		} `json:"options"`
	} `json:"questions"`
}

func startAttempt(t *testing.T, app *fiber.App, courseID, blockID uint, document string) (int, attemptPayload) {
	t.Helper()

	url := fmt.Sprintf("/courses/%d/blocks/%d/attempts?document=%s", courseID, blockID, document)
	status, resp := doJSON(t, app, http.MethodPost, url, nil, "")

	var payload attemptPayload
	if status == http.StatusOK {
		require.NoError(t, json.Unmarshal(resp.Data, &payload))
	}
	return status, payload
}

func TestStartAttemptReturnsAllQuestionsWithoutAnswers(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t, "Clave2026")
	quiz := seedBlock(t, course.ID, courseModels.BlockQuiz, 0)
	seedEnrollment(t, course.ID, "1012345678")

	seedQuestion(t, quiz.ID, "q-1", 0, 0, "Roja", "Azul", "Verde")
	seedQuestion(t, quiz.ID, "q-2", 1, 2, "Uno", "Dos", "Tres")

	status, payload := startAttempt(t, app, course.ID, quiz.ID, "1012345678")
	require.Equal(t, http.StatusOK, status)

	require.Len(t, payload.Questions, 2)
	uids := []string{payload.Questions[0].UID, payload.Questions[1].UID}
	sort.Strings(uids)
	assert.Equal(t, []string{"q-1", "q-2"}, uids)

	for _, q := range payload.Questions {
		assert.Len(t, q.Options, 3)
	}
	assert.Equal(t, courseModels.AttemptInProgress, payload.Attempt.Status)
	assert.Equal(t, 1, payload.Attempt.AttemptNumber)
}

func TestResumingAttemptKeepsSameOrder(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t, "Clave2026")
	quiz := seedBlock(t, course.ID, courseModels.BlockQuiz, 0)
	seedEnrollment(t, course.ID, "1012345678")

	for i := 0; i < 6; i++ {
		seedQuestion(t, quiz.ID, fmt.Sprintf("q-%d", i), i, 0, "A", "B", "C")
	}

	status, first := startAttempt(t, app, course.ID, quiz.ID, "1012345678")
	require.Equal(t, http.StatusOK, status)

	status, second := startAttempt(t, app, course.ID, quiz.ID, "1012345678")
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, first.Attempt.ID, second.Attempt.ID)
	require.Len(t, second.Questions, len(first.Questions))
	for i := range first.Questions {
		assert.Equal(t, first.Questions[i].UID, second.Questions[i].UID)
		for j := range first.Questions[i].Options {
			assert.Equal(t, first.Questions[i].Options[j].ID, second.Questions[i].Options[j].ID)
		}
	}
}

func TestSubmitGradesExactSet(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t, "Clave2026")
	quiz := seedBlock(t, course.ID, courseModels.BlockQuiz, 0)
	seedEnrollment(t, course.ID, "1012345678")

	q1, opts1 := seedQuestion(t, quiz.ID, "q-1", 0, 0, "Roja", "Azul")
	q2, opts2 := seedQuestion(t, quiz.ID, "q-2", 1, 1, "Uno", "Dos")

	status, _ := startAttempt(t, app, course.ID, quiz.ID, "1012345678")
	require.Equal(t, http.StatusOK, status)

	// One right, one wrong: 50% does not pass the default 100 threshold
	url := fmt.Sprintf("/courses/%d/blocks/%d/attempts/submit", course.ID, quiz.ID)
	status, resp := doJSON(t, app, http.MethodPost, url, map[string]interface{}{
		"document": "1012345678",
		"answers": map[string]interface{}{
			q1.UID: map[string]interface{}{"selected_option_ids": []uint{opts1[0].ID}},
			q2.UID: map[string]interface{}{"selected_option_ids": []uint{opts2[0].ID}},
		},
	}, "")
	require.Equal(t, http.StatusOK, status)

	var graded struct {
		Score  int  `json:"score"`
		Passed bool `json:"passed"`
		Total  int  `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &graded))
	assert.Equal(t, 50, graded.Score)
	assert.False(t, graded.Passed)
	assert.Equal(t, 2, graded.Total)

	// Retry with both answers right
	status, _ = startAttempt(t, app, course.ID, quiz.ID, "1012345678")
	require.Equal(t, http.StatusOK, status)

	status, resp = doJSON(t, app, http.MethodPost, url, map[string]interface{}{
		"document": "1012345678",
		"answers": map[string]interface{}{
			q1.UID: map[string]interface{}{"selected_option_ids": []uint{opts1[0].ID}},
			q2.UID: map[string]interface{}{"selected_option_ids": []uint{opts2[1].ID}},
		},
	}, "")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(resp.Data, &graded))
	assert.Equal(t, 100, graded.Score)
	assert.True(t, graded.Passed)
}

func TestSubmitSupersetGetsNoCredit(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t, "Clave2026")
	quiz := seedBlock(t, course.ID, courseModels.BlockQuiz, 0)
	seedEnrollment(t, course.ID, "1012345678")

	q1, opts1 := seedQuestion(t, quiz.ID, "q-1", 0, 0, "Roja", "Azul", "Verde")

	status, _ := startAttempt(t, app, course.ID, quiz.ID, "1012345678")
	require.Equal(t, http.StatusOK, status)

	// Selecting the correct option plus an extra one is wrong
	url := fmt.Sprintf("/courses/%d/blocks/%d/attempts/submit", course.ID, quiz.ID)
	status, resp := doJSON(t, app, http.MethodPost, url, map[string]interface{}{
		"document": "1012345678",
		"answers": map[string]interface{}{
			q1.UID: map[string]interface{}{"selected_option_ids": []uint{opts1[0].ID, opts1[1].ID}},
		},
	}, "")
	require.Equal(t, http.StatusOK, status)

	var graded struct {
		Score int `json:"score"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &graded))
	assert.Equal(t, 0, graded.Score)
}

func TestSubmitDuplicateSelectionsGetNoCredit(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t, "Clave2026")
	quiz := seedBlock(t, course.ID, courseModels.BlockQuiz, 0)
	seedEnrollment(t, course.ID, "1012345678")

	q1, opts1 := seedMultiAnswerQuestion(t, quiz.ID, "q-1", 0, []int{0, 1}, "Roja", "Azul", "Verde")

	status, _ := startAttempt(t, app, course.ID, quiz.ID, "1012345678")
	require.Equal(t, http.StatusOK, status)

	// Repeating one correct option cannot stand in for the other
	url := fmt.Sprintf("/courses/%d/blocks/%d/attempts/submit", course.ID, quiz.ID)
	status, resp := doJSON(t, app, http.MethodPost, url, map[string]interface{}{
		"document": "1012345678",
		"answers": map[string]interface{}{
			q1.UID: map[string]interface{}{"selected_option_ids": []uint{opts1[0].ID, opts1[0].ID}},
		},
	}, "")
	require.Equal(t, http.StatusOK, status)

	var graded struct {
		Score  int  `json:"score"`
		Passed bool `json:"passed"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &graded))
	assert.Equal(t, 0, graded.Score)
	assert.False(t, graded.Passed)

	// The full correct set still earns the point
	status, _ = startAttempt(t, app, course.ID, quiz.ID, "1012345678")
	require.Equal(t, http.StatusOK, status)
	status, resp = doJSON(t, app, http.MethodPost, url, map[string]interface{}{
		"document": "1012345678",
		"answers": map[string]interface{}{
			q1.UID: map[string]interface{}{"selected_option_ids": []uint{opts1[0].ID, opts1[1].ID}},
		},
	}, "")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(resp.Data, &graded))
	assert.Equal(t, 100, graded.Score)
}

func TestStartAttemptBlockedWhenNoCorrectOption(t *testing.T) {
	app := setupApp(t)
	token := seedAdmin(t)
	course := seedCourse(t, "Clave2026")
	quiz := seedBlock(t, course.ID, courseModels.BlockQuiz, 0)
	seedEnrollment(t, course.ID, "1012345678")

	_, opts := seedQuestion(t, quiz.ID, "q-1", 0, 0, "Roja", "Azul")

	// Demoting the only correct option leaves the question unanswerable
	status, _ := doJSON(t, app, http.MethodPut, fmt.Sprintf("/admin/options/%d", opts[0].ID),
		map[string]interface{}{"is_correct": false}, token)
	require.Equal(t, http.StatusOK, status)

	status, _ = startAttempt(t, app, course.ID, quiz.ID, "1012345678")
	assert.Equal(t, http.StatusConflict, status)
}

func TestStartAttemptBlockedWhenQuestionHasOneOption(t *testing.T) {
	app := setupApp(t)
	token := seedAdmin(t)
	course := seedCourse(t, "Clave2026")
	quiz := seedBlock(t, course.ID, courseModels.BlockQuiz, 0)
	seedEnrollment(t, course.ID, "1012345678")

	_, opts := seedQuestion(t, quiz.ID, "q-1", 0, 0, "Roja", "Azul")

	status, _ := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/admin/options/%d", opts[1].ID), nil, token)
	require.Equal(t, http.StatusOK, status)

	status, _ = startAttempt(t, app, course.ID, quiz.ID, "1012345678")
	assert.Equal(t, http.StatusConflict, status)
}

func TestStartAfterPassConflicts(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t, "Clave2026")
	quiz := seedBlock(t, course.ID, courseModels.BlockQuiz, 0)
	seedEnrollment(t, course.ID, "1012345678")

	q1, opts1 := seedQuestion(t, quiz.ID, "q-1", 0, 0, "Roja", "Azul")

	status, _ := startAttempt(t, app, course.ID, quiz.ID, "1012345678")
	require.Equal(t, http.StatusOK, status)

	url := fmt.Sprintf("/courses/%d/blocks/%d/attempts/submit", course.ID, quiz.ID)
	status, _ = doJSON(t, app, http.MethodPost, url, map[string]interface{}{
		"document": "1012345678",
		"answers": map[string]interface{}{
			q1.UID: map[string]interface{}{"selected_option_ids": []uint{opts1[0].ID}},
		},
	}, "")
	require.Equal(t, http.StatusOK, status)

	status, _ = startAttempt(t, app, course.ID, quiz.ID, "1012345678")
	assert.Equal(t, http.StatusConflict, status)
}

func TestStartAttemptOnNonQuizBlockFails(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t, "Clave2026")
	reading := seedBlock(t, course.ID, courseModels.BlockReading, 0)
	seedEnrollment(t, course.ID, "1012345678")

	status, _ := startAttempt(t, app, course.ID, reading.ID, "1012345678")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestStartAttemptOnEmptyQuizFails(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t, "Clave2026")
	quiz := seedBlock(t, course.ID, courseModels.BlockQuiz, 0)
	seedEnrollment(t, course.ID, "1012345678")

	status, _ := startAttempt(t, app, course.ID, quiz.ID, "1012345678")
	assert.Equal(t, http.StatusBadRequest, status)
}
