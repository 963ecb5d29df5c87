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

func liveBlocks(t *testing.T, courseID uint) []courseModels.ContentBlock {
	t.Helper()
	var blocks []courseModels.ContentBlock
	require.NoError(t, database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&blocks).Error)
	return blocks
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	app := setupApp(t)

	status, _ := doJSON(t, app, http.MethodGet, "/admin/courses/", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestCreateBlockAppendsToSequence(t *testing.T) {
	app := setupApp(t)
	token := seedAdmin(t)
	course := seedCourse(t, "Clave2026")

	url := fmt.Sprintf("/admin/courses/%d/blocks", course.ID)

	for _, blockType := range []string{courseModels.BlockReading, courseModels.BlockDocument, courseModels.BlockQuiz} {
		status, _ := doJSON(t, app, http.MethodPost, url, map[string]string{
			"type":  blockType,
			"title": "Bloque " + blockType,
		}, token)
		require.Equal(t, http.StatusCreated, status)
	}

	blocks := liveBlocks(t, course.ID)
	require.Len(t, blocks, 3)
	for i, block := range blocks {
		assert.Equal(t, i, block.OrderIndex)
	}
	assert.Equal(t, courseModels.BlockReading, blocks[0].Type)
	assert.Equal(t, courseModels.BlockQuiz, blocks[2].Type)

	// Type-specific defaults
	assert.Equal(t, courseModels.DefaultReadingDuration, blocks[0].DurationMinutes)
	assert.Equal(t, courseModels.DefaultQuizDuration, blocks[2].DurationMinutes)
	assert.Equal(t, 100, blocks[2].PassPercent)
}

func TestVideoBlockRequiresURL(t *testing.T) {
	app := setupApp(t)
	token := seedAdmin(t)
	course := seedCourse(t, "Clave2026")

	url := fmt.Sprintf("/admin/courses/%d/blocks", course.ID)

	status, _ := doJSON(t, app, http.MethodPost, url, map[string]string{
		"type":  courseModels.BlockVideo,
		"title": "Video sin URL",
	}, token)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = doJSON(t, app, http.MethodPost, url, map[string]string{
		"type":      courseModels.BlockVideo,
		"title":     "Video",
		"video_url": "https://www.youtube.com/watch?v=abc123",
	}, token)
	assert.Equal(t, http.StatusCreated, status)
}

func TestDeleteBlockRenumbersRemaining(t *testing.T) {
	app := setupApp(t)
	token := seedAdmin(t)
	course := seedCourse(t, "Clave2026")

	b0 := seedBlock(t, course.ID, courseModels.BlockReading, 0)
	b1 := seedBlock(t, course.ID, courseModels.BlockVideo, 1)
	b2 := seedBlock(t, course.ID, courseModels.BlockDocument, 2)

	status, _ := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/admin/blocks/%d", b1.ID), nil, token)
	require.Equal(t, http.StatusOK, status)

	blocks := liveBlocks(t, course.ID)
	require.Len(t, blocks, 2)
	assert.Equal(t, b0.ID, blocks[0].ID)
	assert.Equal(t, 0, blocks[0].OrderIndex)
	assert.Equal(t, b2.ID, blocks[1].ID)
	assert.Equal(t, 1, blocks[1].OrderIndex, "no gap after delete")
}

func TestMoveBlockSwapsNeighbors(t *testing.T) {
	app := setupApp(t)
	token := seedAdmin(t)
	course := seedCourse(t, "Clave2026")

	b0 := seedBlock(t, course.ID, courseModels.BlockReading, 0)
	b1 := seedBlock(t, course.ID, courseModels.BlockVideo, 1)

	status, _ := doJSON(t, app, http.MethodPatch, fmt.Sprintf("/admin/blocks/%d/move", b1.ID),
		map[string]string{"direction": "up"}, token)
	require.Equal(t, http.StatusOK, status)

	blocks := liveBlocks(t, course.ID)
	require.Len(t, blocks, 2)
	assert.Equal(t, b1.ID, blocks[0].ID)
	assert.Equal(t, b0.ID, blocks[1].ID)
}

func TestMoveBlockAtEdgeFails(t *testing.T) {
	app := setupApp(t)
	token := seedAdmin(t)
	course := seedCourse(t, "Clave2026")

	b0 := seedBlock(t, course.ID, courseModels.BlockReading, 0)
	seedBlock(t, course.ID, courseModels.BlockVideo, 1)

	status, _ := doJSON(t, app, http.MethodPatch, fmt.Sprintf("/admin/blocks/%d/move", b0.ID),
		map[string]string{"direction": "up"}, token)
	assert.Equal(t, http.StatusBadRequest, status)
}
