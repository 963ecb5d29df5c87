package controllers_test

import (
	"academia/database"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyEnrollmentKeyIsCaseSensitive(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t, "Clave2026")

	url := fmt.Sprintf("/courses/%d/verify-key", course.ID)

	status, resp := doJSON(t, app, http.MethodPost, url, map[string]string{"enrollment_key": "clave2026"}, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, resp.Status)

	status, resp = doJSON(t, app, http.MethodPost, url, map[string]string{"enrollment_key": "Clave2026 "}, "")
	assert.Equal(t, http.StatusUnauthorized, status, "keys are not trimmed")

	status, resp = doJSON(t, app, http.MethodPost, url, map[string]string{"enrollment_key": "Clave2026"}, "")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, resp.Status)
}

func TestEnrollRejectsWrongKey(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t, "Clave2026")

	status, _ := doJSON(t, app, http.MethodPost, fmt.Sprintf("/courses/%d/enroll", course.ID), map[string]string{
		"enrollment_key": "otra-clave",
		"full_name":      "Ana María Pérez",
		"document":       "1012345678",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestEnrollTwiceConflicts(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t, "Clave2026")

	body := map[string]string{
		"enrollment_key": "Clave2026",
		"full_name":      "Ana María Pérez",
		"document":       "1012345678",
		"job_title":      "Operaria",
		"company":        "Santafé",
	}

	url := fmt.Sprintf("/courses/%d/enroll", course.ID)

	status, resp := doJSON(t, app, http.MethodPost, url, body, "")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, resp.Status)

	status, resp = doJSON(t, app, http.MethodPost, url, body, "")
	assert.Equal(t, http.StatusConflict, status)
	assert.False(t, resp.Status)
}

func TestEnrollRequiresDocument(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t, "Clave2026")

	status, _ := doJSON(t, app, http.MethodPost, fmt.Sprintf("/courses/%d/enroll", course.ID), map[string]string{
		"enrollment_key": "Clave2026",
		"full_name":      "Ana María Pérez",
	}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestEnrollInactiveCourseNotFound(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t, "Clave2026")

	course.IsActive = false
	require.NoError(t, database.Database.Db.Save(&course).Error)

	status, _ := doJSON(t, app, http.MethodPost, fmt.Sprintf("/courses/%d/enroll", course.ID), map[string]string{
		"enrollment_key": "Clave2026",
		"full_name":      "Ana María Pérez",
		"document":       "1012345678",
	}, "")
	assert.Equal(t, http.StatusNotFound, status)
}
