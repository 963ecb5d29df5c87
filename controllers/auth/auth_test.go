package authController_test

import (
	"academia/config"
	"academia/database"
	authRoutes "academia/routers/authRoutes"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthApp(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	return app
}

func postJSON(t *testing.T, app *fiber.App, target string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp.StatusCode, parsed
}

func TestSignupAndLogin(t *testing.T) {
	app := setupAuthApp(t)

	signup := map[string]string{
		"name":     "Laura Jiménez",
		"email":    "laura@academiasantafe.com",
		"password": "superSecret1",
	}

	status, _ := postJSON(t, app, "/auth/signup", signup)
	require.Equal(t, http.StatusCreated, status)

	// Same email again conflicts
	status, _ = postJSON(t, app, "/auth/signup", signup)
	assert.Equal(t, http.StatusConflict, status)

	status, resp := postJSON(t, app, "/auth/login", map[string]string{
		"email":    "laura@academiasantafe.com",
		"password": "superSecret1",
	})
	require.Equal(t, http.StatusOK, status)

	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["token"])
}

func TestLoginWrongPassword(t *testing.T) {
	app := setupAuthApp(t)

	status, _ := postJSON(t, app, "/auth/signup", map[string]string{
		"name":     "Laura Jiménez",
		"email":    "laura@academiasantafe.com",
		"password": "superSecret1",
	})
	require.Equal(t, http.StatusCreated, status)

	status, _ = postJSON(t, app, "/auth/login", map[string]string{
		"email":    "laura@academiasantafe.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestSignupRejectsShortPassword(t *testing.T) {
	app := setupAuthApp(t)

	status, _ := postJSON(t, app, "/auth/signup", map[string]string{
		"name":     "Laura Jiménez",
		"email":    "laura@academiasantafe.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}
