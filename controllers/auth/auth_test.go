package authController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"inspecteur/config"
	"inspecteur/database"
	"inspecteur/models"
	emailService "inspecteur/services/email"
	authValidator "inspecteur/validators/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: bcrypt.MinCost,
		TokenTTL:  30,
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	database.Database = database.DbInstance{Db: db}

	emailSvc := emailService.NewService("", "", "")

	app := fiber.New()
	app.Post("/auth/register", authValidator.Signup(), Signup(emailSvc))
	app.Post("/auth/login", authValidator.Login(), Login)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload map[string]string) (int, map[string]interface{}) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp.StatusCode, parsed
}

func TestSignupCreatesStudent(t *testing.T) {
	app := setupTestApp(t)

	status, body := postJSON(t, app, "/auth/register", map[string]string{
		"name":     "Jean Dupont",
		"email":    "Jean@Test.FR",
		"password": "motdepasse",
	})

	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, true, body["status"])

	var user models.User
	require.NoError(t, database.Database.Db.Where("email = ?", "jean@test.fr").First(&user).Error)
	assert.Equal(t, "USER", user.Role)
	assert.False(t, user.HasPurchased)
	assert.NotEqual(t, "motdepasse", user.Password, "password must be stored hashed")

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Empty(t, data["password"])
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	app := setupTestApp(t)

	payload := map[string]string{
		"name":     "Jean Dupont",
		"email":    "jean@test.fr",
		"password": "motdepasse",
	}

	status, _ := postJSON(t, app, "/auth/register", payload)
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = postJSON(t, app, "/auth/register", payload)
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestSignupValidation(t *testing.T) {
	app := setupTestApp(t)

	status, _ := postJSON(t, app, "/auth/register", map[string]string{
		"name":     "J",
		"email":    "not-an-email",
		"password": "court",
	})

	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestLoginIssuesToken(t *testing.T) {
	app := setupTestApp(t)

	status, _ := postJSON(t, app, "/auth/register", map[string]string{
		"name":     "Jean Dupont",
		"email":    "jean@test.fr",
		"password": "motdepasse",
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, body := postJSON(t, app, "/auth/login", map[string]string{
		"email":    "jean@test.fr",
		"password": "motdepasse",
	})

	require.Equal(t, fiber.StatusOK, status)

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["token"])
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	app := setupTestApp(t)

	status, _ := postJSON(t, app, "/auth/register", map[string]string{
		"name":     "Jean Dupont",
		"email":    "jean@test.fr",
		"password": "motdepasse",
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = postJSON(t, app, "/auth/login", map[string]string{
		"email":    "jean@test.fr",
		"password": "mauvais-mdp",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	var user models.User
	require.NoError(t, database.Database.Db.Where("email = ?", "jean@test.fr").First(&user).Error)
	assert.Equal(t, 1, user.FailedLoginAttempts)
}

func TestLoginBlocksAfterThreeFailures(t *testing.T) {
	app := setupTestApp(t)

	status, _ := postJSON(t, app, "/auth/register", map[string]string{
		"name":     "Jean Dupont",
		"email":    "jean@test.fr",
		"password": "motdepasse",
	})
	require.Equal(t, fiber.StatusCreated, status)

	for i := 0; i < 3; i++ {
		status, _ = postJSON(t, app, "/auth/login", map[string]string{
			"email":    "jean@test.fr",
			"password": "mauvais-mdp",
		})
		assert.Equal(t, fiber.StatusUnauthorized, status)
	}

	var user models.User
	require.NoError(t, database.Database.Db.Where("email = ?", "jean@test.fr").First(&user).Error)
	assert.True(t, user.IsBlocked)
	require.NotNil(t, user.BlockedUntil)

	// The right password no longer works while the block holds
	status, _ = postJSON(t, app, "/auth/login", map[string]string{
		"email":    "jean@test.fr",
		"password": "motdepasse",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestLoginUnknownEmail(t *testing.T) {
	app := setupTestApp(t)

	status, _ := postJSON(t, app, "/auth/login", map[string]string{
		"email":    "personne@test.fr",
		"password": "motdepasse",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
