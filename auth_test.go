package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"coreops-backend/controllers"
	"coreops-backend/models"
	"coreops-backend/routes"
	"coreops-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func setupAuthApp(t *testing.T) (*fiber.App, *models.User) {
	t.Helper()
	db := setupTestDB()

	hash, err := utils.HashPassword("secret123")
	assert.NoError(t, err)
	user := models.User{
		Name:         "Test",
		FullName:     "Test Member",
		UserName:     "member",
		PasswordHash: hash,
		Role:         models.RoleUser,
		IsActive:     true,
	}
	db.Create(&user)

	app := fiber.New()
	authController := controllers.NewAuthController(db)
	routes.SetupAuthRoutes(app, authController, utils.AuthMiddleware(db))
	return app, &user
}

func TestLoginSuccess(t *testing.T) {
	app, _ := setupAuthApp(t)

	body, _ := json.Marshal(controllers.LoginRequest{
		UserName: "member",
		Password: "secret123",
	})
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, true, result["success"])
	assert.NotEmpty(t, result["token"])

	// Токен также выставляется в cookie
	cookies := resp.Cookies()
	found := false
	for _, c := range cookies {
		if c.Name == "token" && c.Value != "" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestLoginWrongPassword(t *testing.T) {
	app, _ := setupAuthApp(t)

	body, _ := json.Marshal(controllers.LoginRequest{
		UserName: "member",
		Password: "wrong",
	})
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestMeRequiresToken(t *testing.T) {
	app, user := setupAuthApp(t)

	req := httptest.NewRequest("GET", "/auth/me", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	token, _ := utils.GenerateJWT(user.ID, user.UserName)
	req = httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestMiddlewareRejectsDeletedUser(t *testing.T) {
	db := setupTestDB()
	member, _, _ := createTestUsers(db)

	app := fiber.New()
	app.Get("/protected", utils.AuthMiddleware(db), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	token, _ := utils.GenerateJWT(member.ID, member.UserName)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, _ := app.Test(req)
	assert.Equal(t, 200, resp.StatusCode)

	// После мягкого удаления токен перестает пускать
	db.Model(&models.User{}).Where("id = ?", member.ID).Update("is_deleted", true)

	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, _ = app.Test(req)
	assert.Equal(t, 401, resp.StatusCode)
}
