package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"coreops-backend/controllers"
	"coreops-backend/models"
	"coreops-backend/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupTodoApp(db *gorm.DB, userID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	})
	todoController := controllers.NewTodoController(db)
	routes.SetupTodoRoutes(app, todoController, func(c *fiber.Ctx) error {
		return c.Next()
	})
	return app
}

func TestCreateAndListTodos(t *testing.T) {
	db := setupTestDB()
	member, _, _ := createTestUsers(db)
	app := setupTodoApp(db, member.ID)

	body, _ := json.Marshal(controllers.TodoRequest{
		Title:         "Buy supplies",
		PriorityLevel: 2,
	})
	req := httptest.NewRequest("POST", "/todos", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	req = httptest.NewRequest("GET", "/todos", nil)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result struct {
		Data []models.TodoItem `json:"data"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Len(t, result.Data, 1)
	assert.Equal(t, "Buy supplies", result.Data[0].Title)
}

func TestTodosAreOwnerScoped(t *testing.T) {
	db := setupTestDB()
	member, head, _ := createTestUsers(db)

	db.Create(&models.TodoItem{UserID: member.ID, Title: "Mine"})
	db.Create(&models.TodoItem{UserID: head.ID, Title: "Theirs"})

	app := setupTodoApp(db, member.ID)
	req := httptest.NewRequest("GET", "/todos", nil)
	resp, _ := app.Test(req)

	var result struct {
		Data []models.TodoItem `json:"data"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Len(t, result.Data, 1)
	assert.Equal(t, "Mine", result.Data[0].Title)

	// Чужая запись недоступна и для изменения
	theirs := models.TodoItem{}
	db.Where("title = ?", "Theirs").First(&theirs)

	body, _ := json.Marshal(controllers.TodoRequest{Title: "Hacked"})
	req = httptest.NewRequest("PUT", "/todos/2", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestToggleAndDeleteTodo(t *testing.T) {
	db := setupTestDB()
	member, _, _ := createTestUsers(db)

	todo := models.TodoItem{UserID: member.ID, Title: "Task"}
	db.Create(&todo)

	app := setupTodoApp(db, member.ID)

	req := httptest.NewRequest("PUT", "/todos/1/toggle", nil)
	resp, _ := app.Test(req)
	assert.Equal(t, 200, resp.StatusCode)

	var stored models.TodoItem
	db.First(&stored, todo.ID)
	assert.True(t, stored.IsComplete)

	req = httptest.NewRequest("DELETE", "/todos/1", nil)
	resp, _ = app.Test(req)
	assert.Equal(t, 200, resp.StatusCode)

	// Мягкое удаление: строка остается
	db.First(&stored, todo.ID)
	assert.True(t, stored.IsDeleted)

	req = httptest.NewRequest("GET", "/todos", nil)
	resp, _ = app.Test(req)
	var result struct {
		Data []models.TodoItem `json:"data"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Len(t, result.Data, 0)
}
