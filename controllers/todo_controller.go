package controllers

import (
	"strconv"

	"coreops-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TodoController контроллер личного списка дел.
// Записи видны и изменяемы только их владельцу.
type TodoController struct {
	DB *gorm.DB
}

// NewTodoController создает новый экземпляр TodoController
func NewTodoController(db *gorm.DB) *TodoController {
	return &TodoController{DB: db}
}

// TodoRequest структура запроса создания и обновления записи
type TodoRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	PriorityLevel int    `json:"priority_level"`
}

// ListTodos возвращает живые записи текущего пользователя
func (tc *TodoController) ListTodos(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var todos []models.TodoItem
	err := tc.DB.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("priority_level DESC, created_at DESC").
		Find(&todos).Error
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, todos)
}

// CreateTodo создает запись
func (tc *TodoController) CreateTodo(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var req TodoRequest
	if err := c.BodyParser(&req); err != nil || req.Title == "" {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Заголовок обязателен",
		})
	}

	todo := models.TodoItem{
		UserID:        userID,
		Title:         req.Title,
		Description:   req.Description,
		PriorityLevel: req.PriorityLevel,
	}
	if err := tc.DB.Create(&todo).Error; err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"data":    todo,
	})
}

// ownTodo загружает живую запись текущего пользователя
func (tc *TodoController) ownTodo(c *fiber.Ctx) (*models.TodoItem, error) {
	userID := c.Locals("user_id").(uint)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return nil, err
	}

	var todo models.TodoItem
	err = tc.DB.Where("id = ? AND user_id = ? AND is_deleted = ?", id, userID, false).
		First(&todo).Error
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// UpdateTodo обновляет запись
func (tc *TodoController) UpdateTodo(c *fiber.Ctx) error {
	todo, err := tc.ownTodo(c)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Запись не найдена",
		})
	}

	var req TodoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный формат данных",
		})
	}

	if req.Title != "" {
		todo.Title = req.Title
	}
	todo.Description = req.Description
	todo.PriorityLevel = req.PriorityLevel

	if err := tc.DB.Save(todo).Error; err != nil {
		return respondError(c, err)
	}
	return respondData(c, todo)
}

// ToggleTodo переключает флаг выполнения записи
func (tc *TodoController) ToggleTodo(c *fiber.Ctx) error {
	todo, err := tc.ownTodo(c)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Запись не найдена",
		})
	}

	todo.IsComplete = !todo.IsComplete
	if err := tc.DB.Save(todo).Error; err != nil {
		return respondError(c, err)
	}
	return respondData(c, todo)
}

// DeleteTodo мягко удаляет запись
func (tc *TodoController) DeleteTodo(c *fiber.Ctx) error {
	todo, err := tc.ownTodo(c)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Запись не найдена",
		})
	}

	todo.IsDeleted = true
	if err := tc.DB.Save(todo).Error; err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, "Запись удалена")
}
