package routes

import (
	"coreops-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupTodoRoutes настраивает маршруты личного списка дел
func SetupTodoRoutes(app *fiber.App, todoController *controllers.TodoController, authRequired fiber.Handler) {
	todos := app.Group("/todos", authRequired)

	// GET /todos - записи текущего пользователя
	todos.Get("/", todoController.ListTodos)

	// POST /todos - создание записи
	todos.Post("/", todoController.CreateTodo)

	// PUT /todos/:id - обновление записи
	todos.Put("/:id", todoController.UpdateTodo)

	// PUT /todos/:id/toggle - переключение статуса выполнения
	todos.Put("/:id/toggle", todoController.ToggleTodo)

	// DELETE /todos/:id - мягкое удаление записи
	todos.Delete("/:id", todoController.DeleteTodo)
}
