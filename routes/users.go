package routes

import (
	"coreops-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes настраивает маршруты для пользователей
func SetupUserRoutes(app *fiber.App, userController *controllers.UserController, authRequired fiber.Handler) {
	users := app.Group("/users", authRequired)

	// GET /users - список пользователей
	users.Get("/", userController.ListUsers)

	// GET /users/:id - пользователь по идентификатору
	users.Get("/:id", userController.GetUser)

	// POST /users - создание пользователя
	users.Post("/", userController.CreateUser)

	// PUT /users/:id - обновление пользователя
	users.Put("/:id", userController.UpdateUser)

	// DELETE /users/:id - мягкое удаление пользователя
	users.Delete("/:id", userController.DeleteUser)
}
