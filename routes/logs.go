package routes

import (
	"coreops-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupLogRoutes настраивает маршруты журнала активности
func SetupLogRoutes(app *fiber.App, logController *controllers.LogController, authRequired fiber.Handler) {
	logs := app.Group("/logs", authRequired)

	// GET /logs - записи текущего пользователя
	logs.Get("/", logController.GetUserLogs)

	// GET /logs/feed - лента активности
	logs.Get("/feed", logController.GetActivityFeed)

	// PUT /logs/:id - правка описания записи
	logs.Put("/:id", logController.UpdateLog)

	// DELETE /logs/:id - удаление записи
	logs.Delete("/:id", logController.DeleteLog)
}
