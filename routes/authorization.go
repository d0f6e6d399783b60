package routes

import (
	"coreops-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthorizationRoutes настраивает маршруты доменных списков доступа
func SetupAuthorizationRoutes(app *fiber.App, authorizationController *controllers.AuthorizationController, authRequired fiber.Handler) {
	access := app.Group("/access", authRequired)

	// GET /access/:domain - члены доменного списка
	access.Get("/:domain", authorizationController.ListAuthorized)

	// POST /access/:domain - выдача доступа
	access.Post("/:domain", authorizationController.Grant)

	// DELETE /access/:domain/:userId - отзыв доступа
	access.Delete("/:domain/:userId", authorizationController.Revoke)
}
