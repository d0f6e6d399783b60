package routes

import (
	"coreops-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes настраивает маршруты для аутентификации
func SetupAuthRoutes(app *fiber.App, authController *controllers.AuthController, authRequired fiber.Handler) {
	auth := app.Group("/auth")

	// POST /auth/login - вход пользователя
	auth.Post("/login", authController.Login)

	// POST /auth/logout - выход пользователя
	auth.Post("/logout", authController.Logout)

	// GET /auth/me - текущий пользователь
	auth.Get("/me", authRequired, authController.Me)

	// PUT /auth/password - смена пароля
	auth.Put("/password", authRequired, authController.UpdatePassword)
}
