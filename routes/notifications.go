package routes

import (
	"coreops-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupNotificationRoutes настраивает маршруты подписок на push-уведомления
func SetupNotificationRoutes(app *fiber.App, notificationController *controllers.NotificationController, authRequired fiber.Handler) {
	notifications := app.Group("/notifications", authRequired)

	// POST /notifications/subscribe - подписка текущей сессии
	notifications.Post("/subscribe", notificationController.Subscribe)

	// POST /notifications/unsubscribe - отмена подписки
	notifications.Post("/unsubscribe", notificationController.Unsubscribe)
}
