package routes

import (
	"coreops-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupChatRoutes настраивает REST-маршруты чата
func SetupChatRoutes(app *fiber.App, chatController *controllers.ChatController, authRequired fiber.Handler) {
	chat := app.Group("/chat", authRequired)

	// GET /chat/users - список собеседников
	chat.Get("/users", chatController.ListChatableUsers)

	// GET /chat/unread - непрочитанные сообщения
	chat.Get("/unread", chatController.GetUnread)

	// GET /chat/history/:peerId - переписка с собеседником
	chat.Get("/history/:peerId", chatController.GetHistory)

	// POST /chat/messages - отправка сообщения
	chat.Post("/messages", chatController.SendMessage)

	// PUT /chat/messages/:id/read - пометка прочитанным
	chat.Put("/messages/:id/read", chatController.MarkRead)
}
